package input

import (
	"testing"

	"github.com/pthm-cable/drive/config"
	"github.com/pthm-cable/drive/vehicle"
)

func testSegments() []config.SegmentConfig {
	return []config.SegmentConfig{
		{Duration: 1, Accelerate: true},
		{Duration: 0.5, Accelerate: true, Left: true},
		{Duration: 1, Brake: true, Handbrake: true},
	}
}

func TestScriptAt(t *testing.T) {
	s := NewScript(testSegments(), false)

	tests := []struct {
		t    float64
		want vehicle.Controls
	}{
		{-1, vehicle.Controls{}},
		{0, vehicle.Controls{Accelerate: true}},
		{0.99, vehicle.Controls{Accelerate: true}},
		{1.0, vehicle.Controls{Accelerate: true, SteerLeft: true}},
		{1.6, vehicle.Controls{Brake: true, Handbrake: true}},
		{2.5, vehicle.Controls{}},
		{10, vehicle.Controls{}},
	}
	for _, tt := range tests {
		if got := s.At(tt.t); got != tt.want {
			t.Errorf("At(%v) = %+v, want %+v", tt.t, got, tt.want)
		}
	}

	if s.Duration() != 2.5 {
		t.Errorf("Duration = %v, want 2.5", s.Duration())
	}
}

func TestScriptAdvances(t *testing.T) {
	s := NewScript(testSegments(), false)

	var accelFrames, steerFrames int
	for i := 0; i < 40; i++ { // 4 seconds at 0.1s
		c := s.Controls(0.1)
		if c.Accelerate {
			accelFrames++
		}
		if c.SteerLeft {
			steerFrames++
		}
	}
	if accelFrames != 15 {
		t.Errorf("accelerate frames = %d, want 15", accelFrames)
	}
	if steerFrames != 5 {
		t.Errorf("steer frames = %d, want 5", steerFrames)
	}
	if !s.Done() {
		t.Error("expected script to be done")
	}

	s.Reset()
	if s.Done() || s.Elapsed() != 0 {
		t.Error("expected reset script to restart")
	}
}

func TestScriptLoops(t *testing.T) {
	s := NewScript(testSegments(), true)

	for i := 0; i < 30; i++ { // 3 seconds, wraps once
		s.Controls(0.1)
	}
	if s.Done() {
		t.Error("looping script should never be done")
	}
	if s.Elapsed() >= s.Duration() {
		t.Errorf("elapsed %v should wrap below %v", s.Elapsed(), s.Duration())
	}
	if got := s.Controls(0.1); !got.Accelerate || got.SteerLeft {
		t.Errorf("controls after wrap = %+v, want first segment", got)
	}
}

func TestScriptIgnoresInvalidTimestep(t *testing.T) {
	s := NewScript(testSegments(), false)
	s.Controls(0)
	s.Controls(-1)
	if s.Elapsed() != 0 {
		t.Errorf("elapsed = %v, want 0", s.Elapsed())
	}
}

func TestEmptyLoopingScript(t *testing.T) {
	s := NewScript(nil, true)
	if got := s.Controls(0.1); got != (vehicle.Controls{}) {
		t.Errorf("empty script controls = %+v", got)
	}
}

func TestFixedAndIdle(t *testing.T) {
	want := vehicle.Controls{Accelerate: true, SteerRight: true}
	var src Source = Fixed(want)
	if got := src.Controls(0.1); got != want {
		t.Errorf("Fixed = %+v, want %+v", got, want)
	}
	src = Idle{}
	if got := src.Controls(0.1); got != (vehicle.Controls{}) {
		t.Errorf("Idle = %+v, want zero", got)
	}
}
