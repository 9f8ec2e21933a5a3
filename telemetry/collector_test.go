package telemetry

import (
	"math"
	"testing"
)

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(1.0)

	speeds := []float64{0, 2, 4, 6, 8}
	for i, s := range speeds {
		c.RecordFrame(FrameSample{
			Archetype:     "car",
			Speed:         s,
			Steering:      -0.5,
			Distance:      s * 0.1,
			Handbrake:     i == 4,
			X:             1,
			Z:             float64(i),
			Yaw:           0.25,
			Vehicles:      2,
			FleetDistance: s * 0.2,
		})
	}
	c.Record(NewSkippedFrameEvent(5))
	c.Record(NewSwapEvent(5, "truck"))
	c.Record(Event{Type: EventCameraToggle})
	c.Record(Event{Type: EventPause})
	c.Record(Event{Type: EventPause})

	if c.ShouldFlush(0.5) {
		t.Error("window should not flush before its duration")
	}
	if !c.ShouldFlush(1.0) {
		t.Fatal("window should flush at its duration")
	}

	stats := c.Flush(60, 1.0)
	if stats.Frames != 5 || stats.SkippedFrames != 1 {
		t.Errorf("frames/skipped = %d/%d, want 5/1", stats.Frames, stats.SkippedFrames)
	}
	if stats.Swaps != 1 || stats.CameraToggles != 1 || stats.Pauses != 2 {
		t.Errorf("events = %d/%d/%d", stats.Swaps, stats.CameraToggles, stats.Pauses)
	}
	if stats.HandbrakeFrames != 1 {
		t.Errorf("handbrake frames = %d, want 1", stats.HandbrakeFrames)
	}
	if math.Abs(stats.PlayerDistance-2.0) > 1e-9 {
		t.Errorf("player distance = %v, want 2", stats.PlayerDistance)
	}
	if math.Abs(stats.FleetDistance-4.0) > 1e-9 {
		t.Errorf("fleet distance = %v, want 4", stats.FleetDistance)
	}
	if stats.SpeedMean != 4 || stats.SpeedMax != 8 || stats.SpeedP50 != 4 {
		t.Errorf("speed stats = mean %v max %v p50 %v", stats.SpeedMean, stats.SpeedMax, stats.SpeedP50)
	}
	if stats.SteeringMean != 0.5 {
		t.Errorf("steering mean = %v, want 0.5", stats.SteeringMean)
	}
	if stats.Archetype != "car" || stats.Z != 4 || stats.Vehicles != 2 {
		t.Errorf("last sample fields = %q z=%v vehicles=%d", stats.Archetype, stats.Z, stats.Vehicles)
	}
	if stats.WindowStartTick != 0 || stats.WindowEndTick != 60 {
		t.Errorf("window ticks = %d..%d", stats.WindowStartTick, stats.WindowEndTick)
	}
}

func TestCollectorResetsAfterFlush(t *testing.T) {
	c := NewCollector(1.0)
	c.RecordFrame(FrameSample{Archetype: "car", Speed: 3, Distance: 1, Z: 7})
	c.Record(NewSwapEvent(1, "truck"))
	c.Flush(60, 1.0)

	if c.ShouldFlush(1.5) {
		t.Error("new window should start at the previous flush time")
	}

	stats := c.Flush(90, 1.5)
	if stats.Frames != 0 || stats.Swaps != 0 || stats.PlayerDistance != 0 {
		t.Errorf("counters not reset: %+v", stats)
	}
	if stats.SpeedMean != 0 || stats.SpeedMax != 0 {
		t.Errorf("speed stats not reset: %+v", stats)
	}
	// Pose carries over from the last sample.
	if stats.Z != 7 || stats.Archetype != "car" {
		t.Errorf("pose not carried over: %+v", stats)
	}
	if stats.WindowStartTick != 60 {
		t.Errorf("window start = %d, want 60", stats.WindowStartTick)
	}
}

func TestNewCollectorDefaultWindow(t *testing.T) {
	if got := NewCollector(0).WindowDuration(); got != 10 {
		t.Errorf("default window = %v, want 10", got)
	}
}

func TestEventTypeString(t *testing.T) {
	tests := []struct {
		ev   EventType
		want string
	}{
		{EventSkippedFrame, "skipped_frame"},
		{EventSwap, "swap"},
		{EventCameraToggle, "camera_toggle"},
		{EventPause, "pause"},
		{EventType(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.ev.String(); got != tt.want {
			t.Errorf("EventType(%d).String() = %q, want %q", tt.ev, got, tt.want)
		}
	}
}
