// Package input produces per-frame control snapshots for vehicles.
package input

import (
	"github.com/pthm-cable/drive/config"
	"github.com/pthm-cable/drive/vehicle"
)

// Source yields the control snapshot for the coming frame. Sources are
// polled once per frame; nothing is buffered or replayed.
type Source interface {
	Controls(dt float64) vehicle.Controls
}

// Idle is a Source that never presses anything.
type Idle struct{}

// Controls implements Source.
func (Idle) Controls(float64) vehicle.Controls { return vehicle.Controls{} }

// Fixed is a Source that always returns the same snapshot.
type Fixed vehicle.Controls

// Controls implements Source.
func (f Fixed) Controls(float64) vehicle.Controls { return vehicle.Controls(f) }

// Script replays timed control segments. Each call to Controls returns the
// segment active at the current script time and then advances the clock
// by dt. A finished script returns idle controls unless it loops.
type Script struct {
	segments []config.SegmentConfig
	loop     bool
	total    float64
	elapsed  float64
}

// NewScript creates a script from configured segments.
func NewScript(segments []config.SegmentConfig, loop bool) *Script {
	s := &Script{segments: segments, loop: loop}
	for _, seg := range segments {
		s.total += seg.Duration
	}
	return s
}

// Controls implements Source.
func (s *Script) Controls(dt float64) vehicle.Controls {
	c := s.At(s.elapsed)
	if vehicle.ValidTimestep(dt) {
		s.elapsed += dt
		if s.loop && s.total > 0 {
			for s.elapsed >= s.total {
				s.elapsed -= s.total
			}
		}
	}
	return c
}

// At returns the controls active t seconds into the script.
func (s *Script) At(t float64) vehicle.Controls {
	if t < 0 {
		return vehicle.Controls{}
	}
	for _, seg := range s.segments {
		if t < seg.Duration {
			return seg.Controls()
		}
		t -= seg.Duration
	}
	return vehicle.Controls{}
}

// Elapsed returns the current script time in seconds.
func (s *Script) Elapsed() float64 {
	return s.elapsed
}

// Duration returns the length of one pass through the script.
func (s *Script) Duration() float64 {
	return s.total
}

// Done reports whether a non-looping script has run out of segments.
func (s *Script) Done() bool {
	return !s.loop && s.elapsed >= s.total
}

// Reset rewinds the script to the start.
func (s *Script) Reset() {
	s.elapsed = 0
}
