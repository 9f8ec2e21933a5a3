package telemetry

import "math"

// FrameSample is the per-frame input to the Collector.
type FrameSample struct {
	Archetype string  // player archetype
	Speed     float64 // player speed (m/s)
	Steering  float64 // player normalized steering
	Distance  float64 // meters the player moved this frame
	Handbrake bool
	X, Z, Yaw float64 // player pose after the frame

	Vehicles      int     // vehicles in the world
	FleetDistance float64 // meters all vehicles moved this frame
}

// Collector accumulates frames and events within time windows and
// produces WindowStats.
type Collector struct {
	windowDurationSec float64

	// Current window tracking
	windowStartTick int32
	windowStartTime float64

	frames          int
	skipped         int
	swaps           int
	cameraToggles   int
	pauses          int
	handbrakeFrames int
	speeds          []float64
	steeringSum     float64
	playerDistance  float64
	fleetDistance   float64
	last            FrameSample
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds.
func NewCollector(windowDurationSec float64) *Collector {
	if windowDurationSec <= 0 {
		windowDurationSec = 10
	}
	return &Collector{windowDurationSec: windowDurationSec}
}

// Record counts an event in the current window.
func (c *Collector) Record(ev Event) {
	switch ev.Type {
	case EventSkippedFrame:
		c.skipped++
	case EventSwap:
		c.swaps++
	case EventCameraToggle:
		c.cameraToggles++
	case EventPause:
		c.pauses++
	}
}

// RecordFrame adds one driven frame to the current window.
func (c *Collector) RecordFrame(s FrameSample) {
	c.frames++
	c.speeds = append(c.speeds, s.Speed)
	c.steeringSum += math.Abs(s.Steering)
	c.playerDistance += s.Distance
	c.fleetDistance += s.FleetDistance
	if s.Handbrake {
		c.handbrakeFrames++
	}
	c.last = s
}

// ShouldFlush returns true if enough simulation time has passed to flush
// the window.
func (c *Collector) ShouldFlush(simTime float64) bool {
	return simTime-c.windowStartTime >= c.windowDurationSec
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, simTime float64) WindowStats {
	speed := ComputeSpeedStats(c.speeds)

	var steeringMean float64
	if c.frames > 0 {
		steeringMean = c.steeringSum / float64(c.frames)
	}

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      simTime,

		Frames:        c.frames,
		SkippedFrames: c.skipped,

		Archetype:      c.last.Archetype,
		PlayerDistance: c.playerDistance,
		SpeedMean:      speed.Mean,
		SpeedStd:       speed.Std,
		SpeedP50:       speed.P50,
		SpeedP90:       speed.P90,
		SpeedMax:       speed.Max,
		SteeringMean:   steeringMean,
		X:              c.last.X,
		Z:              c.last.Z,
		Yaw:            c.last.Yaw,

		Swaps:           c.swaps,
		CameraToggles:   c.cameraToggles,
		Pauses:          c.pauses,
		HandbrakeFrames: c.handbrakeFrames,

		Vehicles:      c.last.Vehicles,
		FleetDistance: c.fleetDistance,
	}

	// Reset for next window; the last sample carries over so an idle
	// window still reports the current pose.
	c.windowStartTick = currentTick
	c.windowStartTime = simTime
	c.frames = 0
	c.skipped = 0
	c.swaps = 0
	c.cameraToggles = 0
	c.pauses = 0
	c.handbrakeFrames = 0
	c.speeds = c.speeds[:0]
	c.steeringSum = 0
	c.playerDistance = 0
	c.fleetDistance = 0

	return stats
}

// WindowDuration returns the window length in simulation seconds.
func (c *Collector) WindowDuration() float64 {
	return c.windowDurationSec
}
