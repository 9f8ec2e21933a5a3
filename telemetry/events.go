// Package telemetry provides driving statistics, per-frame traces, perf
// timing, snapshots and CSV output.
package telemetry

// EventType identifies telemetry events.
type EventType uint8

const (
	EventSkippedFrame EventType = iota // frame rejected for an invalid timestep
	EventSwap                          // player switched to another archetype
	EventCameraToggle                  // chase camera preset changed
	EventPause                         // simulation paused or resumed
)

// String returns the event name.
func (t EventType) String() string {
	switch t {
	case EventSkippedFrame:
		return "skipped_frame"
	case EventSwap:
		return "swap"
	case EventCameraToggle:
		return "camera_toggle"
	case EventPause:
		return "pause"
	default:
		return "unknown"
	}
}

// Event represents a single telemetry event.
type Event struct {
	Type EventType
	Tick int32

	// Detail is optional context, e.g. the archetype swapped to.
	Detail string
}

// NewSwapEvent creates a vehicle swap event.
func NewSwapEvent(tick int32, archetype string) Event {
	return Event{Type: EventSwap, Tick: tick, Detail: archetype}
}

// NewSkippedFrameEvent creates a skipped frame event.
func NewSkippedFrameEvent(tick int32) Event {
	return Event{Type: EventSkippedFrame, Tick: tick}
}
