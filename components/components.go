// Package components defines ECS components for the simulation.
package components

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/drive/input"
	"github.com/pthm-cable/drive/vehicle"
)

// Chassis holds a vehicle's simulation state. The driving system mutates
// it in place once per frame.
type Chassis struct {
	vehicle.State
}

// Archetype references the profile a vehicle was spawned from.
type Archetype struct {
	Index int    // index into config Archetypes and Derived.Models
	Name  string // archetype name, for display and telemetry
}

// Driver holds the control source for a vehicle and the snapshot it
// produced for the current frame.
type Driver struct {
	Source   input.Source
	Controls vehicle.Controls
}

// Odometer accumulates per-vehicle trip data.
type Odometer struct {
	Distance float64 // meters traveled along the ground
	TopSpeed float64 // highest speed observed (m/s)
	Frames   int     // frames driven
}

// Record updates the odometer after a frame.
func (o *Odometer) Record(before, after vehicle.State) {
	o.Distance += r3.Norm(r3.Sub(after.Position, before.Position))
	if s := after.Speed(); s > o.TopSpeed {
		o.TopSpeed = s
	}
	o.Frames++
}

// Player tags the vehicle controlled by the user and followed by the camera.
type Player struct{}

// Traffic tags a scripted non-player vehicle.
type Traffic struct {
	Slot int // index into config Traffic
}
