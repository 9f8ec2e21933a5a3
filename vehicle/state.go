package vehicle

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Controls is the driver intent sampled once per frame.
type Controls struct {
	Accelerate bool
	Brake      bool // reverse traction
	SteerLeft  bool
	SteerRight bool
	Handbrake  bool
}

// SteerInput returns the signed steering axis: +1 left, -1 right, 0 when
// neither or both are held.
func (c Controls) SteerInput() float64 {
	var in float64
	if c.SteerLeft {
		in++
	}
	if c.SteerRight {
		in--
	}
	return in
}

// State is the mutable per-vehicle simulation state.
type State struct {
	Position r3.Vec  // world position, Y is ground height
	Yaw      float64 // heading in radians, 0 faces +Z
	Velocity r3.Vec  // world velocity, Y unused

	Steering   float64 // smoothed steering in [-1, 1]
	SteerAngle float64 // front wheel yaw in radians derived from Steering
	WheelSpin  float64 // accumulated wheel rotation in radians, never wrapped
}

// Pose is the read-only position/orientation snapshot consumed by the
// camera and renderer.
type Pose struct {
	Position r3.Vec
	Yaw      float64
}

// Pose returns the current pose snapshot.
func (s State) Pose() Pose {
	return Pose{Position: s.Position, Yaw: s.Yaw}
}

// Forward returns the unit vector the vehicle faces.
func (p Pose) Forward() r3.Vec {
	return Forward(p.Yaw)
}

// Speed returns the velocity magnitude.
func (s State) Speed() float64 {
	return r3.Norm(s.Velocity)
}

// ForwardSpeed returns the signed speed along the heading, negative when
// reversing.
func (s State) ForwardSpeed() float64 {
	return r3.Dot(s.Velocity, Forward(s.Yaw))
}

// Forward returns the ground-plane unit vector for a yaw angle.
func Forward(yaw float64) r3.Vec {
	return r3.Vec{X: math.Sin(yaw), Z: math.Cos(yaw)}
}
