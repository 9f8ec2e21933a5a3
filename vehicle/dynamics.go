package vehicle

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// StopSpeed is the deadband below which velocity snaps to zero.
	StopSpeed = 0.05

	// downforceFriction converts downforce into extra ground friction. The
	// resulting per-frame multiplier is capped at 1 so it only ever decays
	// velocity.
	downforceFriction = 0.001
)

// Model integrates one vehicle archetype. It holds no per-vehicle state, so
// one Model may step any number of vehicles of the same archetype.
type Model struct {
	cfg Config
}

// NewModel validates cfg and returns a model for it.
func NewModel(cfg Config) (*Model, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("creating model: %w", err)
	}
	return &Model{cfg: cfg}, nil
}

// MustNewModel is like NewModel but panics on an invalid config.
func MustNewModel(cfg Config) *Model {
	m, err := NewModel(cfg)
	if err != nil {
		panic(err)
	}
	return m
}

// Config returns the archetype constants.
func (m *Model) Config() Config {
	return m.cfg
}

// ValidTimestep reports whether dt can be integrated.
func ValidTimestep(dt float64) bool {
	return dt > 0 && !math.IsInf(dt, 0) && !math.IsNaN(dt)
}

// Step advances s by dt seconds under the given controls: forces and
// position first, then steering, heading and wheel spin from the new
// velocity. An invalid dt returns s unchanged.
func (m *Model) Step(s State, c Controls, dt float64) State {
	if !ValidTimestep(dt) {
		return s
	}
	s = m.Integrate(s, c, dt)
	s.Steering = UpdateSteering(s.Steering, c, m.cfg.SteeringRate, dt)
	s.SteerAngle = SteerAngle(s.Steering, m.cfg.MaxSteerDeg)
	s = m.Turn(s, dt)
	s.WheelSpin = SpinWheels(s.WheelSpin, s.ForwardSpeed(), m.cfg.WheelRadius, dt)
	return s
}

// Integrate accumulates forces, integrates velocity and position, and
// applies damping, the speed cap and the stop deadband. Heading is left
// untouched.
func (m *Model) Integrate(s State, c Controls, dt float64) State {
	if !ValidTimestep(dt) {
		return s
	}
	cfg := &m.cfg
	v := s.Velocity
	v.Y = 0 // planar motion

	tractionZ := TractionForce(*cfg, c)

	var brake r3.Vec
	if c.Handbrake && cfg.BrakeForce > 0 {
		brake = BrakeForce(v, cfg.BrakeForce)
	}

	mass := cfg.Mass
	friction := 1.0
	if cfg.Damping == DampingDownforce {
		downforce := cfg.DownforceCoeff * r3.Norm2(v)
		mass += downforce
		friction = math.Min(cfg.GroundFriction+downforce*downforceFriction, 1)
	}

	// Local traction has no X component.
	sin, cos := math.Sincos(s.Yaw)
	traction := r3.Vec{X: sin * tractionZ, Z: cos * tractionZ}

	net := r3.Add(r3.Add(traction, Resistance(v, cfg.AirResistance, cfg.RollingResistance)), brake)
	v = r3.Add(v, r3.Scale(dt/mass, net))

	switch cfg.Damping {
	case DampingDownforce:
		v = r3.Scale(friction, v)
	case DampingLateral:
		v = BleedLateral(v, s.Yaw, cfg.LateralFriction)
	}

	if cfg.MaxSpeed > 0 {
		if speed := r3.Norm(v); speed > cfg.MaxSpeed {
			v = r3.Scale(cfg.MaxSpeed/speed, v)
		}
	}

	if r3.Norm(v) < StopSpeed {
		v = r3.Vec{}
	}

	s.Velocity = v
	s.Position = r3.Add(s.Position, r3.Scale(dt, v))
	return s
}

// Turn rotates the heading at a rate proportional to forward speed. The
// turn sense flips while reversing.
func (m *Model) Turn(s State, dt float64) State {
	if !ValidTimestep(dt) {
		return s
	}
	localZ := s.ForwardSpeed()
	omega := AngularVelocity(s.Steering, localZ, m.cfg.TurningRadius)
	direction := 1.0
	if localZ < 0 {
		direction = -1
	}
	s.Yaw += omega * dt * direction
	return s
}

// TractionForce returns the signed drive force along the vehicle's local Z
// axis. Accelerate wins over brake when both are held.
func TractionForce(cfg Config, c Controls) float64 {
	switch {
	case c.Accelerate:
		return cfg.TractionForce
	case c.Brake:
		return -cfg.TractionForce * cfg.ReverseFactor
	default:
		return 0
	}
}

// BrakeForce opposes v with the given magnitude. A stationary vehicle gets
// no brake force.
func BrakeForce(v r3.Vec, magnitude float64) r3.Vec {
	if r3.Norm2(v) == 0 {
		return r3.Vec{}
	}
	return r3.Scale(-magnitude, r3.Unit(v))
}

// Resistance returns quadratic air drag plus linear rolling resistance,
// computed independently on the world X and Z axes.
func Resistance(v r3.Vec, air, rolling float64) r3.Vec {
	axis := func(x float64) float64 {
		return -(air*x*math.Abs(x) + rolling*x)
	}
	return r3.Vec{X: axis(v.X), Z: axis(v.Z)}
}

// BleedLateral removes fraction of the velocity component perpendicular to
// the heading, leaving forward speed unchanged.
func BleedLateral(v r3.Vec, yaw, fraction float64) r3.Vec {
	fwd := Forward(yaw)
	forward := r3.Scale(r3.Dot(v, fwd), fwd)
	lateral := r3.Sub(v, forward)
	return r3.Sub(v, r3.Scale(fraction, lateral))
}

// AngularVelocity returns the unsigned-direction yaw rate for a steering
// value and forward speed. It is zero at rest.
func AngularVelocity(steering, localZ, turningRadius float64) float64 {
	return steering * math.Abs(localZ) / turningRadius
}
