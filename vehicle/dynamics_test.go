package vehicle

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func approx(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestStepAtRestIsIdempotent(t *testing.T) {
	for _, tc := range []struct {
		name string
		cfg  Config
	}{
		{"light", LightCar()},
		{"heavy", HeavyTruck()},
	} {
		t.Run(tc.name, func(t *testing.T) {
			m := MustNewModel(tc.cfg)
			start := State{Position: r3.Vec{X: 3, Z: -7}, Yaw: 0.4}

			for _, dt := range []float64{1.0 / 60, 0.1, 2.5} {
				got := m.Step(start, Controls{}, dt)
				if got != start {
					t.Errorf("dt=%v: state changed at rest: got %+v, want %+v", dt, got, start)
				}
			}
		})
	}
}

func TestStepInvalidTimestepIsNoOp(t *testing.T) {
	m := MustNewModel(HeavyTruck())
	start := State{Velocity: r3.Vec{Z: 12}, Steering: 0.3, WheelSpin: 1.5}
	controls := Controls{Accelerate: true, SteerLeft: true}

	for _, dt := range []float64{0, -0.016, math.NaN(), math.Inf(1)} {
		if got := m.Step(start, controls, dt); got != start {
			t.Errorf("dt=%v: expected unchanged state, got %+v", dt, got)
		}
	}
}

func TestDeadbandStopsCreep(t *testing.T) {
	for _, tc := range []struct {
		name string
		cfg  Config
	}{
		{"light", LightCar()},
		{"heavy", HeavyTruck()},
	} {
		t.Run(tc.name, func(t *testing.T) {
			m := MustNewModel(tc.cfg)
			s := State{Velocity: r3.Vec{Z: 0.04}}

			got := m.Step(s, Controls{}, 1.0/60)
			if got.Velocity != (r3.Vec{}) {
				t.Errorf("velocity = %+v, want exactly zero", got.Velocity)
			}
			if got.Position != s.Position {
				t.Errorf("position moved to %+v after deadband stop", got.Position)
			}
		})
	}
}

func TestSpeedCapHeavy(t *testing.T) {
	cfg := HeavyTruck()
	m := MustNewModel(cfg)
	s := State{}
	dt := 1.0 / 60

	for i := 0; i < 1200; i++ {
		s = m.Step(s, Controls{Accelerate: true}, dt)
		if speed := s.Speed(); speed > cfg.MaxSpeed+1e-9 {
			t.Fatalf("frame %d: speed %v exceeds cap %v", i, speed, cfg.MaxSpeed)
		}
	}
	if !approx(s.Speed(), cfg.MaxSpeed, 1e-6) {
		t.Errorf("speed = %v, want converged to %v", s.Speed(), cfg.MaxSpeed)
	}
}

func TestLightArchetypeEndToEnd(t *testing.T) {
	cfg := LightCar()
	cfg.Mass = 610
	cfg.TractionForce = 16000
	m := MustNewModel(cfg)

	terminal := cfg.TerminalSpeed()
	if terminal <= 0 || math.IsInf(terminal, 0) {
		t.Fatalf("terminal speed = %v, want finite positive", terminal)
	}

	s := State{}
	prev := 0.0
	for i := 0; i < 50; i++ {
		s = m.Step(s, Controls{Accelerate: true}, 0.1)
		speed := s.Speed()
		if speed > terminal+1e-9 {
			t.Fatalf("frame %d: speed %v exceeds terminal %v", i, speed, terminal)
		}
		if speed < prev {
			t.Fatalf("frame %d: speed dropped from %v to %v under full traction", i, prev, speed)
		}
		prev = speed
	}

	if s.Position.Z <= 0 {
		t.Errorf("forward displacement = %v, want positive", s.Position.Z)
	}
	if !approx(s.Position.X, 0, 1e-9) {
		t.Errorf("lateral displacement = %v, want 0 without steering", s.Position.X)
	}
	if s.Yaw != 0 {
		t.Errorf("yaw = %v, want 0 without steering", s.Yaw)
	}
}

func TestReverseAsymmetry(t *testing.T) {
	reverse := Controls{Brake: true}

	heavy := HeavyTruck()
	if got, want := TractionForce(heavy, reverse), -0.5*heavy.TractionForce; got != want {
		t.Errorf("heavy reverse traction = %v, want %v", got, want)
	}

	light := LightCar()
	if got, want := TractionForce(light, reverse), -light.TractionForce; got != want {
		t.Errorf("light reverse traction = %v, want %v", got, want)
	}

	// The factor is configuration, not archetype identity.
	light.ReverseFactor = 0.25
	if got, want := TractionForce(light, reverse), -0.25*light.TractionForce; got != want {
		t.Errorf("custom reverse traction = %v, want %v", got, want)
	}
}

func TestTractionPrecedence(t *testing.T) {
	cfg := HeavyTruck()
	tests := []struct {
		name string
		c    Controls
		want float64
	}{
		{"none", Controls{}, 0},
		{"accelerate", Controls{Accelerate: true}, cfg.TractionForce},
		{"brake", Controls{Brake: true}, -cfg.TractionForce * cfg.ReverseFactor},
		{"both", Controls{Accelerate: true, Brake: true}, cfg.TractionForce},
		{"handbrake only", Controls{Handbrake: true}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TractionForce(cfg, tt.c); got != tt.want {
				t.Errorf("TractionForce = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAngularVelocityProportionalToSpeed(t *testing.T) {
	if got := AngularVelocity(1, 0, 5); got != 0 {
		t.Errorf("angular velocity at rest = %v, want 0", got)
	}
	if got := AngularVelocity(-0.7, 0, 5); got != 0 {
		t.Errorf("angular velocity at rest = %v, want 0", got)
	}

	prev := 0.0
	for _, speed := range []float64{0.5, 1, 4, 10, 25} {
		got := math.Abs(AngularVelocity(0.6, speed, 5))
		if got <= prev {
			t.Errorf("|omega| at %v m/s = %v, want > %v", speed, got, prev)
		}
		prev = got
	}

	if AngularVelocity(0.6, -10, 5) != AngularVelocity(0.6, 10, 5) {
		t.Error("yaw rate magnitude should not depend on travel direction")
	}
}

func TestTurnReversesWhenBackingUp(t *testing.T) {
	m := MustNewModel(HeavyTruck())
	dt := 0.1

	forward := m.Turn(State{Velocity: r3.Vec{Z: 10}, Steering: 1}, dt)
	backward := m.Turn(State{Velocity: r3.Vec{Z: -10}, Steering: 1}, dt)

	if forward.Yaw <= 0 {
		t.Errorf("forward yaw = %v, want positive for left steering", forward.Yaw)
	}
	if !approx(backward.Yaw, -forward.Yaw, 1e-12) {
		t.Errorf("reverse yaw = %v, want %v", backward.Yaw, -forward.Yaw)
	}
}

func TestBrakeForce(t *testing.T) {
	if got := BrakeForce(r3.Vec{}, 12000); got != (r3.Vec{}) {
		t.Errorf("brake force at rest = %+v, want zero", got)
	}

	got := BrakeForce(r3.Vec{X: 3, Z: 4}, 1000)
	want := r3.Vec{X: -600, Z: -800}
	if !approx(got.X, want.X, 1e-9) || !approx(got.Z, want.Z, 1e-9) || got.Y != 0 {
		t.Errorf("brake force = %+v, want %+v", got, want)
	}
}

func TestHandbrakeSlowsHeavyTruck(t *testing.T) {
	m := MustNewModel(HeavyTruck())
	s := State{Velocity: r3.Vec{Z: 20}}
	dt := 1.0 / 60

	coast := m.Step(s, Controls{}, dt)
	braked := m.Step(s, Controls{Handbrake: true}, dt)
	if braked.Speed() >= coast.Speed() {
		t.Errorf("braked speed %v should be below coasting speed %v", braked.Speed(), coast.Speed())
	}

	for i := 0; i < 600; i++ {
		s = m.Step(s, Controls{Handbrake: true}, dt)
	}
	if s.Speed() != 0 {
		t.Errorf("speed after sustained handbrake = %v, want 0", s.Speed())
	}
}

func TestHandbrakeIgnoredWithoutBrakeForce(t *testing.T) {
	m := MustNewModel(LightCar())
	s := State{Velocity: r3.Vec{Z: 20}}

	coast := m.Step(s, Controls{}, 1.0/60)
	braked := m.Step(s, Controls{Handbrake: true}, 1.0/60)
	if coast != braked {
		t.Errorf("handbrake changed light car state: %+v vs %+v", braked, coast)
	}
}

func TestResistance(t *testing.T) {
	got := Resistance(r3.Vec{X: -2, Y: 9, Z: 3}, 0.5, 10)
	// X: -(0.5*-2*2 + 10*-2) = 22, Z: -(0.5*3*3 + 10*3) = -34.5
	if got.X != 22 || got.Z != -34.5 || got.Y != 0 {
		t.Errorf("Resistance = %+v, want {22 0 -34.5}", got)
	}
}

func TestBleedLateralKeepsForwardSpeed(t *testing.T) {
	cfg := HeavyTruck()
	cfg.AirResistance = 0
	cfg.RollingResistance = 0
	m := MustNewModel(cfg)

	s := m.Integrate(State{Velocity: r3.Vec{X: 3, Z: 10}}, Controls{}, 0.1)
	if !approx(s.Velocity.Z, 10, 1e-12) {
		t.Errorf("forward velocity = %v, want 10", s.Velocity.Z)
	}
	if !approx(s.Velocity.X, 3*(1-cfg.LateralFriction), 1e-12) {
		t.Errorf("lateral velocity = %v, want %v", s.Velocity.X, 3*(1-cfg.LateralFriction))
	}
}

func TestDownforceFrictionNeverAmplifies(t *testing.T) {
	cfg := LightCar()
	cfg.AirResistance = 0
	cfg.RollingResistance = 0
	cfg.DownforceCoeff = 10
	m := MustNewModel(cfg)

	s := m.Integrate(State{Velocity: r3.Vec{Z: 50}}, Controls{}, 0.1)
	if s.Velocity.Z > 50 {
		t.Errorf("coasting speed grew to %v", s.Velocity.Z)
	}
}

func TestWheelSpinFollowsForwardSpeed(t *testing.T) {
	cfg := LightCar()
	m := MustNewModel(cfg)

	s := m.Step(State{Velocity: r3.Vec{Z: 10}}, Controls{}, 0.1)
	want := s.ForwardSpeed() / cfg.WheelRadius * 0.1
	if !approx(s.WheelSpin, want, 1e-9) {
		t.Errorf("wheel spin = %v, want %v", s.WheelSpin, want)
	}

	back := m.Step(State{Velocity: r3.Vec{Z: -10}}, Controls{}, 0.1)
	if back.WheelSpin >= 0 {
		t.Errorf("wheel spin while reversing = %v, want negative", back.WheelSpin)
	}
}

func TestTerminalSpeed(t *testing.T) {
	cfg := Config{AirResistance: 2, RollingResistance: 10, TractionForce: 1200}
	// 2v^2 + 10v = 1200 -> v = 22.1...
	v := cfg.TerminalSpeed()
	if !approx(2*v*v+10*v, 1200, 1e-9) {
		t.Errorf("terminal speed %v does not balance traction", v)
	}

	cfg.AirResistance = 0
	if got := cfg.TerminalSpeed(); got != 120 {
		t.Errorf("linear terminal speed = %v, want 120", got)
	}
}

func TestIntegrateDropsVerticalVelocity(t *testing.T) {
	m := MustNewModel(LightCar())
	s := State{Velocity: r3.Vec{Y: 4, Z: 10}}

	for i := 0; i < 10; i++ {
		s = m.Step(s, Controls{}, 0.1)
		if s.Velocity.Y != 0 || s.Position.Y != 0 {
			t.Fatalf("step %d: velocity.Y=%v position.Y=%v, want 0", i, s.Velocity.Y, s.Position.Y)
		}
	}
	if s.Position.Z <= 0 {
		t.Errorf("forward motion lost: position %+v", s.Position)
	}
}
