package systems

import (
	"math"
	"testing"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/drive/components"
	"github.com/pthm-cable/drive/input"
	"github.com/pthm-cable/drive/vehicle"
)

type testWorld struct {
	world   *ecs.World
	mapper  *ecs.Map4[components.Chassis, components.Archetype, components.Driver, components.Odometer]
	chassis *ecs.Map1[components.Chassis]
	odo     *ecs.Map1[components.Odometer]
	sys     *DrivingSystem
}

func newTestWorld() *testWorld {
	w := ecs.NewWorld()
	models := []*vehicle.Model{
		vehicle.MustNewModel(vehicle.LightCar()),
		vehicle.MustNewModel(vehicle.HeavyTruck()),
	}
	return &testWorld{
		world:   w,
		mapper:  ecs.NewMap4[components.Chassis, components.Archetype, components.Driver, components.Odometer](w),
		chassis: ecs.NewMap1[components.Chassis](w),
		odo:     ecs.NewMap1[components.Odometer](w),
		sys:     NewDrivingSystem(w, models),
	}
}

func (tw *testWorld) spawn(index int, pos r3.Vec, src input.Source) ecs.Entity {
	chassis := components.Chassis{State: vehicle.State{Position: pos}}
	arch := components.Archetype{Index: index}
	drv := components.Driver{Source: src}
	odo := components.Odometer{}
	return tw.mapper.NewEntity(&chassis, &arch, &drv, &odo)
}

func (tw *testWorld) frame(dt float64) bool {
	tw.sys.Poll(dt)
	return tw.sys.Update(dt)
}

func TestDrivingSystemMatchesModel(t *testing.T) {
	tw := newTestWorld()
	controls := vehicle.Controls{Accelerate: true, SteerLeft: true}
	e := tw.spawn(0, r3.Vec{}, input.Fixed(controls))

	model := vehicle.MustNewModel(vehicle.LightCar())
	want := vehicle.State{}
	for i := 0; i < 30; i++ {
		if !tw.frame(1.0 / 60) {
			t.Fatalf("frame %d unexpectedly skipped", i)
		}
		want = model.Step(want, controls, 1.0/60)
	}

	got := tw.chassis.Get(e).State
	if got != want {
		t.Errorf("system state %+v, want %+v", got, want)
	}
}

func TestDrivingSystemIndependentVehicles(t *testing.T) {
	tw := newTestWorld()
	moving := tw.spawn(0, r3.Vec{}, input.Fixed(vehicle.Controls{Accelerate: true}))
	parked := tw.spawn(1, r3.Vec{X: 12}, input.Idle{})
	scripted := tw.spawn(1, r3.Vec{X: -12}, nil)

	for i := 0; i < 60; i++ {
		tw.frame(1.0 / 60)
	}

	if z := tw.chassis.Get(moving).Position.Z; z <= 0 {
		t.Errorf("accelerating car did not move forward, z = %v", z)
	}
	if got := tw.chassis.Get(parked).State; got != (vehicle.State{Position: r3.Vec{X: 12}}) {
		t.Errorf("idle truck moved: %+v", got)
	}
	if got := tw.chassis.Get(scripted).State; got != (vehicle.State{Position: r3.Vec{X: -12}}) {
		t.Errorf("vehicle without a source moved: %+v", got)
	}
}

func TestDrivingSystemSkipsInvalidTimestep(t *testing.T) {
	tw := newTestWorld()
	e := tw.spawn(0, r3.Vec{}, input.Fixed(vehicle.Controls{Accelerate: true}))
	tw.frame(0.1)
	before := tw.chassis.Get(e).State

	for _, dt := range []float64{0, -0.1, math.NaN(), math.Inf(1)} {
		if tw.frame(dt) {
			t.Errorf("dt %v: expected frame to be skipped", dt)
		}
	}
	if got := tw.chassis.Get(e).State; got != before {
		t.Errorf("state changed on skipped frames: %+v, want %+v", got, before)
	}
	if tw.sys.Skipped() != 4 {
		t.Errorf("skipped = %d, want 4", tw.sys.Skipped())
	}
}

func TestDrivingSystemOdometer(t *testing.T) {
	tw := newTestWorld()
	e := tw.spawn(0, r3.Vec{}, input.Fixed(vehicle.Controls{Accelerate: true}))

	for i := 0; i < 50; i++ {
		tw.frame(0.1)
	}

	odo := tw.odo.Get(e)
	st := tw.chassis.Get(e).State
	if odo.Frames != 50 {
		t.Errorf("frames = %d, want 50", odo.Frames)
	}
	// Straight-line run: distance equals displacement.
	if d := r3.Norm(st.Position); math.Abs(odo.Distance-d) > 1e-6 {
		t.Errorf("distance = %v, want %v", odo.Distance, d)
	}
	if odo.TopSpeed < st.Speed() || odo.TopSpeed <= 0 {
		t.Errorf("top speed = %v, current speed %v", odo.TopSpeed, st.Speed())
	}
}

func TestDrivingSystemUnknownArchetype(t *testing.T) {
	tw := newTestWorld()
	e := tw.spawn(7, r3.Vec{}, input.Fixed(vehicle.Controls{Accelerate: true}))
	tw.frame(0.1)
	if got := tw.chassis.Get(e).State; got != (vehicle.State{}) {
		t.Errorf("vehicle with unknown archetype moved: %+v", got)
	}
}

func TestSystemRegistry(t *testing.T) {
	reg := NewSystemRegistry()
	want := []string{"input", "dynamics", "camera", "telemetry"}
	ids := reg.IDs()
	if len(ids) != len(want) {
		t.Fatalf("ids = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ids[%d] = %q, want %q", i, ids[i], want[i])
		}
	}
	if reg.GetName("dynamics") != "Dynamics" {
		t.Errorf("GetName(dynamics) = %q", reg.GetName("dynamics"))
	}
	if reg.GetName("unknown") != "unknown" {
		t.Errorf("GetName should fall back to the id")
	}
}
