// Package systems contains ECS systems for the simulation.
package systems

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/drive/components"
	"github.com/pthm-cable/drive/vehicle"
)

// DrivingSystem advances every vehicle by one frame. Each vehicle owns its
// state exclusively, so entities are processed independently.
type DrivingSystem struct {
	filter  ecs.Filter4[components.Chassis, components.Archetype, components.Driver, components.Odometer]
	models  []*vehicle.Model
	skipped int
}

// NewDrivingSystem creates a driving system. models is indexed by
// components.Archetype.Index.
func NewDrivingSystem(w *ecs.World, models []*vehicle.Model) *DrivingSystem {
	return &DrivingSystem{
		filter: *ecs.NewFilter4[components.Chassis, components.Archetype, components.Driver, components.Odometer](w),
		models: models,
	}
}

// Poll reads this frame's control snapshot from every vehicle's source.
func (s *DrivingSystem) Poll(dt float64) {
	query := s.filter.Query()
	for query.Next() {
		_, _, drv, _ := query.Get()
		if drv.Source == nil {
			drv.Controls = vehicle.Controls{}
			continue
		}
		drv.Controls = drv.Source.Controls(dt)
	}
}

// Update integrates dynamics, steering, heading and wheel spin for every
// vehicle using the snapshot read by Poll. A non-finite or non-positive dt
// leaves all state untouched and reports false.
func (s *DrivingSystem) Update(dt float64) bool {
	if !vehicle.ValidTimestep(dt) {
		s.skipped++
		slog.Debug("skipping frame", "dt", dt, "skipped", s.skipped)
		return false
	}

	query := s.filter.Query()
	for query.Next() {
		chassis, arch, drv, odo := query.Get()
		if arch.Index < 0 || arch.Index >= len(s.models) {
			continue
		}
		before := chassis.State
		chassis.State = s.models[arch.Index].Step(before, drv.Controls, dt)
		odo.Record(before, chassis.State)
	}
	return true
}

// Skipped returns the number of frames rejected for an invalid timestep.
func (s *DrivingSystem) Skipped() int {
	return s.skipped
}
