package game

import (
	"fmt"
	"log/slog"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/drive/components"
	"github.com/pthm-cable/drive/config"
	"github.com/pthm-cable/drive/input"
	"github.com/pthm-cable/drive/telemetry"
	"github.com/pthm-cable/drive/vehicle"
)

// spawnState returns a resting state at a configured spawn pose.
func spawnState(sp config.SpawnConfig) vehicle.State {
	return vehicle.State{
		Position: r3.Vec{X: sp.X, Z: sp.Z},
		Yaw:      sp.Yaw,
	}
}

// spawnInitialVehicles creates the player and all configured traffic.
func (g *Game) spawnInitialVehicles() {
	idx := g.cfg.Derived.ArchetypeIndex[g.cfg.Player.Archetype]
	g.spawnPlayer(idx, spawnState(g.cfg.Player.Spawn), components.Odometer{})

	for slot := range g.cfg.Traffic {
		g.spawnTraffic(slot, spawnState(g.cfg.Traffic[slot].Spawn), components.Odometer{})
	}
}

// spawnPlayer creates the player vehicle.
func (g *Game) spawnPlayer(archIndex int, state vehicle.State, odo components.Odometer) ecs.Entity {
	chassis := components.Chassis{State: state}
	arch := components.Archetype{Index: archIndex, Name: g.cfg.Archetypes[archIndex].Name}
	drv := components.Driver{Source: g.playerSource}
	tag := components.Player{}

	g.player = g.playerMapper.NewEntity(&chassis, &arch, &drv, &odo, &tag)
	return g.player
}

// spawnTraffic creates the scripted vehicle for a traffic slot.
func (g *Game) spawnTraffic(slot int, state vehicle.State, odo components.Odometer) ecs.Entity {
	tc := g.cfg.Traffic[slot]
	idx := g.cfg.Derived.ArchetypeIndex[tc.Archetype]

	chassis := components.Chassis{State: state}
	arch := components.Archetype{Index: idx, Name: tc.Archetype}
	drv := components.Driver{Source: input.NewScript(g.cfg.Scripts[tc.Script], tc.Loop)}
	tag := components.Traffic{Slot: slot}

	return g.trafficMapper.NewEntity(&chassis, &arch, &drv, &odo, &tag)
}

// SwapArchetype replaces the player vehicle with the next archetype in
// config order. The new vehicle starts at rest at the old pose.
func (g *Game) SwapArchetype() {
	g.SwapTo((g.archMap.Get(g.player).Index + 1) % len(g.cfg.Archetypes))
}

// SwapTo replaces the player vehicle with the given archetype.
func (g *Game) SwapTo(archIndex int) {
	if archIndex < 0 || archIndex >= len(g.cfg.Archetypes) {
		return
	}
	old := g.archMap.Get(g.player).Name
	pose := g.PlayerState().Pose()
	g.lastFleetDist -= g.odoMap.Get(g.player).Distance

	g.world.RemoveEntity(g.player)
	g.spawnPlayer(archIndex, vehicle.State{Position: pose.Position, Yaw: pose.Yaw}, components.Odometer{})

	name := g.cfg.Archetypes[archIndex].Name
	g.collector.Record(telemetry.NewSwapEvent(g.tick, name))
	slog.Info("vehicle swapped", "tick", g.tick, "from", old, "to", name)
}

// restoreSnapshot spawns vehicles from a saved snapshot. Traffic slots
// missing from the snapshot spawn fresh; entries naming unknown archetypes
// or slots are rejected.
func (g *Game) restoreSnapshot(path string) error {
	snap, err := telemetry.LoadSnapshot(path)
	if err != nil {
		return err
	}

	p, ok := snap.Player()
	if !ok {
		return fmt.Errorf("snapshot %s has no player vehicle", path)
	}
	idx, ok := g.cfg.Derived.ArchetypeIndex[p.Archetype]
	if !ok {
		return fmt.Errorf("snapshot player archetype %q not defined", p.Archetype)
	}

	restored := make(map[int]telemetry.VehicleState)
	for _, v := range snap.Vehicles {
		if v.Role != telemetry.RoleTraffic {
			continue
		}
		if v.Slot < 0 || v.Slot >= len(g.cfg.Traffic) {
			return fmt.Errorf("snapshot traffic slot %d not configured", v.Slot)
		}
		if v.Archetype != g.cfg.Traffic[v.Slot].Archetype {
			return fmt.Errorf("snapshot traffic slot %d is %q, config has %q", v.Slot, v.Archetype, g.cfg.Traffic[v.Slot].Archetype)
		}
		restored[v.Slot] = v
	}

	g.spawnPlayer(idx, p.State(), components.Odometer{Distance: p.Distance, TopSpeed: p.TopSpeed})
	for slot := range g.cfg.Traffic {
		if v, ok := restored[slot]; ok {
			g.spawnTraffic(slot, v.State(), components.Odometer{Distance: v.Distance, TopSpeed: v.TopSpeed})
			continue
		}
		g.spawnTraffic(slot, spawnState(g.cfg.Traffic[slot].Spawn), components.Odometer{})
	}

	g.tick = snap.Tick
	g.simTime = snap.SimTime
	slog.Info("snapshot restored", "path", path, "tick", snap.Tick, "vehicles", len(snap.Vehicles))
	return nil
}

// PlayerState returns a copy of the player's vehicle state.
func (g *Game) PlayerState() vehicle.State {
	return g.chassisMap.Get(g.player).State
}

// PlayerControls returns the control snapshot applied to the player this frame.
func (g *Game) PlayerControls() vehicle.Controls {
	return g.driverMap.Get(g.player).Controls
}

// PlayerArchetype returns the player's archetype name.
func (g *Game) PlayerArchetype() string {
	return g.archMap.Get(g.player).Name
}

// PlayerOdometer returns the player's trip data.
func (g *Game) PlayerOdometer() components.Odometer {
	return *g.odoMap.Get(g.player)
}

// VehicleCount returns the number of vehicles in the world.
func (g *Game) VehicleCount() int {
	_, n := g.fleetDistance()
	return n
}
