package game

import (
	"log/slog"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/drive/telemetry"
	"github.com/pthm-cable/drive/vehicle"
)

// recordFrame feeds the player's frame and fleet totals to the collector.
func (g *Game) recordFrame(before vehicle.State) {
	after := g.PlayerState()
	controls := g.PlayerControls()

	fleet, vehicles := g.fleetDistance()
	fleetDelta := fleet - g.lastFleetDist
	g.lastFleetDist = fleet

	g.collector.RecordFrame(telemetry.FrameSample{
		Archetype:     g.PlayerArchetype(),
		Speed:         after.Speed(),
		Steering:      after.Steering,
		Distance:      r3.Norm(r3.Sub(after.Position, before.Position)),
		Handbrake:     controls.Handbrake,
		X:             after.Position.X,
		Z:             after.Position.Z,
		Yaw:           after.Yaw,
		Vehicles:      vehicles,
		FleetDistance: fleetDelta,
	})
}

// fleetDistance sums every vehicle's odometer.
func (g *Game) fleetDistance() (total float64, vehicles int) {
	query := g.vehicleFilter.Query()
	for query.Next() {
		_, _, odo := query.Get()
		total += odo.Distance
		vehicles++
	}
	return total, vehicles
}

// writeTrace appends every vehicle's state to trace.csv on sampled frames.
func (g *Game) writeTrace() {
	if !g.outputManager.TraceEnabled() || g.tick%int32(g.traceEvery) != 0 {
		return
	}

	records := []telemetry.TraceRecord{
		telemetry.NewTraceRecord(g.tick, g.simTime, 0, g.PlayerArchetype(), g.PlayerState(), g.PlayerControls()),
	}
	query := g.trafficFilter.Query()
	for query.Next() {
		chassis, arch, _, tr := query.Get()
		drv := g.driverMap.Get(query.Entity())
		records = append(records, telemetry.NewTraceRecord(g.tick, g.simTime, tr.Slot+1, arch.Name, chassis.State, drv.Controls))
	}

	if err := g.outputManager.WriteTrace(records); err != nil {
		slog.Error("failed to write trace", "error", err)
	}
}

// flushTelemetry checks if the stats window should be flushed.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.simTime) {
		return
	}

	stats := g.collector.Flush(g.tick, g.simTime)
	perfStats := g.perfCollector.Stats()

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}

// saveSnapshot writes the current state to the output directory.
func (g *Game) saveSnapshot() {
	path, err := g.outputManager.WriteSnapshot(g.createSnapshot())
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return
	}
	if path != "" {
		slog.Info("snapshot saved", "path", path, "tick", g.tick)
	}
}

// createSnapshot builds a snapshot from the current state.
func (g *Game) createSnapshot() *telemetry.Snapshot {
	odo := g.PlayerOdometer()
	snapshot := &telemetry.Snapshot{
		Version: telemetry.SnapshotVersion,
		Tick:    g.tick,
		SimTime: g.simTime,
		Vehicles: []telemetry.VehicleState{
			telemetry.NewVehicleState(telemetry.RolePlayer, 0, g.PlayerArchetype(), g.PlayerState(), odo.Distance, odo.TopSpeed),
		},
	}

	query := g.trafficFilter.Query()
	for query.Next() {
		chassis, arch, odo, tr := query.Get()
		snapshot.Vehicles = append(snapshot.Vehicles,
			telemetry.NewVehicleState(telemetry.RoleTraffic, tr.Slot, arch.Name, chassis.State, odo.Distance, odo.TopSpeed))
	}
	return snapshot
}
