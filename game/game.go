// Package game wires the vehicle simulation into an ECS world and drives it
// from the host frame loop.
package game

import (
	"fmt"
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/drive/camera"
	"github.com/pthm-cable/drive/components"
	"github.com/pthm-cable/drive/config"
	"github.com/pthm-cable/drive/input"
	"github.com/pthm-cable/drive/systems"
	"github.com/pthm-cable/drive/telemetry"
	"github.com/pthm-cable/drive/ui"
)

// Options configures a game instance.
type Options struct {
	LogStats       bool    // log window and perf stats via slog
	StatsWindowSec float64 // telemetry window length (0 = use config)
	OutputDir      string  // CSV/config/snapshot output (empty = disabled)
	SnapshotPath   string  // resume from this snapshot (empty = fresh spawn)
	Headless       bool    // no window; player follows its script
	StepsPerUpdate int     // frames simulated per Update call (0 = use config)
	PlayerScript   string  // override the player script in headless mode
	Trace          bool    // write trace.csv (also enabled by config)
}

// Game holds the complete simulation state.
type Game struct {
	cfg   *config.Config
	world *ecs.World

	// Spawn mappers, one per vehicle role
	playerMapper *ecs.Map5[
		components.Chassis,
		components.Archetype,
		components.Driver,
		components.Odometer,
		components.Player,
	]
	trafficMapper *ecs.Map5[
		components.Chassis,
		components.Archetype,
		components.Driver,
		components.Odometer,
		components.Traffic,
	]

	// Individual component mappers for lookups
	chassisMap *ecs.Map1[components.Chassis]
	archMap    *ecs.Map1[components.Archetype]
	driverMap  *ecs.Map1[components.Driver]
	odoMap     *ecs.Map1[components.Odometer]

	// Filters for whole-world passes
	vehicleFilter *ecs.Filter3[components.Chassis, components.Archetype, components.Odometer]
	trafficFilter *ecs.Filter4[components.Chassis, components.Archetype, components.Odometer, components.Traffic]

	// Systems
	driving  *systems.DrivingSystem
	registry *systems.SystemRegistry

	// Player
	player       ecs.Entity
	playerSource input.Source

	// Camera
	follower *camera.Follower

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	logStats      bool
	traceEvery    int
	lastFleetDist float64

	// Rendering (graphics mode only)
	headless bool
	scene    *scene
	hud      *ui.HUD
	panel    *ui.VehiclePanel
	controls *ui.ControlsPanel
	perfUI   *ui.PerfPanel

	// State
	tick           int32
	simTime        float64
	paused         bool
	stepsPerUpdate int
}

// NewGameWithOptions creates a game from the global configuration.
// config.Init must have been called.
func NewGameWithOptions(opts Options) (*Game, error) {
	return newGame(config.Cfg(), opts)
}

func newGame(cfg *config.Config, opts Options) (*Game, error) {
	world := ecs.NewWorld()

	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = cfg.Sim.StepsPerUpdate
	}
	statsWindow := cfg.Telemetry.StatsWindow
	if opts.StatsWindowSec > 0 {
		statsWindow = opts.StatsWindowSec
	}

	g := &Game{
		cfg:   cfg,
		world: world,
		playerMapper: ecs.NewMap5[
			components.Chassis,
			components.Archetype,
			components.Driver,
			components.Odometer,
			components.Player,
		](world),
		trafficMapper: ecs.NewMap5[
			components.Chassis,
			components.Archetype,
			components.Driver,
			components.Odometer,
			components.Traffic,
		](world),
		chassisMap: ecs.NewMap1[components.Chassis](world),
		archMap:    ecs.NewMap1[components.Archetype](world),
		driverMap:  ecs.NewMap1[components.Driver](world),
		odoMap:     ecs.NewMap1[components.Odometer](world),
		vehicleFilter: ecs.NewFilter3[
			components.Chassis,
			components.Archetype,
			components.Odometer,
		](world),
		trafficFilter: ecs.NewFilter4[
			components.Chassis,
			components.Archetype,
			components.Odometer,
			components.Traffic,
		](world),
		driving:  systems.NewDrivingSystem(world, cfg.Derived.Models),
		registry: systems.NewSystemRegistry(),
		follower: camera.New(
			cfg.Camera.Behind.Vec(),
			cfg.Camera.Front.Vec(),
			cfg.Camera.Alpha,
		),
		collector:      telemetry.NewCollector(statsWindow),
		perfCollector:  telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		logStats:       opts.LogStats,
		traceEvery:     cfg.Telemetry.TraceEvery,
		headless:       opts.Headless,
		stepsPerUpdate: steps,
	}

	if err := g.initPlayerSource(opts); err != nil {
		return nil, err
	}

	if opts.SnapshotPath != "" {
		if err := g.restoreSnapshot(opts.SnapshotPath); err != nil {
			return nil, err
		}
	} else {
		g.spawnInitialVehicles()
	}
	g.follower.Snap(g.PlayerState().Pose())
	g.lastFleetDist, _ = g.fleetDistance()

	om, err := telemetry.NewOutputManager(opts.OutputDir, opts.Trace || cfg.Telemetry.Trace)
	if err != nil {
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	g.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}

	if !opts.Headless {
		g.initGraphics()
	}

	slog.Info("game created",
		"player", g.PlayerArchetype(),
		"vehicles", g.VehicleCount(),
		"headless", opts.Headless,
		"steps_per_update", steps,
		"stats_window", statsWindow,
	)
	return g, nil
}

// initPlayerSource picks the player's control source: the keyboard in
// graphics mode, the configured script headless.
func (g *Game) initPlayerSource(opts Options) error {
	if !opts.Headless {
		g.playerSource = NewKeyboard()
		return nil
	}

	name := g.cfg.Player.Script
	if opts.PlayerScript != "" {
		name = opts.PlayerScript
	}
	if name == "" {
		g.playerSource = input.Idle{}
		return nil
	}
	segments, ok := g.cfg.Scripts[name]
	if !ok {
		return fmt.Errorf("player script %q not defined", name)
	}
	g.playerSource = input.NewScript(segments, true)
	return nil
}

// Unload releases resources and flushes output.
func (g *Game) Unload() {
	if g.outputManager != nil {
		g.saveSnapshot()
		if err := g.outputManager.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
	}
}

// Tick returns the number of simulated frames.
func (g *Game) Tick() int32 {
	return g.tick
}

// SimTime returns the simulated time in seconds.
func (g *Game) SimTime() float64 {
	return g.simTime
}

// Paused reports whether the simulation is paused.
func (g *Game) Paused() bool {
	return g.paused
}

// SetPaused pauses or resumes the simulation.
func (g *Game) SetPaused(paused bool) {
	if paused == g.paused {
		return
	}
	g.paused = paused
	g.collector.Record(telemetry.Event{Type: telemetry.EventPause, Tick: g.tick})
}

// ToggleCamera switches the chase camera between its presets.
func (g *Game) ToggleCamera() {
	g.follower.Toggle()
	g.collector.Record(telemetry.Event{Type: telemetry.EventCameraToggle, Tick: g.tick})
}

// Camera returns the chase camera.
func (g *Game) Camera() *camera.Follower {
	return g.follower
}

// SkippedFrames returns the number of frames rejected for an invalid timestep.
func (g *Game) SkippedFrames() int {
	return g.driving.Skipped()
}
