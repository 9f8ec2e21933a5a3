package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/drive/telemetry"
)

// Update handles input and advances the simulation by one host frame.
// The frame time comes from raylib and is clamped to sim.max_frame_dt so a
// stalled window does not produce one huge integration step.
func (g *Game) Update() {
	g.perfCollector.RecordFrame()
	g.handleInput()

	if g.paused {
		return
	}

	dt := float64(rl.GetFrameTime())
	if dt > g.cfg.Sim.MaxFrameDT {
		dt = g.cfg.Sim.MaxFrameDT
	}
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.step(dt)
	}
}

// UpdateHeadless advances the simulation with the fixed timestep.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.step(g.cfg.Sim.DT)
	}
}

// step runs one frame: poll controls, integrate every vehicle, follow with
// the camera, then record telemetry.
func (g *Game) step(dt float64) {
	g.perfCollector.StartTick()

	g.perfCollector.StartPhase(telemetry.PhaseInput)
	g.driving.Poll(dt)

	g.perfCollector.StartPhase(telemetry.PhaseDynamics)
	before := g.PlayerState()
	if !g.driving.Update(dt) {
		g.collector.Record(telemetry.NewSkippedFrameEvent(g.tick))
		g.perfCollector.EndTick()
		return
	}

	g.perfCollector.StartPhase(telemetry.PhaseCamera)
	g.follower.Update(g.PlayerState().Pose())

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.tick++
	g.simTime += dt
	g.recordFrame(before)
	g.writeTrace()
	g.flushTelemetry()

	g.perfCollector.EndTick()
}
