package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/drive/camera"
	"github.com/pthm-cable/drive/renderer"
	"github.com/pthm-cable/drive/ui"
)

var skyColor = rl.NewColor(150, 200, 235, 255)

// scene holds the 3D view state.
type scene struct {
	cam      rl.Camera3D
	ground   *renderer.GroundRenderer
	vehicles *renderer.VehicleRenderer
}

func newScene(fovy float64) *scene {
	return &scene{
		cam: rl.Camera3D{
			Up:         rl.NewVector3(0, 1, 0),
			Fovy:       float32(fovy),
			Projection: rl.CameraPerspective,
		},
		ground:   renderer.NewGroundRenderer(1000),
		vehicles: renderer.NewVehicleRenderer(),
	}
}

// sync copies the chase camera into the raylib camera.
func (s *scene) sync(f *camera.Follower) {
	s.cam.Position = toRL(f.Position)
	s.cam.Target = toRL(f.Target)
}

func toRL(v r3.Vec) rl.Vector3 {
	return rl.NewVector3(float32(v.X), float32(v.Y), float32(v.Z))
}

// initGraphics creates the renderer and UI panels.
func (g *Game) initGraphics() {
	g.scene = newScene(g.cfg.Camera.FovY)
	g.hud = ui.NewHUD()
	g.panel = ui.NewVehiclePanel(10, 90, 260)
	g.controls = ui.NewControlsPanel(10, 330, 260)
	g.perfUI = ui.NewPerfPanel(int32(g.cfg.Screen.Width)-230, 10)
}

// Draw renders the world and the HUD.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(skyColor)

	g.scene.sync(g.follower)
	rl.BeginMode3D(g.scene.cam)
	g.scene.ground.Draw()
	g.drawVehicles()
	rl.EndMode3D()

	g.drawUI()

	rl.EndDrawing()
}

// drawVehicles draws every vehicle, outlining the player.
func (g *Game) drawVehicles() {
	query := g.vehicleFilter.Query()
	for query.Next() {
		chassis, arch, _ := query.Get()
		a := &g.cfg.Archetypes[arch.Index]
		g.scene.vehicles.Draw(chassis.State, a.Body, a.Vehicle.WheelRadius, query.Entity() == g.player)
	}
}

// controlsLegend is drawn along the bottom edge.
const controlsLegend = "WASD/Arrows: drive | Space: handbrake | Tab: swap | C: camera | P: pause | ,/.: steps | F5: snapshot | F11: fullscreen"

// drawUI draws the HUD and panels and applies panel actions.
func (g *Game) drawUI() {
	screenW := int32(rl.GetScreenWidth())
	screenH := int32(rl.GetScreenHeight())

	g.hud.Draw(ui.HUDData{
		Title:        "Drive",
		Archetype:    g.PlayerArchetype(),
		CameraView:   g.follower.Preset().String(),
		Vehicles:     g.VehicleCount(),
		Tick:         g.tick,
		SimTime:      g.simTime,
		Steps:        g.stepsPerUpdate,
		FPS:          rl.GetFPS(),
		Paused:       g.paused,
		ScreenWidth:  screenW,
		ScreenHeight: screenH,
	})
	g.hud.DrawControls(screenW, screenH, controlsLegend)

	arch := g.cfg.Archetypes[g.archMap.Get(g.player).Index]
	odo := g.PlayerOdometer()
	bottom := g.panel.Draw(ui.VehicleView{
		Archetype: arch.Name,
		Color:     renderer.BodyColor(arch.Body),
		State:     g.PlayerState(),
		Controls:  g.PlayerControls(),
		MaxSpeed:  arch.Vehicle.MaxSpeed,
		Distance:  odo.Distance,
		TopSpeed:  odo.TopSpeed,
		Skipped:   g.SkippedFrames(),
	})

	g.controls.SetPosition(10, bottom+10)
	actions := g.controls.Draw(ui.ControlsState{
		Paused:     g.paused,
		CameraView: g.follower.Preset().String(),
		Alpha:      g.follower.Alpha,
		Steps:      g.stepsPerUpdate,
	})
	g.applyActions(actions)

	stats := g.perfCollector.Stats()
	g.perfUI.SetPosition(screenW-240, 10)
	g.perfUI.Draw(ui.PerfPanelData{
		Phases:   stats.PhaseAvg,
		Total:    stats.AvgTickDuration,
		P95:      stats.P95TickDuration,
		Registry: g.registry,
	}, g.registry.IDs())
}

// applyActions applies clicks from the controls panel.
func (g *Game) applyActions(a ui.Actions) {
	if a.Swap {
		g.SwapArchetype()
	}
	if a.ToggleCamera {
		g.ToggleCamera()
	}
	if a.TogglePause {
		g.SetPaused(!g.paused)
	}
	if a.Alpha > 0 && a.Alpha <= 1 {
		g.follower.Alpha = a.Alpha
	}
}
