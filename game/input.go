package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/drive/vehicle"
)

// Bindings maps driving controls to raylib key codes. Any key in a list
// activates the control.
type Bindings struct {
	Accelerate []int32
	Brake      []int32
	SteerLeft  []int32
	SteerRight []int32
	Handbrake  []int32
}

// DefaultBindings returns WASD plus arrow keys, space for the handbrake.
func DefaultBindings() Bindings {
	return Bindings{
		Accelerate: []int32{rl.KeyW, rl.KeyUp},
		Brake:      []int32{rl.KeyS, rl.KeyDown},
		SteerLeft:  []int32{rl.KeyA, rl.KeyLeft},
		SteerRight: []int32{rl.KeyD, rl.KeyRight},
		Handbrake:  []int32{rl.KeySpace},
	}
}

// Keyboard is an input.Source that polls raylib key state.
type Keyboard struct {
	Bindings Bindings
}

// NewKeyboard creates a keyboard source with the default bindings.
func NewKeyboard() *Keyboard {
	return &Keyboard{Bindings: DefaultBindings()}
}

// Controls implements input.Source.
func (k *Keyboard) Controls(float64) vehicle.Controls {
	return vehicle.Controls{
		Accelerate: anyDown(k.Bindings.Accelerate),
		Brake:      anyDown(k.Bindings.Brake),
		SteerLeft:  anyDown(k.Bindings.SteerLeft),
		SteerRight: anyDown(k.Bindings.SteerRight),
		Handbrake:  anyDown(k.Bindings.Handbrake),
	}
}

func anyDown(keys []int32) bool {
	for _, k := range keys {
		if rl.IsKeyDown(k) {
			return true
		}
	}
	return false
}

// handleInput processes non-driving keys.
func (g *Game) handleInput() {
	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeyP) {
		g.SetPaused(!g.paused)
	}

	if rl.IsKeyPressed(rl.KeyC) {
		g.ToggleCamera()
	}

	if rl.IsKeyPressed(rl.KeyTab) {
		g.SwapArchetype()
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.stepsPerUpdate > 1 {
		g.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.stepsPerUpdate < 10 {
		g.stepsPerUpdate++
	}

	// Manual snapshot
	if rl.IsKeyPressed(rl.KeyF5) {
		if g.outputManager == nil {
			slog.Warn("snapshot requested without -output-dir")
		} else {
			g.saveSnapshot()
		}
	}
}
