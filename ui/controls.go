package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Actions reports which controls were used this frame.
type Actions struct {
	Swap         bool
	ToggleCamera bool
	TogglePause  bool
	Alpha        float64 // camera smoothing after the slider
}

// ControlsState is the current state the panel reflects.
type ControlsState struct {
	Paused     bool
	CameraView string
	Alpha      float64
	Steps      int
}

// ControlsPanel renders clickable simulation controls.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		visible:  true,
	}
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// SetVisible shows or hides the panel.
func (c *ControlsPanel) SetVisible(visible bool) {
	c.visible = visible
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Draw renders the panel and returns the actions taken. A hidden panel
// reports no actions and the unchanged alpha.
func (c *ControlsPanel) Draw(state ControlsState) Actions {
	actions := Actions{Alpha: state.Alpha}
	if !c.visible {
		return actions
	}

	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight
	buttonH := float32(24)
	panelHeight := padding*3 + lineHeight + int32(buttonH)*2 + lineHeight*2 + 24

	r.DrawPanel(c.x, c.y, c.width, panelHeight)

	y := c.y + padding
	rl.DrawText("Controls", c.x+padding, y, 16, rl.White)
	y += lineHeight + 4

	inner := float32(c.width - padding*2)
	half := (inner - float32(padding)) / 2
	bx := float32(c.x + padding)

	if gui.Button(rl.Rectangle{X: bx, Y: float32(y), Width: half, Height: buttonH}, "Swap [Tab]") {
		actions.Swap = true
	}
	cameraLabel := fmt.Sprintf("View: %s [C]", state.CameraView)
	if gui.Button(rl.Rectangle{X: bx + half + float32(padding), Y: float32(y), Width: half, Height: buttonH}, cameraLabel) {
		actions.ToggleCamera = true
	}
	y += int32(buttonH) + 4

	pauseLabel := "Pause [P]"
	if state.Paused {
		pauseLabel = "Resume [P]"
	}
	if gui.Button(rl.Rectangle{X: bx, Y: float32(y), Width: inner, Height: buttonH}, pauseLabel) {
		actions.TogglePause = true
	}
	y += int32(buttonH) + 8

	rl.DrawText("Camera smoothing", c.x+padding, y, r.Theme.FontSize, r.Theme.LabelColor)
	y += lineHeight
	alpha := gui.SliderBar(
		rl.Rectangle{X: bx + 30, Y: float32(y), Width: inner - 90, Height: 16},
		"0.01", "1.0",
		float32(state.Alpha), 0.01, 1.0,
	)
	rl.DrawText(fmt.Sprintf("%.2f", alpha), c.x+c.width-padding-40, y+2, r.Theme.FontSize, r.Theme.ValueColor)
	if alpha != float32(state.Alpha) && alpha > 0 {
		actions.Alpha = float64(alpha)
	}
	y += lineHeight + 6

	rl.DrawText(fmt.Sprintf("Steps per frame: %d  [,/.]", state.Steps), c.x+padding, y, r.Theme.FontSize, r.Theme.LabelColor)

	return actions
}
