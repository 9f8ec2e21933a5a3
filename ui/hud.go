package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/drive/systems"
)

// HUDData is the run status shown in the top-left corner.
type HUDData struct {
	Title        string
	Archetype    string
	CameraView   string
	Vehicles     int
	Tick         int32
	SimTime      float64
	Steps        int
	FPS          int32
	Paused       bool
	ScreenWidth  int32
	ScreenHeight int32
}

// Status returns the status lines below the title.
func (d HUDData) Status() []string {
	state := "Running"
	if d.Paused {
		state = "PAUSED"
	}
	return []string{
		fmt.Sprintf("Vehicle: %s | Camera: %s | Vehicles: %d", d.Archetype, d.CameraView, d.Vehicles),
		fmt.Sprintf("Frame: %d | Time: %.1fs | Steps: %dx | FPS: %d", d.Tick, d.SimTime, d.Steps, d.FPS),
		state,
	}
}

// HUD draws the status block and the key legend.
type HUD struct {
	Theme Theme
}

// NewHUD creates a HUD with the default theme.
func NewHUD() *HUD {
	return &HUD{Theme: DefaultTheme()}
}

// Draw renders the title and status lines. The last line is highlighted.
func (h *HUD) Draw(data HUDData) {
	const x, size = 10, 16
	rl.DrawText(data.Title, x, 10, 20, rl.White)

	lines := data.Status()
	y := int32(35)
	for i, line := range lines {
		color := rl.LightGray
		if i == len(lines)-1 {
			color = rl.Yellow
		}
		rl.DrawText(line, x, y, size, color)
		y += size + 4
	}
}

// DrawControls renders the key legend along the bottom edge.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, legend string) {
	rl.DrawText(legend, 10, screenHeight-25, h.Theme.FontSize+2, rl.Gray)
}

// PerfPanelData is the frame timing shown in the perf panel.
type PerfPanelData struct {
	Phases   map[string]time.Duration // average per phase
	Total    time.Duration            // average frame
	P95      time.Duration            // 95th percentile frame
	Registry *systems.SystemRegistry  // display names (optional)
}

// PerfPanel lists per-phase frame timings.
type PerfPanel struct {
	x, y int32
}

// NewPerfPanel creates a perf panel at (x, y).
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{x: x, y: y}
}

// SetPosition moves the panel.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x, p.y = x, y
}

// Draw renders one row per phase in the given order, colored by share of
// the frame.
func (p *PerfPanel) Draw(data PerfPanelData, order []string) {
	x, y := p.x, p.y
	rl.DrawText("Frame Phases", x, y, 16, rl.White)
	y += 20
	rl.DrawText(fmt.Sprintf("avg %s  p95 %s",
		data.Total.Round(time.Microsecond), data.P95.Round(time.Microsecond)), x, y, 14, rl.Yellow)
	y += 16

	for _, id := range order {
		avg := data.Phases[id]
		pct := PhasePercent(avg, data.Total)
		name := id
		if data.Registry != nil {
			name = data.Registry.GetName(id)
		}
		row := fmt.Sprintf("%-10s %8s %5.1f%%", name, avg.Round(time.Microsecond), pct)
		rl.DrawText(row, x, y, 12, phaseColor(pct))
		y += 14
	}
}

func phaseColor(pct float64) rl.Color {
	switch {
	case pct > 50:
		return rl.Red
	case pct > 25:
		return rl.Orange
	default:
		return rl.LightGray
	}
}

// PhasePercent returns part as a percentage of total, or 0 when total is 0.
func PhasePercent(part, total time.Duration) float64 {
	if total <= 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
