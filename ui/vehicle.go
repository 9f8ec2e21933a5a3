package ui

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/drive/vehicle"
)

const msToKmh = 3.6

// VehicleView is the data shown by the vehicle panel.
type VehicleView struct {
	Archetype string
	Color     rl.Color
	State     vehicle.State
	Controls  vehicle.Controls
	MaxSpeed  float64 // m/s, 0 = uncapped
	Distance  float64
	TopSpeed  float64
	Skipped   int
}

func view(data any) VehicleView {
	v, _ := data.(VehicleView)
	return v
}

func boolValue(b bool) float32 {
	if b {
		return 1
	}
	return 0
}

// vehicleSections describes the vehicle panel layout.
var vehicleSections = []SectionDescriptor{
	{
		ID:    "vehicle",
		Title: "Vehicle",
		Fields: []FieldDescriptor{
			{ID: "archetype", Label: "Type", Widget: WidgetText,
				TextGetter: func(d any) string { return view(d).Archetype }},
			{ID: "color", Label: "Color", Widget: WidgetColorSwatch,
				ColorGetter: func(d any) rl.Color { return view(d).Color }},
			{ID: "position", Label: "Position", Widget: WidgetText,
				TextGetter: func(d any) string {
					s := view(d).State
					return fmt.Sprintf("%.1f, %.1f", s.Position.X, s.Position.Z)
				}},
			{ID: "heading", Label: "Heading", Widget: WidgetText, Format: "%.0f deg",
				Getter: func(d any) float32 { return float32(HeadingDegrees(view(d).State.Yaw)) }},
		},
	},
	{
		ID:    "motion",
		Title: "Motion",
		Fields: []FieldDescriptor{
			{ID: "speed", Label: "Speed", Widget: WidgetText, Format: "%.1f km/h",
				Getter: func(d any) float32 { return float32(view(d).State.Speed() * msToKmh) }},
			{ID: "forward", Label: "Forward", Widget: WidgetText, Format: "%+.2f m/s",
				Getter: func(d any) float32 { return float32(view(d).State.ForwardSpeed()) }},
			{ID: "speed_cap", Label: "Cap", Widget: WidgetGauge,
				Visible:   func(d any) bool { return view(d).MaxSpeed > 0 },
				Getter:    func(d any) float32 { return float32(view(d).State.Speed() * msToKmh) },
				MaxGetter: func(d any) float32 { return float32(view(d).MaxSpeed * msToKmh) }},
			{ID: "steering", Label: "Steering", Widget: WidgetCenteredBar, Range: CenteredRange(),
				Getter: func(d any) float32 { return float32(view(d).State.Steering) }},
			{ID: "steer_angle", Label: "Wheel yaw", Widget: WidgetText, Format: "%+.1f deg",
				Getter: func(d any) float32 { return float32(view(d).State.SteerAngle * 180 / math.Pi) }},
			{ID: "wheel_spin", Label: "Wheel rev", Widget: WidgetText, Format: "%.1f",
				Getter: func(d any) float32 { return float32(view(d).State.WheelSpin / (2 * math.Pi)) }},
		},
	},
	{
		ID:    "controls",
		Title: "Controls",
		Fields: []FieldDescriptor{
			{ID: "accelerate", Label: "Throttle", Widget: WidgetBar, Range: DefaultRange(),
				Getter: func(d any) float32 { return boolValue(view(d).Controls.Accelerate) }},
			{ID: "brake", Label: "Brake", Widget: WidgetBar, Range: DefaultRange(),
				Getter: func(d any) float32 { return boolValue(view(d).Controls.Brake) }},
			{ID: "steer_input", Label: "Steer in", Widget: WidgetCenteredBar, Range: CenteredRange(),
				Getter: func(d any) float32 { return float32(view(d).Controls.SteerInput()) }},
			{ID: "handbrake", Label: "Handbrake", Widget: WidgetText,
				TextGetter: func(d any) string { return onOff(view(d).Controls.Handbrake) }},
		},
	},
	{
		ID:    "trip",
		Title: "Trip",
		Fields: []FieldDescriptor{
			{ID: "distance", Label: "Distance", Widget: WidgetText, Format: "%.0f m",
				Getter: func(d any) float32 { return float32(view(d).Distance) }},
			{ID: "top_speed", Label: "Top", Widget: WidgetText, Format: "%.1f km/h",
				Getter: func(d any) float32 { return float32(view(d).TopSpeed * msToKmh) }},
			{ID: "skipped", Label: "Skipped", Widget: WidgetText, Format: "%.0f",
				Visible: func(d any) bool { return view(d).Skipped > 0 },
				Getter:  func(d any) float32 { return float32(view(d).Skipped) }},
		},
	},
}

func onOff(b bool) string {
	if b {
		return "ON"
	}
	return "off"
}

// HeadingDegrees converts a yaw in radians to a compass-style heading in
// [0, 360).
func HeadingDegrees(yaw float64) float64 {
	deg := math.Mod(yaw*180/math.Pi, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// VehiclePanel renders the player's vehicle readouts.
type VehiclePanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	sections []SectionDescriptor
}

// NewVehiclePanel creates a vehicle panel at the given position.
func NewVehiclePanel(x, y, width int32) *VehiclePanel {
	return &VehiclePanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		sections: vehicleSections,
	}
}

// SetPosition updates the panel position.
func (p *VehiclePanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Height returns the panel height for the given data.
func (p *VehiclePanel) Height(v VehicleView) int32 {
	h := p.renderer.Theme.Padding * 2
	for _, sd := range p.sections {
		h += p.renderer.Theme.SectionHeight(sd, v)
	}
	return h
}

// Draw renders the panel and returns the Y coordinate below it.
func (p *VehiclePanel) Draw(v VehicleView) int32 {
	r := p.renderer
	padding := r.Theme.Padding

	r.DrawPanel(p.x, p.y, p.width, p.Height(v))

	y := p.y + padding
	for _, sd := range p.sections {
		y = r.DrawSection(p.x+padding, y, sd, v, p.width-padding*2)
	}
	return p.y + p.Height(v)
}
