package ui

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer handles all UI drawing with consistent styling.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawSectionHeader draws a section header and returns the new Y position.
func (r *Renderer) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	return y + r.Theme.LineHeight
}

// DrawLabelValue draws a label and value on the same line.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string, totalWidth int32) int32 {
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawText(value, x+r.Theme.LabelWidth, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}

// barTrack draws the label and empty track of a bar row and returns the
// track's x and width. reserve is the room kept for the value text.
func (r *Renderer) barTrack(x, y int32, label string, width, reserve int32) (int32, int32) {
	trackX := x + r.Theme.LabelWidth
	trackW := width - r.Theme.LabelWidth - reserve
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawRectangle(trackX, y+2, trackW, r.Theme.BarHeight, r.Theme.BarBg)
	return trackX, trackW
}

// barValue draws the trailing value text of a bar row and returns the next Y.
func (r *Renderer) barValue(trackX, trackW, y int32, text string) int32 {
	rl.DrawText(text, trackX+trackW+5, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight + 2
}

// DrawBar draws a fill bar for values in [0, 1].
func (r *Renderer) DrawBar(x, y int32, label string, value float32, width int32) int32 {
	value = GaugeRatio(value, 1)
	trackX, trackW := r.barTrack(x, y, label, width, 50)
	rl.DrawRectangle(trackX, y+2, int32(float32(trackW)*value), r.Theme.BarHeight, r.Theme.BarFill)
	return r.barValue(trackX, trackW, y, fmt.Sprintf("%.2f", value))
}

// DrawGauge draws a bar against a maximum. The fill shifts from low to high
// color as it nears the maximum. A non-positive max draws an empty bar.
func (r *Renderer) DrawGauge(x, y int32, label string, current, max float32, width int32) int32 {
	ratio := GaugeRatio(current, max)
	trackX, trackW := r.barTrack(x, y, label, width, 60)

	fill := r.Theme.BarFillLow
	switch {
	case ratio > 0.9:
		fill = r.Theme.BarFillHigh
	case ratio > 0.6:
		fill = r.Theme.BarFillMedium
	}
	rl.DrawRectangle(trackX, y+2, int32(float32(trackW)*ratio), r.Theme.BarHeight, fill)
	return r.barValue(trackX, trackW, y, fmt.Sprintf("%.0f/%.0f", current, max))
}

// GaugeRatio returns current/max clamped to [0, 1], or 0 when max <= 0.
func GaugeRatio(current, max float32) float32 {
	if max <= 0 || current <= 0 {
		return 0
	}
	if current >= max {
		return 1
	}
	return current / max
}

// DrawCenteredBar draws a bar that grows left or right from zero for values
// in [minVal, maxVal].
func (r *Renderer) DrawCenteredBar(x, y int32, label string, value, minVal, maxVal float32, width int32) int32 {
	trackX, trackW := r.barTrack(x, y, label, width, 50)

	centerX := trackX + trackW/2
	rl.DrawLine(centerX, y+2, centerX, y+2+r.Theme.BarHeight, rl.Color{R: 80, G: 80, B: 80, A: 255})

	fillW := int32(float32(trackW/2) * CenteredFraction(value, minVal, maxVal))
	fillX, fill := centerX, r.Theme.BarFillPositive
	if value < 0 {
		fillX, fill = centerX-fillW, r.Theme.BarFillNegative
	}
	rl.DrawRectangle(fillX, y+2, fillW, r.Theme.BarHeight, fill)
	return r.barValue(trackX, trackW, y, fmt.Sprintf("%+.2f", value))
}

// CenteredFraction returns |value| as a fraction of the half-range on its
// side of zero, clamped to [0, 1].
func CenteredFraction(value, minVal, maxVal float32) float32 {
	limit := maxVal
	if value < 0 {
		limit = -minVal
	}
	if limit <= 0 {
		return 0
	}
	f := float32(math.Abs(float64(value))) / limit
	if f > 1 {
		return 1
	}
	return f
}

// DrawColorSwatch draws a label followed by a small filled square.
func (r *Renderer) DrawColorSwatch(x, y int32, label string, color rl.Color, width int32) int32 {
	const size = 12
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawRectangle(x+r.Theme.LabelWidth, y+1, size, size, color)
	return y + r.Theme.LineHeight
}

// value reads a numeric field, or 0 when it has no getter.
func (fd FieldDescriptor) value(data any) float32 {
	if fd.Getter == nil {
		return 0
	}
	return fd.Getter(data)
}

// DrawField renders a field based on its descriptor.
func (r *Renderer) DrawField(x, y int32, fd FieldDescriptor, data any, width int32) int32 {
	switch fd.Widget {
	case WidgetText:
		var text string
		if fd.TextGetter != nil {
			text = fd.TextGetter(data)
		} else if fd.Getter != nil {
			text = fmt.Sprintf(fd.Format, fd.Getter(data))
		}
		return r.DrawLabelValue(x, y, fd.Label, text, width)

	case WidgetBar:
		return r.DrawBar(x, y, fd.Label, fd.value(data), width)

	case WidgetCenteredBar:
		return r.DrawCenteredBar(x, y, fd.Label, fd.value(data), fd.Range.Min, fd.Range.Max, width)

	case WidgetColorSwatch:
		color := fd.Color
		if fd.ColorGetter != nil {
			color = fd.ColorGetter(data)
		}
		return r.DrawColorSwatch(x, y, fd.Label, color, width)

	case WidgetGauge:
		var max float32
		if fd.MaxGetter != nil {
			max = fd.MaxGetter(data)
		}
		return r.DrawGauge(x, y, fd.Label, fd.value(data), max, width)

	case WidgetSection:
		return r.DrawSectionHeader(x, y, fd.Label)

	case WidgetSpacer:
		return y + 6
	}

	return y
}

// DrawSection renders a section with header and fields.
func (r *Renderer) DrawSection(x, y int32, sd SectionDescriptor, data any, width int32) int32 {
	if sd.Visible != nil && !sd.Visible(data) {
		return y
	}
	if sd.Title != "" {
		y = r.DrawSectionHeader(x, y, sd.Title)
	}
	for _, fd := range sd.Fields {
		if fd.Visible == nil || fd.Visible(data) {
			y = r.DrawField(x, y, fd, data, width)
		}
	}
	return y + 4
}
