package renderer

import rl "github.com/gen2brain/raylib-go/raylib"

// GroundRenderer draws the flat ground plane with a reference grid.
type GroundRenderer struct {
	Size    float32
	Spacing float32
	Color   rl.Color
}

// NewGroundRenderer creates a ground of the given edge length in meters.
func NewGroundRenderer(size float32) *GroundRenderer {
	return &GroundRenderer{
		Size:    size,
		Spacing: 5,
		Color:   rl.NewColor(90, 130, 80, 255),
	}
}

// Draw renders the plane and grid. Must be called in 3D mode.
func (g *GroundRenderer) Draw() {
	rl.DrawPlane(rl.NewVector3(0, -0.01, 0), rl.NewVector2(g.Size, g.Size), g.Color)
	rl.DrawGrid(int32(g.Size/g.Spacing), g.Spacing)
}
