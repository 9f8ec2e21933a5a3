// Package renderer draws the 3D scene with raylib immediate-mode calls.
package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/drive/config"
	"github.com/pthm-cable/drive/vehicle"
)

const rad2deg = 180 / math.Pi

// wheelbaseFraction places the axles this fraction of the body length
// ahead of and behind the center.
const wheelbaseFraction = 0.35

// WheelHub returns a wheel's hub position in the vehicle frame (+Z forward,
// +X left, Y up from the ground).
func WheelHub(id vehicle.WheelID, body config.BodyConfig, wheelRadius float64) r3.Vec {
	hub := r3.Vec{X: body.Width / 2, Y: wheelRadius, Z: body.Length * wheelbaseFraction}
	if id == vehicle.FrontRight || id == vehicle.BackRight {
		hub.X = -hub.X
	}
	if !id.Front() {
		hub.Z = -hub.Z
	}
	return hub
}

// BodyColor returns the archetype's paint color.
func BodyColor(b config.BodyConfig) rl.Color {
	return rl.NewColor(b.Color[0], b.Color[1], b.Color[2], 255)
}

// VehicleRenderer draws vehicles as a box body on four wheels.
type VehicleRenderer struct {
	WheelColor rl.Color
	HubColor   rl.Color
	Highlight  rl.Color
}

// NewVehicleRenderer creates a vehicle renderer with default colors.
func NewVehicleRenderer() *VehicleRenderer {
	return &VehicleRenderer{
		WheelColor: rl.NewColor(30, 30, 30, 255),
		HubColor:   rl.NewColor(180, 180, 180, 255),
		Highlight:  rl.White,
	}
}

// Draw renders one vehicle. Must be called between BeginMode3D and EndMode3D.
func (r *VehicleRenderer) Draw(s vehicle.State, body config.BodyConfig, wheelRadius float64, highlight bool) {
	length, width, height := float32(body.Length), float32(body.Width), float32(body.Height)
	radius := float32(wheelRadius)
	paint := BodyColor(body)

	rl.PushMatrix()
	rl.Translatef(float32(s.Position.X), float32(s.Position.Y), float32(s.Position.Z))
	rl.Rotatef(float32(s.Yaw*rad2deg), 0, 1, 0)

	center := rl.NewVector3(0, radius+height/2, 0)
	rl.DrawCube(center, width, height, length, paint)
	if highlight {
		rl.DrawCubeWires(center, width, height, length, r.Highlight)
	}
	// Cabin is forward of center.
	rl.DrawCube(rl.NewVector3(0, radius+height+0.2, length*0.15), width*0.8, 0.4, length*0.35, rl.ColorBrightness(paint, -0.3))

	wheels := s.Wheels()
	for id := vehicle.WheelID(0); id < vehicle.NumWheels; id++ {
		r.drawWheel(WheelHub(id, body, wheelRadius), radius, wheels[id])
	}
	rl.PopMatrix()
}

// drawWheel draws a wheel at a body-local hub, yawed by its steer angle and
// rolled about its axle by its spin angle.
func (r *VehicleRenderer) drawWheel(hub r3.Vec, radius float32, w vehicle.WheelRotation) {
	half := radius * 0.35

	rl.PushMatrix()
	rl.Translatef(float32(hub.X), float32(hub.Y), float32(hub.Z))
	rl.Rotatef(float32(w.Steer*rad2deg), 0, 1, 0)
	rl.Rotatef(float32(math.Mod(w.Spin, 2*math.Pi)*rad2deg), 1, 0, 0)

	rl.DrawCylinderEx(rl.NewVector3(-half, 0, 0), rl.NewVector3(half, 0, 0), radius, radius, 16, r.WheelColor)
	// Spoke makes rotation visible.
	rl.DrawCube(rl.NewVector3(0, radius*0.55, 0), half*2.2, radius*0.5, radius*0.15, r.HubColor)
	rl.PopMatrix()
}
