// Package camera provides a chase camera that trails a vehicle.
package camera

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/drive/vehicle"
)

// Preset selects which local offset the camera follows.
type Preset uint8

const (
	PresetBehind Preset = iota
	PresetFront
	numPresets
)

// String returns the preset name.
func (p Preset) String() string {
	switch p {
	case PresetBehind:
		return "behind"
	case PresetFront:
		return "front"
	default:
		return "unknown"
	}
}

// DefaultAlpha is the per-frame smoothing factor.
const DefaultAlpha = 0.1

// up is the world vertical axis the offset rotates about.
var up = r3.Vec{Y: 1}

// Follower is an exponential-lerp chase camera.
// Each Update moves the camera a fixed fraction of the way toward the
// target-relative offset point and re-aims it at the target.
type Follower struct {
	// Position is the camera eye in world coordinates
	Position r3.Vec

	// Target is the point the camera looks at
	Target r3.Vec

	// Offsets are the vehicle-local eye offsets, indexed by Preset
	Offsets [numPresets]r3.Vec

	// Alpha is the lerp fraction per frame in (0, 1]
	Alpha float64

	preset Preset
}

// New creates a follower with the given behind/front offsets and
// smoothing factor. Alpha outside (0, 1] falls back to DefaultAlpha.
func New(behind, front r3.Vec, alpha float64) *Follower {
	if alpha <= 0 || alpha > 1 {
		alpha = DefaultAlpha
	}
	f := &Follower{Alpha: alpha}
	f.Offsets[PresetBehind] = behind
	f.Offsets[PresetFront] = front
	return f
}

// Preset returns the active offset preset.
func (f *Follower) Preset() Preset {
	return f.preset
}

// SetPreset switches the offset preset. The camera glides to the new
// point over the following frames.
func (f *Follower) SetPreset(p Preset) {
	if p < numPresets {
		f.preset = p
	}
}

// Toggle swaps between the behind and front presets.
func (f *Follower) Toggle() {
	f.preset = (f.preset + 1) % numPresets
}

// Desired returns the world point the camera is heading toward for a pose.
func (f *Follower) Desired(pose vehicle.Pose) r3.Vec {
	offset := r3.NewRotation(pose.Yaw, up).Rotate(f.Offsets[f.preset])
	return r3.Add(pose.Position, offset)
}

// Update moves the camera toward the desired point and aims it at the
// vehicle.
func (f *Follower) Update(pose vehicle.Pose) {
	desired := f.Desired(pose)
	f.Position = lerp(f.Position, desired, f.Alpha)
	f.Target = pose.Position
}

// Snap places the camera at the desired point immediately.
func (f *Follower) Snap(pose vehicle.Pose) {
	f.Position = f.Desired(pose)
	f.Target = pose.Position
}

// lerp returns a + (b-a)*t.
func lerp(a, b r3.Vec, t float64) r3.Vec {
	return r3.Add(a, r3.Scale(t, r3.Sub(b, a)))
}
