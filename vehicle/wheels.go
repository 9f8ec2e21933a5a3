package vehicle

// SpinWheels advances the shared wheel rotation by the distance rolled
// this frame. The result is not wrapped; renderers may reduce it modulo 2π.
func SpinWheels(angle, speed, wheelRadius, dt float64) float64 {
	if !ValidTimestep(dt) || wheelRadius <= 0 {
		return angle
	}
	return angle + speed/wheelRadius*dt
}

// WheelID names the four wheel pivots.
type WheelID uint8

const (
	FrontLeft WheelID = iota
	FrontRight
	BackLeft
	BackRight
	NumWheels
)

// Front reports whether the wheel carries the steering yaw.
func (w WheelID) Front() bool {
	return w == FrontLeft || w == FrontRight
}

// WheelRotation is the pair of orthogonal rotations applied to one wheel
// mesh: Spin about the axle and Steer about the vertical pivot.
type WheelRotation struct {
	Spin  float64
	Steer float64
}

// Wheels returns the per-wheel rotations for the current state. All wheels
// share one spin angle; only the front pair is steered.
func (s State) Wheels() [NumWheels]WheelRotation {
	var out [NumWheels]WheelRotation
	for i := range out {
		out[i].Spin = s.WheelSpin
		if WheelID(i).Front() {
			out[i].Steer = s.SteerAngle
		}
	}
	return out
}
