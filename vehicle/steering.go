package vehicle

import "math"

// UpdateSteering moves the smoothed steering value toward the held input.
// With no input it relaxes toward zero without crossing it; with input it
// accumulates. The result is always within [-1, 1]. rate is in steering
// units per second.
func UpdateSteering(steering float64, c Controls, rate, dt float64) float64 {
	if !ValidTimestep(dt) {
		return steering
	}
	step := rate * dt
	input := c.SteerInput()

	if input == 0 {
		switch {
		case steering > 0:
			return clamp(math.Max(0, steering-step), -1, 1)
		case steering < 0:
			return clamp(math.Min(0, steering+step), -1, 1)
		default:
			return 0
		}
	}
	return clamp(steering+input*step, -1, 1)
}

// SteerAngle converts a steering value into front wheel yaw in radians.
func SteerAngle(steering, maxSteerDeg float64) float64 {
	return steering * maxSteerDeg * (math.Pi / 180)
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
