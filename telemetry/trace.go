package telemetry

import "github.com/pthm-cable/drive/vehicle"

// TraceRecord is one vehicle's state after one frame, for trace.csv.
type TraceRecord struct {
	Tick       int32   `csv:"tick"`
	SimTime    float64 `csv:"sim_time"`
	Vehicle    int     `csv:"vehicle"` // 0 = player, traffic slots from 1
	Archetype  string  `csv:"archetype"`
	X          float64 `csv:"x"`
	Z          float64 `csv:"z"`
	Yaw        float64 `csv:"yaw"`
	VelX       float64 `csv:"vel_x"`
	VelZ       float64 `csv:"vel_z"`
	Speed      float64 `csv:"speed"`
	Steering   float64 `csv:"steering"`
	SteerAngle float64 `csv:"steer_angle"`
	WheelSpin  float64 `csv:"wheel_spin"`
	Accelerate bool    `csv:"accelerate"`
	Brake      bool    `csv:"brake"`
	Left       bool    `csv:"left"`
	Right      bool    `csv:"right"`
	Handbrake  bool    `csv:"handbrake"`
}

// NewTraceRecord flattens a vehicle's state and the controls that produced it.
func NewTraceRecord(tick int32, simTime float64, id int, archetype string, s vehicle.State, c vehicle.Controls) TraceRecord {
	return TraceRecord{
		Tick:       tick,
		SimTime:    simTime,
		Vehicle:    id,
		Archetype:  archetype,
		X:          s.Position.X,
		Z:          s.Position.Z,
		Yaw:        s.Yaw,
		VelX:       s.Velocity.X,
		VelZ:       s.Velocity.Z,
		Speed:      s.Speed(),
		Steering:   s.Steering,
		SteerAngle: s.SteerAngle,
		WheelSpin:  s.WheelSpin,
		Accelerate: c.Accelerate,
		Brake:      c.Brake,
		Left:       c.SteerLeft,
		Right:      c.SteerRight,
		Handbrake:  c.Handbrake,
	}
}
