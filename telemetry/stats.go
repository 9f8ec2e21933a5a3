package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Frame accounting during window
	Frames        int `csv:"frames"`
	SkippedFrames int `csv:"skipped_frames"`

	// Player vehicle
	Archetype      string  `csv:"archetype"`
	PlayerDistance float64 `csv:"player_distance"` // meters driven during window
	SpeedMean      float64 `csv:"speed_mean"`
	SpeedStd       float64 `csv:"speed_std"`
	SpeedP50       float64 `csv:"speed_p50"`
	SpeedP90       float64 `csv:"speed_p90"`
	SpeedMax       float64 `csv:"speed_max"`
	SteeringMean   float64 `csv:"steering_mean"` // mean |steering|
	X              float64 `csv:"x"`             // position at window end
	Z              float64 `csv:"z"`
	Yaw            float64 `csv:"yaw"`

	// Input events during window
	Swaps           int `csv:"swaps"`
	CameraToggles   int `csv:"camera_toggles"`
	Pauses          int `csv:"pauses"`
	HandbrakeFrames int `csv:"handbrake_frames"`

	// All vehicles
	Vehicles      int     `csv:"vehicles"`
	FleetDistance float64 `csv:"fleet_distance"` // meters driven by all vehicles during window
}

// SpeedStats summarizes a set of speed samples.
type SpeedStats struct {
	Mean, Std, P50, P90, Max float64
}

// ComputeSpeedStats calculates mean, std, quantiles and max of speed samples.
// Returns zeros for an empty slice.
func ComputeSpeedStats(values []float64) SpeedStats {
	n := len(values)
	if n == 0 {
		return SpeedStats{}
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	var s SpeedStats
	if n == 1 {
		s.Mean = sorted[0]
	} else {
		s.Mean, s.Std = stat.MeanStdDev(sorted, nil)
	}
	s.P50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	s.P90 = stat.Quantile(0.9, stat.Empirical, sorted, nil)
	s.Max = sorted[n-1]
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("frames", s.Frames),
		slog.Int("skipped_frames", s.SkippedFrames),
		slog.String("archetype", s.Archetype),
		slog.Float64("player_distance", s.PlayerDistance),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_std", s.SpeedStd),
		slog.Float64("speed_p50", s.SpeedP50),
		slog.Float64("speed_p90", s.SpeedP90),
		slog.Float64("speed_max", s.SpeedMax),
		slog.Float64("steering_mean", s.SteeringMean),
		slog.Float64("x", s.X),
		slog.Float64("z", s.Z),
		slog.Float64("yaw", s.Yaw),
		slog.Int("swaps", s.Swaps),
		slog.Int("camera_toggles", s.CameraToggles),
		slog.Int("pauses", s.Pauses),
		slog.Int("handbrake_frames", s.HandbrakeFrames),
		slog.Int("vehicles", s.Vehicles),
		slog.Float64("fleet_distance", s.FleetDistance),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"frames", s.Frames,
		"skipped_frames", s.SkippedFrames,
		"archetype", s.Archetype,
		"player_distance", s.PlayerDistance,
		"speed_mean", s.SpeedMean,
		"speed_p50", s.SpeedP50,
		"speed_p90", s.SpeedP90,
		"speed_max", s.SpeedMax,
		"steering_mean", s.SteeringMean,
		"swaps", s.Swaps,
		"handbrake_frames", s.HandbrakeFrames,
		"vehicles", s.Vehicles,
		"fleet_distance", s.FleetDistance,
	)
}
