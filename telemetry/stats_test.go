package telemetry

import (
	"math"
	"testing"
)

func TestComputeSpeedStats(t *testing.T) {
	values := []float64{10, 1, 9, 2, 8, 3, 7, 4, 6, 5}
	s := ComputeSpeedStats(values)

	if math.Abs(s.Mean-5.5) > 1e-9 {
		t.Errorf("mean = %v, want 5.5", s.Mean)
	}
	// Sample standard deviation of 1..10.
	if math.Abs(s.Std-3.02765) > 1e-4 {
		t.Errorf("std = %v, want ~3.02765", s.Std)
	}
	if s.P50 != 5 {
		t.Errorf("p50 = %v, want 5", s.P50)
	}
	if s.P90 != 9 {
		t.Errorf("p90 = %v, want 9", s.P90)
	}
	if s.Max != 10 {
		t.Errorf("max = %v, want 10", s.Max)
	}

	// Input must not be reordered.
	if values[0] != 10 || values[1] != 1 {
		t.Error("ComputeSpeedStats modified its input")
	}
}

func TestComputeSpeedStatsSmall(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   SpeedStats
	}{
		{"empty", nil, SpeedStats{}},
		{"single", []float64{4}, SpeedStats{Mean: 4, P50: 4, P90: 4, Max: 4}},
		{"constant", []float64{3, 3, 3}, SpeedStats{Mean: 3, P50: 3, P90: 3, Max: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeSpeedStats(tt.values); got != tt.want {
				t.Errorf("ComputeSpeedStats(%v) = %+v, want %+v", tt.values, got, tt.want)
			}
		})
	}
}
