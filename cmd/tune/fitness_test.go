package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/drive/vehicle"
)

const testDT = 1.0 / 60

func TestMeasureRespectsLimits(t *testing.T) {
	tests := []struct {
		name  string
		cfg   vehicle.Config
		limit float64
	}{
		{"light car below terminal speed", vehicle.LightCar(), vehicle.LightCar().TerminalSpeed()},
		{"heavy truck at cap", vehicle.HeavyTruck(), vehicle.HeavyTruck().MaxSpeed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			perf, err := Measure(tt.cfg, 10, testDT, 60)
			if err != nil {
				t.Fatalf("Measure failed: %v", err)
			}
			if perf.TopSpeed <= 10 {
				t.Errorf("top speed = %v, expected above sprint speed", perf.TopSpeed)
			}
			if perf.TopSpeed > tt.limit+1e-9 {
				t.Errorf("top speed = %v exceeds limit %v", perf.TopSpeed, tt.limit)
			}
			if math.IsInf(perf.SprintTime, 1) || perf.SprintTime <= 0 {
				t.Errorf("sprint time = %v, expected finite positive", perf.SprintTime)
			}
		})
	}
}

func TestMeasureNeverReached(t *testing.T) {
	perf, err := Measure(vehicle.HeavyTruck(), 100, testDT, 10)
	if err != nil {
		t.Fatalf("Measure failed: %v", err)
	}
	if !math.IsInf(perf.SprintTime, 1) {
		t.Errorf("sprint time = %v, want +Inf for unreachable speed", perf.SprintTime)
	}
	if got := Score(perf, Target{TopSpeed: 30, SprintTo: 100, SprintTime: 5}); got < 1 {
		t.Errorf("score = %v, want at least 1", got)
	}
}

func TestMeasureInvalidConfig(t *testing.T) {
	cfg := vehicle.LightCar()
	cfg.Mass = 0
	if _, err := Measure(cfg, 10, testDT, 1); err == nil {
		t.Error("expected error for zero mass")
	}

	fe := NewFitnessEvaluator(NewParamVector(), cfg, Target{TopSpeed: 50, SprintTo: 10, SprintTime: 3}, testDT, 1)
	if got := fe.Evaluate([]float64{16000, 2.5}); got != invalidFitness {
		t.Errorf("Evaluate = %v, want %v", got, invalidFitness)
	}
}

func TestScore(t *testing.T) {
	target := Target{TopSpeed: 40, SprintTo: 20, SprintTime: 4}
	tests := []struct {
		name string
		perf Performance
		want float64
	}{
		{"exact", Performance{TopSpeed: 40, SprintTime: 4}, 0},
		{"top speed off by 10%", Performance{TopSpeed: 44, SprintTime: 4}, 0.01},
		{"sprint off by 50%", Performance{TopSpeed: 40, SprintTime: 6}, 0.25},
		{"never reached", Performance{TopSpeed: 10, SprintTime: math.Inf(1)}, 0.5625 + 1 + 0.25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.perf, target); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Score = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvaluateAtMeasuredTarget(t *testing.T) {
	base := vehicle.HeavyTruck()
	base.MaxSpeed = 0
	perf, err := Measure(base, 15, testDT, 60)
	if err != nil {
		t.Fatalf("Measure failed: %v", err)
	}

	params := NewParamVector()
	target := Target{TopSpeed: perf.TopSpeed, SprintTo: 15, SprintTime: perf.SprintTime}
	fe := NewFitnessEvaluator(params, base, target, testDT, 60)

	if got := fe.Evaluate(params.Extract(base)); got != 0 {
		t.Errorf("fitness at base constants = %v, want 0", got)
	}
	if fe.LastPerformance() != perf {
		t.Errorf("last performance = %+v, want %+v", fe.LastPerformance(), perf)
	}

	// More traction sprints faster.
	stronger := params.Extract(base)
	stronger[0] *= 1.5
	fe.Evaluate(stronger)
	if fe.LastPerformance().SprintTime >= perf.SprintTime {
		t.Errorf("sprint with more traction = %v, want below %v", fe.LastPerformance().SprintTime, perf.SprintTime)
	}
}

func TestParamVector(t *testing.T) {
	pv := NewParamVector()
	if pv.Dim() != 2 {
		t.Fatalf("Dim = %d, want 2", pv.Dim())
	}

	raw := []float64{24000, 1.2}
	back := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		if math.Abs(back[i]-raw[i]) > 1e-9 {
			t.Errorf("param %d round trip = %v, want %v", i, back[i], raw[i])
		}
	}

	clamped := pv.Clamp([]float64{-5, 1000})
	if clamped[0] != pv.Specs[0].Min || clamped[1] != pv.Specs[1].Max {
		t.Errorf("Clamp = %v, want bounds", clamped)
	}

	cfg := pv.Apply(vehicle.LightCar(), []float64{20000, 3})
	if cfg.TractionForce != 20000 || cfg.AirResistance != 3 {
		t.Errorf("Apply = traction %v air %v", cfg.TractionForce, cfg.AirResistance)
	}
	if cfg.Mass != vehicle.LightCar().Mass {
		t.Error("Apply changed an untuned constant")
	}
}
