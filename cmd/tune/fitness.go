package main

import (
	"math"
	"sync"

	"github.com/pthm-cable/drive/vehicle"
)

// Target is the performance an archetype is tuned toward.
type Target struct {
	TopSpeed   float64 // m/s reached under full throttle
	SprintTo   float64 // m/s for the sprint timing
	SprintTime float64 // seconds from rest to SprintTo
}

// Performance is what a straight-line full-throttle run measured.
type Performance struct {
	TopSpeed   float64 // highest forward speed seen
	SprintTime float64 // seconds to reach the sprint speed, +Inf if never
}

// Measure accelerates a vehicle from rest in a straight line for duration
// seconds of sim time at a fixed step.
func Measure(cfg vehicle.Config, sprintTo, dt, duration float64) (Performance, error) {
	model, err := vehicle.NewModel(cfg)
	if err != nil {
		return Performance{}, err
	}

	perf := Performance{SprintTime: math.Inf(1)}
	throttle := vehicle.Controls{Accelerate: true}

	var s vehicle.State
	steps := int(math.Ceil(duration / dt))
	for i := 1; i <= steps; i++ {
		s = model.Step(s, throttle, dt)
		v := s.ForwardSpeed()
		if v > perf.TopSpeed {
			perf.TopSpeed = v
		}
		if math.IsInf(perf.SprintTime, 1) && v >= sprintTo {
			perf.SprintTime = float64(i) * dt
		}
	}
	return perf, nil
}

// Score returns the squared relative error of perf against target
// (lower = better). A run that never reaches the sprint speed scores at
// least 1 plus how far short it fell.
func Score(perf Performance, target Target) float64 {
	top := (perf.TopSpeed - target.TopSpeed) / target.TopSpeed
	score := top * top

	if math.IsInf(perf.SprintTime, 1) {
		short := 1 - perf.TopSpeed/target.SprintTo
		return score + 1 + short*short
	}
	sprint := (perf.SprintTime - target.SprintTime) / target.SprintTime
	return score + sprint*sprint
}

// invalidFitness scores configs the model rejects.
const invalidFitness = 1e9

// FitnessEvaluator runs headless straight-line tests and scores them.
type FitnessEvaluator struct {
	params   *ParamVector
	base     vehicle.Config
	target   Target
	dt       float64
	duration float64

	mu       sync.Mutex
	lastPerf Performance
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, base vehicle.Config, target Target, dt, duration float64) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:   params,
		base:     base,
		target:   target,
		dt:       dt,
		duration: duration,
	}
}

// LastPerformance returns the measurement from the most recent evaluation.
func (fe *FitnessEvaluator) LastPerformance() Performance {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastPerf
}

// Evaluate computes fitness for a raw parameter vector (lower = better).
// Values are clamped to their bounds. Configs the model rejects score
// invalidFitness.
func (fe *FitnessEvaluator) Evaluate(raw []float64) float64 {
	cfg := fe.params.Apply(fe.base, raw)
	perf, err := Measure(cfg, fe.target.SprintTo, fe.dt, fe.duration)
	if err != nil {
		return invalidFitness
	}

	fe.mu.Lock()
	fe.lastPerf = perf
	fe.mu.Unlock()

	return Score(perf, fe.target)
}
