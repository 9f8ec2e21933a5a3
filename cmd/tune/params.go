package main

import (
	"github.com/pthm-cable/drive/vehicle"
)

// ParamSpec defines a single tunable constant.
type ParamSpec struct {
	Name string  // Human-readable name
	Path string  // Config key for logging
	Min  float64 // Lower bound
	Max  float64 // Upper bound
}

// ParamVector holds the set of tunable constants.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the traction/drag parameter set.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "traction_force", Path: "archetypes[].traction_force", Min: 1000, Max: 80000},
			{Name: "air_resistance", Path: "archetypes[].air_resistance", Min: 0.05, Max: 20},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := v[i]
		if val < spec.Min {
			val = spec.Min
		}
		if val > spec.Max {
			val = spec.Max
		}
		clamped[i] = val
	}
	return clamped
}

// Apply returns cfg with the clamped parameter values written into it.
// Order must match Specs order.
func (pv *ParamVector) Apply(cfg vehicle.Config, values []float64) vehicle.Config {
	clamped := pv.Clamp(values)
	cfg.TractionForce = clamped[0]
	cfg.AirResistance = clamped[1]
	return cfg
}

// Extract reads the current parameter values from cfg.
func (pv *ParamVector) Extract(cfg vehicle.Config) []float64 {
	return []float64{
		cfg.TractionForce,
		cfg.AirResistance,
	}
}
