package main

import (
	"fmt"

	"github.com/pthm-cable/boids/config"
	"github.com/pthm-cable/boids/flock"
)

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name string  // Human-readable name, matches the config key
	Min  float64 // Lower bound
	Max  float64 // Upper bound

	get func(p *flock.Params) float64
	set func(p *flock.Params, v float64)
}

// ParamVector holds the set of tunable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of tunable parameters: the three
// rule weights.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{
				Name: "center_weight", Min: 0, Max: 0.01,
				get: func(p *flock.Params) float64 { return p.CenterWeight },
				set: func(p *flock.Params, v float64) { p.CenterWeight = v },
			},
			{
				Name: "alignment_weight", Min: 0, Max: 0.1,
				get: func(p *flock.Params) float64 { return p.AlignmentWeight },
				set: func(p *flock.Params, v float64) { p.AlignmentWeight = v },
			},
			{
				Name: "separation_weight", Min: 0, Max: 0.2,
				get: func(p *flock.Params) float64 { return p.SeparationWeight },
				set: func(p *flock.Params, v float64) { p.SeparationWeight = v },
			},
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
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig writes clamped parameter values into cfg's flock overrides
// and recomputes the derived params.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) error {
	clamped := pv.Clamp(values)
	p := cfg.Derived.Params
	for i, spec := range pv.Specs {
		spec.set(&p, clamped[i])
	}
	cfg.Flock.SetFromParams(p)
	if err := cfg.Recompute(); err != nil {
		return fmt.Errorf("applying tuned params: %w", err)
	}
	return nil
}

// ExtractFromConfig returns cfg's current values in Specs order.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.get(&cfg.Derived.Params)
	}
	return v
}
