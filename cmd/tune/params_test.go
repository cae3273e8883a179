package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/boids/config"
)

func TestNormalizeRoundtrip(t *testing.T) {
	pv := NewParamVector()
	raw := []float64{0.005, 0.05, 0.1}

	back := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		if math.Abs(back[i]-raw[i]) > 1e-12 {
			t.Errorf("param %s: roundtrip %v, want %v", pv.Specs[i].Name, back[i], raw[i])
		}
	}
}

func TestClamp(t *testing.T) {
	pv := NewParamVector()
	got := pv.Clamp([]float64{-1, 0.05, 5})

	want := []float64{0, 0.05, 0.2}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("param %s: clamp = %v, want %v", pv.Specs[i].Name, got[i], want[i])
		}
	}
}

func TestApplyToConfig(t *testing.T) {
	cfg := config.Default()
	pv := NewParamVector()
	radius := cfg.Derived.Params.SightRadius

	if err := pv.ApplyToConfig(cfg, []float64{0.002, 0.03, 0.15}); err != nil {
		t.Fatalf("ApplyToConfig: %v", err)
	}

	p := cfg.Derived.Params
	if p.CenterWeight != 0.002 || p.AlignmentWeight != 0.03 || p.SeparationWeight != 0.15 {
		t.Errorf("weights = %v %v %v, want 0.002 0.03 0.15",
			p.CenterWeight, p.AlignmentWeight, p.SeparationWeight)
	}
	if p.SightRadius != radius {
		t.Errorf("sight radius changed to %v, want %v", p.SightRadius, radius)
	}

	got := pv.ExtractFromConfig(cfg)
	if got[0] != 0.002 || got[1] != 0.03 || got[2] != 0.15 {
		t.Errorf("ExtractFromConfig = %v", got)
	}
}

func TestApplyToConfigLeavesBaseUntouched(t *testing.T) {
	base := config.Default()
	want := base.Derived.Params.AlignmentWeight

	fe := NewFitnessEvaluator(NewParamVector(), 10, []int64{1}, base, 0.8)
	cfg := fe.copyConfig()
	if err := fe.params.ApplyToConfig(cfg, []float64{0, 0.09, 0}); err != nil {
		t.Fatalf("ApplyToConfig: %v", err)
	}

	if base.Derived.Params.AlignmentWeight != want {
		t.Errorf("base alignment weight = %v, want %v", base.Derived.Params.AlignmentWeight, want)
	}
}
