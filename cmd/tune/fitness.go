package main

import (
	"fmt"
	"math"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/pthm-cable/boids/config"
	"github.com/pthm-cable/boids/game"
	"github.com/pthm-cable/boids/telemetry"
)

// Fitness weights.
const (
	warmupWindows      = 2    // windows skipped while the flock forms
	fragmentationScale = 0.25 // weight of the isolated fraction
)

// FitnessEvaluator runs headless flocks and scores how close they come to a
// target polarization.
type FitnessEvaluator struct {
	params      *ParamVector
	ticks       int32
	seeds       []int64
	baseConfig  *config.Config
	target      float64
	statsWindow float64 // simulated ms

	mu               sync.Mutex
	lastPolarization float64 // mean polarization of the most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, ticks int32, seeds []int64, baseCfg *config.Config, target float64) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		ticks:       ticks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		target:      target,
		statsWindow: 2000,
	}
}

// LastPolarization returns the mean polarization from the most recent evaluation.
func (fe *FitnessEvaluator) LastPolarization() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastPolarization
}

// seedResult holds the score of one seed.
type seedResult struct {
	fitness      float64
	polarization float64
}

// Evaluate computes fitness for a raw parameter vector (lower = better).
// Seeds run in parallel, one flock per goroutine.
func (fe *FitnessEvaluator) Evaluate(x []float64) (float64, error) {
	cfg := fe.copyConfig()
	if err := fe.params.ApplyToConfig(cfg, x); err != nil {
		return math.Inf(1), err
	}

	results := make([]seedResult, len(fe.seeds))
	var eg errgroup.Group
	for i, seed := range fe.seeds {
		eg.Go(func() error {
			windows, err := fe.runSimulation(cfg, seed)
			if err != nil {
				return fmt.Errorf("seed %d: %w", seed, err)
			}
			results[i] = fe.score(windows)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return math.Inf(1), err
	}

	var totalFitness, totalPolarization float64
	for _, r := range results {
		totalFitness += r.fitness
		totalPolarization += r.polarization
	}
	n := float64(len(results))

	fe.mu.Lock()
	fe.lastPolarization = totalPolarization / n
	fe.mu.Unlock()

	return totalFitness / n, nil
}

// runSimulation executes a single headless run and returns its stats windows.
func (fe *FitnessEvaluator) runSimulation(cfg *config.Config, seed int64) ([]telemetry.WindowStats, error) {
	var windows []telemetry.WindowStats

	g, err := game.NewGameWithOptions(game.Options{
		Seed:           seed,
		Config:         cfg,
		Headless:       true,
		StatsWindow:    fe.statsWindow,
		StepsPerUpdate: 1,
		StatsCallback: func(stats telemetry.WindowStats) {
			windows = append(windows, stats)
		},
	})
	if err != nil {
		return nil, err
	}
	defer g.Unload()

	for g.Tick() < fe.ticks {
		g.UpdateHeadless()
	}
	return windows, nil
}

// score turns the windows of one run into a fitness. Runs too short to
// produce windows past the warmup score as the worst possible miss.
func (fe *FitnessEvaluator) score(windows []telemetry.WindowStats) seedResult {
	if len(windows) <= warmupWindows {
		return seedResult{fitness: 1 + fragmentationScale}
	}

	var sqErr, isolated, polarization float64
	valid := windows[warmupWindows:]
	for _, w := range valid {
		d := w.PolarizationMean - fe.target
		sqErr += d * d
		isolated += w.IsolatedFrac
		polarization += w.PolarizationMean
	}
	n := float64(len(valid))

	return seedResult{
		fitness:      sqErr/n + fragmentationScale*isolated/n,
		polarization: polarization / n,
	}
}

// copyConfig returns a copy of the base config that tuning may modify.
// Overrides are pointers, so ApplyToConfig replaces them instead of writing
// through.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}
