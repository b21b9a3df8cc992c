package main

import (
	"log/slog"
	"math"
	"sync"

	"github.com/pthm-cable/sph/config"
	"github.com/pthm-cable/sph/game"
	"github.com/pthm-cable/sph/telemetry"
)

// Fitness weights. Both terms are dimensionless.
const (
	weightDensitySpread = 1.0
	weightKinetic       = 0.5

	// failedFitness is returned for runs that blow up or lose every particle.
	failedFitness = 1e6
)

// FitnessEvaluator runs headless simulations and scores how settled the
// fluid is at the end (lower = better).
type FitnessEvaluator struct {
	params     *ParamVector
	frames     int
	seeds      []uint64
	baseConfig *config.Config

	mu        sync.Mutex
	lastStats telemetry.FluidStats // from the most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, frames int, seeds []uint64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		frames:     frames,
		seeds:      seeds,
		baseConfig: baseCfg,
	}
}

// LastStats returns the final fluid stats of the most recent evaluation's
// first seed.
func (fe *FitnessEvaluator) LastStats() telemetry.FluidStats {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastStats
}

// Evaluate averages the fitness of x over all seeds, run in parallel.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]telemetry.FluidStats, len(fe.seeds))
	errs := make([]error, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s uint64) {
			defer wg.Done()
			results[idx], errs[idx] = fe.runSimulation(x, s)
		}(i, seed)
	}
	wg.Wait()

	var total float64
	for i, r := range results {
		if errs[i] != nil {
			total += failedFitness
			continue
		}
		total += computeFitness(r)
	}

	fe.mu.Lock()
	if len(results) > 0 {
		fe.lastStats = results[0]
	}
	fe.mu.Unlock()

	return total / float64(len(fe.seeds))
}

// runSimulation settles the fluid for the configured number of frames and
// samples it.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed uint64) (telemetry.FluidStats, error) {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)
	if err := cfg.Refresh(); err != nil {
		return telemetry.FluidStats{}, err
	}

	g, err := game.NewGame(game.Options{
		Config:   cfg,
		Logger:   slog.New(slog.DiscardHandler),
		Seed:     seed,
		Headless: true,
	})
	if err != nil {
		return telemetry.FluidStats{}, err
	}
	defer g.Unload()

	for int(g.Frame()) < fe.frames {
		g.UpdateHeadless()
	}
	return g.FluidStats(), nil
}

// copyConfig returns a shallow copy of the base config with file output
// disabled. The copy's Derived values are recomputed by Refresh.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	cfg.Telemetry.OutputDir = ""
	cfg.Metrics.Addr = ""
	return &cfg
}

// computeFitness scores a settled fluid: the relative density spread plus
// kinetic energy per particle. Non-finite stats score as failures.
func computeFitness(s telemetry.FluidStats) float64 {
	if s.Particles == 0 || !(s.DensityMean > 0) {
		return failedFitness
	}
	spread := s.DensityStd / s.DensityMean
	kinetic := s.KineticEnergy / float64(s.Particles)
	f := weightDensitySpread*spread + weightKinetic*kinetic
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return failedFitness
	}
	return f
}
