// Package main searches for pressure and density parameters that let the
// fluid settle quickly into an even rest state.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	flag "github.com/spf13/pflag"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/sph/config"
)

// tuneRecord is one row of tune_log.csv.
type tuneRecord struct {
	Eval             int     `csv:"eval"`
	Fitness          float64 `csv:"fitness"`
	PressureConstant float64 `csv:"pressure_constant"`
	RestDensity      float64 `csv:"rest_density"`
	SmoothingRadius  float64 `csv:"smoothing_radius"`
	DensityMean      float64 `csv:"density_mean"`
	DensityStd       float64 `csv:"density_std"`
	KineticEnergy    float64 `csv:"kinetic_energy"`
}

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	frames := flag.Int("frames", 600, "Settling frames per evaluation")
	particles := flag.Int("particles", 0, "Particle count (0 = use config)")
	seeds := flag.Int("seeds", 2, "Number of seeds per evaluation")
	maxEvals := flag.Int("max-evals", 60, "Maximum number of evaluations")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	baseCfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if *particles > 0 {
		baseCfg.Particles.Count = *particles
		if err := baseCfg.Refresh(); err != nil {
			log.Fatalf("invalid particle count: %v", err)
		}
	}

	params := NewParamVector()
	evalSeeds := make([]uint64, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = uint64(i*1000 + 42)
	}
	evaluator := NewFitnessEvaluator(params, *frames, evalSeeds, baseCfg)

	initX := params.Normalize(params.ExtractFromConfig(baseCfg))
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			return evaluator.Evaluate(params.Denormalize(x))
		},
	}
	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
		Concurrent:      0, // seeds already run in parallel
	}
	method := &optimize.NelderMead{SimplexSize: 0.2}

	logPath := filepath.Join(*outputDir, "tune_log.csv")
	logFile, err := os.Create(logPath)
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()
	headerWritten := false

	evalCount := 0
	bestFitness := 1e18
	var bestParams []float64
	startTime := time.Now()

	originalFunc := problem.Func
	problem.Func = func(x []float64) float64 {
		fitness := originalFunc(x)
		evalCount++

		clamped := params.Clamp(params.Denormalize(x))
		if fitness < bestFitness {
			bestFitness = fitness
			bestParams = clamped
		}

		stats := evaluator.LastStats()
		rec := []tuneRecord{{
			Eval:             evalCount,
			Fitness:          fitness,
			PressureConstant: clamped[0],
			RestDensity:      clamped[1],
			SmoothingRadius:  clamped[2],
			DensityMean:      stats.DensityMean,
			DensityStd:       stats.DensityStd,
			KineticEnergy:    stats.KineticEnergy,
		}}
		if headerWritten {
			err = gocsv.MarshalWithoutHeaders(rec, logFile)
		} else {
			err = gocsv.Marshal(rec, logFile)
			headerWritten = err == nil
		}
		if err != nil {
			log.Printf("failed to write log row: %v", err)
		}

		elapsed := time.Since(startTime)
		avgPerEval := elapsed / time.Duration(evalCount)
		remaining := time.Duration(*maxEvals-evalCount) * avgPerEval
		fmt.Printf("Eval %d/%d: fitness=%.4f k=%.1f rho0=%.1f h=%.3f (best=%.4f) | elapsed: %s, ETA: %s\n",
			evalCount, *maxEvals, fitness, clamped[0], clamped[1], clamped[2], bestFitness,
			formatDuration(elapsed), formatDuration(remaining))

		return fitness
	}

	fmt.Printf("Starting Nelder-Mead search over %d parameters, max_evals=%d\n", params.Dim(), *maxEvals)
	fmt.Printf("Seeds per evaluation: %d, frames per run: %d, particles: %d\n", *seeds, *frames, baseCfg.Particles.Count)

	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}
	if bestParams == nil && result != nil {
		bestParams = params.Clamp(params.Denormalize(result.X))
	}
	if bestParams == nil {
		log.Fatal("no evaluations completed")
	}

	fmt.Printf("\nSearch complete after %d evaluations in %s\n", evalCount, formatDuration(time.Since(startTime)))
	fmt.Printf("Best fitness: %.4f\n", bestFitness)
	fmt.Println("\nBest parameters:")
	for i, spec := range params.Specs {
		fmt.Printf("  %s: %.6f\n", spec.Path, bestParams[i])
	}

	bestCfg := *baseCfg
	params.ApplyToConfig(&bestCfg, bestParams)
	if err := bestCfg.Refresh(); err != nil {
		log.Fatalf("best parameters rejected: %v", err)
	}
	configOutPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(configOutPath); err != nil {
		log.Printf("failed to write best config: %v", err)
	} else {
		fmt.Printf("\nBest config saved to: %s\n", configOutPath)
	}
}
