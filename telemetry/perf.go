// Package telemetry collects timing and fluid statistics from the particle
// system and exports them as logs, CSV files and Prometheus metrics.
package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for one Update. Substep phases accumulate across substeps.
const (
	PhasePredict     = "predict"
	PhaseSpatialGrid = "spatial_grid"
	PhaseDensity     = "density"
	PhaseForces      = "forces"
	PhaseIntegrate   = "integrate"
	PhaseBoundary    = "boundary"
	PhaseColor       = "color"
)

// Phases lists the phase names in execution order.
var Phases = []string{
	PhasePredict, PhaseSpatialGrid, PhaseDensity, PhaseForces,
	PhaseIntegrate, PhaseBoundary, PhaseColor,
}

// PerfSample holds timing data for a single Update.
type PerfSample struct {
	TickDuration time.Duration
	Phases       map[string]time.Duration
}

// PerfCollector tracks per-phase Update timing over a rolling window.
type PerfCollector struct {
	windowSize  int
	samples     []PerfSample
	writeIndex  int
	sampleCount int

	currentPhases map[string]time.Duration
	tickStart     time.Time
	phaseStart    time.Time
	lastPhase     string

	now func() time.Time
}

// NewPerfCollector creates a collector averaging over windowSize Updates.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]PerfSample, windowSize),
		currentPhases: make(map[string]time.Duration),
		now:           time.Now,
	}
}

// StartTick begins timing an Update.
func (p *PerfCollector) StartTick() {
	p.tickStart = p.now()
	p.currentPhases = make(map[string]time.Duration, len(Phases))
	p.lastPhase = ""
}

// StartPhase ends the running phase, if any, and starts timing phase.
func (p *PerfCollector) StartPhase(phase string) {
	now := p.now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndTick ends the running phase and records the sample.
func (p *PerfCollector) EndTick() {
	now := p.now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
		p.lastPhase = ""
	}

	p.samples[p.writeIndex] = PerfSample{
		TickDuration: now.Sub(p.tickStart),
		Phases:       p.currentPhases,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration

	// Average duration and share of tick time per phase
	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64

	TicksPerSecond float64

	// Supplied by the frame timer in the viewer; zero when headless.
	FPS float64
}

// Stats aggregates the samples in the current window.
func (p *PerfCollector) Stats() PerfStats {
	stats := PerfStats{
		PhaseAvg: make(map[string]time.Duration),
		PhasePct: make(map[string]float64),
	}
	if p.sampleCount == 0 {
		return stats
	}

	var total time.Duration
	phaseSum := make(map[string]time.Duration)
	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		total += s.TickDuration
		if i == 0 || s.TickDuration < stats.MinTickDuration {
			stats.MinTickDuration = s.TickDuration
		}
		if s.TickDuration > stats.MaxTickDuration {
			stats.MaxTickDuration = s.TickDuration
		}
		for phase, d := range s.Phases {
			phaseSum[phase] += d
		}
	}

	n := time.Duration(p.sampleCount)
	stats.AvgTickDuration = total / n
	for phase, sum := range phaseSum {
		avg := sum / n
		stats.PhaseAvg[phase] = avg
		if stats.AvgTickDuration > 0 {
			stats.PhasePct[phase] = float64(avg) / float64(stats.AvgTickDuration) * 100
		}
	}
	if stats.AvgTickDuration > 0 {
		stats.TicksPerSecond = float64(time.Second) / float64(stats.AvgTickDuration)
	}
	return stats
}

// LogStats logs the stats at Info on logger.
func (s PerfStats) LogStats(logger *slog.Logger) {
	attrs := []any{
		"avg_tick_us", s.AvgTickDuration.Microseconds(),
		"min_tick_us", s.MinTickDuration.Microseconds(),
		"max_tick_us", s.MaxTickDuration.Microseconds(),
		"ticks_per_sec", int(s.TicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}
	for _, phase := range Phases {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, phase+"_pct", float64(int(pct*10))/10)
		}
	}
	logger.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("min_tick_us", s.MinTickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Float64("ticks_per_sec", s.TicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for _, phase := range Phases {
		if pct, ok := s.PhasePct[phase]; ok {
			attrs = append(attrs, slog.Float64(phase+"_pct", pct))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	WindowEnd      int32   `csv:"window_end"`
	AvgTickUS      int64   `csv:"avg_tick_us"`
	MinTickUS      int64   `csv:"min_tick_us"`
	MaxTickUS      int64   `csv:"max_tick_us"`
	TicksPerSec    float64 `csv:"ticks_per_sec"`
	FPS            float64 `csv:"fps"`
	PredictPct     float64 `csv:"predict_pct"`
	SpatialGridPct float64 `csv:"spatial_grid_pct"`
	DensityPct     float64 `csv:"density_pct"`
	ForcesPct      float64 `csv:"forces_pct"`
	IntegratePct   float64 `csv:"integrate_pct"`
	BoundaryPct    float64 `csv:"boundary_pct"`
	ColorPct       float64 `csv:"color_pct"`
}

// ToCSV converts PerfStats to a flat CSV record.
func (s PerfStats) ToCSV(windowEnd int32) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:      windowEnd,
		AvgTickUS:      s.AvgTickDuration.Microseconds(),
		MinTickUS:      s.MinTickDuration.Microseconds(),
		MaxTickUS:      s.MaxTickDuration.Microseconds(),
		TicksPerSec:    s.TicksPerSecond,
		FPS:            s.FPS,
		PredictPct:     s.PhasePct[PhasePredict],
		SpatialGridPct: s.PhasePct[PhaseSpatialGrid],
		DensityPct:     s.PhasePct[PhaseDensity],
		ForcesPct:      s.PhasePct[PhaseForces],
		IntegratePct:   s.PhasePct[PhaseIntegrate],
		BoundaryPct:    s.PhasePct[PhaseBoundary],
		ColorPct:       s.PhasePct[PhaseColor],
	}
}
