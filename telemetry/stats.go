package telemetry

import (
	"log/slog"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/sph/components"
)

// FluidStats summarises the particle state at one instant. Mass is taken as
// one per particle.
type FluidStats struct {
	Particles int `csv:"particles"`

	DensityMean  float64 `csv:"density_mean"`
	DensityStd   float64 `csv:"density_std"`
	DensityP10   float64 `csv:"density_p10"`
	DensityP50   float64 `csv:"density_p50"`
	DensityP90   float64 `csv:"density_p90"`
	DensityMax   float64 `csv:"density_max"`
	DensityError float64 `csv:"density_error"` // mean |ρ − ρ₀|

	SpeedMean     float64 `csv:"speed_mean"`
	SpeedP90      float64 `csv:"speed_p90"`
	SpeedMax      float64 `csv:"speed_max"`
	KineticEnergy float64 `csv:"kinetic_energy"`
}

// Summary holds the mean, spread and empirical quantiles of a sample.
type Summary struct {
	Mean, Std     float64
	P10, P50, P90 float64
	Max           float64
}

// Summarize sorts values in place and summarises them. Std is zero for fewer
// than two values; all fields are zero for an empty slice.
func Summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}
	slices.Sort(values)

	var s Summary
	if len(values) < 2 {
		s.Mean = values[0]
	} else {
		s.Mean, s.Std = stat.MeanStdDev(values, nil)
	}
	s.P10 = stat.Quantile(0.1, stat.Empirical, values, nil)
	s.P50 = stat.Quantile(0.5, stat.Empirical, values, nil)
	s.P90 = stat.Quantile(0.9, stat.Empirical, values, nil)
	s.Max = floats.Max(values)
	return s
}

// ComputeFluidStats summarises particles and their densities. densities must
// be aligned with particles; extra entries are ignored.
func ComputeFluidStats(particles []components.Particle, densities []float32, restDensity float32) FluidStats {
	n := len(particles)
	out := FluidStats{Particles: n}
	if n == 0 {
		return out
	}

	rho := make([]float64, n)
	speed := make([]float64, n)
	deviation := make([]float64, n)
	var energy float64
	for i, p := range particles {
		if i < len(densities) {
			rho[i] = float64(densities[i])
		}
		deviation[i] = math.Abs(rho[i] - float64(restDensity))
		v2 := float64(p.Velocity.LenSq())
		speed[i] = math.Sqrt(v2)
		energy += v2 / 2
	}

	d := Summarize(rho)
	out.DensityMean, out.DensityStd = d.Mean, d.Std
	out.DensityP10, out.DensityP50, out.DensityP90 = d.P10, d.P50, d.P90
	out.DensityMax = d.Max
	out.DensityError = stat.Mean(deviation, nil)

	sp := Summarize(speed)
	out.SpeedMean, out.SpeedP90, out.SpeedMax = sp.Mean, sp.P90, sp.Max
	out.KineticEnergy = energy
	return out
}

// WindowStats holds aggregated statistics for one reporting window.
type WindowStats struct {
	WindowStartFrame int32   `csv:"-"`
	WindowEndFrame   int32   `csv:"window_end"`
	SimTimeSec       float64 `csv:"sim_time"`

	// Counters over the window
	Frames       int `csv:"frames"`
	PausedFrames int `csv:"paused_frames"`
	HandFrames   int `csv:"hand_frames"`
	BoundaryHits int `csv:"boundary_hits"`

	// Sampled at window end
	FluidStats
}

// LogValue implements slog.LogValuer.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_end", int(s.WindowEndFrame)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("particles", s.Particles),
		slog.Int("frames", s.Frames),
		slog.Int("paused_frames", s.PausedFrames),
		slog.Int("boundary_hits", s.BoundaryHits),
		slog.Float64("density_mean", s.DensityMean),
		slog.Float64("density_std", s.DensityStd),
		slog.Float64("density_error", s.DensityError),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_max", s.SpeedMax),
		slog.Float64("kinetic_energy", s.KineticEnergy),
	)
}

// LogStats logs the window at Info on logger.
func (s WindowStats) LogStats(logger *slog.Logger) {
	logger.Info("stats",
		"window_end", s.WindowEndFrame,
		"sim_time", s.SimTimeSec,
		"particles", s.Particles,
		"density_mean", s.DensityMean,
		"density_p10", s.DensityP10,
		"density_p90", s.DensityP90,
		"density_error", s.DensityError,
		"speed_mean", s.SpeedMean,
		"speed_max", s.SpeedMax,
		"kinetic_energy", s.KineticEnergy,
		"boundary_hits", s.BoundaryHits,
	)
}
