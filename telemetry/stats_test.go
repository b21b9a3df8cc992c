package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/sph/components"
)

func TestSummarize(t *testing.T) {
	values := []float64{10, 3, 7, 1, 9, 2, 8, 4, 6, 5}
	s := Summarize(values)

	if math.Abs(s.Mean-5.5) > 1e-12 {
		t.Errorf("mean = %v, want 5.5", s.Mean)
	}
	if math.Abs(s.Std-3.0276503540974917) > 1e-9 {
		t.Errorf("std = %v, want sample std of 1..10", s.Std)
	}
	if s.Max != 10 {
		t.Errorf("max = %v, want 10", s.Max)
	}
	if !(s.P10 <= s.P50 && s.P50 <= s.P90 && s.P90 <= s.Max) {
		t.Errorf("quantiles not ordered: %+v", s)
	}
	if s.P50 < 5 || s.P50 > 6 {
		t.Errorf("p50 = %v, want within [5, 6]", s.P50)
	}
	if values[0] != 1 {
		t.Error("expected values to be sorted in place")
	}
}

func TestSummarizeDegenerate(t *testing.T) {
	if s := Summarize(nil); s != (Summary{}) {
		t.Errorf("empty = %+v, want zero", s)
	}
	s := Summarize([]float64{4})
	if s.Mean != 4 || s.Std != 0 || s.P50 != 4 || s.Max != 4 {
		t.Errorf("single = %+v", s)
	}
}

func TestComputeFluidStats(t *testing.T) {
	particles := []components.Particle{
		{Velocity: components.Vec2{X: 3, Y: 4}},
		{Velocity: components.Vec2{}},
	}
	densities := []float32{2, 4}

	fs := ComputeFluidStats(particles, densities, 3)
	if fs.Particles != 2 {
		t.Errorf("particles = %d, want 2", fs.Particles)
	}
	if fs.DensityMean != 3 {
		t.Errorf("density mean = %v, want 3", fs.DensityMean)
	}
	if fs.DensityError != 1 {
		t.Errorf("density error = %v, want 1", fs.DensityError)
	}
	if fs.SpeedMax != 5 || fs.SpeedMean != 2.5 {
		t.Errorf("speed max/mean = %v/%v, want 5/2.5", fs.SpeedMax, fs.SpeedMean)
	}
	if fs.KineticEnergy != 12.5 {
		t.Errorf("kinetic energy = %v, want 12.5", fs.KineticEnergy)
	}
}

func TestComputeFluidStatsEmpty(t *testing.T) {
	fs := ComputeFluidStats(nil, nil, 1)
	if fs != (FluidStats{}) {
		t.Errorf("empty = %+v, want zero", fs)
	}
}
