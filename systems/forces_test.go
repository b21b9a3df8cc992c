package systems

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/sph/components"
)

func newField(t *testing.T, points []components.Vec2, h, rest, stiffness float32) *ForceField {
	t.Helper()
	g := NewSpatialHash(len(points))
	g.Rebuild(points, h)
	k := NewKernels(h)
	densities := make([]float32, len(points))
	for i, p := range points {
		densities[i] = ComputeDensity(g, k, p)
	}
	return &ForceField{
		Grid:             g,
		Kernels:          k,
		Positions:        points,
		Densities:        densities,
		RestDensity:      rest,
		PressureConstant: stiffness,
	}
}

func TestComputeDensitySquare(t *testing.T) {
	// Unit square with h = 2: every particle sees itself, two neighbours at
	// d² = 1 and the diagonal at d² = 2.
	points := []components.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}}
	f := newField(t, points, 2, 0, 1)

	want := DensityKernel(0, 2) + 2*DensityKernel(1, 2) + DensityKernel(2, 2)
	for i, rho := range f.Densities {
		assert.InEpsilon(t, want, rho, 1e-5, "particle %d", i)
	}
}

func TestComputeDensityIsolated(t *testing.T) {
	points := []components.Vec2{{X: 0, Y: 0}, {X: 10, Y: 10}}
	f := newField(t, points, 1, 0, 1)
	assert.InEpsilon(t, DensityKernel(0, 1), f.Densities[0], 1e-6)
	assert.Zero(t, f.PressureAcceleration(0))
}

func TestPressureRepelsAboveRestDensity(t *testing.T) {
	points := []components.Vec2{{X: 0, Y: 0}, {X: 0.5, Y: 0}}
	f := newField(t, points, 1, 0, 10)

	a0 := f.PressureAcceleration(0)
	a1 := f.PressureAcceleration(1)
	assert.Less(t, a0.X, float32(0))
	assert.Greater(t, a1.X, float32(0))
	assert.InDelta(t, -a0.X, a1.X, 1e-5)
	assert.Zero(t, a0.Y)
}

func TestPressureAttractsBelowRestDensity(t *testing.T) {
	points := []components.Vec2{{X: 0, Y: 0}, {X: 0.5, Y: 0}}
	f := newField(t, points, 1, 100, 10)

	assert.Greater(t, f.PressureAcceleration(0).X, float32(0))
	assert.Less(t, f.PressureAcceleration(1).X, float32(0))
}

func TestPressureSkipsZeroDensity(t *testing.T) {
	points := []components.Vec2{{X: 0, Y: 0}, {X: 0.5, Y: 0}}
	f := newField(t, points, 1, 0, 10)

	f.Densities[1] = 0
	assert.Zero(t, f.PressureAcceleration(0))

	f.Densities[0] = 0
	f.Densities[1] = 1
	assert.Zero(t, f.PressureAcceleration(0))
}

func TestPressureSkipsNonFiniteDensity(t *testing.T) {
	points := []components.Vec2{{X: 0, Y: 0}, {X: 0.5, Y: 0}}
	f := newField(t, points, 1, 0, 10)
	inf := float32(math.Inf(1))
	nan := float32(math.NaN())

	for _, rho := range []float32{inf, nan} {
		f.Densities[0], f.Densities[1] = 1, rho
		assert.Zero(t, f.PressureAcceleration(0), "neighbour density %v", rho)

		f.Densities[0], f.Densities[1] = rho, 1
		assert.Zero(t, f.PressureAcceleration(0), "own density %v", rho)
	}
}

func TestPressureCoincidentParticlesSeparate(t *testing.T) {
	points := []components.Vec2{{X: 1, Y: 1}, {X: 1, Y: 1}}
	f := newField(t, points, 1, 0, 10)
	f.Seed = 42

	a0 := f.PressureAcceleration(0)
	a1 := f.PressureAcceleration(1)
	require.False(t, math.IsNaN(float64(a0.X)) || math.IsNaN(float64(a0.Y)))
	assert.Greater(t, a0.Len(), float32(0))
	assert.InDelta(t, -a0.X, a1.X, 1e-4)
	assert.InDelta(t, -a0.Y, a1.Y, 1e-4)
}

func TestCoincidentDirection(t *testing.T) {
	for seed := uint64(0); seed < 20; seed++ {
		d := CoincidentDirection(3, 9, seed)
		assert.InDelta(t, 1, d.Len(), 1e-5)
		assert.Equal(t, d.Scale(-1), CoincidentDirection(9, 3, seed))
		assert.Equal(t, d, CoincidentDirection(3, 9, seed))
	}
	assert.NotEqual(t, CoincidentDirection(3, 9, 1), CoincidentDirection(3, 9, 2))
}

func TestInteractionAcceleration(t *testing.T) {
	hand := components.HandState{Position: components.Vec2{}, Radius: 2, Strength: 10}
	pos := components.Vec2{X: 1, Y: 0}

	assert.Zero(t, InteractionAcceleration(hand, pos, components.Vec2{}), "idle")

	hand.Action = components.HandPulling
	assert.Equal(t, components.Vec2{X: -5, Y: 0}, InteractionAcceleration(hand, pos, components.Vec2{}))
	assert.Equal(t, components.Vec2{X: -6, Y: 0}, InteractionAcceleration(hand, pos, components.Vec2{X: 2, Y: 0}))

	hand.Action = components.HandPushing
	assert.Equal(t, components.Vec2{X: 5, Y: 0}, InteractionAcceleration(hand, pos, components.Vec2{}))

	far := components.Vec2{X: 3, Y: 0}
	assert.Zero(t, InteractionAcceleration(hand, far, components.Vec2{X: 1, Y: 1}), "outside radius")
}

func TestGravityAndPrediction(t *testing.T) {
	v := ApplyGravity(components.Vec2{X: 1, Y: 0}, 9.8, 0.5)
	assert.InDelta(t, 1, v.X, 1e-6)
	assert.InDelta(t, -4.9, v.Y, 1e-6)

	p := PredictPosition(components.Vec2{X: 1, Y: 1}, components.Vec2{X: 120, Y: -240})
	assert.InDelta(t, 2, p.X, 1e-5)
	assert.InDelta(t, -1, p.Y, 1e-5)
}
