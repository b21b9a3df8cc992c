package systems

import (
	"math"

	"github.com/pthm-cable/sph/components"
)

// PredictionStep is the fixed lookahead, in seconds, used to compute predicted
// positions. It is independent of the frame time.
const PredictionStep float32 = 1.0 / 120.0

// down is the unit gravity direction in y-up world space.
var down = components.Vec2{X: 0, Y: -1}

// ApplyGravity returns v after dt seconds of gravitational acceleration g.
func ApplyGravity(v components.Vec2, g, dt float32) components.Vec2 {
	return v.Add(down.Scale(g * dt))
}

// PredictPosition returns the lookahead position used for neighbour sampling.
func PredictPosition(p, v components.Vec2) components.Vec2 {
	return p.Add(v.Scale(PredictionStep))
}

// ComputeDensity sums the density kernel over every neighbour of p in grid,
// including a particle located at p itself.
func ComputeDensity(grid *SpatialHash, k Kernels, p components.Vec2) float32 {
	var density float32
	grid.ForEachNeighbor(p, func(_ int, distSq float32) {
		density += k.Density(distSq)
	})
	return density
}

// PressureFromDensity is the equation of state p = (ρ − ρ₀)·k. It is negative
// below rest density.
func PressureFromDensity(density, restDensity, stiffness float32) float32 {
	return (density - restDensity) * stiffness
}

// SharedPressure is the mean of the two particles' pressures, which keeps the
// pairwise force symmetric.
func SharedPressure(densityA, densityB, restDensity, stiffness float32) float32 {
	return (PressureFromDensity(densityA, restDensity, stiffness) +
		PressureFromDensity(densityB, restDensity, stiffness)) / 2
}

// ForceField bundles the inputs of the force pass. All slices are frozen for
// the duration of the pass: Positions and Densities are read by every batch.
type ForceField struct {
	Grid             *SpatialHash
	Kernels          Kernels
	Positions        []components.Vec2 // sample positions the grid was built from
	Densities        []float32
	RestDensity      float32
	PressureConstant float32
	Hand             components.HandState
	Seed             uint64 // varies the coincident-particle direction per substep
}

// PressureAcceleration returns the pressure-gradient force on particle i
// divided by its own density. Neighbours with zero or non-finite density
// contribute nothing, and such a particle feels no pressure itself.
func (f *ForceField) PressureAcceleration(i int) components.Vec2 {
	rhoI := f.Densities[i]
	if !usableDensity(rhoI) {
		return components.Vec2{}
	}
	pi := f.Positions[i]
	var force components.Vec2

	f.Grid.ForEachNeighbor(pi, func(j int, distSq float32) {
		if j == i {
			return
		}
		rhoJ := f.Densities[j]
		if !usableDensity(rhoJ) {
			return
		}
		dist := float32(math.Sqrt(float64(distSq)))
		var dir components.Vec2
		if dist > 0 {
			dir = pi.Sub(f.Positions[j]).Scale(1 / dist)
		} else {
			dir = CoincidentDirection(i, j, f.Seed)
		}
		slope := f.Kernels.PressureDerivative(dist)
		shared := SharedPressure(rhoI, rhoJ, f.RestDensity, f.PressureConstant)
		// Force is the negative pressure gradient; slope < 0, so positive
		// pressure pushes i away from j.
		force = force.Sub(dir.Scale(shared * slope / rhoJ))
	})

	return force.Scale(1 / rhoI)
}

func usableDensity(rho float32) bool {
	return rho > 0 && !math.IsInf(float64(rho), 1)
}

// InteractionAcceleration is the hand's pull or push on a particle at pos
// moving with vel. It falls off linearly from the hand centre to its radius
// and damps the particle's existing velocity in proportion.
func InteractionAcceleration(hand components.HandState, pos, vel components.Vec2) components.Vec2 {
	if !hand.Active() {
		return components.Vec2{}
	}
	toHand := hand.Position.Sub(pos)
	distSq := toHand.LenSq()
	if distSq >= hand.Radius*hand.Radius {
		return components.Vec2{}
	}
	dist := float32(math.Sqrt(float64(distSq)))
	centerFactor := 1 - dist/hand.Radius
	return toHand.Normalize().Scale(hand.SignedStrength()).Sub(vel).Scale(centerFactor)
}

// Acceleration is the total non-gravitational acceleration on particle i.
func (f *ForceField) Acceleration(i int, p components.Particle) components.Vec2 {
	return InteractionAcceleration(f.Hand, p.Position, p.Velocity).Add(f.PressureAcceleration(i))
}

// CoincidentDirection returns a pseudo-random unit vector for two particles at
// the same position. The angle is uniformly distributed over (pair, seed) and
// CoincidentDirection(j, i) == -CoincidentDirection(i, j), so the pair is
// pushed apart symmetrically. It is safe to call from concurrent batches.
func CoincidentDirection(i, j int, seed uint64) components.Vec2 {
	a, b := uint64(i), uint64(j)
	sign := float32(1)
	if a > b {
		a, b = b, a
		sign = -1
	}
	x := splitmix64(seed ^ (a << 32) ^ b)
	angle := float64(x>>11) / (1 << 53) * 2 * math.Pi
	return components.Vec2{X: float32(math.Cos(angle)), Y: float32(math.Sin(angle))}.Scale(sign)
}

func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
