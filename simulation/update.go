package simulation

import (
	"math"

	"github.com/pthm-cable/sph/systems"
	"github.com/pthm-cable/sph/telemetry"
)

// Update advances the simulation by dt seconds split into the configured
// number of substeps. It is a no-op while paused unless a step was requested,
// in which case exactly one Update runs and the system stays paused. A
// non-positive or non-finite dt advances nothing and leaves a pending step
// for the next frame.
func (s *ParticleSystem) Update(dt float32) {
	n := s.particleInfo.NumParticles
	if n == 0 || !(dt > 0) || math.IsInf(float64(dt), 1) {
		return
	}

	if s.state == Paused {
		if !s.stepRequested {
			return
		}
		s.stepRequested = false
	}

	s.recorder.StartTick()
	defer s.recorder.EndTick()
	s.boundaryHits = 0

	phys := s.physicsInfo
	s.live = s.particles[:n]
	s.subDelta = dt / float32(phys.Substeps)

	s.field = systems.ForceField{
		Grid:             s.grid,
		Kernels:          systems.NewKernels(phys.SmoothingRadius),
		Positions:        s.samples[:n],
		Densities:        s.densities[:n],
		RestDensity:      phys.RestDensity,
		PressureConstant: phys.PressureConstant,
	}
	if s.hand != nil {
		s.field.Hand = s.hand.State()
	}

	for range phys.Substeps {
		s.substep()
	}

	if s.palette != nil {
		s.recorder.StartPhase(telemetry.PhaseColor)
		for i := range s.live {
			s.live[i].Color = s.palette.Color(s.live[i].Velocity)
		}
	}
	s.live = nil
}

func (s *ParticleSystem) substep() {
	phys := s.physicsInfo
	live := s.live
	samples := s.field.Positions
	dt := s.subDelta

	s.recorder.StartPhase(telemetry.PhasePredict)
	for i := range live {
		p := &live[i]
		p.Velocity = systems.ApplyGravity(p.Velocity, phys.Gravity, dt)
		if phys.UsePredictedPositions {
			samples[i] = systems.PredictPosition(p.Position, p.Velocity)
		} else {
			samples[i] = p.Position
		}
	}

	s.recorder.StartPhase(telemetry.PhaseSpatialGrid)
	s.grid.Rebuild(samples, phys.SmoothingRadius)

	s.recorder.StartPhase(telemetry.PhaseDensity)
	s.exec.Run(len(live), s.densityPass)

	s.recorder.StartPhase(telemetry.PhaseForces)
	s.field.Seed = s.seed ^ s.substepCount
	s.substepCount++
	s.exec.Run(len(live), s.forcePass)

	s.recorder.StartPhase(telemetry.PhaseIntegrate)
	for i := range live {
		p := &live[i]
		p.Position = p.Position.Add(p.Velocity.Scale(dt))
	}

	s.recorder.StartPhase(telemetry.PhaseBoundary)
	radius := s.particleInfo.Radius
	for i := range live {
		if systems.ResolveBoundary(&live[i], s.bbox, radius, phys.BoundaryDampingFactor) {
			s.boundaryHits++
		}
	}
}

// computeDensities is the density batch. It writes densities[start:end].
func (s *ParticleSystem) computeDensities(start, end int) {
	f := &s.field
	for i := start; i < end; i++ {
		f.Densities[i] = systems.ComputeDensity(f.Grid, f.Kernels, f.Positions[i])
	}
}

// applyForces is the force batch. It writes the velocities of live[start:end]
// and reads only frozen samples and densities for other particles.
func (s *ParticleSystem) applyForces(start, end int) {
	f := &s.field
	dt := s.subDelta
	for i := start; i < end; i++ {
		p := &s.live[i]
		p.Velocity = p.Velocity.Add(f.Acceleration(i, *p).Scale(dt))
	}
}
