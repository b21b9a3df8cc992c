// Package simulation owns the particle arena and runs the SPH substep loop.
package simulation

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/sph/components"
	"github.com/pthm-cable/sph/systems"
)

// Options configures a ParticleSystem.
type Options struct {
	// Capacity is the fixed arena size. Zero uses components.MaxParticles.
	Capacity int

	// Workers is the batch width of the parallel passes. Zero uses
	// systems.DefaultBatchWidth.
	Workers int

	// SerialThreshold is the live count below which passes run on the
	// calling goroutine. Zero uses systems.DefaultSerialThreshold; a negative
	// value always dispatches to the worker pool.
	SerialThreshold int

	// Seed varies the direction chosen for coincident particles.
	Seed uint64

	Logger   *slog.Logger // nil discards
	Recorder Recorder     // nil discards

	ParticleInfo components.ParticleInfo
	PhysicsInfo  components.PhysicsInfo
	BoundingBox  components.BoundingBox

	Hand    *components.Hand      // optional
	Palette *systems.SpeedPalette // optional; nil keeps each particle's colour
}

// ParticleSystem is the composition root of the simulation. It is not safe
// for concurrent use; all methods must be called from one goroutine.
type ParticleSystem struct {
	capacity int

	// Arena storage, allocated once. Only [0, NumParticles) is live.
	particles []components.Particle
	samples   []components.Vec2 // predicted or actual positions for this substep
	densities []float32

	grid  *systems.SpatialHash
	exec  *systems.BatchExecutor
	field systems.ForceField

	particleInfo components.ParticleInfo
	physicsInfo  components.PhysicsInfo
	bbox         components.BoundingBox
	hand         *components.Hand
	palette      *systems.SpeedPalette

	state         RunState
	stepRequested bool
	seed          uint64
	substepCount  uint64
	boundaryHits  int // contacts in the last advancing Update

	// per-substep values read by the batch passes
	live     []components.Particle
	subDelta float32

	densityPass func(start, end int)
	forcePass   func(start, end int)

	logger   *slog.Logger
	recorder Recorder
}

// New validates opts and allocates the arena. Particles are placed in the
// rest arrangement.
func New(opts Options) (*ParticleSystem, error) {
	capacity := opts.Capacity
	if capacity == 0 {
		capacity = components.MaxParticles
	}
	if capacity < 0 {
		return nil, fmt.Errorf("simulation: %w", &components.FieldError{
			Field: "world.capacity", Value: capacity, Err: components.ErrParticleCapacity,
		})
	}
	if err := validate(opts.ParticleInfo, opts.PhysicsInfo, opts.BoundingBox, capacity); err != nil {
		return nil, fmt.Errorf("simulation: %w", err)
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = systems.DefaultBatchWidth
	}
	threshold := opts.SerialThreshold
	switch {
	case threshold == 0:
		threshold = systems.DefaultSerialThreshold
	case threshold < 0:
		threshold = 0
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	var rec Recorder = nopRecorder{}
	if opts.Recorder != nil {
		rec = opts.Recorder
	}

	s := &ParticleSystem{
		capacity:     capacity,
		particles:    make([]components.Particle, capacity),
		samples:      make([]components.Vec2, capacity),
		densities:    make([]float32, capacity),
		grid:         systems.NewSpatialHash(capacity),
		exec:         systems.NewBatchExecutor(workers, threshold),
		particleInfo: opts.ParticleInfo,
		physicsInfo:  opts.PhysicsInfo,
		bbox:         opts.BoundingBox,
		hand:         opts.Hand,
		palette:      opts.Palette,
		seed:         opts.Seed,
		logger:       logger,
		recorder:     rec,
	}
	s.densityPass = s.computeDensities
	s.forcePass = s.applyForces
	s.ArrangeParticles()

	logger.Debug("particle system created",
		"capacity", capacity,
		"particles", s.particleInfo.NumParticles,
		"workers", workers,
		"serial_threshold", threshold,
	)
	return s, nil
}

func validate(pi components.ParticleInfo, phys components.PhysicsInfo, box components.BoundingBox, capacity int) error {
	if err := pi.Validate(capacity); err != nil {
		return err
	}
	if err := phys.Validate(); err != nil {
		return err
	}
	return box.Validate()
}

// Close stops the worker pool.
func (s *ParticleSystem) Close() {
	s.exec.Close()
	s.logger.Debug("particle system closed")
}

// Capacity returns the arena size.
func (s *ParticleSystem) Capacity() int { return s.capacity }

// Particles returns the live particles. The slice aliases the arena: it is
// valid until the next Update or ArrangeParticles and must not be retained
// across frames or appended to.
func (s *ParticleSystem) Particles() []components.Particle {
	return s.particles[:s.particleInfo.NumParticles]
}

// Densities returns the densities computed in the last substep, aligned with
// Particles.
func (s *ParticleSystem) Densities() []float32 {
	return s.densities[:s.particleInfo.NumParticles]
}

// ParticleInfo returns the current particle settings.
func (s *ParticleSystem) ParticleInfo() components.ParticleInfo { return s.particleInfo }

// PhysicsInfo returns the current physics settings.
func (s *ParticleSystem) PhysicsInfo() components.PhysicsInfo { return s.physicsInfo }

// BoundingBox returns the current container.
func (s *ParticleSystem) BoundingBox() components.BoundingBox { return s.bbox }

// SetParticleInfo replaces the particle settings. On error the previous
// settings are kept. Slots that become live keep whatever state they held;
// call ArrangeParticles to reset them.
func (s *ParticleSystem) SetParticleInfo(pi components.ParticleInfo) error {
	if err := pi.Validate(s.capacity); err != nil {
		s.logger.Warn("rejected particle settings", "error", err)
		return err
	}
	if pi.NumParticles != s.particleInfo.NumParticles {
		s.logger.Debug("particle count changed", "from", s.particleInfo.NumParticles, "to", pi.NumParticles)
	}
	s.particleInfo = pi
	return nil
}

// SetPhysicsInfo replaces the physics settings. On error the previous
// settings are kept.
func (s *ParticleSystem) SetPhysicsInfo(phys components.PhysicsInfo) error {
	if err := phys.Validate(); err != nil {
		s.logger.Warn("rejected physics settings", "error", err)
		return err
	}
	s.physicsInfo = phys
	return nil
}

// SetBoundingBox replaces the container. On error the previous box is kept.
func (s *ParticleSystem) SetBoundingBox(box components.BoundingBox) error {
	if err := box.Validate(); err != nil {
		s.logger.Warn("rejected bounding box", "error", err)
		return err
	}
	s.bbox = box
	return nil
}

// BoundaryHits returns the number of particle-boundary contacts resolved by
// the last Update that advanced the simulation, summed over substeps.
func (s *ParticleSystem) BoundaryHits() int { return s.boundaryHits }

// SetPalette enables colour-by-speed, or disables it when p is nil.
func (s *ParticleSystem) SetPalette(p *systems.SpeedPalette) { s.palette = p }

// AttachHand sets the interaction actuator.
func (s *ParticleSystem) AttachHand(h *components.Hand) { s.hand = h }

// DetachHand removes the interaction actuator.
func (s *ParticleSystem) DetachHand() { s.hand = nil }

// Hand returns the attached hand, or nil.
func (s *ParticleSystem) Hand() *components.Hand { return s.hand }

// SetHandPosition moves the attached hand. It is a no-op without a hand.
func (s *ParticleSystem) SetHandPosition(p components.Vec2) {
	if s.hand != nil {
		s.hand.SetPosition(p)
	}
}
