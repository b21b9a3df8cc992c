package components

import (
	"errors"
	"fmt"
	"math"
)

// Configuration errors. They are returned wrapped in a *FieldError.
var (
	ErrInvalidSmoothingRadius = errors.New("smoothing radius must be positive")
	ErrInvalidSubsteps        = errors.New("substep count must be at least 1")
	ErrParticleCapacity       = errors.New("particle count exceeds capacity")
	ErrNegativeParticleCount  = errors.New("particle count must not be negative")
	ErrInvalidRadius          = errors.New("particle radius must be positive")
	ErrInvalidBoundingBox     = errors.New("bounding box must have positive finite extent")
	ErrInvalidParameter       = errors.New("parameter must be finite")
)

// FieldError names the parameter that failed validation.
type FieldError struct {
	Field string
	Value any
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s = %v: %v", e.Field, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// ParticleInfo holds the per-particle appearance and population settings.
type ParticleInfo struct {
	DefaultColor Color
	Radius       float32 // used for rest spacing and boundary margin
	Spacing      float32 // gap between neighbouring particles at rest
	NumParticles int     // live count, 0..capacity
}

// Validate checks the particle settings against the arena capacity.
func (p ParticleInfo) Validate(capacity int) error {
	if p.NumParticles < 0 {
		return &FieldError{Field: "particles.num_particles", Value: p.NumParticles, Err: ErrNegativeParticleCount}
	}
	if p.NumParticles > capacity {
		return &FieldError{Field: "particles.num_particles", Value: p.NumParticles, Err: ErrParticleCapacity}
	}
	if !(p.Radius > 0) || !isFinite(p.Radius) {
		return &FieldError{Field: "particles.radius", Value: p.Radius, Err: ErrInvalidRadius}
	}
	if !isFinite(p.Spacing) || p.Spacing < 0 {
		return &FieldError{Field: "particles.spacing", Value: p.Spacing, Err: ErrInvalidParameter}
	}
	return nil
}

// Stride returns the centre-to-centre distance of the rest arrangement.
func (p ParticleInfo) Stride() float32 {
	return 2*p.Radius + p.Spacing
}

// PhysicsInfo holds the tunable physics parameters.
type PhysicsInfo struct {
	Gravity                float32
	BoundaryDampingFactor  float32
	CollisionDampingFactor float32
	SmoothingRadius        float32
	PressureConstant       float32
	RestDensity            float32
	Substeps               int

	// UsePredictedPositions samples the grid and densities at the lookahead
	// position instead of the current one.
	UsePredictedPositions bool
}

// Validate rejects parameters that would divide by zero or propagate NaN.
func (p PhysicsInfo) Validate() error {
	if !(p.SmoothingRadius > 0) || !isFinite(p.SmoothingRadius) || !kernelScalesFinite(p.SmoothingRadius) {
		return &FieldError{Field: "physics.smoothing_radius", Value: p.SmoothingRadius, Err: ErrInvalidSmoothingRadius}
	}
	if p.Substeps < 1 {
		return &FieldError{Field: "physics.substeps", Value: p.Substeps, Err: ErrInvalidSubsteps}
	}
	for _, f := range []struct {
		name string
		v    float32
	}{
		{"physics.gravity", p.Gravity},
		{"physics.boundary_damping", p.BoundaryDampingFactor},
		{"physics.collision_damping", p.CollisionDampingFactor},
		{"physics.pressure_constant", p.PressureConstant},
		{"physics.rest_density", p.RestDensity},
	} {
		if !isFinite(f.v) {
			return &FieldError{Field: f.name, Value: f.v, Err: ErrInvalidParameter}
		}
	}
	return nil
}

// kernelScalesFinite reports whether the kernel normalisations for h are
// representable in float32. Very small h overflows 1/h⁸ and very large h
// overflows h² itself.
func kernelScalesFinite(h float32) bool {
	h2 := h * h
	h4 := h2 * h2
	h8 := h4 * h4
	h5 := h4 * h
	for _, v := range []float32{h2, h8, -24 / (math.Pi * h8), -30 / (math.Pi * h5)} {
		if !isFinite(v) || v == 0 {
			return false
		}
	}
	return true
}
