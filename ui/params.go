package ui

import (
	"github.com/pthm-cable/sph/components"
)

// ParamChange flags which groups of parameters an edit touched.
type ParamChange uint8

const (
	ChangeParticles ParamChange = 1 << iota // radius or spacing
	ChangeCount                             // live particle count
	ChangePhysics
	ChangeHand
	ChangeRender
)

// Has reports whether all bits of f are set.
func (c ParamChange) Has(f ParamChange) bool { return c&f == f && f != 0 }

// ParamValues is the editable subset of the simulation parameters.
type ParamValues struct {
	Count   int
	Radius  float32
	Spacing float32

	Gravity          float32
	BoundaryDamping  float32
	SmoothingRadius  float32
	PressureConstant float32
	RestDensity      float32
	Substeps         int
	UsePredicted     bool

	HandRadius   float32
	HandStrength float32

	ColorBySpeed bool
}

// ValuesFrom reads the current parameters. A nil hand leaves the hand fields
// at zero.
func ValuesFrom(pi components.ParticleInfo, phys components.PhysicsInfo, hand *components.Hand, colorBySpeed bool) ParamValues {
	v := ParamValues{
		Count:            pi.NumParticles,
		Radius:           pi.Radius,
		Spacing:          pi.Spacing,
		Gravity:          phys.Gravity,
		BoundaryDamping:  phys.BoundaryDampingFactor,
		SmoothingRadius:  phys.SmoothingRadius,
		PressureConstant: phys.PressureConstant,
		RestDensity:      phys.RestDensity,
		Substeps:         phys.Substeps,
		UsePredicted:     phys.UsePredictedPositions,
		ColorBySpeed:     colorBySpeed,
	}
	if hand != nil {
		v.HandRadius = hand.Radius
		v.HandStrength = hand.StrengthFactor
	}
	return v
}

// ParticleInfo overlays the edited fields on base.
func (v ParamValues) ParticleInfo(base components.ParticleInfo) components.ParticleInfo {
	base.NumParticles = v.Count
	base.Radius = v.Radius
	base.Spacing = v.Spacing
	return base
}

// PhysicsInfo overlays the edited fields on base.
func (v ParamValues) PhysicsInfo(base components.PhysicsInfo) components.PhysicsInfo {
	base.Gravity = v.Gravity
	base.BoundaryDampingFactor = v.BoundaryDamping
	base.SmoothingRadius = v.SmoothingRadius
	base.PressureConstant = v.PressureConstant
	base.RestDensity = v.RestDensity
	base.Substeps = v.Substeps
	base.UsePredictedPositions = v.UsePredicted
	return base
}

// ApplyHand copies the hand fields onto h. A nil hand is ignored.
func (v ParamValues) ApplyHand(h *components.Hand) {
	if h == nil {
		return
	}
	h.Radius = v.HandRadius
	h.StrengthFactor = v.HandStrength
}

// Diff returns the groups that differ between a and b.
func Diff(a, b ParamValues) ParamChange {
	var c ParamChange
	if a.Count != b.Count {
		c |= ChangeCount
	}
	if a.Radius != b.Radius || a.Spacing != b.Spacing {
		c |= ChangeParticles
	}
	if a.Gravity != b.Gravity || a.BoundaryDamping != b.BoundaryDamping ||
		a.SmoothingRadius != b.SmoothingRadius || a.PressureConstant != b.PressureConstant ||
		a.RestDensity != b.RestDensity || a.Substeps != b.Substeps || a.UsePredicted != b.UsePredicted {
		c |= ChangePhysics
	}
	if a.HandRadius != b.HandRadius || a.HandStrength != b.HandStrength {
		c |= ChangeHand
	}
	if a.ColorBySpeed != b.ColorBySpeed {
		c |= ChangeRender
	}
	return c
}

// DefaultSections lays out the parameter panel. capacity bounds the count
// slider.
func DefaultSections(capacity int) []SectionDescriptor {
	return []SectionDescriptor{
		{
			Title: "Particles",
			Sliders: []SliderDescriptor{
				{
					ID: "count", Label: "Count", Format: "%.0f", Min: 0, Max: float32(capacity), Integer: true, Change: ChangeCount,
					Get: func(v *ParamValues) float32 { return float32(v.Count) },
					Set: func(v *ParamValues, x float32) { v.Count = int(x) },
				},
				{
					ID: "radius", Label: "Radius", Format: "%.3f", Min: 0.01, Max: 0.5, Change: ChangeParticles,
					Get: func(v *ParamValues) float32 { return v.Radius },
					Set: func(v *ParamValues, x float32) { v.Radius = x },
				},
				{
					ID: "spacing", Label: "Spacing", Format: "%.3f", Min: 0, Max: 1, Change: ChangeParticles,
					Get: func(v *ParamValues) float32 { return v.Spacing },
					Set: func(v *ParamValues, x float32) { v.Spacing = x },
				},
			},
		},
		{
			Title: "Physics",
			Sliders: []SliderDescriptor{
				{
					ID: "gravity", Label: "Gravity", Format: "%.2f", Min: -20, Max: 20, Change: ChangePhysics,
					Get: func(v *ParamValues) float32 { return v.Gravity },
					Set: func(v *ParamValues, x float32) { v.Gravity = x },
				},
				{
					ID: "boundary_damping", Label: "Wall damping", Format: "%.2f", Min: 0, Max: 1, Change: ChangePhysics,
					Get: func(v *ParamValues) float32 { return v.BoundaryDamping },
					Set: func(v *ParamValues, x float32) { v.BoundaryDamping = x },
				},
				{
					ID: "smoothing_radius", Label: "Smoothing h", Format: "%.3f", Min: 0.05, Max: 2, Change: ChangePhysics,
					Get: func(v *ParamValues) float32 { return v.SmoothingRadius },
					Set: func(v *ParamValues, x float32) { v.SmoothingRadius = x },
				},
				{
					ID: "pressure_constant", Label: "Pressure k", Format: "%.1f", Min: 0, Max: 500, Change: ChangePhysics,
					Get: func(v *ParamValues) float32 { return v.PressureConstant },
					Set: func(v *ParamValues, x float32) { v.PressureConstant = x },
				},
				{
					ID: "rest_density", Label: "Rest density", Format: "%.1f", Min: 0, Max: 200, Change: ChangePhysics,
					Get: func(v *ParamValues) float32 { return v.RestDensity },
					Set: func(v *ParamValues, x float32) { v.RestDensity = x },
				},
				{
					ID: "substeps", Label: "Substeps", Format: "%.0f", Min: 1, Max: 10, Integer: true, Change: ChangePhysics,
					Get: func(v *ParamValues) float32 { return float32(v.Substeps) },
					Set: func(v *ParamValues, x float32) { v.Substeps = int(x) },
				},
			},
			Toggles: []ToggleDescriptor{
				{
					ID: "use_predicted", Label: "Predicted positions", Change: ChangePhysics,
					Get: func(v *ParamValues) bool { return v.UsePredicted },
					Set: func(v *ParamValues, b bool) { v.UsePredicted = b },
				},
			},
		},
		{
			Title: "Hand",
			Sliders: []SliderDescriptor{
				{
					ID: "hand_radius", Label: "Radius", Format: "%.2f", Min: 0, Max: 10, Change: ChangeHand,
					Get: func(v *ParamValues) float32 { return v.HandRadius },
					Set: func(v *ParamValues, x float32) { v.HandRadius = x },
				},
				{
					ID: "hand_strength", Label: "Strength", Format: "%.1f", Min: 0, Max: 200, Change: ChangeHand,
					Get: func(v *ParamValues) float32 { return v.HandStrength },
					Set: func(v *ParamValues, x float32) { v.HandStrength = x },
				},
			},
		},
		{
			Title: "Render",
			Toggles: []ToggleDescriptor{
				{
					ID: "color_by_speed", Label: "Colour by speed", Change: ChangeRender,
					Get: func(v *ParamValues) bool { return v.ColorBySpeed },
					Set: func(v *ParamValues, b bool) { v.ColorBySpeed = b },
				},
			},
		},
	}
}
