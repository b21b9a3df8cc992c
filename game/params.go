package game

import (
	"github.com/pthm-cable/sph/ui"
)

// applyPanel pushes panel edits into the particle system. If any edit is
// invalid none is applied, and the panel values are resynchronised from the
// system.
func (g *Game) applyPanel(res ui.PanelResult) {
	if res.Defaults {
		g.values = g.defaults
	}

	current := g.currentValues()
	changes := ui.Diff(current, g.values)

	particleEdit := changes.Has(ui.ChangeParticles) || changes.Has(ui.ChangeCount)
	physicsEdit := changes.Has(ui.ChangePhysics)
	pi := g.values.ParticleInfo(g.sim.ParticleInfo())
	phys := g.values.PhysicsInfo(g.sim.PhysicsInfo())

	// Both edits are checked before either is applied so a frame is never
	// half-applied.
	var err error
	if particleEdit {
		err = pi.Validate(g.sim.Capacity())
	}
	if err == nil && physicsEdit {
		err = phys.Validate()
	}
	if err != nil {
		g.logger.Warn("rejected panel settings", "error", err)
		g.values = current
		return
	}
	if particleEdit {
		if err := g.sim.SetParticleInfo(pi); err != nil {
			g.values = g.currentValues()
			return
		}
	}
	if physicsEdit {
		if err := g.sim.SetPhysicsInfo(phys); err != nil {
			g.values = g.currentValues()
			return
		}
	}
	if changes.Has(ui.ChangeHand) {
		if g.hand == nil {
			g.values.HandRadius = current.HandRadius
			g.values.HandStrength = current.HandStrength
		}
		g.values.ApplyHand(g.hand)
	}
	if changes.Has(ui.ChangeRender) {
		g.setColorBySpeed(g.values.ColorBySpeed)
	}

	// New slots hold stale state until the lattice is rebuilt.
	if changes.Has(ui.ChangeCount) || res.Rearrange || res.Defaults {
		g.sim.ArrangeParticles()
	}

	if changes != 0 {
		g.logger.Debug("parameters changed",
			"particles", g.values.Count,
			"smoothing_radius", g.values.SmoothingRadius,
			"pressure_constant", g.values.PressureConstant,
			"rest_density", g.values.RestDensity,
			"substeps", g.values.Substeps,
		)
	}
}

// currentValues reads the parameters the system is actually running with.
func (g *Game) currentValues() ui.ParamValues {
	return ui.ValuesFrom(g.sim.ParticleInfo(), g.sim.PhysicsInfo(), g.hand, g.colorBySpeed)
}

// setColorBySpeed attaches or detaches the speed palette. Detaching restores
// the default colour.
func (g *Game) setColorBySpeed(on bool) {
	g.colorBySpeed = on
	if on {
		g.sim.SetPalette(g.palette)
		return
	}
	g.sim.SetPalette(nil)
	def := g.sim.ParticleInfo().DefaultColor
	particles := g.sim.Particles()
	for i := range particles {
		particles[i].Color = def
	}
}
