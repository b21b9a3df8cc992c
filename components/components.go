// Package components defines the particle data model shared by the simulation,
// the renderer and the parameter surface.
package components

// MaxParticles is the fixed arena capacity. Storage for this many particles is
// allocated once when a particle system is created.
const MaxParticles = 100000

// Color is a linear RGBA colour. Layout matches a vec4 of float32.
type Color struct {
	R, G, B, A float32
}

// White is the default particle colour.
var White = Color{R: 1, G: 1, B: 1, A: 1}

// Particle is one fluid sample. The struct is laid out as
// {position vec2, velocity vec2, color vec4} so a slice of particles can be
// copied directly into a vertex or storage buffer.
type Particle struct {
	Position Vec2
	Velocity Vec2
	Color    Color
}
