// Package renderer draws the particle system with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sph/camera"
	"github.com/pthm-cable/sph/components"
)

// MinScreenRadius keeps particles visible when zoomed out.
const MinScreenRadius = 1.0

// ParticleRenderer draws particles as filled circles in their stored colour.
type ParticleRenderer struct {
	BoundsColor rl.Color
	PushColor   rl.Color
	PullColor   rl.Color
	HandColor   rl.Color
}

// NewParticleRenderer creates a renderer with the default overlay colours.
func NewParticleRenderer() *ParticleRenderer {
	return &ParticleRenderer{
		BoundsColor: rl.Color{R: 90, G: 100, B: 110, A: 255},
		PushColor:   rl.Color{R: 230, G: 90, B: 80, A: 200},
		PullColor:   rl.Color{R: 90, G: 200, B: 120, A: 200},
		HandColor:   rl.Color{R: 160, G: 160, B: 160, A: 120},
	}
}

// Draw renders the live particles. Off-screen particles are culled.
func (r *ParticleRenderer) Draw(cam *camera.Camera, particles []components.Particle, radius float32) {
	screenR := cam.WorldLength(radius)
	if screenR < MinScreenRadius {
		screenR = MinScreenRadius
	}
	for i := range particles {
		p := &particles[i]
		if !cam.IsVisible(p.Position.X, p.Position.Y, radius) {
			continue
		}
		sx, sy := cam.WorldToScreen(p.Position.X, p.Position.Y)
		rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, screenR, ToRaylib(p.Color))
	}
}

// DrawBounds outlines the bounding box.
func (r *ParticleRenderer) DrawBounds(cam *camera.Camera, box components.BoundingBox) {
	x, y := cam.WorldToScreen(box.Left, box.Top)
	rl.DrawRectangleLinesEx(rl.Rectangle{
		X:      x,
		Y:      y,
		Width:  cam.WorldLength(box.Width()),
		Height: cam.WorldLength(box.Height()),
	}, 2, r.BoundsColor)
}

// DrawHand outlines the hand's area of effect, coloured by its action.
func (r *ParticleRenderer) DrawHand(cam *camera.Camera, hand *components.Hand) {
	if hand == nil {
		return
	}
	color := r.HandColor
	switch hand.Action {
	case components.HandPushing:
		color = r.PushColor
	case components.HandPulling:
		color = r.PullColor
	}
	pos := hand.Position()
	sx, sy := cam.WorldToScreen(pos.X, pos.Y)
	rl.DrawCircleLinesV(rl.Vector2{X: sx, Y: sy}, cam.WorldLength(hand.Radius), color)
}

// ToRaylib converts a linear [0, 1] colour to 8-bit RGBA.
func ToRaylib(c components.Color) rl.Color {
	return rl.Color{R: channel(c.R), G: channel(c.G), B: channel(c.B), A: channel(c.A)}
}

func channel(v float32) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
