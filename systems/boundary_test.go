package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pthm-cable/sph/components"
)

var testBox = components.BoundingBox{Left: 0, Right: 10, Bottom: 0, Top: 5}

func TestResolveBoundaryInside(t *testing.T) {
	p := components.Particle{Position: components.Vec2{X: 5, Y: 2}, Velocity: components.Vec2{X: -1, Y: 3}}
	before := p
	assert.False(t, ResolveBoundary(&p, testBox, 0.5, 0.5))
	assert.Equal(t, before, p)
}

func TestResolveBoundaryReflects(t *testing.T) {
	tests := []struct {
		name    string
		pos     components.Vec2
		vel     components.Vec2
		wantPos components.Vec2
		wantVel components.Vec2
	}{
		{"left", components.Vec2{X: -1, Y: 2}, components.Vec2{X: -2, Y: 1}, components.Vec2{X: 0.5, Y: 2}, components.Vec2{X: 1, Y: 1}},
		{"right", components.Vec2{X: 12, Y: 2}, components.Vec2{X: 4, Y: 0}, components.Vec2{X: 9.5, Y: 2}, components.Vec2{X: -2, Y: 0}},
		{"bottom", components.Vec2{X: 3, Y: 0.1}, components.Vec2{X: 0, Y: -6}, components.Vec2{X: 3, Y: 0.5}, components.Vec2{X: 0, Y: 3}},
		{"top corner", components.Vec2{X: 11, Y: 6}, components.Vec2{X: 2, Y: 2}, components.Vec2{X: 9.5, Y: 4.5}, components.Vec2{X: -1, Y: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := components.Particle{Position: tt.pos, Velocity: tt.vel}
			assert.True(t, ResolveBoundary(&p, testBox, 0.5, 0.5))
			assert.Equal(t, tt.wantPos, p.Position)
			assert.Equal(t, tt.wantVel, p.Velocity)
		})
	}
}

func TestResolveBoundaryNarrowBoxCentres(t *testing.T) {
	box := components.BoundingBox{Left: 0, Right: 0.5, Bottom: 0, Top: 5}
	p := components.Particle{Position: components.Vec2{X: 3, Y: 2}, Velocity: components.Vec2{X: 1, Y: 0}}
	ResolveBoundary(&p, box, 0.5, 1)
	assert.Equal(t, float32(0.25), p.Position.X)
	assert.Zero(t, p.Velocity.X)
}
