package systems

import (
	"testing"

	"github.com/mazznoer/colorgrad"
	"github.com/stretchr/testify/assert"

	"github.com/pthm-cable/sph/components"
)

func TestSpeedPaletteEndpoints(t *testing.T) {
	sp := NewSpeedPalette(4)
	grad := colorgrad.Turbo()

	slow := sp.Color(components.Vec2{})
	first := grad.At(0)
	assert.InDelta(t, first.R, slow.R, 1e-3)
	assert.InDelta(t, first.G, slow.G, 1e-3)
	assert.InDelta(t, first.B, slow.B, 1e-3)
	assert.Equal(t, float32(1), slow.A)

	assert.Equal(t, sp.Color(components.Vec2{X: 4}), sp.Color(components.Vec2{X: 400}))
	assert.NotEqual(t, slow, sp.Color(components.Vec2{Y: -4}))
}

func TestSpeedPaletteDefaultsMaxSpeed(t *testing.T) {
	assert.Equal(t, float32(1), NewSpeedPalette(0).MaxSpeed())
	assert.Equal(t, float32(1), NewSpeedPalette(-3).MaxSpeed())
}
