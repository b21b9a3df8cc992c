package systems

import (
	"github.com/mazznoer/colorgrad"

	"github.com/pthm-cable/sph/components"
)

// paletteSize is the number of precomputed gradient samples.
const paletteSize = 256

// SpeedPalette maps particle speed to a colour. The gradient is sampled once
// into a lookup table so Color is allocation-free on the update path.
type SpeedPalette struct {
	maxSpeed float32
	table    [paletteSize]components.Color
}

// NewSpeedPalette samples the Turbo gradient so that speed 0 maps to its first
// colour and maxSpeed and above map to its last. A non-positive maxSpeed is
// treated as 1.
func NewSpeedPalette(maxSpeed float32) *SpeedPalette {
	return NewSpeedPaletteFrom(colorgrad.Turbo(), maxSpeed)
}

// NewSpeedPaletteFrom builds a palette from any colorgrad gradient.
func NewSpeedPaletteFrom(grad colorgrad.Gradient, maxSpeed float32) *SpeedPalette {
	if !(maxSpeed > 0) {
		maxSpeed = 1
	}
	sp := &SpeedPalette{maxSpeed: maxSpeed}
	for i := range sp.table {
		c := grad.At(float64(i) / (paletteSize - 1))
		sp.table[i] = components.Color{
			R: clamp01(float32(c.R)),
			G: clamp01(float32(c.G)),
			B: clamp01(float32(c.B)),
			A: 1,
		}
	}
	return sp
}

// MaxSpeed returns the speed at which the palette saturates.
func (sp *SpeedPalette) MaxSpeed() float32 { return sp.maxSpeed }

// Color returns the palette entry for a velocity.
func (sp *SpeedPalette) Color(v components.Vec2) components.Color {
	t := clamp01(v.Len() / sp.maxSpeed)
	return sp.table[int(t*(paletteSize-1)+0.5)]
}
