package renderer

import (
	"math"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sph/components"
)

func TestToRaylib(t *testing.T) {
	testCases := []struct {
		name string
		in   components.Color
		want rl.Color
	}{
		{"white", components.White, rl.Color{R: 255, G: 255, B: 255, A: 255}},
		{"zero", components.Color{}, rl.Color{}},
		{"half", components.Color{R: 0.5, G: 0.5, B: 0.5, A: 1}, rl.Color{R: 128, G: 128, B: 128, A: 255}},
		{"clamped", components.Color{R: -1, G: 2, B: float32(math.NaN()), A: 1}, rl.Color{R: 0, G: 255, B: 0, A: 255}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ToRaylib(tc.in); got != tc.want {
				t.Errorf("ToRaylib(%+v) = %+v, want %+v", tc.in, got, tc.want)
			}
		})
	}
}
