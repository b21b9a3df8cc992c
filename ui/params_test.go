package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/sph/components"
)

func sampleValues() ParamValues {
	pi := components.ParticleInfo{NumParticles: 100, Radius: 0.05, Spacing: 0.1, DefaultColor: components.White}
	phys := components.PhysicsInfo{
		Gravity:          9.8,
		SmoothingRadius:  0.35,
		PressureConstant: 40,
		RestDensity:      55,
		Substeps:         3,
	}
	return ValuesFrom(pi, phys, components.NewHand(2, 30, 1), true)
}

func findSlider(t *testing.T, id string) SliderDescriptor {
	t.Helper()
	for _, s := range DefaultSections(1000) {
		for _, d := range s.Sliders {
			if d.ID == id {
				return d
			}
		}
	}
	t.Fatalf("no slider %q", id)
	return SliderDescriptor{}
}

func TestValuesRoundTrip(t *testing.T) {
	v := sampleValues()
	assert.Equal(t, 100, v.Count)
	assert.Equal(t, float32(2), v.HandRadius)
	assert.True(t, v.ColorBySpeed)

	base := components.PhysicsInfo{CollisionDampingFactor: 0.9}
	phys := v.PhysicsInfo(base)
	assert.Equal(t, float32(0.9), phys.CollisionDampingFactor, "untouched field kept")
	assert.Equal(t, float32(40), phys.PressureConstant)
	assert.Equal(t, 3, phys.Substeps)

	pi := v.ParticleInfo(components.ParticleInfo{DefaultColor: components.White})
	assert.Equal(t, components.White, pi.DefaultColor)
	assert.Equal(t, 100, pi.NumParticles)

	h := components.NewHand(0, 0, 1)
	v.ApplyHand(h)
	assert.Equal(t, float32(30), h.StrengthFactor)
	v.ApplyHand(nil)
}

func TestValuesFromNilHand(t *testing.T) {
	v := ValuesFrom(components.ParticleInfo{}, components.PhysicsInfo{}, nil, false)
	assert.Zero(t, v.HandRadius)
	assert.Zero(t, v.HandStrength)
}

func TestDiff(t *testing.T) {
	a := sampleValues()
	assert.Equal(t, ParamChange(0), Diff(a, a))

	b := a
	b.Count = 200
	b.RestDensity = 10
	c := Diff(a, b)
	assert.True(t, c.Has(ChangeCount))
	assert.True(t, c.Has(ChangePhysics))
	assert.False(t, c.Has(ChangeParticles))
	assert.False(t, c.Has(ChangeHand))

	b = a
	b.ColorBySpeed = false
	b.HandStrength = 1
	b.Spacing = 0.2
	c = Diff(a, b)
	assert.True(t, c.Has(ChangeRender|ChangeHand|ChangeParticles))
	assert.False(t, c.Has(0))
}

func TestSliderApply(t *testing.T) {
	count := findSlider(t, "count")
	v := sampleValues()

	require.True(t, count.Apply(&v, 250.4))
	assert.Equal(t, 250, v.Count, "integer slider rounds")

	assert.False(t, count.Apply(&v, 249.6), "rounds to the same value")

	require.True(t, count.Apply(&v, 1e9))
	assert.Equal(t, 1000, v.Count, "clamped to capacity")

	h := findSlider(t, "smoothing_radius")
	require.True(t, h.Apply(&v, -1))
	assert.Equal(t, h.Min, v.SmoothingRadius, "clamped to minimum")
}

func TestSectionsCoverEveryField(t *testing.T) {
	ids := map[string]bool{}
	for _, s := range DefaultSections(10) {
		for _, d := range s.Sliders {
			assert.False(t, ids[d.ID], "duplicate id %s", d.ID)
			ids[d.ID] = true
			assert.Less(t, d.Min, d.Max, d.ID)
			assert.NotZero(t, d.Change, d.ID)
		}
		for _, d := range s.Toggles {
			assert.False(t, ids[d.ID], "duplicate id %s", d.ID)
			ids[d.ID] = true
		}
	}
	for _, id := range []string{
		"count", "radius", "spacing", "gravity", "boundary_damping", "smoothing_radius",
		"pressure_constant", "rest_density", "substeps", "use_predicted",
		"hand_radius", "hand_strength", "color_by_speed",
	} {
		assert.True(t, ids[id], "missing %s", id)
	}
}

func TestPanelContains(t *testing.T) {
	p := NewParamPanel(100, 10, 200, 1000)
	assert.True(t, p.Contains(150, 20))
	assert.False(t, p.Contains(50, 20))
	assert.False(t, p.Contains(150, float32(10+p.Height()+1)))

	p.SetVisible(false)
	assert.False(t, p.Contains(150, 20))
	assert.True(t, p.Toggle())
}
