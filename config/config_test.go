package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/sph/components"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, components.MaxParticles, cfg.World.Capacity)
	assert.Greater(t, cfg.Particles.Count, 0)
	assert.Equal(t, float32(cfg.Physics.DT), cfg.Derived.DT32)
	assert.InDelta(t, 1280.0/720.0, cfg.Derived.AspectRatio, 1e-6)
	assert.Equal(t, float32(0.25), cfg.Derived.DefaultColor.R)
	assert.NoError(t, cfg.PhysicsInfo().Validate())
}

func TestLoadOverlay(t *testing.T) {
	path := writeFile(t, `
particles:
  count: 10
physics:
  substeps: 7
  use_predicted_positions: false
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Particles.Count)
	assert.Equal(t, 7, cfg.PhysicsInfo().Substeps)
	assert.False(t, cfg.PhysicsInfo().UsePredictedPositions)
	// Untouched fields keep their defaults.
	assert.Equal(t, 0.35, cfg.Physics.SmoothingRadius)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{"zero smoothing radius", "physics:\n  smoothing_radius: 0\n", components.ErrInvalidSmoothingRadius},
		{"zero substeps", "physics:\n  substeps: 0\n", components.ErrInvalidSubsteps},
		{"over capacity", "world:\n  capacity: 10\nparticles:\n  count: 11\n", components.ErrParticleCapacity},
		{"negative count", "particles:\n  count: -1\n", components.ErrNegativeParticleCount},
		{"flat world", "world:\n  half_height: 0\n", components.ErrInvalidBoundingBox},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.body))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)

			var fe *components.FieldError
			assert.True(t, errors.As(err, &fe))
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	cfg.Particles.Count = 42
	cfg.Physics.PressureConstant = 12.5

	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, cfg.WriteYAML(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Particles, got.Particles)
	assert.Equal(t, cfg.Physics, got.Physics)
}

func TestBoundingBoxFollowsAspect(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	box := cfg.BoundingBox(2)
	assert.Equal(t, components.BoundingBox{Left: -20, Right: 20, Bottom: -10, Top: 10}, box)
}

func TestNewHand(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	h := cfg.NewHand()
	require.NotNil(t, h)
	assert.Equal(t, float32(cfg.Hand.Radius), h.Radius)

	cfg.Hand.Enabled = false
	assert.Nil(t, cfg.NewHand())
}

func TestRefreshRevalidates(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.Physics.Substeps = 0
	assert.ErrorIs(t, cfg.Refresh(), components.ErrInvalidSubsteps)
}
