package game

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/sph/components"
	"github.com/pthm-cable/sph/config"
	"github.com/pthm-cable/sph/simulation"
	"github.com/pthm-cable/sph/telemetry"
	"github.com/pthm-cable/sph/ui"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Particles.Count = 64
	cfg.Physics.DT = 1.0 / 64
	cfg.Physics.Substeps = 1
	cfg.Telemetry.StatsWindow = 5.0 / 64 // five frames
	cfg.Parallel.Workers = 1
	require.NoError(t, cfg.Refresh())
	return cfg
}

func newHeadless(t *testing.T, cfg *config.Config, opts Options) *Game {
	t.Helper()
	opts.Config = cfg
	opts.Headless = true
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	g, err := NewGame(opts)
	require.NoError(t, err)
	t.Cleanup(g.Unload)
	return g
}

func TestInputState_Events(t *testing.T) {
	assert.Empty(t, InputState{}.Events(nil))

	in := InputState{PushReleased: true, PullPressed: true, PausePressed: true, StepPressed: true}
	assert.Equal(t, []simulation.Event{
		simulation.EventPushEnd,
		simulation.EventPullStart,
		simulation.EventTogglePause,
		simulation.EventStep,
	}, in.Events(nil))

	dst := []simulation.Event{simulation.EventNone}
	assert.Len(t, InputState{PushPressed: true}.Events(dst), 2, "appends to dst")
}

func TestGame_RunHeadlessFlushesWindows(t *testing.T) {
	var windows []telemetry.WindowStats
	g := newHeadless(t, testConfig(t), Options{
		StatsCallback: func(ws telemetry.WindowStats) { windows = append(windows, ws) },
	})

	require.NoError(t, g.RunHeadless(context.Background(), 12))
	assert.Equal(t, int32(12), g.Frame())
	require.Len(t, windows, 2)
	assert.Equal(t, int32(5), windows[0].WindowEndFrame)
	assert.Equal(t, int32(10), windows[1].WindowEndFrame)
	assert.Equal(t, 5, windows[1].Frames)
	assert.Equal(t, 64, windows[1].Particles)
	assert.Equal(t, windows[1], g.LastStats())
}

func TestGame_RunHeadlessStopsOnCancel(t *testing.T) {
	g := newHeadless(t, testConfig(t), Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := g.RunHeadless(ctx, 0)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(0), g.Frame())
}

func TestGame_OutputFiles(t *testing.T) {
	cfg := testConfig(t)
	cfg.Telemetry.OutputDir = filepath.Join(t.TempDir(), "out")
	g := newHeadless(t, cfg, Options{Metrics: telemetry.NewMetrics()})

	require.NoError(t, g.RunHeadless(context.Background(), 5))

	for _, name := range []string{"config.yaml", "stats.csv", "perf.csv"} {
		_, err := os.Stat(filepath.Join(cfg.Telemetry.OutputDir, name))
		assert.NoError(t, err, name)
	}
}

func TestGame_ApplyPanel(t *testing.T) {
	g := newHeadless(t, testConfig(t), Options{})

	g.values.Count = 100
	g.values.RestDensity = 12
	g.applyPanel(ui.PanelResult{})
	assert.Equal(t, 100, g.System().ParticleInfo().NumParticles)
	assert.Len(t, g.System().Particles(), 100)
	assert.Equal(t, float32(12), g.System().PhysicsInfo().RestDensity)

	// Rejected edits are rolled back in the panel.
	g.values.SmoothingRadius = 0
	g.applyPanel(ui.PanelResult{})
	assert.Equal(t, g.System().PhysicsInfo().SmoothingRadius, g.values.SmoothingRadius)
	assert.NotZero(t, g.values.SmoothingRadius)

	g.values.HandStrength = 99
	g.applyPanel(ui.PanelResult{})
	assert.Equal(t, float32(99), g.hand.StrengthFactor)

	g.applyPanel(ui.PanelResult{Defaults: true})
	assert.Equal(t, 64, g.System().ParticleInfo().NumParticles)
	assert.Equal(t, g.defaults, g.values)
}

func TestGame_ApplyPanelIsAllOrNothing(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))
	g := newHeadless(t, testConfig(t), Options{Logger: logger})
	before := g.System().ParticleInfo()

	g.values.Count = 100
	g.values.SmoothingRadius = 0
	g.applyPanel(ui.PanelResult{})

	assert.Equal(t, before, g.System().ParticleInfo(), "valid edit held back with the invalid one")
	assert.Equal(t, before.NumParticles, g.values.Count)
	assert.Equal(t, g.System().PhysicsInfo().SmoothingRadius, g.values.SmoothingRadius)
	assert.Equal(t, 1, strings.Count(buf.String(), "rejected"), "logged once: %s", buf.String())
}

func TestGame_ColorBySpeedToggle(t *testing.T) {
	cfg := testConfig(t)
	cfg.Render.ColorBySpeed = true
	g := newHeadless(t, cfg, Options{})

	for range 5 {
		g.UpdateHeadless()
	}

	g.values.ColorBySpeed = false
	g.applyPanel(ui.PanelResult{})
	def := g.System().ParticleInfo().DefaultColor
	for _, p := range g.System().Particles() {
		require.Equal(t, def, p.Color)
	}

	g.UpdateHeadless()
	for _, p := range g.System().Particles() {
		require.Equal(t, def, p.Color, "palette detached")
	}
}

func TestGame_ResizeFollowsAspect(t *testing.T) {
	cfg := testConfig(t)
	g := newHeadless(t, cfg, Options{})

	g.resize(800, 800)
	box := g.System().BoundingBox()
	assert.InDelta(t, box.Width(), box.Height(), 1e-5)
	assert.InDelta(t, 2*cfg.World.HalfHeight, float64(box.Height()), 1e-5)

	// A degenerate window keeps the previous box.
	g.resize(0, 600)
	assert.Equal(t, box, g.System().BoundingBox())
}

func TestGame_HandEventsReachSystem(t *testing.T) {
	g := newHeadless(t, testConfig(t), Options{})
	require.NotNil(t, g.hand)

	for _, e := range (InputState{PullPressed: true}).Events(nil) {
		g.System().HandleEvent(e)
	}
	assert.Equal(t, components.HandPulling, g.hand.Action)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, "json", slog.LevelInfo)
	require.NoError(t, err)
	logger.Info("hello", "n", 1)
	assert.True(t, strings.HasPrefix(buf.String(), "{"))

	buf.Reset()
	logger, err = NewLogger(&buf, "TEXT", slog.LevelInfo)
	require.NoError(t, err)
	logger.Debug("hidden")
	logger.Info("hello")
	assert.Contains(t, buf.String(), "msg=hello")
	assert.NotContains(t, buf.String(), "hidden")

	_, err = NewLogger(&buf, "xml", slog.LevelInfo)
	assert.Error(t, err)
}
