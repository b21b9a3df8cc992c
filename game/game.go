// Package game wires the particle system to a raylib window, the parameter
// panel and telemetry. It also drives fixed-step headless runs.
package game

import (
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sph/camera"
	"github.com/pthm-cable/sph/components"
	"github.com/pthm-cable/sph/config"
	"github.com/pthm-cable/sph/renderer"
	"github.com/pthm-cable/sph/simulation"
	"github.com/pthm-cable/sph/systems"
	"github.com/pthm-cable/sph/telemetry"
	"github.com/pthm-cable/sph/ui"
)

// Title is shown in the window caption and the HUD.
const Title = "SPH Fluid"

const controlsText = "LMB push | RMB pull | Space pause | S step | R rearrange | Tab panel | P perf | B bounds | MMB/arrows pan | wheel zoom | Home reset view | F11 fullscreen"

var backgroundColor = rl.Color{R: 12, G: 14, B: 18, A: 255}

// Options configures a Game.
type Options struct {
	Config   *config.Config // nil uses config.Cfg()
	Logger   *slog.Logger   // nil uses slog.Default()
	Seed     uint64
	LogStats bool
	Headless bool

	Metrics       *telemetry.Metrics // optional Prometheus sink
	StatsCallback func(telemetry.WindowStats)
}

// Game holds the particle system and everything that presents it.
type Game struct {
	cfg    *config.Config
	logger *slog.Logger

	sim     *simulation.ParticleSystem
	hand    *components.Hand
	palette *systems.SpeedPalette

	// Viewer only; nil when headless.
	camera    *camera.Camera
	particles *renderer.ParticleRenderer
	hud       *ui.HUD
	perfPanel *ui.PerfPanel
	panel     *ui.ParamPanel
	timer     *telemetry.FrameTimer

	perfCollector *telemetry.PerfCollector
	collector     *telemetry.Collector
	metrics       *telemetry.Metrics
	outputManager *telemetry.OutputManager
	statsCallback func(telemetry.WindowStats)

	values   ui.ParamValues // edited by the panel
	defaults ui.ParamValues // loaded configuration

	frame        int32
	lastStats    telemetry.WindowStats
	logStats     bool
	headless     bool
	showPerf     bool
	showBounds   bool
	colorBySpeed bool

	screenWidth, screenHeight float32
}

// NewGame creates the particle system and, unless headless, the viewer
// components. The raylib window must already be open for a viewer.
func NewGame(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	g := &Game{
		cfg:           cfg,
		logger:        logger,
		hand:          cfg.NewHand(),
		palette:       systems.NewSpeedPalette(float32(cfg.Render.PaletteMaxSpeed)),
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		collector:     telemetry.NewCollector(cfg.Telemetry.StatsWindow, cfg.Derived.DT32),
		metrics:       opts.Metrics,
		statsCallback: opts.StatsCallback,
		logStats:      opts.LogStats,
		headless:      opts.Headless,
		showBounds:    cfg.Render.ShowBounds,
		colorBySpeed:  cfg.Render.ColorBySpeed,
		screenWidth:   cfg.Derived.ScreenW32,
		screenHeight:  cfg.Derived.ScreenH32,
	}

	recorders := []telemetry.PhaseRecorder{g.perfCollector}
	if g.metrics != nil {
		recorders = append(recorders, g.metrics)
	}

	var palette *systems.SpeedPalette
	if cfg.Render.ColorBySpeed {
		palette = g.palette
	}

	box := cfg.BoundingBox(cfg.Derived.AspectRatio)
	sim, err := simulation.New(simulation.Options{
		Capacity:        cfg.World.Capacity,
		Workers:         cfg.Parallel.Workers,
		SerialThreshold: cfg.Parallel.SerialThreshold,
		Seed:            opts.Seed,
		Logger:          logger,
		Recorder:        telemetry.NewMultiRecorder(recorders...),
		ParticleInfo:    cfg.ParticleInfo(),
		PhysicsInfo:     cfg.PhysicsInfo(),
		BoundingBox:     box,
		Hand:            g.hand,
		Palette:         palette,
	})
	if err != nil {
		return nil, fmt.Errorf("creating particle system: %w", err)
	}
	g.sim = sim

	om, err := telemetry.NewOutputManager(cfg.Telemetry.OutputDir)
	if err != nil {
		sim.Close()
		return nil, err
	}
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		sim.Close()
		return nil, err
	}
	g.outputManager = om

	g.values = ui.ValuesFrom(sim.ParticleInfo(), sim.PhysicsInfo(), g.hand, cfg.Render.ColorBySpeed)
	g.defaults = g.values

	if !g.headless {
		g.camera = camera.New(g.screenWidth, g.screenHeight, box)
		g.particles = renderer.NewParticleRenderer()
		g.hud = ui.NewHUD()
		g.perfPanel = ui.NewPerfPanel(10, 85)
		g.panel = ui.NewParamPanel(int32(g.screenWidth)-panelWidth-10, 10, panelWidth, sim.Capacity())
		g.panel.SetVisible(cfg.Render.ShowPanel)
		g.timer = telemetry.NewFrameTimer(cfg.Derived.MaxFrameDT)
	}

	logger.Info("game initialized",
		"particles", cfg.Particles.Count,
		"capacity", sim.Capacity(),
		"substeps", cfg.Physics.Substeps,
		"headless", g.headless,
		"output_dir", om.Dir(),
	)
	return g, nil
}

const panelWidth = 260

// Update advances one viewer frame using the wall-clock frame time. Nothing
// runs while the window is minimised.
func (g *Game) Update() {
	if rl.IsWindowMinimized() {
		g.timer.Reset()
		return
	}
	dt := g.timer.Tick()
	g.handleInput()
	g.sim.Update(dt)
	g.endFrame()
}

// UpdateHeadless advances one frame at the configured fixed dt.
func (g *Game) UpdateHeadless() {
	g.sim.Update(g.cfg.Derived.DT32)
	g.endFrame()
}

// Draw renders the current frame.
func (g *Game) Draw() {
	if rl.IsWindowMinimized() {
		return
	}
	rl.BeginDrawing()
	defer rl.EndDrawing()
	rl.ClearBackground(backgroundColor)

	if g.showBounds {
		g.particles.DrawBounds(g.camera, g.sim.BoundingBox())
	}
	g.particles.Draw(g.camera, g.sim.Particles(), g.sim.ParticleInfo().Radius)
	g.particles.DrawHand(g.camera, g.hand)

	handAction := "none"
	if g.hand != nil {
		handAction = g.hand.Action.String()
	}
	g.hud.Draw(ui.HUDData{
		Title:        Title,
		Particles:    g.sim.ParticleInfo().NumParticles,
		Capacity:     g.sim.Capacity(),
		FPS:          int32(g.timer.FPS() + 0.5),
		State:        g.sim.State().String(),
		StepPending:  g.sim.StepPending(),
		HandAction:   handAction,
		BoundaryHits: g.sim.BoundaryHits(),
	})
	g.hud.DrawControls(int32(g.screenHeight), controlsText)

	if g.showPerf {
		stats := g.perfCollector.Stats()
		stats.FPS = g.timer.FPS()
		g.perfPanel.Draw(stats)
	}

	g.applyPanel(g.panel.Draw(&g.values))
}

// Unload stops the worker pool and closes output files.
func (g *Game) Unload() {
	g.sim.Close()
	if err := g.outputManager.Close(); err != nil {
		g.logger.Error("failed to close output", "error", err)
	}
}

// Frame returns the number of frames run.
func (g *Game) Frame() int32 { return g.frame }

// System returns the particle system.
func (g *Game) System() *simulation.ParticleSystem { return g.sim }

// LastStats returns the most recently flushed stats window.
func (g *Game) LastStats() telemetry.WindowStats { return g.lastStats }

// FluidStats samples the current particle state.
func (g *Game) FluidStats() telemetry.FluidStats {
	return telemetry.ComputeFluidStats(g.sim.Particles(), g.sim.Densities(), g.sim.PhysicsInfo().RestDensity)
}
