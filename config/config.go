// Package config provides configuration loading and access for the fluid
// simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/sph/components"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	World     WorldConfig     `yaml:"world"`
	Particles ParticlesConfig `yaml:"particles"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Hand      HandConfig      `yaml:"hand"`
	Parallel  ParallelConfig  `yaml:"parallel"`
	Render    RenderConfig    `yaml:"render"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Metrics   MetricsConfig   `yaml:"metrics"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds the world extent and arena size. The bounding box is
// centred on the origin; its width follows the screen aspect ratio.
type WorldConfig struct {
	HalfHeight float64 `yaml:"half_height"` // world units from centre to top edge
	Capacity   int     `yaml:"capacity"`    // particle arena size
}

// ParticlesConfig holds per-particle settings.
type ParticlesConfig struct {
	Count   int       `yaml:"count"`
	Radius  float64   `yaml:"radius"`
	Spacing float64   `yaml:"spacing"`
	Color   []float64 `yaml:"color"` // RGBA in [0, 1]
}

// PhysicsConfig holds the SPH parameters.
type PhysicsConfig struct {
	DT                    float64 `yaml:"dt"`           // headless frame time
	MaxFrameDT            float64 `yaml:"max_frame_dt"` // viewer clamp on wall-clock frame time
	Gravity               float64 `yaml:"gravity"`
	BoundaryDamping       float64 `yaml:"boundary_damping"`
	CollisionDamping      float64 `yaml:"collision_damping"`
	SmoothingRadius       float64 `yaml:"smoothing_radius"`
	PressureConstant      float64 `yaml:"pressure_constant"`
	RestDensity           float64 `yaml:"rest_density"`
	Substeps              int     `yaml:"substeps"`
	UsePredictedPositions bool    `yaml:"use_predicted_positions"`
}

// HandConfig holds the cursor interaction settings.
type HandConfig struct {
	Enabled           bool    `yaml:"enabled"`
	Radius            float64 `yaml:"radius"`
	Strength          float64 `yaml:"strength"`
	CoordinateScaling float64 `yaml:"coordinate_scaling"`
}

// ParallelConfig holds batch executor settings.
type ParallelConfig struct {
	Workers         int `yaml:"workers"`          // 0 = default batch width
	SerialThreshold int `yaml:"serial_threshold"` // 0 = default
}

// RenderConfig holds viewer rendering settings.
type RenderConfig struct {
	ColorBySpeed    bool    `yaml:"color_by_speed"`
	PaletteMaxSpeed float64 `yaml:"palette_max_speed"`
	ShowBounds      bool    `yaml:"show_bounds"`
	ShowPanel       bool    `yaml:"show_panel"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"` // simulated seconds per stats record
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
	OutputDir           string  `yaml:"output_dir"`
}

// MetricsConfig holds the Prometheus endpoint settings.
type MetricsConfig struct {
	Addr string `yaml:"addr"` // empty disables the endpoint
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32         float32       // Physics.DT as float32
	MaxFrameDT   time.Duration // Physics.MaxFrameDT as a duration
	ScreenW32    float32       // Screen.Width as float32
	ScreenH32    float32       // Screen.Height as float32
	AspectRatio  float32       // Screen.Width / Screen.Height
	DefaultColor components.Color
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used. The result is validated.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only fields present in the file overwrite the defaults.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// computeDerived calculates values derived from loaded config. Call it again
// after changing fields programmatically.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Physics.DT)
	c.Derived.MaxFrameDT = time.Duration(c.Physics.MaxFrameDT * float64(time.Second))
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	c.Derived.AspectRatio = 1
	if c.Screen.Height > 0 {
		c.Derived.AspectRatio = c.Derived.ScreenW32 / c.Derived.ScreenH32
	}

	col := components.White
	for i, v := range c.Particles.Color {
		switch i {
		case 0:
			col.R = float32(v)
		case 1:
			col.G = float32(v)
		case 2:
			col.B = float32(v)
		case 3:
			col.A = float32(v)
		}
	}
	c.Derived.DefaultColor = col
}

// Refresh recomputes derived values after fields were changed in code, for
// example by command-line overrides.
func (c *Config) Refresh() error {
	c.computeDerived()
	return c.Validate()
}

// Validate rejects settings the simulation would refuse.
func (c *Config) Validate() error {
	if c.World.Capacity < 1 {
		return fmt.Errorf("config: %w", &components.FieldError{
			Field: "world.capacity", Value: c.World.Capacity, Err: components.ErrParticleCapacity,
		})
	}
	if err := c.ParticleInfo().Validate(c.World.Capacity); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := c.PhysicsInfo().Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := c.BoundingBox(c.Derived.AspectRatio).Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Physics.DT <= 0 {
		return fmt.Errorf("config: %w", &components.FieldError{
			Field: "physics.dt", Value: c.Physics.DT, Err: components.ErrInvalidParameter,
		})
	}
	return nil
}

// ParticleInfo converts the particle section.
func (c *Config) ParticleInfo() components.ParticleInfo {
	return components.ParticleInfo{
		DefaultColor: c.Derived.DefaultColor,
		Radius:       float32(c.Particles.Radius),
		Spacing:      float32(c.Particles.Spacing),
		NumParticles: c.Particles.Count,
	}
}

// PhysicsInfo converts the physics section.
func (c *Config) PhysicsInfo() components.PhysicsInfo {
	p := c.Physics
	return components.PhysicsInfo{
		Gravity:                float32(p.Gravity),
		BoundaryDampingFactor:  float32(p.BoundaryDamping),
		CollisionDampingFactor: float32(p.CollisionDamping),
		SmoothingRadius:        float32(p.SmoothingRadius),
		PressureConstant:       float32(p.PressureConstant),
		RestDensity:            float32(p.RestDensity),
		Substeps:               p.Substeps,
		UsePredictedPositions:  p.UsePredictedPositions,
	}
}

// BoundingBox returns the world box centred on the origin for a viewport of
// the given width/height ratio.
func (c *Config) BoundingBox(aspect float32) components.BoundingBox {
	h := float32(c.World.HalfHeight)
	w := h * aspect
	return components.BoundingBox{Left: -w, Right: w, Bottom: -h, Top: h}
}

// NewHand builds the interaction hand, or returns nil when disabled.
func (c *Config) NewHand() *components.Hand {
	if !c.Hand.Enabled {
		return nil
	}
	return components.NewHand(float32(c.Hand.Radius), float32(c.Hand.Strength), float32(c.Hand.CoordinateScaling))
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
