package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/pthm-cable/sph/config"
	"github.com/pthm-cable/sph/game"
	"github.com/pthm-cable/sph/telemetry"
)

// cliOptions holds the command-line flags shared by every subcommand.
type cliOptions struct {
	configPath  string
	particles   int
	substeps    int
	frames      int
	workers     int
	dt          float64
	outputDir   string
	metricsAddr string
	logFormat   string
	logStats    bool
	verbose     bool
	seed        uint64
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &cliOptions{}

	root := &cobra.Command{
		Use:           "sph",
		Short:         "2D smoothed-particle hydrodynamics fluid simulation",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, opts)
		},
	}
	addFlags(root.PersistentFlags(), opts)

	root.AddCommand(
		&cobra.Command{
			Use:   "view",
			Short: "Open the interactive viewer",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runView(cmd, opts)
			},
		},
		&cobra.Command{
			Use:   "headless",
			Short: "Run at a fixed time step without graphics",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runHeadless(cmd, opts)
			},
		},
	)
	return root
}

func addFlags(fs *pflag.FlagSet, o *cliOptions) {
	fs.StringVar(&o.configPath, "config", "", "Path to config.yaml (empty = use defaults)")
	fs.IntVar(&o.particles, "particles", 0, "Particle count (overrides config)")
	fs.IntVar(&o.substeps, "substeps", 0, "Substeps per frame (overrides config)")
	fs.IntVar(&o.frames, "frames", 0, "Stop after N frames (0 = unlimited)")
	fs.IntVar(&o.workers, "workers", 0, "Batch width of the parallel passes (overrides config)")
	fs.Float64Var(&o.dt, "dt", 0, "Headless frame time in seconds (overrides config)")
	fs.StringVar(&o.outputDir, "output-dir", "", "Output directory for CSV logs and config snapshot")
	fs.StringVar(&o.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (headless)")
	fs.StringVar(&o.logFormat, "log-format", "json", "Log format: json or text")
	fs.BoolVar(&o.logStats, "log-stats", false, "Log stats and perf every window")
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "Enable debug logging")
	fs.Uint64Var(&o.seed, "seed", 0, "Seed for coincident-particle directions (0 = time-based)")
}

// setup installs the logger and loads the configuration with flag overrides.
func setup(cmd *cobra.Command, o *cliOptions) (*config.Config, *slog.Logger, error) {
	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	logger, err := game.NewLogger(os.Stdout, o.logFormat, level)
	if err != nil {
		return nil, nil, err
	}
	slog.SetDefault(logger)

	if err := config.Init(o.configPath); err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	cfg := config.Cfg()

	flags := cmd.Flags()
	if flags.Changed("particles") {
		cfg.Particles.Count = o.particles
	}
	if flags.Changed("substeps") {
		cfg.Physics.Substeps = o.substeps
	}
	if flags.Changed("workers") {
		cfg.Parallel.Workers = o.workers
	}
	if flags.Changed("dt") {
		cfg.Physics.DT = o.dt
	}
	if flags.Changed("output-dir") {
		cfg.Telemetry.OutputDir = o.outputDir
	}
	if flags.Changed("metrics-addr") {
		cfg.Metrics.Addr = o.metricsAddr
	}
	if err := cfg.Refresh(); err != nil {
		return nil, nil, err
	}

	if o.seed == 0 {
		o.seed = uint64(time.Now().UnixNano())
	}
	return cfg, logger, nil
}

func runView(cmd *cobra.Command, o *cliOptions) error {
	cfg, logger, err := setup(cmd, o)
	if err != nil {
		slog.Error("startup failed", "error", err)
		return err
	}

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), game.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGame(game.Options{
		Config:   cfg,
		Logger:   logger,
		Seed:     o.seed,
		LogStats: o.logStats,
	})
	if err != nil {
		logger.Error("failed to start", "error", err)
		return err
	}
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if o.frames > 0 && int(g.Frame()) >= o.frames {
			break
		}
	}
	return nil
}

func runHeadless(cmd *cobra.Command, o *cliOptions) error {
	cfg, logger, err := setup(cmd, o)
	if err != nil {
		slog.Error("startup failed", "error", err)
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var metrics *telemetry.Metrics
	if cfg.Metrics.Addr != "" {
		metrics = telemetry.NewMetrics()
		go func() {
			if err := metrics.Serve(ctx, cfg.Metrics.Addr, logger); err != nil {
				logger.Error("metrics server failed", "error", err)
			}
		}()
	}

	g, err := game.NewGame(game.Options{
		Config:   cfg,
		Logger:   logger,
		Seed:     o.seed,
		LogStats: o.logStats || cfg.Telemetry.OutputDir == "",
		Headless: true,
		Metrics:  metrics,
	})
	if err != nil {
		logger.Error("failed to start", "error", err)
		return err
	}
	defer g.Unload()

	logger.Info("headless configuration", "seed", o.seed, "metrics_addr", cfg.Metrics.Addr)
	if err := g.RunHeadless(ctx, o.frames); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
