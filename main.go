package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/boids/config"
	"github.com/pthm-cable/boids/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	preset := flag.String("preset", "", "Flock preset (wrapped, euclidean); overrides config")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window in simulated ms (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs, config and snapshots")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 0, "Simulation ticks per update call (0 = use config)")
	snapshotMode := flag.Bool("snapshot", false, "Sense start-of-tick state instead of live state")
	grid := flag.Bool("grid", false, "Use the spatial grid broad phase")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := applyFlags(cfg, *preset, *snapshotMode, *grid); err != nil {
		slog.Error("invalid flags", "error", err)
		os.Exit(1)
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Seed:           rngSeed,
		Config:         cfg,
		LogStats:       *logStats,
		StatsWindow:    *statsWindow,
		OutputDir:      *outputDir,
		Headless:       *headless,
		StepsPerUpdate: *stepsPerUpdate,
	}

	if *headless {
		// Headless mode - pure CPU simulation, no raylib window
		g, err := game.NewGameWithOptions(opts)
		if err != nil {
			slog.Error("failed to start", "error", err)
			os.Exit(1)
		}
		defer g.Unload()

		slog.Info("starting headless simulation",
			"seed", rngSeed,
			"max_ticks", *maxTicks,
			"dt_ms", cfg.Physics.DT,
		)

		start := time.Now()
		for {
			g.UpdateHeadless()

			if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
				slog.Info("max ticks reached",
					"tick", g.Tick(),
					"sim_time_ms", g.SimTime(),
					"polarization", g.Polarization(),
					"elapsed", time.Since(start).String(),
				)
				return
			}
		}
	}

	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Boids")
	defer rl.CloseWindow()

	rl.SetWindowState(rl.FlagWindowResizable)
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
			break
		}
	}
}

// applyFlags layers CLI overrides onto the loaded config.
func applyFlags(cfg *config.Config, preset string, snapshot, grid bool) error {
	if preset != "" {
		cfg.Flock.Preset = preset
	}
	if snapshot {
		cfg.Physics.Consistency = "snapshot"
	}
	if grid {
		cfg.Physics.BroadPhase = "grid"
	}
	return cfg.Recompute()
}
