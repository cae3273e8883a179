// Package game drives a flock: it steps the simulation, mirrors boid poses
// into an ark world for drawing, and feeds telemetry.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/boids/camera"
	"github.com/pthm-cable/boids/components"
	"github.com/pthm-cable/boids/config"
	"github.com/pthm-cable/boids/flock"
	"github.com/pthm-cable/boids/geom"
	"github.com/pthm-cable/boids/renderer"
	"github.com/pthm-cable/boids/telemetry"
	"github.com/pthm-cable/boids/ui"
)

// Options configures a new Game.
type Options struct {
	Seed           int64
	Config         *config.Config // nil = embedded defaults
	LogStats       bool
	StatsWindow    float64 // simulated ms per stats window; 0 = config
	OutputDir      string  // CSV logs, config and snapshots; empty = disabled
	Headless       bool
	StepsPerUpdate int

	// StatsCallback is called with each flushed stats window.
	StatsCallback func(telemetry.WindowStats)
}

// Game holds the complete simulation state.
type Game struct {
	cfg    *config.Config
	params flock.Params
	flock  *flock.Flock
	rng    *rand.Rand
	seed   int64

	world *ecs.World

	entityMapper *ecs.Map5[
		components.Position,
		components.Velocity,
		components.Rotation,
		components.Body,
		components.Agent,
	]
	entityFilter *ecs.Filter5[
		components.Position,
		components.Velocity,
		components.Rotation,
		components.Body,
		components.Agent,
	]

	agentMap *ecs.Map1[components.Agent]

	// Telemetry
	collector        *telemetry.Collector
	perfCollector    *telemetry.PerfCollector
	bookmarkDetector *telemetry.BookmarkDetector
	outputManager    *telemetry.OutputManager
	logStats         bool
	statsCallback    func(telemetry.WindowStats)
	neighbors        []int

	// Rendering, nil when headless
	camera        *camera.Camera
	boidRenderer  *renderer.BoidRenderer
	overlayRender *renderer.OverlayRenderer
	overlays      *ui.OverlayRegistry
	hud           *ui.HUD
	perfPanel     *ui.PerfPanel
	paramsPanel   *ui.ParamsPanel
	controlsPanel *ui.ControlsPanel
	inspector     *ui.Inspector
	showPerf      bool

	selectedEntity ecs.Entity
	hasSelection   bool

	// State
	consistency    flock.Consistency
	useGrid        bool
	tick           int32
	paused         bool
	headless       bool
	stepsPerUpdate int
	simTime        float64 // ms
	screenWidth    float32
	screenHeight   float32
}

// NewGameWithOptions creates a game with the given options.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	world := ecs.NewWorld()
	g := &Game{
		cfg:      cfg,
		params:   cfg.Derived.Params,
		seed:     opts.Seed,
		rng:      rand.New(rand.NewSource(opts.Seed)),
		world:    world,
		headless: opts.Headless,
		logStats: opts.LogStats,

		consistency: cfg.Derived.Consistency,
		useGrid:     cfg.Derived.UseGrid,

		entityMapper: ecs.NewMap5[
			components.Position,
			components.Velocity,
			components.Rotation,
			components.Body,
			components.Agent,
		](world),
		entityFilter: ecs.NewFilter5[
			components.Position,
			components.Velocity,
			components.Rotation,
			components.Body,
			components.Agent,
		](world),
		agentMap: ecs.NewMap1[components.Agent](world),
	}

	g.statsCallback = opts.StatsCallback
	g.stepsPerUpdate = opts.StepsPerUpdate
	if g.stepsPerUpdate < 1 {
		g.stepsPerUpdate = cfg.Physics.StepsPerUpdate
	}

	statsWindow := cfg.Telemetry.StatsWindow
	if opts.StatsWindow > 0 {
		statsWindow = opts.StatsWindow
	}
	g.collector = telemetry.NewCollector(statsWindow)
	g.perfCollector = telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow)
	g.bookmarkDetector = telemetry.NewBookmarkDetector(10)

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	g.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("writing config: %w", err)
	}

	g.flock = g.newFlock()
	g.flock.Populate(cfg.Population.Initial, g.rng)
	g.spawnEntities()

	g.screenWidth = float32(cfg.Screen.Width)
	g.screenHeight = float32(cfg.Screen.Height)
	if !g.headless {
		g.initPresentation()
	}

	slog.Info("flock created",
		"boids", g.flock.Len(),
		"preset", cfg.Flock.Preset,
		"consistency", g.consistency.String(),
		"grid", g.useGrid,
		"seed", g.seed,
	)

	return g, nil
}

// newFlock builds an empty flock bound to g.params with the configured
// consistency and broad phase.
func (g *Game) newFlock() *flock.Flock {
	opts := []flock.Option{flock.WithConsistency(g.consistency)}
	if g.useGrid {
		opts = append(opts, flock.WithGrid(g.cfg.Physics.GridCellSize))
	}
	return flock.NewFlock(&g.params, opts...)
}

func (g *Game) initPresentation() {
	viewport := r2.Vec{X: float64(g.screenWidth), Y: float64(g.screenHeight)}
	area := r2.Vec{X: g.params.AreaWidth, Y: g.params.AreaHeight}
	g.camera = camera.New(viewport, area)
	g.boidRenderer = renderer.NewBoidRenderer(g.camera)
	g.overlayRender = renderer.NewOverlayRenderer(g.camera)
	g.overlays = ui.NewOverlayRegistry()
	g.hud = ui.NewHUD()
	g.perfPanel = ui.NewPerfPanel(10, perfPanelY)
	g.paramsPanel = ui.NewParamsPanel(0, 0, paramsPanelWidth)
	g.controlsPanel = ui.NewControlsPanel(0, 0, controlsPanelWidth)
	g.inspector = ui.NewInspector(0, 0, inspectorWidth)
	g.layoutPanels()
}

// Update handles input and advances the simulation by the frame time.
func (g *Game) Update() {
	g.handleInput()

	if g.paused {
		return
	}

	dt := float64(rl.GetFrameTime()) * 1000
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.simulationStep(dt)
	}
}

// UpdateHeadless advances the simulation with the configured fixed dt.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.simulationStep(g.cfg.Physics.DT)
	}
}

// simulationStep runs a single tick of length dt milliseconds.
func (g *Game) simulationStep(dt float64) {
	g.perfCollector.StartTick()

	g.perfCollector.StartPhase(telemetry.PhaseSenseSteer)
	g.flock.Step(dt)

	g.perfCollector.StartPhase(telemetry.PhaseSync)
	g.syncViews()

	g.tick++
	g.simTime += dt

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.collector.RecordTick(dt, g.flock.Boids())
	g.flushTelemetry()

	g.perfCollector.EndTick()
}

// syncViews copies each boid's pose into its entity.
func (g *Game) syncViews() {
	query := g.entityFilter.Query()
	for query.Next() {
		pos, vel, rot, _, agent := query.Get()
		b := agent.Boid
		v := b.Direction()

		pos.X, pos.Y = float32(b.X), float32(b.Y)
		vel.X, vel.Y = float32(v.X), float32(v.Y)
		rot.Heading = float32(geom.NormalizeAngle(b.Angle))
	}
}

// Reset replaces the flock with a fresh random population from the same
// seed. Parameters edited at runtime are kept.
func (g *Game) Reset() {
	g.clearEntities()
	g.rng = rand.New(rand.NewSource(g.seed))
	g.flock = g.newFlock()
	g.flock.Populate(g.cfg.Population.Initial, g.rng)
	g.spawnEntities()

	g.tick = 0
	g.simTime = 0
	g.collector = telemetry.NewCollector(g.collector.WindowDuration())
	g.bookmarkDetector = telemetry.NewBookmarkDetector(10)
	slog.Info("flock reset", "boids", g.flock.Len(), "seed", g.seed)
}

// Unload releases all resources.
func (g *Game) Unload() {
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output files", "error", err)
	}
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 {
	return g.tick
}

// SimTime returns the simulated time in milliseconds since the flock started.
func (g *Game) SimTime() float64 {
	return g.simTime
}

// Flock returns the simulated flock.
func (g *Game) Flock() *flock.Flock {
	return g.flock
}

// Params returns the live flock parameters.
func (g *Game) Params() *flock.Params {
	return &g.params
}

// Polarization returns the current flock polarization.
func (g *Game) Polarization() float64 {
	return telemetry.Polarization(g.flock.Boids())
}

// SetPaused pauses or resumes Update.
func (g *Game) SetPaused(paused bool) {
	g.paused = paused
}
