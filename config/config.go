// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/boids/flock"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	World      WorldConfig      `yaml:"world"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Flock      FlockConfig      `yaml:"flock"`
	Population PopulationConfig `yaml:"population"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds the dimensions of the wrapped plane.
type WorldConfig struct {
	Width  float64 `yaml:"width"`  // 0 = screen width
	Height float64 `yaml:"height"` // 0 = screen height
}

// PhysicsConfig holds tick parameters.
type PhysicsConfig struct {
	DT             float64 `yaml:"dt"`               // milliseconds per headless tick; speeds are per millisecond
	StepsPerUpdate int     `yaml:"steps_per_update"` // ticks per Update call
	Consistency    string  `yaml:"consistency"`      // live | snapshot
	BroadPhase     string  `yaml:"broad_phase"`      // scan | grid
	GridCellSize   float64 `yaml:"grid_cell_size"`   // 0 = sight radius
}

// FlockConfig selects a rule preset and optionally overrides its values.
// Angles are in degrees. Unset overrides keep the preset value.
type FlockConfig struct {
	Preset string `yaml:"preset"`

	SightRadius *float64 `yaml:"sight_radius,omitempty"`
	SightAngle  *float64 `yaml:"sight_angle,omitempty"`
	RepelRadius *float64 `yaml:"repel_radius,omitempty"`
	MaxSpeed    *float64 `yaml:"max_speed,omitempty"`
	MinSpeed    *float64 `yaml:"min_speed,omitempty"`

	CenterWeight     *float64 `yaml:"center_weight,omitempty"`
	AlignmentWeight  *float64 `yaml:"alignment_weight,omitempty"`
	SeparationWeight *float64 `yaml:"separation_weight,omitempty"`

	FieldOfView *bool `yaml:"field_of_view,omitempty"`
	Wrap        *bool `yaml:"wrap,omitempty"`
	SpeedFloor  *bool `yaml:"speed_floor,omitempty"`
}

// PopulationConfig holds population parameters.
type PopulationConfig struct {
	Initial int `yaml:"initial"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`          // window length in simulated milliseconds
	PerfCollectorWindow int     `yaml:"perf_collector_window"` // ticks
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Params      flock.Params      // preset with overrides and world size applied
	Consistency flock.Consistency // parsed Physics.Consistency
	UseGrid     bool              // Physics.BroadPhase == "grid"
	WorldW32    float32           // effective world width as float32
	WorldH32    float32           // effective world height as float32
}

// Default returns the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
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
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Recompute refreshes derived values after fields were changed in code.
func (c *Config) Recompute() error {
	return c.computeDerived()
}

// minGridCellSize is the smallest explicit broad phase cell, in world units.
const minGridCellSize = 1.0

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() error {
	worldW := c.World.Width
	if worldW == 0 {
		worldW = float64(c.Screen.Width)
	}
	worldH := c.World.Height
	if worldH == 0 {
		worldH = float64(c.Screen.Height)
	}
	c.Derived.WorldW32 = float32(worldW)
	c.Derived.WorldH32 = float32(worldH)

	params, err := c.Flock.resolve()
	if err != nil {
		return err
	}
	params.AreaWidth = worldW
	params.AreaHeight = worldH
	if err := params.Validate(); err != nil {
		return fmt.Errorf("invalid flock parameters: %w", err)
	}
	c.Derived.Params = params

	consistency, ok := flock.ParseConsistency(c.Physics.Consistency)
	if !ok {
		return fmt.Errorf("unknown consistency %q (want live or snapshot)", c.Physics.Consistency)
	}
	c.Derived.Consistency = consistency

	switch c.Physics.BroadPhase {
	case "", "scan":
		c.Derived.UseGrid = false
	case "grid":
		c.Derived.UseGrid = true
	default:
		return fmt.Errorf("unknown broad phase %q (want scan or grid)", c.Physics.BroadPhase)
	}

	if gs := c.Physics.GridCellSize; gs != 0 && !(gs >= minGridCellSize && !math.IsInf(gs, 0)) {
		return fmt.Errorf("physics.grid_cell_size must be 0 or a finite value >= %v, got %v", minGridCellSize, gs)
	}

	if c.Physics.StepsPerUpdate < 1 {
		c.Physics.StepsPerUpdate = 1
	}
	if c.Population.Initial < 0 {
		return fmt.Errorf("population.initial must be >= 0, got %d", c.Population.Initial)
	}
	return nil
}

// resolve applies the overrides on top of the selected preset.
func (f *FlockConfig) resolve() (flock.Params, error) {
	name := f.Preset
	if name == "" {
		name = flock.DefaultPreset
	}
	p, ok := flock.Preset(name)
	if !ok {
		return flock.Params{}, fmt.Errorf("unknown flock preset %q (have %v)", name, flock.PresetNames())
	}

	setFloat(&p.SightRadius, f.SightRadius)
	setFloat(&p.RepelRadius, f.RepelRadius)
	setFloat(&p.MaxSpeed, f.MaxSpeed)
	setFloat(&p.MinSpeed, f.MinSpeed)
	setFloat(&p.CenterWeight, f.CenterWeight)
	setFloat(&p.AlignmentWeight, f.AlignmentWeight)
	setFloat(&p.SeparationWeight, f.SeparationWeight)
	if f.SightAngle != nil {
		p.SightAngle = *f.SightAngle * math.Pi / 180
	}
	setBool(&p.FieldOfView, f.FieldOfView)
	setBool(&p.Wrap, f.Wrap)
	setBool(&p.SpeedFloor, f.SpeedFloor)

	return p, nil
}

// SetFromParams replaces the overrides so that resolving yields p.
// Used to persist tuned or interactively edited parameters.
func (f *FlockConfig) SetFromParams(p flock.Params) {
	angle := p.SightAngle * 180 / math.Pi
	*f = FlockConfig{
		Preset:           f.Preset,
		SightRadius:      &p.SightRadius,
		SightAngle:       &angle,
		RepelRadius:      &p.RepelRadius,
		MaxSpeed:         &p.MaxSpeed,
		MinSpeed:         &p.MinSpeed,
		CenterWeight:     &p.CenterWeight,
		AlignmentWeight:  &p.AlignmentWeight,
		SeparationWeight: &p.SeparationWeight,
		FieldOfView:      &p.FieldOfView,
		Wrap:             &p.Wrap,
		SpeedFloor:       &p.SpeedFloor,
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
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
