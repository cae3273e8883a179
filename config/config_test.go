package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/boids/flock"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := flock.Wrapped()
	got := cfg.Derived.Params
	if got != want {
		t.Errorf("default params = %+v, want wrapped preset %+v", got, want)
	}
	if cfg.Population.Initial != 50 {
		t.Errorf("initial population = %d, want 50", cfg.Population.Initial)
	}
	if cfg.Derived.Consistency != flock.Live {
		t.Errorf("consistency = %v, want live", cfg.Derived.Consistency)
	}
	if cfg.Derived.UseGrid {
		t.Error("grid should be off by default")
	}
	if cfg.Derived.WorldW32 != 800 || cfg.Derived.WorldH32 != 600 {
		t.Errorf("world = %vx%v, want 800x600", cfg.Derived.WorldW32, cfg.Derived.WorldH32)
	}
}

func TestLoadOverridesMergeWithPreset(t *testing.T) {
	path := writeFile(t, `
world:
  width: 1000
flock:
  preset: euclidean
  sight_radius: 80
  sight_angle: 180
  field_of_view: true
physics:
  consistency: snapshot
  broad_phase: grid
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	p := cfg.Derived.Params
	base := flock.Euclidean()
	if p.SightRadius != 80 {
		t.Errorf("sight radius = %v, want 80", p.SightRadius)
	}
	if math.Abs(p.SightAngle-math.Pi) > 1e-12 {
		t.Errorf("sight angle = %v, want pi", p.SightAngle)
	}
	if !p.FieldOfView {
		t.Error("field_of_view override ignored")
	}
	if p.RepelRadius != base.RepelRadius || p.CenterWeight != base.CenterWeight {
		t.Errorf("unset fields should keep the preset: %+v", p)
	}
	if p.AreaWidth != 1000 || p.AreaHeight != 600 {
		t.Errorf("area = %vx%v, want 1000x600", p.AreaWidth, p.AreaHeight)
	}
	if cfg.Derived.Consistency != flock.Snapshot || !cfg.Derived.UseGrid {
		t.Errorf("physics not applied: %+v", cfg.Derived)
	}
	// Untouched sections keep defaults.
	if cfg.Screen.TargetFPS != 60 {
		t.Errorf("target fps = %d, want 60", cfg.Screen.TargetFPS)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown preset", "flock:\n  preset: starlings\n"},
		{"invalid params", "flock:\n  min_speed: 5\n"},
		{"unknown consistency", "physics:\n  consistency: barrier\n"},
		{"unknown broad phase", "physics:\n  broad_phase: quadtree\n"},
		{"negative grid cell", "physics:\n  grid_cell_size: -10\n"},
		{"tiny grid cell", "physics:\n  grid_cell_size: 0.01\n"},
		{"infinite grid cell", "physics:\n  grid_cell_size: .inf\n"},
		{"negative population", "population:\n  initial: -1\n"},
		{"bad yaml", "flock: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeFile(t, tt.content)); err == nil {
				t.Error("expected an error")
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := Default()
	p := cfg.Derived.Params
	p.CenterWeight = 0.002
	p.SightAngle = math.Pi / 2
	cfg.Flock.SetFromParams(p)

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	got := loaded.Derived.Params
	if got.CenterWeight != 0.002 {
		t.Errorf("center weight = %v, want 0.002", got.CenterWeight)
	}
	if math.Abs(got.SightAngle-math.Pi/2) > 1e-12 {
		t.Errorf("sight angle = %v, want pi/2", got.SightAngle)
	}
	if loaded.Flock.Preset != cfg.Flock.Preset {
		t.Errorf("preset = %q, want %q", loaded.Flock.Preset, cfg.Flock.Preset)
	}
}
