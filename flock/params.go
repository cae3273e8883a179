package flock

import (
	"fmt"
	"math"
	"sort"
)

// Params holds the tunables shared by every boid of a flock.
// Boids keep a pointer to their Params; drivers may change fields between
// ticks but never during one.
type Params struct {
	SightRadius float64 // neighbor visibility radius
	SightAngle  float64 // full field-of-view angle in radians, centered on heading
	RepelRadius float64 // separation applies below this distance

	MaxSpeed float64
	MinSpeed float64 // only enforced when SpeedFloor is set

	AreaWidth  float64
	AreaHeight float64

	CenterWeight     float64
	AlignmentWeight  float64
	SeparationWeight float64

	// FieldOfView enables the sight-angle test on top of the radius test.
	FieldOfView bool
	// Wrap makes all distances and offsets toroidal. When off, plain Euclidean
	// geometry is used; positions still wrap into the area.
	Wrap bool
	// SpeedFloor clamps speed from below at MinSpeed.
	SpeedFloor bool
}

// Preset names.
const (
	PresetWrapped   = "wrapped"
	PresetEuclidean = "euclidean"
)

// DefaultPreset is the preset used when none is selected.
const DefaultPreset = PresetWrapped

// Wrapped returns the toroidal preset: angle-and-radius sensing on a wrapped
// plane with a speed floor.
func Wrapped() Params {
	return Params{
		SightRadius:      70,
		SightAngle:       math.Pi * (5.0 / 4.0), // 225 degrees
		RepelRadius:      30,
		MaxSpeed:         0.2,
		MinSpeed:         0.05,
		AreaWidth:        800,
		AreaHeight:       600,
		CenterWeight:     0.001,
		AlignmentWeight:  0.005,
		SeparationWeight: 0.03,
		FieldOfView:      true,
		Wrap:             true,
		SpeedFloor:       true,
	}
}

// Euclidean returns the simpler preset: radius-only sensing with straight-line
// distances and no speed floor.
func Euclidean() Params {
	return Params{
		SightRadius:      50,
		SightAngle:       math.Pi / 2, // 90 degrees, unused while FieldOfView is off
		RepelRadius:      20,
		MaxSpeed:         0.2,
		MinSpeed:         0,
		AreaWidth:        800,
		AreaHeight:       600,
		CenterWeight:     0.0005,
		AlignmentWeight:  0.05,
		SeparationWeight: 0.1,
	}
}

var presets = map[string]func() Params{
	PresetWrapped:   Wrapped,
	PresetEuclidean: Euclidean,
}

// Preset returns the named preset.
func Preset(name string) (Params, bool) {
	fn, ok := presets[name]
	if !ok {
		return Params{}, false
	}
	return fn(), true
}

// PresetNames returns all preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate reports the first violated parameter invariant.
func (p *Params) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"sight_radius", p.SightRadius},
		{"sight_angle", p.SightAngle},
		{"repel_radius", p.RepelRadius},
		{"max_speed", p.MaxSpeed},
		{"min_speed", p.MinSpeed},
		{"area_width", p.AreaWidth},
		{"area_height", p.AreaHeight},
		{"center_weight", p.CenterWeight},
		{"alignment_weight", p.AlignmentWeight},
		{"separation_weight", p.SeparationWeight},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) {
			return fmt.Errorf("%s is NaN", f.name)
		}
	}

	if p.SightRadius < 0 {
		return fmt.Errorf("sight_radius must be >= 0, got %v", p.SightRadius)
	}
	if p.RepelRadius < 0 {
		return fmt.Errorf("repel_radius must be >= 0, got %v", p.RepelRadius)
	}
	if p.AreaWidth < 0 || p.AreaHeight < 0 {
		return fmt.Errorf("area must be non-negative, got %vx%v", p.AreaWidth, p.AreaHeight)
	}
	if p.MaxSpeed < 0 {
		return fmt.Errorf("max_speed must be >= 0, got %v", p.MaxSpeed)
	}
	if p.SpeedFloor && p.MinSpeed > p.MaxSpeed {
		return fmt.Errorf("min_speed %v exceeds max_speed %v", p.MinSpeed, p.MaxSpeed)
	}
	return nil
}
