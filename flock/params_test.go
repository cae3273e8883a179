package flock

import (
	"math"
	"slices"
	"testing"
)

func TestPresets(t *testing.T) {
	names := PresetNames()
	if !slices.Equal(names, []string{PresetEuclidean, PresetWrapped}) {
		t.Fatalf("PresetNames() = %v", names)
	}

	w, ok := Preset(PresetWrapped)
	if !ok {
		t.Fatal("wrapped preset missing")
	}
	if !w.Wrap || !w.FieldOfView || !w.SpeedFloor {
		t.Errorf("wrapped preset toggles = %+v", w)
	}
	if math.Abs(w.SightAngle-toRad(225)) > eps {
		t.Errorf("wrapped sight angle = %v, want 225 degrees", w.SightAngle)
	}

	e, ok := Preset(PresetEuclidean)
	if !ok {
		t.Fatal("euclidean preset missing")
	}
	if e.Wrap || e.FieldOfView || e.SpeedFloor {
		t.Errorf("euclidean preset toggles = %+v", e)
	}
	if math.Abs(e.SightAngle-toRad(90)) > eps {
		t.Errorf("euclidean sight angle = %v, want 90 degrees", e.SightAngle)
	}

	if _, ok := Preset("reynolds"); ok {
		t.Error("unknown preset should not resolve")
	}
}

func TestPresetsAreIndependentCopies(t *testing.T) {
	a, _ := Preset(DefaultPreset)
	a.SightRadius = 1
	b, _ := Preset(DefaultPreset)
	if b.SightRadius == 1 {
		t.Error("mutating a preset copy leaked into the preset")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *Params)
		wantErr bool
	}{
		{"wrapped ok", func(p *Params) {}, false},
		{"euclidean ok", func(p *Params) { *p = Euclidean() }, false},
		{"infinite max speed", func(p *Params) { p.MaxSpeed = math.Inf(1) }, false},
		{"negative sight", func(p *Params) { p.SightRadius = -1 }, true},
		{"negative repel", func(p *Params) { p.RepelRadius = -1 }, true},
		{"negative area", func(p *Params) { p.AreaHeight = -5 }, true},
		{"floor above max", func(p *Params) { p.MinSpeed = 1 }, true},
		{"floor above max without floor", func(p *Params) { p.MinSpeed = 1; p.SpeedFloor = false }, false},
		{"NaN weight", func(p *Params) { p.CenterWeight = math.NaN() }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Wrapped()
			tt.mutate(&p)
			err := p.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
