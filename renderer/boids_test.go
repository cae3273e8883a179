package renderer

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func near(a, b r2.Vec) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

func TestTrianglePoints(t *testing.T) {
	tests := []struct {
		name    string
		heading float64
		scale   float64
		want    [3]r2.Vec
	}{
		{
			name:  "east",
			scale: 1,
			want:  [3]r2.Vec{{X: 110, Y: 50}, {X: 90, Y: 43}, {X: 90, Y: 57}},
		},
		{
			name:    "south",
			heading: math.Pi / 2,
			scale:   1,
			want:    [3]r2.Vec{{X: 100, Y: 60}, {X: 107, Y: 40}, {X: 93, Y: 40}},
		},
		{
			name:  "scaled",
			scale: 2,
			want:  [3]r2.Vec{{X: 120, Y: 50}, {X: 80, Y: 36}, {X: 80, Y: 64}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TrianglePoints(r2.Vec{X: 100, Y: 50}, tt.heading, tt.scale)
			for i := range got {
				if !near(got[i], tt.want[i]) {
					t.Errorf("point %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestBoidExtentCoversShape(t *testing.T) {
	for _, p := range boidShape {
		if r2.Norm(p) > boidExtent {
			t.Errorf("shape point %v outside extent %v", p, boidExtent)
		}
	}
}

func TestSightSector(t *testing.T) {
	start, end, full := SightSector(0, math.Pi)
	if full || math.Abs(float64(start)+90) > 1e-4 || math.Abs(float64(end)-90) > 1e-4 {
		t.Errorf("half-plane sector = (%v, %v, %v), want (-90, 90, false)", start, end, full)
	}

	start, end, _ = SightSector(math.Pi/2, 225*math.Pi/180)
	if math.Abs(float64(start)+22.5) > 1e-4 || math.Abs(float64(end)-202.5) > 1e-4 {
		t.Errorf("225 deg sector = (%v, %v), want (-22.5, 202.5)", start, end)
	}

	if _, _, full := SightSector(1, 2*math.Pi); !full {
		t.Error("full turn should report a full circle")
	}
}
