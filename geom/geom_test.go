package geom

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

const eps = 1e-12

func TestMagnitudeAndAngle(t *testing.T) {
	tests := []struct {
		name      string
		v         r2.Vec
		wantMag   float64
		wantAngle float64
	}{
		{"zero", r2.Vec{}, 0, 0},
		{"unit x", r2.Vec{X: 1}, 1, 0},
		{"unit y", r2.Vec{Y: 1}, 1, math.Pi / 2},
		{"3-4-5", r2.Vec{X: 3, Y: 4}, 5, math.Atan2(4, 3)},
		{"negative x", r2.Vec{X: -2}, 2, math.Pi},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Magnitude(tt.v); math.Abs(got-tt.wantMag) > eps {
				t.Errorf("Magnitude(%v) = %v, want %v", tt.v, got, tt.wantMag)
			}
			if got := Angle(tt.v); math.Abs(got-tt.wantAngle) > eps {
				t.Errorf("Angle(%v) = %v, want %v", tt.v, got, tt.wantAngle)
			}
		})
	}
}

func TestFromPolarRoundTrip(t *testing.T) {
	v := FromPolar(2, math.Pi/3)
	if math.Abs(Magnitude(v)-2) > eps {
		t.Errorf("magnitude = %v, want 2", Magnitude(v))
	}
	if math.Abs(Angle(v)-math.Pi/3) > eps {
		t.Errorf("angle = %v, want %v", Angle(v), math.Pi/3)
	}
}

func TestDistance(t *testing.T) {
	got := Distance(r2.Vec{X: 10, Y: 20}, r2.Vec{X: 16, Y: 13})
	if want := math.Sqrt(85); math.Abs(got-want) > eps {
		t.Errorf("Distance = %v, want %v", got, want)
	}
}

func TestWrappedDistance(t *testing.T) {
	tests := []struct {
		name       string
		p1, p2     float64
		axisLength float64
		want       float64
	}{
		{"same point", 5, 5, 100, 0},
		{"inside half", 10, 30, 100, 20},
		{"exactly half", 0, 50, 100, 50},
		{"across upper edge", 99, 1, 100, 2},
		{"across lower edge", 1, 99, 100, 2},
		{"zero axis", 3, 7, 0, 4},
		{"angles", 0.1, 2*math.Pi - 0.1, 2 * math.Pi, 0.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrappedDistance(tt.p1, tt.p2, tt.axisLength)
			if math.IsNaN(got) || math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("WrappedDistance(%v, %v, %v) = %v, want %v", tt.p1, tt.p2, tt.axisLength, got, tt.want)
			}
		})
	}
}

func TestClosestWrappedPoint(t *testing.T) {
	tests := []struct {
		name       string
		from, to   float64
		axisLength float64
		want       float64
	}{
		{"no shift", 10, 30, 100, 30},
		{"shift up", 99, 1, 100, 101},
		{"shift down", 1, 99, 100, -1},
		{"zero axis", 1, 99, 0, 99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClosestWrappedPoint(tt.from, tt.to, tt.axisLength); got != tt.want {
				t.Errorf("ClosestWrappedPoint(%v, %v, %v) = %v, want %v", tt.from, tt.to, tt.axisLength, got, tt.want)
			}
		})
	}
}

func TestWrapCoord(t *testing.T) {
	tests := []struct {
		name       string
		v          float64
		axisLength float64
		want       float64
	}{
		{"inside", 450, 500, 450},
		{"beyond upper edge", 450, 400, 50},
		{"single negative step", -10, 400, 390},
		{"exactly on edge", 400, 400, 0},
		{"large negative", -810, 400, 390},
		{"large positive", 1250, 400, 50},
		{"zero axis", -3, 0, -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WrapCoord(tt.v, tt.axisLength); got != tt.want {
				t.Errorf("WrapCoord(%v, %v) = %v, want %v", tt.v, tt.axisLength, got, tt.want)
			}
		})
	}
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi, math.Pi},
		{3 * math.Pi / 2, -math.Pi / 2},
		{5 * math.Pi, math.Pi},
		{-7 * math.Pi / 4, math.Pi / 4},
	}

	for _, tt := range tests {
		if got := NormalizeAngle(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("NormalizeAngle(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
