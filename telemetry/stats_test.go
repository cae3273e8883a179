package telemetry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/boids/flock"
)

// boidsAt builds boids sharing p with the given positions and headings.
func boidsAt(p *flock.Params, poses [][3]float64) []*flock.Boid {
	rng := rand.New(rand.NewSource(1))
	boids := make([]*flock.Boid, len(poses))
	for i, pose := range poses {
		b := flock.NewAt(p, pose[0], pose[1], rng)
		b.Angle = pose[2]
		boids[i] = b
	}
	return boids
}

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.9},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeDistribution(t *testing.T) {
	values := []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0}
	mean, std, p10, p50, p90 := ComputeDistribution(values)

	if math.Abs(mean-0.55) > 0.001 {
		t.Errorf("mean = %v, want 0.55", mean)
	}
	// Population std of 0.1..1.0
	if math.Abs(std-0.2872) > 0.001 {
		t.Errorf("std = %v, want ~0.2872", std)
	}
	if math.Abs(p10-0.19) > 0.01 {
		t.Errorf("p10 = %v, want ~0.19", p10)
	}
	if math.Abs(p50-0.55) > 0.01 {
		t.Errorf("p50 = %v, want ~0.55", p50)
	}
	if math.Abs(p90-0.91) > 0.01 {
		t.Errorf("p90 = %v, want ~0.91", p90)
	}
}

func TestComputeDistributionEmpty(t *testing.T) {
	mean, std, p10, p50, p90 := ComputeDistribution([]float64{})

	if mean != 0 || std != 0 || p10 != 0 || p50 != 0 || p90 != 0 {
		t.Error("empty slice should return all zeros")
	}
}

func TestPolarization(t *testing.T) {
	p := flock.Wrapped()

	tests := []struct {
		name   string
		angles []float64
		want   float64
	}{
		{"empty", nil, 0},
		{"aligned", []float64{0.3, 0.3, 0.3}, 1},
		{"aligned across full turns", []float64{0, 2 * math.Pi, -2 * math.Pi}, 1},
		{"opposed", []float64{0, math.Pi}, 0},
		{"right angle", []float64{0, math.Pi / 2}, math.Sqrt2 / 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			poses := make([][3]float64, len(tt.angles))
			for i, a := range tt.angles {
				poses[i] = [3]float64{float64(i), 0, a}
			}
			got := Polarization(boidsAt(&p, poses))
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Polarization = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHeadingSpread(t *testing.T) {
	p := flock.Wrapped()

	mean, std := HeadingSpread(boidsAt(&p, [][3]float64{{0, 0, 1}, {1, 0, 1}}))
	if math.Abs(mean-1) > 1e-9 || std != 0 {
		t.Errorf("aligned spread = (%v, %v), want (1, 0)", mean, std)
	}

	// Headings straddling zero average to zero rather than pi.
	mean, std = HeadingSpread(boidsAt(&p, [][3]float64{{0, 0, -0.2}, {1, 0, 0.2}}))
	if math.Abs(mean) > 1e-9 {
		t.Errorf("circular mean = %v, want 0", mean)
	}
	if std <= 0 || std > 0.25 {
		t.Errorf("circular std = %v, want small and positive", std)
	}

	if mean, std := HeadingSpread(nil); mean != 0 || std != 0 {
		t.Errorf("empty spread = (%v, %v), want zeros", mean, std)
	}
}

func TestNearestDistances(t *testing.T) {
	wrapped := flock.Wrapped()
	euclidean := flock.Euclidean()
	poses := [][3]float64{{5, 300, 0}, {795, 300, 0}, {400, 300, 0}}

	got := NearestDistances(boidsAt(&wrapped, poses))
	want := []float64{10, 10, 395}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("wrapped nearest[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	got = NearestDistances(boidsAt(&euclidean, poses))
	want = []float64{395, 395, 395}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("euclidean nearest[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	if d := NearestDistances(boidsAt(&wrapped, poses[:1])); len(d) != 0 {
		t.Errorf("single boid nearest = %v, want empty", d)
	}
}
