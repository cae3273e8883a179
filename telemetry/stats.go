// Package telemetry aggregates flock statistics and timing for logging and
// CSV output.
package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/boids/flock"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTime         float64 `csv:"sim_time"` // simulated ms at window end

	Boids int `csv:"boids"`

	// Speed distribution (sampled at window end)
	SpeedMean float64 `csv:"speed_mean"`
	SpeedStd  float64 `csv:"speed_std"`
	SpeedP10  float64 `csv:"speed_p10"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`

	// Order parameter: 1 = all headings equal, ~0 = disordered
	Polarization     float64 `csv:"polarization"`
	PolarizationMean float64 `csv:"polarization_mean"` // averaged over every tick in the window
	HeadingMean      float64 `csv:"heading_mean"`      // circular mean, radians
	HeadingStd       float64 `csv:"heading_std"`       // circular std, radians

	// Neighborhood structure (sampled at window end)
	NeighborsMean   float64 `csv:"neighbors_mean"`
	IsolatedFrac    float64 `csv:"isolated_frac"` // fraction seeing no peers
	NearestDistMean float64 `csv:"nearest_dist_mean"`
	NearestDistP50  float64 `csv:"nearest_dist_p50"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeDistribution calculates mean, population std and percentiles.
func ComputeDistribution(values []float64) (mean, std, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0, 0
	}

	mean, std = stat.PopMeanStdDev(values, nil)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, std, p10, p50, p90
}

// Polarization returns the length of the mean unit heading vector.
func Polarization(boids []*flock.Boid) float64 {
	if len(boids) == 0 {
		return 0
	}
	var sum r2.Vec
	for _, b := range boids {
		sum.X += math.Cos(b.Angle)
		sum.Y += math.Sin(b.Angle)
	}
	return r2.Norm(sum) / float64(len(boids))
}

// HeadingSpread returns the circular mean and circular standard deviation of
// the boid headings. The deviation is +Inf when the headings cancel out.
func HeadingSpread(boids []*flock.Boid) (mean, std float64) {
	if len(boids) == 0 {
		return 0, 0
	}
	angles := make([]float64, len(boids))
	for i, b := range boids {
		angles[i] = b.Angle
	}
	mean = stat.CircularMean(angles, nil)

	r := Polarization(boids)
	if r >= 1 {
		return mean, 0
	}
	return mean, math.Sqrt(-2 * math.Log(r))
}

// Speeds returns each boid's speed.
func Speeds(boids []*flock.Boid) []float64 {
	speeds := make([]float64, len(boids))
	for i, b := range boids {
		speeds[i] = b.Speed
	}
	return speeds
}

// NearestDistances returns, for every boid, the distance to its closest peer
// using the flock geometry (wrapped or Euclidean). Empty for fewer than two.
func NearestDistances(boids []*flock.Boid) []float64 {
	if len(boids) < 2 {
		return nil
	}
	dists := make([]float64, len(boids))
	for i, b := range boids {
		nearest := math.Inf(1)
		for j, o := range boids {
			if i == j {
				continue
			}
			if d := b.DistanceTo(o); d < nearest {
				nearest = d
			}
		}
		dists[i] = nearest
	}
	return dists
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTime),
		slog.Int("boids", s.Boids),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_std", s.SpeedStd),
		slog.Float64("speed_p10", s.SpeedP10),
		slog.Float64("speed_p50", s.SpeedP50),
		slog.Float64("speed_p90", s.SpeedP90),
		slog.Float64("polarization", s.Polarization),
		slog.Float64("polarization_mean", s.PolarizationMean),
		slog.Float64("heading_mean", s.HeadingMean),
		headingStdAttr(s.HeadingStd),
		slog.Float64("neighbors_mean", s.NeighborsMean),
		slog.Float64("isolated_frac", s.IsolatedFrac),
		slog.Float64("nearest_dist_mean", s.NearestDistMean),
		slog.Float64("nearest_dist_p50", s.NearestDistP50),
	)
}

// headingStdAttr logs an infinite deviation as a string; JSON has no Inf.
func headingStdAttr(std float64) slog.Attr {
	if math.IsInf(std, 0) {
		return slog.String("heading_std", "inf")
	}
	return slog.Float64("heading_std", std)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
