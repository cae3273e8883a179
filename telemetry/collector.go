package telemetry

import (
	"github.com/pthm-cable/boids/flock"
)

// Collector accumulates per-tick samples within time windows and produces
// WindowStats.
type Collector struct {
	windowDuration float64 // simulated ms per window

	// Current window tracking
	windowStartTick int32
	windowStartTime float64
	simTime         float64

	// Per-tick accumulators for the current window
	polarizationSum float64
	samples         int
}

// NewCollector creates a new stats collector.
// windowDuration: how long each stats window lasts in simulated milliseconds.
func NewCollector(windowDuration float64) *Collector {
	if windowDuration <= 0 {
		windowDuration = 1
	}
	return &Collector{windowDuration: windowDuration}
}

// RecordTick records one completed tick of length dt.
func (c *Collector) RecordTick(dt float64, boids []*flock.Boid) {
	c.simTime += dt
	c.polarizationSum += Polarization(boids)
	c.samples++
}

// SimTime returns the accumulated simulated time.
func (c *Collector) SimTime() float64 {
	return c.simTime
}

// ShouldFlush returns true if the current window has run its full length.
func (c *Collector) ShouldFlush() bool {
	return c.simTime-c.windowStartTime >= c.windowDuration
}

// Flush produces a WindowStats and resets accumulators for the next window.
// neighbors holds the visible-peer count per boid, as from flock.Neighbors.
func (c *Collector) Flush(currentTick int32, boids []*flock.Boid, neighbors []int) WindowStats {
	speedMean, speedStd, speedP10, speedP50, speedP90 := ComputeDistribution(Speeds(boids))
	nearestMean, _, _, nearestP50, _ := ComputeDistribution(NearestDistances(boids))

	var neighborsMean, isolated float64
	if len(neighbors) > 0 {
		var total, alone int
		for _, n := range neighbors {
			total += n
			if n == 0 {
				alone++
			}
		}
		neighborsMean = float64(total) / float64(len(neighbors))
		isolated = float64(alone) / float64(len(neighbors))
	}

	headingMean, headingStd := HeadingSpread(boids)

	var polarizationMean float64
	if c.samples > 0 {
		polarizationMean = c.polarizationSum / float64(c.samples)
	}

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTime:         c.simTime,

		Boids: len(boids),

		SpeedMean: speedMean,
		SpeedStd:  speedStd,
		SpeedP10:  speedP10,
		SpeedP50:  speedP50,
		SpeedP90:  speedP90,

		Polarization:     Polarization(boids),
		PolarizationMean: polarizationMean,
		HeadingMean:      headingMean,
		HeadingStd:       headingStd,

		NeighborsMean:   neighborsMean,
		IsolatedFrac:    isolated,
		NearestDistMean: nearestMean,
		NearestDistP50:  nearestP50,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.windowStartTime = c.simTime
	c.polarizationSum = 0
	c.samples = 0

	return stats
}

// WindowDuration returns the simulated length of a window.
func (c *Collector) WindowDuration() float64 {
	return c.windowDuration
}
