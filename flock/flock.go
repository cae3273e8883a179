// Package flock implements boids that steer by cohesion, separation and
// alignment on a bounded plane whose edges wrap around.
package flock

import (
	"math"
	"math/rand"
	"slices"
)

// Consistency selects what state boids observe while a tick is in progress.
type Consistency uint8

const (
	// Live updates boids in order, each reading the collection as it is at
	// that moment, including peers already moved this tick.
	Live Consistency = iota
	// Snapshot makes every boid sense the state from the start of the tick.
	// Results no longer depend on collection order, and differ from Live.
	Snapshot
)

// String returns the configuration name of the mode.
func (c Consistency) String() string {
	switch c {
	case Live:
		return "live"
	case Snapshot:
		return "snapshot"
	default:
		return "unknown"
	}
}

// ParseConsistency maps a configuration name to a mode.
func ParseConsistency(s string) (Consistency, bool) {
	switch s {
	case "", "live":
		return Live, true
	case "snapshot":
		return Snapshot, true
	default:
		return Live, false
	}
}

// Option configures a Flock.
type Option func(*Flock)

// WithConsistency sets the tick consistency mode.
func WithConsistency(c Consistency) Option {
	return func(f *Flock) {
		f.consistency = c
	}
}

// WithGrid enables the spatial grid broad phase. A cellSize of zero uses the
// sight radius.
func WithGrid(cellSize float64) Option {
	return func(f *Flock) {
		f.useGrid = true
		f.gridCellSize = cellSize
	}
}

// Flock is an ordered collection of boids sharing one Params.
type Flock struct {
	params      *Params
	boids       []*Boid
	consistency Consistency

	useGrid      bool
	gridCellSize float64
	grid         *Grid

	// Reused per tick
	snapshot   []Boid
	snapPtrs   []*Boid
	candidates []int
	peers      []*Boid
	visible    []*Boid
}

// NewFlock creates an empty flock.
func NewFlock(p *Params, opts ...Option) *Flock {
	f := &Flock{params: p}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Params returns the shared parameters.
func (f *Flock) Params() *Params {
	return f.params
}

// Consistency returns the tick consistency mode.
func (f *Flock) Consistency() Consistency {
	return f.consistency
}

// SetConsistency changes the tick consistency mode. Call between ticks.
func (f *Flock) SetConsistency(c Consistency) {
	f.consistency = c
}

// SetGrid turns the grid broad phase on or off. A cellSize of 0 uses the
// sight radius. Call between ticks.
func (f *Flock) SetGrid(on bool, cellSize float64) {
	f.useGrid = on
	f.gridCellSize = cellSize
	if !on {
		f.grid = nil
	}
}

// Grid returns the broad phase used by the last Step, or nil when that tick
// used the full scan.
func (f *Flock) Grid() *Grid {
	return f.grid
}

// Populate adds n boids at random positions.
func (f *Flock) Populate(n int, rng *rand.Rand) {
	for i := 0; i < n; i++ {
		f.boids = append(f.boids, New(f.params, rng))
	}
}

// Add appends a boid. Its params are replaced by the flock's.
func (f *Flock) Add(b *Boid) {
	b.params = f.params
	f.boids = append(f.boids, b)
}

// Boids returns the boids in update order. The slice is owned by the flock.
func (f *Flock) Boids() []*Boid {
	return f.boids
}

// Len returns the number of boids.
func (f *Flock) Len() int {
	return len(f.boids)
}

// Step advances every boid by one tick of length dt.
func (f *Flock) Step(dt float64) {
	if len(f.boids) == 0 {
		return
	}

	view := f.boids
	if f.consistency == Snapshot {
		view = f.takeSnapshot()
	}

	grid := f.prepareGrid(view, dt)
	if grid == nil {
		f.grid = nil
	}

	for i, b := range f.boids {
		observer := view[i]
		peers := view
		if grid != nil {
			peers = f.gatherCandidates(grid, view, observer)
		}
		f.visible = observer.appendVisible(f.visible[:0], peers)
		b.steer(f.visible)
		b.move(dt)
	}
}

// Neighbors returns how many boids each boid currently sees, in flock order.
// dst is reused when large enough.
func (f *Flock) Neighbors(dst []int) []int {
	dst = slices.Grow(dst[:0], len(f.boids))
	for _, b := range f.boids {
		f.visible = b.appendVisible(f.visible[:0], f.boids)
		dst = append(dst, len(f.visible))
	}
	return dst
}

// takeSnapshot copies every boid so sensing reads start-of-tick state.
func (f *Flock) takeSnapshot() []*Boid {
	n := len(f.boids)
	f.snapshot = slices.Grow(f.snapshot[:0], n)[:n]
	f.snapPtrs = slices.Grow(f.snapPtrs[:0], n)[:n]
	for i, b := range f.boids {
		f.snapshot[i] = *b
		f.snapPtrs[i] = &f.snapshot[i]
	}
	return f.snapPtrs
}

// prepareGrid rebuilds the broad phase for this tick, or returns nil when the
// full scan must be used.
func (f *Flock) prepareGrid(view []*Boid, dt float64) *Grid {
	if !f.useGrid {
		return nil
	}
	p := f.params

	cellSize := f.gridCellSize
	if cellSize <= 0 {
		cellSize = p.SightRadius
	}
	if !isPositiveFinite(cellSize) || !isPositiveFinite(p.AreaWidth) || !isPositiveFinite(p.AreaHeight) {
		return nil
	}
	cellSize = boundedCellSize(p.AreaWidth, p.AreaHeight, cellSize, len(view))

	// In live mode peers may move up to one tick of travel after insertion.
	pad := 0.0
	if f.consistency == Live {
		pad = p.MaxSpeed * math.Abs(dt)
		if p.SpeedFloor {
			pad = math.Max(pad, p.MinSpeed*math.Abs(dt))
		}
	}
	radius := p.SightRadius + pad
	if math.IsNaN(radius) || math.IsInf(radius, 0) {
		return nil
	}

	if f.grid == nil || !f.grid.fits(p.AreaWidth, p.AreaHeight, cellSize) {
		f.grid = NewGrid(p.AreaWidth, p.AreaHeight, cellSize)
	}
	f.grid.queryRadius = radius
	f.grid.Clear()
	for i, b := range view {
		// Positions set outside the area by hand have no reliable cell.
		if !(b.X >= 0 && b.X < p.AreaWidth && b.Y >= 0 && b.Y < p.AreaHeight) {
			return nil
		}
		f.grid.Insert(i, b.X, b.Y)
	}
	return f.grid
}

// gatherCandidates returns the peers near observer in collection order, so
// that the exact filter sees them in the same order as a full scan.
func (f *Flock) gatherCandidates(grid *Grid, view []*Boid, observer *Boid) []*Boid {
	f.candidates = grid.QueryInto(f.candidates[:0], observer.X, observer.Y, grid.queryRadius)
	slices.Sort(f.candidates)

	f.peers = f.peers[:0]
	for _, idx := range f.candidates {
		f.peers = append(f.peers, view[idx])
	}
	return f.peers
}

// minGridCells is the cell budget of a grid regardless of flock size.
const minGridCells = 64 * 64

// boundedCellSize grows cellSize until the grid holds at most
// max(4*n, minGridCells) cells. Larger cells only widen the candidate set.
func boundedCellSize(width, height, cellSize float64, n int) float64 {
	limit := float64(max(4*n, minGridCells))
	if (width/cellSize)*(height/cellSize) <= limit {
		return cellSize
	}
	return math.Sqrt(width * height / limit)
}

func isPositiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
