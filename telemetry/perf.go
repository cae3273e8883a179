package telemetry

import (
	"log/slog"
	"slices"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Phase identifies one stage of a simulation tick.
type Phase int

// Tick phases in execution order.
const (
	PhaseSenseSteer Phase = iota // flock.Step: sensing, steering and movement
	PhaseSync                    // copying boid poses into the ECS views
	PhaseTelemetry
	numPhases
)

var phaseNames = [numPhases]string{"sense_steer", "sync", "telemetry"}

func (ph Phase) String() string {
	if ph < 0 || ph >= numPhases {
		return "unknown"
	}
	return phaseNames[ph]
}

// Phases lists the phase names in execution order.
var Phases = phaseNames[:]

// tickSample is the timing of one tick.
type tickSample struct {
	total  time.Duration
	phases [numPhases]time.Duration
}

// PerfCollector keeps tick timings over a rolling window of ticks.
type PerfCollector struct {
	ring  []tickSample
	next  int
	count int

	cur        tickSample
	tickStart  time.Time
	phaseStart time.Time
	phase      Phase
	inPhase    bool

	now func() time.Time
}

// NewPerfCollector creates a collector averaging over windowSize ticks.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		ring: make([]tickSample, windowSize),
		now:  time.Now,
	}
}

// StartTick begins timing a new tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = p.now()
	p.cur = tickSample{}
	p.inPhase = false
}

// StartPhase closes the running phase, if any, and starts ph.
func (p *PerfCollector) StartPhase(ph Phase) {
	now := p.now()
	p.closePhase(now)
	p.phase = ph
	p.phaseStart = now
	p.inPhase = ph >= 0 && ph < numPhases
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.inPhase {
		p.cur.phases[p.phase] += now.Sub(p.phaseStart)
	}
}

// EndTick closes the running phase and records the tick.
func (p *PerfCollector) EndTick() {
	now := p.now()
	p.closePhase(now)
	p.inPhase = false
	p.cur.total = now.Sub(p.tickStart)

	p.ring[p.next] = p.cur
	p.next = (p.next + 1) % len(p.ring)
	if p.count < len(p.ring) {
		p.count++
	}
}

// PerfStats summarizes the ticks in the window.
type PerfStats struct {
	Ticks int

	AvgTickDuration time.Duration
	P90TickDuration time.Duration
	MaxTickDuration time.Duration

	PhaseAvg map[string]time.Duration // keyed by phase name
	PhasePct map[string]float64       // share of the average tick, in percent

	TicksPerSecond float64 // wall-clock throughput at the average tick cost
}

// Stats aggregates the current window.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{
		Ticks:    p.count,
		PhaseAvg: make(map[string]time.Duration, numPhases),
		PhasePct: make(map[string]float64, numPhases),
	}
	if p.count == 0 {
		return s
	}

	var total time.Duration
	var phaseSum [numPhases]time.Duration
	durations := make([]float64, p.count)
	for i, sample := range p.ring[:p.count] {
		total += sample.total
		s.MaxTickDuration = max(s.MaxTickDuration, sample.total)
		durations[i] = float64(sample.total)
		for ph, d := range sample.phases {
			phaseSum[ph] += d
		}
	}

	slices.Sort(durations)
	s.AvgTickDuration = total / time.Duration(p.count)
	s.P90TickDuration = time.Duration(stat.Quantile(0.9, stat.Empirical, durations, nil))

	for ph, sum := range phaseSum {
		name := Phase(ph).String()
		avg := sum / time.Duration(p.count)
		s.PhaseAvg[name] = avg
		if s.AvgTickDuration > 0 {
			s.PhasePct[name] = float64(avg) / float64(s.AvgTickDuration) * 100
		}
	}
	if s.AvgTickDuration > 0 {
		s.TicksPerSecond = float64(time.Second) / float64(s.AvgTickDuration)
	}
	return s
}

// LogStats logs the window at info level.
func (s PerfStats) LogStats() {
	slog.Info("perf", "perf", s)
}

// LogValue implements slog.LogValuer.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("ticks", s.Ticks),
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("p90_tick_us", s.P90TickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Float64("ticks_per_sec", s.TicksPerSecond),
	}
	for _, name := range Phases {
		if pct, ok := s.PhasePct[name]; ok {
			attrs = append(attrs, slog.Float64(name+"_pct", pct))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is one row of perf.csv.
type PerfStatsCSV struct {
	WindowEnd     int32   `csv:"window_end"`
	Boids         int     `csv:"boids"`
	AvgTickUS     int64   `csv:"avg_tick_us"`
	P90TickUS     int64   `csv:"p90_tick_us"`
	MaxTickUS     int64   `csv:"max_tick_us"`
	NSPerBoid     float64 `csv:"ns_per_boid"`
	TicksPerSec   float64 `csv:"ticks_per_sec"`
	SenseSteerPct float64 `csv:"sense_steer_pct"`
	SyncPct       float64 `csv:"sync_pct"`
	TelemetryPct  float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the stats for a window ending at windowEnd with the given
// flock size.
func (s PerfStats) ToCSV(windowEnd int32, boids int) PerfStatsCSV {
	var perBoid float64
	if boids > 0 {
		perBoid = float64(s.AvgTickDuration.Nanoseconds()) / float64(boids)
	}
	return PerfStatsCSV{
		WindowEnd:     windowEnd,
		Boids:         boids,
		AvgTickUS:     s.AvgTickDuration.Microseconds(),
		P90TickUS:     s.P90TickDuration.Microseconds(),
		MaxTickUS:     s.MaxTickDuration.Microseconds(),
		NSPerBoid:     perBoid,
		TicksPerSec:   s.TicksPerSecond,
		SenseSteerPct: s.PhasePct[PhaseSenseSteer.String()],
		SyncPct:       s.PhasePct[PhaseSync.String()],
		TelemetryPct:  s.PhasePct[PhaseTelemetry.String()],
	}
}
