package game

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/boids/components"
	"github.com/pthm-cable/boids/flock"
	"github.com/pthm-cable/boids/geom"
	"github.com/pthm-cable/boids/telemetry"
)

// spawnEntities creates one entity per boid, in flock order.
func (g *Game) spawnEntities() {
	for i, b := range g.flock.Boids() {
		g.spawnEntity(b, i)
	}
}

// spawnEntity creates the drawable view of one boid.
func (g *Game) spawnEntity(b *flock.Boid, index int) ecs.Entity {
	v := b.Direction()
	pos := components.Position{X: float32(b.X), Y: float32(b.Y)}
	vel := components.Velocity{X: float32(v.X), Y: float32(v.Y)}
	rot := components.Rotation{Heading: float32(geom.NormalizeAngle(b.Angle))}
	body := components.Body{Size: 1}
	agent := components.Agent{Boid: b, Index: index}

	return g.entityMapper.NewEntity(&pos, &vel, &rot, &body, &agent)
}

// clearEntities removes every boid entity and drops the selection.
func (g *Game) clearEntities() {
	// Collect first: the world is locked while a query is open.
	var toRemove []ecs.Entity
	query := g.entityFilter.Query()
	for query.Next() {
		toRemove = append(toRemove, query.Entity())
	}

	for _, e := range toRemove {
		g.entityMapper.Remove(e)
	}
	g.hasSelection = false
}

// saveSnapshot writes the current flock, tagged with an optional bookmark.
func (g *Game) saveSnapshot(bookmark *telemetry.Bookmark) {
	if g.outputManager == nil {
		return
	}
	snap := telemetry.CaptureSnapshot(g.flock, g.seed, g.tick, g.simTime)
	snap.Bookmark = bookmark

	path, err := g.outputManager.WriteSnapshot(snap)
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return
	}
	slog.Info("snapshot saved", "path", path, "tick", g.tick)
}

// setConsistency switches the tick consistency mode of the running flock.
func (g *Game) setConsistency(c flock.Consistency) {
	g.consistency = c
	g.flock.SetConsistency(c)
	slog.Info("consistency changed", "mode", c.String())
}

// setGrid turns the broad phase on or off for the running flock.
func (g *Game) setGrid(on bool) {
	g.useGrid = on
	g.flock.SetGrid(on, g.cfg.Physics.GridCellSize)
	slog.Info("broad phase changed", "grid", on)
}
