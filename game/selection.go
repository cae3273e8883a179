package game

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/boids/geom"
	"github.com/pthm-cable/boids/ui"
)

// pickRadius is the click tolerance around a boid, in screen pixels.
const pickRadius = 15.0

// handleSelection selects the boid under a left click and clears the
// selection on right click.
func (g *Game) handleSelection() {
	mouse := rl.GetMousePosition()
	if g.overPanel(mouse) {
		return
	}

	if rl.IsMouseButtonPressed(rl.MouseButtonRight) {
		g.hasSelection = false
		return
	}
	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return
	}

	p := g.camera.ScreenToWorld(r2.Vec{X: float64(mouse.X), Y: float64(mouse.Y)})
	g.selectedEntity, g.hasSelection = g.findBoidAt(p, pickRadius/g.camera.Zoom)
}

// findBoidAt returns the entity of the boid closest to p within radius.
// Distances wrap around the area edges, matching what is drawn.
func (g *Game) findBoidAt(p r2.Vec, radius float64) (ecs.Entity, bool) {
	var closest ecs.Entity
	closestDist := radius
	found := false

	query := g.entityFilter.Query()
	for query.Next() {
		pos, _, _, _, _ := query.Get()
		dist := math.Hypot(
			geom.WrappedDistance(p.X, float64(pos.X), g.params.AreaWidth),
			geom.WrappedDistance(p.Y, float64(pos.Y), g.params.AreaHeight),
		)
		if dist <= closestDist {
			closestDist = dist
			closest = query.Entity()
			found = true
		}
	}

	return closest, found
}

// selected returns the inspector data for the selected boid, or nil.
func (g *Game) selected() *ui.InspectorData {
	if !g.hasSelection || !g.world.Alive(g.selectedEntity) {
		return nil
	}
	agent := g.agentMap.Get(g.selectedEntity)
	return &ui.InspectorData{
		Index:   agent.Index,
		Boid:    agent.Boid,
		Visible: agent.Boid.VisibleBoids(g.flock.Boids()),
	}
}

// overPanel reports whether the mouse is over a visible UI panel.
func (g *Game) overPanel(mouse rl.Vector2) bool {
	return g.paramsPanel.Contains(mouse.X, mouse.Y) || g.controlsPanel.Contains(mouse.X, mouse.Y)
}
