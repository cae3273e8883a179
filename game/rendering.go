package game

import (
	"github.com/pthm-cable/boids/ui"
)

// drawBoids renders every boid entity through the camera.
func (g *Game) drawBoids() {
	query := g.entityFilter.Query()
	for query.Next() {
		pos, _, rot, body, _ := query.Get()
		g.boidRenderer.Draw(*pos, *rot, *body)
	}
}

// drawSelectionOverlays draws the enabled perception overlays for the
// selected boid.
func (g *Game) drawSelectionOverlays(sel *ui.InspectorData) {
	if g.overlays.IsEnabled(ui.OverlaySight) {
		g.overlayRender.DrawSight(sel.Boid)
	}
	if g.overlays.IsEnabled(ui.OverlayRepel) {
		g.overlayRender.DrawRepel(sel.Boid)
	}
	if g.overlays.IsEnabled(ui.OverlayLinks) {
		g.overlayRender.DrawLinks(sel.Boid, sel.Visible)
	}
}
