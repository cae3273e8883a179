package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/boids/renderer"
	"github.com/pthm-cable/boids/telemetry"
	"github.com/pthm-cable/boids/ui"
)

// Draw renders the game.
func (g *Game) Draw() {
	rl.BeginDrawing()
	sel := g.DrawWorld()
	g.drawUI(sel)
	rl.EndDrawing()
}

// DrawWorld renders the flock and its overlays into the current render
// target, without the UI. It returns the selected boid, if any.
func (g *Game) DrawWorld() *ui.InspectorData {
	rl.ClearBackground(renderer.BackgroundColor)

	// Grid under the boids
	if g.overlays.IsEnabled(ui.OverlayGrid) {
		if grid := g.flock.Grid(); grid != nil {
			g.overlayRender.DrawGrid(grid.CellSize())
		}
	}

	sel := g.selected()
	if sel != nil {
		g.drawSelectionOverlays(sel)
	}

	g.drawBoids()

	if sel != nil {
		g.overlayRender.DrawHighlight(sel.Boid)
	}
	return sel
}

// drawUI renders the HUD and panels, and applies edits made in them.
func (g *Game) drawUI(sel *ui.InspectorData) {
	broadPhase := "scan"
	if g.useGrid {
		broadPhase = "grid"
	}

	g.hud.Draw(ui.HUDData{
		Title:          "Boids",
		Boids:          g.flock.Len(),
		Tick:           g.tick,
		SimTime:        g.simTime,
		StepsPerUpdate: g.stepsPerUpdate,
		FPS:            rl.GetFPS(),
		Polarization:   g.Polarization(),
		Consistency:    g.consistency.String(),
		BroadPhase:     broadPhase,
		Paused:         g.paused,
	})
	g.hud.DrawControls(int32(g.screenHeight), controlsLegend)

	if g.showPerf {
		perf := g.perfCollector.Stats()
		g.perfPanel.Draw(ui.PerfPanelData{
			PhaseTimes: perf.PhaseAvg,
			Total:      perf.AvgTickDuration,
		}, telemetry.Phases)
	}

	g.inspector.Draw(sel)
	g.controlsPanel.Draw(g.overlays)
	g.applyParamsAction(g.paramsPanel.Draw(&g.params, g.paused))
}

// applyParamsAction reacts to the parameter panel. Edits were already written
// into g.params, which the flock reads from the next tick on.
func (g *Game) applyParamsAction(act ui.ParamsAction) {
	if act.Preset != "" {
		slog.Info("preset applied", "preset", act.Preset)
	}
	if act.TogglePause {
		g.paused = !g.paused
	}
	if act.Reset {
		g.Reset()
	}
}
