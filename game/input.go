package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/boids/flock"
	"github.com/pthm-cable/boids/ui"
)

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.stepsPerUpdate > 1 {
		g.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.stepsPerUpdate < 10 {
		g.stepsPerUpdate++
	}

	// Panels
	if rl.IsKeyPressed(rl.KeyTab) {
		g.paramsPanel.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyO) {
		g.controlsPanel.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyP) {
		g.showPerf = !g.showPerf
	}

	// Simulation modes
	if rl.IsKeyPressed(rl.KeyC) {
		next := flock.Snapshot
		if g.consistency == flock.Snapshot {
			next = flock.Live
		}
		g.setConsistency(next)
	}
	if rl.IsKeyPressed(rl.KeyB) {
		g.setGrid(!g.useGrid)
	}
	if rl.IsKeyPressed(rl.KeyN) {
		g.Reset()
	}
	if rl.IsKeyPressed(rl.KeyS) {
		g.saveSnapshot(nil)
	}

	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		g.overlays.HandleKeyPress(key)
	}

	g.handleCameraInput()
	g.handleSelection()
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h

	g.camera.Resize(r2.Vec{X: float64(w), Y: float64(h)})
	g.layoutPanels()
}

// handleCameraInput processes camera pan/zoom controls.
func (g *Game) handleCameraInput() {
	// Pan speed scales inversely with zoom for natural feel
	panSpeed := 8.0 / g.camera.Zoom

	if rl.IsKeyDown(rl.KeyRight) {
		g.camera.Pan(r2.Vec{X: panSpeed})
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		g.camera.Pan(r2.Vec{X: -panSpeed})
	}
	if rl.IsKeyDown(rl.KeyDown) {
		g.camera.Pan(r2.Vec{Y: panSpeed})
	}
	if rl.IsKeyDown(rl.KeyUp) {
		g.camera.Pan(r2.Vec{Y: -panSpeed})
	}

	// Wheel zoom is ignored over panels so sliders keep the wheel.
	mouse := rl.GetMousePosition()
	if wheel := rl.GetMouseWheelMove(); wheel != 0 && !g.overPanel(mouse) {
		g.camera.ZoomBy(1 + float64(wheel)*0.1)
	}

	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.camera.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.camera.ZoomBy(0.8)
	}

	if rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Reset()
	}
}

// layoutPanels positions the UI panels for the current screen size.
func (g *Game) layoutPanels() {
	w, h := int32(g.screenWidth), int32(g.screenHeight)
	margin := int32(10)

	px, py := ui.Anchor(ui.AnchorTopRight, paramsPanelWidth, g.paramsPanel.Height(), w, h, margin)
	g.paramsPanel.SetPosition(px, py)
	g.controlsPanel.SetPosition(w-controlsPanelWidth-margin, py+g.paramsPanel.Height()+margin)
	g.inspector.SetPosition(ui.Anchor(ui.AnchorBottomLeft, inspectorWidth, inspectorHeight, w, h, margin))
}
