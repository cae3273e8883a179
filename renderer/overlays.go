package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/boids/camera"
	"github.com/pthm-cable/boids/flock"
	"github.com/pthm-cable/boids/geom"
)

// Overlay colors.
var (
	SightColor    = rl.Color{R: 0, G: 255, B: 255, A: 40}
	RepelColor    = rl.Color{R: 255, G: 90, B: 90, A: 60}
	LinkColor     = rl.Color{R: 255, G: 255, B: 255, A: 50}
	GridColor     = rl.Color{R: 60, G: 70, B: 80, A: 120}
	HighlightRing = rl.Yellow
)

// OverlayRenderer draws debug views of the flock rules.
type OverlayRenderer struct {
	cam *camera.Camera
}

// NewOverlayRenderer creates an overlay renderer.
func NewOverlayRenderer(cam *camera.Camera) *OverlayRenderer {
	return &OverlayRenderer{cam: cam}
}

// SightSector returns the field-of-view sector in raylib degrees for a boid
// heading, centered on the heading. full is false when the sector covers the
// whole circle.
func SightSector(heading, sightAngle float64) (start, end float32, full bool) {
	if sightAngle >= 2*math.Pi {
		return 0, 360, true
	}
	h := heading * 180 / math.Pi
	half := sightAngle * 90 / math.Pi
	return float32(h - half), float32(h + half), false
}

// DrawSight draws the sight area of b: a sector when the field of view is on,
// a full circle otherwise.
func (o *OverlayRenderer) DrawSight(b *flock.Boid) {
	p := b.Params()
	radius := float32(o.cam.ScreenScale(p.SightRadius))
	for _, s := range o.copies(b.Position(), p.SightRadius) {
		c := toRL(s)
		if p.FieldOfView {
			start, end, full := SightSector(b.Heading(), p.SightAngle)
			if !full {
				rl.DrawCircleSector(c, radius, start, end, 24, SightColor)
				continue
			}
		}
		rl.DrawCircleV(c, radius, SightColor)
	}
}

// DrawRepel draws the separation radius of b.
func (o *OverlayRenderer) DrawRepel(b *flock.Boid) {
	p := b.Params()
	radius := float32(o.cam.ScreenScale(p.RepelRadius))
	for _, s := range o.copies(b.Position(), p.RepelRadius) {
		rl.DrawCircleLinesV(toRL(s), radius, RepelColor)
	}
}

// DrawLinks draws a line from b to each visible peer, taking the wrapped
// route when the flock wraps.
func (o *OverlayRenderer) DrawLinks(b *flock.Boid, visible []*flock.Boid) {
	from := o.cam.WorldToScreen(b.Position())
	p := b.Params()
	for _, v := range visible {
		to := v.Position()
		if p.Wrap {
			to = r2.Vec{
				X: geom.ClosestWrappedPoint(b.X, v.X, p.AreaWidth),
				Y: geom.ClosestWrappedPoint(b.Y, v.Y, p.AreaHeight),
			}
		}
		end := r2.Add(from, r2.Scale(o.cam.Zoom, r2.Sub(to, b.Position())))
		rl.DrawLineV(toRL(from), toRL(end), LinkColor)
	}
}

// DrawHighlight rings the selected boid.
func (o *OverlayRenderer) DrawHighlight(b *flock.Boid) {
	for _, s := range o.copies(b.Position(), boidExtent) {
		rl.DrawCircleLinesV(toRL(s), float32(o.cam.ScreenScale(boidExtent+4)), HighlightRing)
	}
}

// DrawGrid draws broad-phase cell boundaries over the area.
func (o *OverlayRenderer) DrawGrid(cellW, cellH float64) {
	if cellW <= 0 || cellH <= 0 {
		return
	}
	w, h := o.cam.World.X, o.cam.World.Y
	for x := 0.0; x < w; x += cellW {
		a := o.cam.WorldToScreen(r2.Vec{X: x, Y: o.cam.Center.Y})
		rl.DrawLine(int32(a.X), 0, int32(a.X), int32(o.cam.Viewport.Y), GridColor)
	}
	for y := 0.0; y < h; y += cellH {
		a := o.cam.WorldToScreen(r2.Vec{X: o.cam.Center.X, Y: y})
		rl.DrawLine(0, int32(a.Y), int32(o.cam.Viewport.X), int32(a.Y), GridColor)
	}
}

// copies returns the primary screen position of p (when visible) and its
// edge ghosts.
func (o *OverlayRenderer) copies(p r2.Vec, radius float64) []r2.Vec {
	var out []r2.Vec
	if o.cam.IsVisible(p, radius) {
		out = append(out, o.cam.WorldToScreen(p))
	}
	return append(out, o.cam.Ghosts(p, radius)...)
}
