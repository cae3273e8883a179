// Package camera maps the wrapped flock area onto the screen.
package camera

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/boids/geom"
)

// Camera controls the viewport into the flock area.
// Pan wraps around the area edges the same way boids do.
type Camera struct {
	// Center is the world point shown in the middle of the viewport.
	Center r2.Vec

	// Zoom level (1.0 = 1:1, 2.0 = 2x magnification)
	Zoom float64

	Viewport r2.Vec // screen size in pixels
	World    r2.Vec // area size

	MinZoom, MaxZoom float64
}

// New creates a camera centered on the area with 1:1 zoom.
func New(viewport, world r2.Vec) *Camera {
	c := &Camera{
		Viewport: viewport,
		World:    world,
		MaxZoom:  4,
	}
	c.MinZoom = minZoom(viewport, world)
	c.Reset()
	return c
}

// minZoom keeps the visible span no larger than the area, so no point is
// ever shown twice.
func minZoom(viewport, world r2.Vec) float64 {
	if world.X <= 0 || world.Y <= 0 {
		return 1
	}
	return max(viewport.X/world.X, viewport.Y/world.Y)
}

// offset returns the shortest wrapped world offset from the camera center
// to p.
func (c *Camera) offset(p r2.Vec) r2.Vec {
	return r2.Vec{
		X: geom.ClosestWrappedPoint(c.Center.X, p.X, c.World.X) - c.Center.X,
		Y: geom.ClosestWrappedPoint(c.Center.Y, p.Y, c.World.Y) - c.Center.Y,
	}
}

// WorldToScreen converts a world point to screen coordinates, using the
// copy of p nearest the camera center.
func (c *Camera) WorldToScreen(p r2.Vec) r2.Vec {
	return r2.Add(r2.Scale(0.5, c.Viewport), r2.Scale(c.Zoom, c.offset(p)))
}

// ScreenToWorld converts screen coordinates to a world point inside the area.
func (c *Camera) ScreenToWorld(s r2.Vec) r2.Vec {
	d := r2.Scale(1/c.Zoom, r2.Sub(s, r2.Scale(0.5, c.Viewport)))
	return r2.Vec{
		X: geom.WrapCoord(c.Center.X+d.X, c.World.X),
		Y: geom.WrapCoord(c.Center.Y+d.Y, c.World.Y),
	}
}

// ScreenScale converts a world length to pixels.
func (c *Camera) ScreenScale(length float64) float64 {
	return length * c.Zoom
}

// IsVisible reports whether a circle at p with the given world radius could
// overlap the viewport. Conservative; used for culling.
func (c *Camera) IsVisible(p r2.Vec, radius float64) bool {
	return c.onScreen(c.WorldToScreen(p), radius*c.Zoom)
}

func (c *Camera) onScreen(s r2.Vec, pad float64) bool {
	return s.X >= -pad && s.X <= c.Viewport.X+pad &&
		s.Y >= -pad && s.Y <= c.Viewport.Y+pad
}

// Ghosts returns the extra screen positions at which a circle at p must also
// be drawn because it straddles an area edge inside the view.
// The primary position from WorldToScreen is not included.
func (c *Camera) Ghosts(p r2.Vec, radius float64) []r2.Vec {
	primary := c.WorldToScreen(p)
	pad := radius * c.Zoom
	span := r2.Scale(c.Zoom, c.World)

	var ghosts []r2.Vec
	for _, ox := range [3]float64{-1, 0, 1} {
		for _, oy := range [3]float64{-1, 0, 1} {
			if ox == 0 && oy == 0 {
				continue
			}
			g := r2.Add(primary, r2.Vec{X: ox * span.X, Y: oy * span.Y})
			if c.onScreen(g, pad) {
				ghosts = append(ghosts, g)
			}
		}
	}
	return ghosts
}

// Resize updates viewport dimensions and recalculates zoom constraints.
func (c *Camera) Resize(viewport r2.Vec) {
	if viewport == c.Viewport {
		return
	}
	c.Viewport = viewport
	c.MinZoom = minZoom(viewport, c.World)
	c.SetZoom(c.Zoom)
}

// Pan moves the camera by a screen-space delta in pixels.
func (c *Camera) Pan(d r2.Vec) {
	c.Center.X = geom.WrapCoord(c.Center.X+d.X/c.Zoom, c.World.X)
	c.Center.Y = geom.WrapCoord(c.Center.Y+d.Y/c.Zoom, c.World.Y)
}

// SetZoom sets the zoom level, clamped to [MinZoom, MaxZoom]. MinZoom wins
// when the two cross.
func (c *Camera) SetZoom(zoom float64) {
	c.Zoom = max(min(zoom, c.MaxZoom), c.MinZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float64) {
	c.SetZoom(c.Zoom * factor)
}

// Reset returns the camera to the area center at 1:1, or the closest
// allowed zoom.
func (c *Camera) Reset() {
	c.Center = r2.Scale(0.5, c.World)
	c.SetZoom(1)
}
