// Package renderer draws the flock with raylib.
package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/boids/camera"
	"github.com/pthm-cable/boids/components"
)

// Boid outline in local space, nose along +X.
var boidShape = [3]r2.Vec{
	{X: 10, Y: 0},
	{X: -10, Y: -7},
	{X: -10, Y: 7},
}

// boidExtent bounds boidShape, for culling and ghost detection.
const boidExtent = 12.3

// Default colors.
var (
	BackgroundColor = rl.Color{R: 18, G: 22, B: 30, A: 255}
	BoidFill        = rl.Color{R: 0, G: 255, B: 255, A: 255}
	BoidStroke      = rl.Black
)

// TrianglePoints returns the boid outline centered at the screen point c,
// rotated to heading and scaled by scale, in raylib winding order.
func TrianglePoints(c r2.Vec, heading, scale float64) [3]r2.Vec {
	sin, cos := math.Sincos(heading)
	var pts [3]r2.Vec
	for i, p := range boidShape {
		pts[i] = r2.Vec{
			X: c.X + scale*(p.X*cos-p.Y*sin),
			Y: c.Y + scale*(p.X*sin+p.Y*cos),
		}
	}
	return pts
}

// BoidRenderer draws boids as oriented triangles through a camera.
type BoidRenderer struct {
	cam    *camera.Camera
	Fill   rl.Color
	Stroke rl.Color
}

// NewBoidRenderer creates a renderer using the default colors.
func NewBoidRenderer(cam *camera.Camera) *BoidRenderer {
	return &BoidRenderer{cam: cam, Fill: BoidFill, Stroke: BoidStroke}
}

// Draw renders one boid, plus ghost copies where it straddles an edge.
func (r *BoidRenderer) Draw(pos components.Position, rot components.Rotation, body components.Body) {
	p := r2.Vec{X: float64(pos.X), Y: float64(pos.Y)}
	scale := r.cam.ScreenScale(float64(body.Size))
	extent := boidExtent * float64(body.Size)

	if r.cam.IsVisible(p, extent) {
		r.drawAt(r.cam.WorldToScreen(p), float64(rot.Heading), scale)
	}
	for _, g := range r.cam.Ghosts(p, extent) {
		r.drawAt(g, float64(rot.Heading), scale)
	}
}

func (r *BoidRenderer) drawAt(s r2.Vec, heading, scale float64) {
	pts := TrianglePoints(s, heading, scale)
	v1, v2, v3 := toRL(pts[0]), toRL(pts[1]), toRL(pts[2])
	rl.DrawTriangle(v1, v2, v3, r.Fill)
	rl.DrawTriangleLines(v1, v2, v3, r.Stroke)
}

func toRL(v r2.Vec) rl.Vector2 {
	return rl.Vector2{X: float32(v.X), Y: float32(v.Y)}
}
