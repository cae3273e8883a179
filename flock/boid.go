package flock

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/boids/geom"
)

// Boid is a single flocking agent.
// X and Y stay inside the area after every Update; Angle is unconstrained.
type Boid struct {
	X, Y  float64
	Angle float64 // heading in radians
	Speed float64

	params *Params
}

// New creates a boid at a random position inside the area.
func New(p *Params, rng *rand.Rand) *Boid {
	return NewAt(p, rng.Float64()*p.AreaWidth, rng.Float64()*p.AreaHeight, rng)
}

// NewAt creates a boid at the given position with a random heading and
// speed MaxSpeed.
func NewAt(p *Params, x, y float64, rng *rand.Rand) *Boid {
	return &Boid{
		X:      x,
		Y:      y,
		Angle:  rng.Float64() * 2 * math.Pi,
		Speed:  p.MaxSpeed,
		params: p,
	}
}

// Params returns the shared parameters this boid reads.
func (b *Boid) Params() *Params {
	return b.params
}

// Position returns the boid position.
func (b *Boid) Position() r2.Vec {
	return r2.Vec{X: b.X, Y: b.Y}
}

// Heading returns the boid heading in radians.
func (b *Boid) Heading() float64 {
	return b.Angle
}

// Direction returns the velocity vector built from speed and heading.
func (b *Boid) Direction() r2.Vec {
	return geom.FromPolar(b.Speed, b.Angle)
}

// Update advances the boid by one tick of length dt, sensing peers as they
// are at call time. peers may contain b itself.
func (b *Boid) Update(dt float64, peers []*Boid) {
	b.steer(b.VisibleBoids(peers))
	b.move(dt)
}

// steer applies the three flocking rules for the given neighbor set.
// Order matters: each SteerTo builds on the previous result.
func (b *Boid) steer(visible []*Boid) {
	if len(visible) == 0 {
		return
	}
	p := b.params
	b.SteerTo(b.FindCenter(visible), p.CenterWeight)
	b.SteerTo(b.AvoidBoids(visible), p.SeparationWeight)
	b.SteerTo(b.AlignAngles(visible), p.AlignmentWeight)
}

// move clamps speed, integrates position and wraps it into the area.
func (b *Boid) move(dt float64) {
	p := b.params

	b.Speed = math.Min(b.Speed, p.MaxSpeed)
	if p.SpeedFloor {
		b.Speed = math.Max(b.Speed, p.MinSpeed)
	}

	dir := b.Direction()
	b.X += dt * dir.X
	b.Y += dt * dir.Y

	b.X = geom.WrapCoord(b.X, p.AreaWidth)
	b.Y = geom.WrapCoord(b.Y, p.AreaHeight)
}

// SteerTo adds weight*v to the current direction vector and takes the new
// speed and heading from the result.
func (b *Boid) SteerTo(v r2.Vec, weight float64) {
	dir := r2.Add(b.Direction(), r2.Scale(weight, v))
	b.Speed = geom.Magnitude(dir)
	b.Angle = geom.Angle(dir)
}

// Sensing

// offsetTo returns the vector from b to o, unwrapped across the area edges
// when the params wrap.
func (b *Boid) offsetTo(o *Boid) r2.Vec {
	return r2.Sub(b.localPosition(o), b.Position())
}

// localPosition returns o's position in b's local frame.
func (b *Boid) localPosition(o *Boid) r2.Vec {
	p := b.params
	if !p.Wrap {
		return o.Position()
	}
	return r2.Vec{
		X: geom.ClosestWrappedPoint(b.X, o.X, p.AreaWidth),
		Y: geom.ClosestWrappedPoint(b.Y, o.Y, p.AreaHeight),
	}
}

// DistanceTo returns the distance from b to o.
func (b *Boid) DistanceTo(o *Boid) float64 {
	p := b.params
	if !p.Wrap {
		return geom.Distance(b.Position(), o.Position())
	}
	return geom.Magnitude(r2.Vec{
		X: geom.WrappedDistance(b.X, o.X, p.AreaWidth),
		Y: geom.WrappedDistance(b.Y, o.Y, p.AreaHeight),
	})
}

// InRadius reports whether o is another boid within r of b.
func (b *Boid) InRadius(o *Boid, r float64) bool {
	return o != b && b.DistanceTo(o) <= r
}

// InAngle reports whether o is another boid inside the sector of width
// angleLimit centered on b's heading.
func (b *Boid) InAngle(o *Boid, angleLimit float64) bool {
	if o == b {
		return false
	}
	relative := geom.Angle(b.offsetTo(o))
	diff := geom.WrappedDistance(geom.NormalizeAngle(b.Angle), relative, 2*math.Pi)
	return diff <= angleLimit/2
}

// VisibleBoids returns the peers b can see, in peer order. b itself is never
// included.
func (b *Boid) VisibleBoids(peers []*Boid) []*Boid {
	return b.appendVisible(nil, peers)
}

func (b *Boid) appendVisible(dst, peers []*Boid) []*Boid {
	p := b.params
	for _, o := range peers {
		if !b.InRadius(o, p.SightRadius) {
			continue
		}
		if p.FieldOfView && !b.InAngle(o, p.SightAngle) {
			continue
		}
		dst = append(dst, o)
	}
	return dst
}

// Rules

// FindCenter returns the vector from b to the centroid of boids.
func (b *Boid) FindCenter(boids []*Boid) r2.Vec {
	if len(boids) == 0 {
		return r2.Vec{}
	}

	var center r2.Vec
	for _, o := range boids {
		center = r2.Add(center, b.localPosition(o))
	}

	n := float64(len(boids))
	return r2.Vec{
		X: center.X/n - b.X,
		Y: center.Y/n - b.Y,
	}
}

// AvoidBoids returns the mean unit vector pointing away from every boid
// closer than RepelRadius. Boids at exactly b's position have no defined
// direction and are skipped.
func (b *Boid) AvoidBoids(boids []*Boid) r2.Vec {
	p := b.params

	var direction r2.Vec
	count := 0
	for _, o := range boids {
		if !b.InRadius(o, p.RepelRadius) {
			continue
		}
		dist := b.DistanceTo(o)
		if dist == 0 {
			continue
		}

		local := b.localPosition(o)
		direction.X += (b.X - local.X) / dist
		direction.Y += (b.Y - local.Y) / dist
		count++
	}

	if count == 0 {
		return r2.Vec{}
	}
	return r2.Vec{
		X: direction.X / float64(count),
		Y: direction.Y / float64(count),
	}
}

// AlignAngles returns a vector of b's speed pointing along the arithmetic mean
// of the boids' headings. The mean is not circular: headings of 359 and 1
// degrees average to 180.
func (b *Boid) AlignAngles(boids []*Boid) r2.Vec {
	if len(boids) == 0 {
		return r2.Vec{}
	}

	var sum float64
	for _, o := range boids {
		sum += o.Angle
	}
	return geom.FromPolar(b.Speed, sum/float64(len(boids)))
}
