// Package components defines ECS components for the presentation world.
// The flock owns boid state; these are render-side views refreshed each tick.
package components

import "github.com/pthm-cable/boids/flock"

// Agent links an entity to the boid it mirrors.
type Agent struct {
	Boid  *flock.Boid
	Index int // position in the flock's update order
}
