// Package geom provides vector and wrapped-axis helpers for the flocking plane.
package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Vector functions

// Magnitude returns the Euclidean length of v.
func Magnitude(v r2.Vec) float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Angle returns the direction of v in (-Pi, Pi].
func Angle(v r2.Vec) float64 {
	return math.Atan2(v.Y, v.X)
}

// FromPolar builds a vector from a magnitude and an angle in radians.
func FromPolar(magnitude, angle float64) r2.Vec {
	return r2.Vec{
		X: magnitude * math.Cos(angle),
		Y: magnitude * math.Sin(angle),
	}
}

// Distance returns the straight-line distance between two points.
func Distance(v1, v2 r2.Vec) float64 {
	return Magnitude(r2.Sub(v1, v2))
}

// Wrapped axis functions

// WrappedDistance returns the shortest distance between two coordinates on a
// circular axis. The signed difference is corrected once by the axis length,
// so inputs are expected to lie within one axis length of each other.
// A zero-length axis does not wrap.
func WrappedDistance(p1, p2, axisLength float64) float64 {
	diff := p1 - p2
	if axisLength == 0 {
		return math.Abs(diff)
	}

	if diff > axisLength/2 {
		diff -= axisLength
	} else if diff < -axisLength/2 {
		diff += axisLength
	}

	return math.Abs(diff)
}

// ClosestWrappedPoint returns the representative of to, shifted by at most one
// axis length, that lies nearest to from. It unwraps to into the frame local
// to from so offsets can be fed to plain Euclidean formulas.
func ClosestWrappedPoint(from, to, axisLength float64) float64 {
	if axisLength == 0 {
		return to
	}

	diff := from - to
	if diff > axisLength/2 {
		return to + axisLength
	} else if diff < -axisLength/2 {
		return to - axisLength
	}
	return to
}

// WrapCoord folds a coordinate into [0, axisLength).
// Single-step negative excursions are handled the same way as a plain
// add-then-modulo; larger ones get a second correction.
// Axes of non-positive length are left unwrapped.
func WrapCoord(v, axisLength float64) float64 {
	if axisLength <= 0 || math.IsInf(axisLength, 0) {
		return v
	}

	if v < 0 {
		v += axisLength
	}
	v = math.Mod(v, axisLength)
	if v < 0 {
		v += axisLength
		if v >= axisLength {
			v = 0
		}
	}
	return v
}

// NormalizeAngle wraps an angle to (-Pi, Pi].
func NormalizeAngle(a float64) float64 {
	a = math.Remainder(a, 2*math.Pi)
	if a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
