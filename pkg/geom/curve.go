package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Curve is a bounded parametric curve. Implementations must be safe
// for concurrent evaluation.
type Curve interface {
	// Domain returns the parameter bounds of the curve.
	Domain() (first, last float64)
	// Point evaluates the curve at parameter t.
	Point(t float64) r3.Vec
}

// Line is a straight segment from P0 to P1, parameterized over [0, 1].
type Line struct {
	P0 r3.Vec
	P1 r3.Vec
}

func (l Line) Domain() (float64, float64) { return 0, 1 }

func (l Line) Point(t float64) r3.Vec {
	return r3.Add(l.P0, r3.Scale(t, r3.Sub(l.P1, l.P0)))
}

// Arc is a circular arc around Axis through Center, starting at angle
// First from Ref and ending at Last. Axis and Ref must be unit length
// and perpendicular.
type Arc struct {
	Center r3.Vec
	Axis   r3.Vec
	Ref    r3.Vec
	Radius float64
	First  float64
	Last   float64
}

func (a Arc) Domain() (float64, float64) { return a.First, a.Last }

func (a Arc) Point(t float64) r3.Vec {
	y := r3.Cross(a.Axis, a.Ref)
	sin, cos := math.Sincos(t)
	radial := r3.Add(r3.Scale(cos, a.Ref), r3.Scale(sin, y))
	return r3.Add(a.Center, r3.Scale(a.Radius, radial))
}
