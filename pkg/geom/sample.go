package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// maxSampleDepth bounds sampler recursion. 2^16 points per curve is far
// beyond any sensible deflection.
const maxSampleDepth = 16

// SampleCurve samples a curve adaptively so that both the chordal
// deviation stays below linear and the tangent turn between consecutive
// chords stays below angular radians. At least the two endpoints are
// always returned.
func SampleCurve(c Curve, angular, linear float64) []r3.Vec {
	first, last := c.Domain()
	p0 := c.Point(first)
	p1 := c.Point(last)
	pts := []r3.Vec{p0}
	pts = refine(c, first, last, p0, p1, angular, linear, 0, pts)
	return append(pts, p1)
}

// refine appends interior samples of (a, b) to pts, excluding both
// endpoints, splitting while the segment violates either tolerance.
func refine(c Curve, a, b float64, pa, pb r3.Vec, angular, linear float64, depth int, pts []r3.Vec) []r3.Vec {
	if depth >= maxSampleDepth {
		return pts
	}
	m := (a + b) / 2
	pm := c.Point(m)
	if ChordDeviation(pa, pb, pm) <= linear && TurnAngle(pa, pm, pb) <= angular {
		return pts
	}
	pts = refine(c, a, m, pa, pm, angular, linear, depth+1, pts)
	pts = append(pts, pm)
	return refine(c, m, b, pm, pb, angular, linear, depth+1, pts)
}

// ChordDeviation returns the distance from p to the midpoint of the
// chord (a, b), the deviation estimate used by the samplers.
func ChordDeviation(a, b, p r3.Vec) float64 {
	mid := r3.Scale(0.5, r3.Add(a, b))
	return r3.Norm(r3.Sub(p, mid))
}

// TurnAngle returns the angle in radians between chords (a, m) and (m, b).
func TurnAngle(a, m, b r3.Vec) float64 {
	u := r3.Sub(m, a)
	v := r3.Sub(b, m)
	nu := r3.Norm(u)
	nv := r3.Norm(v)
	if nu == 0 || nv == 0 {
		return 0
	}
	cos := r3.Dot(u, v) / (nu * nv)
	return math.Acos(math.Max(-1, math.Min(1, cos)))
}
