package geom

import "gonum.org/v1/gonum/spatial/r3"

// Field is a signed distance field describing an implicit solid:
// negative inside, positive outside, zero on the boundary. Solids
// without an explicit face decomposition carry a Field and are
// tessellated by a volume mesher instead of the per-face grid mesher.
type Field interface {
	// Evaluate returns the signed distance at p.
	Evaluate(p r3.Vec) float64
	// Bounds returns a box guaranteed to contain the zero level set.
	Bounds() Box
}
