// Package mesher defines the tessellation primitive applied to solid
// and shell shapes. A Mesher attaches triangulations and boundary
// polygons onto the shape's topology records as a side effect; it is
// not safe to invoke twice on the same topology without an external
// dedup guard, since the second run replaces the first attachment.
package mesher

import (
	"github.com/voltwin-dev/brepmesh/pkg/topo"
)

// Params carries the tessellation tolerances and execution flags.
type Params struct {
	// LinearDeflection is the maximum chordal deviation between the
	// true surface and its tessellation.
	LinearDeflection float64 `json:"linearDeflection"`
	// Relative marks LinearDeflection as derived from the shape's own
	// bounding box rather than an absolute model tolerance.
	Relative bool `json:"relative"`
	// AngularDeflection is the maximum turn angle in radians between
	// consecutive tessellation chords.
	AngularDeflection float64 `json:"angularDeflection"`
	// Parallel allows the mesher to tessellate faces of one shape
	// concurrently.
	Parallel bool `json:"parallel"`
}

// Mesher tessellates one shape, attaching per-face triangulations and
// per-edge boundary polygons to the underlying topology records.
type Mesher interface {
	MeshShape(s topo.Shape, p Params) error
}

// Dispatch routes field-backed solids to the implicit mesher and all
// other shapes to the explicit one.
type Dispatch struct {
	Explicit Mesher
	Implicit Mesher
}

var _ Mesher = Dispatch{}

func (d Dispatch) MeshShape(s topo.Shape, p Params) error {
	if !s.IsNil() && s.T.Field() != nil && d.Implicit != nil {
		return d.Implicit.MeshShape(s, p)
	}
	if d.Explicit == nil {
		return nil
	}
	return d.Explicit.MeshShape(s, p)
}
