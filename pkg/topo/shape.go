package topo

import (
	"github.com/voltwin-dev/brepmesh/pkg/geom"
)

// Kind enumerates the topology kinds in a shape tree.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindCompound
	KindCompSolid
	KindSolid
	KindShell
	KindFace
	KindEdge
)

func (k Kind) String() string {
	switch k {
	case KindCompound:
		return "compound"
	case KindCompSolid:
		return "compsolid"
	case KindSolid:
		return "solid"
	case KindShell:
		return "shell"
	case KindFace:
		return "face"
	case KindEdge:
		return "edge"
	default:
		return "unknown"
	}
}

// TShape is the shared, location-free topology record. Its pointer is
// the stable shape identity: two occurrences of the same TShape at
// different placements share geometry but not transform. Never copy a
// TShape; always share the pointer through Shape values.
type TShape struct {
	kind     Kind
	children []Shape // sub-shapes with locations local to this record

	surface geom.Surface // faces
	curve   geom.Curve   // edges
	field   geom.Field   // implicit solids

	attachments // transient mesher output, see triangulation.go
}

// Kind returns the topology kind.
func (t *TShape) Kind() Kind { return t.kind }

// Surface returns the parametric surface of a face record, or nil.
func (t *TShape) Surface() geom.Surface { return t.surface }

// Curve returns the parametric curve of an edge record, or nil.
func (t *TShape) Curve() geom.Curve { return t.curve }

// Field returns the implicit volume of a field-backed solid, or nil.
func (t *TShape) Field() geom.Field { return t.field }

// Shape is a located occurrence of a TShape: shared topology plus a
// placement transform and an orientation flag. Shape is a small value
// type; copying it never copies topology.
type Shape struct {
	T        *TShape
	Location geom.Trsf
	Reversed bool
}

// IsNil reports whether the shape has no topology.
func (s Shape) IsNil() bool { return s.T == nil }

// Kind returns the topology kind, KindUnknown for a nil shape.
func (s Shape) Kind() Kind {
	if s.T == nil {
		return KindUnknown
	}
	return s.T.kind
}

// Located returns the shape with its location replaced by t.
func (s Shape) Located(t geom.Trsf) Shape {
	s.Location = t
	return s
}

// Moved returns the shape with t composed in front of its location.
func (s Shape) Moved(t geom.Trsf) Shape {
	s.Location = t.Mul(s.Location)
	return s
}

// Oriented returns the shape with the given orientation flag.
func (s Shape) Oriented(reversed bool) Shape {
	s.Reversed = reversed
	return s
}

// Children returns the direct sub-shapes with locations and
// orientations composed with this occurrence, like iterating a
// located assembly node.
func (s Shape) Children() []Shape {
	if s.T == nil {
		return nil
	}
	out := make([]Shape, len(s.T.children))
	for i, c := range s.T.children {
		out[i] = Shape{
			T:        c.T,
			Location: s.Location.Mul(c.Location),
			Reversed: s.Reversed != c.Reversed,
		}
	}
	return out
}

func newShape(kind Kind, children ...Shape) Shape {
	return Shape{
		T:        &TShape{kind: kind, children: children},
		Location: geom.Identity(),
	}
}

// NewCompound creates a compound grouping the given shapes.
func NewCompound(children ...Shape) Shape {
	return newShape(KindCompound, children...)
}

// NewCompSolid creates a composite solid from the given solids.
func NewCompSolid(solids ...Shape) Shape {
	return newShape(KindCompSolid, solids...)
}

// NewSolid creates a solid bounded by the given shells.
func NewSolid(shells ...Shape) Shape {
	return newShape(KindSolid, shells...)
}

// NewShell creates a shell from the given faces.
func NewShell(faces ...Shape) Shape {
	return newShape(KindShell, faces...)
}

// NewFace creates a face over the given surface with its boundary
// edges. When exactly four edges are passed they are taken in grid
// order — v=vmin, u=umax, v=vmax, u=umin — which lets the grid mesher
// attach boundary polygons on the triangulation for them. Faces with
// any other edge count fall back to curve sampling for their edges.
func NewFace(surface geom.Surface, edges ...Shape) Shape {
	s := newShape(KindFace, edges...)
	s.T.surface = surface
	return s
}

// NewEdge creates a free edge over the given curve.
func NewEdge(curve geom.Curve) Shape {
	s := newShape(KindEdge)
	s.T.curve = curve
	return s
}

// NewImplicitSolid creates a solid described by a signed distance
// field instead of an explicit face decomposition. The solid carries a
// single synthetic face with no surface; a volume mesher attaches the
// triangulation of the whole boundary to that face.
func NewImplicitSolid(field geom.Field) Shape {
	face := newShape(KindFace)
	s := newShape(KindSolid, face)
	s.T.field = field
	return s
}
