// Package fieldmesh tessellates field-backed implicit solids using
// marching cubes from the github.com/deadsy/sdfx library. The whole
// boundary surface lands on the solid's single synthetic face as one
// triangle soup; implicit solids have no parameterization, so UVs are
// zero and no edge polylines are produced.
package fieldmesh

import (
	"fmt"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/voltwin-dev/brepmesh/pkg/geom"
	"github.com/voltwin-dev/brepmesh/pkg/mesher"
	"github.com/voltwin-dev/brepmesh/pkg/topo"
)

const (
	// defaultMaxCells caps marching cubes resolution across the
	// largest bounding box extent.
	defaultMaxCells = 200
	minCells        = 16
	// cellsPerDeflection spaces sampling cells a multiple of the
	// linear deflection apart; marching cubes stays well within the
	// chordal tolerance at that spacing.
	cellsPerDeflection = 25
)

// Mesher tessellates implicit solids. MaxCells bounds the marching
// cubes grid regardless of the requested deflection.
type Mesher struct {
	MaxCells int
}

var _ mesher.Mesher = (*Mesher)(nil)

// New returns a field mesher with the default resolution cap.
func New() *Mesher {
	return &Mesher{MaxCells: defaultMaxCells}
}

// fieldSDF adapts a geom.Field to the sdfx SDF3 interface.
type fieldSDF struct {
	f geom.Field
}

func (s fieldSDF) Evaluate(p v3.Vec) float64 {
	return s.f.Evaluate(r3.Vec{X: p.X, Y: p.Y, Z: p.Z})
}

func (s fieldSDF) BoundingBox() sdf.Box3 {
	b := s.f.Bounds()
	return sdf.Box3{
		Min: v3.Vec{X: b.Min.X, Y: b.Min.Y, Z: b.Min.Z},
		Max: v3.Vec{X: b.Max.X, Y: b.Max.Y, Z: b.Max.Z},
	}
}

// MeshShape runs marching cubes over the solid's field and attaches
// the result to its synthetic face.
func (m *Mesher) MeshShape(s topo.Shape, p mesher.Params) error {
	if s.IsNil() || s.T.Field() == nil {
		return fmt.Errorf("fieldmesh: shape carries no field")
	}
	faces := topo.Explore(s, topo.KindFace)
	if len(faces) == 0 {
		return fmt.Errorf("fieldmesh: implicit solid has no face to attach to")
	}

	field := s.T.Field()
	cells := m.cellCount(field.Bounds(), p.LinearDeflection)
	renderer := render.NewMarchingCubesUniform(cells)
	triangles := render.ToTriangles(fieldSDF{f: field}, renderer)
	if len(triangles) == 0 {
		return nil
	}

	tri := &topo.Triangulation{
		Nodes:     make([]r3.Vec, 0, len(triangles)*3),
		Normals:   make([]r3.Vec, 0, len(triangles)*3),
		UVs:       make([][2]float64, len(triangles)*3),
		Triangles: make([][3]int, 0, len(triangles)),
	}
	for i, t := range triangles {
		n := t.Normal()
		normal := r3.Vec{X: n.X, Y: n.Y, Z: n.Z}
		for j := 0; j < 3; j++ {
			v := t[j]
			tri.Nodes = append(tri.Nodes, r3.Vec{X: v.X, Y: v.Y, Z: v.Z})
			tri.Normals = append(tri.Normals, normal)
		}
		tri.Triangles = append(tri.Triangles, [3]int{i * 3, i*3 + 1, i*3 + 2})
	}

	faces[0].T.SetTriangulation(tri)
	return nil
}

func (m *Mesher) cellCount(bounds geom.Box, deflection float64) int {
	max := m.MaxCells
	if max <= 0 {
		max = defaultMaxCells
	}
	if deflection <= 0 {
		return max
	}
	cells := int(bounds.MaxExtent() / (deflection * cellsPerDeflection))
	if cells < minCells {
		return minCells
	}
	if cells > max {
		return max
	}
	return cells
}
