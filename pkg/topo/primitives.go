package topo

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/voltwin-dev/brepmesh/pkg/geom"
)

// MakeBox builds a solid box of the given dimensions with its minimum
// corner at the origin. The six planar faces are oriented with
// geometric normals pointing outward, and each of the twelve edges is
// shared between its two bordering faces so edge polylines deduplicate.
func MakeBox(dx, dy, dz float64) Shape {
	corner := func(i int) r3.Vec {
		c := r3.Vec{}
		if i&1 != 0 {
			c.X = dx
		}
		if i&2 != 0 {
			c.Y = dy
		}
		if i&4 != 0 {
			c.Z = dz
		}
		return c
	}

	// Edges memoized by unordered corner pair so bordering faces share
	// one topology record.
	edges := make(map[[2]int]Shape)
	edge := func(a, b int) Shape {
		key := [2]int{a, b}
		if a > b {
			key = [2]int{b, a}
		}
		if e, ok := edges[key]; ok {
			return e
		}
		e := NewEdge(geom.Line{P0: corner(key[0]), P1: corner(key[1])})
		edges[key] = e
		return e
	}

	axis := func(i int) r3.Vec {
		switch i {
		case 0:
			return r3.Vec{X: 1}
		case 1:
			return r3.Vec{Y: 1}
		default:
			return r3.Vec{Z: 1}
		}
	}
	extent := [3]float64{dx, dy, dz}

	// Each face is described by its origin corner index and the corner
	// offsets of its U and V directions, chosen so cross(U, V) points
	// outward. Boundary edges are listed in the grid order NewFace
	// documents: v=vmin, u=umax, v=vmax, u=umin.
	type faceSpec struct {
		origin int
		uBit   int // corner bit toggled by walking the U direction
		vBit   int
		uAxis  int
		vAxis  int
	}
	specs := []faceSpec{
		{origin: 0, uBit: 2, vBit: 1, uAxis: 1, vAxis: 0}, // bottom, normal -Z
		{origin: 4, uBit: 1, vBit: 2, uAxis: 0, vAxis: 1}, // top, normal +Z
		{origin: 0, uBit: 1, vBit: 4, uAxis: 0, vAxis: 2}, // front, normal -Y
		{origin: 2, uBit: 4, vBit: 1, uAxis: 2, vAxis: 0}, // back, normal +Y
		{origin: 0, uBit: 4, vBit: 2, uAxis: 2, vAxis: 1}, // left, normal -X
		{origin: 1, uBit: 2, vBit: 4, uAxis: 1, vAxis: 2}, // right, normal +X
	}

	faces := make([]Shape, 0, len(specs))
	for _, fs := range specs {
		c00 := fs.origin
		c10 := fs.origin | fs.uBit
		c01 := fs.origin | fs.vBit
		c11 := fs.origin | fs.uBit | fs.vBit
		plane := geom.Plane{
			Origin: corner(c00),
			UDir:   axis(fs.uAxis),
			VDir:   axis(fs.vAxis),
			UMax:   extent[fs.uAxis],
			VMax:   extent[fs.vAxis],
		}
		faces = append(faces, NewFace(plane,
			edge(c00, c10), // v=vmin
			edge(c10, c11), // u=umax
			edge(c01, c11), // v=vmax
			edge(c00, c01), // u=umin
		))
	}

	return NewSolid(NewShell(faces...))
}
