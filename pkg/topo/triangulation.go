package topo

import (
	"sync"

	"gonum.org/v1/gonum/spatial/r3"
)

// Triangulation is the mesh attached to a face by a mesher. Nodes are
// in the face's local frame; consumers compose the face location
// themselves. Triangles are zero-based node index triples wound
// counter-clockwise around the geometric surface normal.
type Triangulation struct {
	Nodes     []r3.Vec
	Normals   []r3.Vec
	UVs       [][2]float64
	Triangles [][3]int
}

// NodeCount returns the number of triangulation nodes.
func (t *Triangulation) NodeCount() int { return len(t.Nodes) }

// TriangleCount returns the number of triangles.
func (t *Triangulation) TriangleCount() int { return len(t.Triangles) }

// Polygon is a boundary polyline on a face triangulation: a run of
// node indices into the triangulation of the face the edge borders.
type Polygon struct {
	Nodes []int
}

// attachments holds transient mesher output on a TShape. Meshers may
// tessellate faces of one shape concurrently, and an edge shared by
// two faces receives one polygon per face triangulation, so access is
// mutex-guarded.
type attachments struct {
	mu       sync.Mutex
	tri      *Triangulation
	polygons map[*Triangulation]*Polygon
}

// Triangulation returns the attached face triangulation, or nil.
func (t *TShape) Triangulation() *Triangulation {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.tri
}

// SetTriangulation attaches a face triangulation, replacing any
// previous one.
func (t *TShape) SetTriangulation(tri *Triangulation) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.tri = tri
}

// PolygonOnTriangulation returns the boundary polygon of this edge on
// the given face triangulation, or nil when none was attached.
func (t *TShape) PolygonOnTriangulation(tri *Triangulation) *Polygon {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.polygons[tri]
}

// AddPolygon attaches a boundary polygon of this edge on the given
// face triangulation.
func (t *TShape) AddPolygon(tri *Triangulation, nodes []int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.polygons == nil {
		t.polygons = make(map[*Triangulation]*Polygon)
	}
	t.polygons[tri] = &Polygon{Nodes: nodes}
}

func (t *TShape) clean() {
	t.mu.Lock()
	t.tri = nil
	t.polygons = nil
	t.mu.Unlock()
}

// Clean releases all triangulations and polygons attached anywhere in
// the shape's subtree. Meshers may attach large per-face side tables;
// callers release them once the data has been extracted.
func Clean(s Shape) {
	if s.T == nil {
		return
	}
	s.T.clean()
	for _, c := range s.T.children {
		Clean(c)
	}
}
