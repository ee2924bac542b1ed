package meshmodel

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Model is the final triangulation output: dense geometry, material,
// and node arrays. A Model is immutable once assembled; node indices
// reference the arrays by position.
type Model struct {
	Tris      []TriGeometry  `json:"tris"`
	Lines     []LineGeometry `json:"lines"`
	Materials []Material     `json:"materials"`
	Nodes     []Node         `json:"nodes"`
}

// TriCount returns the number of surface geometry chunks.
func (m *Model) TriCount() int { return len(m.Tris) }

// Tri returns the surface geometry chunk at index i.
func (m *Model) Tri(i int) *TriGeometry { return &m.Tris[i] }

// LineCount returns the number of wireframe geometry chunks.
func (m *Model) LineCount() int { return len(m.Lines) }

// Line returns the wireframe chunk at index i.
func (m *Model) Line(i int) *LineGeometry { return &m.Lines[i] }

// MaterialCount returns the number of materials.
func (m *Model) MaterialCount() int { return len(m.Materials) }

// MaterialAt returns the material at index i.
func (m *Model) MaterialAt(i int) Material { return m.Materials[i] }

// NodeCount returns the number of scene nodes.
func (m *Model) NodeCount() int { return len(m.Nodes) }

// NodeAt returns the scene node at index i.
func (m *Model) NodeAt(i int) *Node { return &m.Nodes[i] }

// normalTolerance allows for float32 rounding when checking that
// normal vectors are unit length.
const normalTolerance = 1e-3

// Validate checks the structural invariants of the model: buffer size
// relationships, index ranges, UV normalization, unit normals, and the
// geometry classes allowed per node kind. It returns the first
// violation found.
func (m *Model) Validate() error {
	for i := range m.Tris {
		if err := validateTri(&m.Tris[i]); err != nil {
			return fmt.Errorf("tri geometry %d: %w", i, err)
		}
	}
	for i := range m.Lines {
		if len(m.Lines[i].Positions)%6 != 0 {
			return fmt.Errorf("line geometry %d: positions length %d is not a multiple of 6", i, len(m.Lines[i].Positions))
		}
	}
	for i := range m.Nodes {
		if err := m.validateNode(&m.Nodes[i]); err != nil {
			return fmt.Errorf("node %d: %w", i, err)
		}
	}
	return nil
}

func validateTri(g *TriGeometry) error {
	if len(g.Positions)%3 != 0 {
		return fmt.Errorf("positions length %d is not a multiple of 3", len(g.Positions))
	}
	if len(g.Normals) != len(g.Positions) {
		return fmt.Errorf("normals length %d does not match positions length %d", len(g.Normals), len(g.Positions))
	}
	vertexCount := g.VertexCount()
	if len(g.UVs) != vertexCount*2 {
		return fmt.Errorf("uvs length %d does not match %d vertices", len(g.UVs), vertexCount)
	}
	if len(g.Indices)%3 != 0 {
		return fmt.Errorf("indices length %d is not a multiple of 3", len(g.Indices))
	}
	for i, idx := range g.Indices {
		if int(idx) >= vertexCount {
			return fmt.Errorf("index %d at %d exceeds vertex count %d", idx, i, vertexCount)
		}
	}
	for i := 0; i < len(g.UVs); i++ {
		if g.UVs[i] < 0 || g.UVs[i] > 1 {
			return fmt.Errorf("uv component %d = %g outside [0, 1]", i, g.UVs[i])
		}
	}
	for i := 0; i < vertexCount; i++ {
		nx := g.Normals[i*3]
		ny := g.Normals[i*3+1]
		nz := g.Normals[i*3+2]
		norm := math32.Sqrt(nx*nx + ny*ny + nz*nz)
		if math32.Abs(norm-1) > normalTolerance {
			return fmt.Errorf("normal %d has length %g", i, norm)
		}
	}
	return nil
}

func (m *Model) validateNode(n *Node) error {
	if n.TriGeometry != None && (n.TriGeometry < 0 || n.TriGeometry >= len(m.Tris)) {
		return fmt.Errorf("tri geometry index %d out of range", n.TriGeometry)
	}
	if n.LineGeometry != None && (n.LineGeometry < 0 || n.LineGeometry >= len(m.Lines)) {
		return fmt.Errorf("line geometry index %d out of range", n.LineGeometry)
	}
	if n.Material != None && (n.Material < 0 || n.Material >= len(m.Materials)) {
		return fmt.Errorf("material index %d out of range", n.Material)
	}
	if n.Parent != None && (n.Parent < 0 || n.Parent >= len(m.Nodes)) {
		return fmt.Errorf("parent index %d out of range", n.Parent)
	}
	switch n.Kind {
	case KindCompound, KindCompSolid:
		if n.TriGeometry != None || n.LineGeometry != None {
			return fmt.Errorf("%s node carries geometry", n.Kind)
		}
	case KindEdge:
		if n.TriGeometry != None {
			return fmt.Errorf("edge node carries triangle geometry")
		}
	}
	return nil
}
