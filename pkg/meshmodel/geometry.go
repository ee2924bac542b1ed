// Package meshmodel defines the immutable triangulation output: flat
// GPU-ready geometry buffers, materials, and the flattened scene node
// list with parent back-references.
package meshmodel

// TriGeometry is one deduplicated surface mesh chunk. All buffers are
// flat and local to the owning shape's un-located frame: positions and
// normals carry 3 floats per vertex, UVs 2 floats per vertex
// normalized to each face's UV bounding box, and indices 3 entries
// per triangle. SubmeshIndices records the vertex count of each
// original face so sub-regions can be isolated for picking.
type TriGeometry struct {
	Positions      []float32 `json:"positions"`
	Normals        []float32 `json:"normals"`
	UVs            []float32 `json:"uvs"`
	Indices        []uint32  `json:"indices"`
	SubmeshIndices []uint32  `json:"submeshIndices"`
}

// VertexCount returns the number of vertices.
func (g *TriGeometry) VertexCount() int {
	return len(g.Positions) / 3
}

// TriangleCount returns the number of triangles.
func (g *TriGeometry) TriangleCount() int {
	return len(g.Indices) / 3
}

// IsEmpty reports whether the chunk has no renderable geometry.
func (g *TriGeometry) IsEmpty() bool {
	return len(g.Positions) == 0 || len(g.Indices) == 0
}

// LineGeometry is one deduplicated wireframe chunk. Positions hold
// unconnected segment pairs: each run of 6 floats is one line segment.
// SubmeshIndices records the vertex count contributed by each edge.
type LineGeometry struct {
	Positions      []float32 `json:"positions"`
	SubmeshIndices []uint32  `json:"submeshIndices"`
}

// SegmentCount returns the number of line segments.
func (g *LineGeometry) SegmentCount() int {
	return len(g.Positions) / 6
}

// IsEmpty reports whether the chunk has no segments.
func (g *LineGeometry) IsEmpty() bool {
	return len(g.Positions) == 0
}

// Material is a resolved display color with components in [0, 1].
type Material struct {
	Color [3]float32 `json:"color"`
}
