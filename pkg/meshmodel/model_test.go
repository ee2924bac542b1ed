package meshmodel_test

import (
	"strings"
	"testing"

	"github.com/voltwin-dev/brepmesh/pkg/meshmodel"
)

// quadGeometry is a valid unit quad in the XY plane.
func quadGeometry() meshmodel.TriGeometry {
	return meshmodel.TriGeometry{
		Positions: []float32{
			0, 0, 0,
			1, 0, 0,
			0, 1, 0,
			1, 1, 0,
		},
		Normals: []float32{
			0, 0, 1,
			0, 0, 1,
			0, 0, 1,
			0, 0, 1,
		},
		UVs:            []float32{0, 0, 1, 0, 0, 1, 1, 1},
		Indices:        []uint32{0, 1, 3, 0, 3, 2},
		SubmeshIndices: []uint32{0},
	}
}

func TestGeometryCounts(t *testing.T) {
	g := quadGeometry()
	if got := g.VertexCount(); got != 4 {
		t.Fatalf("VertexCount = %d, want 4", got)
	}
	if got := g.TriangleCount(); got != 2 {
		t.Fatalf("TriangleCount = %d, want 2", got)
	}
	if g.IsEmpty() {
		t.Fatal("quad reported empty")
	}

	l := meshmodel.LineGeometry{Positions: []float32{0, 0, 0, 1, 0, 0}}
	if got := l.SegmentCount(); got != 1 {
		t.Fatalf("SegmentCount = %d, want 1", got)
	}
	if (meshmodel.LineGeometry{}).SegmentCount() != 0 {
		t.Fatal("empty line geometry has segments")
	}
}

func TestModelAccessors(t *testing.T) {
	m := &meshmodel.Model{
		Tris:      []meshmodel.TriGeometry{quadGeometry()},
		Materials: []meshmodel.Material{{Color: [3]float32{1, 0, 0}}},
		Nodes: []meshmodel.Node{{
			Name:         "body",
			Kind:         meshmodel.KindSolid,
			TriGeometry:  0,
			LineGeometry: meshmodel.None,
			Material:     0,
			Parent:       meshmodel.None,
		}},
	}
	if m.TriCount() != 1 || m.LineCount() != 0 || m.MaterialCount() != 1 || m.NodeCount() != 1 {
		t.Fatal("counts disagree with the arrays")
	}
	if m.NodeAt(0).Name != "body" {
		t.Fatalf("NodeAt(0).Name = %q", m.NodeAt(0).Name)
	}
	if m.MaterialAt(0).Color != [3]float32{1, 0, 0} {
		t.Fatal("MaterialAt(0) lost the color")
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("valid model rejected: %v", err)
	}
}

func TestValidateViolations(t *testing.T) {
	leaf := func(kind meshmodel.ShapeKind, tri, line int) meshmodel.Node {
		return meshmodel.Node{
			Kind:         kind,
			TriGeometry:  tri,
			LineGeometry: line,
			Material:     meshmodel.None,
			Parent:       meshmodel.None,
		}
	}

	tests := []struct {
		name    string
		mutate  func(m *meshmodel.Model)
		wantErr string
	}{
		{
			name: "normals length mismatch",
			mutate: func(m *meshmodel.Model) {
				m.Tris[0].Normals = m.Tris[0].Normals[:9]
			},
			wantErr: "normals length",
		},
		{
			name: "uv count mismatch",
			mutate: func(m *meshmodel.Model) {
				m.Tris[0].UVs = append(m.Tris[0].UVs, 0)
			},
			wantErr: "uvs length",
		},
		{
			name: "index out of range",
			mutate: func(m *meshmodel.Model) {
				m.Tris[0].Indices[0] = 42
			},
			wantErr: "exceeds vertex count",
		},
		{
			name: "uv outside unit square",
			mutate: func(m *meshmodel.Model) {
				m.Tris[0].UVs[0] = 1.5
			},
			wantErr: "outside [0, 1]",
		},
		{
			name: "non-unit normal",
			mutate: func(m *meshmodel.Model) {
				m.Tris[0].Normals[2] = 2
			},
			wantErr: "has length",
		},
		{
			name: "ragged line positions",
			mutate: func(m *meshmodel.Model) {
				m.Lines = []meshmodel.LineGeometry{{Positions: []float32{0, 0, 0, 1}}}
			},
			wantErr: "multiple of 6",
		},
		{
			name: "dangling parent",
			mutate: func(m *meshmodel.Model) {
				m.Nodes[0].Parent = 7
			},
			wantErr: "parent index",
		},
		{
			name: "dangling material",
			mutate: func(m *meshmodel.Model) {
				m.Nodes[0].Material = 3
			},
			wantErr: "material index",
		},
		{
			name: "compound with geometry",
			mutate: func(m *meshmodel.Model) {
				m.Nodes[0] = leaf(meshmodel.KindCompound, 0, meshmodel.None)
			},
			wantErr: "carries geometry",
		},
		{
			name: "edge with triangles",
			mutate: func(m *meshmodel.Model) {
				m.Nodes[0] = leaf(meshmodel.KindEdge, 0, meshmodel.None)
			},
			wantErr: "carries triangle geometry",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &meshmodel.Model{
				Tris:      []meshmodel.TriGeometry{quadGeometry()},
				Materials: []meshmodel.Material{{}},
				Nodes:     []meshmodel.Node{leaf(meshmodel.KindSolid, 0, meshmodel.None)},
			}
			tt.mutate(m)
			err := m.Validate()
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestShapeKindString(t *testing.T) {
	kinds := map[meshmodel.ShapeKind]string{
		meshmodel.KindUnknown:   "unknown",
		meshmodel.KindCompound:  "compound",
		meshmodel.KindCompSolid: "compsolid",
		meshmodel.KindSolid:     "solid",
		meshmodel.KindShell:     "shell",
		meshmodel.KindEdge:      "edge",
	}
	for kind, want := range kinds {
		if got := kind.String(); got != want {
			t.Fatalf("ShapeKind(%d).String() = %q, want %q", kind, got, want)
		}
	}
}
