package topo_test

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/voltwin-dev/brepmesh/pkg/geom"
	"github.com/voltwin-dev/brepmesh/pkg/topo"
)

func TestKindString(t *testing.T) {
	cases := map[topo.Kind]string{
		topo.KindCompound:  "compound",
		topo.KindCompSolid: "compsolid",
		topo.KindSolid:     "solid",
		topo.KindShell:     "shell",
		topo.KindFace:      "face",
		topo.KindEdge:      "edge",
		topo.KindUnknown:   "unknown",
	}
	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", kind, got, want)
		}
	}
}

func TestSharedIdentity(t *testing.T) {
	box := topo.MakeBox(1, 1, 1)
	a := box.Located(geom.Translation(r3.Vec{X: 5}))
	b := box.Located(geom.Translation(r3.Vec{X: -5}))
	if a.T != b.T {
		t.Error("relocated occurrences must share the topology record")
	}
	if a.Location == b.Location {
		t.Error("occurrences must keep their own locations")
	}
}

func TestExploreComposesLocations(t *testing.T) {
	face := topo.NewFace(geom.Plane{UDir: r3.Vec{X: 1}, VDir: r3.Vec{Y: 1}, UMax: 1, VMax: 1})
	shell := topo.NewShell(face.Located(geom.Translation(r3.Vec{Z: 2})))
	solid := topo.NewSolid(shell).Located(geom.Translation(r3.Vec{X: 3}))

	faces := topo.Explore(solid, topo.KindFace)
	if len(faces) != 1 {
		t.Fatalf("explored %d faces, want 1", len(faces))
	}
	origin := faces[0].Location.Transform(r3.Vec{})
	want := r3.Vec{X: 3, Z: 2}
	if r3.Norm(r3.Sub(origin, want)) > 1e-12 {
		t.Errorf("composed face origin = %v, want %v", origin, want)
	}
}

func TestExploreOrientationComposition(t *testing.T) {
	face := topo.NewFace(geom.Plane{UDir: r3.Vec{X: 1}, VDir: r3.Vec{Y: 1}, UMax: 1, VMax: 1})
	shell := topo.NewShell(face.Oriented(true))
	faces := topo.Explore(topo.NewSolid(shell), topo.KindFace)
	if len(faces) != 1 || !faces[0].Reversed {
		t.Fatal("reversed face lost its orientation through exploration")
	}
}

func TestMakeBoxTopology(t *testing.T) {
	box := topo.MakeBox(2, 3, 4)
	if box.Kind() != topo.KindSolid {
		t.Fatalf("box kind = %s, want solid", box.Kind())
	}

	faces := topo.Explore(box, topo.KindFace)
	if len(faces) != 6 {
		t.Fatalf("box has %d faces, want 6", len(faces))
	}

	// Twelve distinct edges, each shared by exactly two faces.
	edgeUses := map[*topo.TShape]int{}
	for _, f := range faces {
		children := f.Children()
		if len(children) != 4 {
			t.Fatalf("box face has %d edges, want 4", len(children))
		}
		for _, e := range children {
			edgeUses[e.T]++
		}
	}
	if len(edgeUses) != 12 {
		t.Errorf("box has %d distinct edges, want 12", len(edgeUses))
	}
	for _, uses := range edgeUses {
		if uses != 2 {
			t.Errorf("edge used by %d faces, want 2", uses)
		}
	}
}

func TestMakeBoxNormalsOutward(t *testing.T) {
	box := topo.MakeBox(2, 2, 2)
	center := r3.Vec{X: 1, Y: 1, Z: 1}
	for i, f := range topo.Explore(box, topo.KindFace) {
		surf := f.T.Surface()
		umin, umax, vmin, vmax := surf.Domain()
		mid := surf.Point((umin+umax)/2, (vmin+vmax)/2)
		n := geom.SurfaceNormal(surf, (umin+umax)/2, (vmin+vmax)/2)
		if r3.Dot(n, r3.Sub(mid, center)) <= 0 {
			t.Errorf("face %d normal %v points inward at %v", i, n, mid)
		}
	}
}

func TestBoundingBox(t *testing.T) {
	box := topo.MakeBox(2, 3, 4)
	b := topo.BoundingBox(box)
	if b.IsEmpty() {
		t.Fatal("bounding box is empty")
	}
	e := b.Extent()
	if math.Abs(e.X-2) > 1e-9 || math.Abs(e.Y-3) > 1e-9 || math.Abs(e.Z-4) > 1e-9 {
		t.Errorf("extent = %v, want (2,3,4)", e)
	}

	moved := box.Located(geom.Translation(r3.Vec{X: 10}))
	mb := topo.BoundingBox(moved)
	if math.Abs(mb.Min.X-10) > 1e-9 {
		t.Errorf("moved box min X = %g, want 10", mb.Min.X)
	}
}

func TestAttachmentsAndClean(t *testing.T) {
	box := topo.MakeBox(1, 1, 1)
	faces := topo.Explore(box, topo.KindFace)
	tri := &topo.Triangulation{Nodes: []r3.Vec{{}}}
	faces[0].T.SetTriangulation(tri)

	edge := faces[0].Children()[0]
	edge.T.AddPolygon(tri, []int{0})
	if faces[0].T.Triangulation() != tri {
		t.Fatal("triangulation not attached")
	}
	if edge.T.PolygonOnTriangulation(tri) == nil {
		t.Fatal("polygon not attached")
	}
	if edge.T.PolygonOnTriangulation(&topo.Triangulation{}) != nil {
		t.Fatal("polygon returned for foreign triangulation")
	}

	topo.Clean(box)
	if faces[0].T.Triangulation() != nil {
		t.Error("triangulation survived Clean")
	}
	if edge.T.PolygonOnTriangulation(tri) != nil {
		t.Error("polygon survived Clean")
	}
}

func TestImplicitSolidShape(t *testing.T) {
	field := sphereField{radius: 1}
	s := topo.NewImplicitSolid(field)
	if s.Kind() != topo.KindSolid {
		t.Fatalf("kind = %s, want solid", s.Kind())
	}
	if s.T.Field() == nil {
		t.Fatal("field not carried")
	}
	faces := topo.Explore(s, topo.KindFace)
	if len(faces) != 1 {
		t.Fatalf("implicit solid has %d faces, want 1 synthetic face", len(faces))
	}
	if faces[0].T.Surface() != nil {
		t.Error("synthetic face must have no surface")
	}
}

// sphereField is a unit test signed distance field.
type sphereField struct {
	radius float64
}

func (s sphereField) Evaluate(p r3.Vec) float64 {
	return r3.Norm(p) - s.radius
}

func (s sphereField) Bounds() geom.Box {
	r := s.radius * 1.1
	return geom.Box{Min: r3.Vec{X: -r, Y: -r, Z: -r}, Max: r3.Vec{X: r, Y: r, Z: r}}
}
