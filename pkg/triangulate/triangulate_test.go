package triangulate_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/voltwin-dev/brepmesh/pkg/doc"
	"github.com/voltwin-dev/brepmesh/pkg/geom"
	"github.com/voltwin-dev/brepmesh/pkg/mesher"
	"github.com/voltwin-dev/brepmesh/pkg/meshmodel"
	"github.com/voltwin-dev/brepmesh/pkg/topo"
	"github.com/voltwin-dev/brepmesh/pkg/triangulate"
)

// countingMesher counts MeshShape invocations on its way to the real
// mesher.
type countingMesher struct {
	inner mesher.Mesher

	mu    sync.Mutex
	calls int
}

func newCountingMesher() *countingMesher {
	return &countingMesher{inner: mesher.NewIncremental()}
}

func (m *countingMesher) MeshShape(s topo.Shape, p mesher.Params) error {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	return m.inner.MeshShape(s, p)
}

func (m *countingMesher) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// boxDocument is a single free box solid under a named root label.
func boxDocument() *doc.Document {
	d := doc.New()
	box := topo.MakeBox(1, 1, 1)
	root := d.AddRoot("box", box)
	root.SetColor(doc.ColorSurface, doc.Color{R: 0.8, G: 0.2, B: 0.2})
	return d
}

func TestComputeEmptyDocument(t *testing.T) {
	model, err := triangulate.Compute(doc.New(), triangulate.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if model.NodeCount() != 0 || model.TriCount() != 0 || model.LineCount() != 0 || model.MaterialCount() != 0 {
		t.Fatal("empty document produced a non-empty model")
	}
}

func TestComputeBox(t *testing.T) {
	model, err := triangulate.Compute(boxDocument(), triangulate.Options{
		Logger: zaptest.NewLogger(t),
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := model.Validate(); err != nil {
		t.Fatal(err)
	}

	if model.NodeCount() != 1 {
		t.Fatalf("NodeCount = %d, want 1", model.NodeCount())
	}
	node := model.NodeAt(0)
	if node.Name != "box" || node.Kind != meshmodel.KindSolid || node.Parent != meshmodel.None {
		t.Fatalf("unexpected root node %+v", node)
	}
	if node.TriGeometry != 0 || node.LineGeometry != 0 || node.Material != 0 {
		t.Fatalf("root node misses geometry or material: %+v", node)
	}

	tri := model.Tri(0)
	if tri.VertexCount() != 24 {
		t.Fatalf("VertexCount = %d, want 24 (6 faces, 4 corners each)", tri.VertexCount())
	}
	if tri.TriangleCount() != 12 {
		t.Fatalf("TriangleCount = %d, want 12", tri.TriangleCount())
	}
	if len(tri.SubmeshIndices) != 6 {
		t.Fatalf("submesh count = %d, want 6", len(tri.SubmeshIndices))
	}

	// 12 edges, one boundary polygon each, one segment per polygon.
	line := model.Line(0)
	if line.SegmentCount() != 12 {
		t.Fatalf("SegmentCount = %d, want 12", line.SegmentCount())
	}
	if len(line.SubmeshIndices) != 12 {
		t.Fatalf("line submesh count = %d, want 12", len(line.SubmeshIndices))
	}

	if got := model.MaterialAt(0).Color; got != [3]float32{0.8, 0.2, 0.2} {
		t.Fatalf("material color = %v", got)
	}
}

func TestComputeReleasesTessellationCaches(t *testing.T) {
	d := boxDocument()
	if _, err := triangulate.Compute(d, triangulate.Options{}); err != nil {
		t.Fatal(err)
	}
	for _, face := range topo.Explore(d.Roots()[0].Shape(), topo.KindFace) {
		if face.T.Triangulation() != nil {
			t.Fatal("face triangulation survived the pass")
		}
	}
}

func TestSessionIdempotent(t *testing.T) {
	counting := newCountingMesher()
	s := triangulate.NewSession(boxDocument(), triangulate.Options{Mesher: counting})

	first, err := s.Compute()
	if err != nil {
		t.Fatal(err)
	}
	callsAfterFirst := counting.Calls()
	if callsAfterFirst == 0 {
		t.Fatal("mesher never invoked")
	}

	second, err := s.Compute()
	if err != nil {
		t.Fatal(err)
	}
	if second != first {
		t.Fatal("second Compute did not return the cached model")
	}
	if counting.Calls() != callsAfterFirst {
		t.Fatal("second Compute re-tessellated")
	}

	cached, ok := s.Model()
	if !ok || cached != first {
		t.Fatal("Model does not expose the cached result")
	}
}

func TestSessionModelBeforeCompute(t *testing.T) {
	s := triangulate.NewSession(boxDocument(), triangulate.Options{})
	if _, ok := s.Model(); ok {
		t.Fatal("Model reported a result before Compute")
	}
}

func TestComputeAsync(t *testing.T) {
	s := triangulate.NewSession(boxDocument(), triangulate.Options{})
	task := s.ComputeAsync()

	for i := 0; i < 5000 && !task.IsCompleted(); i++ {
		time.Sleep(time.Millisecond)
	}
	if !task.IsCompleted() {
		t.Fatal("task never completed")
	}
	if err := task.Err(); err != nil {
		t.Fatal(err)
	}

	model, ok := task.TakeResult()
	if !ok || model == nil {
		t.Fatal("completed task has no result")
	}
	if _, ok := task.TakeResult(); ok {
		t.Fatal("TakeResult yielded the model twice")
	}
}

func TestTaskBeforeCompletion(t *testing.T) {
	task := &triangulate.Task{}
	if task.IsCompleted() {
		t.Fatal("fresh task reports completed")
	}
	if _, ok := task.TakeResult(); ok {
		t.Fatal("fresh task has a result")
	}
	if task.Err() != nil {
		t.Fatal("fresh task has an error")
	}
}

func TestReferenceCycleAbortsPass(t *testing.T) {
	d := doc.New()
	root := d.AddRoot("a", topo.MakeBox(1, 1, 1))
	other := d.AddShape("b", topo.MakeBox(2, 2, 2))
	root.SetReferred(other)
	other.SetReferred(root)

	s := triangulate.NewSession(d, triangulate.Options{})
	_, err := s.Compute()
	if !errors.Is(err, triangulate.ErrReferenceCycle) {
		t.Fatalf("err = %v, want ErrReferenceCycle", err)
	}
	if _, ok := s.Model(); ok {
		t.Fatal("failed pass left a cached model")
	}
}

func TestFreeEdgeRoot(t *testing.T) {
	d := doc.New()
	edge := topo.NewEdge(geom.Line{P0: r3.Vec{}, P1: r3.Vec{X: 2}})
	d.AddRoot("wire", edge)

	model, err := triangulate.Compute(d, triangulate.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if err := model.Validate(); err != nil {
		t.Fatal(err)
	}

	if model.NodeCount() != 1 || model.TriCount() != 0 || model.LineCount() != 1 {
		t.Fatalf("unexpected model shape: %d nodes, %d tris, %d lines",
			model.NodeCount(), model.TriCount(), model.LineCount())
	}
	node := model.NodeAt(0)
	if node.Kind != meshmodel.KindEdge || node.TriGeometry != meshmodel.None || node.LineGeometry != 0 {
		t.Fatalf("unexpected edge node %+v", node)
	}
	if model.Line(0).SegmentCount() != 1 {
		t.Fatalf("straight edge yielded %d segments, want 1", model.Line(0).SegmentCount())
	}
}
