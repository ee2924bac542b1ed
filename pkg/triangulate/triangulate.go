// Package triangulate converts a B-rep document into a renderable
// mesh model: it walks the assembly hierarchy with an explicit stack,
// tessellates solid and shell shapes through a mesher with
// numerically-derived tolerances, deduplicates shared topology,
// resolves names and colors, and assembles compact geometry, material,
// and scene node arrays.
package triangulate

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/voltwin-dev/brepmesh/pkg/doc"
	"github.com/voltwin-dev/brepmesh/pkg/mesher"
	"github.com/voltwin-dev/brepmesh/pkg/mesher/fieldmesh"
	"github.com/voltwin-dev/brepmesh/pkg/meshmodel"
)

// Tessellation tolerances. The linear deflection scales with each
// shape's bounding box but never drops below the chordal floor.
const (
	deviationCoefficient = 0.001
	maxChordalDeviation  = 0.0001
	angularDeflection    = 0.2
)

// Options configures a triangulation pass.
type Options struct {
	// Mesher is the tessellation primitive. Nil selects the grid
	// mesher with the marching-cubes field mesher for implicit solids.
	Mesher mesher.Mesher
	// Logger receives debug records for skipped degenerate geometry.
	// Nil disables logging.
	Logger *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.Mesher == nil {
		o.Mesher = mesher.Dispatch{
			Explicit: mesher.NewIncremental(),
			Implicit: fieldmesh.New(),
		}
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// Compute runs one triangulation pass over the document and returns
// the assembled model. The document is read-only to the pass except
// for transient tessellation caches, which are released before
// returning. On error no model is produced.
func Compute(d *doc.Document, opts Options) (*meshmodel.Model, error) {
	opts = opts.withDefaults()
	p := newPass(d, opts)
	model, err := p.run()
	if err != nil {
		return nil, fmt.Errorf("triangulate: %w", err)
	}
	return model, nil
}

// Session owns a document and computes its model at most once.
// Compute is idempotent: repeated calls return the cached model
// without re-tessellating, and concurrent callers collapse into a
// single execution under the session mutex. A failed pass leaves the
// cache empty so a later call may retry.
type Session struct {
	doc  *doc.Document
	opts Options

	mu    sync.Mutex
	model *meshmodel.Model
}

// NewSession creates a session over the given document.
func NewSession(d *doc.Document, opts Options) *Session {
	return &Session{doc: d, opts: opts.withDefaults()}
}

// Compute returns the document's model, computing it on first call.
func (s *Session) Compute() (*meshmodel.Model, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.model != nil {
		return s.model, nil
	}
	model, err := Compute(s.doc, s.opts)
	if err != nil {
		return nil, err
	}
	s.model = model
	return model, nil
}

// Model returns the cached model without computing.
func (s *Session) Model() (*meshmodel.Model, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model, s.model != nil
}

// ComputeAsync starts the pass on a background goroutine and returns
// a one-shot task the caller can poll. The pass cannot be cancelled
// once started.
func (s *Session) ComputeAsync() *Task {
	t := &Task{}
	go func() {
		model, err := s.Compute()
		t.complete(model, err)
		s.opts.Logger.Debug("async triangulation completed", zap.Error(err))
	}()
	return t
}
