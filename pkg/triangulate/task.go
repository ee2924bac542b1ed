package triangulate

import (
	"sync"

	"github.com/voltwin-dev/brepmesh/pkg/meshmodel"
)

// Task is the handle to one background triangulation: a single-
// assignment result cell with a completion flag and a take-once
// result slot. There is no cancellation and no timeout; the pass runs
// to completion.
type Task struct {
	mu        sync.Mutex
	completed bool
	model     *meshmodel.Model
	err       error
}

// IsCompleted reports whether the pass has finished, without blocking.
func (t *Task) IsCompleted() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.completed
}

// TakeResult removes and returns the model. It returns the model
// exactly once; before completion, after a failed pass, and on every
// later call it reports absent.
func (t *Task) TakeResult() (*meshmodel.Model, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	model := t.model
	t.model = nil
	return model, model != nil
}

// Err returns the pass error after completion, nil otherwise.
func (t *Task) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

func (t *Task) complete(model *meshmodel.Model, err error) {
	t.mu.Lock()
	t.model = model
	t.err = err
	t.completed = true
	t.mu.Unlock()
}
