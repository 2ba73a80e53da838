package source

import (
	"sync"

	"github.com/guttosm/tour-package-service/internal/metrics"
)

// Epoch orders concurrent fetches so that only the most recently started
// one may commit its result. Results of superseded fetches are dropped.
type Epoch struct {
	mu     sync.Mutex
	latest uint64
}

// Begin starts a fetch and returns its token.
func (e *Epoch) Begin() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.latest++
	return e.latest
}

// Commit runs apply if token belongs to the latest fetch and reports
// whether it did. apply runs under the epoch lock, so commits never interleave.
func (e *Epoch) Commit(token uint64, apply func()) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if token != e.latest {
		metrics.RecordStaleCommit()
		return false
	}
	apply()
	return true
}

// Latest returns the most recently issued token.
func (e *Epoch) Latest() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.latest
}
