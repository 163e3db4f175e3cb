package prefs

import (
	"context"
	"sync"
	"sync/atomic"

	"sellerconsole/internal/pipeline"
)

// Saver orders query saves that run on separate goroutines. Next is called
// from the update loop in the order the user changed the query; Save then
// writes one query at a time and skips any generation older than the last
// one written.
type Saver struct {
	store Store
	gen   atomic.Uint64

	mu      sync.Mutex
	written uint64
}

// NewSaver returns a Saver writing to store.
func NewSaver(store Store) *Saver {
	return &Saver{store: store}
}

// Next reserves the generation for the next save.
func (s *Saver) Next() uint64 {
	return s.gen.Add(1)
}

// Save writes q for generation gen. It reports false without writing when a
// newer generation already reached the store.
func (s *Saver) Save(ctx context.Context, gen uint64, q pipeline.Query) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen <= s.written {
		return false, nil
	}
	if err := SaveQuery(ctx, s.store, q); err != nil {
		return false, err
	}
	s.written = gen
	return true, nil
}
