package cache

import (
	"context"
	"sync"
)

// Entry caches one JSON-encoded value under a fixed key, such as a full
// reference list. Invalidate bumps a generation counter, and a Load whose
// read began before the bump does not write its result back, so a slow
// reader cannot restore a list that a concurrent write already replaced.
type Entry[T any] struct {
	cache System
	key   string

	mu  sync.Mutex
	gen uint64
}

// NewEntry binds an Entry to key in c.
func NewEntry[T any](c System, key string) *Entry[T] {
	return &Entry[T]{cache: c, key: key}
}

// Load returns the cached value, or calls fill and caches its result when
// no write has happened since fill started.
func (e *Entry[T]) Load(ctx context.Context, fill func(context.Context) (T, error)) (T, error) {
	if v, ok := GetJSON[T](ctx, e.cache, e.key); ok {
		return v, nil
	}

	e.mu.Lock()
	started := e.gen
	e.mu.Unlock()

	v, err := fill(ctx)
	if err != nil {
		return v, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.gen == started {
		SetJSON(ctx, e.cache, e.key, v)
	}
	return v, nil
}

// Invalidate drops the cached value and discards any fill in flight.
func (e *Entry[T]) Invalidate(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.gen++
	e.cache.Delete(ctx, e.key)
}
