package application

import (
	"context"
	"sync"
)

// Resolver wraps an async operation so that, among N overlapping invocations
// sharing a key, only the result of the most recently started one is
// delivered; earlier ones resolve as cancelled. Nothing is aborted mid-flight;
// cancellation is purely result suppression. This keeps stale quotes from
// overwriting fresher ones when refetches fire in quick succession.
type Resolver[P, T any] struct {
	fn func(ctx context.Context, params P) (T, error)

	mu  sync.Mutex
	seq map[string]uint64
}

func NewResolver[P, T any](fn func(ctx context.Context, params P) (T, error)) *Resolver[P, T] {
	return &Resolver[P, T]{fn: fn, seq: make(map[string]uint64)}
}

// Do runs the wrapped operation. The returned bool is true when a later call
// for the same key started before this one finished; the result and error are
// then zero and must be ignored.
func (r *Resolver[P, T]) Do(ctx context.Context, key string, params P) (T, bool, error) {
	r.mu.Lock()
	r.seq[key]++
	id := r.seq[key]
	r.mu.Unlock()

	out, err := r.fn(ctx, params)

	r.mu.Lock()
	latest := r.seq[key]
	r.mu.Unlock()

	if id != latest {
		var zero T
		return zero, true, nil
	}
	return out, false, err
}
