// Package dedupe collapses concurrent identical requests into one call.
//
// The first caller for a key runs the operation; callers arriving while it is
// in flight wait for it and receive the same value or the same error. The key
// is released as soon as the operation returns, whatever the outcome, so a
// later call runs the operation again. There is no cancellation: a waiter
// giving up does not stop the operation.
package dedupe

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
)

// ErrTypeMismatch means a joiner asked for a different result type than the
// call in flight under the same key produced.
var ErrTypeMismatch = errors.New("dedupe: result type mismatch")

type Registry struct {
	group singleflight.Group

	mu      sync.Mutex
	pending map[string]struct{}
}

func New() *Registry {
	return &Registry{pending: make(map[string]struct{})}
}

// Do runs fn under key, or joins the call already in flight for key.
func Do[T any](r *Registry, key string, fn func() (T, error)) (T, error) {
	v, err, _ := r.group.Do(key, func() (any, error) {
		r.track(key)
		defer r.untrack(key)
		return fn()
	})

	var zero T
	if err != nil || v == nil {
		return zero, err
	}
	out, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w for key %q: got %T, want %T", ErrTypeMismatch, key, v, zero)
	}
	return out, nil
}

// Pending reports whether an operation for key is in flight.
func (r *Registry) Pending(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.pending[key]
	return ok
}

// Len is the number of in-flight operations.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}

func (r *Registry) track(key string) {
	r.mu.Lock()
	r.pending[key] = struct{}{}
	r.mu.Unlock()
}

func (r *Registry) untrack(key string) {
	r.mu.Lock()
	delete(r.pending, key)
	r.mu.Unlock()
}
