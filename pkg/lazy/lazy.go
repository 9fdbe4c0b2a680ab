// Package lazy provides a once-only, mutex-guarded initializer for values
// that are expensive to build and shared for the lifetime of the process.
package lazy

import (
	"context"
	"sync"
)

// Value holds a T that is built on first use.
//
// Get serializes initialization: concurrent first callers block on the same
// mutex, exactly one of them runs init, and all of them observe its result.
// A failed init is not memoized, so a later Get runs init again. Once a
// value is stored it is never replaced.
//
// init runs under the mutex with the context of the caller that triggered
// it, so waiting callers stay blocked until that attempt returns even if
// their own contexts end sooner. A caller whose context is already done when
// it acquires the lock gets ctx.Err() instead of starting another attempt.
//
// The zero Value is ready to use. A Value must not be copied after first use.
type Value[T any] struct {
	mu    sync.Mutex
	done  bool
	value T
	calls int
}

// Get returns the memoized value, running init if no value is stored yet.
func (v *Value[T]) Get(ctx context.Context, init func(context.Context) (T, error)) (T, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.done {
		return v.value, nil
	}
	if err := ctx.Err(); err != nil {
		var zero T
		return zero, err
	}

	v.calls++
	val, err := init(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	v.value = val
	v.done = true
	return val, nil
}

// Loaded reports whether a value has been stored.
func (v *Value[T]) Loaded() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.done
}

// attempts returns how many times init has been run, successful or not.
func (v *Value[T]) attempts() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.calls
}
