// Package replay holds training samples between producers and learners:
// bounded in-memory buffers and stores backed by memory or Redis.
package replay

import "iter"

// Ring is a fixed capacity circular buffer. Once full, each push overwrites
// the oldest value.
type Ring[T any] struct {
	values []T
	next   int
	full   bool
}

// NewRing creates a ring holding at most capacity values.
func NewRing[T any](capacity int) *Ring[T] {
	if capacity <= 0 {
		panic("replay: ring capacity must be positive")
	}
	return &Ring[T]{values: make([]T, 0, capacity)}
}

// Push appends values, evicting the oldest when full.
func (r *Ring[T]) Push(values ...T) {
	for _, v := range values {
		if !r.full {
			r.values = append(r.values, v)
			if len(r.values) == cap(r.values) {
				r.full = true
			}
			continue
		}
		r.values[r.next] = v
		r.next = (r.next + 1) % len(r.values)
	}
}

// Len returns the number of values held.
func (r *Ring[T]) Len() int { return len(r.values) }

// Cap returns the capacity.
func (r *Ring[T]) Cap() int { return cap(r.values) }

// Usage returns the filled fraction of the ring.
func (r *Ring[T]) Usage() float64 {
	return float64(len(r.values)) / float64(cap(r.values))
}

// At returns the i-th value, oldest first.
func (r *Ring[T]) At(i int) T {
	if i < 0 || i >= len(r.values) {
		panic("replay: ring index out of range")
	}
	if !r.full {
		return r.values[i]
	}
	return r.values[(r.next+i)%len(r.values)]
}

// All iterates the values oldest first.
func (r *Ring[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := range r.values {
			if !yield(i, r.At(i)) {
				return
			}
		}
	}
}

// Clear drops every value.
func (r *Ring[T]) Clear() {
	clear(r.values)
	r.values = r.values[:0]
	r.next = 0
	r.full = false
}
