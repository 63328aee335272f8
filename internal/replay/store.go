package replay

import (
	"context"
	"fmt"
	"sync"
)

// Store is a bounded sample store shared between producers and consumers.
// Get indexes oldest first.
type Store[T any] interface {
	Push(ctx context.Context, values ...T) error
	Len(ctx context.Context) (int, error)
	Get(ctx context.Context, i int) (T, error)
	Clear(ctx context.Context) error
}

// MemoryStore is a Store over a Ring, safe for concurrent use.
type MemoryStore[T any] struct {
	mu   sync.RWMutex
	ring *Ring[T]
}

// NewMemoryStore creates a store holding at most capacity values.
func NewMemoryStore[T any](capacity int) *MemoryStore[T] {
	return &MemoryStore[T]{ring: NewRing[T](capacity)}
}

func (s *MemoryStore[T]) Push(_ context.Context, values ...T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ring.Push(values...)
	return nil
}

func (s *MemoryStore[T]) Len(context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ring.Len(), nil
}

func (s *MemoryStore[T]) Get(_ context.Context, i int) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i < 0 || i >= s.ring.Len() {
		var zero T
		return zero, fmt.Errorf("index %d out of range [0, %d)", i, s.ring.Len())
	}
	return s.ring.At(i), nil
}

func (s *MemoryStore[T]) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ring.Clear()
	return nil
}

var (
	_ Store[int] = (*MemoryStore[int])(nil)
	_ Store[int] = (*RedisStore[int])(nil)
)
