package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Memory is an in-process Collection. Records are held in their JSON
// encoding, the same form Postgres stores, so nothing a caller reads or
// saves shares memory with the store, nested pointers and slices included.
type Memory[T any] struct {
	mu          sync.RWMutex
	data        []byte
	initialized bool
}

// NewMemory creates an empty in-memory collection.
func NewMemory[T any]() *Memory[T] {
	return &Memory[T]{}
}

// GetAll returns a fresh copy of every record.
func (m *Memory[T]) GetAll(_ context.Context) ([]T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	items := []T{}
	if m.data == nil {
		return items, nil
	}
	if err := json.Unmarshal(m.data, &items); err != nil {
		return nil, fmt.Errorf("%w: memory: %w", ErrCorrupt, err)
	}
	return items, nil
}

// Save replaces the collection with a copy of items.
func (m *Memory[T]) Save(_ context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}

	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode memory collection: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.data = data
	m.initialized = true
	return nil
}

// Initialized reports whether Save was ever called.
func (m *Memory[T]) Initialized(_ context.Context) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized, nil
}

var _ Collection[int] = (*Memory[int])(nil)
