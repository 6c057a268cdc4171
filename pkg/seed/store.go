package seed

import (
	"context"
	"sync/atomic"
)

// Store holds the single active seed.
// Put replaces the value wholesale; Get never observes a partial write.
type Store interface {
	// Get returns the current seed or ErrNotFound if none was stored yet.
	Get(ctx context.Context) (Seed, error)
	// Put atomically replaces the current seed.
	Put(ctx context.Context, s Seed) error
}

// MemoryStore keeps the seed in process memory behind an atomic pointer.
// Useful for tests and for deployments that re-provision on every start.
type MemoryStore struct {
	current atomic.Pointer[Seed]
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Get(ctx context.Context) (Seed, error) {
	if err := ctx.Err(); err != nil {
		return Seed{}, err
	}
	p := m.current.Load()
	if p == nil {
		return Seed{}, ErrNotFound
	}
	return *p, nil
}

func (m *MemoryStore) Put(ctx context.Context, s Seed) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.IsZero() {
		return ErrZeroSeed
	}
	m.current.Store(&s)
	return nil
}
