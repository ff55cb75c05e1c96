// Package store provides the persistence boundary for the review engine:
// one named text blob holding the serialized card collection, behind a
// load-all/save-all pair. Backends differ only in where the blob lives.
package store

import (
	"context"
	"sync"
)

// BlobKey is the fixed storage key for the card collection blob.
const BlobKey = "speak90:anki-cards"

// Store is the engine's view of persistence. Load reports ok=false when
// the blob does not exist yet; that is not an error.
type Store interface {
	Load(ctx context.Context) (raw string, ok bool, err error)
	Save(ctx context.Context, raw string) error
}

// MemStore keeps the blob in memory. Used in tests and as a scratch
// backend for dry runs.
type MemStore struct {
	mu  sync.RWMutex
	raw string
	set bool
}

func NewMemStore() *MemStore {
	return &MemStore{}
}

// Seed pre-populates the blob, bypassing Save. Test helper.
func (m *MemStore) Seed(raw string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.raw = raw
	m.set = true
}

func (m *MemStore) Load(ctx context.Context) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.raw, m.set, nil
}

func (m *MemStore) Save(ctx context.Context, raw string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.raw = raw
	m.set = true
	return nil
}
