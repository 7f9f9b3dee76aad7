// Package memstore is the default in-memory catalog store.
package memstore

import (
	"context"
	"sync"

	"github.com/merchlink/merchlink/pkg/merchlink/catalog"
)

// Store holds the session catalog in memory. Catalogs are immutable, so a
// snapshot is a pointer swap under a read lock.
type Store struct {
	mu      sync.RWMutex
	current *catalog.Catalog
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{current: catalog.New(nil)}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// Replace implements store.Store.
func (s *Store) Replace(ctx context.Context, c *catalog.Catalog) error {
	if c == nil {
		c = catalog.New(nil)
	}
	s.mu.Lock()
	s.current = c
	s.mu.Unlock()
	return nil
}

// Snapshot implements store.Store.
func (s *Store) Snapshot(ctx context.Context) (*catalog.Catalog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, nil
}
