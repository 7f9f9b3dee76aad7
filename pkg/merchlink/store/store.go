// Package store holds the session catalog behind a small interface.
// Loads replace the catalog wholesale; a reader always sees one complete
// snapshot, never a partially loaded catalog.
package store

import (
	"context"

	"github.com/merchlink/merchlink/pkg/merchlink/catalog"
)

// Store is the catalog store interface.
type Store interface {
	Close() error

	// Replace swaps in a freshly loaded catalog, discarding the previous
	// one atomically.
	Replace(ctx context.Context, c *catalog.Catalog) error

	// Snapshot returns the most recently replaced catalog. With no load
	// yet it returns an empty catalog, never nil.
	Snapshot(ctx context.Context) (*catalog.Catalog, error)
}
