package catalog

import (
	"context"
)

// Repository defines storage operations for the course catalog.
// The whole catalog (courses plus id counter) is one persisted blob.
type Repository interface {
	// Get returns the stored catalog. A missing blob yields an empty catalog.
	Get(ctx context.Context) (*Catalog, error)

	// Update applies fn to the stored catalog atomically and writes the
	// result back. If fn returns an error nothing is written.
	Update(ctx context.Context, fn func(c *Catalog) error) error
}
