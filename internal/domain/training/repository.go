package training

import (
	"context"
)

// Repository defines storage operations for the training registry.
type Repository interface {
	// Get returns the stored registry. A missing blob yields an empty one.
	Get(ctx context.Context) (Registry, error)

	// Update applies fn to the stored registry atomically and writes the
	// result back. fn returns the new registry; on error nothing is written.
	Update(ctx context.Context, fn func(r Registry) (Registry, error)) error
}
