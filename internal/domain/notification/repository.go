package notification

import (
	"context"
)

// Repository defines storage operations for the announcement feed.
type Repository interface {
	// Get returns the stored feed. A missing blob yields an empty feed.
	Get(ctx context.Context) (Feed, error)

	// Update applies fn to the stored feed atomically and writes the result
	// back. fn returns the new feed; if it returns an error nothing is written.
	Update(ctx context.Context, fn func(f Feed) (Feed, error)) error
}
