package progress

import (
	"context"
)

// Repository defines storage operations for the completion ledger.
type Repository interface {
	// Get returns the stored ledger. A missing blob yields an empty ledger.
	Get(ctx context.Context) (Ledger, error)

	// Update applies fn to the stored ledger atomically and writes the
	// result back. If fn returns an error nothing is written.
	Update(ctx context.Context, fn func(l Ledger) error) error
}
