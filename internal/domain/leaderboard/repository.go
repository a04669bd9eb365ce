package leaderboard

import (
	"context"
)

// Repository defines storage operations for the leaderboard.
type Repository interface {
	// Get returns the stored board. A missing blob yields an empty board.
	Get(ctx context.Context) (Board, error)

	// Update applies fn to the stored board atomically and writes the
	// result back. If fn returns an error nothing is written.
	Update(ctx context.Context, fn func(b Board) error) error
}
