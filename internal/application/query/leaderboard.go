package query

import (
	"context"

	"github.com/nabha-hub/nabha-learning-hub/internal/domain/leaderboard"
)

// ══════════════════════════════════════════════════════════════════════════════
// LEADERBOARD QUERIES
// ══════════════════════════════════════════════════════════════════════════════

// DefaultTopN is how many entries the leaderboard view shows per subject.
const DefaultTopN = 5

// LeaderboardHandler serves ranked views over the stored score history.
type LeaderboardHandler struct {
	board leaderboard.Repository
}

// NewLeaderboardHandler creates a new LeaderboardHandler.
func NewLeaderboardHandler(boardRepo leaderboard.Repository) *LeaderboardHandler {
	return &LeaderboardHandler{board: boardRepo}
}

// Top returns the subject's best n entries. The stored history is already
// sorted descending; this is a bounded copy of its head.
func (h *LeaderboardHandler) Top(ctx context.Context, subject string, n int) ([]leaderboard.Entry, error) {
	board, err := h.board.Get(ctx)
	if err != nil {
		return nil, err
	}
	return board.Top(subject, n), nil
}

// Overview returns the top entries for every subject on the board, keyed by
// subject. Seeded subjects appear even when empty.
func (h *LeaderboardHandler) Overview(ctx context.Context, n int) (map[string][]leaderboard.Entry, error) {
	board, err := h.board.Get(ctx)
	if err != nil {
		return nil, err
	}

	out := make(map[string][]leaderboard.Entry, len(board))
	for _, subject := range board.Subjects() {
		out[subject] = board.Top(subject, n)
	}
	return out, nil
}
