package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nabha-hub/nabha-learning-hub/internal/domain/badge"
	"github.com/nabha-hub/nabha-learning-hub/internal/domain/leaderboard"
	"github.com/nabha-hub/nabha-learning-hub/internal/domain/progress"
)

// ══════════════════════════════════════════════════════════════════════════════
// PROGRESS REPOSITORY
// ══════════════════════════════════════════════════════════════════════════════

// ProgressRepository implements progress.Repository over a blob Store.
type ProgressRepository struct {
	store Store
}

// NewProgressRepository creates a new ProgressRepository.
func NewProgressRepository(store Store) *ProgressRepository {
	return &ProgressRepository{store: store}
}

// Get returns the stored completion ledger.
func (r *ProgressRepository) Get(ctx context.Context) (progress.Ledger, error) {
	ledger := progress.NewLedger()
	if err := r.store.Load(ctx, KeyProgress, &ledger); err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return progress.NewLedger(), nil
		}
		return nil, fmt.Errorf("load progress: %w", err)
	}
	return ledger, nil
}

// Update applies fn to the stored ledger atomically.
func (r *ProgressRepository) Update(ctx context.Context, fn func(l progress.Ledger) error) error {
	return r.store.Update(ctx, KeyProgress, func(raw []byte) ([]byte, error) {
		ledger := progress.NewLedger()
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &ledger); err != nil {
				return nil, fmt.Errorf("decode progress: %w", err)
			}
		}
		if err := fn(ledger); err != nil {
			return nil, err
		}
		return json.Marshal(ledger)
	})
}

// ══════════════════════════════════════════════════════════════════════════════
// LEADERBOARD REPOSITORY
// ══════════════════════════════════════════════════════════════════════════════

// LeaderboardRepository implements leaderboard.Repository over a blob Store.
type LeaderboardRepository struct {
	store Store
}

// NewLeaderboardRepository creates a new LeaderboardRepository.
func NewLeaderboardRepository(store Store) *LeaderboardRepository {
	return &LeaderboardRepository{store: store}
}

// Get returns the stored board.
func (r *LeaderboardRepository) Get(ctx context.Context) (leaderboard.Board, error) {
	board := leaderboard.NewBoard()
	if err := r.store.Load(ctx, KeyLeaderboard, &board); err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return leaderboard.NewBoard(), nil
		}
		return nil, fmt.Errorf("load leaderboard: %w", err)
	}
	return board, nil
}

// Update applies fn to the stored board atomically.
func (r *LeaderboardRepository) Update(ctx context.Context, fn func(b leaderboard.Board) error) error {
	return r.store.Update(ctx, KeyLeaderboard, func(raw []byte) ([]byte, error) {
		board := leaderboard.NewBoard()
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &board); err != nil {
				return nil, fmt.Errorf("decode leaderboard: %w", err)
			}
		}
		if err := fn(board); err != nil {
			return nil, err
		}
		return json.Marshal(board)
	})
}

// ══════════════════════════════════════════════════════════════════════════════
// BADGE REPOSITORY
// ══════════════════════════════════════════════════════════════════════════════

// BadgeRepository implements badge.Repository over a blob Store.
type BadgeRepository struct {
	store Store
}

// NewBadgeRepository creates a new BadgeRepository.
func NewBadgeRepository(store Store) *BadgeRepository {
	return &BadgeRepository{store: store}
}

// Get returns the stored badge ledger.
func (r *BadgeRepository) Get(ctx context.Context) (badge.Ledger, error) {
	ledger := badge.NewLedger()
	if err := r.store.Load(ctx, KeyBadges, &ledger); err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return badge.NewLedger(), nil
		}
		return nil, fmt.Errorf("load badges: %w", err)
	}
	return ledger, nil
}

// Update applies fn to the stored badge ledger atomically.
func (r *BadgeRepository) Update(ctx context.Context, fn func(l badge.Ledger) error) error {
	return r.store.Update(ctx, KeyBadges, func(raw []byte) ([]byte, error) {
		ledger := badge.NewLedger()
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &ledger); err != nil {
				return nil, fmt.Errorf("decode badges: %w", err)
			}
		}
		if err := fn(ledger); err != nil {
			return nil, err
		}
		return json.Marshal(ledger)
	})
}
