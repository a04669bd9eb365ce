package persistence

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nabha-hub/nabha-learning-hub/internal/domain/catalog"
	"github.com/nabha-hub/nabha-learning-hub/internal/domain/leaderboard"
)

// EnsureSeedData writes the platform defaults for collections that have never
// been written: the two starter courses and the standard leaderboard
// subjects. Collections that already exist are left untouched, so seeding is
// safe to run on every startup.
func EnsureSeedData(ctx context.Context, store Store, logger *slog.Logger) error {
	var c catalog.Catalog
	err := store.Load(ctx, KeyCourses, &c)
	switch {
	case errors.Is(err, ErrKeyNotFound):
		if err := store.Save(ctx, KeyCourses, catalog.Seed()); err != nil {
			return fmt.Errorf("seed catalog: %w", err)
		}
		logger.Info("seeded default course catalog")
	case err != nil:
		return fmt.Errorf("check catalog: %w", err)
	}

	var b leaderboard.Board
	err = store.Load(ctx, KeyLeaderboard, &b)
	switch {
	case errors.Is(err, ErrKeyNotFound):
		if err := store.Save(ctx, KeyLeaderboard, leaderboard.Seed()); err != nil {
			return fmt.Errorf("seed leaderboard: %w", err)
		}
		logger.Info("seeded default leaderboard subjects")
	case err != nil:
		return fmt.Errorf("check leaderboard: %w", err)
	}

	return nil
}
