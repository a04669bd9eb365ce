package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nabha-hub/nabha-learning-hub/internal/domain/notification"
	"github.com/nabha-hub/nabha-learning-hub/internal/domain/training"
)

// ══════════════════════════════════════════════════════════════════════════════
// NOTIFICATION FEED REPOSITORY
// ══════════════════════════════════════════════════════════════════════════════

// FeedRepository implements notification.Repository over a blob Store.
type FeedRepository struct {
	store Store
}

// NewFeedRepository creates a new FeedRepository.
func NewFeedRepository(store Store) *FeedRepository {
	return &FeedRepository{store: store}
}

// Get returns the stored feed, most-recent-first.
func (r *FeedRepository) Get(ctx context.Context) (notification.Feed, error) {
	feed := notification.NewFeed()
	if err := r.store.Load(ctx, KeyNotifications, &feed); err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return notification.NewFeed(), nil
		}
		return nil, fmt.Errorf("load notifications: %w", err)
	}
	return feed, nil
}

// Update applies fn to the stored feed atomically.
func (r *FeedRepository) Update(ctx context.Context, fn func(f notification.Feed) (notification.Feed, error)) error {
	return r.store.Update(ctx, KeyNotifications, func(raw []byte) ([]byte, error) {
		feed := notification.NewFeed()
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &feed); err != nil {
				return nil, fmt.Errorf("decode notifications: %w", err)
			}
		}
		next, err := fn(feed)
		if err != nil {
			return nil, err
		}
		return json.Marshal(next)
	})
}

// ══════════════════════════════════════════════════════════════════════════════
// TRAINING REGISTRY REPOSITORY
// ══════════════════════════════════════════════════════════════════════════════

// TrainingRepository implements training.Repository over a blob Store.
type TrainingRepository struct {
	store Store
}

// NewTrainingRepository creates a new TrainingRepository.
func NewTrainingRepository(store Store) *TrainingRepository {
	return &TrainingRepository{store: store}
}

// Get returns the stored registry in insertion order.
func (r *TrainingRepository) Get(ctx context.Context) (training.Registry, error) {
	reg := training.NewRegistry()
	if err := r.store.Load(ctx, KeyTrainings, &reg); err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return training.NewRegistry(), nil
		}
		return nil, fmt.Errorf("load trainings: %w", err)
	}
	return reg, nil
}

// Update applies fn to the stored registry atomically.
func (r *TrainingRepository) Update(ctx context.Context, fn func(reg training.Registry) (training.Registry, error)) error {
	return r.store.Update(ctx, KeyTrainings, func(raw []byte) ([]byte, error) {
		reg := training.NewRegistry()
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &reg); err != nil {
				return nil, fmt.Errorf("decode trainings: %w", err)
			}
		}
		next, err := fn(reg)
		if err != nil {
			return nil, err
		}
		return json.Marshal(next)
	})
}
