package query

import (
	"context"

	"github.com/nabha-hub/nabha-learning-hub/internal/domain/notification"
	"github.com/nabha-hub/nabha-learning-hub/internal/domain/training"
)

// ══════════════════════════════════════════════════════════════════════════════
// FEED AND TRAINING QUERIES
// ══════════════════════════════════════════════════════════════════════════════

// FeedHandler returns the announcement feed, most-recent-first.
type FeedHandler struct {
	feed notification.Repository
}

// NewFeedHandler creates a new FeedHandler.
func NewFeedHandler(feedRepo notification.Repository) *FeedHandler {
	return &FeedHandler{feed: feedRepo}
}

// Handle returns all announcements.
func (h *FeedHandler) Handle(ctx context.Context) ([]notification.Notification, error) {
	feed, err := h.feed.Get(ctx)
	if err != nil {
		return nil, err
	}
	return feed.List(), nil
}

// ListTrainingsHandler returns the training registry in insertion order.
type ListTrainingsHandler struct {
	trainings training.Repository
}

// NewListTrainingsHandler creates a new ListTrainingsHandler.
func NewListTrainingsHandler(trainingsRepo training.Repository) *ListTrainingsHandler {
	return &ListTrainingsHandler{trainings: trainingsRepo}
}

// Handle returns all training resources.
func (h *ListTrainingsHandler) Handle(ctx context.Context) ([]training.Resource, error) {
	registry, err := h.trainings.Get(ctx)
	if err != nil {
		return nil, err
	}
	return registry.List(), nil
}
