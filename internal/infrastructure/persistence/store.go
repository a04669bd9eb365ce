// Package persistence implements the blob storage layer of the learning hub.
// Every domain collection is serialized as a whole and written through
// synchronously under its own key. Backends (file, memory, redis, postgres)
// implement the Store contract; the repositories in this package adapt it to
// the domain repository interfaces.
package persistence

import (
	"context"
	"errors"
)

// Collection keys. Each key holds one serialized collection.
const (
	KeyUsers         = "users"
	KeyCourses       = "courses"
	KeyProgress      = "progress"
	KeyLeaderboard   = "leaderboard"
	KeyTrainings     = "trainings"
	KeyNotifications = "notifications"
	KeyBadges        = "badges"
	KeySessions      = "sessions"
)

var (
	// ErrKeyNotFound is returned by Load when the key has never been written.
	ErrKeyNotFound = errors.New("store: key not found")

	// ErrStoreClosed is returned after Close.
	ErrStoreClosed = errors.New("store: closed")

	// ErrConflict is returned when an optimistic Update loses its race and
	// runs out of retries. Single-actor deployments never see it.
	ErrConflict = errors.New("store: concurrent modification")
)

// UpdateFunc transforms the raw blob under a key. It receives nil when the
// key has never been written and returns the bytes to store. Returning an
// error aborts the update with nothing written.
type UpdateFunc func(raw []byte) ([]byte, error)

// Store is durable key-value blob storage. Save is write-through; Update is
// an atomic read-modify-write, so concurrent actors do not lose updates
// (transaction on postgres, WATCH on redis, mutex on file and memory).
type Store interface {
	// Load unmarshals the blob under key into v.
	// Returns ErrKeyNotFound if the key has never been written.
	Load(ctx context.Context, key string, v any) error

	// Save marshals v and writes it under key, replacing any prior blob.
	Save(ctx context.Context, key string, v any) error

	// Update atomically applies fn to the blob under key.
	Update(ctx context.Context, key string, fn UpdateFunc) error

	// Close releases backend resources.
	Close() error
}
