package identity

import (
	"context"
	"time"
)

// ══════════════════════════════════════════════════════════════════════════════
// REPOSITORY INTERFACES
// Implementations live in infrastructure/persistence and store the whole
// collection as one blob per key, write-through on every mutation.
// ══════════════════════════════════════════════════════════════════════════════

// Repository defines storage operations for user accounts.
type Repository interface {
	// GetByUsername returns the user with the given username.
	// Returns shared.ErrNotFound if no such user exists.
	GetByUsername(ctx context.Context, username string) (*User, error)

	// Create appends a new user. Returns shared.ErrAlreadyExists if the
	// username is taken.
	Create(ctx context.Context, user *User) error

	// List returns all users in registration order.
	List(ctx context.Context) ([]User, error)

	// ListByRole returns all users with the given role, in registration order.
	ListByRole(ctx context.Context, role Role) ([]User, error)
}

// SessionRepository holds the single active session.
type SessionRepository interface {
	// Current returns the active session, or shared.ErrNoActiveSession.
	// Implementations do not filter by expiry; callers check IsExpired.
	Current(ctx context.Context) (*Session, error)

	// Save replaces the active session.
	Save(ctx context.Context, session *Session) error

	// Clear removes the active session. Clearing an empty slot is a no-op.
	Clear(ctx context.Context) error
}

// ActiveSession returns the current session if one exists and has not
// expired. Expired sessions are cleared on read, so a stale token never
// grants access past its TTL.
func ActiveSession(ctx context.Context, repo SessionRepository) (*Session, error) {
	session, err := repo.Current(ctx)
	if err != nil {
		return nil, err
	}
	if session.IsExpired(time.Now()) {
		if err := repo.Clear(ctx); err != nil {
			return nil, err
		}
		return nil, ErrSessionExpired
	}
	return session, nil
}
