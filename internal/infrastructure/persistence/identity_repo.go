package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nabha-hub/nabha-learning-hub/internal/domain/identity"
	"github.com/nabha-hub/nabha-learning-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// USER REPOSITORY
// The full user list is one blob under "users", in registration order.
// ══════════════════════════════════════════════════════════════════════════════

// UserRepository implements identity.Repository over a blob Store.
type UserRepository struct {
	store Store
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(store Store) *UserRepository {
	return &UserRepository{store: store}
}

// GetByUsername returns the user with the given username.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*identity.User, error) {
	users, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Username == username {
			return &users[i], nil
		}
	}
	return nil, shared.NewDomainError("identity", "GetByUsername", shared.ErrNotFound, "user not found")
}

// Create appends a new user to the stored list.
func (r *UserRepository) Create(ctx context.Context, user *identity.User) error {
	return r.store.Update(ctx, KeyUsers, func(raw []byte) ([]byte, error) {
		var users []identity.User
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &users); err != nil {
				return nil, fmt.Errorf("decode users: %w", err)
			}
		}
		for i := range users {
			if users[i].Username == user.Username {
				return nil, shared.NewDomainError("identity", "Create", shared.ErrAlreadyExists, "username already registered")
			}
		}
		users = append(users, *user)
		return json.Marshal(users)
	})
}

// List returns all users in registration order.
func (r *UserRepository) List(ctx context.Context) ([]identity.User, error) {
	var users []identity.User
	if err := r.store.Load(ctx, KeyUsers, &users); err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load users: %w", err)
	}
	return users, nil
}

// ListByRole returns all users with the given role.
func (r *UserRepository) ListByRole(ctx context.Context, role identity.Role) ([]identity.User, error) {
	users, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []identity.User
	for _, u := range users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// SESSION REPOSITORY
// The single active session lives under "sessions". The blob holds at most
// one session; persisting it lets a session outlive a process restart until
// its token expires.
// ══════════════════════════════════════════════════════════════════════════════

// SessionRepository implements identity.SessionRepository over a blob Store.
type SessionRepository struct {
	store Store
}

// NewSessionRepository creates a new SessionRepository.
func NewSessionRepository(store Store) *SessionRepository {
	return &SessionRepository{store: store}
}

// Current returns the active session.
func (r *SessionRepository) Current(ctx context.Context) (*identity.Session, error) {
	var session identity.Session
	if err := r.store.Load(ctx, KeySessions, &session); err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return nil, shared.ErrNoActiveSession
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	if session.Token == "" {
		return nil, shared.ErrNoActiveSession
	}
	return &session, nil
}

// Save replaces the active session.
func (r *SessionRepository) Save(ctx context.Context, session *identity.Session) error {
	if err := r.store.Save(ctx, KeySessions, session); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Clear removes the active session by writing an empty record.
func (r *SessionRepository) Clear(ctx context.Context) error {
	if err := r.store.Save(ctx, KeySessions, &identity.Session{}); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
