// Package command contains write operations (CQRS - Commands).
package command

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/nabha-hub/nabha-learning-hub/internal/domain/identity"
	"github.com/nabha-hub/nabha-learning-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// AUTHENTICATE COMMAND
// Login doubles as registration: an unseen username creates a user with the
// supplied password and role. For a known username the password must match;
// the supplied role is accepted as given, so the session role may differ from
// the registered role. That drift is the platform's documented behavior,
// preserved deliberately (DESIGN.md).
// ══════════════════════════════════════════════════════════════════════════════

// AuthenticateCommand contains the login form data.
type AuthenticateCommand struct {
	// Username is the account key.
	Username string

	// Password is the plaintext credential.
	Password string

	// Role the user logs in as.
	Role identity.Role
}

// Validate validates the command.
func (c AuthenticateCommand) Validate() error {
	if strings.TrimSpace(c.Username) == "" {
		return shared.ErrEmptyUsername
	}
	if strings.TrimSpace(c.Password) == "" {
		return shared.ErrEmptyPassword
	}
	if !c.Role.IsValid() {
		return shared.ErrInvalidRole
	}
	return nil
}

// AuthenticateResult contains the outcome of a login.
type AuthenticateResult struct {
	// Session is the newly opened session.
	Session *identity.Session

	// IsNewUser indicates the username was unseen and a user was created.
	IsNewUser bool
}

// AuthenticateHandler handles the AuthenticateCommand.
type AuthenticateHandler struct {
	users      identity.Repository
	sessions   identity.SessionRepository
	sessionTTL time.Duration
	publisher  shared.EventPublisher
}

// NewAuthenticateHandler creates a new AuthenticateHandler.
func NewAuthenticateHandler(
	users identity.Repository,
	sessions identity.SessionRepository,
	sessionTTL time.Duration,
	publisher shared.EventPublisher,
) *AuthenticateHandler {
	return &AuthenticateHandler{
		users:      users,
		sessions:   sessions,
		sessionTTL: sessionTTL,
		publisher:  publisher,
	}
}

// Handle executes the authenticate command.
func (h *AuthenticateHandler) Handle(ctx context.Context, cmd AuthenticateCommand) (*AuthenticateResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	username := strings.TrimSpace(cmd.Username)
	password := strings.TrimSpace(cmd.Password)

	var isNewUser bool
	existing, err := h.users.GetByUsername(ctx, username)
	switch {
	case errors.Is(err, shared.ErrNotFound):
		// Register on first login.
		user, err := identity.NewUser(username, password, cmd.Role)
		if err != nil {
			return nil, err
		}
		if err := h.users.Create(ctx, user); err != nil {
			return nil, err
		}
		isNewUser = true
	case err != nil:
		return nil, err
	default:
		if !existing.CheckPassword(password) {
			return nil, shared.ErrWrongPassword
		}
	}

	// The session carries the role supplied at login, which replaces any
	// previously active session.
	session := identity.NewSession(username, cmd.Role, h.sessionTTL)
	if err := h.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	if h.publisher != nil {
		_ = h.publisher.Publish(shared.NewUserLoggedInEvent(username, cmd.Role.String(), isNewUser))
	}

	return &AuthenticateResult{Session: session, IsNewUser: isNewUser}, nil
}
