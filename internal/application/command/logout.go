package command

import (
	"context"

	"github.com/nabha-hub/nabha-learning-hub/internal/domain/identity"
	"github.com/nabha-hub/nabha-learning-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// LOGOUT COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// LogoutHandler clears the active session. Logging out with no session is a
// no-op rather than an error.
type LogoutHandler struct {
	sessions  identity.SessionRepository
	publisher shared.EventPublisher
}

// NewLogoutHandler creates a new LogoutHandler.
func NewLogoutHandler(sessions identity.SessionRepository, publisher shared.EventPublisher) *LogoutHandler {
	return &LogoutHandler{sessions: sessions, publisher: publisher}
}

// Handle executes the logout command.
func (h *LogoutHandler) Handle(ctx context.Context) error {
	session, err := identity.ActiveSession(ctx, h.sessions)
	if err != nil {
		// Nothing to log out of.
		return nil
	}

	if err := h.sessions.Clear(ctx); err != nil {
		return err
	}

	if h.publisher != nil {
		_ = h.publisher.Publish(shared.NewUserLoggedOutEvent(session.Username))
	}
	return nil
}
