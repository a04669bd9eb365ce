package query

import (
	"context"

	"github.com/nabha-hub/nabha-learning-hub/internal/domain/identity"
)

// ══════════════════════════════════════════════════════════════════════════════
// SESSION QUERY
// ══════════════════════════════════════════════════════════════════════════════

// CurrentSessionHandler returns the active session.
type CurrentSessionHandler struct {
	sessions identity.SessionRepository
}

// NewCurrentSessionHandler creates a new CurrentSessionHandler.
func NewCurrentSessionHandler(sessions identity.SessionRepository) *CurrentSessionHandler {
	return &CurrentSessionHandler{sessions: sessions}
}

// Handle returns the active session. Expired sessions are cleared on read,
// so callers see shared.ErrNoActiveSession or identity.ErrSessionExpired.
func (h *CurrentSessionHandler) Handle(ctx context.Context) (*identity.Session, error) {
	return identity.ActiveSession(ctx, h.sessions)
}
