package query

import (
	"context"

	"github.com/nabha-hub/nabha-learning-hub/internal/domain/badge"
	"github.com/nabha-hub/nabha-learning-hub/internal/domain/identity"
	"github.com/nabha-hub/nabha-learning-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// PROFILE QUERY
// ══════════════════════════════════════════════════════════════════════════════

// Profile is the dashboard view of the logged-in user.
type Profile struct {
	// Username of the session.
	Username string

	// Role the session was opened with.
	Role identity.Role

	// Completed courses with catalog names resolved.
	Completed []CompletedCourse

	// Badges in award order.
	Badges []string
}

// ProfileHandler assembles the profile of the active session.
type ProfileHandler struct {
	sessions  identity.SessionRepository
	completed *CompletedCoursesHandler
	badges    badge.Repository
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(
	sessions identity.SessionRepository,
	completed *CompletedCoursesHandler,
	badges badge.Repository,
) *ProfileHandler {
	return &ProfileHandler{sessions: sessions, completed: completed, badges: badges}
}

// Handle returns the profile of the active session, or
// shared.ErrNoActiveSession when nobody is logged in.
func (h *ProfileHandler) Handle(ctx context.Context) (*Profile, error) {
	session, err := identity.ActiveSession(ctx, h.sessions)
	if err != nil {
		return nil, shared.WrapError("identity", "Profile", shared.ErrNoActiveSession, "login required", err)
	}

	completed, err := h.completed.Handle(ctx, session.Username)
	if err != nil {
		return nil, err
	}

	ledger, err := h.badges.Get(ctx)
	if err != nil {
		return nil, err
	}

	return &Profile{
		Username:  session.Username,
		Role:      session.Role,
		Completed: completed,
		Badges:    ledger.Badges(session.Username),
	}, nil
}
