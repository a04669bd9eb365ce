package command

import (
	"context"
	"strings"

	"github.com/nabha-hub/nabha-learning-hub/internal/domain/catalog"
	"github.com/nabha-hub/nabha-learning-hub/internal/domain/identity"
	"github.com/nabha-hub/nabha-learning-hub/internal/domain/progress"
	"github.com/nabha-hub/nabha-learning-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// MARK COMPLETED COMMAND
// Self-service completion: the active session marks its own progress.
// ══════════════════════════════════════════════════════════════════════════════

// MarkCompletedCommand marks a course completed for the logged-in user.
type MarkCompletedCommand struct {
	// CourseID identifies the course, e.g. "course1".
	CourseID string
}

// Validate validates the command.
func (c MarkCompletedCommand) Validate() error {
	if strings.TrimSpace(c.CourseID) == "" {
		return shared.NewDomainError("progress", "MarkCompleted", shared.ErrEmptyInput, "course id cannot be empty")
	}
	return nil
}

// MarkCompletedResult reports what the marking did.
type MarkCompletedResult struct {
	// Username whose ledger was written.
	Username string

	// NewlyCompleted is false when the flag was already set.
	NewlyCompleted bool
}

// MarkCompletedHandler handles the MarkCompletedCommand.
type MarkCompletedHandler struct {
	progress  progress.Repository
	catalog   catalog.Repository
	sessions  identity.SessionRepository
	publisher shared.EventPublisher
}

// NewMarkCompletedHandler creates a new MarkCompletedHandler.
func NewMarkCompletedHandler(
	progressRepo progress.Repository,
	catalogRepo catalog.Repository,
	sessions identity.SessionRepository,
	publisher shared.EventPublisher,
) *MarkCompletedHandler {
	return &MarkCompletedHandler{
		progress:  progressRepo,
		catalog:   catalogRepo,
		sessions:  sessions,
		publisher: publisher,
	}
}

// Handle executes the mark-completed command. The course must exist in the
// catalog; marking an already-completed course is an idempotent no-op.
func (h *MarkCompletedHandler) Handle(ctx context.Context, cmd MarkCompletedCommand) (*MarkCompletedResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	session, err := identity.ActiveSession(ctx, h.sessions)
	if err != nil {
		return nil, shared.WrapError("progress", "MarkCompleted", shared.ErrNoActiveSession, "login required", err)
	}

	courseID := strings.TrimSpace(cmd.CourseID)
	cat, err := h.catalog.Get(ctx)
	if err != nil {
		return nil, err
	}
	if !cat.Contains(courseID) {
		return nil, shared.ErrCourseNotFound
	}

	var newly bool
	err = h.progress.Update(ctx, func(l progress.Ledger) error {
		newly = l.Mark(session.Username, courseID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if newly && h.publisher != nil {
		_ = h.publisher.Publish(shared.NewCourseCompletedEvent(session.Username, courseID, session.Username))
	}

	return &MarkCompletedResult{Username: session.Username, NewlyCompleted: newly}, nil
}
