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
// MARK STUDENT PROGRESS COMMAND
// Teacher-assisted completion: writes the same ledger as self-service marking,
// keyed by the student's username instead of the session's.
// ══════════════════════════════════════════════════════════════════════════════

// MarkStudentProgressCommand marks a course completed for a named student.
type MarkStudentProgressCommand struct {
	// StudentUsername is the student whose ledger is written.
	StudentUsername string

	// CourseID identifies the course.
	CourseID string
}

// Validate validates the command.
func (c MarkStudentProgressCommand) Validate() error {
	if strings.TrimSpace(c.StudentUsername) == "" {
		return shared.NewDomainError("progress", "MarkStudent", shared.ErrEmptyInput, "student username cannot be empty")
	}
	if strings.TrimSpace(c.CourseID) == "" {
		return shared.NewDomainError("progress", "MarkStudent", shared.ErrEmptyInput, "course id cannot be empty")
	}
	return nil
}

// MarkStudentProgressHandler handles the MarkStudentProgressCommand.
type MarkStudentProgressHandler struct {
	progress  progress.Repository
	catalog   catalog.Repository
	sessions  identity.SessionRepository
	policy    identity.Policy
	publisher shared.EventPublisher
}

// NewMarkStudentProgressHandler creates a new MarkStudentProgressHandler.
func NewMarkStudentProgressHandler(
	progressRepo progress.Repository,
	catalogRepo catalog.Repository,
	sessions identity.SessionRepository,
	policy identity.Policy,
	publisher shared.EventPublisher,
) *MarkStudentProgressHandler {
	return &MarkStudentProgressHandler{
		progress:  progressRepo,
		catalog:   catalogRepo,
		sessions:  sessions,
		policy:    policy,
		publisher: publisher,
	}
}

// Handle executes the mark-student-progress command. The student identifier
// is taken as given: no account has to exist under it.
func (h *MarkStudentProgressHandler) Handle(ctx context.Context, cmd MarkStudentProgressCommand) (*MarkCompletedResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	session, err := identity.ActiveSession(ctx, h.sessions)
	if err != nil {
		return nil, shared.WrapError("progress", "MarkStudent", shared.ErrNoActiveSession, "login required", err)
	}
	if !h.policy.Allows(session.Role, identity.OpMarkStudentProgress) {
		return nil, shared.NewDomainError("progress", "MarkStudent", shared.ErrPermissionDenied, "only teachers can mark student progress")
	}

	student := strings.TrimSpace(cmd.StudentUsername)
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
		newly = l.Mark(student, courseID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if newly && h.publisher != nil {
		_ = h.publisher.Publish(shared.NewCourseCompletedEvent(student, courseID, session.Username))
	}

	return &MarkCompletedResult{Username: student, NewlyCompleted: newly}, nil
}
