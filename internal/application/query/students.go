package query

import (
	"context"

	"github.com/nabha-hub/nabha-learning-hub/internal/domain/identity"
	"github.com/nabha-hub/nabha-learning-hub/internal/domain/progress"
)

// ══════════════════════════════════════════════════════════════════════════════
// STUDENT ROSTER QUERY
// Backs the teacher dashboard: every registered student with their completion
// count.
// ══════════════════════════════════════════════════════════════════════════════

// StudentSummary is one row of the teacher's roster.
type StudentSummary struct {
	// Username of the student.
	Username string

	// CompletedCount is how many courses the student has completed.
	CompletedCount int
}

// ListStudentsHandler returns the student roster.
type ListStudentsHandler struct {
	users    identity.Repository
	progress progress.Repository
}

// NewListStudentsHandler creates a new ListStudentsHandler.
func NewListStudentsHandler(users identity.Repository, progressRepo progress.Repository) *ListStudentsHandler {
	return &ListStudentsHandler{users: users, progress: progressRepo}
}

// Handle returns all registered students in registration order.
func (h *ListStudentsHandler) Handle(ctx context.Context) ([]StudentSummary, error) {
	students, err := h.users.ListByRole(ctx, identity.RoleStudent)
	if err != nil {
		return nil, err
	}

	ledger, err := h.progress.Get(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]StudentSummary, 0, len(students))
	for _, s := range students {
		out = append(out, StudentSummary{
			Username:       s.Username,
			CompletedCount: ledger.CompletedCount(s.Username),
		})
	}
	return out, nil
}
