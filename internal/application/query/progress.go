package query

import (
	"context"

	"github.com/nabha-hub/nabha-learning-hub/internal/domain/catalog"
	"github.com/nabha-hub/nabha-learning-hub/internal/domain/progress"
)

// ══════════════════════════════════════════════════════════════════════════════
// PROGRESS QUERIES
// ══════════════════════════════════════════════════════════════════════════════

// CompletedCourse is a completed course resolved against the catalog.
type CompletedCourse struct {
	// ID of the course.
	ID string

	// Name from the catalog; falls back to the id when the course is
	// unknown (a teacher can mark ids the catalog never had).
	Name string
}

// CompletedCoursesHandler returns a user's completed courses with names
// resolved against the catalog. The certificate view consumes this directly.
type CompletedCoursesHandler struct {
	progress progress.Repository
	catalog  catalog.Repository
}

// NewCompletedCoursesHandler creates a new CompletedCoursesHandler.
func NewCompletedCoursesHandler(progressRepo progress.Repository, catalogRepo catalog.Repository) *CompletedCoursesHandler {
	return &CompletedCoursesHandler{progress: progressRepo, catalog: catalogRepo}
}

// Handle returns the user's completed courses, sorted by course id.
func (h *CompletedCoursesHandler) Handle(ctx context.Context, username string) ([]CompletedCourse, error) {
	ledger, err := h.progress.Get(ctx)
	if err != nil {
		return nil, err
	}

	ids := ledger.CompletedCourses(username)
	if len(ids) == 0 {
		return nil, nil
	}

	cat, err := h.catalog.Get(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]CompletedCourse, 0, len(ids))
	for _, id := range ids {
		name := id
		if course := cat.Find(id); course != nil {
			name = course.Name
		}
		out = append(out, CompletedCourse{ID: id, Name: name})
	}
	return out, nil
}
