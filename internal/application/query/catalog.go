// Package query contains read operations (CQRS - Queries).
package query

import (
	"context"

	"github.com/nabha-hub/nabha-learning-hub/internal/domain/catalog"
)

// ══════════════════════════════════════════════════════════════════════════════
// CATALOG QUERIES
// ══════════════════════════════════════════════════════════════════════════════

// ListCoursesHandler returns the course catalog in creation order.
type ListCoursesHandler struct {
	catalog catalog.Repository
}

// NewListCoursesHandler creates a new ListCoursesHandler.
func NewListCoursesHandler(catalogRepo catalog.Repository) *ListCoursesHandler {
	return &ListCoursesHandler{catalog: catalogRepo}
}

// Handle returns all courses.
func (h *ListCoursesHandler) Handle(ctx context.Context) ([]catalog.Course, error) {
	cat, err := h.catalog.Get(ctx)
	if err != nil {
		return nil, err
	}
	return cat.List(), nil
}
