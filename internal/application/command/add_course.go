package command

import (
	"context"
	"strings"

	"github.com/nabha-hub/nabha-learning-hub/internal/domain/catalog"
	"github.com/nabha-hub/nabha-learning-hub/internal/domain/identity"
	"github.com/nabha-hub/nabha-learning-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// ADD COURSE COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// AddCourseCommand appends a course to the catalog. Admin only.
type AddCourseCommand struct {
	// Name is the display name of the course.
	Name string

	// Link is the URI of the learning resource.
	Link string
}

// Validate validates the command.
func (c AddCourseCommand) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return shared.ErrEmptyCourseName
	}
	if strings.TrimSpace(c.Link) == "" {
		return shared.ErrEmptyCourseLink
	}
	return nil
}

// AddCourseHandler handles the AddCourseCommand.
type AddCourseHandler struct {
	catalog   catalog.Repository
	sessions  identity.SessionRepository
	policy    identity.Policy
	publisher shared.EventPublisher
}

// NewAddCourseHandler creates a new AddCourseHandler.
func NewAddCourseHandler(
	catalogRepo catalog.Repository,
	sessions identity.SessionRepository,
	policy identity.Policy,
	publisher shared.EventPublisher,
) *AddCourseHandler {
	return &AddCourseHandler{
		catalog:   catalogRepo,
		sessions:  sessions,
		policy:    policy,
		publisher: publisher,
	}
}

// Handle executes the add-course command. The caller must hold an active
// session with a role the policy allows for catalog changes.
func (h *AddCourseHandler) Handle(ctx context.Context, cmd AddCourseCommand) (*catalog.Course, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	session, err := identity.ActiveSession(ctx, h.sessions)
	if err != nil {
		return nil, shared.WrapError("catalog", "AddCourse", shared.ErrNoActiveSession, "login required", err)
	}
	if !h.policy.Allows(session.Role, identity.OpAddCourse) {
		return nil, shared.NewDomainError("catalog", "AddCourse", shared.ErrPermissionDenied, "only admins can add courses")
	}

	var added *catalog.Course
	err = h.catalog.Update(ctx, func(c *catalog.Catalog) error {
		course, err := c.Add(cmd.Name, cmd.Link)
		if err != nil {
			return err
		}
		added = course
		return nil
	})
	if err != nil {
		return nil, err
	}

	if h.publisher != nil {
		_ = h.publisher.Publish(shared.NewCourseAddedEvent(added.ID, added.Name, session.Username))
	}
	return added, nil
}
