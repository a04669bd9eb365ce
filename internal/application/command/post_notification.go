package command

import (
	"context"
	"strings"
	"time"

	"github.com/nabha-hub/nabha-learning-hub/internal/domain/identity"
	"github.com/nabha-hub/nabha-learning-hub/internal/domain/notification"
	"github.com/nabha-hub/nabha-learning-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// POST NOTIFICATION COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// PostNotificationCommand posts an announcement to the feed.
type PostNotificationCommand struct {
	// Text is the announcement body.
	Text string
}

// Validate validates the command.
func (c PostNotificationCommand) Validate() error {
	if strings.TrimSpace(c.Text) == "" {
		return shared.ErrEmptyNotification
	}
	return nil
}

// PostNotificationHandler handles the PostNotificationCommand.
type PostNotificationHandler struct {
	feed     notification.Repository
	sessions identity.SessionRepository
	policy   identity.Policy
}

// NewPostNotificationHandler creates a new PostNotificationHandler.
func NewPostNotificationHandler(
	feed notification.Repository,
	sessions identity.SessionRepository,
	policy identity.Policy,
) *PostNotificationHandler {
	return &PostNotificationHandler{feed: feed, sessions: sessions, policy: policy}
}

// Handle executes the post command. Teachers and admins only.
func (h *PostNotificationHandler) Handle(ctx context.Context, cmd PostNotificationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	session, err := identity.ActiveSession(ctx, h.sessions)
	if err != nil {
		return shared.WrapError("notification", "Post", shared.ErrNoActiveSession, "login required", err)
	}
	if !h.policy.Allows(session.Role, identity.OpPostAnnouncement) {
		return shared.ErrNotAnnouncer
	}

	return h.feed.Update(ctx, func(f notification.Feed) (notification.Feed, error) {
		return f.Post(cmd.Text, session.Username, time.Now())
	})
}
