// Package eventhandler contains the subscribers that react to domain events.
// Badge awarding lives here: the badge ledger itself is trigger-agnostic, and
// these handlers encode which event earns which badge.
package eventhandler

import (
	"context"
	"log/slog"

	"github.com/nabha-hub/nabha-learning-hub/internal/domain/badge"
	"github.com/nabha-hub/nabha-learning-hub/internal/domain/shared"
)

// BadgeAwarder awards badges in response to domain events. Awards are
// idempotent: re-delivery of an event never duplicates a badge, and only a
// first-time award emits a BadgeAwardedEvent.
type BadgeAwarder struct {
	badges    badge.Repository
	publisher shared.EventPublisher
	logger    *slog.Logger
}

// NewBadgeAwarder creates a new BadgeAwarder.
func NewBadgeAwarder(badges badge.Repository, publisher shared.EventPublisher, logger *slog.Logger) *BadgeAwarder {
	if logger == nil {
		logger = slog.Default()
	}
	return &BadgeAwarder{badges: badges, publisher: publisher, logger: logger}
}

// Register subscribes the awarder's handlers on the bus.
func (a *BadgeAwarder) Register(bus shared.EventSubscriber) error {
	if err := bus.Subscribe(shared.EventUserLoggedIn, a.OnUserLoggedIn); err != nil {
		return err
	}
	if err := bus.Subscribe(shared.EventCourseCompleted, a.OnCourseCompleted); err != nil {
		return err
	}
	return bus.Subscribe(shared.EventQuizFinished, a.OnQuizFinished)
}

// OnUserLoggedIn awards the Welcome Badge on every login; the ledger makes
// repeat logins a no-op.
func (a *BadgeAwarder) OnUserLoggedIn(event shared.Event) error {
	e, ok := event.(shared.UserLoggedInEvent)
	if !ok {
		return nil
	}
	return a.award(e.Username, badge.Welcome)
}

// OnCourseCompleted awards Course Finisher for self-service completion only.
// Teacher-assisted marking records progress without the badge.
func (a *BadgeAwarder) OnCourseCompleted(event shared.Event) error {
	e, ok := event.(shared.CourseCompletedEvent)
	if !ok {
		return nil
	}
	if !e.SelfService() {
		return nil
	}
	return a.award(e.Username, badge.CourseFinisher)
}

// OnQuizFinished awards Quiz Master for a perfect score by a logged-in user.
// Guest runs never earn badges: there is no account to pin them to.
func (a *BadgeAwarder) OnQuizFinished(event shared.Event) error {
	e, ok := event.(shared.QuizFinishedEvent)
	if !ok {
		return nil
	}
	if e.Username == "" || !e.IsPerfect() {
		return nil
	}
	return a.award(e.Username, badge.QuizMaster)
}

func (a *BadgeAwarder) award(username, name string) error {
	var newly bool
	err := a.badges.Update(context.Background(), func(l badge.Ledger) error {
		newly = l.Award(username, name)
		return nil
	})
	if err != nil {
		a.logger.Error("badge award failed",
			slog.String("username", username),
			slog.String("badge", name),
			slog.String("error", err.Error()))
		return err
	}

	if newly {
		a.logger.Info("badge awarded",
			slog.String("username", username),
			slog.String("badge", name))
		if a.publisher != nil {
			_ = a.publisher.Publish(shared.NewBadgeAwardedEvent(username, name))
		}
	}
	return nil
}
