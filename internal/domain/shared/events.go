// Package shared contains common domain types, errors, events, and value objects
// that are used across all domain packages.
package shared

import (
	"time"
)

// EventType represents the type of domain event.
type EventType string

// Domain event types - these drive the event-driven architecture.
// Each event represents something significant that happened in the domain.
const (
	// Identity events
	EventUserRegistered EventType = "identity.registered"
	EventUserLoggedIn   EventType = "identity.logged_in"
	EventUserLoggedOut  EventType = "identity.logged_out"

	// Catalog events
	EventCourseAdded EventType = "catalog.course_added"

	// Progress events
	EventCourseCompleted EventType = "progress.course_completed"
	EventProgressMarked  EventType = "progress.marked_by_teacher"

	// Quiz events
	EventQuizStarted  EventType = "quiz.started"
	EventQuizFinished EventType = "quiz.finished"

	// Leaderboard events
	EventScoreRecorded EventType = "leaderboard.score_recorded"

	// Badge events
	EventBadgeAwarded EventType = "badge.awarded"

	// Notification events
	EventAnnouncementPosted EventType = "notification.posted"
)

// Event is the base interface for all domain events.
type Event interface {
	// EventType returns the type of the event.
	EventType() EventType

	// OccurredAt returns when the event occurred.
	OccurredAt() time.Time

	// AggregateID returns the ID of the aggregate that produced this event.
	AggregateID() string

	// Payload returns the event data as a map for serialization.
	Payload() map[string]interface{}
}

// BaseEvent provides common event functionality.
type BaseEvent struct {
	Type        EventType `json:"type"`
	Timestamp   time.Time `json:"timestamp"`
	AggregateId string    `json:"aggregate_id"`
	Version     int       `json:"version"`
}

// EventType implements Event interface.
func (e BaseEvent) EventType() EventType {
	return e.Type
}

// OccurredAt implements Event interface.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// AggregateID implements Event interface.
func (e BaseEvent) AggregateID() string {
	return e.AggregateId
}

// NewBaseEvent creates a new base event.
func NewBaseEvent(eventType EventType, aggregateID string) BaseEvent {
	return BaseEvent{
		Type:        eventType,
		Timestamp:   time.Now(),
		AggregateId: aggregateID,
		Version:     1,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Identity Events
// ═══════════════════════════════════════════════════════════════════════════

// UserLoggedInEvent is emitted on every successful authentication.
// IsNewUser distinguishes first-time registration from a returning login.
type UserLoggedInEvent struct {
	BaseEvent
	Username  string `json:"username"`
	Role      string `json:"role"`
	IsNewUser bool   `json:"is_new_user"`
}

// Payload implements Event interface.
func (e UserLoggedInEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"username":    e.Username,
		"role":        e.Role,
		"is_new_user": e.IsNewUser,
	}
}

// NewUserLoggedInEvent creates a new UserLoggedInEvent.
func NewUserLoggedInEvent(username, role string, isNewUser bool) UserLoggedInEvent {
	return UserLoggedInEvent{
		BaseEvent: NewBaseEvent(EventUserLoggedIn, username),
		Username:  username,
		Role:      role,
		IsNewUser: isNewUser,
	}
}

// UserLoggedOutEvent is emitted when the active session is cleared by an
// explicit logout. Expiry does not emit it.
type UserLoggedOutEvent struct {
	BaseEvent
	Username string `json:"username"`
}

// Payload implements Event interface.
func (e UserLoggedOutEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"username": e.Username,
	}
}

// NewUserLoggedOutEvent creates a new UserLoggedOutEvent.
func NewUserLoggedOutEvent(username string) UserLoggedOutEvent {
	return UserLoggedOutEvent{
		BaseEvent: NewBaseEvent(EventUserLoggedOut, username),
		Username:  username,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Catalog Events
// ═══════════════════════════════════════════════════════════════════════════

// CourseAddedEvent is emitted when an admin adds a new course.
type CourseAddedEvent struct {
	BaseEvent
	CourseID string `json:"course_id"`
	Name     string `json:"name"`
	AddedBy  string `json:"added_by"`
}

// Payload implements Event interface.
func (e CourseAddedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"course_id": e.CourseID,
		"name":      e.Name,
		"added_by":  e.AddedBy,
	}
}

// NewCourseAddedEvent creates a new CourseAddedEvent.
func NewCourseAddedEvent(courseID, name, addedBy string) CourseAddedEvent {
	return CourseAddedEvent{
		BaseEvent: NewBaseEvent(EventCourseAdded, courseID),
		CourseID:  courseID,
		Name:      name,
		AddedBy:   addedBy,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Progress Events
// ═══════════════════════════════════════════════════════════════════════════

// CourseCompletedEvent is emitted when a course is marked completed for a user,
// either self-service or teacher-assisted.
type CourseCompletedEvent struct {
	BaseEvent
	Username string `json:"username"`
	CourseID string `json:"course_id"`
	MarkedBy string `json:"marked_by"` // who performed the marking
}

// Payload implements Event interface.
func (e CourseCompletedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"username":  e.Username,
		"course_id": e.CourseID,
		"marked_by": e.MarkedBy,
	}
}

// SelfService reports whether the user marked their own progress.
func (e CourseCompletedEvent) SelfService() bool {
	return e.Username == e.MarkedBy
}

// NewCourseCompletedEvent creates a new CourseCompletedEvent.
func NewCourseCompletedEvent(username, courseID, markedBy string) CourseCompletedEvent {
	return CourseCompletedEvent{
		BaseEvent: NewBaseEvent(EventCourseCompleted, username),
		Username:  username,
		CourseID:  courseID,
		MarkedBy:  markedBy,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Quiz Events
// ═══════════════════════════════════════════════════════════════════════════

// QuizFinishedEvent is emitted when an attempt reaches the Finished state.
// Username is empty for guest attempts.
type QuizFinishedEvent struct {
	BaseEvent
	Subject     string `json:"subject"`
	Username    string `json:"username,omitempty"`
	DisplayName string `json:"display_name"`
	Score       int    `json:"score"`
	Total       int    `json:"total"`
}

// Payload implements Event interface.
func (e QuizFinishedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"subject":      e.Subject,
		"username":     e.Username,
		"display_name": e.DisplayName,
		"score":        e.Score,
		"total":        e.Total,
	}
}

// IsPerfect reports whether every question was answered correctly.
func (e QuizFinishedEvent) IsPerfect() bool {
	return e.Total > 0 && e.Score == e.Total
}

// NewQuizFinishedEvent creates a new QuizFinishedEvent.
func NewQuizFinishedEvent(subject, username, displayName string, score, total int) QuizFinishedEvent {
	return QuizFinishedEvent{
		BaseEvent:   NewBaseEvent(EventQuizFinished, subject),
		Subject:     subject,
		Username:    username,
		DisplayName: displayName,
		Score:       score,
		Total:       total,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Badge Events
// ═══════════════════════════════════════════════════════════════════════════

// BadgeAwardedEvent is emitted when a badge is newly added to a user's ledger.
// No event is emitted for idempotent re-awards.
type BadgeAwardedEvent struct {
	BaseEvent
	Username string `json:"username"`
	Badge    string `json:"badge"`
}

// Payload implements Event interface.
func (e BadgeAwardedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"username": e.Username,
		"badge":    e.Badge,
	}
}

// NewBadgeAwardedEvent creates a new BadgeAwardedEvent.
func NewBadgeAwardedEvent(username, badge string) BadgeAwardedEvent {
	return BadgeAwardedEvent{
		BaseEvent: NewBaseEvent(EventBadgeAwarded, username),
		Username:  username,
		Badge:     badge,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Event Bus Interfaces
// ═══════════════════════════════════════════════════════════════════════════

// EventHandler is a function that handles an event.
type EventHandler func(event Event) error

// EventPublisher defines the interface for publishing events.
type EventPublisher interface {
	// Publish sends an event to subscribers.
	Publish(event Event) error
}

// EventSubscriber defines the interface for subscribing to events.
type EventSubscriber interface {
	// Subscribe registers a handler for an event type.
	Subscribe(eventType EventType, handler EventHandler) error

	// SubscribeAll registers a handler for all events.
	SubscribeAll(handler EventHandler) error
}

// EventBus combines publishing and subscribing.
type EventBus interface {
	EventPublisher
	EventSubscriber
}
