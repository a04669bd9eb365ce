// Package shared contains common domain types, errors, events, and value objects
// that are used across all domain packages. This package has zero external dependencies.
package shared

import (
	"errors"
	"fmt"
)

// Base domain errors that can be used for error checking with errors.Is().
var (
	// Entity errors
	ErrNotFound      = errors.New("entity not found")
	ErrAlreadyExists = errors.New("entity already exists")
	ErrInvalidEntity = errors.New("invalid entity")

	// Validation errors
	ErrValidation   = errors.New("validation error")
	ErrInvalidID    = errors.New("invalid ID")
	ErrInvalidInput = errors.New("invalid input")
	ErrEmptyInput   = errors.New("input cannot be empty")

	// State errors
	ErrInvalidState    = errors.New("invalid state")
	ErrStateTransition = errors.New("invalid state transition")
	ErrExpired         = errors.New("expired")

	// Authorization errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrNoActiveSession    = errors.New("no active session")

	// Storage errors
	ErrStorage                = errors.New("storage error")
	ErrConcurrentModification = errors.New("concurrent modification detected")
)

// DomainError represents a domain-specific error with context.
type DomainError struct {
	Domain  string // e.g., "identity", "catalog", "quiz"
	Op      string // Operation that failed, e.g., "Authenticate", "AddCourse"
	Kind    error  // Base error type for errors.Is() checking
	Message string // Human-readable message
	Err     error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s.%s: %s: %v", e.Domain, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s.%s: %s", e.Domain, e.Op, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap().
func (e *DomainError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is implements errors.Is() matching.
func (e *DomainError) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	if e.Err != nil && errors.Is(e.Err, target) {
		return true
	}
	return false
}

// NewDomainError creates a new domain error.
func NewDomainError(domain, op string, kind error, message string) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
	}
}

// WrapError wraps an existing error with domain context.
func WrapError(domain, op string, kind error, message string, err error) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// Identity domain errors
var (
	ErrWrongPassword  = NewDomainError("identity", "Authenticate", ErrInvalidCredentials, "incorrect password")
	ErrInvalidRole    = NewDomainError("identity", "Validate", ErrInvalidInput, "unknown role")
	ErrSessionExpired = NewDomainError("identity", "CurrentSession", ErrExpired, "session expired")
	ErrEmptyUsername  = NewDomainError("identity", "Validate", ErrEmptyInput, "username cannot be empty")
	ErrEmptyPassword  = NewDomainError("identity", "Validate", ErrEmptyInput, "password cannot be empty")
)

// Catalog domain errors
var (
	ErrCourseNotFound  = NewDomainError("catalog", "Find", ErrNotFound, "course not found")
	ErrEmptyCourseName = NewDomainError("catalog", "Validate", ErrEmptyInput, "course name cannot be empty")
	ErrEmptyCourseLink = NewDomainError("catalog", "Validate", ErrEmptyInput, "course link cannot be empty")
)

// Quiz domain errors
var (
	ErrNoQuestionsForSubject = NewDomainError("quiz", "Start", ErrNotFound, "no questions available for this subject")
	ErrQuizNotActive         = NewDomainError("quiz", "Submit", ErrInvalidState, "no quiz in progress")
)

// Notification domain errors
var (
	ErrEmptyNotification = NewDomainError("notification", "Post", ErrEmptyInput, "announcement text cannot be empty")
	ErrNotAnnouncer      = NewDomainError("notification", "Post", ErrPermissionDenied, "only teachers or admins can post announcements")
)

// Training domain errors
var (
	ErrEmptyTrainingTitle = NewDomainError("training", "Add", ErrEmptyInput, "training title cannot be empty")
	ErrEmptyTrainingLink  = NewDomainError("training", "Add", ErrEmptyInput, "training link cannot be empty")
)

// IsNotFound checks if the error is a "not found" error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation checks if the error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidID) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrEmptyInput)
}

// IsPermission checks if the error is an authorization failure.
func IsPermission(err error) bool {
	return errors.Is(err, ErrPermissionDenied) ||
		errors.Is(err, ErrInvalidCredentials)
}
