// Package identity contains the user and session model of the learning hub.
// Credentials are stored and compared in plaintext: the platform is an offline,
// single-device deployment for rural classrooms and deliberately carries no
// authentication security layer.
package identity

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ══════════════════════════════════════════════════════════════════════════════
// VALUE OBJECTS
// ══════════════════════════════════════════════════════════════════════════════

// Username identifies a user. Usernames are unique across all roles.
type Username string

// IsValid checks that the username is non-blank after trimming.
func (u Username) IsValid() bool {
	return strings.TrimSpace(string(u)) != ""
}

// String returns the string form of the username.
func (u Username) String() string {
	return string(u)
}

// Role determines which operations a session may perform.
type Role string

const (
	// RoleStudent - a learner working through the catalog.
	RoleStudent Role = "student"
	// RoleTeacher - may mark student progress and post announcements.
	RoleTeacher Role = "teacher"
	// RoleParent - read-only view of progress.
	RoleParent Role = "parent"
	// RoleAdmin - may extend the course catalog and post announcements.
	RoleAdmin Role = "admin"
)

// IsValid checks that the role is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleParent, RoleAdmin:
		return true
	default:
		return false
	}
}

// CanAnnounce returns true if the role may post to the notification feed.
func (r Role) CanAnnounce() bool {
	return r == RoleTeacher || r == RoleAdmin
}

// String returns the string form of the role.
func (r Role) String() string {
	return string(r)
}

// ══════════════════════════════════════════════════════════════════════════════
// USER
// ══════════════════════════════════════════════════════════════════════════════

// User is a registered account. Users are created on first login with an
// unseen username and are never deleted.
type User struct {
	// Username is the unique account key.
	Username string `json:"username"`

	// Password is the plaintext credential supplied at registration.
	Password string `json:"password"`

	// Role is the role supplied at registration. Sessions may carry a
	// different role: the login flow accepts the role as given (see Session).
	Role Role `json:"role"`
}

// NewUser creates a user record after trimming its fields.
func NewUser(username, password string, role Role) (*User, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)

	if username == "" {
		return nil, ErrEmptyUsername
	}
	if password == "" {
		return nil, ErrEmptyPassword
	}
	if !role.IsValid() {
		return nil, ErrUnknownRole
	}

	return &User{
		Username: username,
		Password: password,
		Role:     role,
	}, nil
}

// CheckPassword compares the supplied password with the stored one.
// Plaintext comparison: authentication security is out of scope here.
func (u *User) CheckPassword(password string) bool {
	return u.Password == password
}

// ══════════════════════════════════════════════════════════════════════════════
// SESSION
// ══════════════════════════════════════════════════════════════════════════════

// Session is the currently active authenticated identity. Only one session is
// active at a time. The session role is the role supplied at login, which may
// differ from the role recorded at registration - the historical behavior of
// the platform, preserved deliberately.
type Session struct {
	// Token uniquely identifies this session.
	Token string `json:"token"`

	// Username of the authenticated user.
	Username string `json:"username"`

	// Role supplied at login.
	Role Role `json:"role"`

	// CreatedAt is when the session was opened.
	CreatedAt time.Time `json:"created_at"`

	// ExpiresAt is when the session stops being valid. Zero means no expiry.
	ExpiresAt time.Time `json:"expires_at"`
}

// NewSession opens a session for the given identity with the given lifetime.
// A non-positive ttl produces a session without expiry.
func NewSession(username string, role Role, ttl time.Duration) *Session {
	now := time.Now()
	s := &Session{
		Token:     uuid.New().String(),
		Username:  username,
		Role:      role,
		CreatedAt: now,
	}
	if ttl > 0 {
		s.ExpiresAt = now.Add(ttl)
	}
	return s
}

// IsExpired reports whether the session has passed its expiry.
func (s *Session) IsExpired(now time.Time) bool {
	if s.ExpiresAt.IsZero() {
		return false
	}
	return now.After(s.ExpiresAt)
}

// ══════════════════════════════════════════════════════════════════════════════
// DOMAIN ERRORS
// ══════════════════════════════════════════════════════════════════════════════

var (
	// ErrEmptyUsername - username blank after trimming.
	ErrEmptyUsername = errors.New("username cannot be empty")

	// ErrEmptyPassword - password blank after trimming.
	ErrEmptyPassword = errors.New("password cannot be empty")

	// ErrUnknownRole - role is not one of student/teacher/parent/admin.
	ErrUnknownRole = errors.New("unknown role")

	// ErrSessionExpired - the persisted session token is past its TTL.
	ErrSessionExpired = errors.New("session expired")
)
