// Package notification contains the announcement feed of the hub.
// The feed is append-at-front: entries are stored most-recent-first and the
// history grows without bound.
package notification

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Notification is one posted announcement.
type Notification struct {
	// ID uniquely identifies the entry.
	ID string `json:"id"`

	// Text is the announcement body.
	Text string `json:"text"`

	// Author is the username of the poster.
	Author string `json:"author"`

	// PostedAt is when the announcement was posted.
	PostedAt time.Time `json:"posted_at"`
}

// Feed is the announcement list, most-recent-first. Persisted whole under the
// "notifications" key.
type Feed []Notification

// NewFeed returns an empty feed.
func NewFeed() Feed {
	return Feed{}
}

// Post prepends a new announcement. Text must be non-blank after trimming.
func (f Feed) Post(text, author string, now time.Time) (Feed, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return f, ErrEmptyText
	}

	entry := Notification{
		ID:       uuid.New().String(),
		Text:     text,
		Author:   author,
		PostedAt: now,
	}
	return append(Feed{entry}, f...), nil
}

// List returns the feed in stored order, unmodified, as a copy.
func (f Feed) List() []Notification {
	if len(f) == 0 {
		return nil
	}
	out := make([]Notification, len(f))
	copy(out, f)
	return out
}

// Domain errors.
var (
	// ErrEmptyText - announcement blank after trimming.
	ErrEmptyText = errors.New("announcement text cannot be empty")
)
