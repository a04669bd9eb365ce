// Package leaderboard contains the per-subject score history of the hub.
// Every insert keeps the subject's list sorted descending by score with a
// stable sort, so equal scores retain their insertion order. The history is
// never truncated: TopN is a read-only view over the full stored list.
package leaderboard

import (
	"errors"
	"sort"
	"strings"
)

// Entry is one recorded quiz result for a subject.
type Entry struct {
	// Name is the display name of whoever took the quiz. For logged-in
	// users this is the session username; guests supply a name.
	Name string `json:"name"`

	// Score is the number of correct answers.
	Score int `json:"score"`
}

// Board maps subject -> entries, sorted descending by score. Persisted whole
// under the "leaderboard" key.
type Board map[string][]Entry

// NewBoard returns an empty board.
func NewBoard() Board {
	return make(Board)
}

// Seed returns a board with the platform's default subjects present but empty,
// so the rendered leaderboard lists them from the first run.
func Seed() Board {
	b := NewBoard()
	for _, s := range []string{"math", "science", "english", "gk", "history", "geography"} {
		b[s] = nil
	}
	return b
}

// Record appends an entry for the subject and re-sorts the subject's list
// descending by score. sort.SliceStable keeps equal scores in insertion order.
func (b Board) Record(subject, name string, score int) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if score < 0 {
		return ErrNegativeScore
	}

	entries := append(b[subject], Entry{Name: name, Score: score})
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	b[subject] = entries
	return nil
}

// Top returns the first n entries of the subject's maintained list as a copy.
// It never mutates or truncates the stored history.
func (b Board) Top(subject string, n int) []Entry {
	entries := b[subject]
	if n <= 0 || len(entries) == 0 {
		return nil
	}
	if n > len(entries) {
		n = len(entries)
	}
	out := make([]Entry, n)
	copy(out, entries[:n])
	return out
}

// All returns a copy of the subject's full history.
func (b Board) All(subject string) []Entry {
	entries := b[subject]
	if len(entries) == 0 {
		return nil
	}
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// Subjects returns every subject on the board, sorted for deterministic
// rendering.
func (b Board) Subjects() []string {
	subjects := make([]string, 0, len(b))
	for s := range b {
		subjects = append(subjects, s)
	}
	sort.Strings(subjects)
	return subjects
}

// IsSorted reports whether the subject's list is descending by score.
// Used by tests to assert the board invariant.
func (b Board) IsSorted(subject string) bool {
	entries := b[subject]
	for i := 1; i < len(entries); i++ {
		if entries[i-1].Score < entries[i].Score {
			return false
		}
	}
	return true
}

// Domain errors.
var (
	// ErrEmptyName - entry name blank after trimming.
	ErrEmptyName = errors.New("leaderboard entry name cannot be empty")

	// ErrNegativeScore - scores are counts of correct answers.
	ErrNegativeScore = errors.New("score cannot be negative")
)
