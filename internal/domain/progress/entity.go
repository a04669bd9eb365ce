// Package progress contains the per-user course completion ledger.
//
// Historically the platform kept one global flag set shared by whichever user
// was logged in, plus a separate teacher-maintained map that was never
// reconciled with it. The ledger here is the redesigned single source of
// truth: completion is keyed by (username, courseID) and both the
// self-service and the teacher-assisted flows write the same aggregate.
package progress

import (
	"sort"
)

// Ledger maps username -> courseID -> completed. Persisted whole under the
// "progress" key.
type Ledger map[string]map[string]bool

// NewLedger returns an empty ledger.
func NewLedger() Ledger {
	return make(Ledger)
}

// Mark sets the completion flag for the given user and course.
// It returns true if the flag was not already set.
func (l Ledger) Mark(username, courseID string) bool {
	if l[username] == nil {
		l[username] = make(map[string]bool)
	}
	if l[username][courseID] {
		return false
	}
	l[username][courseID] = true
	return true
}

// Completed reports whether the user has completed the course.
func (l Ledger) Completed(username, courseID string) bool {
	return l[username][courseID]
}

// CompletedCourses returns the ids of the user's completed courses, sorted
// for deterministic output.
func (l Ledger) CompletedCourses(username string) []string {
	flags := l[username]
	if len(flags) == 0 {
		return nil
	}

	ids := make([]string, 0, len(flags))
	for id, done := range flags {
		if done {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// CompletedCount returns how many courses the user has completed.
func (l Ledger) CompletedCount(username string) int {
	var n int
	for _, done := range l[username] {
		if done {
			n++
		}
	}
	return n
}
