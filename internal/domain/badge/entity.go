// Package badge contains the achievement ledger of the hub.
// Badges are permanent and idempotent: awarding a badge a user already holds
// is a no-op, and no badge is ever revoked. The ledger is trigger-agnostic -
// it only enforces duplicate-free membership; what earns a badge is decided
// by the event handlers in the application layer.
package badge

// Well-known badge names. The engine itself treats names opaquely.
const (
	// Welcome is awarded on every successful login (first one wins).
	Welcome = "Welcome Badge"

	// CourseFinisher is awarded on the first completed course.
	CourseFinisher = "Course Finisher"

	// QuizMaster is awarded for a perfect quiz score while logged in.
	QuizMaster = "Quiz Master"
)

// Ledger maps username -> badge names, duplicate-free, in award order.
// Persisted whole under the "badges" key.
type Ledger map[string][]string

// NewLedger returns an empty ledger.
func NewLedger() Ledger {
	return make(Ledger)
}

// Award adds the badge to the user's set. It returns true if the badge was
// newly added and false for the idempotent no-op.
func (l Ledger) Award(username, badge string) bool {
	if username == "" || badge == "" {
		return false
	}
	for _, b := range l[username] {
		if b == badge {
			return false
		}
	}
	l[username] = append(l[username], badge)
	return true
}

// Has reports whether the user holds the badge.
func (l Ledger) Has(username, badge string) bool {
	for _, b := range l[username] {
		if b == badge {
			return true
		}
	}
	return false
}

// Badges returns a copy of the user's badges in award order.
func (l Ledger) Badges(username string) []string {
	badges := l[username]
	if len(badges) == 0 {
		return nil
	}
	out := make([]string, len(badges))
	copy(out, badges)
	return out
}
