// Package quiz contains the multiple-choice quiz state machine.
// An attempt moves Idle -> InProgress -> Finished; starting a new quiz always
// resets whatever state came before.
package quiz

import (
	"errors"
)

// ══════════════════════════════════════════════════════════════════════════════
// QUESTIONS
// ══════════════════════════════════════════════════════════════════════════════

// Question is a single multiple-choice question. Answer is the canonical
// correct option, compared to submissions by exact string equality.
type Question struct {
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
	Answer  string   `json:"answer"`
}

// Bank maps subject -> question set. The bank is the master copy: attempts
// always work on a defensive copy so the bank is never mutated mid-quiz.
type Bank map[string][]Question

// Subjects returns the subjects that have at least one question.
func (b Bank) Subjects() []string {
	subjects := make([]string, 0, len(b))
	for s, qs := range b {
		if len(qs) > 0 {
			subjects = append(subjects, s)
		}
	}
	return subjects
}

// Questions returns a copy of the subject's question set, or nil if the
// subject is unknown or empty.
func (b Bank) Questions(subject string) []Question {
	qs := b[subject]
	if len(qs) == 0 {
		return nil
	}
	out := make([]Question, len(qs))
	copy(out, qs)
	return out
}

// DefaultBank returns the platform's built-in question sets.
func DefaultBank() Bank {
	return Bank{
		"math":      {{Prompt: "5+3=?", Options: []string{"6", "8", "9"}, Answer: "8"}},
		"science":   {{Prompt: "Red Planet?", Options: []string{"Earth", "Mars"}, Answer: "Mars"}},
		"english":   {{Prompt: "Plural of 'child'?", Options: []string{"Childs", "Children"}, Answer: "Children"}},
		"gk":        {{Prompt: "National bird of India?", Options: []string{"Peacock", "Parrot"}, Answer: "Peacock"}},
		"history":   {{Prompt: "Who was first President of India?", Options: []string{"Rajendra Prasad", "Nehru"}, Answer: "Rajendra Prasad"}},
		"geography": {{Prompt: "Largest ocean?", Options: []string{"Atlantic", "Pacific"}, Answer: "Pacific"}},
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// STATE MACHINE
// ══════════════════════════════════════════════════════════════════════════════

// State is the lifecycle state of an attempt.
type State string

const (
	// StateIdle - no quiz started yet.
	StateIdle State = "idle"
	// StateInProgress - questions are being answered.
	StateInProgress State = "in_progress"
	// StateFinished - all questions answered, result available.
	StateFinished State = "finished"
)

// Attempt is one run through a subject's question set. The attempt lives in
// memory for the duration of the process, like the session it belongs to.
type Attempt struct {
	state     State
	subject   string
	questions []Question
	index     int
	score     int
}

// NewAttempt returns an attempt in the Idle state.
func NewAttempt() *Attempt {
	return &Attempt{state: StateIdle}
}

// Start begins a quiz for the subject, taking a defensive copy of the bank's
// question set. It resets index and score, and it resets any prior state:
// restarting mid-quiz abandons the old run.
// Returns ErrNoQuestions if the subject is unknown or has zero questions.
func (a *Attempt) Start(bank Bank, subject string) error {
	questions := bank.Questions(subject)
	if len(questions) == 0 {
		return ErrNoQuestions
	}

	a.state = StateInProgress
	a.subject = subject
	a.questions = questions
	a.index = 0
	a.score = 0
	return nil
}

// Submit answers the current question. Valid only in InProgress; the score
// grows on an exact match with the canonical answer, and the index advances.
// Reaching the end of the question set transitions to Finished.
// It returns whether the answer was correct.
func (a *Attempt) Submit(choice string) (correct bool, err error) {
	if a.state != StateInProgress {
		return false, ErrNotInProgress
	}

	correct = choice == a.questions[a.index].Answer
	if correct {
		a.score++
	}
	a.index++

	if a.index >= len(a.questions) {
		a.state = StateFinished
	}
	return correct, nil
}

// State returns the current lifecycle state.
func (a *Attempt) State() State {
	return a.state
}

// Subject returns the subject of the current run, or "" in Idle.
func (a *Attempt) Subject() string {
	return a.subject
}

// Current returns the question awaiting an answer.
// Returns nil outside InProgress.
func (a *Attempt) Current() *Question {
	if a.state != StateInProgress {
		return nil
	}
	q := a.questions[a.index]
	return &q
}

// Index returns the zero-based position of the current question.
func (a *Attempt) Index() int {
	return a.index
}

// Score returns the number of correct answers so far.
func (a *Attempt) Score() int {
	return a.score
}

// Total returns the number of questions in the run.
func (a *Attempt) Total() int {
	return len(a.questions)
}

// IsPerfect reports whether every question was answered correctly.
// Meaningful only in Finished.
func (a *Attempt) IsPerfect() bool {
	return len(a.questions) > 0 && a.score == len(a.questions)
}

// ══════════════════════════════════════════════════════════════════════════════
// DOMAIN ERRORS
// ══════════════════════════════════════════════════════════════════════════════

var (
	// ErrNoQuestions - subject unknown or has an empty question set.
	ErrNoQuestions = errors.New("no questions available for this subject")

	// ErrNotInProgress - Submit called outside the InProgress state.
	ErrNotInProgress = errors.New("no quiz in progress")
)
