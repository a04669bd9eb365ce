package command

import (
	"context"
	"strings"

	"github.com/nabha-hub/nabha-learning-hub/internal/domain/quiz"
	"github.com/nabha-hub/nabha-learning-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// START QUIZ COMMAND
// The attempt is in-memory session state shared with the submit handler;
// starting always resets whatever run came before.
// ══════════════════════════════════════════════════════════════════════════════

// StartQuizCommand begins a quiz for a subject.
type StartQuizCommand struct {
	// Subject selects the question set, e.g. "math".
	Subject string
}

// Validate validates the command.
func (c StartQuizCommand) Validate() error {
	if strings.TrimSpace(c.Subject) == "" {
		return shared.NewDomainError("quiz", "Start", shared.ErrEmptyInput, "subject cannot be empty")
	}
	return nil
}

// StartQuizResult carries the first question of the new run.
type StartQuizResult struct {
	// Subject of the run.
	Subject string

	// Question awaiting an answer.
	Question *quiz.Question

	// Total number of questions in the run.
	Total int
}

// StartQuizHandler handles the StartQuizCommand.
type StartQuizHandler struct {
	bank    quiz.Bank
	attempt *quiz.Attempt
}

// NewStartQuizHandler creates a new StartQuizHandler. The attempt must be the
// same instance the submit handler holds.
func NewStartQuizHandler(bank quiz.Bank, attempt *quiz.Attempt) *StartQuizHandler {
	return &StartQuizHandler{bank: bank, attempt: attempt}
}

// Handle executes the start-quiz command.
func (h *StartQuizHandler) Handle(_ context.Context, cmd StartQuizCommand) (*StartQuizResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	subject := strings.TrimSpace(cmd.Subject)
	if err := h.attempt.Start(h.bank, subject); err != nil {
		return nil, shared.ErrNoQuestionsForSubject
	}

	return &StartQuizResult{
		Subject:  subject,
		Question: h.attempt.Current(),
		Total:    h.attempt.Total(),
	}, nil
}
