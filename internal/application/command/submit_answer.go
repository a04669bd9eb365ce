package command

import (
	"context"
	"errors"
	"strings"

	"github.com/nabha-hub/nabha-learning-hub/internal/domain/identity"
	"github.com/nabha-hub/nabha-learning-hub/internal/domain/leaderboard"
	"github.com/nabha-hub/nabha-learning-hub/internal/domain/quiz"
	"github.com/nabha-hub/nabha-learning-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// SUBMIT ANSWER COMMAND
// Answers advance the shared attempt. When the run finishes, the result is
// recorded on the leaderboard under the session username, or under GuestName
// for anonymous runs; a blank guest name skips recording entirely.
// ══════════════════════════════════════════════════════════════════════════════

// SubmitAnswerCommand answers the current question of the active run.
type SubmitAnswerCommand struct {
	// Choice is the selected option, compared verbatim to the answer.
	Choice string

	// GuestName is the display name used when no session is active.
	GuestName string
}

// SubmitAnswerResult reports the outcome of one answer.
type SubmitAnswerResult struct {
	// Correct reports whether the choice matched.
	Correct bool

	// Finished reports whether the run is over.
	Finished bool

	// Next is the question awaiting an answer, nil when Finished.
	Next *quiz.Question

	// Score and Total describe the run so far; final values when Finished.
	Score int
	Total int

	// Recorded reports whether a leaderboard entry was written.
	Recorded bool
}

// SubmitAnswerHandler handles the SubmitAnswerCommand.
type SubmitAnswerHandler struct {
	attempt     *quiz.Attempt
	leaderboard leaderboard.Repository
	sessions    identity.SessionRepository
	publisher   shared.EventPublisher
}

// NewSubmitAnswerHandler creates a new SubmitAnswerHandler. The attempt must
// be the same instance the start handler holds.
func NewSubmitAnswerHandler(
	attempt *quiz.Attempt,
	leaderboardRepo leaderboard.Repository,
	sessions identity.SessionRepository,
	publisher shared.EventPublisher,
) *SubmitAnswerHandler {
	return &SubmitAnswerHandler{
		attempt:     attempt,
		leaderboard: leaderboardRepo,
		sessions:    sessions,
		publisher:   publisher,
	}
}

// Handle executes the submit-answer command.
func (h *SubmitAnswerHandler) Handle(ctx context.Context, cmd SubmitAnswerCommand) (*SubmitAnswerResult, error) {
	correct, err := h.attempt.Submit(cmd.Choice)
	if err != nil {
		return nil, shared.ErrQuizNotActive
	}

	result := &SubmitAnswerResult{
		Correct: correct,
		Score:   h.attempt.Score(),
		Total:   h.attempt.Total(),
	}

	if h.attempt.State() != quiz.StateFinished {
		result.Next = h.attempt.Current()
		return result, nil
	}
	result.Finished = true

	// Resolve the display name: session username wins over the guest name.
	var username, displayName string
	session, err := identity.ActiveSession(ctx, h.sessions)
	switch {
	case err == nil:
		username = session.Username
		displayName = session.Username
	case errors.Is(err, shared.ErrNoActiveSession) || errors.Is(err, identity.ErrSessionExpired):
		displayName = strings.TrimSpace(cmd.GuestName)
	default:
		return nil, err
	}

	if displayName != "" {
		err = h.leaderboard.Update(ctx, func(b leaderboard.Board) error {
			return b.Record(h.attempt.Subject(), displayName, h.attempt.Score())
		})
		if err != nil {
			return nil, err
		}
		result.Recorded = true
	}

	if h.publisher != nil {
		_ = h.publisher.Publish(shared.NewQuizFinishedEvent(
			h.attempt.Subject(), username, displayName, h.attempt.Score(), h.attempt.Total(),
		))
	}
	return result, nil
}
