package command

import (
	"context"
	"strings"

	"github.com/nabha-hub/nabha-learning-hub/internal/domain/shared"
	"github.com/nabha-hub/nabha-learning-hub/internal/domain/training"
)

// ══════════════════════════════════════════════════════════════════════════════
// ADD TRAINING COMMAND
// By policy the training registry is open: no session or role check here.
// ══════════════════════════════════════════════════════════════════════════════

// AddTrainingCommand appends a resource to the training registry.
type AddTrainingCommand struct {
	// Title is the display name of the resource.
	Title string

	// Link is the URI of the resource.
	Link string
}

// Validate validates the command.
func (c AddTrainingCommand) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return shared.ErrEmptyTrainingTitle
	}
	if strings.TrimSpace(c.Link) == "" {
		return shared.ErrEmptyTrainingLink
	}
	return nil
}

// AddTrainingHandler handles the AddTrainingCommand.
type AddTrainingHandler struct {
	trainings training.Repository
}

// NewAddTrainingHandler creates a new AddTrainingHandler.
func NewAddTrainingHandler(trainings training.Repository) *AddTrainingHandler {
	return &AddTrainingHandler{trainings: trainings}
}

// Handle executes the add-training command.
func (h *AddTrainingHandler) Handle(ctx context.Context, cmd AddTrainingCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.trainings.Update(ctx, func(r training.Registry) (training.Registry, error) {
		return r.Add(cmd.Title, cmd.Link)
	})
}
