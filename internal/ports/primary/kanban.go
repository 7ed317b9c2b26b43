package primary

import (
	"context"

	"github.com/example/commandcenter/internal/core/kanban"
	"github.com/example/commandcenter/internal/models"
)

// KanbanService defines the primary port for the kanban board.
type KanbanService interface {
	// Sync merges the note documents and live agents into the store and
	// returns the resulting board.
	Sync(ctx context.Context) (*KanbanBoard, error)

	// Board returns the stored board without syncing.
	Board(ctx context.Context) (*KanbanBoard, error)

	// Apply performs one mutation and returns the full task list afterwards.
	Apply(ctx context.Context, m KanbanMutation) (*KanbanMutationResult, error)

	// Subscribe registers for board updates. The returned func unsubscribes.
	Subscribe() (<-chan *KanbanBoard, func())
}

// KanbanBoard is the read payload of the board.
type KanbanBoard struct {
	Tasks         []*models.KanbanTask      `json:"tasks"`
	Columns       []kanban.Column           `json:"columns"`
	ProjectColors map[models.Project]string `json:"projectColors"`
}

// Mutation actions.
const (
	ActionMove   = "move"
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// KanbanMutation is a single write request. Which fields are read depends on Action.
type KanbanMutation struct {
	Action string `validate:"required,oneof=move create update delete"`

	// move
	TaskID    string
	NewStatus models.Status

	// update and delete
	ID      string
	Updates kanban.Patch

	// create
	Create CreateKanbanTaskRequest
}

// CreateKanbanTaskRequest contains parameters for creating a manual task.
// Empty optional fields take their defaults.
type CreateKanbanTaskRequest struct {
	Title       string          `validate:"required,max=300"`
	Status      models.Status   `validate:"omitempty,oneof=backlog inprogress done"`
	Priority    models.Priority `validate:"omitempty,oneof=high medium low"`
	Project     models.Project  `validate:"omitempty,oneof=LessonCraft 'JD Gallery' Infrastructure Content Other"`
	Owner       string          `validate:"max=100"`
	Description string
	Tags        []string `validate:"dive,required"`
}

// KanbanMutationResult is the write response.
type KanbanMutationResult struct {
	Success bool                 `json:"success"`
	Tasks   []*models.KanbanTask `json:"tasks"`
	// Task is the created or changed task, nil for no-ops and deletes.
	Task *models.KanbanTask `json:"-"`
	// Changed is false when the mutation named a missing or protected task.
	Changed bool `json:"-"`
}
