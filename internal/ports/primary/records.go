package primary

import (
	"context"

	"github.com/example/commandcenter/internal/models"
)

// DirectiveService defines the primary port for chairman directives.
type DirectiveService interface {
	ListDirectives(ctx context.Context) ([]*models.Directive, error)
	CreateDirective(ctx context.Context, req CreateDirectiveRequest) (*models.Directive, error)
	// UpdateDirectiveStatus returns records.ErrNotFound for an unknown id.
	UpdateDirectiveStatus(ctx context.Context, id, status string) (*models.Directive, error)
}

// CreateDirectiveRequest contains parameters for creating a directive.
type CreateDirectiveRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Project     string `json:"project"`
	Status      string `json:"status" validate:"omitempty,oneof=New Acknowledged 'In Progress' Done"`
	Priority    string `json:"priority" validate:"omitempty,oneof=P1 P2 P3 P4"`
	CreatedBy   string `json:"createdBy"`
}

// FeatureRequestService defines the primary port for feature requests.
type FeatureRequestService interface {
	ListFeatureRequests(ctx context.Context) ([]*models.FeatureRequest, error)
	CreateFeatureRequest(ctx context.Context, req CreateFeatureRequest) (*models.FeatureRequest, error)
	// UpdateFeatureRequest sets the status and, when convertToTask is set,
	// adds a manual task to the kanban board.
	UpdateFeatureRequest(ctx context.Context, req UpdateFeatureRequest) (*models.FeatureRequest, error)
}

// CreateFeatureRequest contains parameters for proposing a feature.
type CreateFeatureRequest struct {
	Project     string `json:"project"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Priority    string `json:"priority" validate:"omitempty,oneof=P1 P2 P3 P4"`
	Requester   string `json:"requester"`
	Status      string `json:"status" validate:"omitempty,oneof=pending approved rejected converted"`
}

// UpdateFeatureRequest contains parameters for updating a feature request.
type UpdateFeatureRequest struct {
	ID            string `json:"id" validate:"required"`
	Status        string `json:"status" validate:"required"`
	ConvertToTask bool   `json:"convertToTask"`
}

// RecoveredTaskService defines the primary port for recovered tasks.
type RecoveredTaskService interface {
	ListRecoveredTasks(ctx context.Context) ([]*models.RecoveredTask, error)
	// UpdateRecoveredTaskStatus returns records.ErrNotFound for an unknown id.
	UpdateRecoveredTaskStatus(ctx context.Context, id, status string) (*models.RecoveredTask, error)
}
