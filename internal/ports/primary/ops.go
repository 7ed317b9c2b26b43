package primary

import (
	"context"

	"github.com/example/commandcenter/internal/models"
)

// OpsService defines the primary port for agent gateway operations.
type OpsService interface {
	// ListSessions returns sessions parsed from the gateway CLI.
	ListSessions(ctx context.Context) ([]models.Session, error)

	// ListCronJobs returns scheduled jobs from the gateway CLI.
	ListCronJobs(ctx context.Context) ([]models.CronJob, error)

	// Status aggregates sessions and cron jobs. Collaborator failures
	// leave the corresponding list empty rather than failing.
	Status(ctx context.Context) (*StatusSummary, error)

	// Spawn starts an agent on a task.
	Spawn(ctx context.Context, req SpawnRequest) (*SpawnResult, error)
}

// StatusSummary is the aggregated status payload.
type StatusSummary struct {
	Status    string                 `json:"status"`
	Sessions  []models.StatusSession `json:"sessions"`
	CronJobs  []models.StatusCronJob `json:"cronJobs"`
	Timestamp string                 `json:"timestamp"`
}

// SpawnRequest contains parameters for spawning an agent.
type SpawnRequest struct {
	Task  string `json:"task" validate:"required"`
	Agent string `json:"agent" validate:"omitempty,max=64"`
}

// SpawnResult is the outcome of a spawn.
type SpawnResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Output  string `json:"output"`
	Task    string `json:"task"`
}
