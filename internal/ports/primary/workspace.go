package primary

import (
	"context"

	"github.com/example/commandcenter/internal/models"
)

// WorkspaceService defines the primary port for read-only workspace views:
// memory files, the agent roster and the project registry.
type WorkspaceService interface {
	// MemoryFiles returns memory documents, most recently modified first.
	MemoryFiles(ctx context.Context, renderHTML bool) (*MemorySummary, error)

	// Agents returns the agent roster.
	Agents(ctx context.Context) ([]models.Agent, error)

	// Projects returns the project registry.
	Projects(ctx context.Context) ([]models.ProjectInfo, error)
}

// MemorySummary is the memory listing payload.
type MemorySummary struct {
	Files     []models.MemoryFile `json:"files"`
	Count     int                 `json:"count"`
	TotalSize int64               `json:"totalSize"`
}
