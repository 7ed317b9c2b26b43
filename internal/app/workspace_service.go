package app

import (
	"bytes"
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"go.uber.org/zap"

	"github.com/example/commandcenter/internal/models"
	"github.com/example/commandcenter/internal/ports/primary"
	"github.com/example/commandcenter/internal/ports/secondary"
)

// WorkspaceServiceImpl implements the WorkspaceService interface.
type WorkspaceServiceImpl struct {
	notes    secondary.NoteSource
	agents   secondary.AgentStatusSource
	projects secondary.ProjectRegistry
	markdown goldmark.Markdown
	logger   *zap.Logger
}

// NewWorkspaceService creates a new WorkspaceService with injected dependencies.
func NewWorkspaceService(
	notes secondary.NoteSource,
	agents secondary.AgentStatusSource,
	projects secondary.ProjectRegistry,
	logger *zap.Logger,
) *WorkspaceServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WorkspaceServiceImpl{
		notes:    notes,
		agents:   agents,
		projects: projects,
		markdown: goldmark.New(goldmark.WithExtensions(extension.GFM)),
		logger:   logger,
	}
}

// MemoryFiles lists the memory documents, rendering each to HTML on request.
func (s *WorkspaceServiceImpl) MemoryFiles(ctx context.Context, renderHTML bool) (*primary.MemorySummary, error) {
	files, err := s.notes.MemoryFiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read memory files: %w", err)
	}

	summary := &primary.MemorySummary{Files: files, Count: len(files)}
	if summary.Files == nil {
		summary.Files = []models.MemoryFile{}
	}
	for i := range summary.Files {
		summary.TotalSize += summary.Files[i].Size
		if !renderHTML {
			continue
		}
		var buf bytes.Buffer
		if err := s.markdown.Convert([]byte(summary.Files[i].Content), &buf); err != nil {
			s.logger.Warn("failed to render memory file", zap.String("path", summary.Files[i].Path), zap.Error(err))
			continue
		}
		summary.Files[i].HTML = buf.String()
	}
	return summary, nil
}

// Agents returns the agent roster.
func (s *WorkspaceServiceImpl) Agents(ctx context.Context) ([]models.Agent, error) {
	agents, err := s.agents.ListAgents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list agents: %w", err)
	}
	if agents == nil {
		agents = []models.Agent{}
	}
	return agents, nil
}

// Projects returns the project registry.
func (s *WorkspaceServiceImpl) Projects(ctx context.Context) ([]models.ProjectInfo, error) {
	projects, err := s.projects.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	if projects == nil {
		projects = []models.ProjectInfo{}
	}
	return projects, nil
}

// Ensure WorkspaceServiceImpl implements the interface
var _ primary.WorkspaceService = (*WorkspaceServiceImpl)(nil)
