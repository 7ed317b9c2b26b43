package agentfeed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/example/commandcenter/internal/models"
	"github.com/example/commandcenter/internal/ports/secondary"
)

// RosterSource implements secondary.AgentStatusSource over a local JSON file
// of the form {"agents": [...]}. Without the file it serves DefaultRoster.
type RosterSource struct {
	path string
	now  func() time.Time
}

// NewRosterSource creates a source for the roster file at path.
func NewRosterSource(path string) *RosterSource {
	return &RosterSource{path: path, now: time.Now}
}

// ListAgents reads the roster.
func (s *RosterSource) ListAgents(ctx context.Context) ([]models.Agent, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultRoster(s.now()), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read agent roster: %w", err)
	}

	var f feed
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse agent roster %s: %w", s.path, err)
	}
	if f.Agents == nil {
		f.Agents = []models.Agent{}
	}
	return f.Agents, nil
}

// DefaultRoster is the built-in crew, with last runs relative to now.
func DefaultRoster(now time.Time) []models.Agent {
	ago := func(d time.Duration) string {
		return now.Add(-d).UTC().Format(time.RFC3339)
	}
	return []models.Agent{
		{
			ID:             "codex",
			Name:           "Codex",
			Description:    "The muscle - rough, gets shit done",
			Status:         models.AgentStatusReady,
			LastRun:        ago(30 * time.Minute),
			TasksCompleted: 42,
			Voice:          "Deep, gruff, commanding",
			Personality:    "Action-oriented, no-nonsense",
		},
		{
			ID:             "kimi",
			Name:           "KIMI",
			Description:    "The lady - professional, sharp",
			Status:         models.AgentStatusIdle,
			LastRun:        ago(2 * time.Hour),
			TasksCompleted: 28,
			Voice:          "Professional female, warm but sharp",
			Personality:    "Analytical, detail-oriented",
		},
		{
			ID:             "scout",
			Name:           "Scout",
			Description:    "Research and intelligence gathering",
			Status:         models.AgentStatusActive,
			LastRun:        ago(5 * time.Minute),
			TasksCompleted: 15,
			Voice:          "Curious, energetic",
			Personality:    "Explorer, information gatherer",
		},
		{
			ID:             "builder",
			Name:           "Builder",
			Description:    "Infrastructure and deployment",
			Status:         models.AgentStatusReady,
			LastRun:        ago(time.Hour),
			TasksCompleted: 36,
			Voice:          "Methodical, calm",
			Personality:    "Architect, systems thinker",
		},
	}
}

var _ secondary.AgentStatusSource = (*RosterSource)(nil)
