package kanban

import (
	"testing"

	"github.com/example/commandcenter/internal/models"
)

func TestProjectAgents(t *testing.T) {
	tests := []struct {
		name      string
		agents    []models.Agent
		wantCount int
		wantTitle string
		wantOwner string
		wantDesc  string
	}{
		{
			name: "active agent with current task",
			agents: []models.Agent{
				{Name: "Scout", Status: models.AgentStatusActive, CurrentTask: "Crawl docs", Specialty: "research"},
			},
			wantCount: 1,
			wantTitle: "Crawl docs",
			wantOwner: "Scout",
			wantDesc:  "Active subagent: research",
		},
		{
			name: "falls back to description then personality",
			agents: []models.Agent{
				{Name: "Quill", Status: models.AgentStatusActive, Description: "Drafting copy", Personality: "witty"},
			},
			wantCount: 1,
			wantTitle: "Drafting copy",
			wantOwner: "Quill",
			wantDesc:  "Active subagent: witty",
		},
		{
			name: "falls back to name based title",
			agents: []models.Agent{
				{Name: "Atlas", Status: models.AgentStatusActive},
			},
			wantCount: 1,
			wantTitle: "Atlas active task",
			wantOwner: "Atlas",
			wantDesc:  "Active subagent: Atlas",
		},
		{
			name: "nameless agent gets default owner",
			agents: []models.Agent{
				{Status: models.AgentStatusActive},
			},
			wantCount: 1,
			wantTitle: "Subagent active task",
			wantOwner: "Subagent",
			wantDesc:  "Active subagent: ",
		},
		{
			name: "idle and ready agents are ignored",
			agents: []models.Agent{
				{Name: "Scout", Status: models.AgentStatusIdle, CurrentTask: "Crawl docs"},
				{Name: "Pilot", Status: models.AgentStatusReady},
			},
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProjectAgents(tt.agents)
			if len(got) != tt.wantCount {
				t.Fatalf("got %d candidates, want %d", len(got), tt.wantCount)
			}
			if tt.wantCount == 0 {
				return
			}
			c := got[0]
			if c.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", c.Title, tt.wantTitle)
			}
			if c.Owner != tt.wantOwner {
				t.Errorf("Owner = %q, want %q", c.Owner, tt.wantOwner)
			}
			if c.Description != tt.wantDesc {
				t.Errorf("Description = %q, want %q", c.Description, tt.wantDesc)
			}
			if c.Status != models.StatusInProgress || c.Priority != models.PriorityHigh ||
				c.Project != models.ProjectInfrastructure || c.Source != models.SourceSubagent {
				t.Errorf("unexpected fixed fields: %+v", c)
			}
		})
	}
}
