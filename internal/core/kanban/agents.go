package kanban

import "github.com/example/commandcenter/internal/models"

// ProjectAgents turns every active agent into an in-progress subagent candidate.
// Agents in any other state produce nothing.
func ProjectAgents(agents []models.Agent) []Candidate {
	var out []Candidate
	for _, a := range agents {
		if a.Status != models.AgentStatusActive {
			continue
		}

		owner := a.Name
		if owner == "" {
			owner = models.SourceSubagent.DefaultOwner()
		}

		out = append(out, Candidate{
			Title:       firstNonEmpty(a.CurrentTask, a.Description, owner+" active task"),
			Status:      models.StatusInProgress,
			Priority:    models.PriorityHigh,
			Project:     models.ProjectInfrastructure,
			Source:      models.SourceSubagent,
			Owner:       owner,
			Description: "Active subagent: " + firstNonEmpty(a.Specialty, a.Personality, a.Name),
		})
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
