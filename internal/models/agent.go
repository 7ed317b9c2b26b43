package models

// Agent status constants reported by the agent status feed.
const (
	AgentStatusActive = "active"
	AgentStatusReady  = "ready"
	AgentStatusIdle   = "idle"
)

// Agent is one entry of the agent status feed.
// Only Name and Status are guaranteed; everything else is optional.
type Agent struct {
	ID             string `json:"id,omitempty"`
	Name           string `json:"name"`
	Status         string `json:"status"`
	CurrentTask    string `json:"currentTask,omitempty"`
	Description    string `json:"description,omitempty"`
	Specialty      string `json:"specialty,omitempty"`
	Personality    string `json:"personality,omitempty"`
	Voice          string `json:"voice,omitempty"`
	LastRun        string `json:"lastRun,omitempty"`
	TasksCompleted int    `json:"tasksCompleted,omitempty"`
}
