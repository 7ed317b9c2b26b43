// Package models contains domain types for command center entities.
// Persistence lives in internal/adapters; these types carry no storage concerns.
package models

import "time"

// KanbanTask is a single card on the kanban board.
type KanbanTask struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Status      Status    `json:"status"`
	Priority    Priority  `json:"priority"`
	Project     Project   `json:"project"`
	Owner       string    `json:"owner"`
	Source      Source    `json:"source"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Description string    `json:"description,omitempty"`
	Tags        []string  `json:"tags"`
}

// Clone returns a deep copy so callers can mutate without aliasing stored slices.
func (t *KanbanTask) Clone() *KanbanTask {
	c := *t
	c.Tags = append([]string{}, t.Tags...)
	return &c
}

// Status is a kanban column.
type Status string

// Kanban status constants
const (
	StatusBacklog    Status = "backlog"
	StatusInProgress Status = "inprogress"
	StatusDone       Status = "done"
)

// Valid reports whether s is one of the three board columns.
func (s Status) Valid() bool {
	switch s {
	case StatusBacklog, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Priority of a task.
type Priority string

// Priority constants
const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Project groups tasks on the board.
type Project string

// Project constants
const (
	ProjectLessonCraft    Project = "LessonCraft"
	ProjectJDGallery      Project = "JD Gallery"
	ProjectInfrastructure Project = "Infrastructure"
	ProjectContent        Project = "Content"
	ProjectOther          Project = "Other"
)

// AllProjects lists projects in display order.
var AllProjects = []Project{
	ProjectLessonCraft,
	ProjectJDGallery,
	ProjectInfrastructure,
	ProjectContent,
	ProjectOther,
}

// Valid reports whether p is a known project.
func (p Project) Valid() bool {
	for _, known := range AllProjects {
		if p == known {
			return true
		}
	}
	return false
}

// Source records where a task came from. It decides how sync treats the task.
type Source string

// Source constants
const (
	SourceManual        Source = "manual"
	SourceTodo          Source = "todo"
	SourceActiveContext Source = "active_context"
	SourceSubagent      Source = "subagent"
)

// Valid reports whether s is a known source.
func (s Source) Valid() bool {
	switch s {
	case SourceManual, SourceTodo, SourceActiveContext, SourceSubagent:
		return true
	}
	return false
}

// IDPrefix is the id prefix used for tasks materialized from this source.
func (s Source) IDPrefix() string {
	switch s {
	case SourceActiveContext:
		return "active"
	case SourceTodo, SourceSubagent, SourceManual:
		return string(s)
	}
	return "task"
}

// DefaultOwner is the owner assigned when a task from this source has none.
func (s Source) DefaultOwner() string {
	switch s {
	case SourceManual:
		return "Manual"
	case SourceActiveContext:
		return "Active Context"
	case SourceSubagent:
		return "Subagent"
	}
	return "System"
}
