// Package kanban contains the pure business logic for the kanban board:
// markdown extraction, agent projection, merge, normalization and mutation guards.
// Nothing in this package performs I/O.
package kanban

import "github.com/example/commandcenter/internal/models"

// Candidate is a partial task produced by extraction or projection, before
// it is given an id and timestamps.
type Candidate struct {
	Title       string
	Status      models.Status
	Priority    models.Priority
	Project     models.Project
	Source      models.Source
	Owner       string
	Description string
}

// Column describes one board column for display.
type Column struct {
	ID    models.Status `json:"id"`
	Title string        `json:"title"`
	Color string        `json:"color"`
}

// Columns returns the fixed board columns in display order.
func Columns() []Column {
	return []Column{
		{ID: models.StatusBacklog, Title: "Backlog", Color: "border-slate-600"},
		{ID: models.StatusInProgress, Title: "In Progress", Color: "border-amber-500"},
		{ID: models.StatusDone, Title: "Done", Color: "border-green-500"},
	}
}

// ProjectColors returns the style token for every project.
func ProjectColors() map[models.Project]string {
	return map[models.Project]string{
		models.ProjectLessonCraft:    "border-amber-500 bg-amber-500/10",
		models.ProjectJDGallery:      "border-green-500 bg-green-500/10",
		models.ProjectInfrastructure: "border-blue-500 bg-blue-500/10",
		models.ProjectContent:        "border-purple-500 bg-purple-500/10",
		models.ProjectOther:          "border-slate-500 bg-slate-500/10",
	}
}
