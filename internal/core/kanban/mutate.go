package kanban

import (
	"fmt"
	"strings"
	"time"

	"github.com/example/commandcenter/internal/models"
)

// Patch is a partial update of a task. Nil fields are left untouched.
// id, source and createdAt are not patchable.
type Patch struct {
	Title       *string
	Status      *models.Status
	Priority    *models.Priority
	Project     *models.Project
	Owner       *string
	Description *string
	Tags        *[]string
}

// Validate rejects patches that would break the closed enums or blank the title.
func (p Patch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return fmt.Errorf("%w: title cannot be empty", ErrInvalidMutation)
	}
	if p.Status != nil && !p.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidMutation, *p.Status)
	}
	if p.Priority != nil && !p.Priority.Valid() {
		return fmt.Errorf("%w: unknown priority %q", ErrInvalidMutation, *p.Priority)
	}
	if p.Project != nil && !p.Project.Valid() {
		return fmt.Errorf("%w: unknown project %q", ErrInvalidMutation, *p.Project)
	}
	return nil
}

// FieldChange describes one changed field, for the activity log.
type FieldChange struct {
	Field    string
	OldValue string
	NewValue string
}

// Find returns the index of the task with id, or -1.
func Find(tasks []*models.KanbanTask, id string) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Touch sets UpdatedAt to now, nudging it forward when the clock has not
// moved so that updatedAt strictly increases on every mutation.
func Touch(t *models.KanbanTask, now time.Time) {
	if !now.After(t.UpdatedAt) {
		now = t.UpdatedAt.Add(time.Millisecond)
	}
	t.UpdatedAt = now
}

// Move sets the status of the task with id. It reports the change, or nil
// when no task has that id.
func Move(tasks []*models.KanbanTask, id string, status models.Status, now time.Time) *FieldChange {
	i := Find(tasks, id)
	if i < 0 {
		return nil
	}
	t := tasks[i]
	change := &FieldChange{Field: "status", OldValue: string(t.Status), NewValue: string(status)}
	t.Status = status
	Touch(t, now)
	return change
}

// ApplyPatch shallow-merges p onto t and refreshes UpdatedAt.
func ApplyPatch(t *models.KanbanTask, p Patch, now time.Time) []FieldChange {
	var changes []FieldChange
	record := func(field, oldValue, newValue string) {
		if oldValue != newValue {
			changes = append(changes, FieldChange{Field: field, OldValue: oldValue, NewValue: newValue})
		}
	}

	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		record("title", t.Title, title)
		t.Title = title
	}
	if p.Status != nil {
		record("status", string(t.Status), string(*p.Status))
		t.Status = *p.Status
	}
	if p.Priority != nil {
		record("priority", string(t.Priority), string(*p.Priority))
		t.Priority = *p.Priority
	}
	if p.Project != nil {
		record("project", string(t.Project), string(*p.Project))
		t.Project = *p.Project
	}
	if p.Owner != nil {
		record("owner", t.Owner, *p.Owner)
		t.Owner = *p.Owner
	}
	if p.Description != nil {
		record("description", t.Description, *p.Description)
		t.Description = *p.Description
	}
	if p.Tags != nil {
		tags := append([]string{}, (*p.Tags)...)
		record("tags", strings.Join(t.Tags, ","), strings.Join(tags, ","))
		t.Tags = tags
	}

	Touch(t, now)
	return changes
}

// Remove deletes the task with id when the delete guard allows it.
// The removed task is returned, or nil if nothing was removed.
func Remove(tasks []*models.KanbanTask, id string) ([]*models.KanbanTask, *models.KanbanTask) {
	i := Find(tasks, id)
	if i < 0 {
		return tasks, nil
	}
	if !CanDeleteTask(DeleteTaskContext{TaskID: id, Source: tasks[i].Source}).Allowed {
		return tasks, nil
	}
	removed := tasks[i]
	out := make([]*models.KanbanTask, 0, len(tasks)-1)
	out = append(out, tasks[:i]...)
	out = append(out, tasks[i+1:]...)
	return out, removed
}
