package kanban

import (
	"errors"
	"testing"
	"time"

	"github.com/example/commandcenter/internal/models"
)

func ptr[T any](v T) *T { return &v }

func TestPatchValidate(t *testing.T) {
	tests := []struct {
		name    string
		patch   Patch
		wantErr bool
	}{
		{name: "empty patch", patch: Patch{}},
		{name: "valid fields", patch: Patch{Status: ptr(models.StatusDone), Priority: ptr(models.PriorityLow), Project: ptr(models.ProjectContent)}},
		{name: "blank title", patch: Patch{Title: ptr("   ")}, wantErr: true},
		{name: "unknown status", patch: Patch{Status: ptr(models.Status("archived"))}, wantErr: true},
		{name: "unknown priority", patch: Patch{Priority: ptr(models.Priority("critical"))}, wantErr: true},
		{name: "unknown project", patch: Patch{Project: ptr(models.Project("Moonshot"))}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.patch.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidMutation) {
				t.Errorf("expected ErrInvalidMutation, got %v", err)
			}
		})
	}
}

func TestMove(t *testing.T) {
	tasks := []*models.KanbanTask{task("todo-1", "Write docs", models.SourceTodo)}
	before := tasks[0].UpdatedAt

	change := Move(tasks, "todo-1", models.StatusDone, fixedNow)

	if change == nil {
		t.Fatal("expected a change")
	}
	if change.OldValue != "backlog" || change.NewValue != "done" {
		t.Errorf("change = %+v", change)
	}
	if tasks[0].Status != models.StatusDone {
		t.Errorf("Status = %q", tasks[0].Status)
	}
	if !tasks[0].UpdatedAt.After(before) {
		t.Errorf("UpdatedAt did not advance")
	}
	if tasks[0].Title != "Write docs" || tasks[0].Source != models.SourceTodo {
		t.Errorf("move touched unrelated fields: %+v", tasks[0])
	}
}

func TestMove_UnknownID(t *testing.T) {
	tasks := []*models.KanbanTask{task("todo-1", "Write docs", models.SourceTodo)}

	if change := Move(tasks, "missing", models.StatusDone, fixedNow); change != nil {
		t.Errorf("expected nil change, got %+v", change)
	}
	if tasks[0].Status != models.StatusBacklog {
		t.Errorf("unrelated task changed")
	}
}

func TestTouch_StrictlyIncreases(t *testing.T) {
	tk := task("manual-1", "Same instant", models.SourceManual)
	tk.UpdatedAt = fixedNow

	Touch(tk, fixedNow)
	if !tk.UpdatedAt.Equal(fixedNow.Add(time.Millisecond)) {
		t.Errorf("UpdatedAt = %v, want now+1ms", tk.UpdatedAt)
	}

	Touch(tk, fixedNow.Add(-time.Hour))
	if !tk.UpdatedAt.Equal(fixedNow.Add(2 * time.Millisecond)) {
		t.Errorf("clock going backwards should still advance updatedAt, got %v", tk.UpdatedAt)
	}
}

func TestApplyPatch(t *testing.T) {
	tk := task("manual-1", "Old title", models.SourceManual)
	created := tk.CreatedAt

	changes := ApplyPatch(tk, Patch{
		Title:    ptr("  New title "),
		Priority: ptr(models.PriorityMedium),
		Owner:    ptr("Dana"),
		Tags:     ptr([]string{"ops", "q3"}),
	}, fixedNow)

	if tk.Title != "New title" || tk.Owner != "Dana" || len(tk.Tags) != 2 {
		t.Errorf("patch not applied: %+v", tk)
	}
	if tk.ID != "manual-1" || tk.Source != models.SourceManual || !tk.CreatedAt.Equal(created) {
		t.Errorf("immutable fields changed: %+v", tk)
	}
	if !tk.UpdatedAt.Equal(fixedNow) {
		t.Errorf("UpdatedAt = %v, want %v", tk.UpdatedAt, fixedNow)
	}

	// priority was already medium, so it is not reported
	fields := map[string]bool{}
	for _, c := range changes {
		fields[c.Field] = true
	}
	if len(changes) != 3 || !fields["title"] || !fields["owner"] || !fields["tags"] {
		t.Errorf("changes = %+v", changes)
	}
}

func TestApplyPatch_CopiesTags(t *testing.T) {
	tk := task("manual-1", "Tags", models.SourceManual)
	tags := []string{"one"}

	ApplyPatch(tk, Patch{Tags: &tags}, fixedNow)
	tags[0] = "mutated"

	if tk.Tags[0] != "one" {
		t.Errorf("task tags alias the patch slice")
	}
}

func TestRemove(t *testing.T) {
	tests := []struct {
		name        string
		id          string
		wantRemoved bool
		wantLen     int
	}{
		{name: "manual task is removed", id: "manual-1", wantRemoved: true, wantLen: 2},
		{name: "todo task is protected", id: "todo-1", wantRemoved: false, wantLen: 3},
		{name: "subagent task is protected", id: "subagent-1", wantRemoved: false, wantLen: 3},
		{name: "unknown id is a no-op", id: "nope", wantRemoved: false, wantLen: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks := []*models.KanbanTask{
				task("manual-1", "Manual", models.SourceManual),
				task("todo-1", "Todo", models.SourceTodo),
				task("subagent-1", "Agent", models.SourceSubagent),
			}

			out, removed := Remove(tasks, tt.id)

			if (removed != nil) != tt.wantRemoved {
				t.Errorf("removed = %v, want removed %v", removed, tt.wantRemoved)
			}
			if len(out) != tt.wantLen {
				t.Errorf("len = %d, want %d", len(out), tt.wantLen)
			}
			if Find(out, tt.id) >= 0 && tt.wantRemoved {
				t.Errorf("task %s still present", tt.id)
			}
		})
	}
}
