package kanban

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/example/commandcenter/internal/models"
)

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want models.Status
	}{
		{"done", models.StatusDone},
		{"DONE", models.StatusDone},
		{"inprogress", models.StatusInProgress},
		{"in_progress", models.StatusInProgress},
		{"in-progress", models.StatusInProgress},
		{"blocked", models.StatusInProgress},
		{"backlog", models.StatusBacklog},
		{"todo", models.StatusBacklog},
		{"", models.StatusBacklog},
		{"garbage", models.StatusBacklog},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := NormalizeStatus(tt.raw); got != tt.want {
				t.Errorf("NormalizeStatus(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseProject(t *testing.T) {
	tests := []struct {
		raw    string
		want   models.Project
		wantOK bool
	}{
		{"LessonCraft", models.ProjectLessonCraft, true},
		{"lessoncraft", models.ProjectLessonCraft, true},
		{"JD Gallery", models.ProjectJDGallery, true},
		{"jd-gallery", models.ProjectJDGallery, true},
		{"command_center", models.ProjectInfrastructure, true},
		{"gospel-tuned", models.ProjectContent, true},
		{"Other", models.ProjectOther, true},
		{"", "", false},
		{"Moonshot", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParseProject(tt.raw)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseProject(%q) = (%q, %v), want (%q, %v)", tt.raw, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestNormalizeRaw_FillsDefaults(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	got := NormalizeRaw(map[string]any{}, now, 7)

	if got.ID != "legacy-1767323045000-7" {
		t.Errorf("ID = %q", got.ID)
	}
	if got.Title != DefaultTitle {
		t.Errorf("Title = %q, want %q", got.Title, DefaultTitle)
	}
	if got.Status != models.StatusBacklog {
		t.Errorf("Status = %q", got.Status)
	}
	if got.Priority != models.PriorityMedium {
		t.Errorf("Priority = %q", got.Priority)
	}
	if got.Project != models.ProjectOther {
		t.Errorf("Project = %q", got.Project)
	}
	if got.Owner != DefaultOwner {
		t.Errorf("Owner = %q", got.Owner)
	}
	if got.Source != models.SourceManual {
		t.Errorf("Source = %q", got.Source)
	}
	if !got.CreatedAt.Equal(now) || !got.UpdatedAt.Equal(now) {
		t.Errorf("timestamps = %v / %v, want %v", got.CreatedAt, got.UpdatedAt, now)
	}
	if got.Tags == nil || len(got.Tags) != 0 {
		t.Errorf("Tags = %#v", got.Tags)
	}
}

func TestNormalizeRaw_LegacyRecord(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	doc := `{
		"id": "todo-1",
		"title": "  Renew certificates ",
		"status": "in_progress",
		"priority": "HIGH",
		"project": "infrastructure",
		"source": "todo",
		"createdAt": "2025-12-01T10:00:00.000Z",
		"description": 42,
		"tags": ["ops", 3, null]
	}`
	var raw map[string]any
	if err := json.Unmarshal([]byte(doc), &raw); err != nil {
		t.Fatalf("bad fixture: %v", err)
	}

	got := NormalizeRaw(raw, now, 0)

	if got.ID != "todo-1" || got.Title != "Renew certificates" {
		t.Errorf("unexpected id/title: %q %q", got.ID, got.Title)
	}
	if got.Status != models.StatusInProgress {
		t.Errorf("Status = %q", got.Status)
	}
	if got.Priority != models.PriorityHigh {
		t.Errorf("Priority = %q", got.Priority)
	}
	if got.Project != models.ProjectInfrastructure {
		t.Errorf("Project = %q", got.Project)
	}
	if got.Owner != DefaultOwner {
		t.Errorf("Owner = %q", got.Owner)
	}
	if want := time.Date(2025, 12, 1, 10, 0, 0, 0, time.UTC); !got.CreatedAt.Equal(want) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, want)
	}
	if !got.UpdatedAt.Equal(now) {
		t.Errorf("UpdatedAt = %v, want now", got.UpdatedAt)
	}
	if got.Description != "" {
		t.Errorf("non-string description should be dropped, got %q", got.Description)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "ops" || got.Tags[1] != "3" {
		t.Errorf("Tags = %#v", got.Tags)
	}
}

func TestNormalize_KeepsValidFields(t *testing.T) {
	created := time.Date(2025, 5, 5, 0, 0, 0, 0, time.UTC)
	in := &models.KanbanTask{
		ID:        "manual-9",
		Title:     "Keep me",
		Status:    models.StatusDone,
		Priority:  models.PriorityLow,
		Project:   models.ProjectJDGallery,
		Owner:     "Dana",
		Source:    models.SourceManual,
		CreatedAt: created,
		UpdatedAt: created,
		Tags:      []string{"a"},
	}
	got := Normalize(in.Clone(), time.Now())

	if got.Status != in.Status || got.Priority != in.Priority || got.Project != in.Project ||
		got.Owner != in.Owner || !got.CreatedAt.Equal(created) || got.Tags[0] != "a" {
		t.Errorf("Normalize changed valid fields: %+v", got)
	}
}

func TestEnsureUniqueIDs(t *testing.T) {
	tasks := []*models.KanbanTask{{ID: "a"}, {ID: "b"}, {ID: "a"}, {ID: "a"}, {ID: "a-2"}}

	EnsureUniqueIDs(tasks)

	want := []string{"a", "b", "a-2", "a-3", "a-2-2"}
	for i, id := range want {
		if tasks[i].ID != id {
			t.Errorf("tasks[%d].ID = %q, want %q", i, tasks[i].ID, id)
		}
	}
}
