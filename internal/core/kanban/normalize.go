package kanban

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/example/commandcenter/internal/models"
)

// Defaults applied to stored tasks that are missing a field.
const (
	DefaultTitle = "Untitled task"
	DefaultOwner = "System"
)

// NormalizeStatus folds legacy and malformed status values into the three columns.
func NormalizeStatus(raw string) models.Status {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "done":
		return models.StatusDone
	case "inprogress", "in_progress", "in-progress", "blocked":
		return models.StatusInProgress
	}
	return models.StatusBacklog
}

// ParsePriority returns the priority for raw, or false if unknown.
func ParsePriority(raw string) (models.Priority, bool) {
	p := models.Priority(strings.ToLower(strings.TrimSpace(raw)))
	return p, p.Valid()
}

// ParseProject resolves a project from its display name or a slug such as
// "lessoncraft" or "jd-gallery". Unknown values report false.
func ParseProject(raw string) (models.Project, bool) {
	s := strings.TrimSpace(raw)
	for _, p := range models.AllProjects {
		if strings.EqualFold(s, string(p)) {
			return p, true
		}
	}

	slug := strings.ToLower(strings.NewReplacer("-", " ", "_", " ").Replace(s))
	switch {
	case slug == "":
		return "", false
	case strings.Contains(slug, "lessoncraft"):
		return models.ProjectLessonCraft, true
	case strings.Contains(slug, "gallery"):
		return models.ProjectJDGallery, true
	case strings.Contains(slug, "infrastructure"), strings.Contains(slug, "command center"):
		return models.ProjectInfrastructure, true
	case strings.Contains(slug, "content"), strings.Contains(slug, "gospel tuned"):
		return models.ProjectContent, true
	}
	return "", false
}

// Normalize fills defaults on a typed task in place and returns it.
// It is the single place where the default table for stored tasks lives.
func Normalize(t *models.KanbanTask, now time.Time) *models.KanbanTask {
	if strings.TrimSpace(t.Title) == "" {
		t.Title = DefaultTitle
	}
	t.Status = NormalizeStatus(string(t.Status))
	if !t.Priority.Valid() {
		t.Priority = models.PriorityMedium
	}
	if !t.Project.Valid() {
		t.Project = models.ProjectOther
	}
	if t.Owner == "" {
		t.Owner = DefaultOwner
	}
	if !t.Source.Valid() {
		t.Source = models.SourceManual
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = now
	}
	if t.Tags == nil {
		t.Tags = []string{}
	}
	return t
}

// NormalizeRaw builds a task from an arbitrary decoded JSON object.
// index disambiguates generated ids for records that have none.
func NormalizeRaw(raw map[string]any, now time.Time, index int) *models.KanbanTask {
	t := &models.KanbanTask{
		ID:          stringField(raw, "id"),
		Title:       stringField(raw, "title"),
		Status:      models.Status(stringField(raw, "status")),
		Priority:    models.Priority(strings.ToLower(stringField(raw, "priority"))),
		Project:     models.Project(stringField(raw, "project")),
		Owner:       stringField(raw, "owner"),
		Source:      models.Source(stringField(raw, "source")),
		CreatedAt:   timeField(raw, "createdAt"),
		UpdatedAt:   timeField(raw, "updatedAt"),
		Description: descriptionField(raw),
		Tags:        tagsField(raw),
	}
	if p, ok := ParseProject(string(t.Project)); ok {
		t.Project = p
	}
	if t.ID == "" {
		t.ID = fmt.Sprintf("legacy-%d-%d", now.UnixMilli(), index)
	}
	return Normalize(t, now)
}

// EnsureUniqueIDs renames later duplicates so every id in tasks is unique.
func EnsureUniqueIDs(tasks []*models.KanbanTask) {
	seen := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		id := t.ID
		for n := 2; seen[id]; n++ {
			id = t.ID + "-" + strconv.Itoa(n)
		}
		t.ID = id
		seen[id] = true
	}
}

func stringField(raw map[string]any, key string) string {
	switch v := raw[key].(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

// descriptionField keeps only real strings, matching how descriptions are written.
func descriptionField(raw map[string]any) string {
	s, _ := raw["description"].(string)
	return s
}

func timeField(raw map[string]any, key string) time.Time {
	s := stringField(raw, key)
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func tagsField(raw map[string]any) []string {
	items, ok := raw["tags"].([]any)
	if !ok {
		return []string{}
	}
	tags := make([]string, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		tags = append(tags, fmt.Sprint(item))
	}
	return tags
}
