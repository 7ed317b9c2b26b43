package kanban

import (
	"time"

	"github.com/example/commandcenter/internal/models"
)

// MergeInput is everything one sync pass knows.
type MergeInput struct {
	Existing   []*models.KanbanTask
	Candidates []Candidate
	Now        time.Time
	NewID      IDFunc
}

// MergeResult is the collection to persist plus bookkeeping for logging.
type MergeResult struct {
	Tasks          []*models.KanbanTask
	Added          []*models.KanbanTask
	DroppedAgents  int
	SkippedAsKnown int
}

type titleKey struct {
	source models.Source
	title  string
}

// Merge combines stored tasks with freshly discovered candidates.
//
// Rules:
//   - manual tasks are kept verbatim
//   - todo and active_context tasks are kept verbatim, even when the document
//     no longer lists them; a candidate whose (source, title) already exists is skipped
//   - subagent tasks are dropped and rebuilt from the current candidates
//
// The result order is manual, other non-subagent, then new tasks.
func Merge(in MergeInput) MergeResult {
	newID := in.NewID
	if newID == nil {
		newID = NewTaskID
	}

	var res MergeResult
	seen := make(map[titleKey]bool)
	var manual, synced []*models.KanbanTask
	for _, t := range in.Existing {
		switch t.Source {
		case models.SourceManual:
			manual = append(manual, t)
		case models.SourceSubagent:
			res.DroppedAgents++
		default:
			synced = append(synced, t)
		}
		seen[titleKey{t.Source, t.Title}] = true
	}

	for _, c := range in.Candidates {
		switch c.Source {
		case models.SourceTodo, models.SourceActiveContext:
			key := titleKey{c.Source, c.Title}
			if seen[key] {
				res.SkippedAsKnown++
				continue
			}
			seen[key] = true
		case models.SourceSubagent:
		default:
			continue
		}
		res.Added = append(res.Added, Materialize(c, in.Now, newID))
	}

	res.Tasks = make([]*models.KanbanTask, 0, len(manual)+len(synced)+len(res.Added))
	res.Tasks = append(res.Tasks, manual...)
	res.Tasks = append(res.Tasks, synced...)
	res.Tasks = append(res.Tasks, res.Added...)
	return res
}

// Materialize gives a candidate an id, timestamps and source-specific defaults.
func Materialize(c Candidate, now time.Time, newID IDFunc) *models.KanbanTask {
	owner := c.Owner
	if owner == "" {
		owner = c.Source.DefaultOwner()
	}
	return &models.KanbanTask{
		ID:          newID(c.Source, now),
		Title:       c.Title,
		Status:      c.Status,
		Priority:    c.Priority,
		Project:     c.Project,
		Owner:       owner,
		Source:      c.Source,
		CreatedAt:   now,
		UpdatedAt:   now,
		Description: c.Description,
		Tags:        []string{},
	}
}
