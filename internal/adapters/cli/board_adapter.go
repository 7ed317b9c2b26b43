// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle argument parsing, output formatting,
// but delegate business logic to services.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/example/commandcenter/internal/core/kanban"
	"github.com/example/commandcenter/internal/models"
	"github.com/example/commandcenter/internal/ports/primary"
)

var (
	headerColor   = color.New(color.Bold)
	priorityColor = map[models.Priority]*color.Color{
		models.PriorityHigh:   color.New(color.FgRed),
		models.PriorityMedium: color.New(color.FgYellow),
		models.PriorityLow:    color.New(color.FgHiBlack),
	}
)

// BoardAdapter is a thin adapter that translates CLI operations to KanbanService calls.
// It depends only on the KanbanService interface, enabling easy testing with mocks.
type BoardAdapter struct {
	service primary.KanbanService
	out     io.Writer
}

// NewBoardAdapter creates a new BoardAdapter with the given service.
func NewBoardAdapter(service primary.KanbanService, out io.Writer) *BoardAdapter {
	return &BoardAdapter{
		service: service,
		out:     out,
	}
}

// Sync runs a sync pass and prints the resulting board.
func (a *BoardAdapter) Sync(ctx context.Context) error {
	board, err := a.service.Sync(ctx)
	if err != nil {
		return fmt.Errorf("failed to sync board: %w", err)
	}
	fmt.Fprintf(a.out, "✓ Synced %d tasks\n", len(board.Tasks))
	a.printBoard(board, "")
	return nil
}

// List prints the stored board, optionally limited to one project.
func (a *BoardAdapter) List(ctx context.Context, project string) error {
	board, err := a.service.Board(ctx)
	if err != nil {
		return fmt.Errorf("failed to load board: %w", err)
	}
	a.printBoard(board, project)
	return nil
}

// Create adds a manual task.
func (a *BoardAdapter) Create(ctx context.Context, req primary.CreateKanbanTaskRequest) error {
	res, err := a.service.Apply(ctx, primary.KanbanMutation{Action: primary.ActionCreate, Create: req})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Created task %s: %s\n", res.Task.ID, res.Task.Title)
	return nil
}

// Move changes the column of a task.
func (a *BoardAdapter) Move(ctx context.Context, id string, status models.Status) error {
	res, err := a.service.Apply(ctx, primary.KanbanMutation{Action: primary.ActionMove, TaskID: id, NewStatus: status})
	if err != nil {
		return err
	}
	if !res.Changed {
		fmt.Fprintf(a.out, "No task %s\n", id)
		return nil
	}
	fmt.Fprintf(a.out, "✓ Task %s moved to %s\n", id, status)
	return nil
}

// Update applies a partial update to a task.
func (a *BoardAdapter) Update(ctx context.Context, id string, patch kanban.Patch) error {
	res, err := a.service.Apply(ctx, primary.KanbanMutation{Action: primary.ActionUpdate, ID: id, Updates: patch})
	if err != nil {
		return err
	}
	if !res.Changed {
		fmt.Fprintf(a.out, "No task %s\n", id)
		return nil
	}
	fmt.Fprintf(a.out, "✓ Task %s updated\n", id)
	return nil
}

// Delete removes a manual task. Synced tasks are left alone.
func (a *BoardAdapter) Delete(ctx context.Context, id string) error {
	res, err := a.service.Apply(ctx, primary.KanbanMutation{Action: primary.ActionDelete, ID: id})
	if err != nil {
		return err
	}
	if !res.Changed {
		fmt.Fprintf(a.out, "Task %s not deleted (missing or not a manual task)\n", id)
		return nil
	}
	fmt.Fprintf(a.out, "✓ Task %s deleted\n", id)
	return nil
}

func (a *BoardAdapter) printBoard(board *primary.KanbanBoard, project string) {
	byStatus := make(map[models.Status][]*models.KanbanTask)
	for _, t := range board.Tasks {
		if project != "" && !strings.EqualFold(string(t.Project), project) {
			continue
		}
		byStatus[t.Status] = append(byStatus[t.Status], t)
	}

	for _, col := range board.Columns {
		tasks := byStatus[col.ID]
		fmt.Fprintln(a.out)
		headerColor.Fprintf(a.out, "%s (%d)\n", col.Title, len(tasks))
		fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────")
		if len(tasks) == 0 {
			fmt.Fprintln(a.out, "  (empty)")
			continue
		}
		for _, t := range tasks {
			c := priorityColor[t.Priority]
			if c == nil {
				c = color.New()
			}
			fmt.Fprintf(a.out, "  %-28s ", t.ID)
			c.Fprintf(a.out, "%-6s", t.Priority)
			fmt.Fprintf(a.out, " %-14s %s", t.Project, t.Title)
			if t.Owner != "" {
				fmt.Fprintf(a.out, " [%s]", t.Owner)
			}
			fmt.Fprintln(a.out)
		}
	}
	fmt.Fprintln(a.out)
}
