// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/example/commandcenter/internal/core/kanban"
	"github.com/example/commandcenter/internal/models"
	"github.com/example/commandcenter/internal/ports/secondary"
)

// KanbanStore implements secondary.KanbanStore with SQLite.
// Row order is kept in the position column.
type KanbanStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewKanbanStore creates a new SQLite kanban store.
func NewKanbanStore(db *sql.DB) *KanbanStore {
	return &KanbanStore{db: db, now: time.Now}
}

// Load returns every task in board order, normalized.
func (s *KanbanStore) Load(ctx context.Context) ([]*models.KanbanTask, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, status, priority, project, owner, source, description, tags, created_at, updated_at FROM kanban_tasks ORDER BY position`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load kanban tasks: %w", err)
	}
	defer rows.Close()

	now := s.now()
	tasks := []*models.KanbanTask{}
	for rows.Next() {
		var (
			task        models.KanbanTask
			description sql.NullString
			tags        string
			createdAt   string
			updatedAt   string
		)
		err := rows.Scan(&task.ID,
			&task.Title,
			&task.Status,
			&task.Priority,
			&task.Project,
			&task.Owner,
			&task.Source,
			&description,
			&tags,
			&createdAt,
			&updatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan kanban task: %w", err)
		}
		task.Description = description.String
		task.CreatedAt = parseTime(createdAt)
		task.UpdatedAt = parseTime(updatedAt)
		if err := json.Unmarshal([]byte(tags), &task.Tags); err != nil {
			task.Tags = nil
		}

		tasks = append(tasks, kanban.Normalize(&task, now))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read kanban tasks: %w", err)
	}

	kanban.EnsureUniqueIDs(tasks)
	return tasks, nil
}

// Save replaces the whole board in one transaction.
func (s *KanbanStore) Save(ctx context.Context, tasks []*models.KanbanTask) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM kanban_tasks"); err != nil {
		return fmt.Errorf("failed to clear kanban tasks: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO kanban_tasks (id, position, title, status, priority, project, owner, source, description, tags, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, t := range tasks {
		var description sql.NullString
		if t.Description != "" {
			description = sql.NullString{String: t.Description, Valid: true}
		}
		tags := t.Tags
		if tags == nil {
			tags = []string{}
		}
		encoded, err := json.Marshal(tags)
		if err != nil {
			return fmt.Errorf("failed to encode tags of %s: %w", t.ID, err)
		}

		_, err = stmt.ExecContext(ctx,
			t.ID,
			i,
			t.Title,
			string(t.Status),
			string(t.Priority),
			string(t.Project),
			t.Owner,
			string(t.Source),
			description,
			string(encoded),
			formatTime(t.CreatedAt),
			formatTime(t.UpdatedAt),
		)
		if err != nil {
			return fmt.Errorf("failed to insert kanban task %s: %w", t.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit kanban tasks: %w", err)
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// parseTime returns the zero time for unparseable values; Normalize fills them in.
func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Ensure KanbanStore implements the interface
var _ secondary.KanbanStore = (*KanbanStore)(nil)
