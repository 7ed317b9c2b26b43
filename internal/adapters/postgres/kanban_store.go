// Package postgres provides the Postgres-backed kanban store.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/example/commandcenter/internal/core/kanban"
	"github.com/example/commandcenter/internal/models"
	"github.com/example/commandcenter/internal/ports/secondary"
)

const tasksTable = "kanban_tasks"

// KanbanStore implements secondary.KanbanStore backed by Postgres.
type KanbanStore struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

var _ secondary.KanbanStore = (*KanbanStore)(nil)

// Connect opens a pool for dsn and makes sure the schema exists.
func Connect(ctx context.Context, dsn string) (*KanbanStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	s := NewKanbanStore(pool)
	if err := s.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// NewKanbanStore creates a store over an existing pool.
func NewKanbanStore(pool *pgxpool.Pool) *KanbanStore {
	return &KanbanStore{pool: pool, now: time.Now}
}

// Close releases the pool.
func (s *KanbanStore) Close() {
	if s != nil && s.pool != nil {
		s.pool.Close()
	}
}

// EnsureSchema creates the kanban_tasks table if it doesn't exist.
func (s *KanbanStore) EnsureSchema(ctx context.Context) error {
	if s == nil || s.pool == nil {
		return fmt.Errorf("kanban store not initialized")
	}

	statements := []string{
		`CREATE TABLE IF NOT EXISTS ` + tasksTable + ` (
    id          TEXT PRIMARY KEY,
    position    INTEGER NOT NULL,
    title       TEXT NOT NULL,
    status      TEXT NOT NULL DEFAULT 'backlog',
    priority    TEXT NOT NULL DEFAULT 'medium',
    project     TEXT NOT NULL DEFAULT 'Other',
    owner       TEXT NOT NULL DEFAULT 'System',
    source      TEXT NOT NULL DEFAULT 'manual',
    description TEXT NOT NULL DEFAULT '',
    tags        TEXT[] NOT NULL DEFAULT '{}',
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
		`CREATE INDEX IF NOT EXISTS idx_kanban_tasks_position ON ` + tasksTable + ` (position)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure kanban schema: %w", err)
		}
	}
	return nil
}

// Load returns every task in board order, normalized.
func (s *KanbanStore) Load(ctx context.Context) ([]*models.KanbanTask, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, title, status, priority, project, owner, source, description, tags, created_at, updated_at
FROM `+tasksTable+` ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("load kanban tasks: %w", err)
	}
	defer rows.Close()

	now := s.now()
	tasks := []*models.KanbanTask{}
	for rows.Next() {
		var (
			t                                 models.KanbanTask
			status, priority, project, source string
		)
		if err := rows.Scan(&t.ID, &t.Title, &status, &priority, &project, &t.Owner, &source,
			&t.Description, &t.Tags, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan kanban task: %w", err)
		}
		t.Status = models.Status(status)
		t.Priority = models.Priority(priority)
		t.Project = models.Project(project)
		t.Source = models.Source(source)
		tasks = append(tasks, kanban.Normalize(&t, now))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read kanban tasks: %w", err)
	}

	kanban.EnsureUniqueIDs(tasks)
	return tasks, nil
}

// Save replaces the whole board in one transaction.
func (s *KanbanStore) Save(ctx context.Context, tasks []*models.KanbanTask) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM `+tasksTable); err != nil {
			return fmt.Errorf("clear kanban tasks: %w", err)
		}

		batch := &pgx.Batch{}
		for i, t := range tasks {
			tags := t.Tags
			if tags == nil {
				tags = []string{}
			}
			batch.Queue(`INSERT INTO `+tasksTable+` (id, position, title, status, priority, project, owner, source, description, tags, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
				t.ID, i, t.Title, string(t.Status), string(t.Priority), string(t.Project),
				t.Owner, string(t.Source), t.Description, tags, t.CreatedAt, t.UpdatedAt)
		}

		results := tx.SendBatch(ctx, batch)
		for range tasks {
			if _, err := results.Exec(); err != nil {
				results.Close()
				return fmt.Errorf("insert kanban task: %w", err)
			}
		}
		if err := results.Close(); err != nil {
			return fmt.Errorf("insert kanban tasks: %w", err)
		}
		return nil
	})
}
