// Package jsonfile stores collections as JSON documents on disk. Every write
// goes through an atomic rename so a failed save never truncates the file.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/natefinch/atomic"
	"go.uber.org/zap"

	"github.com/example/commandcenter/internal/core/kanban"
	"github.com/example/commandcenter/internal/models"
	"github.com/example/commandcenter/internal/ports/secondary"
)

// KanbanStore implements secondary.KanbanStore over a JSON array file.
type KanbanStore struct {
	path   string
	logger *zap.Logger
	now    func() time.Time
}

// NewKanbanStore creates a store for the kanban file at path.
func NewKanbanStore(path string, logger *zap.Logger) *KanbanStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &KanbanStore{path: path, logger: logger, now: time.Now}
}

// Path returns the file backing the store.
func (s *KanbanStore) Path() string {
	return s.path
}

// Load reads and normalizes the task array. A missing or unparseable file is
// an empty board; any other read failure is returned.
func (s *KanbanStore) Load(ctx context.Context) ([]*models.KanbanTask, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []*models.KanbanTask{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read kanban file: %w", err)
	}

	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		s.logger.Warn("kanban file is not a JSON array, starting empty",
			zap.String("path", s.path), zap.Error(err))
		return []*models.KanbanTask{}, nil
	}

	now := s.now()
	tasks := make([]*models.KanbanTask, 0, len(raw))
	for i, item := range raw {
		if item == nil {
			continue
		}
		tasks = append(tasks, kanban.NormalizeRaw(item, now, i))
	}
	kanban.EnsureUniqueIDs(tasks)
	return tasks, nil
}

// Save writes the whole board as a two-space indented JSON array.
func (s *KanbanStore) Save(ctx context.Context, tasks []*models.KanbanTask) error {
	if tasks == nil {
		tasks = []*models.KanbanTask{}
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode kanban tasks: %w", err)
	}
	return writeFile(s.path, data)
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}

// Ensure KanbanStore implements the interface
var _ secondary.KanbanStore = (*KanbanStore)(nil)
