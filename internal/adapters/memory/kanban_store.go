// Package memory holds in-process adapters for ephemeral runs and tests.
package memory

import (
	"context"
	"sync"

	"github.com/example/commandcenter/internal/models"
	"github.com/example/commandcenter/internal/ports/secondary"
)

// KanbanStore implements secondary.KanbanStore in memory. Tasks are cloned
// on the way in and out so callers never share state with the store.
type KanbanStore struct {
	mu    sync.Mutex
	tasks []*models.KanbanTask

	// LoadErr and SaveErr, when set, are returned instead of doing the work.
	LoadErr error
	SaveErr error
	saves   int
}

// NewKanbanStore creates a store seeded with tasks.
func NewKanbanStore(tasks ...*models.KanbanTask) *KanbanStore {
	return &KanbanStore{tasks: cloneAll(tasks)}
}

// Load returns a copy of the stored tasks.
func (s *KanbanStore) Load(ctx context.Context) ([]*models.KanbanTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.LoadErr != nil {
		return nil, s.LoadErr
	}
	return cloneAll(s.tasks), nil
}

// Save replaces the stored tasks.
func (s *KanbanStore) Save(ctx context.Context, tasks []*models.KanbanTask) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.tasks = cloneAll(tasks)
	s.saves++
	return nil
}

// Saves returns how many saves succeeded.
func (s *KanbanStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

func cloneAll(tasks []*models.KanbanTask) []*models.KanbanTask {
	out := make([]*models.KanbanTask, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Clone())
	}
	return out
}

// Ensure KanbanStore implements the interface
var _ secondary.KanbanStore = (*KanbanStore)(nil)
