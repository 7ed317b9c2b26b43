package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/example/commandcenter/internal/core/kanban"
	"github.com/example/commandcenter/internal/models"
	"github.com/example/commandcenter/internal/ports/primary"
	"github.com/example/commandcenter/internal/ports/secondary"
)

// entityKanbanTask is the activity log entity type of board tasks.
const entityKanbanTask = "kanban_task"

// KanbanServiceImpl implements the KanbanService interface.
// Every read-modify-write of the store holds mu, so writes from this
// process never interleave. Other processes writing the same store still race.
type KanbanServiceImpl struct {
	store     secondary.KanbanStore
	notes     secondary.NoteSource
	agents    secondary.AgentStatusSource
	logWriter secondary.LogWriter
	hub       *BoardHub
	logger    *zap.Logger
	validate  *validator.Validate

	now   func() time.Time
	newID kanban.IDFunc

	mu sync.Mutex
}

// NewKanbanService creates a new KanbanService with injected dependencies.
// logWriter and hub may be nil.
func NewKanbanService(
	store secondary.KanbanStore,
	notes secondary.NoteSource,
	agents secondary.AgentStatusSource,
	logWriter secondary.LogWriter,
	hub *BoardHub,
	logger *zap.Logger,
) *KanbanServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	if hub == nil {
		hub = NewBoardHub()
	}
	return &KanbanServiceImpl{
		store:     store,
		notes:     notes,
		agents:    agents,
		logWriter: logWriter,
		hub:       hub,
		logger:    logger,
		validate:  validator.New(),
		now:       time.Now,
		newID:     kanban.NewTaskID,
	}
}

// Sync merges the notes and live agents into the store and returns the board.
// Nothing is persisted when any step fails.
func (s *KanbanServiceImpl) Sync(ctx context.Context) (*primary.KanbanBoard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load kanban tasks: %w", err)
	}

	var candidates []kanban.Candidate
	candidates = append(candidates, kanban.ExtractMarkdown(s.readNote(ctx, secondary.NoteTodo), models.SourceTodo)...)
	candidates = append(candidates, kanban.ExtractMarkdown(s.readNote(ctx, secondary.NoteActiveContext), models.SourceActiveContext)...)
	candidates = append(candidates, kanban.ProjectAgents(s.listAgents(ctx))...)

	res := kanban.Merge(kanban.MergeInput{
		Existing:   existing,
		Candidates: candidates,
		Now:        s.now(),
		NewID:      s.newID,
	})

	if err := s.store.Save(ctx, res.Tasks); err != nil {
		return nil, fmt.Errorf("failed to save kanban tasks: %w", err)
	}

	s.logger.Debug("kanban sync",
		zap.Int("tasks", len(res.Tasks)),
		zap.Int("added", len(res.Added)),
		zap.Int("skipped", res.SkippedAsKnown),
		zap.Int("dropped_agents", res.DroppedAgents))

	if len(res.Added) > 0 && s.logWriter != nil {
		if err := s.logWriter.LogSync(ctx, entityKanbanTask, len(res.Added)); err != nil {
			s.logger.Warn("failed to record sync activity", zap.Error(err))
		}
	}

	board := newBoard(res.Tasks)
	s.hub.Publish(board)
	return board, nil
}

// Board returns the stored board without syncing.
func (s *KanbanServiceImpl) Board(ctx context.Context) (*primary.KanbanBoard, error) {
	tasks, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load kanban tasks: %w", err)
	}
	return newBoard(tasks), nil
}

// Subscribe registers for board updates.
func (s *KanbanServiceImpl) Subscribe() (<-chan *primary.KanbanBoard, func()) {
	return s.hub.Subscribe()
}

// Apply performs one mutation. A move, update or delete naming a missing
// task (or deleting a non-manual one) succeeds without changing anything.
func (s *KanbanServiceImpl) Apply(ctx context.Context, m primary.KanbanMutation) (*primary.KanbanMutationResult, error) {
	if err := s.validate.Var(m.Action, "required,oneof=move create update delete"); err != nil {
		return nil, fmt.Errorf("%w: unknown action %q", kanban.ErrInvalidMutation, m.Action)
	}

	switch m.Action {
	case primary.ActionMove:
		if err := kanban.CanMoveTask(kanban.StatusChangeContext{TaskID: m.TaskID, NewStatus: m.NewStatus}).Error(); err != nil {
			return nil, err
		}
	case primary.ActionCreate:
		m.Create.Title = strings.TrimSpace(m.Create.Title)
		if err := s.validate.Struct(m.Create); err != nil {
			return nil, invalidRequest(err)
		}
	case primary.ActionUpdate:
		if err := m.Updates.Validate(); err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load kanban tasks: %w", err)
	}

	now := s.now()
	result := &primary.KanbanMutationResult{Success: true}
	var record func(context.Context)

	switch m.Action {
	case primary.ActionMove:
		if change := kanban.Move(tasks, m.TaskID, m.NewStatus, now); change != nil {
			result.Changed = true
			result.Task = tasks[kanban.Find(tasks, m.TaskID)]
			record = func(ctx context.Context) {
				s.logUpdate(ctx, m.TaskID, *change)
			}
		}

	case primary.ActionCreate:
		task := s.newManualTask(m.Create, now)
		tasks = append(tasks, task)
		result.Changed = true
		result.Task = task
		record = func(ctx context.Context) {
			s.logCreate(ctx, task.ID)
		}

	case primary.ActionUpdate:
		if i := kanban.Find(tasks, m.ID); i >= 0 {
			changes := kanban.ApplyPatch(tasks[i], m.Updates, now)
			result.Changed = true
			result.Task = tasks[i]
			record = func(ctx context.Context) {
				for _, c := range changes {
					s.logUpdate(ctx, m.ID, c)
				}
			}
		}

	case primary.ActionDelete:
		var removed *models.KanbanTask
		tasks, removed = kanban.Remove(tasks, m.ID)
		if removed != nil {
			result.Changed = true
			record = func(ctx context.Context) {
				s.logDelete(ctx, removed.ID)
			}
		}
	}

	if result.Changed {
		if err := s.store.Save(ctx, tasks); err != nil {
			return nil, fmt.Errorf("failed to save kanban tasks: %w", err)
		}
		if record != nil {
			record(ctx)
		}
		s.hub.Publish(newBoard(tasks))
	}

	result.Tasks = tasks
	return result, nil
}

// AppendTask adds an already built task to the board.
func (s *KanbanServiceImpl) AppendTask(ctx context.Context, task *models.KanbanTask) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load kanban tasks: %w", err)
	}
	tasks = append(tasks, task)
	kanban.EnsureUniqueIDs(tasks)
	if err := s.store.Save(ctx, tasks); err != nil {
		return fmt.Errorf("failed to save kanban tasks: %w", err)
	}
	s.logCreate(ctx, task.ID)
	s.hub.Publish(newBoard(tasks))
	return nil
}

func (s *KanbanServiceImpl) newManualTask(req primary.CreateKanbanTaskRequest, now time.Time) *models.KanbanTask {
	c := kanban.Candidate{
		Title:       strings.TrimSpace(req.Title),
		Status:      req.Status,
		Priority:    req.Priority,
		Project:     req.Project,
		Source:      models.SourceManual,
		Owner:       req.Owner,
		Description: req.Description,
	}
	if c.Status == "" {
		c.Status = models.StatusBacklog
	}
	if c.Priority == "" {
		c.Priority = models.PriorityMedium
	}
	if c.Project == "" {
		c.Project = models.ProjectOther
	}

	task := kanban.Materialize(c, now, s.newID)
	if req.Tags != nil {
		task.Tags = append([]string{}, req.Tags...)
	}
	return task
}

// readNote returns the note content, or "" when it is missing or unreadable.
func (s *KanbanServiceImpl) readNote(ctx context.Context, name string) string {
	if s.notes == nil {
		return ""
	}
	content, err := s.notes.ReadNote(ctx, name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("note not found", zap.String("note", name))
		} else {
			s.logger.Warn("note unreadable", zap.String("note", name), zap.Error(err))
		}
		return ""
	}
	return content
}

// listAgents returns live agents, or none when the feed fails.
func (s *KanbanServiceImpl) listAgents(ctx context.Context) []models.Agent {
	if s.agents == nil {
		return nil
	}
	agents, err := s.agents.ListAgents(ctx)
	if err != nil {
		s.logger.Warn("agent status unavailable", zap.Error(err))
		return nil
	}
	return agents
}

func (s *KanbanServiceImpl) logCreate(ctx context.Context, id string) {
	if s.logWriter == nil {
		return
	}
	if err := s.logWriter.LogCreate(ctx, entityKanbanTask, id); err != nil {
		s.logger.Warn("failed to record activity", zap.String("task", id), zap.Error(err))
	}
}

func (s *KanbanServiceImpl) logUpdate(ctx context.Context, id string, c kanban.FieldChange) {
	if s.logWriter == nil {
		return
	}
	if err := s.logWriter.LogUpdate(ctx, entityKanbanTask, id, c.Field, c.OldValue, c.NewValue); err != nil {
		s.logger.Warn("failed to record activity", zap.String("task", id), zap.Error(err))
	}
}

func (s *KanbanServiceImpl) logDelete(ctx context.Context, id string) {
	if s.logWriter == nil {
		return
	}
	if err := s.logWriter.LogDelete(ctx, entityKanbanTask, id); err != nil {
		s.logger.Warn("failed to record activity", zap.String("task", id), zap.Error(err))
	}
}

func newBoard(tasks []*models.KanbanTask) *primary.KanbanBoard {
	if tasks == nil {
		tasks = []*models.KanbanTask{}
	}
	return &primary.KanbanBoard{
		Tasks:         tasks,
		Columns:       kanban.Columns(),
		ProjectColors: kanban.ProjectColors(),
	}
}

// invalidRequest wraps a validator error so callers can map it to a client error.
func invalidRequest(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
		return fmt.Errorf("%w: %s", ErrInvalidRequest, strings.Join(fields, "; "))
	}
	return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
}

// Ensure KanbanServiceImpl implements the interface
var _ primary.KanbanService = (*KanbanServiceImpl)(nil)
