package app

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/example/commandcenter/internal/core/kanban"
	"github.com/example/commandcenter/internal/core/records"
	"github.com/example/commandcenter/internal/models"
	"github.com/example/commandcenter/internal/ports/primary"
	"github.com/example/commandcenter/internal/ports/secondary"
)

// TaskAppender adds a ready-made task to the kanban board.
type TaskAppender interface {
	AppendTask(ctx context.Context, task *models.KanbanTask) error
}

// DirectiveServiceImpl implements the DirectiveService interface.
type DirectiveServiceImpl struct {
	store    secondary.CollectionStore[models.Directive]
	logger   *zap.Logger
	validate *validator.Validate
	now      func() time.Time
	mu       sync.Mutex
}

// NewDirectiveService creates a new DirectiveService with injected dependencies.
func NewDirectiveService(store secondary.CollectionStore[models.Directive], logger *zap.Logger) *DirectiveServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DirectiveServiceImpl{
		store:    store,
		logger:   logger,
		validate: validator.New(),
		now:      time.Now,
	}
}

// ListDirectives returns every directive. An unreadable store lists as empty.
func (s *DirectiveServiceImpl) ListDirectives(ctx context.Context) ([]*models.Directive, error) {
	items, err := s.store.Load(ctx)
	if err != nil {
		s.logger.Warn("directives unreadable", zap.Error(err))
		return []*models.Directive{}, nil
	}
	return nonNil(items), nil
}

// CreateDirective appends a directive with status New unless one is given.
func (s *DirectiveServiceImpl) CreateDirective(ctx context.Context, req primary.CreateDirectiveRequest) (*models.Directive, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := s.validate.Struct(req); err != nil {
		return nil, invalidRequest(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load directives: %w", err)
	}

	now := s.now().UTC()
	d := &models.Directive{
		ID:          records.NewID("directive", now),
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Project:     req.Project,
		Status:      req.Status,
		Priority:    req.Priority,
		CreatedBy:   req.CreatedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if d.Status == "" {
		d.Status = models.DirectiveStatusNew
	}

	if err := s.store.Save(ctx, append(items, d)); err != nil {
		return nil, fmt.Errorf("failed to save directives: %w", err)
	}
	return d, nil
}

// UpdateDirectiveStatus sets the status of one directive.
func (s *DirectiveServiceImpl) UpdateDirectiveStatus(ctx context.Context, id, status string) (*models.Directive, error) {
	if err := records.CheckStatus(status, records.DirectiveStatuses); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load directives: %w", err)
	}
	for _, d := range items {
		if d.ID != id {
			continue
		}
		d.Status = status
		d.UpdatedAt = s.now().UTC()
		if err := s.store.Save(ctx, items); err != nil {
			return nil, fmt.Errorf("failed to save directives: %w", err)
		}
		return d, nil
	}
	return nil, fmt.Errorf("directive %s: %w", id, records.ErrNotFound)
}

// FeatureRequestServiceImpl implements the FeatureRequestService interface.
type FeatureRequestServiceImpl struct {
	store    secondary.CollectionStore[models.FeatureRequest]
	tasks    TaskAppender
	logger   *zap.Logger
	validate *validator.Validate
	now      func() time.Time
	newID    kanban.IDFunc
	mu       sync.Mutex
}

// NewFeatureRequestService creates a new FeatureRequestService with injected dependencies.
func NewFeatureRequestService(store secondary.CollectionStore[models.FeatureRequest], tasks TaskAppender, logger *zap.Logger) *FeatureRequestServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeatureRequestServiceImpl{
		store:    store,
		tasks:    tasks,
		logger:   logger,
		validate: validator.New(),
		now:      time.Now,
		newID:    kanban.NewTaskID,
	}
}

// ListFeatureRequests returns every feature request. An unreadable store lists as empty.
func (s *FeatureRequestServiceImpl) ListFeatureRequests(ctx context.Context) ([]*models.FeatureRequest, error) {
	items, err := s.store.Load(ctx)
	if err != nil {
		s.logger.Warn("feature requests unreadable", zap.Error(err))
		return []*models.FeatureRequest{}, nil
	}
	return nonNil(items), nil
}

// CreateFeatureRequest appends a feature request with status pending unless one is given.
func (s *FeatureRequestServiceImpl) CreateFeatureRequest(ctx context.Context, req primary.CreateFeatureRequest) (*models.FeatureRequest, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := s.validate.Struct(req); err != nil {
		return nil, invalidRequest(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load feature requests: %w", err)
	}

	now := s.now().UTC()
	f := &models.FeatureRequest{
		ID:          records.NewID("feature", now),
		Project:     req.Project,
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Requester:   req.Requester,
		Status:      req.Status,
		CreatedAt:   now,
	}
	if f.Status == "" {
		f.Status = models.FeatureStatusPending
	}

	if err := s.store.Save(ctx, append(items, f)); err != nil {
		return nil, fmt.Errorf("failed to save feature requests: %w", err)
	}
	return f, nil
}

// UpdateFeatureRequest sets the status and optionally converts the request
// into a manual kanban task. The status is saved before the task is added;
// a failed conversion is reported but does not roll the status back.
func (s *FeatureRequestServiceImpl) UpdateFeatureRequest(ctx context.Context, req primary.UpdateFeatureRequest) (*models.FeatureRequest, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, invalidRequest(err)
	}
	if err := records.CheckStatus(req.Status, records.FeatureStatuses); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load feature requests: %w", err)
	}

	var f *models.FeatureRequest
	for _, item := range items {
		if item.ID == req.ID {
			f = item
			break
		}
	}
	if f == nil {
		return nil, fmt.Errorf("feature request %s: %w", req.ID, records.ErrNotFound)
	}

	f.Status = req.Status
	if err := s.store.Save(ctx, items); err != nil {
		return nil, fmt.Errorf("failed to save feature requests: %w", err)
	}

	if req.ConvertToTask && s.tasks != nil {
		task := records.FeatureTask(f, s.now(), s.newID)
		if err := s.tasks.AppendTask(ctx, task); err != nil {
			return nil, fmt.Errorf("failed to convert feature request %s: %w", f.ID, err)
		}
		s.logger.Info("feature request converted", zap.String("feature", f.ID), zap.String("task", task.ID))
	}
	return f, nil
}

// RecoveredTaskServiceImpl implements the RecoveredTaskService interface.
type RecoveredTaskServiceImpl struct {
	store  secondary.CollectionStore[models.RecoveredTask]
	logger *zap.Logger
	mu     sync.Mutex
}

// NewRecoveredTaskService creates a new RecoveredTaskService with injected dependencies.
func NewRecoveredTaskService(store secondary.CollectionStore[models.RecoveredTask], logger *zap.Logger) *RecoveredTaskServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecoveredTaskServiceImpl{
		store:  store,
		logger: logger,
	}
}

// ListRecoveredTasks returns every recovered task. An unreadable store lists as empty.
func (s *RecoveredTaskServiceImpl) ListRecoveredTasks(ctx context.Context) ([]*models.RecoveredTask, error) {
	items, err := s.store.Load(ctx)
	if err != nil {
		s.logger.Warn("recovered tasks unreadable", zap.Error(err))
		return []*models.RecoveredTask{}, nil
	}
	return nonNil(items), nil
}

// UpdateRecoveredTaskStatus sets the status of one recovered task.
func (s *RecoveredTaskServiceImpl) UpdateRecoveredTaskStatus(ctx context.Context, id, status string) (*models.RecoveredTask, error) {
	if err := records.CheckStatus(status, records.RecoveredStatuses); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load recovered tasks: %w", err)
	}
	for _, t := range items {
		if t.ID != id {
			continue
		}
		t.Status = status
		if err := s.store.Save(ctx, items); err != nil {
			return nil, fmt.Errorf("failed to save recovered tasks: %w", err)
		}
		return t, nil
	}
	return nil, fmt.Errorf("recovered task %s: %w", id, records.ErrNotFound)
}

func nonNil[T any](items []*T) []*T {
	if items == nil {
		return []*T{}
	}
	return items
}

// Ensure the record services implement their interfaces
var (
	_ primary.DirectiveService      = (*DirectiveServiceImpl)(nil)
	_ primary.FeatureRequestService = (*FeatureRequestServiceImpl)(nil)
	_ primary.RecoveredTaskService  = (*RecoveredTaskServiceImpl)(nil)
	_ TaskAppender                  = (*KanbanServiceImpl)(nil)
)
