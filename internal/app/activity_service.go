package app

import (
	"context"
	"fmt"

	"github.com/example/commandcenter/internal/ports/primary"
	"github.com/example/commandcenter/internal/ports/secondary"
)

// defaultActivityLimit caps a listing when the caller sets no limit.
const defaultActivityLimit = 50

// ActivityServiceImpl implements the ActivityService interface.
type ActivityServiceImpl struct {
	repo secondary.ActivityRepository
}

// NewActivityService creates a new ActivityService with injected dependencies.
func NewActivityService(repo secondary.ActivityRepository) *ActivityServiceImpl {
	return &ActivityServiceImpl{
		repo: repo,
	}
}

// ListActivity retrieves entries matching the given filters.
func (s *ActivityServiceImpl) ListActivity(ctx context.Context, filters primary.ActivityFilters) ([]*primary.ActivityEntry, error) {
	limit := filters.Limit
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	records, err := s.repo.List(ctx, secondary.ActivityFilters{
		EntityType: filters.EntityType,
		EntityID:   filters.EntityID,
		Actor:      filters.Actor,
		Action:     filters.Action,
		Limit:      limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}

	entries := make([]*primary.ActivityEntry, len(records))
	for i, r := range records {
		entries[i] = recordToActivityEntry(r)
	}
	return entries, nil
}

// PruneActivity deletes entries older than the specified number of days.
func (s *ActivityServiceImpl) PruneActivity(ctx context.Context, olderThanDays int) (int, error) {
	if olderThanDays < 1 {
		return 0, fmt.Errorf("%w: days must be at least 1", ErrInvalidRequest)
	}
	return s.repo.PruneOlderThan(ctx, olderThanDays)
}

func recordToActivityEntry(r *secondary.ActivityRecord) *primary.ActivityEntry {
	return &primary.ActivityEntry{
		ID:         r.ID,
		Timestamp:  r.Timestamp,
		Actor:      r.Actor,
		EntityType: r.EntityType,
		EntityID:   r.EntityID,
		Action:     r.Action,
		FieldName:  r.FieldName,
		OldValue:   r.OldValue,
		NewValue:   r.NewValue,
	}
}

// Ensure ActivityServiceImpl implements the interface
var _ primary.ActivityService = (*ActivityServiceImpl)(nil)
