package sqlite

import (
	"context"
	"strconv"

	"github.com/google/uuid"

	"github.com/example/commandcenter/internal/ctxutil"
	"github.com/example/commandcenter/internal/ports/secondary"
)

// LogWriterAdapter implements secondary.LogWriter using an ActivityRepository.
type LogWriterAdapter struct {
	repo secondary.ActivityRepository
}

// NewLogWriterAdapter creates a new LogWriterAdapter.
func NewLogWriterAdapter(repo secondary.ActivityRepository) *LogWriterAdapter {
	return &LogWriterAdapter{repo: repo}
}

// LogCreate logs a create operation for an entity.
func (w *LogWriterAdapter) LogCreate(ctx context.Context, entityType, entityID string) error {
	return w.writeLog(ctx, entityType, entityID, "create", "", "", "")
}

// LogUpdate logs an update operation for an entity field.
func (w *LogWriterAdapter) LogUpdate(ctx context.Context, entityType, entityID, fieldName, oldValue, newValue string) error {
	return w.writeLog(ctx, entityType, entityID, "update", fieldName, oldValue, newValue)
}

// LogDelete logs a delete operation for an entity.
func (w *LogWriterAdapter) LogDelete(ctx context.Context, entityType, entityID string) error {
	return w.writeLog(ctx, entityType, entityID, "delete", "", "", "")
}

// LogSync logs a sync pass; the count of added entities goes in new_value.
func (w *LogWriterAdapter) LogSync(ctx context.Context, entityType string, count int) error {
	return w.writeLog(ctx, entityType, "", "sync", "added", "", strconv.Itoa(count))
}

func (w *LogWriterAdapter) writeLog(ctx context.Context, entityType, entityID, action, fieldName, oldValue, newValue string) error {
	return w.repo.Create(ctx, &secondary.ActivityRecord{
		ID:         "ACT-" + uuid.NewString(),
		Actor:      ctxutil.ActorFromContext(ctx),
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		FieldName:  fieldName,
		OldValue:   oldValue,
		NewValue:   newValue,
	})
}

// Ensure LogWriterAdapter implements the interface
var _ secondary.LogWriter = (*LogWriterAdapter)(nil)
