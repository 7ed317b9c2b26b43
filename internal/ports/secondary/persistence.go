// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import (
	"context"

	"github.com/example/commandcenter/internal/models"
)

// KanbanStore defines the secondary port for the kanban task collection.
// The collection is always read and written whole.
type KanbanStore interface {
	// Load returns every stored task, normalized. Missing or unparseable
	// storage yields an empty slice and a nil error; only infrastructure
	// failures are reported.
	Load(ctx context.Context) ([]*models.KanbanTask, error)

	// Save replaces the entire collection. A failed save leaves the
	// previous collection intact.
	Save(ctx context.Context, tasks []*models.KanbanTask) error
}

// CollectionStore is a whole-document store for one of the small JSON
// collections (directives, feature requests, recovered tasks).
type CollectionStore[T any] interface {
	// Load returns the collection; a missing document is an empty collection.
	Load(ctx context.Context) ([]*T, error)

	// Save replaces the collection.
	Save(ctx context.Context, items []*T) error
}

// ActivityRepository defines the secondary port for activity log (audit trail) persistence.
// Entries are immutable - no Update operations, but old entries can be pruned.
type ActivityRepository interface {
	// Create persists a new entry.
	Create(ctx context.Context, entry *ActivityRecord) error

	// List retrieves entries matching the given filters, newest first.
	List(ctx context.Context, filters ActivityFilters) ([]*ActivityRecord, error)

	// PruneOlderThan deletes entries older than the given number of days.
	// Returns the number of deleted entries.
	PruneOlderThan(ctx context.Context, days int) (int, error)
}

// ActivityRecord represents an activity entry as stored in persistence.
type ActivityRecord struct {
	ID         string
	Timestamp  string
	Actor      string
	EntityType string
	EntityID   string
	Action     string // 'create', 'update', 'delete', 'sync'
	FieldName  string // Empty string means null - for updates only
	OldValue   string // Empty string means null
	NewValue   string // Empty string means null
}

// ActivityFilters contains filter options for querying activity.
type ActivityFilters struct {
	EntityType string
	EntityID   string
	Actor      string
	Action     string
	Limit      int
}
