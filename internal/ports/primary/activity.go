package primary

import "context"

// ActivityService defines the primary port for the mutation audit trail.
type ActivityService interface {
	// ListActivity retrieves entries matching the given filters, newest first.
	ListActivity(ctx context.Context, filters ActivityFilters) ([]*ActivityEntry, error)

	// PruneActivity deletes entries older than the specified number of days.
	PruneActivity(ctx context.Context, olderThanDays int) (int, error)
}

// ActivityEntry represents one audit entry at the port boundary.
type ActivityEntry struct {
	ID         string `json:"id"`
	Timestamp  string `json:"timestamp"`
	Actor      string `json:"actor"`
	EntityType string `json:"entityType"`
	EntityID   string `json:"entityId"`
	Action     string `json:"action"` // 'create', 'update', 'delete', 'sync'
	FieldName  string `json:"fieldName,omitempty"`
	OldValue   string `json:"oldValue,omitempty"`
	NewValue   string `json:"newValue,omitempty"`
}

// ActivityFilters contains filter options for querying activity.
type ActivityFilters struct {
	EntityType string
	EntityID   string
	Actor      string
	Action     string
	Limit      int
}
