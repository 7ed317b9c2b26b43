package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/commandcenter/internal/ports/secondary"
)

// ActivityRepository implements secondary.ActivityRepository with SQLite.
type ActivityRepository struct {
	db *sql.DB
}

// NewActivityRepository creates a new SQLite activity repository.
func NewActivityRepository(db *sql.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Create persists a new activity entry. An empty Timestamp means now.
func (r *ActivityRepository) Create(ctx context.Context, entry *secondary.ActivityRecord) error {
	var timestamp, actor, fieldName, oldValue, newValue sql.NullString
	if entry.Timestamp != "" {
		timestamp = sql.NullString{String: entry.Timestamp, Valid: true}
	}
	if entry.Actor != "" {
		actor = sql.NullString{String: entry.Actor, Valid: true}
	}
	if entry.FieldName != "" {
		fieldName = sql.NullString{String: entry.FieldName, Valid: true}
	}
	if entry.OldValue != "" {
		oldValue = sql.NullString{String: entry.OldValue, Valid: true}
	}
	if entry.NewValue != "" {
		newValue = sql.NullString{String: entry.NewValue, Valid: true}
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO activity_log (id, timestamp, actor, entity_type, entity_id, action, field_name, old_value, new_value) VALUES (?, COALESCE(?, CURRENT_TIMESTAMP), ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		timestamp,
		actor,
		entry.EntityType,
		entry.EntityID,
		entry.Action,
		fieldName,
		oldValue,
		newValue,
	)
	if err != nil {
		return fmt.Errorf("failed to create activity entry: %w", err)
	}

	return nil
}

// List retrieves entries matching the given filters, newest first.
func (r *ActivityRepository) List(ctx context.Context, filters secondary.ActivityFilters) ([]*secondary.ActivityRecord, error) {
	query := `SELECT id, timestamp, actor, entity_type, entity_id, action, field_name, old_value, new_value FROM activity_log WHERE 1=1`
	args := []any{}

	if filters.EntityType != "" {
		query += " AND entity_type = ?"
		args = append(args, filters.EntityType)
	}

	if filters.EntityID != "" {
		query += " AND entity_id = ?"
		args = append(args, filters.EntityID)
	}

	if filters.Actor != "" {
		query += " AND actor = ?"
		args = append(args, filters.Actor)
	}

	if filters.Action != "" {
		query += " AND action = ?"
		args = append(args, filters.Action)
	}

	// rowid breaks ties between entries written in the same second.
	query += " ORDER BY timestamp DESC, rowid DESC"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	defer rows.Close()

	var entries []*secondary.ActivityRecord
	for rows.Next() {
		var (
			actor     sql.NullString
			fieldName sql.NullString
			oldValue  sql.NullString
			newValue  sql.NullString
			timestamp time.Time
		)

		record := &secondary.ActivityRecord{}
		err := rows.Scan(&record.ID,
			&timestamp,
			&actor,
			&record.EntityType,
			&record.EntityID,
			&record.Action,
			&fieldName,
			&oldValue,
			&newValue)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity entry: %w", err)
		}
		record.Timestamp = timestamp.Format(time.RFC3339)
		record.Actor = actor.String
		record.FieldName = fieldName.String
		record.OldValue = oldValue.String
		record.NewValue = newValue.String

		entries = append(entries, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read activity: %w", err)
	}

	return entries, nil
}

// PruneOlderThan deletes entries older than the given number of days.
func (r *ActivityRepository) PruneOlderThan(ctx context.Context, days int) (int, error) {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM activity_log WHERE timestamp < datetime('now', ?)",
		fmt.Sprintf("-%d days", days),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to prune activity: %w", err)
	}

	count, _ := result.RowsAffected()
	return int(count), nil
}

// Ensure ActivityRepository implements the interface
var _ secondary.ActivityRepository = (*ActivityRepository)(nil)
