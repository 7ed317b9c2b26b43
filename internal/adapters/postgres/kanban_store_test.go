package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/commandcenter/internal/models"
)

// Runs only against a disposable database: the table is cleared.
func TestKanbanStore_RoundTrip(t *testing.T) {
	dsn := os.Getenv("CC_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("CC_TEST_POSTGRES_DSN not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := Connect(ctx, dsn)
	require.NoError(t, err)
	defer store.Close()

	now := time.Now().UTC().Truncate(time.Microsecond)
	in := []*models.KanbanTask{
		{ID: "manual-1", Title: "First", Status: models.StatusDone, Priority: models.PriorityHigh,
			Project: models.ProjectContent, Owner: "Manual", Source: models.SourceManual,
			CreatedAt: now, UpdatedAt: now, Tags: []string{"a", "b"}},
		{ID: "todo-1", Title: "Second", Status: models.StatusBacklog, Priority: models.PriorityMedium,
			Project: models.ProjectOther, Owner: "System", Source: models.SourceTodo,
			CreatedAt: now, UpdatedAt: now, Tags: nil},
	}
	require.NoError(t, store.Save(ctx, in))

	out, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "manual-1", out[0].ID)
	assert.Equal(t, []string{"a", "b"}, out[0].Tags)
	assert.Equal(t, models.StatusDone, out[0].Status)
	assert.True(t, now.Equal(out[0].CreatedAt))
	assert.Equal(t, []string{}, out[1].Tags)

	require.NoError(t, store.Save(ctx, nil))
	out, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, out)
}
