package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/example/commandcenter/internal/core/kanban"
	"github.com/example/commandcenter/internal/models"
	"github.com/example/commandcenter/internal/ports/primary"
)

// kanbanRequest is the POST /api/kanban body. Which fields are read
// depends on Action.
type kanbanRequest struct {
	Action string `json:"action"`

	// move
	TaskID    string        `json:"taskId"`
	NewStatus models.Status `json:"newStatus"`

	// update and delete
	ID      string      `json:"id"`
	Updates taskUpdates `json:"updates"`

	// create
	Title       string          `json:"title"`
	Status      models.Status   `json:"status"`
	Priority    models.Priority `json:"priority"`
	Project     models.Project  `json:"project"`
	Owner       string          `json:"owner"`
	Description string          `json:"description"`
	Tags        []string        `json:"tags"`
}

// taskUpdates is the partial task of an update. Absent fields stay untouched.
type taskUpdates struct {
	Title       *string          `json:"title"`
	Status      *models.Status   `json:"status"`
	Priority    *models.Priority `json:"priority"`
	Project     *models.Project  `json:"project"`
	Owner       *string          `json:"owner"`
	Description *string          `json:"description"`
	Tags        *[]string        `json:"tags"`
}

func (r kanbanRequest) mutation() primary.KanbanMutation {
	return primary.KanbanMutation{
		Action:    r.Action,
		TaskID:    r.TaskID,
		NewStatus: r.NewStatus,
		ID:        r.ID,
		Updates: kanban.Patch{
			Title:       r.Updates.Title,
			Status:      r.Updates.Status,
			Priority:    r.Updates.Priority,
			Project:     r.Updates.Project,
			Owner:       r.Updates.Owner,
			Description: r.Updates.Description,
			Tags:        r.Updates.Tags,
		},
		Create: primary.CreateKanbanTaskRequest{
			Title:       r.Title,
			Status:      r.Status,
			Priority:    r.Priority,
			Project:     r.Project,
			Owner:       r.Owner,
			Description: r.Description,
			Tags:        r.Tags,
		},
	}
}

func (s *server) getKanban(c *gin.Context) {
	board, err := s.Kanban.Sync(c.Request.Context())
	if err != nil {
		s.fail(c, err, "Failed to load kanban tasks")
		return
	}
	c.JSON(http.StatusOK, board)
}

func (s *server) postKanban(c *gin.Context) {
	var req kanbanRequest
	if err := bind(c, &req); err != nil {
		s.fail(c, err, "Failed to update kanban tasks")
		return
	}

	res, err := s.Kanban.Apply(c.Request.Context(), req.mutation())
	if err != nil {
		s.fail(c, err, "Failed to update kanban tasks")
		return
	}
	c.JSON(http.StatusOK, res)
}

// streamKanban sends the current board, then every board published by a
// sync or mutation, as SSE "board" events until the client disconnects.
func (s *server) streamKanban(c *gin.Context) {
	ctx := c.Request.Context()

	board, err := s.Kanban.Board(ctx)
	if err != nil {
		s.fail(c, err, "Failed to load kanban tasks")
		return
	}

	updates, unsubscribe := s.Kanban.Subscribe()
	defer unsubscribe()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	c.SSEvent("board", board)
	c.Writer.Flush()

	ticker := time.NewTicker(s.KeepAlive)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case b, ok := <-updates:
			if !ok {
				return
			}
			c.SSEvent("board", b)
			c.Writer.Flush()
		case <-ticker.C:
			if _, err := c.Writer.WriteString(": keepalive\n\n"); err != nil {
				return
			}
			c.Writer.Flush()
		}
	}
}

func (s *server) getActivity(c *gin.Context) {
	filters := primary.ActivityFilters{
		EntityType: c.Query("entityType"),
		EntityID:   c.Query("entityId"),
		Actor:      c.Query("actor"),
		Action:     c.Query("action"),
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := parsePositive(raw)
		if err != nil {
			s.fail(c, err, "")
			return
		}
		filters.Limit = limit
	}

	entries, err := s.Activity.ListActivity(c.Request.Context(), filters)
	if err != nil {
		s.fail(c, err, "Failed to fetch activity")
		return
	}
	if entries == nil {
		entries = []*primary.ActivityEntry{}
	}
	c.JSON(http.StatusOK, gin.H{"activity": entries})
}
