package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/example/commandcenter/internal/app"
	"github.com/example/commandcenter/internal/core/records"
	"github.com/example/commandcenter/internal/ports/primary"
)

// spawnEstimate is the completion estimate quoted by the mock agent spawn.
const spawnEstimate = 5 * time.Minute

func (s *server) getAgents(c *gin.Context) {
	agents, err := s.Workspace.Agents(c.Request.Context())
	if err != nil {
		s.fail(c, err, "Failed to fetch agents")
		return
	}
	c.JSON(http.StatusOK, gin.H{"agents": agents})
}

// postAgents acknowledges a spawn request without starting anything;
// real spawns go through /api/spawn.
func (s *server) postAgents(c *gin.Context) {
	var req struct {
		AgentID string `json:"agentId"`
		Task    string `json:"task"`
	}
	if err := bind(c, &req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to spawn agent"})
		return
	}

	now := s.now()
	s.Log.Sugar().Infow("agent spawn acknowledged", "agent", req.AgentID, "task", req.Task)
	c.JSON(http.StatusOK, gin.H{
		"success":             true,
		"message":             fmt.Sprintf("Agent %s spawned successfully", req.AgentID),
		"taskId":              records.NewID("task", now),
		"estimatedCompletion": now.Add(spawnEstimate).UTC().Format(time.RFC3339Nano),
	})
}

func (s *server) getSessions(c *gin.Context) {
	sessions, err := s.Ops.ListSessions(c.Request.Context())
	if err != nil {
		s.fail(c, err, "Failed to fetch sessions")
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

func (s *server) getCron(c *gin.Context) {
	jobs, err := s.Ops.ListCronJobs(c.Request.Context())
	if err != nil {
		s.fail(c, err, "Failed to fetch cron jobs")
		return
	}
	c.JSON(http.StatusOK, gin.H{"cron": jobs})
}

func (s *server) getStatus(c *gin.Context) {
	summary, err := s.Ops.Status(c.Request.Context())
	if err != nil {
		s.fail(c, err, "Failed to fetch status")
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (s *server) postSpawn(c *gin.Context) {
	var req primary.SpawnRequest
	if err := bind(c, &req); err != nil {
		s.fail(c, err, "Failed to spawn agent")
		return
	}
	res, err := s.Ops.Spawn(c.Request.Context(), req)
	if err != nil {
		s.fail(c, err, "Failed to spawn agent")
		return
	}
	c.JSON(http.StatusOK, res)
}

func parsePositive(raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: %q is not a positive integer", app.ErrInvalidRequest, raw)
	}
	return n, nil
}
