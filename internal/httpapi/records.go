package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/example/commandcenter/internal/ports/primary"
)

// statusUpdate is the PUT body shared by directives and recovered tasks.
type statusUpdate struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func (s *server) getDirectives(c *gin.Context) {
	items, err := s.Directives.ListDirectives(c.Request.Context())
	if err != nil {
		s.fail(c, err, "Failed to fetch directives")
		return
	}
	c.JSON(http.StatusOK, gin.H{"directives": items})
}

func (s *server) postDirective(c *gin.Context) {
	var req primary.CreateDirectiveRequest
	if err := bind(c, &req); err != nil {
		s.fail(c, err, "Failed to add directive")
		return
	}
	d, err := s.Directives.CreateDirective(c.Request.Context(), req)
	if err != nil {
		s.fail(c, err, "Failed to add directive")
		return
	}
	c.JSON(http.StatusCreated, d)
}

func (s *server) putDirective(c *gin.Context) {
	var req statusUpdate
	if err := bind(c, &req); err != nil {
		s.fail(c, err, "Failed to update directive")
		return
	}
	d, err := s.Directives.UpdateDirectiveStatus(c.Request.Context(), req.ID, req.Status)
	if err != nil {
		s.fail(c, err, "Failed to update directive")
		return
	}
	c.JSON(http.StatusOK, d)
}

func (s *server) getFeatureRequests(c *gin.Context) {
	items, err := s.FeatureRequests.ListFeatureRequests(c.Request.Context())
	if err != nil {
		s.fail(c, err, "Failed to fetch feature requests")
		return
	}
	c.JSON(http.StatusOK, gin.H{"featureRequests": items})
}

func (s *server) postFeatureRequest(c *gin.Context) {
	var req primary.CreateFeatureRequest
	if err := bind(c, &req); err != nil {
		s.fail(c, err, "Failed to add feature request")
		return
	}
	f, err := s.FeatureRequests.CreateFeatureRequest(c.Request.Context(), req)
	if err != nil {
		s.fail(c, err, "Failed to add feature request")
		return
	}
	c.JSON(http.StatusCreated, f)
}

func (s *server) putFeatureRequest(c *gin.Context) {
	var req primary.UpdateFeatureRequest
	if err := bind(c, &req); err != nil {
		s.fail(c, err, "Failed to update feature request")
		return
	}
	f, err := s.FeatureRequests.UpdateFeatureRequest(c.Request.Context(), req)
	if err != nil {
		s.fail(c, err, "Failed to update feature request")
		return
	}
	c.JSON(http.StatusOK, f)
}

func (s *server) getRecoveredTasks(c *gin.Context) {
	items, err := s.RecoveredTasks.ListRecoveredTasks(c.Request.Context())
	if err != nil {
		s.fail(c, err, "Failed to fetch recovered tasks")
		return
	}
	c.JSON(http.StatusOK, gin.H{"recoveredTasks": items})
}

func (s *server) putRecoveredTask(c *gin.Context) {
	var req statusUpdate
	if err := bind(c, &req); err != nil {
		s.fail(c, err, "Failed to update task")
		return
	}
	t, err := s.RecoveredTasks.UpdateRecoveredTaskStatus(c.Request.Context(), req.ID, req.Status)
	if err != nil {
		s.fail(c, err, "Failed to update task")
		return
	}
	c.JSON(http.StatusOK, t)
}
