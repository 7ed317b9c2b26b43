package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/example/commandcenter/internal/adapters/elevenlabs"
	"github.com/example/commandcenter/internal/app"
	"github.com/example/commandcenter/internal/core/kanban"
	"github.com/example/commandcenter/internal/core/lessoncraft"
	"github.com/example/commandcenter/internal/core/records"
	"github.com/example/commandcenter/internal/ports/secondary"
)

// errBadBody marks a request body that is not valid JSON for the endpoint.
var errBadBody = errors.New("invalid request body")

// fail writes err as a JSON error. Client errors carry their own message;
// server errors use generic and hide the cause, which is logged instead.
func (s *server) fail(c *gin.Context, err error, generic string) {
	var upstream *secondary.UpstreamError
	var cmdErr *secondary.CommandError

	switch {
	case errors.Is(err, errBadBody),
		errors.Is(err, app.ErrInvalidRequest),
		errors.Is(err, kanban.ErrInvalidMutation),
		errors.Is(err, records.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, records.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	case errors.As(err, &upstream):
		status := upstream.StatusCode
		if status < 400 {
			status = http.StatusBadGateway
		}
		s.Log.Warn("upstream failure", zap.String("path", c.Request.URL.Path), zap.Error(err))
		c.JSON(status, gin.H{"error": upstream.Message, "status": upstream.StatusCode})

	case errors.Is(err, lessoncraft.ErrNotConfigured):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cloudflare credentials are not configured"})

	case errors.Is(err, elevenlabs.ErrMissingAPIKey):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "ElevenLabs API key is not configured"})

	case errors.As(err, &cmdErr):
		s.Log.Error("gateway command failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": generic, "details": cmdErr.Error()})

	default:
		s.Log.Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": generic})
	}
}

// bind decodes the JSON body into v.
func bind(c *gin.Context, v any) error {
	if err := c.ShouldBindJSON(v); err != nil {
		return fmt.Errorf("%w: %v", errBadBody, err)
	}
	return nil
}
