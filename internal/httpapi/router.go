// Package httpapi serves the command center JSON API over gin.
package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/example/commandcenter/internal/ctxutil"
	"github.com/example/commandcenter/internal/ports/primary"
	"github.com/example/commandcenter/internal/version"
)

// ActorHeader names the caller recorded in the activity log.
const ActorHeader = "X-Actor"

// Deps holds the services the router dispatches to.
type Deps struct {
	Log             *zap.Logger
	Kanban          primary.KanbanService
	Activity        primary.ActivityService
	Directives      primary.DirectiveService
	FeatureRequests primary.FeatureRequestService
	RecoveredTasks  primary.RecoveredTaskService
	Ops             primary.OpsService
	LessonCraft     primary.LessonCraftService
	Voice           primary.VoiceService
	Workspace       primary.WorkspaceService

	// KeepAlive is the SSE comment interval; zero means 25s.
	KeepAlive time.Duration
	now       func() time.Time
}

// server binds handlers to their dependencies.
type server struct {
	Deps
}

// zapLoggerMiddleware logs one line per request.
func zapLoggerMiddleware(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		dur := time.Since(start)
		log.Sugar().Infow("HTTP",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", dur.String(),
			"clientIP", c.ClientIP(),
		)
	}
}

// actorMiddleware stores the X-Actor header in the request context.
func actorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if actor := strings.TrimSpace(c.GetHeader(ActorHeader)); actor != "" {
			c.Request = c.Request.WithContext(ctxutil.WithActorID(c.Request.Context(), actor))
		}
		c.Next()
	}
}

// NewRouter builds the gin engine with every API route.
func NewRouter(d Deps) *gin.Engine {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if d.KeepAlive <= 0 {
		d.KeepAlive = 25 * time.Second
	}
	if d.now == nil {
		d.now = time.Now
	}
	s := &server{Deps: d}

	r := gin.New()
	r.Use(gin.Recovery(), zapLoggerMiddleware(d.Log), actorMiddleware())

	// health
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": version.Short()})
	})

	api := r.Group("/api")
	{
		api.GET("/kanban", s.getKanban)
		api.POST("/kanban", s.postKanban)
		api.GET("/kanban/stream", s.streamKanban)

		api.GET("/activity", s.getActivity)

		api.GET("/agents", s.getAgents)
		api.POST("/agents", s.postAgents)
		api.GET("/sessions", s.getSessions)
		api.GET("/cron", s.getCron)
		api.GET("/status", s.getStatus)
		api.POST("/spawn", s.postSpawn)

		api.GET("/chairman-directives", s.getDirectives)
		api.POST("/chairman-directives", s.postDirective)
		api.PUT("/chairman-directives", s.putDirective)

		api.GET("/feature-requests", s.getFeatureRequests)
		api.POST("/feature-requests", s.postFeatureRequest)
		api.PUT("/feature-requests", s.putFeatureRequest)

		api.GET("/recovered-tasks", s.getRecoveredTasks)
		api.PUT("/recovered-tasks", s.putRecoveredTask)

		api.GET("/memory", s.getMemory)
		api.GET("/projects", s.getProjects)

		api.POST("/voice/generate", s.postVoice)
		api.GET("/lessoncraft", s.getLessonCraft)
		api.GET("/lessoncraft/object", s.getLessonCraftObject)
	}

	return r
}
