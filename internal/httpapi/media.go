package httpapi

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/example/commandcenter/internal/ports/primary"
)

func (s *server) getMemory(c *gin.Context) {
	summary, err := s.Workspace.MemoryFiles(c.Request.Context(), c.Query("render") == "html")
	if err != nil {
		s.fail(c, err, "Failed to fetch memory files")
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (s *server) getProjects(c *gin.Context) {
	projects, err := s.Workspace.Projects(c.Request.Context())
	if err != nil {
		s.fail(c, err, "Failed to fetch projects")
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

func (s *server) postVoice(c *gin.Context) {
	var req primary.VoiceRequest
	if err := bind(c, &req); err != nil {
		s.fail(c, err, "Internal server error")
		return
	}
	audio, err := s.Voice.Generate(c.Request.Context(), req)
	if err != nil {
		s.fail(c, err, "Internal server error")
		return
	}
	c.Header("Content-Length", strconv.Itoa(len(audio)))
	c.Data(http.StatusOK, "audio/mpeg", audio)
}

func (s *server) getLessonCraft(c *gin.Context) {
	dashboard, err := s.LessonCraft.Dashboard(c.Request.Context())
	if err != nil {
		s.fail(c, err, "Failed to load LessonCraft asset data")
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

func (s *server) getLessonCraftObject(c *gin.Context) {
	stream, err := s.LessonCraft.OpenObject(
		c.Request.Context(),
		c.Query("key"),
		c.GetHeader("Range"),
		c.Query("download") == "1",
	)
	if err != nil {
		s.fail(c, err, "Unexpected proxy error")
		return
	}
	defer stream.Body.Close()

	for name, value := range stream.Header {
		c.Header(name, value)
	}
	c.Status(stream.StatusCode)
	if _, err := io.Copy(c.Writer, stream.Body); err != nil {
		s.Log.Debug("object stream interrupted", zap.String("key", c.Query("key")), zap.Error(err))
	}
}
