package agentfeed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/commandcenter/internal/models"
	"github.com/example/commandcenter/internal/ports/secondary"
)

func TestHTTPSource_ListAgents(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"agents":[{"name":"Scout","status":"active","currentTask":"Map the API"},{"name":"Codex","status":"idle"}]}`))
	}))
	defer srv.Close()

	agents, err := NewHTTPSource(srv.URL, time.Second, srv.Client()).ListAgents(context.Background())
	require.NoError(t, err)
	require.Len(t, agents, 2)
	assert.Equal(t, "Scout", agents[0].Name)
	assert.Equal(t, "Map the API", agents[0].CurrentTask)
}

func TestHTTPSource_UpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewHTTPSource(srv.URL, time.Second, srv.Client()).ListAgents(context.Background())
	var upstream *secondary.UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, http.StatusBadGateway, upstream.StatusCode)
}

func TestHTTPSource_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	_, err := NewHTTPSource(srv.URL, 50*time.Millisecond, srv.Client()).ListAgents(context.Background())
	assert.Error(t, err)
}

func TestRosterSource_DefaultWhenMissing(t *testing.T) {
	s := NewRosterSource(filepath.Join(t.TempDir(), "agents.json"))
	s.now = func() time.Time { return time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC) }

	agents, err := s.ListAgents(context.Background())
	require.NoError(t, err)
	require.Len(t, agents, 4)
	assert.Equal(t, "Scout", agents[2].Name)
	assert.Equal(t, models.AgentStatusActive, agents[2].Status)
	assert.Equal(t, "2026-01-01T11:55:00Z", agents[2].LastRun)
}

func TestRosterSource_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agents.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"agents":[{"name":"Solo","status":"active"}]}`), 0644))

	agents, err := NewRosterSource(path).ListAgents(context.Background())
	require.NoError(t, err)
	require.Len(t, agents, 1)
	assert.Equal(t, "Solo", agents[0].Name)
}

func TestRosterSource_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agents.json")
	require.NoError(t, os.WriteFile(path, []byte(`[`), 0644))

	_, err := NewRosterSource(path).ListAgents(context.Background())
	assert.Error(t, err)
}
