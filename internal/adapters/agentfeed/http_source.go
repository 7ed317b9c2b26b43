// Package agentfeed reads the live agent status list, either from a remote
// status endpoint or from the local roster file.
package agentfeed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/example/commandcenter/internal/models"
	"github.com/example/commandcenter/internal/ports/secondary"
)

// feed is the wire shape of both the status endpoint and the roster file.
type feed struct {
	Agents []models.Agent `json:"agents"`
}

// HTTPSource implements secondary.AgentStatusSource over GET {url}.
type HTTPSource struct {
	url     string
	timeout time.Duration
	client  *http.Client
}

// NewHTTPSource creates a source for url. Each call is bounded by timeout.
func NewHTTPSource(url string, timeout time.Duration, client *http.Client) *HTTPSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{url: url, timeout: timeout, client: client}
}

// ListAgents fetches the current agent list.
func (s *HTTPSource) ListAgents(ctx context.Context) ([]models.Agent, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build agent status request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch agent status: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &secondary.UpstreamError{Service: "agent status", StatusCode: resp.StatusCode, Message: resp.Status}
	}

	var f feed
	if err := json.NewDecoder(resp.Body).Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to decode agent status: %w", err)
	}
	return f.Agents, nil
}

var _ secondary.AgentStatusSource = (*HTTPSource)(nil)
