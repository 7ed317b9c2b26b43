// Package catalog fetches the published LessonCraft catalog.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/example/commandcenter/internal/core/lessoncraft"
	"github.com/example/commandcenter/internal/ports/secondary"
)

// Client implements secondary.CatalogSource.
type Client struct {
	url     string
	timeout time.Duration
	client  *http.Client
}

// NewClient creates a catalog client for url.
func NewClient(url string, timeout time.Duration, client *http.Client) *Client {
	if client == nil {
		client = http.DefaultClient
	}
	return &Client{url: url, timeout: timeout, client: client}
}

// FetchCatalog downloads and decodes the catalog, bypassing caches.
func (c *Client) FetchCatalog(ctx context.Context) (*lessoncraft.Catalog, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &secondary.UpstreamError{
			Service:    "catalog",
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("Catalog request failed with status %d", resp.StatusCode),
		}
	}

	var catalog lessoncraft.Catalog
	if err := json.NewDecoder(resp.Body).Decode(&catalog); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	return &catalog, nil
}

var _ secondary.CatalogSource = (*Client)(nil)
