// Package cloudflare talks to the Cloudflare R2 REST API.
package cloudflare

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/example/commandcenter/internal/core/lessoncraft"
	"github.com/example/commandcenter/internal/ports/secondary"
)

const (
	// pageSize is the largest page the listing endpoint accepts.
	pageSize = 1000
	// maxPages stops a listing whose cursor never ends.
	maxPages = 200
)

// Credentials authenticate against the Cloudflare API with a global API key.
type Credentials struct {
	AccountID string
	Email     string
	APIKey    string
}

func (c Credentials) configured() bool {
	return c.AccountID != "" && c.Email != "" && c.APIKey != ""
}

// R2Client implements secondary.ObjectStorage for one bucket.
type R2Client struct {
	creds   Credentials
	bucket  string
	baseURL string
	client  *http.Client
}

// NewR2Client creates a client for bucket. baseURL is the API root,
// normally https://api.cloudflare.com/client/v4.
func NewR2Client(creds Credentials, bucket, baseURL string, client *http.Client) *R2Client {
	if client == nil {
		client = http.DefaultClient
	}
	return &R2Client{
		creds:   creds,
		bucket:  bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

type listObject struct {
	Key          string `json:"key"`
	ETag         string `json:"etag"`
	Size         int64  `json:"size"`
	LastModified string `json:"last_modified"`
	HTTPMetadata struct {
		ContentType string `json:"contentType"`
	} `json:"http_metadata"`
}

type listResponse struct {
	Success bool `json:"success"`
	Errors  []struct {
		Message string `json:"message"`
	} `json:"errors"`
	Result     []listObject `json:"result"`
	ResultInfo struct {
		Cursor      string `json:"cursor"`
		IsTruncated bool   `json:"is_truncated"`
	} `json:"result_info"`
}

func (c *R2Client) objectsURL() string {
	return fmt.Sprintf("%s/accounts/%s/r2/buckets/%s/objects", c.baseURL, url.PathEscape(c.creds.AccountID), url.PathEscape(c.bucket))
}

// ListObjects pages through the whole bucket.
func (c *R2Client) ListObjects(ctx context.Context) ([]lessoncraft.Object, error) {
	if !c.creds.configured() {
		return nil, lessoncraft.ErrNotConfigured
	}

	var objects []lessoncraft.Object
	cursor := ""
	for page := 1; ; page++ {
		if page > maxPages {
			return nil, fmt.Errorf("r2 pagination safety limit reached after %d pages", maxPages)
		}

		params := url.Values{"per_page": {fmt.Sprint(pageSize)}}
		if cursor != "" {
			params.Set("cursor", cursor)
		}

		payload, err := c.listPage(ctx, c.objectsURL()+"?"+params.Encode())
		if err != nil {
			return nil, err
		}

		for _, o := range payload.Result {
			objects = append(objects, lessoncraft.Object{
				Key:          o.Key,
				Size:         o.Size,
				LastModified: o.LastModified,
				ContentType:  o.HTTPMetadata.ContentType,
			})
		}

		if !payload.ResultInfo.IsTruncated || payload.ResultInfo.Cursor == "" {
			break
		}
		cursor = payload.ResultInfo.Cursor
	}

	if objects == nil {
		objects = []lessoncraft.Object{}
	}
	return objects, nil
}

func (c *R2Client) listPage(ctx context.Context, endpoint string) (*listResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build r2 listing request: %w", err)
	}
	c.authorize(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("r2 listing failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &secondary.UpstreamError{
			Service:    "r2 listing",
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("R2 listing failed with status %d", resp.StatusCode),
		}
	}

	var payload listResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode r2 listing: %w", err)
	}
	if !payload.Success {
		var messages []string
		for _, e := range payload.Errors {
			if e.Message != "" {
				messages = append(messages, e.Message)
			}
		}
		if len(messages) == 0 {
			messages = []string{"Unknown R2 API error"}
		}
		return nil, fmt.Errorf("r2 listing: %s", strings.Join(messages, "; "))
	}
	return &payload, nil
}

// GetObject opens one object, forwarding rangeHeader when set. The caller
// owns the returned body. Non-2xx answers become *secondary.UpstreamError
// carrying the upstream body text.
func (c *R2Client) GetObject(ctx context.Context, key, rangeHeader string) (*secondary.ObjectResponse, error) {
	if !c.creds.configured() {
		return nil, lessoncraft.ErrNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.objectsURL()+"/"+url.PathEscape(key), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build r2 object request: %w", err)
	}
	c.authorize(req)
	if rangeHeader != "" {
		req.Header.Set("Range", rangeHeader)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("r2 object fetch failed: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return nil, &secondary.UpstreamError{
			Service:    "r2 object",
			StatusCode: resp.StatusCode,
			Message:    string(text),
		}
	}

	return &secondary.ObjectResponse{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       resp.Body,
	}, nil
}

func (c *R2Client) authorize(req *http.Request) {
	req.Header.Set("X-Auth-Email", c.creds.Email)
	req.Header.Set("X-Auth-Key", c.creds.APIKey)
}

var _ secondary.ObjectStorage = (*R2Client)(nil)
