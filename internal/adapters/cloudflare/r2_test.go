package cloudflare

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/commandcenter/internal/core/lessoncraft"
	"github.com/example/commandcenter/internal/ports/secondary"
)

var testCreds = Credentials{AccountID: "acct", Email: "ops@example.com", APIKey: "key"}

func TestR2Client_ListObjectsPaginates(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "/accounts/acct/r2/buckets/audio/objects", r.URL.Path)
		assert.Equal(t, "1000", r.URL.Query().Get("per_page"))
		assert.Equal(t, "ops@example.com", r.Header.Get("X-Auth-Email"))
		assert.Equal(t, "key", r.Header.Get("X-Auth-Key"))

		if r.URL.Query().Get("cursor") == "" {
			fmt.Fprint(w, `{"success":true,"result":[{"key":"easter/a.mp3","size":10,"http_metadata":{"contentType":"audio/mpeg"}}],"result_info":{"cursor":"next","is_truncated":true}}`)
			return
		}
		assert.Equal(t, "next", r.URL.Query().Get("cursor"))
		fmt.Fprint(w, `{"success":true,"result":[{"key":"artwork/b.png","size":5,"last_modified":"2026-01-01T00:00:00Z"}],"result_info":{"is_truncated":false}}`)
	}))
	defer srv.Close()

	objects, err := NewR2Client(testCreds, "audio", srv.URL, srv.Client()).ListObjects(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	require.Len(t, objects, 2)
	assert.Equal(t, lessoncraft.Object{Key: "easter/a.mp3", Size: 10, ContentType: "audio/mpeg"}, objects[0])
	assert.Equal(t, "2026-01-01T00:00:00Z", objects[1].LastModified)
}

func TestR2Client_ListObjectsSafetyLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success":true,"result":[],"result_info":{"cursor":"again","is_truncated":true}}`)
	}))
	defer srv.Close()

	_, err := NewR2Client(testCreds, "audio", srv.URL, srv.Client()).ListObjects(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "safety limit")
}

func TestR2Client_ListObjectsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success":false,"errors":[{"message":"bucket missing"},{"message":""}]}`)
	}))
	defer srv.Close()

	_, err := NewR2Client(testCreds, "audio", srv.URL, srv.Client()).ListObjects(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket missing")
}

func TestR2Client_NotConfigured(t *testing.T) {
	c := NewR2Client(Credentials{AccountID: "acct"}, "audio", "http://unused", nil)

	_, err := c.ListObjects(context.Background())
	assert.ErrorIs(t, err, lessoncraft.ErrNotConfigured)

	_, err = c.GetObject(context.Background(), "a", "")
	assert.ErrorIs(t, err, lessoncraft.ErrNotConfigured)
}

func TestR2Client_GetObjectForwardsRange(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/accounts/acct/r2/buckets/audio/objects/easter%2Fep%201.mp3", r.URL.EscapedPath())
		assert.Equal(t, "bytes=0-3", r.Header.Get("Range"))
		w.Header().Set("Content-Range", "bytes 0-3/10")
		w.WriteHeader(http.StatusPartialContent)
		w.Write([]byte("abcd"))
	}))
	defer srv.Close()

	resp, err := NewR2Client(testCreds, "audio", srv.URL, srv.Client()).GetObject(context.Background(), "easter/ep 1.mp3", "bytes=0-3")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusPartialContent, resp.StatusCode)
	assert.Equal(t, "bytes 0-3/10", resp.Header.Get("Content-Range"))
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "abcd", string(body))
}

func TestR2Client_GetObjectUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such key", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewR2Client(testCreds, "audio", srv.URL, srv.Client()).GetObject(context.Background(), "missing", "")
	var upstream *secondary.UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, http.StatusNotFound, upstream.StatusCode)
	assert.Contains(t, upstream.Message, "no such key")
}
