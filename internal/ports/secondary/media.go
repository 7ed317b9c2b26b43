package secondary

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/example/commandcenter/internal/core/lessoncraft"
)

// ObjectStorage defines the secondary port for the LessonCraft bucket.
type ObjectStorage interface {
	// ListObjects returns every object of the bucket.
	ListObjects(ctx context.Context) ([]lessoncraft.Object, error)

	// GetObject opens one object. rangeHeader is forwarded when non-empty.
	// A non-2xx upstream answer is returned as *UpstreamError.
	GetObject(ctx context.Context, key, rangeHeader string) (*ObjectResponse, error)
}

// ObjectResponse is an open object body with its upstream status and headers.
type ObjectResponse struct {
	StatusCode int
	Header     http.Header
	Body       io.ReadCloser
}

// CatalogSource defines the secondary port for the LessonCraft catalog.
type CatalogSource interface {
	FetchCatalog(ctx context.Context) (*lessoncraft.Catalog, error)
}

// SpeechSynthesizer defines the secondary port for text-to-speech.
type SpeechSynthesizer interface {
	// Synthesize returns audio/mpeg bytes.
	Synthesize(ctx context.Context, req SpeechRequest) ([]byte, error)
}

// SpeechRequest contains the synthesis parameters.
type SpeechRequest struct {
	VoiceID    string
	Text       string
	Stability  float64
	Similarity float64
}

// UpstreamError carries the status code and message of a failed upstream call
// so that handlers can mirror it.
type UpstreamError struct {
	Service    string
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s returned status %d: %s", e.Service, e.StatusCode, e.Message)
}
