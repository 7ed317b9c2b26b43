package primary

import (
	"context"
	"io"

	"github.com/example/commandcenter/internal/core/lessoncraft"
)

// LessonCraftService defines the primary port for the LessonCraft asset view.
type LessonCraftService interface {
	// Dashboard joins the catalog with the bucket listing.
	Dashboard(ctx context.Context) (*lessoncraft.Dashboard, error)

	// OpenObject streams one object, forwarding a Range header when set.
	// download selects an attachment disposition instead of inline.
	OpenObject(ctx context.Context, key, rangeHeader string, download bool) (*ObjectStream, error)
}

// ObjectStream is a proxied object body. The caller must close Body.
type ObjectStream struct {
	StatusCode int
	Header     map[string]string
	Body       io.ReadCloser
}

// VoiceService defines the primary port for text-to-speech previews.
type VoiceService interface {
	Generate(ctx context.Context, req VoiceRequest) ([]byte, error)
}

// VoiceRequest contains parameters for generating speech.
// Nil settings take the defaults 0.5 stability and 0.75 similarity.
type VoiceRequest struct {
	VoiceID    string   `json:"voiceId" validate:"required"`
	Text       string   `json:"text" validate:"required"`
	Stability  *float64 `json:"stability" validate:"omitempty,min=0,max=1"`
	Similarity *float64 `json:"similarity" validate:"omitempty,min=0,max=1"`
}
