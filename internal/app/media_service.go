package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/example/commandcenter/internal/core/lessoncraft"
	"github.com/example/commandcenter/internal/ports/primary"
	"github.com/example/commandcenter/internal/ports/secondary"
)

// passthroughHeaders are copied from the bucket response to the client.
var passthroughHeaders = []string{
	"Content-Type",
	"Content-Length",
	"Accept-Ranges",
	"ETag",
	"Last-Modified",
	"Cache-Control",
	"Content-Range",
}

// LessonCraftServiceImpl implements the LessonCraftService interface.
type LessonCraftServiceImpl struct {
	catalog secondary.CatalogSource
	storage secondary.ObjectStorage
	logger  *zap.Logger
	now     func() time.Time
}

// NewLessonCraftService creates a new LessonCraftService with injected dependencies.
func NewLessonCraftService(catalog secondary.CatalogSource, storage secondary.ObjectStorage, logger *zap.Logger) *LessonCraftServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LessonCraftServiceImpl{
		catalog: catalog,
		storage: storage,
		logger:  logger,
		now:     time.Now,
	}
}

// Dashboard fetches the catalog and the bucket listing concurrently and joins them.
func (s *LessonCraftServiceImpl) Dashboard(ctx context.Context) (*lessoncraft.Dashboard, error) {
	var (
		catalog *lessoncraft.Catalog
		objects []lessoncraft.Object
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := s.catalog.FetchCatalog(gctx)
		if err != nil {
			return fmt.Errorf("failed to fetch catalog: %w", err)
		}
		catalog = c
		return nil
	})
	g.Go(func() error {
		o, err := s.storage.ListObjects(gctx)
		if err != nil {
			return fmt.Errorf("failed to list bucket objects: %w", err)
		}
		objects = o
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	dashboard := lessoncraft.Build(*catalog, objects, s.now())
	s.logger.Debug("lessoncraft dashboard built",
		zap.Int("series", len(dashboard.Series)),
		zap.Int("objects", len(objects)))
	return &dashboard, nil
}

// OpenObject opens one bucket object for streaming.
func (s *LessonCraftServiceImpl) OpenObject(ctx context.Context, key, rangeHeader string, download bool) (*primary.ObjectStream, error) {
	if strings.TrimSpace(key) == "" {
		return nil, fmt.Errorf("%w: missing key query parameter", ErrInvalidRequest)
	}

	resp, err := s.storage.GetObject(ctx, key, rangeHeader)
	if err != nil {
		return nil, err
	}

	header := make(map[string]string, len(passthroughHeaders)+1)
	for _, name := range passthroughHeaders {
		if v := resp.Header.Get(name); v != "" {
			header[name] = v
		}
	}
	header["Content-Disposition"] = lessoncraft.ContentDisposition(key, download)

	status := resp.StatusCode
	if status == 0 {
		status = http.StatusOK
	}
	return &primary.ObjectStream{
		StatusCode: status,
		Header:     header,
		Body:       resp.Body,
	}, nil
}

// Voice defaults applied when a request leaves a setting unset.
const (
	DefaultStability  = 0.5
	DefaultSimilarity = 0.75
)

// VoiceServiceImpl implements the VoiceService interface.
type VoiceServiceImpl struct {
	synth    secondary.SpeechSynthesizer
	validate *validator.Validate
}

// NewVoiceService creates a new VoiceService with injected dependencies.
func NewVoiceService(synth secondary.SpeechSynthesizer) *VoiceServiceImpl {
	return &VoiceServiceImpl{
		synth:    synth,
		validate: validator.New(),
	}
}

// Generate synthesizes speech and returns audio/mpeg bytes.
func (s *VoiceServiceImpl) Generate(ctx context.Context, req primary.VoiceRequest) ([]byte, error) {
	req.Text = strings.TrimSpace(req.Text)
	if err := s.validate.Struct(req); err != nil {
		return nil, invalidRequest(err)
	}

	stability, similarity := DefaultStability, DefaultSimilarity
	if req.Stability != nil {
		stability = *req.Stability
	}
	if req.Similarity != nil {
		similarity = *req.Similarity
	}

	return s.synth.Synthesize(ctx, secondary.SpeechRequest{
		VoiceID:    req.VoiceID,
		Text:       req.Text,
		Stability:  stability,
		Similarity: similarity,
	})
}

// Ensure the media services implement their interfaces
var (
	_ primary.LessonCraftService = (*LessonCraftServiceImpl)(nil)
	_ primary.VoiceService       = (*VoiceServiceImpl)(nil)
)
