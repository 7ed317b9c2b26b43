// Package elevenlabs calls the ElevenLabs text-to-speech API.
package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/example/commandcenter/internal/ports/secondary"
)

// ErrMissingAPIKey is returned when no API key is configured.
var ErrMissingAPIKey = errors.New("elevenlabs api key is not configured")

// Fixed voice settings sent with every request.
const (
	defaultStyle    = 0.5
	useSpeakerBoost = true
)

// Client implements secondary.SpeechSynthesizer.
type Client struct {
	apiKey  string
	modelID string
	baseURL string
	client  *http.Client
}

// NewClient creates a client. baseURL is normally https://api.elevenlabs.io/v1.
func NewClient(apiKey, modelID, baseURL string, client *http.Client) *Client {
	if client == nil {
		client = http.DefaultClient
	}
	return &Client{
		apiKey:  apiKey,
		modelID: modelID,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
	Style           float64 `json:"style"`
	UseSpeakerBoost bool    `json:"use_speaker_boost"`
}

type speechRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

type errorResponse struct {
	Detail struct {
		Message string `json:"message"`
	} `json:"detail"`
}

// Synthesize returns the generated audio/mpeg bytes.
func (c *Client) Synthesize(ctx context.Context, req secondary.SpeechRequest) ([]byte, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	body, err := json.Marshal(speechRequest{
		Text:    req.Text,
		ModelID: c.modelID,
		VoiceSettings: voiceSettings{
			Stability:       req.Stability,
			SimilarityBoost: req.Similarity,
			Style:           defaultStyle,
			UseSpeakerBoost: useSpeakerBoost,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode speech request: %w", err)
	}

	endpoint := c.baseURL + "/text-to-speech/" + url.PathEscape(req.VoiceID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build speech request: %w", err)
	}
	httpReq.Header.Set("Accept", "audio/mpeg")
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("xi-api-key", c.apiKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("speech request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e errorResponse
		_ = json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&e)
		msg := e.Detail.Message
		if msg == "" {
			msg = "Generation failed"
		}
		return nil, &secondary.UpstreamError{Service: "elevenlabs", StatusCode: resp.StatusCode, Message: msg}
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio: %w", err)
	}
	return audio, nil
}

var _ secondary.SpeechSynthesizer = (*Client)(nil)
