package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Client defines the interface for speech synthesis.
type Client interface {
	// Synthesize converts the text to audio and returns the path of the
	// generated file. The caller streams it and then calls Cleanup.
	Synthesize(ctx context.Context, text string) (string, error)

	// Cleanup removes a generated audio file. A file already gone is not
	// an error; synthesis output is disposable.
	Cleanup(path string)
}

// ClientConfig holds the configuration for the TTS collaborator client.
type ClientConfig struct {
	ServiceURL string
	Voice      string
	HTTPClient *http.Client
	Logger     zerolog.Logger
}

// httpClient implements Client against the TTS sidecar.
type httpClientImpl struct {
	serviceURL string
	voice      string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a new TTS collaborator client.
func NewClient(cfg *ClientConfig) (Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.ServiceURL == "" {
		return nil, fmt.Errorf("service URL is required")
	}

	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 30 * time.Second}
	}

	return &httpClientImpl{
		serviceURL: strings.TrimSuffix(cfg.ServiceURL, "/"),
		voice:      cfg.Voice,
		httpClient: hc,
		logger:     cfg.Logger,
	}, nil
}

// synthesizeRequest is the sidecar's request payload.
type synthesizeRequest struct {
	Text  string `json:"text"`
	Voice string `json:"voice,omitempty"`
}

// synthesizeResponse is the sidecar's response payload.
type synthesizeResponse struct {
	FilePath string `json:"file_path"`
}

// Synthesize converts the text to audio through the sidecar. The text is
// cleaned of markdown first.
func (c *httpClientImpl) Synthesize(ctx context.Context, text string) (string, error) {
	cleaned := CleanForSpeech(text)
	if cleaned == "" {
		return "", fmt.Errorf("nothing to synthesize")
	}

	body, err := json.Marshal(synthesizeRequest{Text: cleaned, Voice: c.voice})
	if err != nil {
		return "", fmt.Errorf("failed to encode synthesize request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.serviceURL+"/synthesize", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create synthesize request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("synthesize request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("synthesize returned status %d: %s", resp.StatusCode, detail)
	}

	var payload synthesizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("failed to decode synthesize response: %w", err)
	}
	if payload.FilePath == "" {
		return "", fmt.Errorf("synthesize response missing file path")
	}

	return payload.FilePath, nil
}

// Cleanup removes a generated audio file, tolerating its absence.
func (c *httpClientImpl) Cleanup(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		c.logger.Warn().Err(err).Str("path", path).Msg("failed to remove audio file")
	}
}
