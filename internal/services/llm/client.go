// Package llm provides the Gemini generative-language client.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client defines the interface for the generative-language service.
type Client interface {
	// GenerateContent sends the request to the named model and returns its
	// response.
	GenerateContent(ctx context.Context, model string, req *GenerateRequest) (*GenerateResponse, error)
}

// ClientConfig holds the configuration for the Gemini API client.
type ClientConfig struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// APIClient implements Client against the Gemini REST API.
type APIClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewAPIClient creates a new Gemini API client.
func NewAPIClient(config *ClientConfig) (*APIClient, error) {
	if config == nil {
		return nil, fmt.Errorf("config is required")
	}
	if config.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: 60 * time.Second,
		}
	}

	return &APIClient{
		baseURL:    config.BaseURL,
		apiKey:     config.APIKey,
		httpClient: httpClient,
	}, nil
}

// GenerateContent sends the request to the named model.
func (c *APIClient) GenerateContent(ctx context.Context, model string, genReq *GenerateRequest) (*GenerateResponse, error) {
	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, model)

	body, err := json.Marshal(genReq)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, detail)
	}

	var genResp GenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &genResp, nil
}

// setHeaders sets the required headers for Gemini API requests.
func (c *APIClient) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-goog-api-key", c.apiKey)
	}
}
