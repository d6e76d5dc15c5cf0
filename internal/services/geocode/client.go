// Package geocode reverse-geocodes coordinates into (state, district)
// via the Nominatim API.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Place is the resolved administrative location for a coordinate pair.
type Place struct {
	State    string
	District string
}

// Client defines the interface for reverse geocoding.
type Client interface {
	// Reverse resolves coordinates to a state and district.
	Reverse(ctx context.Context, lat, lon float64) (*Place, error)
}

// ClientConfig holds the configuration for the Nominatim client.
type ClientConfig struct {
	BaseURL    string
	UserAgent  string
	HTTPClient *http.Client
}

// nominatimClient implements Client against the Nominatim reverse API.
type nominatimClient struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// NewClient creates a new Nominatim reverse-geocoding client.
func NewClient(cfg *ClientConfig) (Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if cfg.UserAgent == "" {
		// Nominatim's usage policy rejects requests without an identifying agent.
		return nil, fmt.Errorf("user agent is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	return &nominatimClient{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		userAgent:  cfg.UserAgent,
		httpClient: httpClient,
	}, nil
}

// reverseResponse mirrors the Nominatim reverse payload, address part only.
type reverseResponse struct {
	Address struct {
		State         string `json:"state"`
		StateDistrict string `json:"state_district"`
		County        string `json:"county"`
		City          string `json:"city"`
	} `json:"address"`
}

// Reverse resolves coordinates to a state and district. Zoom 10 keeps the
// answer at district granularity.
func (c *nominatimClient) Reverse(ctx context.Context, lat, lon float64) (*Place, error) {
	q := url.Values{}
	q.Set("format", "json")
	q.Set("lat", fmt.Sprintf("%g", lat))
	q.Set("lon", fmt.Sprintf("%g", lon))
	q.Set("zoom", "10")

	reqURL := fmt.Sprintf("%s/reverse?%s", c.baseURL, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create reverse geocode request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("reverse geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("reverse geocode returned status %d: %s", resp.StatusCode, string(body))
	}

	var payload reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode reverse geocode response: %w", err)
	}

	district := payload.Address.StateDistrict
	if district == "" {
		district = payload.Address.County
	}
	if district == "" {
		district = payload.Address.City
	}

	return &Place{
		State:    payload.Address.State,
		District: CleanDistrict(district),
	}, nil
}

// CleanDistrict strips the "District" suffix Nominatim appends to many
// Indian districts; the scraper and cache keys use the bare name.
func CleanDistrict(district string) string {
	district = strings.TrimSpace(district)
	district = strings.TrimSuffix(district, " District")
	district = strings.TrimSuffix(district, " district")
	return strings.TrimSpace(district)
}
