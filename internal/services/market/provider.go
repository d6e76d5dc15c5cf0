// Package market fetches and caches Agmarknet commodity prices.
package market

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Chaitanya-OverDev/AgriAssist/internal/domain/models"
)

// Provider defines the price-scraping collaborator adapter.
type Provider interface {
	// Fetch returns the normalized price rows for a state and optional
	// district. A failed scrape is reported as an empty row set, not an
	// error: callers treat it as "no data available".
	Fetch(ctx context.Context, state, district string) []models.CommodityRow
}

// ProviderConfig holds the scraper collaborator client configuration.
type ProviderConfig struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     zerolog.Logger
}

// scraperProvider implements Provider against the browser-automation
// sidecar that drives the Agmarknet site.
type scraperProvider struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewProvider creates a new scraper-backed provider.
func NewProvider(config *ProviderConfig) (Provider, error) {
	if config == nil {
		return nil, fmt.Errorf("config is required")
	}
	if config.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		// Driving a headless browser through the full Agmarknet flow is slow.
		httpClient = &http.Client{
			Timeout: 120 * time.Second,
		}
	}

	return &scraperProvider{
		baseURL:    config.BaseURL,
		httpClient: httpClient,
		logger:     config.Logger,
	}, nil
}

// scrapedRow is the raw row shape produced by the scraper collaborator.
type scrapedRow struct {
	State          string `json:"state"`
	District       string `json:"district"`
	Commodity      string `json:"commodity"`
	CommodityGroup string `json:"commodity_group"`
	MSP            string `json:"msp"`
	PriceLatest    string `json:"price_latest"`
	PriceMid       string `json:"price_mid"`
	PriceOld       string `json:"price_old"`
}

// Fetch calls the scraper and normalizes its rows.
func (p *scraperProvider) Fetch(ctx context.Context, state, district string) []models.CommodityRow {
	endpoint := fmt.Sprintf("%s/prices?state=%s", p.baseURL, url.QueryEscape(state))
	if district != "" {
		endpoint += "&district=" + url.QueryEscape(district)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		p.logger.Warn().Err(err).Str("state", state).Msg("failed to create scraper request")
		return nil
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.logger.Warn().Err(err).Str("state", state).Msg("scraper request failed")
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		p.logger.Warn().Int("status", resp.StatusCode).Str("state", state).Msg("scraper returned non-200")
		return nil
	}

	var raw []scrapedRow
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		p.logger.Warn().Err(err).Str("state", state).Msg("failed to decode scraper response")
		return nil
	}

	return normalizeRows(raw, state, district)
}

// normalizeRows cleans the raw scraper rows: sentinel values become "N/A",
// placeholder "no data found" rows are dropped, and the district label
// defaults to the state-wide marker.
func normalizeRows(raw []scrapedRow, state, district string) []models.CommodityRow {
	rows := make([]models.CommodityRow, 0, len(raw))
	for _, r := range raw {
		commodity := strings.TrimSpace(r.Commodity)
		if commodity == "" || strings.EqualFold(commodity, "no data found") {
			continue
		}

		rowState := r.State
		if rowState == "" {
			rowState = titleCase(state)
		}
		rowDistrict := r.District
		if rowDistrict == "" {
			if district != "" {
				rowDistrict = titleCase(district)
			} else {
				rowDistrict = models.AllDistricts
			}
		}

		rows = append(rows, models.CommodityRow{
			State:          rowState,
			District:       rowDistrict,
			Commodity:      commodity,
			CommodityGroup: strings.TrimSpace(r.CommodityGroup),
			MSP:            models.NormalizePrice(r.MSP),
			PriceLatest:    models.NormalizePrice(r.PriceLatest),
			PriceMid:       models.NormalizePrice(r.PriceMid),
			PriceOld:       models.NormalizePrice(r.PriceOld),
		})
	}
	return rows
}

// titleCase upper-cases the first letter of each space-separated word, the
// form Agmarknet uses for state and district names.
func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(s)))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
