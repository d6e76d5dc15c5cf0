// Package weather fetches and caches 5-day forecasts from OpenWeatherMap.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Chaitanya-OverDev/AgriAssist/internal/domain/models"
)

// forecastDays is how many calendar dates a forecast keeps.
const forecastDays = 5

// Provider defines the upstream forecast adapter.
type Provider interface {
	// Fetch retrieves the aggregated 5-day forecast for the coordinates.
	Fetch(ctx context.Context, lat, lon float64) ([]models.ForecastDay, error)
}

// ProviderConfig holds the OpenWeatherMap client configuration.
type ProviderConfig struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// owmProvider implements Provider against the OpenWeatherMap forecast API.
type owmProvider struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewProvider creates a new OpenWeatherMap provider.
func NewProvider(config *ProviderConfig) (Provider, error) {
	if config == nil {
		return nil, fmt.Errorf("config is required")
	}
	if config.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: 10 * time.Second,
		}
	}

	return &owmProvider{
		baseURL:    config.BaseURL,
		apiKey:     config.APIKey,
		httpClient: httpClient,
	}, nil
}

// forecastResponse is the upstream payload: a list of 3-hour buckets.
type forecastResponse struct {
	List []forecastBucket `json:"list"`
}

type forecastBucket struct {
	DtTxt string `json:"dt_txt"`
	Main  struct {
		TempMax float64 `json:"temp_max"`
		TempMin float64 `json:"temp_min"`
	} `json:"main"`
	Rain struct {
		ThreeH float64 `json:"3h"`
	} `json:"rain"`
	Weather []struct {
		Main string `json:"main"`
	} `json:"weather"`
}

// Fetch retrieves the raw 3-hour buckets and aggregates them into at most
// five daily summaries, in the order the upstream returns them.
func (p *owmProvider) Fetch(ctx context.Context, lat, lon float64) ([]models.ForecastDay, error) {
	endpoint := fmt.Sprintf("%s/forecast?lat=%s&lon=%s&appid=%s&units=metric",
		p.baseURL,
		url.QueryEscape(fmt.Sprintf("%g", lat)),
		url.QueryEscape(fmt.Sprintf("%g", lon)),
		url.QueryEscape(p.apiKey),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var payload forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(payload.List) == 0 {
		return nil, fmt.Errorf("forecast response contained no buckets")
	}

	return aggregateDaily(payload.List), nil
}

// dayAccumulator collects per-date values while walking the buckets.
type dayAccumulator struct {
	tempMax    float64
	tempMin    float64
	rainMM     float64
	conditions []string
}

// aggregateDaily folds 3-hour buckets into daily summaries, keeping the
// first five calendar dates in upstream order.
func aggregateDaily(buckets []forecastBucket) []models.ForecastDay {
	byDate := make(map[string]*dayAccumulator)
	var order []string

	for _, bucket := range buckets {
		date := bucketDate(bucket.DtTxt)
		if date == "" {
			continue
		}

		condition := ""
		if len(bucket.Weather) > 0 {
			condition = bucket.Weather[0].Main
		}

		acc, ok := byDate[date]
		if !ok {
			byDate[date] = &dayAccumulator{
				tempMax:    bucket.Main.TempMax,
				tempMin:    bucket.Main.TempMin,
				rainMM:     bucket.Rain.ThreeH,
				conditions: []string{condition},
			}
			order = append(order, date)
			continue
		}

		if bucket.Main.TempMax > acc.tempMax {
			acc.tempMax = bucket.Main.TempMax
		}
		if bucket.Main.TempMin < acc.tempMin {
			acc.tempMin = bucket.Main.TempMin
		}
		acc.rainMM += bucket.Rain.ThreeH
		acc.conditions = append(acc.conditions, condition)
	}

	if len(order) > forecastDays {
		order = order[:forecastDays]
	}

	days := make([]models.ForecastDay, 0, len(order))
	for _, date := range order {
		acc := byDate[date]
		days = append(days, models.ForecastDay{
			Date:      date,
			TempMax:   round1(acc.tempMax),
			TempMin:   round1(acc.tempMin),
			RainMM:    round1(acc.rainMM),
			Condition: classifyCondition(acc.conditions),
		})
	}
	return days
}

// classifyCondition derives the day's headline condition. Rain keywords
// take precedence over Clear: a day with both a thunderstorm and a clear
// bucket is still Rainy.
func classifyCondition(conditions []string) string {
	clear := false
	for _, c := range conditions {
		switch c {
		case "Rain", "Thunderstorm", "Drizzle":
			return models.ConditionRainy
		case "Clear":
			clear = true
		}
	}
	if clear {
		return models.ConditionSunny
	}
	return models.ConditionCloudy
}

// bucketDate extracts the calendar date from the upstream "dt_txt" field
// ("2024-06-01 12:00:00").
func bucketDate(dtTxt string) string {
	parts := strings.SplitN(dtTxt, " ", 2)
	if parts[0] == "" {
		return ""
	}
	return parts[0]
}

// round1 rounds to one decimal place, matching the display format.
func round1(v float64) float64 {
	if v < 0 {
		return float64(int(v*10-0.5)) / 10
	}
	return float64(int(v*10+0.5)) / 10
}
