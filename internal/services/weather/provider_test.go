// Package weather_test provides unit tests for the weather provider and service.
package weather_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chaitanya-OverDev/AgriAssist/internal/domain/models"
	"github.com/Chaitanya-OverDev/AgriAssist/internal/services/weather"
)

func newProvider(t *testing.T, handler http.HandlerFunc) weather.Provider {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	provider, err := weather.NewProvider(&weather.ProviderConfig{
		BaseURL: srv.URL,
		APIKey:  "test-key",
	})
	require.NoError(t, err)
	return provider
}

func TestProvider_AggregatesBucketsPerDay(t *testing.T) {
	provider := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/forecast", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("appid"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"list":[
			{"dt_txt":"2026-03-10 09:00:00","main":{"temp_max":18,"temp_min":18},"rain":{"3h":0.0},"weather":[{"main":"Clouds"}]},
			{"dt_txt":"2026-03-10 12:00:00","main":{"temp_max":22,"temp_min":20},"rain":{"3h":1.2},"weather":[{"main":"Rain"}]},
			{"dt_txt":"2026-03-10 15:00:00","main":{"temp_max":19,"temp_min":17},"rain":{"3h":0.3},"weather":[{"main":"Clouds"}]},
			{"dt_txt":"2026-03-11 09:00:00","main":{"temp_max":25,"temp_min":16},"rain":{},"weather":[{"main":"Clear"}]}
		]}`))
	})

	days, err := provider.Fetch(context.Background(), 19.07, 72.88)
	require.NoError(t, err)
	require.Len(t, days, 2)

	first := days[0]
	assert.Equal(t, "2026-03-10", first.Date)
	assert.Equal(t, 22.0, first.TempMax)
	assert.Equal(t, 17.0, first.TempMin)
	assert.Equal(t, 1.5, first.RainMM)
	assert.Equal(t, models.ConditionRainy, first.Condition)

	second := days[1]
	assert.Equal(t, "2026-03-11", second.Date)
	assert.Equal(t, models.ConditionSunny, second.Condition)
}

func TestProvider_RainOutranksClear(t *testing.T) {
	provider := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"list":[
			{"dt_txt":"2026-03-10 09:00:00","main":{"temp_max":30,"temp_min":22},"weather":[{"main":"Clear"}]},
			{"dt_txt":"2026-03-10 12:00:00","main":{"temp_max":28,"temp_min":21},"rain":{"3h":4.0},"weather":[{"main":"Thunderstorm"}]}
		]}`))
	})

	days, err := provider.Fetch(context.Background(), 19.07, 72.88)
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, models.ConditionRainy, days[0].Condition)
}

func TestProvider_KeepsFirstFiveDays(t *testing.T) {
	provider := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"list":[
			{"dt_txt":"2026-03-10 09:00:00","main":{"temp_max":20,"temp_min":15},"weather":[{"main":"Clouds"}]},
			{"dt_txt":"2026-03-11 09:00:00","main":{"temp_max":20,"temp_min":15},"weather":[{"main":"Clouds"}]},
			{"dt_txt":"2026-03-12 09:00:00","main":{"temp_max":20,"temp_min":15},"weather":[{"main":"Clouds"}]},
			{"dt_txt":"2026-03-13 09:00:00","main":{"temp_max":20,"temp_min":15},"weather":[{"main":"Clouds"}]},
			{"dt_txt":"2026-03-14 09:00:00","main":{"temp_max":20,"temp_min":15},"weather":[{"main":"Clouds"}]},
			{"dt_txt":"2026-03-15 09:00:00","main":{"temp_max":20,"temp_min":15},"weather":[{"main":"Clouds"}]}
		]}`))
	})

	days, err := provider.Fetch(context.Background(), 19.07, 72.88)
	require.NoError(t, err)
	require.Len(t, days, 5)
	assert.Equal(t, "2026-03-10", days[0].Date)
	assert.Equal(t, "2026-03-14", days[4].Date)
}

func TestProvider_ErrorOnUpstreamFailure(t *testing.T) {
	provider := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := provider.Fetch(context.Background(), 19.07, 72.88)
	assert.Error(t, err)
}

func TestProvider_ErrorOnEmptyList(t *testing.T) {
	provider := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"list":[]}`))
	})

	_, err := provider.Fetch(context.Background(), 19.07, 72.88)
	assert.Error(t, err)
}
