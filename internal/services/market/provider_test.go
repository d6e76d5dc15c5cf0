// Package market_test provides unit tests for the market provider and service.
package market_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chaitanya-OverDev/AgriAssist/internal/domain/models"
	"github.com/Chaitanya-OverDev/AgriAssist/internal/services/market"
)

func newScraperProvider(t *testing.T, handler http.HandlerFunc) market.Provider {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	provider, err := market.NewProvider(&market.ProviderConfig{
		BaseURL: srv.URL,
		Logger:  zerolog.Nop(),
	})
	require.NoError(t, err)
	return provider
}

func TestProvider_NormalizesRows(t *testing.T) {
	provider := newScraperProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/prices", r.URL.Path)
		assert.Equal(t, "Gujarat", r.URL.Query().Get("state"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"state":"Gujarat","district":"Rajkot","commodity":"Onion","commodity_group":"Vegetables","msp":"-","price_latest":"1200","price_mid":"NR","price_old":""},
			{"commodity":"no data found"},
			{"commodity":"  "}
		]`))
	})

	rows := provider.Fetch(context.Background(), "Gujarat", "Rajkot")
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "Onion", row.Commodity)
	assert.Equal(t, models.PriceNotAvailable, row.MSP)
	assert.Equal(t, "1200", row.PriceLatest)
	assert.Equal(t, models.PriceNotAvailable, row.PriceMid)
	assert.Equal(t, models.PriceNotAvailable, row.PriceOld)
}

func TestProvider_DistrictDefaultsToStateWide(t *testing.T) {
	provider := newScraperProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.Query().Get("district"))
		w.Write([]byte(`[{"commodity":"Wheat","price_latest":"2400"}]`))
	})

	rows := provider.Fetch(context.Background(), "punjab", "")
	require.Len(t, rows, 1)
	assert.Equal(t, models.AllDistricts, rows[0].District)
	assert.Equal(t, "Punjab", rows[0].State)
}

func TestProvider_FailureReturnsEmpty(t *testing.T) {
	provider := newScraperProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	rows := provider.Fetch(context.Background(), "Gujarat", "")
	assert.Empty(t, rows)
}

func TestProvider_MalformedPayloadReturnsEmpty(t *testing.T) {
	provider := newScraperProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not":"a list"}`))
	})

	rows := provider.Fetch(context.Background(), "Gujarat", "")
	assert.Empty(t, rows)
}
