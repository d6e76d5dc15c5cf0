// Package geocode_test provides unit tests for the Nominatim client.
package geocode_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chaitanya-OverDev/AgriAssist/internal/services/geocode"
)

func newGeocodeClient(t *testing.T, handler http.HandlerFunc) geocode.Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := geocode.NewClient(&geocode.ClientConfig{
		BaseURL:   srv.URL,
		UserAgent: "AgriAssist-test",
	})
	require.NoError(t, err)
	return client
}

func TestReverse_ResolvesStateAndDistrict(t *testing.T) {
	client := newGeocodeClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reverse", r.URL.Path)
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "10", r.URL.Query().Get("zoom"))
		assert.Equal(t, "AgriAssist-test", r.Header.Get("User-Agent"))

		w.Write([]byte(`{"address":{"state":"Gujarat","state_district":"Rajkot District"}}`))
	})

	place, err := client.Reverse(context.Background(), 22.3, 70.8)
	require.NoError(t, err)
	assert.Equal(t, "Gujarat", place.State)
	assert.Equal(t, "Rajkot", place.District)
}

func TestReverse_FallsBackToCounty(t *testing.T) {
	client := newGeocodeClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"address":{"state":"Punjab","county":"Ludhiana"}}`))
	})

	place, err := client.Reverse(context.Background(), 30.9, 75.8)
	require.NoError(t, err)
	assert.Equal(t, "Ludhiana", place.District)
}

func TestReverse_UpstreamError(t *testing.T) {
	client := newGeocodeClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := client.Reverse(context.Background(), 22.3, 70.8)
	assert.Error(t, err)
}

func TestCleanDistrict(t *testing.T) {
	assert.Equal(t, "Rajkot", geocode.CleanDistrict("Rajkot District"))
	assert.Equal(t, "Rajkot", geocode.CleanDistrict("Rajkot district"))
	assert.Equal(t, "Rajkot", geocode.CleanDistrict("  Rajkot  "))
	assert.Equal(t, "", geocode.CleanDistrict(""))
}
