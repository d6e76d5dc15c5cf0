package weather_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chaitanya-OverDev/AgriAssist/internal/domain/models"
	rediscache "github.com/Chaitanya-OverDev/AgriAssist/internal/infrastructure/cache/redis"
	"github.com/Chaitanya-OverDev/AgriAssist/internal/services/snapshot"
	"github.com/Chaitanya-OverDev/AgriAssist/internal/services/weather"
)

// fakeProvider counts fetches and serves a canned forecast.
type fakeProvider struct {
	calls int
	days  []models.ForecastDay
	err   error
}

func (f *fakeProvider) Fetch(ctx context.Context, lat, lon float64) ([]models.ForecastDay, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.days, nil
}

func setupWeatherService(t *testing.T, provider weather.Provider) (weather.Service, *time.Time) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)

	client, err := rediscache.NewClient(rediscache.Config{Host: mr.Host(), Port: mr.Port()})
	require.NoError(t, err)

	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})

	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	store, err := snapshot.NewStoreWithClock(client, func() time.Time { return now })
	require.NoError(t, err)

	svc, err := weather.NewService(&weather.ServiceConfig{
		Provider: provider,
		Store:    store,
		Logger:   zerolog.Nop(),
	})
	require.NoError(t, err)

	return svc, &now
}

func TestService_ForecastCachesWithinWindow(t *testing.T) {
	provider := &fakeProvider{days: []models.ForecastDay{
		{Date: "2026-03-10", TempMax: 30, TempMin: 22, Condition: models.ConditionSunny},
	}}
	svc, _ := setupWeatherService(t, provider)
	ctx := context.Background()

	days, err := svc.Forecast(ctx, "user-1", 19.07, 72.88)
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, 1, provider.calls)

	// Second call inside the window is served from cache.
	days, err = svc.Forecast(ctx, "user-1", 19.07, 72.88)
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, 1, provider.calls)
}

func TestService_ForecastRefreshesWhenStale(t *testing.T) {
	provider := &fakeProvider{days: []models.ForecastDay{
		{Date: "2026-03-10", TempMax: 30, TempMin: 22, Condition: models.ConditionSunny},
	}}
	svc, now := setupWeatherService(t, provider)
	ctx := context.Background()

	_, err := svc.Forecast(ctx, "user-1", 19.07, 72.88)
	require.NoError(t, err)

	*now = now.Add(3*time.Hour + time.Minute)

	_, err = svc.Forecast(ctx, "user-1", 19.07, 72.88)
	require.NoError(t, err)
	assert.Equal(t, 2, provider.calls)
}

func TestService_ForecastCacheIsPerUser(t *testing.T) {
	provider := &fakeProvider{days: []models.ForecastDay{{Date: "2026-03-10"}}}
	svc, _ := setupWeatherService(t, provider)
	ctx := context.Background()

	_, err := svc.Forecast(ctx, "user-1", 19.07, 72.88)
	require.NoError(t, err)
	_, err = svc.Forecast(ctx, "user-2", 19.07, 72.88)
	require.NoError(t, err)

	assert.Equal(t, 2, provider.calls)
}

func TestService_ForecastPropagatesUpstreamError(t *testing.T) {
	provider := &fakeProvider{err: fmt.Errorf("connection refused")}
	svc, _ := setupWeatherService(t, provider)

	_, err := svc.Forecast(context.Background(), "user-1", 19.07, 72.88)
	assert.Error(t, err)
}

func TestService_FreshNeverCallsUpstream(t *testing.T) {
	provider := &fakeProvider{days: []models.ForecastDay{{Date: "2026-03-10"}}}
	svc, now := setupWeatherService(t, provider)
	ctx := context.Background()

	snap, err := svc.Fresh(ctx, "user-1")
	require.NoError(t, err)
	assert.Nil(t, snap)
	assert.Equal(t, 0, provider.calls)

	_, err = svc.Forecast(ctx, "user-1", 19.07, 72.88)
	require.NoError(t, err)

	snap, err = svc.Fresh(ctx, "user-1")
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, "user-1", snap.UserID)

	*now = now.Add(4 * time.Hour)

	snap, err = svc.Fresh(ctx, "user-1")
	require.NoError(t, err)
	assert.Nil(t, snap)
	assert.Equal(t, 1, provider.calls)
}
