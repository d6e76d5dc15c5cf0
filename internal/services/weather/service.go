package weather

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Chaitanya-OverDev/AgriAssist/internal/domain/models"
	"github.com/Chaitanya-OverDev/AgriAssist/internal/services/snapshot"
)

// DefaultTTL is the freshness window for a cached forecast.
const DefaultTTL = 3 * time.Hour

// Service serves forecasts cache-first and refreshes on expiry.
type Service interface {
	// Forecast returns the user's 5-day forecast, from cache when fresh,
	// otherwise from upstream with a cache replace.
	Forecast(ctx context.Context, userID string, lat, lon float64) ([]models.ForecastDay, error)

	// Fresh returns the cached snapshot if it is within the freshness
	// window, or nil. It never calls upstream; the silent system-prompt
	// injection relies on this.
	Fresh(ctx context.Context, userID string) (*models.WeatherSnapshot, error)
}

// ServiceConfig holds the dependencies for the weather service.
type ServiceConfig struct {
	Provider Provider
	Store    snapshot.Store
	TTL      time.Duration
	Logger   zerolog.Logger
}

// service implements Service.
type service struct {
	provider Provider
	store    snapshot.Store
	ttl      time.Duration
	logger   zerolog.Logger
}

// NewService creates a new weather service.
func NewService(cfg *ServiceConfig) (Service, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.Provider == nil {
		return nil, fmt.Errorf("provider is required")
	}
	if cfg.Store == nil {
		return nil, fmt.Errorf("snapshot store is required")
	}

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}

	return &service{
		provider: cfg.Provider,
		store:    cfg.Store,
		ttl:      ttl,
		logger:   cfg.Logger,
	}, nil
}

// CacheKey returns the snapshot key for a user's forecast. The key is also
// the replace scope: one live entry per user.
func CacheKey(userID string) string {
	return "weather:" + userID
}

// Forecast returns the forecast cache-first.
func (s *service) Forecast(ctx context.Context, userID string, lat, lon float64) ([]models.ForecastDay, error) {
	var cached models.WeatherSnapshot
	hit, err := s.store.Get(ctx, CacheKey(userID), s.ttl, &cached)
	if err != nil {
		return nil, err
	}
	if hit {
		s.logger.Debug().Str("user_id", userID).Msg("forecast served from cache")
		return cached.Days, nil
	}

	s.logger.Info().Str("user_id", userID).Msg("forecast cache stale, fetching upstream")
	days, err := s.provider.Fetch(ctx, lat, lon)
	if err != nil {
		return nil, fmt.Errorf("weather upstream failed: %w", err)
	}

	snap := models.WeatherSnapshot{
		UserID:    userID,
		Days:      days,
		FetchedAt: time.Now().UTC(),
	}
	key := CacheKey(userID)
	if err := s.store.Replace(ctx, key, map[string]interface{}{key: snap}); err != nil {
		// A failed cache write must not fail the forecast itself.
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("failed to cache forecast")
	}

	return days, nil
}

// Fresh returns the cached snapshot when it is within the freshness window.
func (s *service) Fresh(ctx context.Context, userID string) (*models.WeatherSnapshot, error) {
	var cached models.WeatherSnapshot
	hit, err := s.store.Get(ctx, CacheKey(userID), s.ttl, &cached)
	if err != nil {
		return nil, err
	}
	if !hit {
		return nil, nil
	}
	return &cached, nil
}
