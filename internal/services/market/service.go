package market

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Chaitanya-OverDev/AgriAssist/internal/domain/models"
	"github.com/Chaitanya-OverDev/AgriAssist/internal/services/snapshot"
)

// DefaultTTL is the freshness window for a cached price batch.
const DefaultTTL = 6 * time.Hour

// Service serves market prices with a 6-hour snapshot cache.
//
// Two access paths exist on purpose. Workflow is the eager, user-triggered
// path: stale data is refreshed inline, accepting scraper latency. The
// tool-call path (FreshStateExists, FindCommodity) is read-only: it never
// scrapes, keeping tool resolution latency bounded.
type Service interface {
	// Workflow returns the price rows for (state, district). Fresh cache
	// wins; otherwise the whole state scope is wiped, the scraper is
	// invoked, and the new batch is persisted.
	Workflow(ctx context.Context, state, district string) ([]models.CommodityRow, error)

	// FreshStateExists reports whether any fresh price batch exists for
	// the state.
	FreshStateExists(ctx context.Context, state string) (bool, error)

	// FindCommodity searches the state's fresh batches for a commodity by
	// case-insensitive substring match.
	FindCommodity(ctx context.Context, state, commodity string) (*models.CommodityRow, bool, error)
}

// ServiceConfig holds the dependencies for the market service.
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

// NewService creates a new market service.
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

// ScopeKey returns the replace scope for a state. Refreshing any district
// of a state wipes the whole scope.
func ScopeKey(state string) string {
	return "market:" + titleCase(state)
}

// CacheKey returns the snapshot key for a (state, district) batch.
func CacheKey(state, district string) string {
	d := models.AllDistricts
	if district != "" {
		d = titleCase(district)
	}
	return ScopeKey(state) + ":" + d
}

// Workflow returns the price rows for (state, district), refreshing on miss.
func (s *service) Workflow(ctx context.Context, state, district string) ([]models.CommodityRow, error) {
	key := CacheKey(state, district)

	var cached models.MarketSnapshot
	hit, err := s.store.Get(ctx, key, s.ttl, &cached)
	if err != nil {
		return nil, err
	}
	if hit {
		s.logger.Debug().Str("key", key).Int("rows", len(cached.Rows)).Msg("market prices served from cache")
		return cached.Rows, nil
	}

	s.logger.Info().Str("state", state).Str("district", district).Msg("market cache stale, invoking scraper")
	rows := s.provider.Fetch(ctx, state, district)

	// The whole state is wiped even for a district query: the batch is a
	// full-state snapshot and mixing generations would lie about freshness.
	entries := map[string]interface{}{}
	if len(rows) > 0 {
		entries[key] = models.MarketSnapshot{
			State:     titleCase(state),
			District:  districtLabel(district),
			Rows:      rows,
			ScrapedAt: time.Now().UTC(),
		}
	}
	if err := s.store.Replace(ctx, ScopeKey(state), entries); err != nil {
		return nil, err
	}

	return rows, nil
}

// FreshStateExists reports whether any fresh batch exists for the state.
func (s *service) FreshStateExists(ctx context.Context, state string) (bool, error) {
	keys, err := s.store.FreshKeys(ctx, ScopeKey(state)+":*", s.ttl)
	if err != nil {
		return false, err
	}
	return len(keys) > 0, nil
}

// FindCommodity searches the state's fresh batches for a commodity.
func (s *service) FindCommodity(ctx context.Context, state, commodity string) (*models.CommodityRow, bool, error) {
	keys, err := s.store.FreshKeys(ctx, ScopeKey(state)+":*", s.ttl)
	if err != nil {
		return nil, false, err
	}

	needle := strings.ToLower(strings.TrimSpace(commodity))
	for _, key := range keys {
		var snap models.MarketSnapshot
		hit, err := s.store.Get(ctx, key, s.ttl, &snap)
		if err != nil {
			return nil, false, err
		}
		if !hit {
			continue
		}
		for i := range snap.Rows {
			if strings.Contains(strings.ToLower(snap.Rows[i].Commodity), needle) {
				row := snap.Rows[i]
				return &row, true, nil
			}
		}
	}
	return nil, false, nil
}

// districtLabel maps an empty district to the state-wide marker.
func districtLabel(district string) string {
	if district == "" {
		return models.AllDistricts
	}
	return titleCase(district)
}
