package market_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chaitanya-OverDev/AgriAssist/internal/domain/models"
	rediscache "github.com/Chaitanya-OverDev/AgriAssist/internal/infrastructure/cache/redis"
	"github.com/Chaitanya-OverDev/AgriAssist/internal/services/market"
	"github.com/Chaitanya-OverDev/AgriAssist/internal/services/snapshot"
)

// fakeScraper counts fetches and serves canned rows.
type fakeScraper struct {
	calls int
	rows  []models.CommodityRow
}

func (f *fakeScraper) Fetch(ctx context.Context, state, district string) []models.CommodityRow {
	f.calls++
	return f.rows
}

func setupMarketService(t *testing.T, provider market.Provider) (market.Service, *time.Time) {
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

	svc, err := market.NewService(&market.ServiceConfig{
		Provider: provider,
		Store:    store,
		Logger:   zerolog.Nop(),
	})
	require.NoError(t, err)

	return svc, &now
}

func gujaratRows() []models.CommodityRow {
	return []models.CommodityRow{
		{State: "Gujarat", District: "Rajkot", Commodity: "Onion", PriceLatest: "1200", MSP: "N/A"},
		{State: "Gujarat", District: "Rajkot", Commodity: "Wheat", PriceLatest: "2400", MSP: "2425"},
	}
}

func TestWorkflow_ServesFreshCacheWithoutScraping(t *testing.T) {
	scraper := &fakeScraper{rows: gujaratRows()}
	svc, _ := setupMarketService(t, scraper)
	ctx := context.Background()

	rows, err := svc.Workflow(ctx, "Gujarat", "Rajkot")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 1, scraper.calls)

	// Within the freshness window the cached batch is returned unchanged.
	rows, err = svc.Workflow(ctx, "Gujarat", "Rajkot")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 1, scraper.calls)
}

func TestWorkflow_RefreshesWhenStale(t *testing.T) {
	scraper := &fakeScraper{rows: gujaratRows()}
	svc, now := setupMarketService(t, scraper)
	ctx := context.Background()

	_, err := svc.Workflow(ctx, "Gujarat", "Rajkot")
	require.NoError(t, err)

	*now = now.Add(6*time.Hour + time.Minute)

	_, err = svc.Workflow(ctx, "Gujarat", "Rajkot")
	require.NoError(t, err)
	assert.Equal(t, 2, scraper.calls)
}

func TestWorkflow_DistrictRefreshWipesWholeState(t *testing.T) {
	scraper := &fakeScraper{rows: gujaratRows()}
	svc, now := setupMarketService(t, scraper)
	ctx := context.Background()

	// Seed a state-wide batch and a district batch.
	_, err := svc.Workflow(ctx, "Gujarat", "")
	require.NoError(t, err)
	_, err = svc.Workflow(ctx, "Gujarat", "Rajkot")
	require.NoError(t, err)
	require.Equal(t, 2, scraper.calls)

	// Expire both and refresh only the district; the state-wide batch must
	// be wiped too, so the next state-wide query re-scrapes.
	*now = now.Add(7 * time.Hour)
	_, err = svc.Workflow(ctx, "Gujarat", "Rajkot")
	require.NoError(t, err)
	require.Equal(t, 3, scraper.calls)

	_, err = svc.Workflow(ctx, "Gujarat", "")
	require.NoError(t, err)
	assert.Equal(t, 4, scraper.calls)
}

func TestWorkflow_EmptyScrapePersistsNothing(t *testing.T) {
	scraper := &fakeScraper{}
	svc, _ := setupMarketService(t, scraper)
	ctx := context.Background()

	rows, err := svc.Workflow(ctx, "Gujarat", "")
	require.NoError(t, err)
	assert.Empty(t, rows)

	// An empty result is not cached; the next call scrapes again.
	_, err = svc.Workflow(ctx, "Gujarat", "")
	require.NoError(t, err)
	assert.Equal(t, 2, scraper.calls)
}

func TestFreshStateExists(t *testing.T) {
	scraper := &fakeScraper{rows: gujaratRows()}
	svc, now := setupMarketService(t, scraper)
	ctx := context.Background()

	fresh, err := svc.FreshStateExists(ctx, "Gujarat")
	require.NoError(t, err)
	assert.False(t, fresh)

	_, err = svc.Workflow(ctx, "Gujarat", "Rajkot")
	require.NoError(t, err)

	fresh, err = svc.FreshStateExists(ctx, "Gujarat")
	require.NoError(t, err)
	assert.True(t, fresh)

	// Case-insensitive state lookup through key normalization.
	fresh, err = svc.FreshStateExists(ctx, "gujarat")
	require.NoError(t, err)
	assert.True(t, fresh)

	*now = now.Add(7 * time.Hour)

	fresh, err = svc.FreshStateExists(ctx, "Gujarat")
	require.NoError(t, err)
	assert.False(t, fresh)
}

func TestFindCommodity_CaseInsensitiveSubstring(t *testing.T) {
	scraper := &fakeScraper{rows: []models.CommodityRow{
		{State: "Gujarat", District: "Rajkot", Commodity: "Bhindi(Ladies Finger)", PriceLatest: "1800"},
		{State: "Gujarat", District: "Rajkot", Commodity: "Onion", PriceLatest: "1200"},
	}}
	svc, _ := setupMarketService(t, scraper)
	ctx := context.Background()

	_, err := svc.Workflow(ctx, "Gujarat", "Rajkot")
	require.NoError(t, err)

	row, found, err := svc.FindCommodity(ctx, "Gujarat", "onion")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Onion", row.Commodity)

	row, found, err = svc.FindCommodity(ctx, "Gujarat", "bhindi")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Bhindi(Ladies Finger)", row.Commodity)

	_, found, err = svc.FindCommodity(ctx, "Gujarat", "saffron")
	require.NoError(t, err)
	assert.False(t, found)
}
