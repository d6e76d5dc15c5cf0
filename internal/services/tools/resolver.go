package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Chaitanya-OverDev/AgriAssist/internal/domain/models"
	"github.com/Chaitanya-OverDev/AgriAssist/internal/services/llm"
	"github.com/Chaitanya-OverDev/AgriAssist/internal/services/market"
	"github.com/Chaitanya-OverDev/AgriAssist/internal/services/weather"
)

// Fixed result strings fed back to the model. Upstream failures and
// missing arguments degrade into these; the tool-call loop has no channel
// to reject a turn.
const (
	weatherNoCoordinatesResult = "Cannot check weather: GPS coordinates are missing from profile."
	weatherFetchFailedResult   = "Failed to fetch weather data."
	marketMissingArgsResult    = "Cannot check prices. Please ensure GPS location is saved and you mentioned a specific crop."
)

// Resolver executes a named tool call and formats its result for the model.
type Resolver interface {
	// Resolve runs the tool call on behalf of the given user. The returned
	// string is always model-consumable; failures are reported inside it.
	Resolve(ctx context.Context, call *llm.FunctionCall, user *models.User) string
}

// ResolverConfig holds the dependencies for the tool resolver.
type ResolverConfig struct {
	Weather weather.Service
	Market  market.Service
	Logger  zerolog.Logger
}

// resolver implements Resolver.
type resolver struct {
	weather weather.Service
	market  market.Service
	logger  zerolog.Logger
}

// NewResolver creates a new tool resolver.
func NewResolver(cfg *ResolverConfig) (Resolver, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.Weather == nil {
		return nil, fmt.Errorf("weather service is required")
	}
	if cfg.Market == nil {
		return nil, fmt.Errorf("market service is required")
	}

	return &resolver{
		weather: cfg.Weather,
		market:  cfg.Market,
		logger:  cfg.Logger,
	}, nil
}

// Resolve dispatches the call to the matching tool.
func (r *resolver) Resolve(ctx context.Context, call *llm.FunctionCall, user *models.User) string {
	switch call.Name {
	case llm.WeatherToolName:
		return r.resolveWeather(ctx, call.Args, user)
	case llm.MarketToolName:
		return r.resolveMarket(ctx, call.Args, user)
	default:
		return fmt.Sprintf("Tool %q is not supported.", call.Name)
	}
}

// resolveWeather serves the forecast tool. The model-supplied coordinates
// are validated but never used; the stored profile location is
// authoritative.
func (r *resolver) resolveWeather(ctx context.Context, raw map[string]interface{}, user *models.User) string {
	if _, err := ParseWeatherArgs(raw); err != nil {
		return fmt.Sprintf("Invalid weather tool arguments: %v.", err)
	}

	if !user.HasCoordinates() {
		return weatherNoCoordinatesResult
	}

	days, err := r.weather.Forecast(ctx, user.ID, user.Latitude, user.Longitude)
	if err != nil {
		r.logger.Warn().Err(err).Str("user_id", user.ID).Msg("weather tool fetch failed")
		return weatherFetchFailedResult
	}

	var b strings.Builder
	b.WriteString("5-Day Forecast:\n")
	for _, day := range days {
		fmt.Fprintf(&b, "- %s: %s, High %g°C, Low %g°C, Rain: %gmm\n",
			day.Date, day.Condition, day.TempMax, day.TempMin, day.RainMM)
	}
	return b.String()
}

// resolveMarket serves the mandi price tool. It is two-staged: no fresh
// data for the state at all asks the user to trigger a refresh; a fresh
// state without the commodity reports unavailability. It never scrapes
// inline.
func (r *resolver) resolveMarket(ctx context.Context, raw map[string]interface{}, user *models.User) string {
	args, err := ParseMarketArgs(raw)
	if err != nil {
		return fmt.Sprintf("Invalid market tool arguments: %v.", err)
	}

	if args.State == "" {
		args.State = user.State
	}
	if args.District == "" {
		args.District = user.District
	}
	if args.State == "" || args.Commodity == "" {
		return marketMissingArgsResult
	}

	fresh, err := r.market.FreshStateExists(ctx, args.State)
	if err != nil {
		r.logger.Warn().Err(err).Str("state", args.State).Msg("market tool freshness check failed")
		fresh = false
	}
	if !fresh {
		return fmt.Sprintf("Market data for %s is not available or is older than 6 hours. "+
			"Politely ask the user to open the Market tab in their app to refresh the live data.", args.State)
	}

	row, found, err := r.market.FindCommodity(ctx, args.State, args.Commodity)
	if err != nil {
		r.logger.Warn().Err(err).Str("state", args.State).Msg("market tool lookup failed")
		found = false
	}
	if !found {
		return fmt.Sprintf("Politely inform the user that market data is not available for %s in %s today.",
			args.Commodity, args.State)
	}

	return fmt.Sprintf(`
DATA FOUND FOR %s IN %s:
- MSP: ₹%s
- Latest Price: ₹%s
- Mid Price: ₹%s
- Old Price: ₹%s

INSTRUCTIONS FOR AI:
1. Politely tell the farmer the Latest Price and the MSP.
2. Compare the Latest Price to the Mid/Old prices to tell them if the market trend is going UP, DOWN, or is STABLE.
3. Use bold formatting (**) for key numbers so it looks good in the chat UI.
4. Keep the explanation concise (2-3 sentences max).
`,
		strings.ToUpper(args.Commodity), strings.ToUpper(args.State),
		row.MSP, row.PriceLatest, row.PriceMid, row.PriceOld)
}
