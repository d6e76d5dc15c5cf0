// Package tools resolves model-issued tool calls against the cached
// weather and market services.
package tools

import (
	"fmt"
	"strings"
)

// WeatherArgs are the validated arguments of the weather forecast tool.
// The resolver ignores them in favor of the user's stored coordinates, but
// malformed payloads are still rejected at the boundary.
type WeatherArgs struct {
	Lat float64
	Lon float64
}

// MarketArgs are the validated arguments of the mandi price tool.
type MarketArgs struct {
	State     string
	Commodity string
	District  string
}

// ParseWeatherArgs validates the raw argument map of a weather tool call.
func ParseWeatherArgs(raw map[string]interface{}) (WeatherArgs, error) {
	var args WeatherArgs
	var err error

	if args.Lat, err = optionalNumber(raw, "lat"); err != nil {
		return WeatherArgs{}, err
	}
	if args.Lon, err = optionalNumber(raw, "lon"); err != nil {
		return WeatherArgs{}, err
	}
	return args, nil
}

// ParseMarketArgs validates the raw argument map of a market tool call.
// Presence of state and commodity is checked later, after profile
// fallbacks are applied.
func ParseMarketArgs(raw map[string]interface{}) (MarketArgs, error) {
	var args MarketArgs
	var err error

	if args.State, err = optionalString(raw, "state"); err != nil {
		return MarketArgs{}, err
	}
	if args.Commodity, err = optionalString(raw, "commodity"); err != nil {
		return MarketArgs{}, err
	}
	if args.District, err = optionalString(raw, "district"); err != nil {
		return MarketArgs{}, err
	}
	return args, nil
}

// optionalString reads a string argument, tolerating absence.
func optionalString(raw map[string]interface{}, key string) (string, error) {
	v, ok := raw[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("argument %q must be a string, got %T", key, v)
	}
	return strings.TrimSpace(s), nil
}

// optionalNumber reads a numeric argument, tolerating absence.
func optionalNumber(raw map[string]interface{}, key string) (float64, error) {
	v, ok := raw[key]
	if !ok || v == nil {
		return 0, nil
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("argument %q must be a number, got %T", key, v)
	}
}
