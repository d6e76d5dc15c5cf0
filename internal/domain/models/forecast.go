package models

import "time"

// Day conditions derived from the upstream 3-hour buckets.
const (
	ConditionRainy  = "Rainy"
	ConditionSunny  = "Sunny"
	ConditionCloudy = "Cloudy"
)

// ForecastDay is the daily summary aggregated from 3-hour forecast buckets.
type ForecastDay struct {
	Date      string  `json:"date"`
	TempMax   float64 `json:"temp_max"`
	TempMin   float64 `json:"temp_min"`
	RainMM    float64 `json:"rain_mm"`
	Condition string  `json:"condition"`
}

// WeatherSnapshot is the cached 5-day forecast for one user.
type WeatherSnapshot struct {
	UserID    string        `json:"userId"`
	Days      []ForecastDay `json:"days"`
	FetchedAt time.Time     `json:"fetchedAt"`
}
