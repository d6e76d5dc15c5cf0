package llm

// Tool names the model may call.
const (
	// WeatherToolName requests the 5-day forecast for the user's location.
	WeatherToolName = "get_weather_forecast"
	// MarketToolName requests current mandi prices for a commodity.
	MarketToolName = "get_baazar_bhav"
)

// WeatherTool declares the weather forecast tool.
//
// The declared lat/lon parameters exist for the model's benefit only; the
// resolver always substitutes the coordinates stored on the user profile.
func WeatherTool() Tool {
	return Tool{
		FunctionDeclarations: []FunctionDeclaration{
			{
				Name:        WeatherToolName,
				Description: "Get the 5-day weather forecast using latitude and longitude coordinates.",
				Parameters: &Schema{
					Type: "OBJECT",
					Properties: map[string]*Schema{
						"lat": {Type: "NUMBER", Description: "Latitude of the location"},
						"lon": {Type: "NUMBER", Description: "Longitude of the location"},
					},
					Required: []string{"lat", "lon"},
				},
			},
		},
	}
}

// MarketTool declares the mandi price tool. District is optional; the
// resolver falls back to the user's stored state when the model omits one.
func MarketTool() Tool {
	return Tool{
		FunctionDeclarations: []FunctionDeclaration{
			{
				Name:        MarketToolName,
				Description: "Get the current agricultural market price (Baazar Bhav/Mandi rates) for a specific crop/commodity from the local database.",
				Parameters: &Schema{
					Type: "OBJECT",
					Properties: map[string]*Schema{
						"state":     {Type: "STRING", Description: "The Indian state"},
						"district":  {Type: "STRING", Description: "The Indian district (optional)"},
						"commodity": {Type: "STRING", Description: "The name of the crop or commodity (e.g., Cotton, Wheat, Onion)"},
					},
					Required: []string{"state", "commodity"},
				},
			},
		},
	}
}
