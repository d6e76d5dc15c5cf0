// Package config handles application configuration loading and management.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	Server  ServerConfig
	Cache   CacheConfig
	DocDB   DocDBConfig
	LLM     LLMConfig
	Weather WeatherConfig
	Market  MarketConfig
	Geocode GeocodeConfig
	Speech  SpeechConfig
	Log     LogConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host    string
	Port    int
	GinMode string
}

// Address returns the server address in host:port format.
func (c ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// CacheConfig holds cache-related configuration.
type CacheConfig struct {
	Type     string
	Host     string
	Port     string
	Password string
	DB       int
}

// DocDBConfig holds document database configuration.
type DocDBConfig struct {
	Type     string
	URI      string
	Database string
}

// LLMConfig holds the Gemini API configuration.
type LLMConfig struct {
	BaseURL         string
	APIKey          string
	ChatModel       string
	TitleModel      string
	Temperature     float64
	MaxOutputTokens int
	Timeout         time.Duration
}

// WeatherConfig holds the OpenWeatherMap upstream configuration.
type WeatherConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	TTL     time.Duration
}

// MarketConfig holds the market scraper collaborator configuration.
type MarketConfig struct {
	ScraperURL string
	Timeout    time.Duration
	TTL        time.Duration
}

// GeocodeConfig holds the reverse-geocoding configuration.
type GeocodeConfig struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

// SpeechConfig holds the text-to-speech collaborator configuration.
type SpeechConfig struct {
	ServiceURL string
	Voice      string
	Timeout    time.Duration
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string
	Format string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:    getEnv("SERVER_HOST", "0.0.0.0"),
			Port:    getEnvAsInt("SERVER_PORT", 8080),
			GinMode: getEnv("GIN_MODE", "debug"),
		},
		Cache: CacheConfig{
			Type:     getEnv("CACHE_TYPE", "redis"),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		DocDB: DocDBConfig{
			Type:     getEnv("DOCDB_TYPE", "mongodb"),
			URI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGODB_DATABASE", "agriassist"),
		},
		LLM: LLMConfig{
			BaseURL:         getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
			APIKey:          getEnv("GEMINI_API_KEY", ""),
			ChatModel:       getEnv("GEMINI_CHAT_MODEL", "gemini-2.5-flash"),
			TitleModel:      getEnv("GEMINI_TITLE_MODEL", "gemini-2.5-flash-lite"),
			Temperature:     getEnvAsFloat("GEMINI_TEMPERATURE", 0.7),
			MaxOutputTokens: getEnvAsInt("GEMINI_MAX_OUTPUT_TOKENS", 200),
			Timeout:         time.Duration(getEnvAsInt("GEMINI_TIMEOUT_SECONDS", 60)) * time.Second,
		},
		Weather: WeatherConfig{
			BaseURL: getEnv("OPENWEATHERMAP_BASE_URL", "https://api.openweathermap.org/data/2.5"),
			APIKey:  getEnv("OPENWEATHERMAP_API_KEY", ""),
			Timeout: time.Duration(getEnvAsInt("WEATHER_TIMEOUT_SECONDS", 10)) * time.Second,
			TTL:     time.Duration(getEnvAsInt("WEATHER_CACHE_TTL_MINUTES", 180)) * time.Minute,
		},
		Market: MarketConfig{
			ScraperURL: getEnv("MARKET_SCRAPER_URL", "http://localhost:8090"),
			Timeout:    time.Duration(getEnvAsInt("MARKET_TIMEOUT_SECONDS", 120)) * time.Second,
			TTL:        time.Duration(getEnvAsInt("MARKET_CACHE_TTL_MINUTES", 360)) * time.Minute,
		},
		Geocode: GeocodeConfig{
			BaseURL:   getEnv("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org"),
			UserAgent: getEnv("NOMINATIM_USER_AGENT", "AgriAssist/1.0 (contact@agriassist.example)"),
			Timeout:   time.Duration(getEnvAsInt("GEOCODE_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		Speech: SpeechConfig{
			ServiceURL: getEnv("SPEECH_SERVICE_URL", "http://localhost:8091"),
			Voice:      getEnv("SPEECH_VOICE", "mr-IN-ManoharNeural"),
			Timeout:    time.Duration(getEnvAsInt("SPEECH_TIMEOUT_SECONDS", 30)) * time.Second,
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	return cfg, nil
}

// getEnv gets an environment variable with a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer with a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloat gets an environment variable as a float with a default value.
func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
