// Package main is the entry point for the AgriAssist backend.
// @title AgriAssist API
// @version 1.0
// @description Farming advisory backend: OTP login, farm profiles, AI chat with weather and mandi price tools, market browsing and speech synthesis

// @host localhost:8080
// @BasePath /
// @schemes http https
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Chaitanya-OverDev/AgriAssist/internal/api/handlers"
	"github.com/Chaitanya-OverDev/AgriAssist/internal/api/middleware"
	"github.com/Chaitanya-OverDev/AgriAssist/internal/api/routes"
	"github.com/Chaitanya-OverDev/AgriAssist/internal/config"
	"github.com/Chaitanya-OverDev/AgriAssist/internal/core/cache"
	"github.com/Chaitanya-OverDev/AgriAssist/internal/core/docdb"
	rediscache "github.com/Chaitanya-OverDev/AgriAssist/internal/infrastructure/cache/redis"
	"github.com/Chaitanya-OverDev/AgriAssist/internal/infrastructure/docdb/mongodb"
	"github.com/Chaitanya-OverDev/AgriAssist/internal/services/auth"
	"github.com/Chaitanya-OverDev/AgriAssist/internal/services/conversation"
	"github.com/Chaitanya-OverDev/AgriAssist/internal/services/geocode"
	"github.com/Chaitanya-OverDev/AgriAssist/internal/services/llm"
	"github.com/Chaitanya-OverDev/AgriAssist/internal/services/market"
	"github.com/Chaitanya-OverDev/AgriAssist/internal/services/snapshot"
	"github.com/Chaitanya-OverDev/AgriAssist/internal/services/speech"
	"github.com/Chaitanya-OverDev/AgriAssist/internal/services/tools"
	"github.com/Chaitanya-OverDev/AgriAssist/internal/services/weather"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	setupLogging(cfg.Log)

	ctx := context.Background()

	// Initialize cache client using factory pattern
	cacheClient, err := createCacheClient(cfg.Cache)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize cache client")
	}
	defer cacheClient.Close()

	// Initialize document db client using factory pattern
	docDBClient, err := createDocDBClient(ctx, cfg.DocDB)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize document db client")
	}
	defer docDBClient.Close(ctx)

	// Ensure database indexes
	if mc, ok := docDBClient.(*mongodb.Client); ok {
		if err := mc.EnsureIndexes(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to ensure indexes")
		}
	}

	gin.SetMode(cfg.Server.GinMode)

	router, err := setupRouter(cfg, cacheClient, docDBClient)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up router")
	}

	srv := &http.Server{
		Addr:    cfg.Server.Address(),
		Handler: router,
	}

	go func() {
		log.Info().Str("addr", cfg.Server.Address()).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}

// createCacheClient creates a cache client based on the configuration.
func createCacheClient(cfg config.CacheConfig) (cache.Client, error) {
	switch cache.Type(cfg.Type) {
	case cache.TypeRedis:
		return rediscache.NewClient(rediscache.Config{
			Host:     cfg.Host,
			Port:     cfg.Port,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
	default:
		return nil, fmt.Errorf("unsupported cache type: %s", cfg.Type)
	}
}

// createDocDBClient creates a document database client based on the configuration.
func createDocDBClient(ctx context.Context, cfg config.DocDBConfig) (docdb.Client, error) {
	switch docdb.Type(cfg.Type) {
	case docdb.TypeMongoDB:
		return mongodb.NewClient(ctx, &mongodb.ClientConfig{
			URI:          cfg.URI,
			DatabaseName: cfg.Database,
		})
	default:
		return nil, fmt.Errorf("unsupported docdb type: %s", cfg.Type)
	}
}

// setupLogging configures the global zerolog logger.
func setupLogging(cfg config.LogConfig) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

// setupRouter creates and configures the Gin router with all services wired.
func setupRouter(cfg *config.Config, cacheClient cache.Client, docDBClient docdb.Client) (*gin.Engine, error) {
	store, err := snapshot.NewStore(cacheClient)
	if err != nil {
		return nil, err
	}

	weatherProvider, err := weather.NewProvider(&weather.ProviderConfig{
		BaseURL:    cfg.Weather.BaseURL,
		APIKey:     cfg.Weather.APIKey,
		HTTPClient: &http.Client{Timeout: cfg.Weather.Timeout},
	})
	if err != nil {
		return nil, err
	}

	weatherService, err := weather.NewService(&weather.ServiceConfig{
		Provider: weatherProvider,
		Store:    store,
		TTL:      cfg.Weather.TTL,
		Logger:   log.With().Str("service", "weather").Logger(),
	})
	if err != nil {
		return nil, err
	}

	marketProvider, err := market.NewProvider(&market.ProviderConfig{
		BaseURL:    cfg.Market.ScraperURL,
		HTTPClient: &http.Client{Timeout: cfg.Market.Timeout},
		Logger:     log.With().Str("service", "market-scraper").Logger(),
	})
	if err != nil {
		return nil, err
	}

	marketService, err := market.NewService(&market.ServiceConfig{
		Provider: marketProvider,
		Store:    store,
		TTL:      cfg.Market.TTL,
		Logger:   log.With().Str("service", "market").Logger(),
	})
	if err != nil {
		return nil, err
	}

	resolver, err := tools.NewResolver(&tools.ResolverConfig{
		Weather: weatherService,
		Market:  marketService,
		Logger:  log.With().Str("service", "tools").Logger(),
	})
	if err != nil {
		return nil, err
	}

	llmClient, err := llm.NewAPIClient(&llm.ClientConfig{
		BaseURL:    cfg.LLM.BaseURL,
		APIKey:     cfg.LLM.APIKey,
		HTTPClient: &http.Client{Timeout: cfg.LLM.Timeout},
	})
	if err != nil {
		return nil, err
	}

	orchestrator, err := conversation.NewOrchestrator(&conversation.OrchestratorConfig{
		LLMClient:       llmClient,
		Sessions:        docDBClient.Sessions(),
		Messages:        docDBClient.Messages(),
		Users:           docDBClient.Users(),
		Resolver:        resolver,
		Weather:         weatherService,
		ChatModel:       cfg.LLM.ChatModel,
		TitleModel:      cfg.LLM.TitleModel,
		Temperature:     cfg.LLM.Temperature,
		MaxOutputTokens: cfg.LLM.MaxOutputTokens,
		Logger:          log.With().Str("service", "conversation").Logger(),
	})
	if err != nil {
		return nil, err
	}

	authService, err := auth.NewService(&auth.ServiceConfig{
		Users:  docDBClient.Users(),
		OTPs:   docDBClient.OTPs(),
		Logger: log.With().Str("service", "auth").Logger(),
	})
	if err != nil {
		return nil, err
	}

	geocodeClient, err := geocode.NewClient(&geocode.ClientConfig{
		BaseURL:    cfg.Geocode.BaseURL,
		UserAgent:  cfg.Geocode.UserAgent,
		HTTPClient: &http.Client{Timeout: cfg.Geocode.Timeout},
	})
	if err != nil {
		return nil, err
	}

	speechClient, err := speech.NewClient(&speech.ClientConfig{
		ServiceURL: cfg.Speech.ServiceURL,
		Voice:      cfg.Speech.Voice,
		HTTPClient: &http.Client{Timeout: cfg.Speech.Timeout},
		Logger:     log.With().Str("service", "speech").Logger(),
	})
	if err != nil {
		return nil, err
	}

	router := gin.New()

	loggingMw := middleware.NewLoggingMiddleware()
	errorMw := middleware.NewErrorMiddleware()

	routesCfg := &routes.Config{
		HealthHandler:  handlers.NewHealthHandler(cacheClient, docDBClient),
		AuthHandler:    handlers.NewAuthHandler(authService),
		UsersHandler:   handlers.NewUsersHandler(docDBClient.Users(), geocodeClient),
		ChatHandler:    handlers.NewChatHandler(docDBClient.Sessions(), docDBClient.Messages(), orchestrator),
		MarketHandler:  handlers.NewMarketHandler(marketService, docDBClient.Users()),
		WeatherHandler: handlers.NewWeatherHandler(weatherService, docDBClient.Users()),
		SpeechHandler:  handlers.NewSpeechHandler(speechClient),
	}

	routes.SetupWithMiddleware(router, routesCfg, loggingMw, errorMw)

	return router, nil
}
