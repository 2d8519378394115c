// Package main provides the entrypoint for the PaddleSpot API server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/paddlespot/paddlespot/internal/api"
	"github.com/paddlespot/paddlespot/internal/api/handler"
	"github.com/paddlespot/paddlespot/internal/api/middleware"
	"github.com/paddlespot/paddlespot/internal/auth"
	"github.com/paddlespot/paddlespot/internal/community"
	"github.com/paddlespot/paddlespot/internal/event"
	"github.com/paddlespot/paddlespot/internal/config"
	"github.com/paddlespot/paddlespot/internal/database"
	"github.com/paddlespot/paddlespot/internal/provider/resilience"
	"github.com/paddlespot/paddlespot/internal/recommend"
	"github.com/paddlespot/paddlespot/internal/session"
	"github.com/paddlespot/paddlespot/internal/spot"
	"github.com/paddlespot/paddlespot/internal/store"
	"github.com/paddlespot/paddlespot/internal/telemetry"
	"github.com/paddlespot/paddlespot/internal/weather"
	"github.com/paddlespot/paddlespot/internal/weather/weatherbit"
	"github.com/paddlespot/paddlespot/internal/worker"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

const devSigningKey = "local-dev-signing-key-change-in-production"

func main() {
	const serviceName = "paddlespot-api"

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		log = log.Level(level)
	}

	log.Info().
		Str("build_time", BuildTime).
		Str("environment", cfg.Environment).
		Msg("starting PaddleSpot API")

	ctx := context.Background()
	warmupCtx, stopWarmup := context.WithCancel(ctx)
	defer stopWarmup()

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.Telemetry.OTLPEndpoint,
		Enabled:        cfg.Telemetry.Enabled,
		SampleRatio:    cfg.Telemetry.SampleRatio,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}
	providerMetrics, err := telemetry.NewProviderMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize provider metrics")
	}

	// Storage: PostgreSQL when enabled, memory otherwise.
	var pool *pgxpool.Pool
	if cfg.Database.Enabled {
		pool, err = database.Connect(ctx, cfg.Database)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()
		if err := database.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("failed to migrate database")
		}
		log.Info().Msg("database connected")
	} else {
		log.Warn().Msg("database disabled - data is kept in memory")
	}

	spotService := spot.NewService(spot.ServiceConfig{
		Collection: collection[spot.Spot](pool, store.KeySpots),
		Logger:     log,
	})
	if err := spotService.EnsureCatalog(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to seed spot catalog")
	}
	sessionService := session.NewService(session.ServiceConfig{
		Collection: collection[session.Session](pool, store.KeySessions),
		Logger:     log,
	})
	communityService := community.NewService(community.ServiceConfig{
		Collection: collection[community.Post](pool, store.KeyPosts),
		Logger:     log,
	})
	eventService := event.NewService(event.ServiceConfig{
		Collection: collection[event.Event](pool, store.KeyEvents),
		Spots:      spotService,
		Logger:     log,
	})

	registry := resilience.NewRegistry()
	weatherService := newWeatherService(cfg.Weather, registry, providerMetrics, log)
	log.Info().Str("provider", weatherService.Name()).Msg("weather service initialized")

	engine := recommend.NewEngine(recommend.EngineConfig{
		Weather:         weatherService,
		Logger:          log,
		Concurrency:     cfg.Recommend.Concurrency,
		DefaultRadiusKm: cfg.Recommend.DefaultRadiusKm,
		TopN:            cfg.Recommend.TopN,
		Tracer:          tp.Tracer,
	})

	// The weather cache is per process, so the API can warm its own.
	if cfg.Weather.WarmupInterval > 0 {
		warmup := worker.NewRefreshJob(worker.RefreshJobConfig{
			Config: worker.RefreshConfig{
				Concurrency: cfg.Worker.Concurrency,
				Timeout:     cfg.Worker.Timeout,
				GridSize:    cfg.Weather.CacheGridSize,
			},
			Logger:         log,
			Spots:          spotService,
			WeatherService: weatherService,
		})
		go warmup.RunEvery(warmupCtx, cfg.Weather.WarmupInterval)
	}

	signingKey := cfg.Auth.SigningKey
	if signingKey == "" {
		signingKey = devSigningKey
		log.Warn().Msg("using default JWT signing key - not secure for production")
	}
	verifier := auth.NewTokenVerifier(auth.TokenConfig{
		SigningKey: signingKey,
		Issuer:     cfg.Auth.Issuer,
		Audience:   cfg.Auth.Audience,
		TTL:        cfg.Auth.TokenTTL,
	})

	routerCfg := api.RouterConfig{
		Version:          Version,
		BuildTime:        BuildTime,
		Logger:           log,
		ServiceName:      serviceName,
		Metrics:          metrics,
		RequireTLS:       cfg.Server.RequireTLS,
		Verifier:         verifier,
		Registry:         registry,
		SpotService:      spotService,
		SessionService:   sessionService,
		CommunityService: communityService,
		EventService:     eventService,
		WeatherService:   weatherService,
		Engine:           engine,
		RecommendTimeout: cfg.Recommend.LookupTimeout,
	}
	if pool != nil {
		routerCfg.Database = handler.Pinger(pool)
	}

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      api.NewRouter(routerCfg),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	stopWarmup()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return
	}

	log.Info().Msg("server stopped")
}

func collection[T any](pool *pgxpool.Pool, key string) store.Collection[T] {
	if pool == nil {
		return store.NewMemory[T]()
	}
	return store.NewPostgres[T](pool, key)
}

// newWeatherService wires Weatherbit behind the simulated fallback. Without
// an API key only simulated readings are served.
func newWeatherService(cfg config.WeatherConfig, registry *resilience.Registry, metrics *telemetry.ProviderMetrics, log zerolog.Logger) *weather.Service {
	var live weather.Provider
	if cfg.APIKey != "" {
		clientCfg := resilience.DefaultClientConfig(weatherbit.ProviderName)
		clientCfg.Registry = registry
		clientCfg.Logger = log

		live = weatherbit.NewClient(weatherbit.ClientConfig{
			APIKey:     cfg.APIKey,
			BaseURL:    cfg.BaseURL,
			Language:   cfg.Language,
			HTTPClient: resilience.NewClient(clientCfg),
			Logger:     log,
		})
	} else {
		log.Warn().Msg("WEATHERBIT_API_KEY not set - serving simulated weather")
	}

	return weather.NewService(weather.ServiceConfig{
		Provider:        weather.NewFallbackProvider(live, log),
		Logger:          log,
		Metrics:         metrics,
		CacheTTL:        cfg.CacheTTL,
		CacheGridSize:   cfg.CacheGridSize,
		StaleIfErrorTTL: cfg.StaleIfErrorTTL,
	})
}
