// Package main provides the entrypoint for the PaddleSpot background worker.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/paddlespot/paddlespot/internal/config"
	"github.com/paddlespot/paddlespot/internal/database"
	"github.com/paddlespot/paddlespot/internal/provider/resilience"
	"github.com/paddlespot/paddlespot/internal/spot"
	"github.com/paddlespot/paddlespot/internal/store"
	"github.com/paddlespot/paddlespot/internal/telemetry"
	"github.com/paddlespot/paddlespot/internal/weather"
	"github.com/paddlespot/paddlespot/internal/weather/weatherbit"
	"github.com/paddlespot/paddlespot/internal/worker"
)

// Version and BuildTime are set at compile time via ldflags
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "paddlespot-worker"

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

	log.Info().Str("build_time", BuildTime).Msg("starting PaddleSpot worker")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

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
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("failed to shutdown telemetry")
		}
	}()

	providerMetrics, err := telemetry.NewProviderMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize provider metrics")
	}

	var spots store.Collection[spot.Spot] = store.NewMemory[spot.Spot]()
	if cfg.Database.Enabled {
		var pool *pgxpool.Pool
		pool, err = database.Connect(ctx, cfg.Database)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()
		spots = store.NewPostgres[spot.Spot](pool, store.KeySpots)
	}
	spotService := spot.NewService(spot.ServiceConfig{Collection: spots, Logger: log})

	weatherService := newWeatherService(cfg.Weather, resilience.NewRegistry(), providerMetrics, log)

	job := worker.NewRefreshJob(worker.RefreshJobConfig{
		Config: worker.RefreshConfig{
			Concurrency: cfg.Worker.Concurrency,
			Timeout:     cfg.Worker.Timeout,
			GridSize:    cfg.Weather.CacheGridSize,
		},
		Logger:         log,
		Spots:          spotService,
		WeatherService: weatherService,
	})

	// Health endpoint for Cloud Run.
	mux := chi.NewRouter()
	mux.Method(http.MethodGet, "/health", worker.HealthHandler(job, Version))

	server := &http.Server{
		Addr:         ":" + cfg.Worker.Port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("health check server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("health server error")
		}
	}()

	if cfg.Worker.GCPProject != "" {
		handler, err := worker.NewPubSubHandler(ctx, worker.PubSubConfig{
			ProjectID:        cfg.Worker.GCPProject,
			SubscriptionName: cfg.Worker.Subscription,
			RefreshJob:       job,
			Logger:           log,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create pubsub handler")
		}
		defer func() {
			if err := handler.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close pubsub client")
			}
		}()

		go func() {
			if err := handler.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error().Err(err).Msg("pubsub receive stopped")
			}
		}()
	} else {
		log.Info().
			Dur("interval", cfg.Worker.RefreshInterval).
			Msg("GCP_PROJECT not set - refreshing on a ticker")
		go job.RunEvery(ctx, cfg.Worker.RefreshInterval)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down worker")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("health server forced to shutdown")
	}

	log.Info().Msg("worker stopped")
}

// newWeatherService wires Weatherbit behind the simulated fallback.
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
