// Package config loads PaddleSpot process configuration from the environment.
//
// Values come from the OS environment, then an optional .env file. The API and
// the worker share one Config; each reads only the sections it needs.
package config

import (
	"time"
)

// Config is the top-level configuration for the API and worker processes.
type Config struct {
	Environment string `envconfig:"APP_ENV" default:"development" validate:"oneof=development staging production test"`
	Service     string `envconfig:"SERVICE_NAME" default:"paddlespot"`
	Version     string `envconfig:"SERVICE_VERSION" default:"dev"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=trace debug info warn error fatal panic disabled"`

	Server    ServerConfig
	Database  DatabaseConfig
	Weather   WeatherConfig
	Recommend RecommendConfig
	Auth      AuthConfig
	Telemetry TelemetryConfig
	Worker    WorkerConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            string        `envconfig:"PORT" default:"8080" validate:"required,numeric"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"30s"`
	IdleTimeout     time.Duration `envconfig:"SERVER_IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`
	RequireTLS      bool          `envconfig:"REQUIRE_TLS" default:"false"`
}

// DatabaseConfig holds PostgreSQL settings. When Enabled is false the
// process keeps collections in memory.
type DatabaseConfig struct {
	Enabled         bool          `envconfig:"DB_ENABLED" default:"false"`
	URL             string        `envconfig:"DATABASE_URL" validate:"required_if=Enabled true"`
	MaxConns        int32         `envconfig:"DB_MAX_CONNS" default:"10" validate:"min=1,max=100"`
	MinConns        int32         `envconfig:"DB_MIN_CONNS" default:"1" validate:"min=0,ltefield=MaxConns"`
	MaxConnLifetime time.Duration `envconfig:"DB_MAX_CONN_LIFETIME" default:"30m"`
}

// WeatherConfig holds weather provider and cache settings.
type WeatherConfig struct {
	// APIKey enables the Weatherbit provider. Empty means simulated data only.
	APIKey          string        `envconfig:"WEATHERBIT_API_KEY"`
	BaseURL         string        `envconfig:"WEATHERBIT_BASE_URL" default:"https://api.weatherbit.io/v2.0" validate:"url"`
	Language        string        `envconfig:"WEATHERBIT_LANG" default:"fr" validate:"len=2"`
	CacheTTL        time.Duration `envconfig:"WEATHER_CACHE_TTL" default:"10m"`
	CacheGridSize   float64       `envconfig:"WEATHER_CACHE_GRID" default:"0.01" validate:"gt=0,lte=1"`
	StaleIfErrorTTL time.Duration `envconfig:"WEATHER_STALE_TTL" default:"1h"`

	// WarmupInterval runs the cache warm-up inside the API process. Zero disables it.
	WarmupInterval time.Duration `envconfig:"WEATHER_WARMUP_INTERVAL" default:"0"`
}

// RecommendConfig tunes the recommendation engine.
type RecommendConfig struct {
	Concurrency     int           `envconfig:"RECOMMEND_CONCURRENCY" default:"8" validate:"min=1,max=64"`
	DefaultRadiusKm float64       `envconfig:"RECOMMEND_DEFAULT_RADIUS_KM" default:"100" validate:"gt=0"`
	LookupTimeout   time.Duration `envconfig:"RECOMMEND_LOOKUP_TIMEOUT" default:"5s"`
	TopN            int           `envconfig:"RECOMMEND_TOP_N" default:"5" validate:"min=1,max=5"`
}

// AuthConfig holds bearer token verification settings.
type AuthConfig struct {
	// SigningKey is the HS256 secret. Required outside development.
	SigningKey string        `envconfig:"JWT_SIGNING_KEY" validate:"omitempty,min=32"`
	Issuer     string        `envconfig:"JWT_ISSUER" default:"paddlespot"`
	Audience   string        `envconfig:"JWT_AUDIENCE" default:"paddlespot-api"`
	TokenTTL   time.Duration `envconfig:"JWT_TOKEN_TTL" default:"24h"`
}

// TelemetryConfig holds OpenTelemetry export settings.
type TelemetryConfig struct {
	Enabled      bool    `envconfig:"OTEL_ENABLED" default:"false"`
	OTLPEndpoint string  `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT" default:"localhost:4317"`
	SampleRatio  float64 `envconfig:"OTEL_SAMPLE_RATIO" default:"1" validate:"gte=0,lte=1"`
}

// WorkerConfig holds background worker settings.
type WorkerConfig struct {
	Port            string        `envconfig:"WORKER_PORT" default:"8081" validate:"numeric"`
	GCPProject      string        `envconfig:"GCP_PROJECT"`
	Subscription    string        `envconfig:"PUBSUB_SUBSCRIPTION" default:"paddlespot-jobs"`
	RefreshInterval time.Duration `envconfig:"WORKER_REFRESH_INTERVAL" default:"15m"`
	Concurrency     int           `envconfig:"WORKER_CONCURRENCY" default:"4" validate:"min=1,max=32"`
	Timeout         time.Duration `envconfig:"WORKER_POINT_TIMEOUT" default:"20s"`
}

// IsDevelopment reports whether the process runs locally.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development" || c.Environment == "test"
}

// IsProduction reports whether the process runs in production.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
