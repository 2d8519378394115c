// Package weather provides current conditions and forecasts for paddling spots,
// backed by a live provider, a deterministic simulator, and a coordinate-grid cache.
package weather

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/paddlespot/paddlespot/internal/telemetry"
	"github.com/paddlespot/paddlespot/pkg/geo"
)

// Provider defines the interface for weather data providers.
type Provider interface {
	// GetCurrentWeather fetches current weather for a location.
	GetCurrentWeather(ctx context.Context, lat, lon float64) (*Observation, error)

	// GetForecast fetches the daily forecast for a location.
	GetForecast(ctx context.Context, lat, lon float64) ([]DayForecast, error)

	// Name returns the provider name for logging.
	Name() string
}

// ServiceConfig holds configuration for the weather service.
type ServiceConfig struct {
	// Provider is the weather data provider.
	Provider Provider

	// Logger for service operations.
	Logger zerolog.Logger

	// Metrics records provider calls and cache hits (optional).
	Metrics *telemetry.ProviderMetrics

	// CacheTTL is how long to cache weather data (default: 10 minutes).
	CacheTTL time.Duration

	// CacheGridSize is the size of cache grid cells in degrees (default: 0.01, ~1km).
	// Points within the same grid cell share cached data.
	CacheGridSize float64

	// StaleIfErrorTTL allows serving stale data on provider errors (default: 1 hour).
	StaleIfErrorTTL time.Duration
}

// Service provides weather data with caching.
type Service struct {
	provider        Provider
	logger          zerolog.Logger
	metrics         *telemetry.ProviderMetrics
	cacheTTL        time.Duration
	cacheGridSize   float64
	staleIfErrorTTL time.Duration

	mu              sync.RWMutex
	weatherCache    map[string]*cachedObservation
	forecastCache   map[string]*cachedForecast
	lastCleanup     time.Time
	cleanupInterval time.Duration
}

type cachedObservation struct {
	observation *Observation
	fetchedAt   time.Time
	expiresAt   time.Time
}

type cachedForecast struct {
	days      []DayForecast
	fetchedAt time.Time
	expiresAt time.Time
}

// NewService creates a new weather service.
func NewService(cfg ServiceConfig) *Service {
	cacheTTL := cfg.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 10 * time.Minute
	}

	cacheGridSize := cfg.CacheGridSize
	if cacheGridSize == 0 {
		cacheGridSize = 0.01
	}

	staleIfErrorTTL := cfg.StaleIfErrorTTL
	if staleIfErrorTTL == 0 {
		staleIfErrorTTL = 1 * time.Hour
	}

	return &Service{
		provider:        cfg.Provider,
		logger:          cfg.Logger,
		metrics:         cfg.Metrics,
		cacheTTL:        cacheTTL,
		cacheGridSize:   cacheGridSize,
		staleIfErrorTTL: staleIfErrorTTL,
		weatherCache:    make(map[string]*cachedObservation),
		forecastCache:   make(map[string]*cachedForecast),
		cleanupInterval: 5 * time.Minute,
	}
}

// Name returns the underlying provider name.
func (s *Service) Name() string {
	return s.provider.Name()
}

// GetCurrentWeather returns current weather for a location.
// Uses cached data if available and not expired.
func (s *Service) GetCurrentWeather(ctx context.Context, lat, lon float64) (*Observation, error) {
	if err := validateCoordinates(lat, lon); err != nil {
		return nil, err
	}

	key := s.cacheKey(lat, lon)

	s.mu.RLock()
	if cached, ok := s.weatherCache[key]; ok && time.Now().Before(cached.expiresAt) {
		s.mu.RUnlock()
		s.metrics.RecordCacheHit(s.provider.Name(), "current")
		return cached.observation, nil
	}
	s.mu.RUnlock()
	s.metrics.RecordCacheMiss(s.provider.Name(), "current")

	s.logger.Debug().
		Float64("lat", lat).
		Float64("lon", lon).
		Str("provider", s.provider.Name()).
		Msg("fetching weather from provider")

	start := time.Now()
	obs, err := s.provider.GetCurrentWeather(ctx, lat, lon)
	s.metrics.RecordRequest(s.provider.Name(), "current", time.Since(start), err)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.logger.Error().Err(err).
			Float64("lat", lat).
			Float64("lon", lon).
			Msg("failed to fetch weather")

		if cached, ok := s.weatherCache[key]; ok && time.Now().Before(cached.fetchedAt.Add(s.staleIfErrorTTL)) {
			s.logger.Warn().
				Time("fetched_at", cached.fetchedAt).
				Msg("serving stale weather data due to provider error")
			return cached.observation, nil
		}

		return nil, fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
	}

	now := time.Now()
	s.weatherCache[key] = &cachedObservation{
		observation: obs,
		fetchedAt:   now,
		expiresAt:   now.Add(s.cacheTTL),
	}
	s.cleanupIfNeeded()

	return obs, nil
}

// GetForecast returns the daily forecast for a location.
func (s *Service) GetForecast(ctx context.Context, lat, lon float64) ([]DayForecast, error) {
	if err := validateCoordinates(lat, lon); err != nil {
		return nil, err
	}

	key := s.cacheKey(lat, lon)

	s.mu.RLock()
	if cached, ok := s.forecastCache[key]; ok && time.Now().Before(cached.expiresAt) {
		s.mu.RUnlock()
		s.metrics.RecordCacheHit(s.provider.Name(), "forecast")
		return cached.days, nil
	}
	s.mu.RUnlock()
	s.metrics.RecordCacheMiss(s.provider.Name(), "forecast")

	start := time.Now()
	days, err := s.provider.GetForecast(ctx, lat, lon)
	s.metrics.RecordRequest(s.provider.Name(), "forecast", time.Since(start), err)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.logger.Error().Err(err).
			Float64("lat", lat).
			Float64("lon", lon).
			Msg("failed to fetch forecast")

		if cached, ok := s.forecastCache[key]; ok && time.Now().Before(cached.fetchedAt.Add(s.staleIfErrorTTL)) {
			s.logger.Warn().
				Time("fetched_at", cached.fetchedAt).
				Msg("serving stale forecast data due to provider error")
			return cached.days, nil
		}

		return nil, fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
	}

	now := time.Now()
	s.forecastCache[key] = &cachedForecast{
		days:      days,
		fetchedAt: now,
		expiresAt: now.Add(s.cacheTTL),
	}
	s.cleanupIfNeeded()

	return days, nil
}

// GetWeatherForPoints returns current weather for multiple points, in order.
// Failed points are left nil.
func (s *Service) GetWeatherForPoints(ctx context.Context, points []geo.Point) []*Observation {
	results := make([]*Observation, len(points))

	for i, p := range points {
		obs, err := s.GetCurrentWeather(ctx, p.Lat, p.Lon)
		if err != nil {
			s.logger.Warn().
				Float64("lat", p.Lat).
				Float64("lon", p.Lon).
				Err(err).
				Msg("failed to get weather for point")
			continue
		}
		results[i] = obs
	}

	return results
}

// cacheKey groups nearby points into grid cells.
func (s *Service) cacheKey(lat, lon float64) string {
	gridLat := math.Floor(lat/s.cacheGridSize) * s.cacheGridSize
	gridLon := math.Floor(lon/s.cacheGridSize) * s.cacheGridSize
	return fmt.Sprintf("%.4f:%.4f", gridLat, gridLon)
}

// cleanupIfNeeded removes entries older than the stale window. Caller holds mu.
func (s *Service) cleanupIfNeeded() {
	now := time.Now()
	if now.Sub(s.lastCleanup) < s.cleanupInterval {
		return
	}

	s.lastCleanup = now
	expired := 0

	for key, cached := range s.weatherCache {
		if now.After(cached.fetchedAt.Add(s.staleIfErrorTTL)) {
			delete(s.weatherCache, key)
			expired++
		}
	}

	for key, cached := range s.forecastCache {
		if now.After(cached.fetchedAt.Add(s.staleIfErrorTTL)) {
			delete(s.forecastCache, key)
			expired++
		}
	}

	if expired > 0 {
		s.logger.Debug().
			Int("expired_entries", expired).
			Msg("cleaned up expired weather cache entries")
	}
}

// InvalidateCache clears all cached data.
func (s *Service) InvalidateCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.weatherCache = make(map[string]*cachedObservation)
	s.forecastCache = make(map[string]*cachedForecast)
}

// CacheStats returns cache statistics.
func (s *Service) CacheStats() CacheStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := time.Now()
	stats := CacheStats{
		WeatherEntries:  len(s.weatherCache),
		ForecastEntries: len(s.forecastCache),
		Provider:        s.provider.Name(),
	}

	for _, c := range s.weatherCache {
		if now.Before(c.expiresAt) {
			stats.WeatherFreshEntries++
		}
	}
	for _, c := range s.forecastCache {
		if now.Before(c.expiresAt) {
			stats.ForecastFreshEntries++
		}
	}

	return stats
}

// CacheStats contains cache statistics.
type CacheStats struct {
	WeatherEntries       int
	WeatherFreshEntries  int
	ForecastEntries      int
	ForecastFreshEntries int
	Provider             string
}

func validateCoordinates(lat, lon float64) error {
	if math.IsNaN(lat) || math.IsNaN(lon) || lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return ErrInvalidCoordinates
	}
	return nil
}
