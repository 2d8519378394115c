package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/paddlespot/paddlespot/internal/spot"
	"github.com/paddlespot/paddlespot/internal/weather"
)

// ErrNoTargets is returned by HealthCheck when the catalog is empty.
var ErrNoTargets = errors.New("no spots to refresh")

// SpotLister supplies the catalog. *spot.Service satisfies it.
type SpotLister interface {
	List(ctx context.Context) ([]spot.Spot, error)
}

// WeatherFetcher looks up current weather. *weather.Service satisfies it.
type WeatherFetcher interface {
	GetCurrentWeather(ctx context.Context, lat, lon float64) (*weather.Observation, error)
}

// RefreshJob fetches current weather for every catalog spot so that
// recommendation passes hit a warm cache.
type RefreshJob struct {
	config  RefreshConfig
	logger  zerolog.Logger
	spots   SpotLister
	weather WeatherFetcher

	metrics     *RefreshMetrics
	pointsTotal metric.Int64Counter
}

// RefreshMetrics tracks refresh job statistics.
type RefreshMetrics struct {
	mu sync.RWMutex

	TotalRefreshes    int64
	SuccessfulRefresh int64
	FailedRefreshes   int64
	SimulatedRefresh  int64

	LastRefreshAt       time.Time
	LastRefreshDuration time.Duration
	TotalDuration       time.Duration
}

// RefreshJobConfig holds configuration for creating a RefreshJob.
type RefreshJobConfig struct {
	Config         RefreshConfig
	Logger         zerolog.Logger
	Spots          SpotLister
	WeatherService WeatherFetcher
}

// NewRefreshJob creates a new refresh job processor.
func NewRefreshJob(cfg RefreshJobConfig) *RefreshJob {
	j := &RefreshJob{
		config:  cfg.Config.withDefaults(),
		logger:  cfg.Logger,
		spots:   cfg.Spots,
		weather: cfg.WeatherService,
		metrics: &RefreshMetrics{},
	}

	counter, err := otel.Meter("github.com/paddlespot/paddlespot/internal/worker").Int64Counter(
		"worker.refresh.points",
		metric.WithDescription("Weather lookups made by the refresh job"),
		metric.WithUnit("{point}"),
	)
	if err != nil {
		j.logger.Warn().Err(err).Msg("refresh counter unavailable")
	} else {
		j.pointsTotal = counter
	}
	return j
}

// RefreshResult contains the result of a refresh operation.
type RefreshResult struct {
	StartTime   time.Time
	EndTime     time.Time
	Duration    time.Duration
	TotalPoints int
	Successful  int
	Failed      int
	// Simulated counts lookups answered by the simulated fallback.
	Simulated int
	Errors    []RefreshError
}

// RefreshError represents a failed lookup.
type RefreshError struct {
	SpotID string
	Error  string
}

// Run refreshes every catalog spot. It fails only when the catalog cannot
// be read; individual lookup failures are counted in the result.
func (j *RefreshJob) Run(ctx context.Context) (*RefreshResult, error) {
	startTime := time.Now()

	spots, err := j.spots.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing spots: %w", err)
	}
	targets := TargetsFromSpots(spots, j.config.GridSize)

	result := &RefreshResult{
		StartTime:   startTime,
		TotalPoints: len(targets),
	}

	j.logger.Info().
		Int("total_points", result.TotalPoints).
		Int("concurrency", j.config.Concurrency).
		Msg("starting weather refresh job")

	targetsChan := make(chan Target, len(targets))
	resultsChan := make(chan pointResult, len(targets))

	var wg sync.WaitGroup
	for i := 0; i < j.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			j.refreshWorker(ctx, targetsChan, resultsChan)
		}()
	}

	for _, t := range targets {
		targetsChan <- t
	}
	close(targetsChan)

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	for pr := range resultsChan {
		switch {
		case pr.err != nil:
			result.Failed++
			result.Errors = append(result.Errors, RefreshError{SpotID: pr.target.SpotID, Error: pr.err.Error()})
		case pr.simulated:
			result.Successful++
			result.Simulated++
		default:
			result.Successful++
		}
	}

	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(startTime)
	j.updateMetrics(result)

	j.logger.Info().
		Dur("duration", result.Duration).
		Int("successful", result.Successful).
		Int("failed", result.Failed).
		Int("simulated", result.Simulated).
		Msg("weather refresh job completed")

	return result, nil
}

type pointResult struct {
	target    Target
	simulated bool
	err       error
}

func (j *RefreshJob) refreshWorker(ctx context.Context, targets <-chan Target, results chan<- pointResult) {
	for t := range targets {
		if ctx.Err() != nil {
			results <- pointResult{target: t, err: ctx.Err()}
			continue
		}
		results <- j.refreshPoint(ctx, t)
	}
}

func (j *RefreshJob) refreshPoint(ctx context.Context, t Target) pointResult {
	pointCtx, cancel := context.WithTimeout(ctx, j.config.Timeout)
	defer cancel()

	obs, err := j.weather.GetCurrentWeather(pointCtx, t.Point.Lat, t.Point.Lon)
	pr := pointResult{target: t, err: err}
	if err == nil && obs != nil {
		pr.simulated = obs.Simulated
	}
	if err != nil {
		j.logger.Debug().Err(err).Str("spot_id", t.SpotID).Msg("weather refresh failed")
	}
	j.recordPoint(pr)
	return pr
}

func (j *RefreshJob) recordPoint(pr pointResult) {
	if j.pointsTotal == nil {
		return
	}
	outcome := "ok"
	switch {
	case pr.err != nil:
		outcome = "error"
	case pr.simulated:
		outcome = "simulated"
	}
	j.pointsTotal.Add(context.Background(), 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

// HealthCheck fetches weather for the first catalog spot.
func (j *RefreshJob) HealthCheck(ctx context.Context) error {
	spots, err := j.spots.List(ctx)
	if err != nil {
		return fmt.Errorf("listing spots: %w", err)
	}
	if len(spots) == 0 {
		return ErrNoTargets
	}

	target := TargetsFromSpots(spots[:1], 0)[0]
	if pr := j.refreshPoint(ctx, target); pr.err != nil {
		return fmt.Errorf("health check failed for %s: %w", target.SpotID, pr.err)
	}
	return nil
}

// RunEvery runs the job immediately and then on every tick until ctx ends.
// It is used when no Pub/Sub subscription is configured.
func (j *RefreshJob) RunEvery(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := j.Run(ctx); err != nil {
			j.logger.Error().Err(err).Msg("weather refresh failed")
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (j *RefreshJob) updateMetrics(result *RefreshResult) {
	j.metrics.mu.Lock()
	defer j.metrics.mu.Unlock()

	j.metrics.TotalRefreshes++
	j.metrics.SuccessfulRefresh += int64(result.Successful)
	j.metrics.FailedRefreshes += int64(result.Failed)
	j.metrics.SimulatedRefresh += int64(result.Simulated)
	j.metrics.LastRefreshAt = result.EndTime
	j.metrics.LastRefreshDuration = result.Duration
	j.metrics.TotalDuration += result.Duration
}

// GetMetrics returns a copy of the current metrics.
func (j *RefreshJob) GetMetrics() RefreshMetrics {
	j.metrics.mu.RLock()
	defer j.metrics.mu.RUnlock()

	return RefreshMetrics{
		TotalRefreshes:      j.metrics.TotalRefreshes,
		SuccessfulRefresh:   j.metrics.SuccessfulRefresh,
		FailedRefreshes:     j.metrics.FailedRefreshes,
		SimulatedRefresh:    j.metrics.SimulatedRefresh,
		LastRefreshAt:       j.metrics.LastRefreshAt,
		LastRefreshDuration: j.metrics.LastRefreshDuration,
		TotalDuration:       j.metrics.TotalDuration,
	}
}

// MetricsSnapshot returns a snapshot of the current metrics as a map.
func (j *RefreshJob) MetricsSnapshot() map[string]any {
	m := j.GetMetrics()
	return map[string]any{
		"total_refreshes":       m.TotalRefreshes,
		"successful_refreshes":  m.SuccessfulRefresh,
		"failed_refreshes":      m.FailedRefreshes,
		"simulated_refreshes":   m.SimulatedRefresh,
		"last_refresh_at":       m.LastRefreshAt,
		"last_refresh_duration": m.LastRefreshDuration.String(),
		"total_duration":        m.TotalDuration.String(),
	}
}
