package weather

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
)

// FallbackProvider serves live readings when possible and simulated ones
// when the live source is missing or rejects the request. Transport failures
// surface as ErrProviderUnavailable and are never masked by simulation.
type FallbackProvider struct {
	live      Provider
	simulated *SimulatedProvider
	logger    zerolog.Logger
}

// NewFallbackProvider creates a fallback provider. live may be nil.
func NewFallbackProvider(live Provider, logger zerolog.Logger) *FallbackProvider {
	return &FallbackProvider{
		live:      live,
		simulated: NewSimulatedProvider(),
		logger:    logger,
	}
}

// Name returns the live provider name, or the simulated one if none is configured.
func (p *FallbackProvider) Name() string {
	if p.live == nil {
		return p.simulated.Name()
	}
	return p.live.Name()
}

// GetCurrentWeather fetches current weather with simulated fallback.
func (p *FallbackProvider) GetCurrentWeather(ctx context.Context, lat, lon float64) (*Observation, error) {
	if p.live == nil {
		return p.simulated.GetCurrentWeather(ctx, lat, lon)
	}

	obs, err := p.live.GetCurrentWeather(ctx, lat, lon)
	if err == nil {
		return obs, nil
	}

	if errors.Is(err, ErrUpstreamRejected) {
		p.logger.Warn().Err(err).
			Float64("lat", lat).
			Float64("lon", lon).
			Msg("weather upstream rejected request, using simulated data")
		return p.simulated.GetCurrentWeather(ctx, lat, lon)
	}

	return nil, errors.Join(ErrProviderUnavailable, err)
}

// GetForecast fetches the forecast with simulated fallback.
func (p *FallbackProvider) GetForecast(ctx context.Context, lat, lon float64) ([]DayForecast, error) {
	if p.live == nil {
		return p.simulated.GetForecast(ctx, lat, lon)
	}

	days, err := p.live.GetForecast(ctx, lat, lon)
	if err == nil {
		return days, nil
	}

	if errors.Is(err, ErrUpstreamRejected) {
		p.logger.Warn().Err(err).
			Float64("lat", lat).
			Float64("lon", lon).
			Msg("forecast upstream rejected request, using simulated data")
		return p.simulated.GetForecast(ctx, lat, lon)
	}

	return nil, errors.Join(ErrProviderUnavailable, err)
}

var _ Provider = (*FallbackProvider)(nil)
