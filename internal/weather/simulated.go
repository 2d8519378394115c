package weather

import (
	"context"
	"math"
	"time"
)

// SimulatedProviderName identifies the simulated provider.
const SimulatedProviderName = "simulated"

// ForecastDays is the number of days returned by forecasts.
const ForecastDays = 5

var compassPoints = []string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// SimulatedProvider synthesizes readings from the coordinate alone, so
// repeated calls for the same coordinate return the same values.
// It is used when no live source is configured or the live source rejects a request.
type SimulatedProvider struct {
	now func() time.Time
}

// NewSimulatedProvider creates a simulated provider.
func NewSimulatedProvider() *SimulatedProvider {
	return &SimulatedProvider{now: time.Now}
}

// Name returns the provider name.
func (p *SimulatedProvider) Name() string {
	return SimulatedProviderName
}

// GetCurrentWeather returns the simulated reading for a coordinate.
func (p *SimulatedProvider) GetCurrentWeather(_ context.Context, lat, lon float64) (*Observation, error) {
	obs := simulate(lat, lon, lat+lon)
	now := p.now()
	obs.ObservedAt = now
	obs.FetchedAt = now
	obs.Description = "Conditions simulées"
	return obs, nil
}

// GetForecast returns a simulated forecast starting tomorrow.
// Day i is seeded with lat+lon+i.
func (p *SimulatedProvider) GetForecast(_ context.Context, lat, lon float64) ([]DayForecast, error) {
	now := p.now()
	days := make([]DayForecast, 0, ForecastDays)
	for i := 1; i <= ForecastDays; i++ {
		obs := simulate(lat, lon, lat+lon+float64(i))
		obs.Description = "Prévisions simulées"
		obs.FetchedAt = now
		days = append(days, DayForecast{
			Date:    now.AddDate(0, 0, i),
			Weather: *obs,
		})
	}
	return days, nil
}

// simulate builds a reading from a seed. Every draw uses the same fractional
// value derived from the seed; the reading is not meant to be realistic.
func simulate(lat, lon, seed float64) *Observation {
	x := math.Sin(seed*9999) * 10000
	frac := x - math.Floor(x)
	random := func(lo, hi float64) float64 {
		return lo + frac*(hi-lo)
	}

	temp := random(15, 28)
	wind := random(5, 30)
	wave := EstimateWaveHeight(wind)

	condition := ConditionCloudy
	if wind <= 20 && temp > 22 {
		condition = ConditionSunny
	}

	dirIdx := int(math.Floor(random(0, float64(len(compassPoints)))))
	if dirIdx >= len(compassPoints) {
		dirIdx = len(compassPoints) - 1
	}

	return &Observation{
		Lat:            lat,
		Lon:            lon,
		Temperature:    temp,
		FeelsLike:      temp + random(-2, 2),
		Humidity:       random(40, 80),
		WindSpeed:      wind,
		WindDirection:  compassPoints[dirIdx],
		Visibility:     random(8, 15),
		WaveHeight:     wave,
		UVIndex:        random(3, 9),
		Condition:      condition,
		Recommendation: RecommendationFor(wind, wave, ClearSkyCode),
		Simulated:      true,
	}
}

var _ Provider = (*SimulatedProvider)(nil)
