package weather

import (
	"errors"
	"math"
	"time"
)

// Weather errors.
var (
	ErrProviderUnavailable = errors.New("weather provider unavailable")
	ErrInvalidCoordinates  = errors.New("invalid coordinates")

	// ErrUpstreamRejected is returned by live providers when the upstream
	// answered but refused the request (non-2xx status or an error payload).
	// It is distinct from a transport failure.
	ErrUpstreamRejected = errors.New("weather upstream rejected request")
)

// Observation is a weather snapshot for one coordinate at evaluation time.
type Observation struct {
	// Location coordinates
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`

	// Temperatures in Celsius
	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feelsLike"`

	// Humidity percentage (0-100)
	Humidity float64 `json:"humidity"`

	// Wind data
	WindSpeed     float64 `json:"windSpeed"`     // km/h
	WindDirection string  `json:"windDirection"` // compass label (N, NE, ...)

	// Visibility in kilometers
	Visibility float64 `json:"visibility"`

	// WaveHeight in meters, estimated from wind when not measured.
	WaveHeight float64 `json:"waveHeight"`

	UVIndex float64 `json:"uvIndex"`

	Condition   Condition `json:"conditions"`
	Description string    `json:"description"`

	// Recommendation is the provider's informational paddle tier.
	Recommendation Tier `json:"recommendation"`

	// Simulated is true when the reading was synthesized from the coordinate.
	Simulated bool `json:"simulated"`

	// Timestamps
	ObservedAt time.Time `json:"observedAt"`
	FetchedAt  time.Time `json:"fetchedAt"`
}

// WindKnots returns the wind speed in knots.
func (o *Observation) WindKnots() float64 {
	return KmhToKnots(o.WindSpeed)
}

// DayForecast is the expected weather for one day.
type DayForecast struct {
	Date    time.Time   `json:"date"`
	Weather Observation `json:"weather"`
}

// Condition is the coarse weather category.
type Condition string

const (
	ConditionSunny  Condition = "ensoleillé"
	ConditionCloudy Condition = "nuageux"
	ConditionRainy  Condition = "pluvieux"
	ConditionStormy Condition = "orageux"
	ConditionSnowy  Condition = "neigeux"
)

// Tier is the provider-side paddling recommendation.
type Tier string

const (
	TierExcellent Tier = "excellent"
	TierGood      Tier = "bon"
	TierFair      Tier = "moyen"
	TierDifficult Tier = "difficile"
	TierDangerous Tier = "dangereux"
)

// ClearSkyCode is the Weatherbit code for a clear sky.
const ClearSkyCode = 800

const knotsPerKmh = 0.539957

// KmhToKnots converts km/h to knots.
func KmhToKnots(kmh float64) float64 {
	return kmh * knotsPerKmh
}

// EstimateWaveHeight estimates wave height in meters from wind speed in km/h.
func EstimateWaveHeight(windKmh float64) float64 {
	return math.Min(windKmh/20, 2.5)
}

// ConditionFromCode maps a Weatherbit weather code to a Condition.
func ConditionFromCode(code int) Condition {
	switch {
	case code >= 200 && code < 300:
		return ConditionStormy
	case code >= 300 && code < 600:
		return ConditionRainy
	case code >= 600 && code < 700:
		return ConditionSnowy
	case code >= 800 && code <= 801:
		return ConditionSunny
	default:
		return ConditionCloudy
	}
}

// RecommendationFor derives the informational paddle tier from wind (km/h),
// wave height (m) and the Weatherbit weather code.
func RecommendationFor(windKmh, waveHeight float64, code int) Tier {
	switch {
	case windKmh > 25 || waveHeight > 1.5 || (code >= 200 && code < 300):
		return TierDangerous
	case windKmh > 20 || waveHeight > 1 || (code >= 500 && code < 600):
		return TierDifficult
	case windKmh > 15 || waveHeight > 0.7 || (code >= 300 && code < 500):
		return TierFair
	case windKmh > 10 || (code >= 802 && code <= 804):
		return TierGood
	default:
		return TierExcellent
	}
}
