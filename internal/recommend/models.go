// Package recommend ranks paddling spots for a user.
//
// A pass drops spots outside the search radius and classifies each
// remaining spot's water body. It looks up current weather, eliminates
// unsafe spots, then scores the survivors on safety, accessibility and
// experience fit.
package recommend

import (
	"context"
	"errors"

	"github.com/paddlespot/paddlespot/internal/spot"
	"github.com/paddlespot/paddlespot/internal/weather"
	"github.com/paddlespot/paddlespot/pkg/geo"
)

// ErrInvalidInput is returned for a malformed query, such as an unknown
// skill level. A missing location is not an error.
var ErrInvalidInput = errors.New("invalid recommendation input")

// SkillLevel is the paddler's experience, in increasing order of tolerance.
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
	SkillExpert       SkillLevel = "expert"
)

// Valid reports whether s is a known skill level.
func (s SkillLevel) Valid() bool {
	switch s {
	case SkillBeginner, SkillIntermediate, SkillAdvanced, SkillExpert:
		return true
	}
	return false
}

// WaterType is the derived category of a water body.
type WaterType string

const (
	WaterLake  WaterType = "lake"
	WaterRiver WaterType = "river"
	WaterOcean WaterType = "ocean"

	// WaterCalm is accepted as a preference and treated as WaterLake.
	WaterCalm WaterType = "calm"
)

// Valid reports whether w is an accepted preference value.
func (w WaterType) Valid() bool {
	switch w {
	case WaterLake, WaterRiver, WaterOcean, WaterCalm:
		return true
	}
	return false
}

// DefaultMaxDistanceKm is the search radius used when none is given.
const DefaultMaxDistanceKm = 100

// DefaultTopN caps the recommendation list.
const DefaultTopN = 5

// UserContext holds the query parameters of a pass.
type UserContext struct {
	// Location is nil when the user position is unknown.
	Location           *geo.Point
	SkillLevel         SkillLevel
	PreferredWaterType WaterType
	// MaxDistanceKm of zero means DefaultMaxDistanceKm.
	MaxDistanceKm float64
}

// Breakdown is the per-factor score of a spot.
type Breakdown struct {
	SafetyScore        float64 `json:"safetyScore"`
	AccessibilityScore float64 `json:"accessibilityScore"`
	ExperienceScore    float64 `json:"experienceScore"`
	FinalScore         float64 `json:"finalScore"`
}

// ScoredSpot is the verdict for one spot.
type ScoredSpot struct {
	// Spot points into the caller's slice and must not be modified.
	Spot               *spot.Spot           `json:"spot"`
	WaterType          WaterType            `json:"waterType"`
	DistanceKm         float64              `json:"distanceKm"`
	Weather            *weather.Observation `json:"weather,omitempty"`
	Eliminated         bool                 `json:"eliminated"`
	EliminationReasons []string             `json:"eliminationReasons"`
	Score              float64              `json:"score"`
	Breakdown          Breakdown            `json:"breakdown"`
	Warnings           []string             `json:"warnings"`
}

// Result is the outcome of a pass.
type Result struct {
	ScoredSpots             []ScoredSpot `json:"scoredSpots"`
	TopRecommendations      []ScoredSpot `json:"topRecommendations"`
	MandatorySafetyWarnings []string     `json:"mandatorySafetyWarnings"`
}

// WeatherSource returns current conditions for a coordinate.
type WeatherSource interface {
	GetCurrentWeather(ctx context.Context, lat, lon float64) (*weather.Observation, error)
}
