package models

import (
	"math"

	"github.com/paddlespot/paddlespot/internal/recommend"
	"github.com/paddlespot/paddlespot/internal/spot"
	"github.com/paddlespot/paddlespot/internal/weather"
)

// RecommendationRequest is the body of POST /v1/recommendations.
type RecommendationRequest struct {
	// Location is optional; without it the response asks for a location.
	Location           *Point  `json:"location" validate:"omitempty"`
	SkillLevel         string  `json:"skillLevel" validate:"required,oneof=beginner intermediate advanced expert"`
	PreferredWaterType string  `json:"preferredWaterType" validate:"omitempty,oneof=lake river ocean calm"`
	MaxDistanceKm      float64 `json:"maxDistanceKm" validate:"gte=0,lte=1000"`
}

// ScoreBreakdown is a breakdown rounded for display.
type ScoreBreakdown struct {
	SafetyScore        int `json:"safetyScore"`
	AccessibilityScore int `json:"accessibilityScore"`
	ExperienceScore    int `json:"experienceScore"`
	FinalScore         int `json:"finalScore"`
}

// ScoredSpot is one spot's verdict as shown to clients.
type ScoredSpot struct {
	Spot               spot.Spot            `json:"spot"`
	WaterType          string               `json:"waterType"`
	DistanceKm         float64              `json:"distanceKm"`
	Weather            *weather.Observation `json:"weather,omitempty"`
	Eliminated         bool                 `json:"eliminated"`
	EliminationReasons []string             `json:"eliminationReasons"`
	Score              int                  `json:"score"`
	Breakdown          ScoreBreakdown       `json:"breakdown"`
	Warnings           []string             `json:"warnings"`
}

// RecommendationResponse is the body returned by POST /v1/recommendations.
type RecommendationResponse struct {
	LocationRequired        bool         `json:"locationRequired"`
	ScoredSpots             []ScoredSpot `json:"scoredSpots"`
	TopRecommendations      []ScoredSpot `json:"topRecommendations"`
	MandatorySafetyWarnings []string     `json:"mandatorySafetyWarnings"`
}

// NewRecommendationResponse converts an engine result. Scores are rounded
// here only; ordering was decided on the unrounded values.
func NewRecommendationResponse(res *recommend.Result, locationRequired bool) RecommendationResponse {
	return RecommendationResponse{
		LocationRequired:        locationRequired,
		ScoredSpots:             convertScored(res.ScoredSpots),
		TopRecommendations:      convertScored(res.TopRecommendations),
		MandatorySafetyWarnings: res.MandatorySafetyWarnings,
	}
}

func convertScored(in []recommend.ScoredSpot) []ScoredSpot {
	out := make([]ScoredSpot, 0, len(in))
	for _, s := range in {
		out = append(out, ScoredSpot{
			Spot:               *s.Spot,
			WaterType:          string(s.WaterType),
			DistanceKm:         math.Round(s.DistanceKm*10) / 10,
			Weather:            s.Weather,
			Eliminated:         s.Eliminated,
			EliminationReasons: s.EliminationReasons,
			Score:              round(s.Score),
			Breakdown: ScoreBreakdown{
				SafetyScore:        round(s.Breakdown.SafetyScore),
				AccessibilityScore: round(s.Breakdown.AccessibilityScore),
				ExperienceScore:    round(s.Breakdown.ExperienceScore),
				FinalScore:         round(s.Breakdown.FinalScore),
			},
			Warnings: s.Warnings,
		})
	}
	return out
}

func round(v float64) int {
	return int(math.Round(v))
}
