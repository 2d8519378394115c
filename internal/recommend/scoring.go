package recommend

import (
	"fmt"
	"math"

	"github.com/paddlespot/paddlespot/internal/weather"
)

// Weights of the final score.
const (
	SafetyWeight        = 0.5
	AccessibilityWeight = 0.3
	ExperienceWeight    = 0.2
)

// Weights inside the safety score.
const (
	windWeight        = 0.4
	directionWeight   = 0.1
	temperatureWeight = 0.3
	waterTypeWeight   = 0.2
)

// Wind bands in knots.
const (
	calmWindKnots     = 5.0
	lightWindKnots    = 7.0
	moderateWindKnots = 12.0
)

// MinComfortableWaterTempC is the estimated water temperature below which
// thermal protection is advised.
const MinComfortableWaterTempC = 15.0

// waterTempOffsetC is subtracted from the air temperature to estimate the water.
const waterTempOffsetC = 5.0

// UnavailableScore is used for weather-dependent factors with no weather.
const UnavailableScore = 50.0

// neutralDirectionScore is the wind-direction term until directional
// modelling exists.
const neutralDirectionScore = 100.0

// spotFacts are the static inputs of the scoring functions.
type spotFacts struct {
	waterType  WaterType
	hasRapids  bool
	distanceKm float64
}

// safetyScore returns the safety sub-score and its warnings, wind first,
// then temperature and water type.
func safetyScore(f spotFacts, obs *weather.Observation) (float64, []string) {
	if obs == nil {
		return UnavailableScore, []string{WarningWeatherUnavailable}
	}

	var warnings []string
	knots := obs.WindKnots()

	var wind float64
	switch {
	case knots < calmWindKnots:
		wind = 100
	case knots < lightWindKnots:
		wind = 85
		warnings = append(warnings, fmt.Sprintf("Light wind of %.1f knots. Pleasant conditions.", knots))
	case knots < moderateWindKnots:
		wind = 50
		warnings = append(warnings, fmt.Sprintf("Moderate wind of %.1f knots. Requires experience and effort.", knots))
	default:
		wind = 25
		warnings = append(warnings, fmt.Sprintf("Strong wind of %.1f knots. Difficult conditions.", knots))
	}

	temperature := 100.0
	if waterTemp := obs.Temperature - waterTempOffsetC; waterTemp < MinComfortableWaterTempC {
		temperature = 40
		warnings = append(warnings, fmt.Sprintf(
			"Estimated water temperature %.0f°C (below 15°C). A wetsuit or thermal protection is strongly recommended to prevent hypothermia.",
			waterTemp))
	}

	var waterType float64
	switch f.waterType {
	case WaterRiver:
		waterType = 80
		if f.hasRapids {
			waterType = 70
			warnings = append(warnings, "River with moderate current. Requires experience.")
		}
	case WaterOcean:
		waterType = 60
		warnings = append(warnings, "Open sea. Watch out for tides and waves.")
	default:
		waterType = 100
	}

	score := wind*windWeight +
		neutralDirectionScore*directionWeight +
		temperature*temperatureWeight +
		waterType*waterTypeWeight
	return clamp(score), warnings
}

// accessibilityScore is a piecewise-linear decay over distance.
func accessibilityScore(distanceKm float64) float64 {
	switch {
	case distanceKm <= 10:
		return 100
	case distanceKm <= 50:
		return 100 - (distanceKm-10)/40*50
	case distanceKm <= 100:
		return 50 - (distanceKm-50)/50*30
	default:
		return math.Max(10, 20-(distanceKm-100)/10)
	}
}

// experienceScore rewards conditions whose difficulty matches the skill level.
func experienceScore(f spotFacts, obs *weather.Observation, skill SkillLevel) float64 {
	if obs == nil {
		return UnavailableScore
	}

	knots := obs.WindKnots()
	calm := knots < lightWindKnots && f.waterType == WaterLake
	moderate := (knots >= lightWindKnots && knots < moderateWindKnots) ||
		(f.waterType == WaterRiver && f.hasRapids)
	challenging := knots >= moderateWindKnots || f.waterType == WaterOcean

	var table [3]float64
	switch skill {
	case SkillBeginner:
		table = [3]float64{100, 30, 10}
	case SkillIntermediate:
		table = [3]float64{90, 100, 50}
	case SkillAdvanced, SkillExpert:
		table = [3]float64{70, 90, 100}
	default:
		return UnavailableScore
	}

	switch {
	case calm:
		return table[0]
	case moderate:
		return table[1]
	case challenging:
		return table[2]
	}
	return UnavailableScore
}

func finalScore(safety, accessibility, experience float64) float64 {
	return clamp(safety*SafetyWeight + accessibility*AccessibilityWeight + experience*ExperienceWeight)
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}
