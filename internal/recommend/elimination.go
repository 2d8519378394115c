package recommend

import (
	"fmt"

	"github.com/paddlespot/paddlespot/internal/spot"
	"github.com/paddlespot/paddlespot/internal/weather"
)

// Wind limits in km/h.
const (
	SkillWindLimitKmh    = 22.0
	AbsoluteWindLimitKmh = 37.0
)

// MinEliminatingRapidsLevel is the lowest whitewater class that removes a spot.
const MinEliminatingRapidsLevel = 3

// eliminationReasons returns every hard safety rule s breaks. Weather rules
// are skipped when obs is nil.
func eliminationReasons(s *spot.Spot, obs *weather.Observation, skill SkillLevel) []string {
	var reasons []string

	if obs != nil {
		knots := obs.WindKnots()
		if (skill == SkillBeginner || skill == SkillIntermediate) && obs.WindSpeed > SkillWindLimitKmh {
			reasons = append(reasons, fmt.Sprintf(
				"Wind of %.1f knots (%.0f km/h) is too strong for your level. Recommended limit: 12 knots (22 km/h).",
				knots, obs.WindSpeed))
		}
		if obs.WindSpeed > AbsoluteWindLimitKmh {
			reasons = append(reasons, fmt.Sprintf(
				"Extreme wind of %.1f knots (%.0f km/h), dangerous even for experts. Absolute limit: 20 knots (37 km/h).",
				knots, obs.WindSpeed))
		}
		if obs.Condition == weather.ConditionStormy {
			reasons = append(reasons,
				"Thunderstorm and lightning alert. Water conducts lightning over long distances: leave the water at the first flash or thunder.")
		}
	}

	if h := s.Hazards; h != nil {
		if h.Rapids && h.RapidsClass.Level() >= MinEliminatingRapidsLevel {
			reasons = append(reasons, fmt.Sprintf(
				"Class %s rapids. Dangerous except for very experienced whitewater paddlers.", h.RapidsClass))
		}
		if h.LowHeadDam {
			reasons = append(reasons,
				"Low-head dam present. Its recirculating current traps floating objects and is extremely dangerous.")
		}
	}

	return reasons
}
