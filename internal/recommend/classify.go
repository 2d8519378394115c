package recommend

import (
	"strings"

	"github.com/paddlespot/paddlespot/internal/spot"
)

type classifyRule struct {
	waterType WaterType
	keywords  []string
}

// Checked in order; the first match wins.
var classifyRules = []classifyRule{
	{WaterLake, []string{"lac", "lake"}},
	{WaterRiver, []string{"rivière", "river"}},
	{WaterOcean, []string{"mer", "ocean", "fleuve"}},
}

// Classify returns the water type of s. A non-empty preference applies to
// every spot; otherwise the type is inferred from the spot's text and
// defaults to lake.
func Classify(s *spot.Spot, preferred WaterType) WaterType {
	switch preferred {
	case WaterLake, WaterCalm:
		return WaterLake
	case WaterRiver, WaterOcean:
		return preferred
	}

	text := strings.ToLower(s.Name + " " + s.Description + " " + s.Type)
	for _, rule := range classifyRules {
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				return rule.waterType
			}
		}
	}
	return WaterLake
}
