// Package worker warms the weather cache for catalog spots in the background.
package worker

import (
	"math"
	"time"

	"github.com/paddlespot/paddlespot/internal/spot"
	"github.com/paddlespot/paddlespot/pkg/geo"
)

// Target is one spot whose weather is kept warm.
type Target struct {
	SpotID string
	Name   string
	Point  geo.Point
}

// RefreshConfig holds configuration for the weather refresh job.
type RefreshConfig struct {
	// Concurrency is the number of concurrent lookups.
	// Default: 4
	Concurrency int

	// Timeout bounds each lookup.
	// Default: 20 seconds
	Timeout time.Duration

	// GridSize collapses spots sharing a weather cache cell into one
	// lookup. Zero disables deduplication.
	GridSize float64
}

// DefaultRefreshConfig returns the default refresh configuration.
func DefaultRefreshConfig() RefreshConfig {
	return RefreshConfig{
		Concurrency: 4,
		Timeout:     20 * time.Second,
		GridSize:    0.01,
	}
}

func (c RefreshConfig) withDefaults() RefreshConfig {
	d := DefaultRefreshConfig()
	if c.Concurrency <= 0 {
		c.Concurrency = d.Concurrency
	}
	if c.Timeout <= 0 {
		c.Timeout = d.Timeout
	}
	return c
}

// TargetsFromSpots builds refresh targets in catalog order. When gridSize is
// positive, only the first spot of each grid cell is kept.
func TargetsFromSpots(spots []spot.Spot, gridSize float64) []Target {
	targets := make([]Target, 0, len(spots))
	seen := make(map[[2]int64]bool, len(spots))
	for i := range spots {
		s := &spots[i]
		if gridSize > 0 {
			cell := [2]int64{cellIndex(s.Latitude, gridSize), cellIndex(s.Longitude, gridSize)}
			if seen[cell] {
				continue
			}
			seen[cell] = true
		}
		targets = append(targets, Target{SpotID: s.ID, Name: s.Name, Point: s.Point()})
	}
	return targets
}

// cellIndex floors like the weather cache key does.
func cellIndex(v, size float64) int64 {
	return int64(math.Floor(v / size))
}
