// Package spot manages the catalog of paddling spots.
package spot

import (
	"errors"
	"strconv"
	"strings"

	"github.com/paddlespot/paddlespot/pkg/geo"
)

// ErrSpotNotFound is returned when no spot has the requested id.
var ErrSpotNotFound = errors.New("spot not found")

// Spot is a candidate paddling location.
type Spot struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	Description string   `json:"description,omitempty"`
	Type        string   `json:"type,omitempty"`
	Address     string   `json:"address,omitempty"`
	PhotoURL    string   `json:"photoURL,omitempty"`
	Rating      float64  `json:"rating,omitempty"`
	Hazards     *Hazards `json:"hazards,omitempty"`
}

// Point returns the spot coordinate.
func (s *Spot) Point() geo.Point {
	return geo.Point{Lat: s.Latitude, Lon: s.Longitude}
}

// HasRapids reports whether the spot is flagged with rapids.
func (s *Spot) HasRapids() bool {
	return s.Hazards != nil && s.Hazards.Rapids
}

// Hazards is optional static classification of a spot. Absent fields never
// trigger a safety rule.
type Hazards struct {
	Rapids      bool        `json:"rapids,omitempty"`
	RapidsClass RapidsClass `json:"rapidsClass,omitempty" validate:"omitempty,oneof=R1 R2 R3 R4 R5 R6"`
	LowHeadDam  bool        `json:"lowHeadDam,omitempty"`
}

// RapidsClass is a whitewater class, "R1" (easy) to "R6" (unrunnable).
type RapidsClass string

// Level returns the numeric class (1-6), or 0 when unset or unknown.
func (c RapidsClass) Level() int {
	s := strings.TrimPrefix(strings.ToUpper(string(c)), "R")
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 6 {
		return 0
	}
	return n
}

// NewSpot is the input for adding a spot.
type NewSpot struct {
	Name        string   `json:"name" validate:"required,min=3,max=120"`
	Latitude    float64  `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude   float64  `json:"longitude" validate:"gte=-180,lte=180"`
	Description string   `json:"description" validate:"omitempty,min=10,max=2000"`
	Type        string   `json:"type" validate:"max=60"`
	Address     string   `json:"address" validate:"max=200"`
	PhotoURL    string   `json:"photoURL" validate:"omitempty,url"`
	Rating      float64  `json:"rating" validate:"gte=0,lte=5"`
	Hazards     *Hazards `json:"hazards" validate:"omitempty"`
}

// Nearby is a spot with its distance from a query point.
type Nearby struct {
	Spot       Spot    `json:"spot"`
	DistanceKm float64 `json:"distanceKm"`
}
