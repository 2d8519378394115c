// Package session records paddling outings per user.
package session

import (
	"errors"
	"time"
)

// ErrSessionNotFound is returned when a user has no session with the given id.
var ErrSessionNotFound = errors.New("session not found")

// Session is one logged outing.
type Session struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId"`
	SpotID          string    `json:"spotId"`
	SpotName        string    `json:"spotName,omitempty"`
	Date            time.Time `json:"date"`
	StartTime       string    `json:"startTime,omitempty"`
	EndTime         string    `json:"endTime,omitempty"`
	DurationMinutes int       `json:"durationMinutes"`
	DistanceKm      float64   `json:"distanceKm"`
	Conditions      string    `json:"conditions,omitempty"`
	Notes           string    `json:"notes,omitempty"`

	// Track is the GPS trace as an encoded polyline.
	Track string `json:"track,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// NewSession is the input for logging a session.
type NewSession struct {
	SpotID          string    `json:"spotId" validate:"required,max=64"`
	SpotName        string    `json:"spotName" validate:"max=120"`
	Date            time.Time `json:"date" validate:"required"`
	StartTime       string    `json:"startTime" validate:"omitempty,datetime=15:04"`
	EndTime         string    `json:"endTime" validate:"omitempty,datetime=15:04"`
	DurationMinutes int       `json:"durationMinutes" validate:"gte=0,lte=1440"`
	DistanceKm      float64   `json:"distanceKm" validate:"gte=0,lte=500"`
	Conditions      string    `json:"conditions" validate:"max=200"`
	Notes           string    `json:"notes" validate:"max=1000"`
	Track           string    `json:"track" validate:"max=100000"`
}

// Stats are a user's running totals.
type Stats struct {
	TotalSessions   int     `json:"totalSessions"`
	TotalDistanceKm float64 `json:"totalDistanceKm"`
	TotalMinutes    int     `json:"totalMinutes"`
	TotalHours      int     `json:"totalHours"`
	LongestKm       float64 `json:"longestKm"`
}
