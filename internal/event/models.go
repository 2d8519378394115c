// Package event organizes group outings, races and clean-ups at spots.
package event

import (
	"errors"
	"time"
)

var (
	// ErrEventNotFound is returned when no event has the requested id.
	ErrEventNotFound = errors.New("event not found")

	// ErrEventFull is returned when joining an event at capacity.
	ErrEventFull = errors.New("event is full")

	// ErrNotOrganizer is returned when someone other than the organizer
	// deletes an event.
	ErrNotOrganizer = errors.New("only the organizer can delete an event")

	// ErrInvalidFilter is returned for an unknown list filter.
	ErrInvalidFilter = errors.New("invalid event filter")
)

// Type is the kind of event.
type Type string

const (
	TypeOuting      Type = "outing"
	TypeCompetition Type = "competition"
	TypeTraining    Type = "training"
	TypeCleanup     Type = "cleanup"
	TypeSocial      Type = "social"
)

// Level is the audience an event targets.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
	LevelAll          Level = "all"
)

// Filter selects events relative to now.
type Filter string

const (
	FilterUpcoming Filter = "upcoming"
	FilterPast     Filter = "past"
	FilterAll      Filter = "all"
)

// DefaultDurationHours is used when an event is created without a duration.
const DefaultDurationHours = 2

// Event is a scheduled gathering at a spot.
type Event struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	SpotID        string    `json:"spotId"`
	SpotName      string    `json:"spotName"`
	StartsAt      time.Time `json:"startsAt"`
	DurationHours int       `json:"durationHours"`

	// MaxParticipants of zero means unlimited.
	MaxParticipants int `json:"maxParticipants,omitempty"`

	Level         Level         `json:"level"`
	Type          Type          `json:"type"`
	OrganizerID   string        `json:"organizerId"`
	OrganizerName string        `json:"organizerName"`
	Participants  []Participant `json:"participants"`
	CreatedAt     time.Time     `json:"createdAt"`
}

// Full reports whether the event has reached its participant limit.
func (e *Event) Full() bool {
	return e.MaxParticipants > 0 && len(e.Participants) >= e.MaxParticipants
}

// Participant is a user attending an event.
type Participant struct {
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
}

// NewEvent is the input for creating an event.
type NewEvent struct {
	Title           string    `json:"title" validate:"required,max=120"`
	Description     string    `json:"description" validate:"max=2000"`
	SpotID          string    `json:"spotId" validate:"required,max=64"`
	StartsAt        time.Time `json:"startsAt" validate:"required"`
	DurationHours   int       `json:"durationHours" validate:"gte=0,lte=24"`
	MaxParticipants int       `json:"maxParticipants" validate:"gte=0,lte=500"`
	Level           Level     `json:"level" validate:"omitempty,oneof=beginner intermediate advanced all"`
	Type            Type      `json:"type" validate:"omitempty,oneof=outing competition training cleanup social"`
}
