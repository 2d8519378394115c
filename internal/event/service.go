package event

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/paddlespot/paddlespot/internal/spot"
	"github.com/paddlespot/paddlespot/internal/store"
	"github.com/paddlespot/paddlespot/internal/validation"
)

// Default display names when the caller has none.
const (
	DefaultOrganizerName   = "Organisateur"
	DefaultParticipantName = "Utilisateur"
)

// SpotGetter resolves the spot an event takes place at.
type SpotGetter interface {
	Get(ctx context.Context, id string) (*spot.Spot, error)
}

// ServiceConfig holds configuration for the event service.
type ServiceConfig struct {
	Collection store.Collection[Event]
	Spots      SpotGetter
	Logger     zerolog.Logger
	Now        func() time.Time
}

// Service provides event operations.
type Service struct {
	collection store.Collection[Event]
	spots      SpotGetter
	logger     zerolog.Logger
	now        func() time.Time
	mu         sync.Mutex
}

// NewService creates a new event service.
func NewService(cfg ServiceConfig) *Service {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		collection: cfg.Collection,
		spots:      cfg.Spots,
		logger:     cfg.Logger,
		now:        now,
	}
}

// List returns events matching filter, latest start first. An empty filter
// means upcoming.
func (s *Service) List(ctx context.Context, filter Filter) ([]Event, error) {
	if filter == "" {
		filter = FilterUpcoming
	}
	if filter != FilterUpcoming && filter != FilterPast && filter != FilterAll {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFilter, filter)
	}

	events, err := s.collection.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	out := make([]Event, 0, len(events))
	for _, e := range events {
		switch {
		case filter == FilterUpcoming && !e.StartsAt.After(now):
		case filter == FilterPast && !e.StartsAt.Before(now):
		default:
			out = append(out, e)
		}
	}

	slices.SortStableFunc(out, func(a, b Event) int {
		return b.StartsAt.Compare(a.StartsAt)
	})
	return out, nil
}

// Create schedules an event organized by the caller. The spot must exist.
func (s *Service) Create(ctx context.Context, organizer Participant, input NewEvent) (*Event, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	sp, err := s.spots.Get(ctx, input.SpotID)
	if err != nil {
		return nil, err
	}

	if input.DurationHours == 0 {
		input.DurationHours = DefaultDurationHours
	}
	if input.Level == "" {
		input.Level = LevelAll
	}
	if input.Type == "" {
		input.Type = TypeOuting
	}

	ev := Event{
		ID:              "evt_" + uuid.New().String()[:22],
		Title:           input.Title,
		Description:     input.Description,
		SpotID:          sp.ID,
		SpotName:        sp.Name,
		StartsAt:        input.StartsAt.UTC(),
		DurationHours:   input.DurationHours,
		MaxParticipants: input.MaxParticipants,
		Level:           input.Level,
		Type:            input.Type,
		OrganizerID:     organizer.UserID,
		OrganizerName:   nameOr(organizer.UserName, DefaultOrganizerName),
		Participants:    []Participant{},
		CreatedAt:       s.now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	events, err := s.collection.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.collection.Save(ctx, append(events, ev)); err != nil {
		return nil, fmt.Errorf("save event: %w", err)
	}

	s.logger.Info().
		Str("event_id", ev.ID).
		Str("spot_id", ev.SpotID).
		Time("starts_at", ev.StartsAt).
		Msg("event created")
	return &ev, nil
}

// ToggleJoin adds the user to the event, or removes them if already
// attending. Joining a full event fails with ErrEventFull; leaving never does.
func (s *Service) ToggleJoin(ctx context.Context, eventID string, user Participant) (*Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	events, err := s.collection.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	idx := slices.IndexFunc(events, func(e Event) bool { return e.ID == eventID })
	if idx < 0 {
		return nil, ErrEventNotFound
	}

	ev := events[idx]
	if i := slices.IndexFunc(ev.Participants, func(p Participant) bool { return p.UserID == user.UserID }); i >= 0 {
		ev.Participants = slices.Delete(ev.Participants, i, i+1)
	} else {
		if ev.Full() {
			return nil, ErrEventFull
		}
		ev.Participants = append(ev.Participants, Participant{
			UserID:   user.UserID,
			UserName: nameOr(user.UserName, DefaultParticipantName),
		})
	}
	events[idx] = ev

	if err := s.collection.Save(ctx, events); err != nil {
		return nil, fmt.Errorf("save event: %w", err)
	}
	return &ev, nil
}

// Delete removes an event. Only its organizer may delete it.
func (s *Service) Delete(ctx context.Context, eventID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	events, err := s.collection.GetAll(ctx)
	if err != nil {
		return err
	}

	idx := slices.IndexFunc(events, func(e Event) bool { return e.ID == eventID })
	if idx < 0 {
		return ErrEventNotFound
	}
	if events[idx].OrganizerID != userID {
		return ErrNotOrganizer
	}

	if err := s.collection.Save(ctx, slices.Delete(events, idx, idx+1)); err != nil {
		return fmt.Errorf("save event: %w", err)
	}

	s.logger.Info().Str("event_id", eventID).Msg("event deleted")
	return nil
}

func nameOr(name, fallback string) string {
	if name = strings.TrimSpace(name); name != "" {
		return name
	}
	return fallback
}
