package session

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/paddlespot/paddlespot/internal/store"
	"github.com/paddlespot/paddlespot/internal/validation"
	"github.com/paddlespot/paddlespot/pkg/geo"
)

// ServiceConfig holds configuration for the session service.
type ServiceConfig struct {
	Collection store.Collection[Session]
	Logger     zerolog.Logger

	// Now overrides the clock (tests).
	Now func() time.Time
}

// Service provides session logging operations.
type Service struct {
	collection store.Collection[Session]
	logger     zerolog.Logger
	now        func() time.Time
	mu         sync.Mutex
}

// NewService creates a new session service.
func NewService(cfg ServiceConfig) *Service {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		collection: cfg.Collection,
		logger:     cfg.Logger,
		now:        now,
	}
}

// Add validates and stores a session for the user. Missing duration is
// derived from start and end times, missing distance from the track.
func (s *Service) Add(ctx context.Context, userID string, input NewSession) (*Session, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	duration := input.DurationMinutes
	if duration == 0 && input.StartTime != "" && input.EndTime != "" {
		d, err := minutesBetween(input.StartTime, input.EndTime)
		if err != nil {
			return nil, err
		}
		duration = d
	}

	distance := input.DistanceKm
	if input.Track != "" {
		points, err := geo.DecodeTrack(input.Track)
		if err != nil {
			return nil, validation.NewError("track", "polyline", "must be an encoded polyline")
		}
		if distance == 0 {
			distance = math.Round(geo.PathLengthKm(points)*100) / 100
		}
	}

	created := Session{
		ID:              "ses_" + uuid.New().String()[:22],
		UserID:          userID,
		SpotID:          input.SpotID,
		SpotName:        input.SpotName,
		Date:            input.Date,
		StartTime:       input.StartTime,
		EndTime:         input.EndTime,
		DurationMinutes: duration,
		DistanceKm:      distance,
		Conditions:      input.Conditions,
		Notes:           input.Notes,
		Track:           input.Track,
		CreatedAt:       s.now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.collection.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.collection.Save(ctx, append(all, created)); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	s.logger.Info().
		Str("session_id", created.ID).
		Str("spot_id", created.SpotID).
		Float64("distance_km", created.DistanceKm).
		Msg("session logged")

	return &created, nil
}

// List returns the user's sessions, newest first.
func (s *Service) List(ctx context.Context, userID string) ([]Session, error) {
	all, err := s.collection.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Session, 0)
	for _, ses := range all {
		if ses.UserID == userID {
			out = append(out, ses)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Delete removes one of the user's sessions.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.collection.GetAll(ctx)
	if err != nil {
		return err
	}

	kept := make([]Session, 0, len(all))
	found := false
	for _, ses := range all {
		if ses.ID == id && ses.UserID == userID {
			found = true
			continue
		}
		kept = append(kept, ses)
	}
	if !found {
		return ErrSessionNotFound
	}

	return s.collection.Save(ctx, kept)
}

// Stats sums the user's sessions.
func (s *Service) Stats(ctx context.Context, userID string) (*Stats, error) {
	sessions, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	st := &Stats{TotalSessions: len(sessions)}
	for _, ses := range sessions {
		st.TotalDistanceKm += ses.DistanceKm
		st.TotalMinutes += ses.DurationMinutes
		st.LongestKm = math.Max(st.LongestKm, ses.DistanceKm)
	}
	st.TotalHours = int(math.Round(float64(st.TotalMinutes) / 60))
	return st, nil
}

var errEndBeforeStart = validation.NewError("endTime", "gtfield", "must be after startTime")

func minutesBetween(start, end string) (int, error) {
	a, err := time.Parse("15:04", start)
	if err != nil {
		return 0, err
	}
	b, err := time.Parse("15:04", end)
	if err != nil {
		return 0, err
	}
	if !b.After(a) {
		return 0, errEndBeforeStart
	}
	return int(b.Sub(a).Minutes()), nil
}
