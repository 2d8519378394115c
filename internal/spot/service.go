package spot

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/paddlespot/paddlespot/internal/store"
	"github.com/paddlespot/paddlespot/internal/validation"
	"github.com/paddlespot/paddlespot/pkg/geo"
)

// DefaultNearRadiusKm is the search radius used by Near when none is given.
const DefaultNearRadiusKm = 50.0

// ServiceConfig holds configuration for the spot service.
type ServiceConfig struct {
	// Collection stores the spots.
	Collection store.Collection[Spot]

	// Seed is written the first time the collection is read. Defaults to Catalog().
	Seed []Spot

	Logger zerolog.Logger
}

// Service provides spot catalog operations.
type Service struct {
	collection store.Collection[Spot]
	seed       []Spot
	logger     zerolog.Logger

	// mu serializes read-modify-write cycles on the collection.
	mu sync.Mutex
}

// NewService creates a new spot service.
func NewService(cfg ServiceConfig) *Service {
	seed := cfg.Seed
	if seed == nil {
		seed = Catalog()
	}
	return &Service{
		collection: cfg.Collection,
		seed:       seed,
		logger:     cfg.Logger,
	}
}

// EnsureCatalog seeds the collection with the built-in catalog if it has
// never been written.
func (s *Service) EnsureCatalog(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensureCatalogLocked(ctx)
}

func (s *Service) ensureCatalogLocked(ctx context.Context) error {
	ok, err := s.collection.Initialized(ctx)
	if err != nil {
		return fmt.Errorf("check spot catalog: %w", err)
	}
	if ok {
		return nil
	}

	if err := s.collection.Save(ctx, s.seed); err != nil {
		return fmt.Errorf("seed spot catalog: %w", err)
	}

	s.logger.Info().Int("spots", len(s.seed)).Msg("seeded spot catalog")
	return nil
}

// List returns every spot in catalog order.
func (s *Service) List(ctx context.Context) ([]Spot, error) {
	if err := s.EnsureCatalog(ctx); err != nil {
		return nil, err
	}
	return s.collection.GetAll(ctx)
}

// Get returns one spot by id.
func (s *Service) Get(ctx context.Context, id string) (*Spot, error) {
	spots, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range spots {
		if spots[i].ID == id {
			return &spots[i], nil
		}
	}
	return nil, ErrSpotNotFound
}

// Add validates and appends a new spot.
func (s *Service) Add(ctx context.Context, input NewSpot) (*Spot, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureCatalogLocked(ctx); err != nil {
		return nil, err
	}

	spots, err := s.collection.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	created := Spot{
		ID:          "spt_" + uuid.New().String()[:22],
		Name:        input.Name,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		Description: input.Description,
		Type:        input.Type,
		Address:     input.Address,
		PhotoURL:    input.PhotoURL,
		Rating:      input.Rating,
		Hazards:     input.Hazards,
	}

	if err := s.collection.Save(ctx, append(spots, created)); err != nil {
		return nil, fmt.Errorf("save spot: %w", err)
	}

	s.logger.Info().Str("spot_id", created.ID).Str("name", created.Name).Msg("spot added")
	return &created, nil
}

// Near returns spots within radiusKm of the point, closest first.
// A non-positive radius uses DefaultNearRadiusKm.
func (s *Service) Near(ctx context.Context, lat, lon, radiusKm float64) ([]Nearby, error) {
	if radiusKm <= 0 {
		radiusKm = DefaultNearRadiusKm
	}

	spots, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	origin := geo.Point{Lat: lat, Lon: lon}
	out := make([]Nearby, 0, len(spots))
	for _, sp := range spots {
		d := origin.DistanceTo(sp.Point())
		if d <= radiusKm {
			out = append(out, Nearby{Spot: sp, DistanceKm: d})
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].DistanceKm < out[j].DistanceKm })
	return out, nil
}

// Delete removes a spot from the catalog.
func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureCatalogLocked(ctx); err != nil {
		return err
	}

	spots, err := s.collection.GetAll(ctx)
	if err != nil {
		return err
	}

	idx := slices.IndexFunc(spots, func(sp Spot) bool { return sp.ID == id })
	if idx < 0 {
		return ErrSpotNotFound
	}

	if err := s.collection.Save(ctx, slices.Delete(spots, idx, idx+1)); err != nil {
		return fmt.Errorf("save spots: %w", err)
	}

	s.logger.Info().Str("spot_id", id).Msg("spot deleted")
	return nil
}
