package spot_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paddlespot/paddlespot/internal/spot"
	"github.com/paddlespot/paddlespot/internal/store"
	"github.com/paddlespot/paddlespot/internal/validation"
)

func newService(seed []spot.Spot) (*spot.Service, *store.Memory[spot.Spot]) {
	coll := store.NewMemory[spot.Spot]()
	return spot.NewService(spot.ServiceConfig{
		Collection: coll,
		Seed:       seed,
		Logger:     zerolog.Nop(),
	}), coll
}

func TestService_SeedsCatalogOnce(t *testing.T) {
	ctx := context.Background()
	svc, coll := newService(nil)

	spots, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, spots, len(spot.Catalog()))

	require.NoError(t, coll.Save(ctx, spots[:2]))

	spots, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, spots, 2, "an initialized collection is never reseeded")
}

func TestService_EmptySeedStaysEmpty(t *testing.T) {
	svc, _ := newService([]spot.Spot{})

	spots, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, spots)
}

func TestService_Get(t *testing.T) {
	svc, _ := newService(nil)

	s, err := svc.Get(context.Background(), "qc-lac-beauport")
	require.NoError(t, err)
	assert.Equal(t, "Lac-Beauport", s.Name)

	_, err = svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, spot.ErrSpotNotFound)
}

func TestService_Add(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService([]spot.Spot{})

	created, err := svc.Add(ctx, spot.NewSpot{
		Name:        "  Lac Sergent ",
		Latitude:    46.87,
		Longitude:   -71.72,
		Description: "Petit lac sans moteurs, parfait pour débuter.",
		Type:        "lac",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(created.ID, "spt_"))
	assert.Equal(t, "Lac Sergent", created.Name)

	spots, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, spots, 1)
	assert.Equal(t, created.ID, spots[0].ID)
}

func TestService_AddValidation(t *testing.T) {
	svc, _ := newService([]spot.Spot{})

	tests := []struct {
		name  string
		input spot.NewSpot
		field string
	}{
		{"short name", spot.NewSpot{Name: "ab"}, "name"},
		{"latitude out of range", spot.NewSpot{Name: "Spot", Latitude: 91}, "latitude"},
		{"longitude out of range", spot.NewSpot{Name: "Spot", Longitude: -181}, "longitude"},
		{"short description", spot.NewSpot{Name: "Spot", Description: "court"}, "description"},
		{"bad rapids class", spot.NewSpot{Name: "Spot", Hazards: &spot.Hazards{RapidsClass: "R9"}}, "hazards.rapidsClass"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Add(context.Background(), tt.input)

			var verr *validation.Error
			require.True(t, errors.As(err, &verr))
			require.NotEmpty(t, verr.Fields)
			assert.Equal(t, tt.field, verr.Fields[0].Field)
		})
	}
}

func TestService_Near(t *testing.T) {
	svc, _ := newService(nil)

	// Old Québec.
	nearby, err := svc.Near(context.Background(), 46.8139, -71.2080, 30)
	require.NoError(t, err)
	require.NotEmpty(t, nearby)

	for i, n := range nearby {
		assert.LessOrEqual(t, n.DistanceKm, 30.0)
		if i > 0 {
			assert.GreaterOrEqual(t, n.DistanceKm, nearby[i-1].DistanceKm)
		}
	}
	assert.Equal(t, "qc-riviere-saint-charles", nearby[0].Spot.ID)
}

func TestService_NearDefaultRadius(t *testing.T) {
	svc, _ := newService(nil)

	nearby, err := svc.Near(context.Background(), 45.5017, -73.5673, 0)
	require.NoError(t, err)
	for _, n := range nearby {
		assert.LessOrEqual(t, n.DistanceKm, spot.DefaultNearRadiusKm)
	}
	assert.NotEmpty(t, nearby)
}

func TestRapidsClass_Level(t *testing.T) {
	assert.Equal(t, 3, spot.RapidsClass("R3").Level())
	assert.Equal(t, 6, spot.RapidsClass("r6").Level())
	assert.Equal(t, 0, spot.RapidsClass("").Level())
	assert.Equal(t, 0, spot.RapidsClass("R9").Level())
	assert.Equal(t, 0, spot.RapidsClass("III").Level())
}

func TestCatalog_UniqueIDs(t *testing.T) {
	seen := map[string]bool{}
	for _, s := range spot.Catalog() {
		assert.False(t, seen[s.ID], "duplicate id %s", s.ID)
		seen[s.ID] = true
		assert.GreaterOrEqual(t, s.Latitude, -90.0)
		assert.LessOrEqual(t, s.Latitude, 90.0)
	}
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService([]spot.Spot{{ID: "a", Name: "Lac A"}, {ID: "b", Name: "Lac B"}})

	require.NoError(t, svc.Delete(ctx, "a"))

	spots, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, spots, 1)
	assert.Equal(t, "b", spots[0].ID)

	assert.ErrorIs(t, svc.Delete(ctx, "a"), spot.ErrSpotNotFound)
}

func TestService_DeleteFromSeededCatalog(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(nil)
	first := spot.Catalog()[0]

	require.NoError(t, svc.Delete(ctx, first.ID))

	_, err := svc.Get(ctx, first.ID)
	assert.ErrorIs(t, err, spot.ErrSpotNotFound)
}
