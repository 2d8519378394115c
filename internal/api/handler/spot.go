package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/paddlespot/paddlespot/internal/api/models"
	"github.com/paddlespot/paddlespot/internal/api/response"
	"github.com/paddlespot/paddlespot/internal/spot"
)

// SpotHandler handles the spot catalog endpoints.
type SpotHandler struct {
	spots  *spot.Service
	logger zerolog.Logger
}

// NewSpotHandler creates a new SpotHandler.
func NewSpotHandler(spots *spot.Service, logger zerolog.Logger) *SpotHandler {
	return &SpotHandler{spots: spots, logger: logger}
}

// ListSpots handles GET /v1/spots. With lat and lon it returns the spots
// within radiusKm, closest first.
func (h *SpotHandler) ListSpots(w http.ResponseWriter, r *http.Request) {
	query, near, err := models.ParseCoordinateQuery(r.URL.Query())
	if err != nil {
		fail(w, r, h.logger, err, "failed to parse query")
		return
	}

	if near {
		nearby, err := h.spots.Near(r.Context(), query.Lat, query.Lon, query.RadiusKm)
		if err != nil {
			fail(w, r, h.logger, err, "failed to search spots")
			return
		}
		response.JSON(w, r, http.StatusOK, models.NewList(nearby))
		return
	}

	spots, err := h.spots.List(r.Context())
	if err != nil {
		fail(w, r, h.logger, err, "failed to list spots")
		return
	}
	response.JSON(w, r, http.StatusOK, models.NewList(spots))
}

// CreateSpot handles POST /v1/spots.
func (h *SpotHandler) CreateSpot(w http.ResponseWriter, r *http.Request) {
	var input spot.NewSpot
	if !decodeJSON(w, r, &input) {
		return
	}

	created, err := h.spots.Add(r.Context(), input)
	if err != nil {
		fail(w, r, h.logger, err, "failed to add spot")
		return
	}
	response.Created(w, r, "/v1/spots/"+created.ID, created)
}

// GetSpot handles GET /v1/spots/{spotId}.
func (h *SpotHandler) GetSpot(w http.ResponseWriter, r *http.Request) {
	s, err := h.spots.Get(r.Context(), chi.URLParam(r, "spotId"))
	if errors.Is(err, spot.ErrSpotNotFound) {
		response.NotFound(w, r, "spot not found")
		return
	}
	if err != nil {
		fail(w, r, h.logger, err, "failed to get spot")
		return
	}
	response.JSON(w, r, http.StatusOK, s)
}

// DeleteSpot handles DELETE /v1/spots/{spotId}. Admin only.
func (h *SpotHandler) DeleteSpot(w http.ResponseWriter, r *http.Request) {
	err := h.spots.Delete(r.Context(), chi.URLParam(r, "spotId"))
	if errors.Is(err, spot.ErrSpotNotFound) {
		response.NotFound(w, r, "spot not found")
		return
	}
	if err != nil {
		fail(w, r, h.logger, err, "failed to delete spot")
		return
	}
	response.NoContent(w, r)
}
