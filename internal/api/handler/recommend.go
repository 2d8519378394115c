package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/paddlespot/paddlespot/internal/api/models"
	"github.com/paddlespot/paddlespot/internal/api/response"
	"github.com/paddlespot/paddlespot/internal/recommend"
	"github.com/paddlespot/paddlespot/internal/spot"
	"github.com/paddlespot/paddlespot/internal/validation"
	"github.com/paddlespot/paddlespot/pkg/geo"
)

// RecommendHandler runs recommendation passes over the spot catalog.
type RecommendHandler struct {
	spots   *spot.Service
	engine  *recommend.Engine
	timeout time.Duration
	logger  zerolog.Logger
}

// NewRecommendHandler creates a new RecommendHandler. A zero timeout
// leaves the request context as is.
func NewRecommendHandler(spots *spot.Service, engine *recommend.Engine, timeout time.Duration, logger zerolog.Logger) *RecommendHandler {
	return &RecommendHandler{
		spots:   spots,
		engine:  engine,
		timeout: timeout,
		logger:  logger,
	}
}

// Recommend handles POST /v1/recommendations.
func (h *RecommendHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req models.RecommendationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validation.Struct(req); err != nil {
		fail(w, r, h.logger, err, "invalid recommendation request")
		return
	}

	ctx := r.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	spots, err := h.spots.List(ctx)
	if err != nil {
		fail(w, r, h.logger, err, "failed to load spots")
		return
	}

	user := recommend.UserContext{
		SkillLevel:         recommend.SkillLevel(req.SkillLevel),
		PreferredWaterType: recommend.WaterType(req.PreferredWaterType),
		MaxDistanceKm:      req.MaxDistanceKm,
	}
	if req.Location != nil {
		user.Location = &geo.Point{Lat: req.Location.Latitude, Lon: req.Location.Longitude}
	}

	res, err := h.engine.Recommend(ctx, spots, user)
	switch {
	case errors.Is(err, recommend.ErrInvalidInput):
		response.BadRequest(w, r, err.Error(), nil)
		return
	case errors.Is(err, context.DeadlineExceeded):
		response.ServiceUnavailable(w, r, "recommendation timed out")
		return
	case err != nil:
		fail(w, r, h.logger, err, "recommendation failed")
		return
	}

	response.JSON(w, r, http.StatusOK, models.NewRecommendationResponse(res, user.Location == nil))
}
