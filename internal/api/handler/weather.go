package handler

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/paddlespot/paddlespot/internal/api/models"
	"github.com/paddlespot/paddlespot/internal/api/response"
	"github.com/paddlespot/paddlespot/internal/weather"
)

// WeatherHandler serves point weather lookups.
type WeatherHandler struct {
	weather *weather.Service
	logger  zerolog.Logger
}

// NewWeatherHandler creates a new WeatherHandler.
func NewWeatherHandler(svc *weather.Service, logger zerolog.Logger) *WeatherHandler {
	return &WeatherHandler{weather: svc, logger: logger}
}

// GetCurrent handles GET /v1/weather/current?lat=&lon=.
func (h *WeatherHandler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	query, ok := h.coordinates(w, r)
	if !ok {
		return
	}

	obs, err := h.weather.GetCurrentWeather(r.Context(), query.Lat, query.Lon)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, obs)
}

// GetForecast handles GET /v1/weather/forecast?lat=&lon=.
func (h *WeatherHandler) GetForecast(w http.ResponseWriter, r *http.Request) {
	query, ok := h.coordinates(w, r)
	if !ok {
		return
	}

	days, err := h.weather.GetForecast(r.Context(), query.Lat, query.Lon)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, models.Forecast{
		Latitude:  query.Lat,
		Longitude: query.Lon,
		Days:      days,
	})
}

func (h *WeatherHandler) coordinates(w http.ResponseWriter, r *http.Request) (models.CoordinateQuery, bool) {
	query, present, err := models.ParseCoordinateQuery(r.URL.Query())
	if err != nil {
		fail(w, r, h.logger, err, "failed to parse query")
		return query, false
	}
	if !present {
		response.BadRequest(w, r, "lat and lon are required", nil)
		return query, false
	}
	return query, true
}

func (h *WeatherHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, weather.ErrInvalidCoordinates):
		response.BadRequest(w, r, err.Error(), nil)
	case errors.Is(err, weather.ErrProviderUnavailable):
		h.logger.Warn().Err(err).Msg("weather provider unavailable")
		response.ServiceUnavailable(w, r, "weather provider unavailable")
	default:
		fail(w, r, h.logger, err, "weather lookup failed")
	}
}
