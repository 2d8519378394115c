package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/paddlespot/paddlespot/internal/api/middleware"
	"github.com/paddlespot/paddlespot/internal/api/models"
	"github.com/paddlespot/paddlespot/internal/api/response"
	"github.com/paddlespot/paddlespot/internal/event"
	"github.com/paddlespot/paddlespot/internal/spot"
)

// EventHandler handles group events.
type EventHandler struct {
	events *event.Service
	logger zerolog.Logger
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(svc *event.Service, logger zerolog.Logger) *EventHandler {
	return &EventHandler{events: svc, logger: logger}
}

// ListEvents handles GET /v1/events?filter=upcoming|past|all.
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.events.List(r.Context(), event.Filter(r.URL.Query().Get("filter")))
	if err != nil {
		h.writeError(w, r, err, "failed to list events")
		return
	}
	response.JSON(w, r, http.StatusOK, models.NewList(events))
}

// CreateEvent handles POST /v1/events.
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var input event.NewEvent
	if !decodeJSON(w, r, &input) {
		return
	}

	ev, err := h.events.Create(r.Context(), participant(r), input)
	if err != nil {
		h.writeError(w, r, err, "failed to create event")
		return
	}
	response.Created(w, r, "/v1/events/"+ev.ID, ev)
}

// ToggleJoin handles POST /v1/events/{eventId}/join.
func (h *EventHandler) ToggleJoin(w http.ResponseWriter, r *http.Request) {
	ev, err := h.events.ToggleJoin(r.Context(), chi.URLParam(r, "eventId"), participant(r))
	if err != nil {
		h.writeError(w, r, err, "failed to join event")
		return
	}
	response.JSON(w, r, http.StatusOK, ev)
}

// DeleteEvent handles DELETE /v1/events/{eventId}.
func (h *EventHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := h.events.Delete(r.Context(), chi.URLParam(r, "eventId"), GetUserID(r.Context())); err != nil {
		h.writeError(w, r, err, "failed to delete event")
		return
	}
	response.NoContent(w, r)
}

func (h *EventHandler) writeError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	switch {
	case errors.Is(err, event.ErrEventNotFound):
		response.NotFound(w, r, "event not found")
	case errors.Is(err, event.ErrEventFull):
		response.Conflict(w, r, "event is full")
	case errors.Is(err, event.ErrNotOrganizer):
		response.Forbidden(w, r, "only the organizer can delete this event")
	case errors.Is(err, event.ErrInvalidFilter):
		response.BadRequest(w, r, "filter must be upcoming, past or all", nil)
	case errors.Is(err, spot.ErrSpotNotFound):
		response.BadRequest(w, r, "unknown spot", []models.FieldError{{Field: "spotId", Message: "spot does not exist"}})
	default:
		fail(w, r, h.logger, err, msg)
	}
}

func participant(r *http.Request) event.Participant {
	id := middleware.GetIdentity(r.Context())
	if id == nil {
		return event.Participant{}
	}
	return event.Participant{UserID: id.UserID, UserName: id.Name}
}
