package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/paddlespot/paddlespot/internal/api/models"
	"github.com/paddlespot/paddlespot/internal/api/response"
	"github.com/paddlespot/paddlespot/internal/session"
)

// SessionHandler handles the authenticated user's paddling log.
type SessionHandler struct {
	sessions *session.Service
	logger   zerolog.Logger
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessions *session.Service, logger zerolog.Logger) *SessionHandler {
	return &SessionHandler{sessions: sessions, logger: logger}
}

// ListSessions handles GET /v1/me/sessions - newest first.
func (h *SessionHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.sessions.List(r.Context(), GetUserID(r.Context()))
	if err != nil {
		fail(w, r, h.logger, err, "failed to list sessions")
		return
	}
	response.JSON(w, r, http.StatusOK, models.NewList(sessions))
}

// CreateSession handles POST /v1/me/sessions.
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var input session.NewSession
	if !decodeJSON(w, r, &input) {
		return
	}

	created, err := h.sessions.Add(r.Context(), GetUserID(r.Context()), input)
	if err != nil {
		fail(w, r, h.logger, err, "failed to log session")
		return
	}
	response.Created(w, r, "/v1/me/sessions/"+created.ID, created)
}

// GetStats handles GET /v1/me/sessions/stats.
func (h *SessionHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.sessions.Stats(r.Context(), GetUserID(r.Context()))
	if err != nil {
		fail(w, r, h.logger, err, "failed to compute session stats")
		return
	}
	response.JSON(w, r, http.StatusOK, stats)
}

// DeleteSession handles DELETE /v1/me/sessions/{sessionId}.
func (h *SessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	err := h.sessions.Delete(r.Context(), GetUserID(r.Context()), chi.URLParam(r, "sessionId"))
	if errors.Is(err, session.ErrSessionNotFound) {
		response.NotFound(w, r, "session not found")
		return
	}
	if err != nil {
		fail(w, r, h.logger, err, "failed to delete session")
		return
	}
	response.NoContent(w, r)
}
