package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/paddlespot/paddlespot/internal/api/middleware"
	"github.com/paddlespot/paddlespot/internal/api/response"
)

// maxBodyBytes bounds request bodies. Session tracks are the largest input.
const maxBodyBytes = 1 << 20

// GetUserID retrieves the authenticated user ID from the context.
// This is a convenience wrapper around middleware.GetUserID.
func GetUserID(ctx context.Context) string {
	return middleware.GetUserID(ctx)
}

// decodeJSON reads the request body into v. On failure it writes a 400
// and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			response.BadRequest(w, r, "request body is empty", nil)
			return false
		}
		response.BadRequest(w, r, "invalid JSON body", nil)
		return false
	}
	return true
}

// fail writes a validation problem for validation errors and a 500 for
// anything else.
func fail(w http.ResponseWriter, r *http.Request, log zerolog.Logger, err error, msg string) {
	if response.Invalid(w, r, err) {
		return
	}
	log.Error().Err(err).
		Str("request_id", middleware.GetRequestID(r.Context())).
		Msg(msg)
	response.InternalError(w, r, msg)
}
