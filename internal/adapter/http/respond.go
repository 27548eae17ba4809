package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/msaemrow/Capstone-Project-One-Reel-Report/internal/domain"
)

const maxJSONBody = 1 << 20

type errorBody struct {
	Error     string `json:"error"`
	Retryable bool   `json:"retryable,omitempty"`
	Field     string `json:"field,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // client went away
}

// writeError maps a service error onto a status code and a message that is
// safe to show to the user. Unclassified errors are logged and hidden.
func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	body := errorBody{RequestID: requestIDFrom(r.Context())}
	var status int
	var uv *domain.UniqueViolation

	switch {
	case errors.As(err, &uv):
		status = http.StatusConflict
		body.Error = uv.Error()
		body.Field = uv.Field
	case errors.Is(err, domain.ErrExternalService):
		status = http.StatusBadGateway
		body.Error = "a weather or location service is not responding, please try again"
		body.Retryable = true
	case errors.Is(err, domain.ErrLocationNotFound):
		status = http.StatusUnprocessableEntity
		body.Error = "could not find that town and state"
	case errors.Is(err, domain.ErrInvalidInput):
		status = http.StatusUnprocessableEntity
		body.Error = err.Error()
	case errors.Is(err, domain.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		body.Error = domain.ErrInvalidCredentials.Error()
	case errors.Is(err, domain.ErrUnauthenticated):
		status = http.StatusUnauthorized
		body.Error = "please sign in"
	case errors.Is(err, domain.ErrForbidden):
		status = http.StatusForbidden
		body.Error = "you are not authorized to do that"
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
		body.Error = err.Error()
	case errors.Is(err, domain.ErrInUse):
		status = http.StatusConflict
		body.Error = "that record is still used by catches or lures"
	case errors.Is(err, domain.ErrUnavailable):
		status = http.StatusServiceUnavailable
		body.Error = err.Error()
	default:
		status = http.StatusInternalServerError
		body.Error = "internal error"
	}

	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "path", r.URL.Path, "status", status, "request_id", body.RequestID, "error", err)
	} else {
		logger.Debug("request rejected", "path", r.URL.Path, "status", status, "error", err)
	}
	writeJSON(w, status, body)
}

// decodeJSON reads a JSON request body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: request body is empty", domain.ErrInvalidInput)
		}
		return fmt.Errorf("%w: malformed JSON: %w", domain.ErrInvalidInput, err)
	}
	return nil
}

// pathID parses a positive integer URL parameter.
func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s %q is not a valid id", domain.ErrNotFound, name, raw)
	}
	return id, nil
}
