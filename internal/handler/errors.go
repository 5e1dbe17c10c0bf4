package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/AnthonysMotion/mappr/backend/internal/domain"
)

// errorDetail is the machine-readable error body nested under "error".
type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorResponse is the uniform error envelope. Status is only set by the
// places proxy, which tags upstream rejections so callers can distinguish
// an INVALID_REQUEST identifier-namespace mismatch from other 400s.
type errorResponse struct {
	Error  errorDetail `json:"error"`
	Status string      `json:"status,omitempty"`
}

// writeJSON encodes v as the response body with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck
	json.NewEncoder(w).Encode(v)
}

// writeError writes the uniform error envelope.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: errorDetail{Code: code, Message: message}})
}

// serviceError maps a service-layer error to an HTTP response.
// Domain sentinels carry the status; anything unrecognized is a 500 with a
// generic message so internal details never reach the client.
func (s *Server) serviceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", unwrapMessage(err))
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, "validation_error", unwrapMessage(err))
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden", unwrapMessage(err))
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, "conflict", unwrapMessage(err))
	default:
		s.log.ErrorContext(r.Context(), "handler error", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

// requestError writes a 422 for a request rejected before reaching the
// service layer (missing or malformed body).
func requestError(w http.ResponseWriter, message string) {
	writeError(w, http.StatusUnprocessableEntity, "validation_error", message)
}

// unwrapMessage extracts the human-readable tail from a wrapped sentinel error.
// Services wrap as "service.X.Y: <sentinel>: detail"; the client only needs
// the part after the last sentinel text.
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, sentinel := range []string{
		domain.ErrValidation.Error(),
		domain.ErrNotFound.Error(),
		domain.ErrForbidden.Error(),
		domain.ErrConflict.Error(),
	} {
		if i := strings.LastIndex(msg, sentinel); i >= 0 {
			rest := strings.TrimPrefix(msg[i+len(sentinel):], ": ")
			if rest != "" {
				return rest
			}
			return sentinel
		}
	}
	return msg
}
