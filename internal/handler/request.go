package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/AnthonysMotion/mappr/backend/internal/auth"
)

// currentUser returns the authenticated user ID from the request context.
// Routes behind auth.RequireAuth always have one; the false branch only
// fires if a handler is miswired outside the auth middleware.
func currentUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "valid authentication required")
		return uuid.Nil, false
	}
	return userID, true
}

// pathUUID parses the named chi URL parameter as a UUID.
// A malformed ID is reported as 404: it can never name an existing
// resource, and 404 keeps the response identical to a well-formed ID that
// matches nothing.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found", "no such resource")
		return uuid.Nil, false
	}
	return id, true
}

// decodeBody decodes the JSON request body into dst.
// Unknown fields are tolerated; a missing or malformed body is a 422.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.Body == nil {
		requestError(w, "request body is required")
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		requestError(w, "malformed request body")
		return false
	}
	return true
}

// queryInt parses an optional integer query parameter, returning nil when
// absent or malformed so pagination falls back to its defaults.
func queryInt(r *http.Request, name string) *int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}
