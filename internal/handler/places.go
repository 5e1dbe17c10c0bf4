package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/AnthonysMotion/mappr/backend/internal/places"
)

// The places endpoints proxy the upstream mapping provider so the API key
// never reaches the browser. Each handler performs one outbound call, no
// retries; a single upstream failure is a single client-visible failure.

// SearchPlaces handles GET /places/search?query=.
// Upstream ZERO_RESULTS is a success with an empty array. Any other non-OK
// upstream status is a generic 400; transport or decode failures are 500.
func (s *Server) SearchPlaces(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		writeError(w, http.StatusBadRequest, "missing_parameter", "query parameter is required")
		return
	}

	predictions, err := s.places.Search(r.Context(), query)
	if err != nil {
		var upstream *places.UpstreamError
		if errors.As(err, &upstream) {
			writeError(w, http.StatusBadRequest, "upstream_error", "place search failed")
			return
		}
		s.placesFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, predictions)
}

// GetPlaceDetails handles GET /places/details?placeId=.
// REQUEST_DENIED maps to 403. INVALID_REQUEST maps to 400 with the upstream
// status echoed in the body: it usually means the identifier came from the
// geocoding namespace, and callers fall back to coordinates when they see
// that tag. Other upstream rejections are 400 with their status tag.
func (s *Server) GetPlaceDetails(w http.ResponseWriter, r *http.Request) {
	placeID := r.URL.Query().Get("placeId")
	if placeID == "" {
		writeError(w, http.StatusBadRequest, "missing_parameter", "placeId parameter is required")
		return
	}

	details, err := s.places.Details(r.Context(), placeID)
	if err != nil {
		var upstream *places.UpstreamError
		if errors.As(err, &upstream) {
			if upstream.Status == places.StatusRequestDenied {
				writeError(w, http.StatusForbidden, "upstream_unauthorized", "place details request was denied")
				return
			}
			writeJSON(w, http.StatusBadRequest, errorResponse{
				Error:  errorDetail{Code: "upstream_invalid_request", Message: "place details unavailable"},
				Status: upstream.Status,
			})
			return
		}
		s.placesFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, details)
}

// NearbyPlaces handles GET /places/nearby?lat=&lng=.
// Returns the single best reverse-geocode match as a one-element array, or
// an empty array when nothing resolves.
func (s *Server) NearbyPlaces(w http.ResponseWriter, r *http.Request) {
	lat, latErr := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lng, lngErr := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	if latErr != nil || lngErr != nil {
		writeError(w, http.StatusBadRequest, "missing_parameter", "lat and lng parameters are required")
		return
	}

	results, err := s.places.Nearby(r.Context(), lat, lng)
	if err != nil {
		var upstream *places.UpstreamError
		if errors.As(err, &upstream) {
			writeError(w, http.StatusForbidden, "upstream_unauthorized", "reverse geocoding request was denied")
			return
		}
		s.placesFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

// placesFailure handles the non-upstream error paths shared by the proxy
// handlers: a missing API key and transport or decode failures, both 500.
func (s *Server) placesFailure(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, places.ErrNotConfigured) {
		writeError(w, http.StatusInternalServerError, "configuration_missing", "places provider is not configured")
		return
	}
	s.log.ErrorContext(r.Context(), "places upstream failure", "path", r.URL.Path, "error", err)
	writeError(w, http.StatusInternalServerError, "unexpected_failure", "upstream request failed")
}
