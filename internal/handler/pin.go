package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/AnthonysMotion/mappr/backend/internal/domain"
)

// pinRequest is the JSON body accepted by POST and PUT under /trips/{tripID}/pins.
// Latitude and longitude are pointers so a missing coordinate is
// distinguishable from a zero one and rejected before the service runs.
type pinRequest struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Latitude    *float64       `json:"latitude"`
	Longitude   *float64       `json:"longitude"`
	CategoryID  *uuid.UUID     `json:"category_id"`
	Day         *int           `json:"day"`
	Time        string         `json:"time"`
	PlaceID     string         `json:"place_id"`
	PlaceData   map[string]any `json:"place_data"`
}

// CreatePin handles POST /trips/{tripID}/pins.
func (s *Server) CreatePin(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	pin, ok := decodePin(w, r, tripID, uuid.Nil)
	if !ok {
		return
	}

	created, err := s.pins.Create(r.Context(), pin, userID)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ListPins handles GET /trips/{tripID}/pins.
func (s *Server) ListPins(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	pins, err := s.pins.ListByTripID(r.Context(), tripID, userID)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pins)
}

// GetPin handles GET /trips/{tripID}/pins/{pinID}.
func (s *Server) GetPin(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	pinID, ok := pathUUID(w, r, "pinID")
	if !ok {
		return
	}

	pin, err := s.pins.GetByID(r.Context(), tripID, pinID, userID)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pin)
}

// UpdatePin handles PUT /trips/{tripID}/pins/{pinID}.
func (s *Server) UpdatePin(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	pinID, ok := pathUUID(w, r, "pinID")
	if !ok {
		return
	}
	pin, ok := decodePin(w, r, tripID, pinID)
	if !ok {
		return
	}

	updated, err := s.pins.Update(r.Context(), pin, userID)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeletePin handles DELETE /trips/{tripID}/pins/{pinID}.
func (s *Server) DeletePin(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	pinID, ok := pathUUID(w, r, "pinID")
	if !ok {
		return
	}

	if err := s.pins.Delete(r.Context(), tripID, pinID, userID); err != nil {
		s.serviceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodePin decodes and pre-validates a pin body, wiring in the path IDs.
func decodePin(w http.ResponseWriter, r *http.Request, tripID, pinID uuid.UUID) (domain.Pin, bool) {
	var body pinRequest
	if !decodeBody(w, r, &body) {
		return domain.Pin{}, false
	}
	if body.Latitude == nil || body.Longitude == nil {
		requestError(w, "latitude and longitude are required")
		return domain.Pin{}, false
	}
	return domain.Pin{
		ID:          pinID,
		TripID:      tripID,
		Name:        body.Name,
		Description: body.Description,
		Latitude:    *body.Latitude,
		Longitude:   *body.Longitude,
		CategoryID:  body.CategoryID,
		Day:         body.Day,
		Time:        body.Time,
		PlaceID:     body.PlaceID,
		PlaceData:   body.PlaceData,
	}, true
}
