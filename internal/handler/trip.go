package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/AnthonysMotion/mappr/backend/internal/domain"
)

// tripRequest is the JSON body accepted by POST /trips and PUT /trips/{tripID}.
// Dates are calendar dates ("2006-01-02"), optional in both directions:
// omitting one on update clears it.
type tripRequest struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	StartDate   *openapi_types.Date `json:"start_date"`
	EndDate     *openapi_types.Date `json:"end_date"`
	Label       string              `json:"label"`
}

// tripResponse is the JSON shape of a trip. Dates render as calendar dates
// rather than full timestamps.
type tripResponse struct {
	ID          uuid.UUID           `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description,omitempty"`
	StartDate   *openapi_types.Date `json:"start_date,omitempty"`
	EndDate     *openapi_types.Date `json:"end_date,omitempty"`
	Label       string              `json:"label,omitempty"`
	Role        domain.Role         `json:"role,omitempty"`
	CreatedBy   uuid.UUID           `json:"created_by"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var body tripRequest
	if !decodeBody(w, r, &body) {
		return
	}

	created, err := s.trips.Create(r.Context(), body.toDomain(uuid.Nil), userID)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, tripToResponse(created, domain.RoleOwner))
}

// ListTrips handles GET /trips.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	params := domain.NewPaginationParams(queryInt(r, "page"), queryInt(r, "limit"))

	trips, total, err := s.trips.ListForUser(r.Context(), userID, params)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	data := make([]tripResponse, len(trips))
	for i, t := range trips {
		data[i] = tripToResponse(t, "")
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"data": data,
		"pagination": map[string]int{
			"page":  params.Page,
			"limit": params.Limit,
			"total": int(total),
		},
	})
}

// GetTrip handles GET /trips/{tripID}.
// The response includes the caller's effective role so the frontend can
// gate its edit affordances without a second request.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	trip, role, err := s.trips.GetForUser(r.Context(), tripID, userID)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(trip, role))
}

// UpdateTrip handles PUT /trips/{tripID}.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	var body tripRequest
	if !decodeBody(w, r, &body) {
		return
	}

	updated, err := s.trips.Update(r.Context(), body.toDomain(tripID), userID)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(updated, ""))
}

// DeleteTrip handles DELETE /trips/{tripID}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	if err := s.trips.Delete(r.Context(), tripID, userID); err != nil {
		s.serviceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// toDomain converts the request body into a domain.Trip with the given ID.
func (b tripRequest) toDomain(id uuid.UUID) domain.Trip {
	t := domain.Trip{
		ID:          id,
		Name:        b.Name,
		Description: b.Description,
		Label:       b.Label,
	}
	if b.StartDate != nil {
		sd := b.StartDate.Time
		t.StartDate = &sd
	}
	if b.EndDate != nil {
		ed := b.EndDate.Time
		t.EndDate = &ed
	}
	return t
}

// tripToResponse converts a domain.Trip into the wire shape.
// role may be empty when the caller's role is not relevant to the response.
func tripToResponse(t domain.Trip, role domain.Role) tripResponse {
	resp := tripResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Label:       t.Label,
		Role:        role,
		CreatedBy:   t.CreatedBy,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.StartDate != nil {
		resp.StartDate = &openapi_types.Date{Time: *t.StartDate}
	}
	if t.EndDate != nil {
		resp.EndDate = &openapi_types.Date{Time: *t.EndDate}
	}
	return resp
}
