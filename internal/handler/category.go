package handler

import (
	"net/http"

	"github.com/AnthonysMotion/mappr/backend/internal/domain"
)

// categoryRequest is the JSON body for POST and PUT under /trips/{tripID}/categories.
type categoryRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// CreateCategory handles POST /trips/{tripID}/categories.
func (s *Server) CreateCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	var body categoryRequest
	if !decodeBody(w, r, &body) {
		return
	}

	created, err := s.cats.Create(r.Context(), domain.Category{
		TripID: tripID,
		Name:   body.Name,
		Color:  body.Color,
		Icon:   body.Icon,
	}, userID)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ListCategories handles GET /trips/{tripID}/categories.
func (s *Server) ListCategories(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	cats, err := s.cats.ListByTripID(r.Context(), tripID, userID)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cats)
}

// UpdateCategory handles PUT /trips/{tripID}/categories/{categoryID}.
func (s *Server) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	catID, ok := pathUUID(w, r, "categoryID")
	if !ok {
		return
	}
	var body categoryRequest
	if !decodeBody(w, r, &body) {
		return
	}

	updated, err := s.cats.Update(r.Context(), domain.Category{
		ID:     catID,
		TripID: tripID,
		Name:   body.Name,
		Color:  body.Color,
		Icon:   body.Icon,
	}, userID)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteCategory handles DELETE /trips/{tripID}/categories/{categoryID}.
// Pins referencing the category keep existing with a cleared category
// (SET NULL at the database layer).
func (s *Server) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	catID, ok := pathUUID(w, r, "categoryID")
	if !ok {
		return
	}

	if err := s.cats.Delete(r.Context(), tripID, catID, userID); err != nil {
		s.serviceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
