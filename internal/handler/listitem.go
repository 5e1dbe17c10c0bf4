package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/AnthonysMotion/mappr/backend/internal/domain"
)

// listItemRequest is the JSON body for POST and PUT under /trips/{tripID}/lists.
type listItemRequest struct {
	ListType    domain.ListType `json:"list_type"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	PinID       *uuid.UUID      `json:"pin_id"`
	Completed   bool            `json:"completed"`
}

// CreateListItem handles POST /trips/{tripID}/lists.
func (s *Server) CreateListItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	var body listItemRequest
	if !decodeBody(w, r, &body) {
		return
	}

	created, err := s.lists.Create(r.Context(), body.toDomain(tripID, uuid.Nil), userID)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ListListItems handles GET /trips/{tripID}/lists.
// Accepts an optional ?type= filter naming one of the three checklists;
// without it all items are returned.
func (s *Server) ListListItems(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	listType := domain.ListType(r.URL.Query().Get("type"))
	if listType != "" && !listType.Valid() {
		requestError(w, "unknown list type")
		return
	}

	items, err := s.lists.ListByTripID(r.Context(), tripID, userID, listType)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// UpdateListItem handles PUT /trips/{tripID}/lists/{itemID}.
func (s *Server) UpdateListItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	itemID, ok := pathUUID(w, r, "itemID")
	if !ok {
		return
	}
	var body listItemRequest
	if !decodeBody(w, r, &body) {
		return
	}

	updated, err := s.lists.Update(r.Context(), body.toDomain(tripID, itemID), userID)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteListItem handles DELETE /trips/{tripID}/lists/{itemID}.
func (s *Server) DeleteListItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	itemID, ok := pathUUID(w, r, "itemID")
	if !ok {
		return
	}

	if err := s.lists.Delete(r.Context(), tripID, itemID, userID); err != nil {
		s.serviceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (b listItemRequest) toDomain(tripID, itemID uuid.UUID) domain.ListItem {
	return domain.ListItem{
		ID:          itemID,
		TripID:      tripID,
		ListType:    b.ListType,
		Name:        b.Name,
		Description: b.Description,
		PinID:       b.PinID,
		Completed:   b.Completed,
	}
}
