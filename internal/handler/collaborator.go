package handler

import (
	"net/http"

	"github.com/AnthonysMotion/mappr/backend/internal/domain"
)

// shareRequest is the JSON body for POST /trips/{tripID}/collaborators.
// Role must be "editor" or "viewer"; ownership is not transferable here.
type shareRequest struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

// roleRequest is the JSON body for PUT /trips/{tripID}/collaborators/{collaboratorID}.
type roleRequest struct {
	Role domain.Role `json:"role"`
}

// ListCollaborators handles GET /trips/{tripID}/collaborators.
// Any collaborator may see who else is on the trip.
func (s *Server) ListCollaborators(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	collabs, err := s.collabs.ListByTripID(r.Context(), tripID, userID)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, collabs)
}

// ShareTrip handles POST /trips/{tripID}/collaborators.
// Only the owner may share. The target user is looked up by email; a user
// who has no account yet is a 404, an existing collaborator a 409.
func (s *Server) ShareTrip(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	var body shareRequest
	if !decodeBody(w, r, &body) {
		return
	}

	collab, err := s.collabs.Share(r.Context(), tripID, body.Email, body.Role, userID)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, collab)
}

// UpdateCollaboratorRole handles PUT /trips/{tripID}/collaborators/{collaboratorID}.
func (s *Server) UpdateCollaboratorRole(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	collabID, ok := pathUUID(w, r, "collaboratorID")
	if !ok {
		return
	}
	var body roleRequest
	if !decodeBody(w, r, &body) {
		return
	}

	collab, err := s.collabs.UpdateRole(r.Context(), tripID, collabID, body.Role, userID)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, collab)
}

// RevokeCollaborator handles DELETE /trips/{tripID}/collaborators/{collaboratorID}.
func (s *Server) RevokeCollaborator(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	collabID, ok := pathUUID(w, r, "collaboratorID")
	if !ok {
		return
	}

	if err := s.collabs.Revoke(r.Context(), tripID, collabID, userID); err != nil {
		s.serviceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
