package handler

import (
	"io"
	"net/http"
	"strings"

	"github.com/rs/xid"
)

// maxAvatarBytes caps avatar uploads at 5 MiB.
const maxAvatarBytes = 5 << 20

// profileRequest is the JSON body for PUT /profile.
type profileRequest struct {
	DisplayName string `json:"display_name"`
}

// UpdateProfile handles PUT /profile.
func (s *Server) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var body profileRequest
	if !decodeBody(w, r, &body) {
		return
	}

	user, err := s.users.UpdateDisplayName(r.Context(), userID, body.DisplayName)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// UploadAvatar handles POST /profile/avatar.
// Accepts a multipart form with an "avatar" image part, stores it under a
// fresh object key, points the profile at the new URL, and then deletes
// the previous image. The delete is best-effort: a stale object in
// storage is preferable to failing the upload after the profile already
// changed.
func (s *Server) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	if s.avatars == nil {
		writeError(w, http.StatusInternalServerError, "configuration_missing", "avatar storage is not configured")
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		requestError(w, "avatar file is required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		requestError(w, "avatar must be an image")
		return
	}

	image, err := io.ReadAll(io.LimitReader(file, maxAvatarBytes+1))
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	if len(image) > maxAvatarBytes {
		requestError(w, "avatar exceeds the 5 MiB limit")
		return
	}

	url, err := s.avatars.Upload(r.Context(), image, contentType, xid.New().String())
	if err != nil {
		s.log.ErrorContext(r.Context(), "avatar upload failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "avatar upload failed")
		return
	}

	user, previous, err := s.users.SetAvatarURL(r.Context(), userID, url)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	if previous != "" {
		if err := s.avatars.Delete(r.Context(), previous); err != nil {
			s.log.WarnContext(r.Context(), "stale avatar delete failed", "url", previous, "error", err)
		}
	}

	writeJSON(w, http.StatusOK, user)
}
