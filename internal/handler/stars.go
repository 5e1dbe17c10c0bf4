package handler

import "net/http"

// GetStars handles GET /github/stars.
// The star count is decorative, so this endpoint never fails: any upstream
// problem degrades to {"stars": 0} with a 200.
func (s *Server) GetStars(w http.ResponseWriter, r *http.Request) {
	count, err := s.stars.Stars(r.Context())
	if err != nil {
		s.log.WarnContext(r.Context(), "star count fetch failed", "error", err)
		count = 0
	}
	writeJSON(w, http.StatusOK, map[string]int{"stars": count})
}
