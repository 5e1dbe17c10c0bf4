package handler

import "net/http"

// GetTimeline handles GET /trips/{tripID}/timeline.
// It returns the trip's derived day-by-day itinerary: one entry per
// calendar day in the trip's date range with that day's pins in time
// order, plus the unscheduled pins. A trip without a date range yields
// an empty day list, not an error.
func (s *Server) GetTimeline(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	timeline, err := s.timeline.ForTrip(r.Context(), tripID, userID)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, timeline)
}
