package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// heartbeatInterval is how often an SSE comment line is sent to keep
// intermediaries from timing out an idle stream.
const heartbeatInterval = 25 * time.Second

// StreamEvents handles GET /trips/{tripID}/events as a Server-Sent Events
// stream. Each mutation to the trip or its child records produces one
// event naming the changed table; clients refetch on receipt rather than
// applying incremental patches. Requires view rights on the trip.
func (s *Server) StreamEvents(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	if _, _, err := s.trips.GetForUser(r.Context(), tripID, userID); err != nil {
		s.serviceError(w, r, err)
		return
	}

	if s.events == nil {
		writeError(w, http.StatusServiceUnavailable, "realtime_unavailable", "realtime updates are not configured")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "internal_error", "streaming unsupported")
		return
	}

	events, err := s.events.Subscribe(r.Context(), tripID)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		case ev, open := <-events:
			if !open {
				return
			}
			payload, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: change\ndata: %s\n\n", payload)
			flusher.Flush()
		}
	}
}
