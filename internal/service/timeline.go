package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/AnthonysMotion/mappr/backend/internal/domain"
	"github.com/AnthonysMotion/mappr/backend/internal/repo"
)

// TimelineDay is one day of the assembled itinerary: the derived trip day
// plus the pins scheduled on it, in time order.
type TimelineDay struct {
	domain.TripDay
	Pins []TimelinePin `json:"pins"`
}

// TimelinePin is a pin as it appears in the timeline, with its time of day
// rendered both raw (24-hour, for editing) and display (12-hour).
type TimelinePin struct {
	domain.Pin
	DisplayTime string `json:"display_time,omitempty"`
}

// Timeline is the full day-by-day view of a trip.
// Days is empty when the trip has no date range (or an inverted one);
// Unscheduled carries the pins with no day number, newest first.
type Timeline struct {
	Days        []TimelineDay `json:"days"`
	Unscheduled []TimelinePin `json:"unscheduled"`
}

// TimelineService assembles the day-by-day itinerary view of a trip from
// the pure derivation functions in domain.
type TimelineService struct {
	pins   repo.PinRepo
	access *Access
}

// NewTimelineService constructs a TimelineService backed by the provided repos.
func NewTimelineService(pins repo.PinRepo, access *Access) *TimelineService {
	return &TimelineService{pins: pins, access: access}
}

// ForTrip returns the trip's timeline. Requires view rights.
// Pins whose day number falls outside the current date range only appear
// in the day list if that day exists. Shortening a trip's dates after pins
// were scheduled leaves the out-of-range pins off the timeline until their
// day numbers are corrected.
func (s *TimelineService) ForTrip(ctx context.Context, tripID, userID uuid.UUID) (Timeline, error) {
	trip, _, err := s.access.RequireView(ctx, tripID, userID)
	if err != nil {
		return Timeline{}, err
	}

	pins, err := s.pins.ListByTripID(ctx, tripID)
	if err != nil {
		return Timeline{}, fmt.Errorf("service.TimelineService.ForTrip: %w", err)
	}

	days := domain.TripDays(trip.StartDate, trip.EndDate)
	buckets := domain.GroupPinsByDay(pins)

	tl := Timeline{Days: make([]TimelineDay, 0, len(days)), Unscheduled: []TimelinePin{}}
	for _, day := range days {
		entry := TimelineDay{TripDay: day, Pins: []TimelinePin{}}
		for _, p := range buckets[day.Day] {
			entry.Pins = append(entry.Pins, timelinePin(p))
		}
		tl.Days = append(tl.Days, entry)
	}
	for _, p := range pins {
		if p.Day == nil {
			tl.Unscheduled = append(tl.Unscheduled, timelinePin(p))
		}
	}

	return tl, nil
}

func timelinePin(p domain.Pin) TimelinePin {
	return TimelinePin{Pin: p, DisplayTime: domain.FormatTime12Hour(p.Time)}
}
