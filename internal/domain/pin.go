package domain

import (
	"time"

	"github.com/google/uuid"
)

// Pin is a single geo-located point of interest attached to a trip.
// Day is a 1-based index into the trip's date range; nil means unscheduled.
// Time is a zero-padded 24-hour "HH:MM" string, empty when the pin has no
// scheduled time of day.
//
// PlaceData is the cached place metadata blob from the upstream places
// provider. Its schema is not owned by this system, so it is kept as an
// open bag of optional fields rather than a fixed struct.
type Pin struct {
	ID          uuid.UUID      `json:"id"`
	TripID      uuid.UUID      `json:"trip_id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Latitude    float64        `json:"latitude"`
	Longitude   float64        `json:"longitude"`
	CategoryID  *uuid.UUID     `json:"category_id,omitempty"`
	Day         *int           `json:"day,omitempty"`
	Time        string         `json:"time,omitempty"`
	PlaceID     string         `json:"place_id,omitempty"`
	PlaceData   map[string]any `json:"place_data,omitempty"`
	CreatedBy   uuid.UUID      `json:"created_by"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}
