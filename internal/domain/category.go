package domain

import (
	"time"

	"github.com/google/uuid"
)

// Category is a per-trip pin grouping with a display color and optional icon.
// Color is a hex string like "#ef4444"; Icon is an identifier the frontend
// maps to an icon glyph, empty when the category has none.
type Category struct {
	ID        uuid.UUID `json:"id"`
	TripID    uuid.UUID `json:"trip_id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	Icon      string    `json:"icon,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
