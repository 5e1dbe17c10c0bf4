package domain

import (
	"time"

	"github.com/google/uuid"
)

// ListType identifies which of a trip's three checklists an item belongs to.
type ListType string

const (
	ListStores      ListType = "stores"
	ListThingsToDo  ListType = "things_to_do"
	ListThingsToSee ListType = "things_to_see"
)

// Valid reports whether t is one of the three known list types.
func (t ListType) Valid() bool {
	switch t {
	case ListStores, ListThingsToDo, ListThingsToSee:
		return true
	}
	return false
}

// ListItem is a single entry in one of a trip's checklists.
// PinID optionally links the item to a pin on the map.
type ListItem struct {
	ID          uuid.UUID  `json:"id"`
	TripID      uuid.UUID  `json:"trip_id"`
	ListType    ListType   `json:"list_type"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	PinID       *uuid.UUID `json:"pin_id,omitempty"`
	Completed   bool       `json:"completed"`
	CreatedBy   uuid.UUID  `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
