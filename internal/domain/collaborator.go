package domain

import (
	"time"

	"github.com/google/uuid"
)

// Collaborator grants a user access to a trip with a specific role.
// The trip creator always has an owner row, inserted when the trip is created.
type Collaborator struct {
	ID        uuid.UUID `json:"id"`
	TripID    uuid.UUID `json:"trip_id"`
	UserID    uuid.UUID `json:"user_id"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`

	// Email is the collaborator's email, populated by list queries that join
	// the users table. Not a column on the collaborators table itself.
	Email string `json:"email,omitempty"`
}
