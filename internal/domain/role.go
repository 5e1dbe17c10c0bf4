package domain

import "github.com/google/uuid"

// Role is an ordered access level on a trip: viewer < editor < owner.
// Editing requires at least editor; viewing requires any role at all.
// Representing the order explicitly keeps the edit check a single
// comparison and generalizes if a fourth role is ever added.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

// roleLevels defines the capability order. Unknown roles map to 0,
// below viewer, so a corrupted role value never grants access.
var roleLevels = map[Role]int{
	RoleViewer: 1,
	RoleEditor: 2,
	RoleOwner:  3,
}

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	_, ok := roleLevels[r]
	return ok
}

// AtLeast reports whether r grants at least the capabilities of min.
func (r Role) AtLeast(min Role) bool {
	return roleLevels[r] >= roleLevels[min]
}

// CanView reports whether the user may see the trip at all: true when a
// collaborator row exists for them (any role) or they created the trip.
// collab is nil when no collaborator row exists.
func CanView(trip Trip, userID uuid.UUID, collab *Collaborator) bool {
	if trip.CreatedBy == userID {
		return true
	}
	return collab != nil
}

// CanEdit reports whether the user may mutate trip content: true for the
// trip's creator regardless of any collaborator row, otherwise true only
// when the collaborator role is editor or above.
func CanEdit(trip Trip, userID uuid.UUID, collab *Collaborator) bool {
	if trip.CreatedBy == userID {
		return true
	}
	return collab != nil && collab.Role.AtLeast(RoleEditor)
}
