// Package service contains the business logic for the Mappr API.
// Services validate inputs, enforce trip access rules, and orchestrate repo
// calls. No SQL lives here; services depend on repo interfaces, not
// implementations.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/AnthonysMotion/mappr/backend/internal/domain"
	"github.com/AnthonysMotion/mappr/backend/internal/repo"
)

// Access loads the trip + collaborator snapshot for the current user and
// evaluates the role predicates in domain. Every trip-scoped service call
// starts here, so access decisions are always computed fresh from the
// latest snapshot rather than cached anywhere.
type Access struct {
	trips   repo.TripRepo
	collabs repo.CollaboratorRepo
}

// NewAccess constructs an Access checker backed by the provided repos.
func NewAccess(trips repo.TripRepo, collabs repo.CollaboratorRepo) *Access {
	return &Access{trips: trips, collabs: collabs}
}

// RequireView returns the trip and the user's effective role if the user may
// see the trip. A trip the user cannot view is reported as domain.ErrNotFound,
// indistinguishable from a trip that does not exist, so the API never leaks
// which trip IDs are real.
func (a *Access) RequireView(ctx context.Context, tripID, userID uuid.UUID) (domain.Trip, domain.Role, error) {
	trip, collab, err := a.snapshot(ctx, tripID, userID)
	if err != nil {
		return domain.Trip{}, "", err
	}

	if !domain.CanView(trip, userID, collab) {
		return domain.Trip{}, "", fmt.Errorf("service.Access.RequireView: %w", domain.ErrNotFound)
	}
	return trip, effectiveRole(trip, userID, collab), nil
}

// RequireEdit returns the trip if the user may mutate its content.
// Not viewable reports domain.ErrNotFound; viewable but read-only reports
// domain.ErrForbidden.
func (a *Access) RequireEdit(ctx context.Context, tripID, userID uuid.UUID) (domain.Trip, error) {
	trip, collab, err := a.snapshot(ctx, tripID, userID)
	if err != nil {
		return domain.Trip{}, err
	}

	if !domain.CanView(trip, userID, collab) {
		return domain.Trip{}, fmt.Errorf("service.Access.RequireEdit: %w", domain.ErrNotFound)
	}
	if !domain.CanEdit(trip, userID, collab) {
		return domain.Trip{}, fmt.Errorf("service.Access.RequireEdit: %w", domain.ErrForbidden)
	}
	return trip, nil
}

// RequireOwner returns the trip if the user is its creator or holds the
// owner role. Collaborator management is gated on this.
func (a *Access) RequireOwner(ctx context.Context, tripID, userID uuid.UUID) (domain.Trip, error) {
	trip, collab, err := a.snapshot(ctx, tripID, userID)
	if err != nil {
		return domain.Trip{}, err
	}

	if !domain.CanView(trip, userID, collab) {
		return domain.Trip{}, fmt.Errorf("service.Access.RequireOwner: %w", domain.ErrNotFound)
	}
	if effectiveRole(trip, userID, collab) != domain.RoleOwner {
		return domain.Trip{}, fmt.Errorf("service.Access.RequireOwner: %w", domain.ErrForbidden)
	}
	return trip, nil
}

// snapshot fetches the trip and, when present, the user's collaborator row.
// A missing collaborator row is not an error; the predicates treat nil as
// "no role".
func (a *Access) snapshot(ctx context.Context, tripID, userID uuid.UUID) (domain.Trip, *domain.Collaborator, error) {
	trip, err := a.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.Trip{}, nil, fmt.Errorf("service.Access: %w", err)
	}

	collab, err := a.collabs.GetByTripAndUser(ctx, tripID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return trip, nil, nil
		}
		return domain.Trip{}, nil, fmt.Errorf("service.Access: %w", err)
	}
	return trip, &collab, nil
}

// effectiveRole resolves the role shown to the user: creators are owners
// even without a collaborator row.
func effectiveRole(trip domain.Trip, userID uuid.UUID, collab *domain.Collaborator) domain.Role {
	if trip.CreatedBy == userID {
		return domain.RoleOwner
	}
	if collab != nil {
		return collab.Role
	}
	return ""
}
