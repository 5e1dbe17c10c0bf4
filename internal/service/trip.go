package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/AnthonysMotion/mappr/backend/internal/domain"
	"github.com/AnthonysMotion/mappr/backend/internal/realtime"
	"github.com/AnthonysMotion/mappr/backend/internal/repo"
)

// TripService implements business logic for Trip operations.
type TripService struct {
	trips   repo.TripRepo
	collabs repo.CollaboratorRepo
	access  *Access
	notify  realtime.Notifier
}

// NewTripService constructs a TripService backed by the provided repos.
func NewTripService(trips repo.TripRepo, collabs repo.CollaboratorRepo, access *Access, notify realtime.Notifier) *TripService {
	return &TripService{trips: trips, collabs: collabs, access: access, notify: notify}
}

// Create validates and persists a new trip for userID, then inserts the
// creator's owner collaborator row so the trip shows up in collaborator
// queries without special-casing creators.
func (s *TripService) Create(ctx context.Context, trip domain.Trip, userID uuid.UUID) (domain.Trip, error) {
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}

	trip.CreatedBy = userID
	created, err := s.trips.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}

	_, err = s.collabs.Create(ctx, domain.Collaborator{
		TripID: created.ID,
		UserID: userID,
		Role:   domain.RoleOwner,
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: owner row: %w", err)
	}

	return created, nil
}

// GetForUser returns a single trip by ID along with the user's effective
// role on it. Trips the user cannot view report domain.ErrNotFound.
func (s *TripService) GetForUser(ctx context.Context, tripID, userID uuid.UUID) (domain.Trip, domain.Role, error) {
	return s.access.RequireView(ctx, tripID, userID)
}

// ListForUser returns one page of trips the user created or collaborates on.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) ListForUser(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	trips, total, err := s.trips.ListForUser(ctx, userID, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TripService.ListForUser: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return trips, total, nil
}

// Update validates and persists changes to an existing trip.
// Requires edit rights; viewers get domain.ErrForbidden.
func (s *TripService) Update(ctx context.Context, trip domain.Trip, userID uuid.UUID) (domain.Trip, error) {
	if _, err := s.access.RequireEdit(ctx, trip.ID, userID); err != nil {
		return domain.Trip{}, err
	}
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}

	updated, err := s.trips.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}

	s.notify.TripChanged(ctx, updated.ID, "trips")
	return updated, nil
}

// Delete removes a trip and everything under it. Only the owner may delete.
func (s *TripService) Delete(ctx context.Context, tripID, userID uuid.UUID) error {
	if _, err := s.access.RequireOwner(ctx, tripID, userID); err != nil {
		return err
	}
	if err := s.trips.Delete(ctx, tripID); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}

	s.notify.TripChanged(ctx, tripID, "trips")
	return nil
}

// validateTrip enforces business rules common to both Create and Update.
//   - Name must be non-empty (whitespace-only names are rejected).
//   - When both dates are present, end_date must not precede start_date.
//     This is the only layer that checks date order: the timeline deriver
//     deliberately treats an inverted range as an empty timeline.
func validateTrip(trip domain.Trip) error {
	if strings.TrimSpace(trip.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if trip.StartDate != nil && trip.EndDate != nil && trip.EndDate.Before(*trip.StartDate) {
		return fmt.Errorf("%w: end_date must not be before start_date", domain.ErrValidation)
	}
	return nil
}
