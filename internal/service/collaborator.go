package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/AnthonysMotion/mappr/backend/internal/domain"
	"github.com/AnthonysMotion/mappr/backend/internal/realtime"
	"github.com/AnthonysMotion/mappr/backend/internal/repo"
)

// CollaboratorService implements trip sharing.
// Sharing is by email: the share dialog sends an email address and a role,
// the service resolves it to an account and inserts the collaborator row.
type CollaboratorService struct {
	collabs repo.CollaboratorRepo
	users   repo.UserRepo
	access  *Access
	notify  realtime.Notifier
}

// NewCollaboratorService constructs a CollaboratorService backed by the provided repos.
func NewCollaboratorService(collabs repo.CollaboratorRepo, users repo.UserRepo, access *Access, notify realtime.Notifier) *CollaboratorService {
	return &CollaboratorService{collabs: collabs, users: users, access: access, notify: notify}
}

// ListByTripID returns all collaborators on a trip. Requires view rights.
// Always returns a non-nil slice so callers can safely range over it.
func (s *CollaboratorService) ListByTripID(ctx context.Context, tripID, userID uuid.UUID) ([]domain.Collaborator, error) {
	if _, _, err := s.access.RequireView(ctx, tripID, userID); err != nil {
		return nil, err
	}

	collabs, err := s.collabs.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.CollaboratorService.ListByTripID: %w", err)
	}
	if collabs == nil {
		return []domain.Collaborator{}, nil
	}
	return collabs, nil
}

// Share grants a user access to a trip by email. Only owners may share.
//   - The role must be editor or viewer; owner is reserved for the
//     creator's row inserted at trip creation.
//   - Unknown email reports domain.ErrNotFound.
//   - An existing collaborator reports domain.ErrConflict.
func (s *CollaboratorService) Share(ctx context.Context, tripID uuid.UUID, email string, role domain.Role, userID uuid.UUID) (domain.Collaborator, error) {
	trip, err := s.access.RequireOwner(ctx, tripID, userID)
	if err != nil {
		return domain.Collaborator{}, err
	}

	if strings.TrimSpace(email) == "" {
		return domain.Collaborator{}, fmt.Errorf("%w: email is required", domain.ErrValidation)
	}
	if role != domain.RoleEditor && role != domain.RoleViewer {
		return domain.Collaborator{}, fmt.Errorf("%w: role must be editor or viewer", domain.ErrValidation)
	}

	target, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Collaborator{}, fmt.Errorf("service.CollaboratorService.Share: no account for email: %w", domain.ErrNotFound)
		}
		return domain.Collaborator{}, fmt.Errorf("service.CollaboratorService.Share: %w", err)
	}
	if target.ID == trip.CreatedBy {
		return domain.Collaborator{}, fmt.Errorf("%w: user already owns this trip", domain.ErrConflict)
	}

	created, err := s.collabs.Create(ctx, domain.Collaborator{
		TripID: tripID,
		UserID: target.ID,
		Role:   role,
	})
	if err != nil {
		return domain.Collaborator{}, fmt.Errorf("service.CollaboratorService.Share: %w", err)
	}
	created.Email = target.Email

	s.notify.TripChanged(ctx, tripID, "collaborators")
	return created, nil
}

// UpdateRole changes a collaborator's role. Only owners may manage roles,
// the creator's own row cannot be changed, and owner cannot be assigned.
func (s *CollaboratorService) UpdateRole(ctx context.Context, tripID, collabID uuid.UUID, role domain.Role, userID uuid.UUID) (domain.Collaborator, error) {
	trip, err := s.access.RequireOwner(ctx, tripID, userID)
	if err != nil {
		return domain.Collaborator{}, err
	}
	if role != domain.RoleEditor && role != domain.RoleViewer {
		return domain.Collaborator{}, fmt.Errorf("%w: role must be editor or viewer", domain.ErrValidation)
	}

	existing, err := s.collabs.GetByID(ctx, tripID, collabID)
	if err != nil {
		return domain.Collaborator{}, fmt.Errorf("service.CollaboratorService.UpdateRole: %w", err)
	}
	if existing.UserID == trip.CreatedBy {
		return domain.Collaborator{}, fmt.Errorf("%w: the trip creator's role cannot be changed", domain.ErrValidation)
	}

	updated, err := s.collabs.UpdateRole(ctx, tripID, collabID, role)
	if err != nil {
		return domain.Collaborator{}, fmt.Errorf("service.CollaboratorService.UpdateRole: %w", err)
	}

	s.notify.TripChanged(ctx, tripID, "collaborators")
	return updated, nil
}

// Revoke removes a collaborator from a trip. Only owners may revoke, and
// the creator's own row cannot be removed.
func (s *CollaboratorService) Revoke(ctx context.Context, tripID, collabID, userID uuid.UUID) error {
	trip, err := s.access.RequireOwner(ctx, tripID, userID)
	if err != nil {
		return err
	}

	existing, err := s.collabs.GetByID(ctx, tripID, collabID)
	if err != nil {
		return fmt.Errorf("service.CollaboratorService.Revoke: %w", err)
	}
	if existing.UserID == trip.CreatedBy {
		return fmt.Errorf("%w: the trip creator cannot be removed", domain.ErrValidation)
	}

	if err := s.collabs.Delete(ctx, tripID, collabID); err != nil {
		return fmt.Errorf("service.CollaboratorService.Revoke: %w", err)
	}

	s.notify.TripChanged(ctx, tripID, "collaborators")
	return nil
}
