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

// ListItemService implements business logic for trip checklist items.
// It holds the pin repo because an item's pin link must belong to the
// same trip.
type ListItemService struct {
	items  repo.ListItemRepo
	pins   repo.PinRepo
	access *Access
	notify realtime.Notifier
}

// NewListItemService constructs a ListItemService backed by the provided repos.
func NewListItemService(items repo.ListItemRepo, pins repo.PinRepo, access *Access, notify realtime.Notifier) *ListItemService {
	return &ListItemService{items: items, pins: pins, access: access, notify: notify}
}

// Create validates and persists a new list item. Requires edit rights.
func (s *ListItemService) Create(ctx context.Context, item domain.ListItem, userID uuid.UUID) (domain.ListItem, error) {
	if _, err := s.access.RequireEdit(ctx, item.TripID, userID); err != nil {
		return domain.ListItem{}, err
	}
	if err := s.validateListItem(ctx, item); err != nil {
		return domain.ListItem{}, err
	}

	item.CreatedBy = userID
	created, err := s.items.Create(ctx, item)
	if err != nil {
		return domain.ListItem{}, fmt.Errorf("service.ListItemService.Create: %w", err)
	}

	s.notify.TripChanged(ctx, item.TripID, "list_items")
	return created, nil
}

// ListByTripID returns list items for a trip, optionally filtered by type.
// Requires view rights. Always returns a non-nil slice.
func (s *ListItemService) ListByTripID(ctx context.Context, tripID, userID uuid.UUID, listType domain.ListType) ([]domain.ListItem, error) {
	if _, _, err := s.access.RequireView(ctx, tripID, userID); err != nil {
		return nil, err
	}
	if listType != "" && !listType.Valid() {
		return nil, fmt.Errorf("%w: unknown list type %q", domain.ErrValidation, listType)
	}

	items, err := s.items.ListByTripID(ctx, tripID, listType)
	if err != nil {
		return nil, fmt.Errorf("service.ListItemService.ListByTripID: %w", err)
	}
	if items == nil {
		return []domain.ListItem{}, nil
	}
	return items, nil
}

// Update validates and persists changes to an existing list item.
func (s *ListItemService) Update(ctx context.Context, item domain.ListItem, userID uuid.UUID) (domain.ListItem, error) {
	if _, err := s.access.RequireEdit(ctx, item.TripID, userID); err != nil {
		return domain.ListItem{}, err
	}
	if err := s.validateListItem(ctx, item); err != nil {
		return domain.ListItem{}, err
	}

	updated, err := s.items.Update(ctx, item)
	if err != nil {
		return domain.ListItem{}, fmt.Errorf("service.ListItemService.Update: %w", err)
	}

	s.notify.TripChanged(ctx, item.TripID, "list_items")
	return updated, nil
}

// Delete removes a list item. Requires edit rights.
func (s *ListItemService) Delete(ctx context.Context, tripID, itemID, userID uuid.UUID) error {
	if _, err := s.access.RequireEdit(ctx, tripID, userID); err != nil {
		return err
	}
	if err := s.items.Delete(ctx, tripID, itemID); err != nil {
		return fmt.Errorf("service.ListItemService.Delete: %w", err)
	}

	s.notify.TripChanged(ctx, tripID, "list_items")
	return nil
}

// validateListItem enforces business rules common to Create and Update.
func (s *ListItemService) validateListItem(ctx context.Context, item domain.ListItem) error {
	if strings.TrimSpace(item.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if !item.ListType.Valid() {
		return fmt.Errorf("%w: list_type must be stores, things_to_do, or things_to_see", domain.ErrValidation)
	}

	if item.PinID != nil {
		if _, err := s.pins.GetByID(ctx, item.TripID, *item.PinID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("%w: pin does not belong to this trip", domain.ErrValidation)
			}
			return fmt.Errorf("service.ListItemService: check pin: %w", err)
		}
	}
	return nil
}
