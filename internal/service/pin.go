package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/AnthonysMotion/mappr/backend/internal/domain"
	"github.com/AnthonysMotion/mappr/backend/internal/realtime"
	"github.com/AnthonysMotion/mappr/backend/internal/repo"
)

// timeOfDayRe matches the zero-padded 24-hour "HH:MM" format pins carry.
// Zero padding matters: it is what makes lexicographic time order equal
// chronological order in the timeline grouping.
var timeOfDayRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// PinService implements business logic for Pin operations.
// It holds the category repo as well because a pin's category reference
// must belong to the same trip.
type PinService struct {
	pins   repo.PinRepo
	cats   repo.CategoryRepo
	access *Access
	notify realtime.Notifier
}

// NewPinService constructs a PinService backed by the provided repos.
func NewPinService(pins repo.PinRepo, cats repo.CategoryRepo, access *Access, notify realtime.Notifier) *PinService {
	return &PinService{pins: pins, cats: cats, access: access, notify: notify}
}

// Create validates the pin, verifies edit rights on the parent trip, then
// persists. Returns domain.ErrValidation if input violates business rules.
func (s *PinService) Create(ctx context.Context, pin domain.Pin, userID uuid.UUID) (domain.Pin, error) {
	if _, err := s.access.RequireEdit(ctx, pin.TripID, userID); err != nil {
		return domain.Pin{}, err
	}
	if err := s.validatePin(ctx, pin); err != nil {
		return domain.Pin{}, err
	}

	pin.CreatedBy = userID
	created, err := s.pins.Create(ctx, pin)
	if err != nil {
		return domain.Pin{}, fmt.Errorf("service.PinService.Create: %w", err)
	}

	s.notify.TripChanged(ctx, pin.TripID, "pins")
	return created, nil
}

// GetByID returns a single pin by ID, scoped to the given trip.
// Requires view rights on the trip.
func (s *PinService) GetByID(ctx context.Context, tripID, pinID, userID uuid.UUID) (domain.Pin, error) {
	if _, _, err := s.access.RequireView(ctx, tripID, userID); err != nil {
		return domain.Pin{}, err
	}

	pin, err := s.pins.GetByID(ctx, tripID, pinID)
	if err != nil {
		return domain.Pin{}, fmt.Errorf("service.PinService.GetByID: %w", err)
	}
	return pin, nil
}

// ListByTripID returns all pins for a trip. Requires view rights.
// Always returns a non-nil slice so callers can safely range over it.
func (s *PinService) ListByTripID(ctx context.Context, tripID, userID uuid.UUID) ([]domain.Pin, error) {
	if _, _, err := s.access.RequireView(ctx, tripID, userID); err != nil {
		return nil, err
	}

	pins, err := s.pins.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.PinService.ListByTripID: %w", err)
	}
	if pins == nil {
		return []domain.Pin{}, nil
	}
	return pins, nil
}

// Update validates and persists changes to an existing pin.
func (s *PinService) Update(ctx context.Context, pin domain.Pin, userID uuid.UUID) (domain.Pin, error) {
	if _, err := s.access.RequireEdit(ctx, pin.TripID, userID); err != nil {
		return domain.Pin{}, err
	}
	if err := s.validatePin(ctx, pin); err != nil {
		return domain.Pin{}, err
	}

	updated, err := s.pins.Update(ctx, pin)
	if err != nil {
		return domain.Pin{}, fmt.Errorf("service.PinService.Update: %w", err)
	}

	s.notify.TripChanged(ctx, pin.TripID, "pins")
	return updated, nil
}

// Delete removes a pin by ID, scoped to the given trip. Requires edit rights.
func (s *PinService) Delete(ctx context.Context, tripID, pinID, userID uuid.UUID) error {
	if _, err := s.access.RequireEdit(ctx, tripID, userID); err != nil {
		return err
	}
	if err := s.pins.Delete(ctx, tripID, pinID); err != nil {
		return fmt.Errorf("service.PinService.Delete: %w", err)
	}

	s.notify.TripChanged(ctx, tripID, "pins")
	return nil
}

// validatePin enforces business rules common to both Create and Update.
//   - Name must be non-empty.
//   - Coordinates must be valid decimal degrees.
//   - Day, when set, is 1-based.
//   - Time, when set, must be zero-padded 24-hour "HH:MM".
//   - The category, when set, must exist under the same trip.
func (s *PinService) validatePin(ctx context.Context, pin domain.Pin) error {
	if strings.TrimSpace(pin.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if pin.Latitude < -90 || pin.Latitude > 90 {
		return fmt.Errorf("%w: latitude must be between -90 and 90", domain.ErrValidation)
	}
	if pin.Longitude < -180 || pin.Longitude > 180 {
		return fmt.Errorf("%w: longitude must be between -180 and 180", domain.ErrValidation)
	}
	if pin.Day != nil && *pin.Day < 1 {
		return fmt.Errorf("%w: day must be 1 or greater", domain.ErrValidation)
	}
	if pin.Time != "" && !timeOfDayRe.MatchString(pin.Time) {
		return fmt.Errorf("%w: time must be in 24-hour HH:MM format", domain.ErrValidation)
	}

	if pin.CategoryID != nil {
		if _, err := s.cats.GetByID(ctx, pin.TripID, *pin.CategoryID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("%w: category does not belong to this trip", domain.ErrValidation)
			}
			return fmt.Errorf("service.PinService: check category: %w", err)
		}
	}
	return nil
}
