package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/AnthonysMotion/mappr/backend/internal/domain"
	"github.com/AnthonysMotion/mappr/backend/internal/realtime"
	"github.com/AnthonysMotion/mappr/backend/internal/repo"
)

// hexColorRe matches a hex color like "#ef4444" or "#fff".
var hexColorRe = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// CategoryService implements business logic for Category operations.
type CategoryService struct {
	cats   repo.CategoryRepo
	access *Access
	notify realtime.Notifier
}

// NewCategoryService constructs a CategoryService backed by the provided repos.
func NewCategoryService(cats repo.CategoryRepo, access *Access, notify realtime.Notifier) *CategoryService {
	return &CategoryService{cats: cats, access: access, notify: notify}
}

// Create validates and persists a new category. Requires edit rights.
func (s *CategoryService) Create(ctx context.Context, cat domain.Category, userID uuid.UUID) (domain.Category, error) {
	if _, err := s.access.RequireEdit(ctx, cat.TripID, userID); err != nil {
		return domain.Category{}, err
	}
	if err := validateCategory(cat); err != nil {
		return domain.Category{}, err
	}

	created, err := s.cats.Create(ctx, cat)
	if err != nil {
		return domain.Category{}, fmt.Errorf("service.CategoryService.Create: %w", err)
	}

	s.notify.TripChanged(ctx, cat.TripID, "categories")
	return created, nil
}

// ListByTripID returns all categories for a trip. Requires view rights.
// Always returns a non-nil slice so callers can safely range over it.
func (s *CategoryService) ListByTripID(ctx context.Context, tripID, userID uuid.UUID) ([]domain.Category, error) {
	if _, _, err := s.access.RequireView(ctx, tripID, userID); err != nil {
		return nil, err
	}

	cats, err := s.cats.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.CategoryService.ListByTripID: %w", err)
	}
	if cats == nil {
		return []domain.Category{}, nil
	}
	return cats, nil
}

// Update validates and persists changes to an existing category.
func (s *CategoryService) Update(ctx context.Context, cat domain.Category, userID uuid.UUID) (domain.Category, error) {
	if _, err := s.access.RequireEdit(ctx, cat.TripID, userID); err != nil {
		return domain.Category{}, err
	}
	if err := validateCategory(cat); err != nil {
		return domain.Category{}, err
	}

	updated, err := s.cats.Update(ctx, cat)
	if err != nil {
		return domain.Category{}, fmt.Errorf("service.CategoryService.Update: %w", err)
	}

	s.notify.TripChanged(ctx, cat.TripID, "categories")
	return updated, nil
}

// Delete removes a category. Pins keep existing, uncategorized.
func (s *CategoryService) Delete(ctx context.Context, tripID, catID, userID uuid.UUID) error {
	if _, err := s.access.RequireEdit(ctx, tripID, userID); err != nil {
		return err
	}
	if err := s.cats.Delete(ctx, tripID, catID); err != nil {
		return fmt.Errorf("service.CategoryService.Delete: %w", err)
	}

	s.notify.TripChanged(ctx, tripID, "categories")
	return nil
}

// validateCategory enforces business rules common to Create and Update.
func validateCategory(cat domain.Category) error {
	if strings.TrimSpace(cat.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if !hexColorRe.MatchString(cat.Color) {
		return fmt.Errorf("%w: color must be a hex color like #ef4444", domain.ErrValidation)
	}
	return nil
}
