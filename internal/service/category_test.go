package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnthonysMotion/mappr/backend/internal/domain"
	"github.com/AnthonysMotion/mappr/backend/internal/realtime"
	"github.com/AnthonysMotion/mappr/backend/internal/service"
)

func echoCategoryRepo() *mockCategoryRepo {
	return &mockCategoryRepo{
		create: func(_ context.Context, cat domain.Category) (domain.Category, error) {
			cat.ID = uuid.New()
			return cat, nil
		},
		update: func(_ context.Context, cat domain.Category) (domain.Category, error) { return cat, nil },
	}
}

func newCategoryService(trip domain.Trip, cats *mockCategoryRepo) *service.CategoryService {
	return service.NewCategoryService(cats, accessFixture(trip, nil), realtime.NoopNotifier{})
}

func TestCategoryService_Create(t *testing.T) {
	trip := ownedTrip()
	svc := newCategoryService(trip, echoCategoryRepo())

	got, err := svc.Create(context.Background(), domain.Category{
		TripID: trip.ID,
		Name:   "Temples",
		Color:  "#e74c3c",
		Icon:   "shrine",
	}, creatorID)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, "Temples", got.Name)
}

func TestCategoryService_Create_ColorValidation(t *testing.T) {
	trip := ownedTrip()
	svc := newCategoryService(trip, echoCategoryRepo())

	tests := []struct {
		color   string
		wantErr bool
	}{
		{"#ef4444", false},
		{"#fff", false},
		{"#EF4444", false},
		{"ef4444", true}, // missing hash
		{"#ef44", true},  // wrong length
		{"red", true},
		{"", true},
	}
	for _, tt := range tests {
		t.Run(tt.color, func(t *testing.T) {
			_, err := svc.Create(context.Background(), domain.Category{
				TripID: trip.ID,
				Name:   "Temples",
				Color:  tt.color,
			}, creatorID)

			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCategoryService_Create_NameRequired(t *testing.T) {
	trip := ownedTrip()
	svc := newCategoryService(trip, echoCategoryRepo())

	_, err := svc.Create(context.Background(), domain.Category{
		TripID: trip.ID,
		Name:   "   ",
		Color:  "#ef4444",
	}, creatorID)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCategoryService_ListByTripID_NilBecomesEmpty(t *testing.T) {
	trip := ownedTrip()
	cats := &mockCategoryRepo{
		listByTripID: func(_ context.Context, _ uuid.UUID) ([]domain.Category, error) { return nil, nil },
	}
	svc := newCategoryService(trip, cats)

	got, err := svc.ListByTripID(context.Background(), trip.ID, creatorID)

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCategoryService_Delete_RequiresEdit(t *testing.T) {
	trip := ownedTrip()
	viewer := uuid.New()
	access := accessFixture(trip, map[uuid.UUID]domain.Collaborator{
		viewer: {TripID: trip.ID, UserID: viewer, Role: domain.RoleViewer},
	})
	svc := service.NewCategoryService(&mockCategoryRepo{}, access, realtime.NoopNotifier{})

	err := svc.Delete(context.Background(), trip.ID, uuid.New(), viewer)

	assert.ErrorIs(t, err, domain.ErrForbidden)
}
