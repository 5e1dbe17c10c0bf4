package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnthonysMotion/mappr/backend/internal/domain"
	"github.com/AnthonysMotion/mappr/backend/internal/realtime"
	"github.com/AnthonysMotion/mappr/backend/internal/service"
)

// ---- helpers ---------------------------------------------------------------

func validTrip() domain.Trip {
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	return domain.Trip{
		Name:      "Japan 2026",
		StartDate: &start,
		EndDate:   &end,
	}
}

// echoTripRepo echoes Create/Update input back with a fresh ID, useful for
// tests that only care about validation logic, not what the DB returns.
func echoTripRepo() *mockTripRepo {
	return &mockTripRepo{
		create: func(_ context.Context, trip domain.Trip) (domain.Trip, error) {
			trip.ID = uuid.New()
			return trip, nil
		},
		update: func(_ context.Context, trip domain.Trip) (domain.Trip, error) { return trip, nil },
	}
}

func newTripService(trips *mockTripRepo, collabs *mockCollaboratorRepo) *service.TripService {
	access := service.NewAccess(trips, collabs)
	return service.NewTripService(trips, collabs, access, realtime.NoopNotifier{})
}

// ---- Create ----------------------------------------------------------------

func TestTripService_Create_InsertsOwnerRow(t *testing.T) {
	trips := echoTripRepo()

	var ownerRow domain.Collaborator
	collabs := &mockCollaboratorRepo{
		create: func(_ context.Context, c domain.Collaborator) (domain.Collaborator, error) {
			ownerRow = c
			return c, nil
		},
	}
	svc := newTripService(trips, collabs)

	got, err := svc.Create(context.Background(), validTrip(), creatorID)

	require.NoError(t, err)
	assert.Equal(t, creatorID, got.CreatedBy)
	assert.Equal(t, got.ID, ownerRow.TripID)
	assert.Equal(t, creatorID, ownerRow.UserID)
	assert.Equal(t, domain.RoleOwner, ownerRow.Role)
}

func TestTripService_Create_MissingName(t *testing.T) {
	svc := newTripService(echoTripRepo(), &mockCollaboratorRepo{})

	trip := validTrip()
	trip.Name = "   " // whitespace-only should be treated as empty

	_, err := svc.Create(context.Background(), trip, creatorID)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTripService_Create_EndDateBeforeStartDate(t *testing.T) {
	svc := newTripService(echoTripRepo(), &mockCollaboratorRepo{})

	trip := validTrip()
	bad := trip.StartDate.AddDate(0, 0, -1)
	trip.EndDate = &bad

	_, err := svc.Create(context.Background(), trip, creatorID)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTripService_Create_SameDayTripIsValid(t *testing.T) {
	svc := newTripService(echoTripRepo(), &mockCollaboratorRepo{
		create: func(_ context.Context, c domain.Collaborator) (domain.Collaborator, error) { return c, nil },
	})

	trip := validTrip()
	same := *trip.StartDate
	trip.EndDate = &same

	_, err := svc.Create(context.Background(), trip, creatorID)

	assert.NoError(t, err)
}

func TestTripService_Create_DatesOptional(t *testing.T) {
	svc := newTripService(echoTripRepo(), &mockCollaboratorRepo{
		create: func(_ context.Context, c domain.Collaborator) (domain.Collaborator, error) { return c, nil },
	})

	trip := validTrip()
	trip.StartDate = nil
	trip.EndDate = nil

	_, err := svc.Create(context.Background(), trip, creatorID)

	assert.NoError(t, err)
}

// ---- Update ----------------------------------------------------------------

func TestTripService_Update_ViewerForbidden(t *testing.T) {
	trip := ownedTrip()
	viewerID := uuid.New()

	trips := &mockTripRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Trip, error) { return trip, nil },
	}
	collabs := &mockCollaboratorRepo{
		getByTripAndUser: func(_ context.Context, _, _ uuid.UUID) (domain.Collaborator, error) {
			return domain.Collaborator{TripID: trip.ID, UserID: viewerID, Role: domain.RoleViewer}, nil
		},
	}
	svc := newTripService(trips, collabs)

	changed := trip
	changed.Name = "Renamed"
	_, err := svc.Update(context.Background(), changed, viewerID)

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestTripService_Update_ValidatesAfterAccessCheck(t *testing.T) {
	trip := ownedTrip()
	trips := &mockTripRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Trip, error) { return trip, nil },
	}
	collabs := &mockCollaboratorRepo{
		getByTripAndUser: func(_ context.Context, _, _ uuid.UUID) (domain.Collaborator, error) {
			return domain.Collaborator{}, domain.ErrNotFound
		},
	}
	svc := newTripService(trips, collabs)

	changed := trip
	changed.Name = ""
	_, err := svc.Update(context.Background(), changed, creatorID)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ---- ListForUser -----------------------------------------------------------

func TestTripService_ListForUser_NilBecomesEmpty(t *testing.T) {
	trips := &mockTripRepo{
		listForUser: func(_ context.Context, _ uuid.UUID, _ domain.PaginationParams) ([]domain.Trip, int64, error) {
			return nil, 0, nil
		},
	}
	svc := newTripService(trips, &mockCollaboratorRepo{})

	got, total, err := svc.ListForUser(context.Background(), creatorID, domain.NewPaginationParams(nil, nil))

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Zero(t, total)
}

// ---- Delete ----------------------------------------------------------------

func TestTripService_Delete_OwnerOnly(t *testing.T) {
	trip := ownedTrip()
	editorID := uuid.New()

	trips := &mockTripRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Trip, error) { return trip, nil },
		delete:  func(_ context.Context, _ uuid.UUID) error { return nil },
	}
	collabs := &mockCollaboratorRepo{
		getByTripAndUser: func(_ context.Context, _, userID uuid.UUID) (domain.Collaborator, error) {
			if userID == editorID {
				return domain.Collaborator{TripID: trip.ID, UserID: editorID, Role: domain.RoleEditor}, nil
			}
			return domain.Collaborator{}, domain.ErrNotFound
		},
	}
	svc := newTripService(trips, collabs)

	err := svc.Delete(context.Background(), trip.ID, editorID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	err = svc.Delete(context.Background(), trip.ID, creatorID)
	assert.NoError(t, err)
}
