package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnthonysMotion/mappr/backend/internal/domain"
	"github.com/AnthonysMotion/mappr/backend/internal/realtime"
	"github.com/AnthonysMotion/mappr/backend/internal/repo"
	"github.com/AnthonysMotion/mappr/backend/internal/service"
)

// mockUserRepo is a test double for repo.UserRepo.
type mockUserRepo struct {
	create        func(ctx context.Context, user domain.User) (domain.User, error)
	getByID       func(ctx context.Context, id uuid.UUID) (domain.User, error)
	getByEmail    func(ctx context.Context, email string) (domain.User, error)
	updateProfile func(ctx context.Context, user domain.User) (domain.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	return m.create(ctx, user)
}
func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return m.getByID(ctx, id)
}
func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return m.getByEmail(ctx, email)
}
func (m *mockUserRepo) UpdateProfile(ctx context.Context, user domain.User) (domain.User, error) {
	return m.updateProfile(ctx, user)
}

var _ repo.UserRepo = (*mockUserRepo)(nil)

// ---- fixtures --------------------------------------------------------------

var friendID = uuid.MustParse("33333333-3333-3333-3333-333333333333")

// usersWith resolves the single given email to a user with friendID.
func usersWith(email string) *mockUserRepo {
	return &mockUserRepo{
		getByEmail: func(_ context.Context, e string) (domain.User, error) {
			if e != email {
				return domain.User{}, fmt.Errorf("repo.UserRepo.GetByEmail: %w", domain.ErrNotFound)
			}
			return domain.User{ID: friendID, Email: email, DisplayName: "Friend"}, nil
		},
	}
}

func newCollabService(trip domain.Trip, collabs *mockCollaboratorRepo, users *mockUserRepo) *service.CollaboratorService {
	access := accessFixture(trip, nil)
	return service.NewCollaboratorService(collabs, users, access, realtime.NoopNotifier{})
}

// ---- Share -----------------------------------------------------------------

func TestCollaboratorService_Share_ResolvesEmail(t *testing.T) {
	trip := ownedTrip()
	collabs := &mockCollaboratorRepo{
		create: func(_ context.Context, c domain.Collaborator) (domain.Collaborator, error) {
			c.ID = uuid.New()
			return c, nil
		},
	}
	svc := newCollabService(trip, collabs, usersWith("friend@example.com"))

	got, err := svc.Share(context.Background(), trip.ID, "friend@example.com", domain.RoleEditor, creatorID)

	require.NoError(t, err)
	assert.Equal(t, friendID, got.UserID)
	assert.Equal(t, domain.RoleEditor, got.Role)
	assert.Equal(t, "friend@example.com", got.Email, "email comes from the resolved account")
}

func TestCollaboratorService_Share_OwnerRoleRejected(t *testing.T) {
	trip := ownedTrip()
	svc := newCollabService(trip, &mockCollaboratorRepo{}, usersWith("friend@example.com"))

	_, err := svc.Share(context.Background(), trip.ID, "friend@example.com", domain.RoleOwner, creatorID)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCollaboratorService_Share_UnknownEmail(t *testing.T) {
	trip := ownedTrip()
	svc := newCollabService(trip, &mockCollaboratorRepo{}, usersWith("friend@example.com"))

	_, err := svc.Share(context.Background(), trip.ID, "nobody@example.com", domain.RoleViewer, creatorID)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCollaboratorService_Share_CreatorEmailConflicts(t *testing.T) {
	trip := ownedTrip()
	users := &mockUserRepo{
		getByEmail: func(_ context.Context, email string) (domain.User, error) {
			return domain.User{ID: trip.CreatedBy, Email: email}, nil
		},
	}
	svc := newCollabService(trip, &mockCollaboratorRepo{}, users)

	_, err := svc.Share(context.Background(), trip.ID, "creator@example.com", domain.RoleEditor, creatorID)

	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestCollaboratorService_Share_AlreadyShared(t *testing.T) {
	trip := ownedTrip()
	collabs := &mockCollaboratorRepo{
		create: func(_ context.Context, c domain.Collaborator) (domain.Collaborator, error) {
			return domain.Collaborator{}, fmt.Errorf("repo.CollaboratorRepo.Create: %w", domain.ErrConflict)
		},
	}
	svc := newCollabService(trip, collabs, usersWith("friend@example.com"))

	_, err := svc.Share(context.Background(), trip.ID, "friend@example.com", domain.RoleViewer, creatorID)

	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestCollaboratorService_Share_NonOwnerForbidden(t *testing.T) {
	trip := ownedTrip()
	editor := uuid.New()
	access := accessFixture(trip, map[uuid.UUID]domain.Collaborator{
		editor: {TripID: trip.ID, UserID: editor, Role: domain.RoleEditor},
	})
	svc := service.NewCollaboratorService(&mockCollaboratorRepo{}, usersWith("friend@example.com"), access, realtime.NoopNotifier{})

	_, err := svc.Share(context.Background(), trip.ID, "friend@example.com", domain.RoleViewer, editor)

	assert.ErrorIs(t, err, domain.ErrForbidden, "editors cannot share")
}

// ---- UpdateRole ------------------------------------------------------------

func TestCollaboratorService_UpdateRole_CreatorRowImmutable(t *testing.T) {
	trip := ownedTrip()
	collabs := &mockCollaboratorRepo{
		getByID: func(_ context.Context, _, collabID uuid.UUID) (domain.Collaborator, error) {
			return domain.Collaborator{ID: collabID, TripID: trip.ID, UserID: trip.CreatedBy, Role: domain.RoleOwner}, nil
		},
	}
	svc := newCollabService(trip, collabs, &mockUserRepo{})

	_, err := svc.UpdateRole(context.Background(), trip.ID, uuid.New(), domain.RoleViewer, creatorID)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCollaboratorService_UpdateRole_DemotesEditor(t *testing.T) {
	trip := ownedTrip()
	collabID := uuid.New()
	collabs := &mockCollaboratorRepo{
		getByID: func(_ context.Context, _, id uuid.UUID) (domain.Collaborator, error) {
			return domain.Collaborator{ID: id, TripID: trip.ID, UserID: friendID, Role: domain.RoleEditor}, nil
		},
		updateRole: func(_ context.Context, _, id uuid.UUID, role domain.Role) (domain.Collaborator, error) {
			return domain.Collaborator{ID: id, TripID: trip.ID, UserID: friendID, Role: role}, nil
		},
	}
	svc := newCollabService(trip, collabs, &mockUserRepo{})

	got, err := svc.UpdateRole(context.Background(), trip.ID, collabID, domain.RoleViewer, creatorID)

	require.NoError(t, err)
	assert.Equal(t, domain.RoleViewer, got.Role)
}

// ---- Revoke ----------------------------------------------------------------

func TestCollaboratorService_Revoke_CreatorRowProtected(t *testing.T) {
	trip := ownedTrip()
	collabs := &mockCollaboratorRepo{
		getByID: func(_ context.Context, _, collabID uuid.UUID) (domain.Collaborator, error) {
			return domain.Collaborator{ID: collabID, TripID: trip.ID, UserID: trip.CreatedBy, Role: domain.RoleOwner}, nil
		},
	}
	svc := newCollabService(trip, collabs, &mockUserRepo{})

	err := svc.Revoke(context.Background(), trip.ID, uuid.New(), creatorID)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCollaboratorService_Revoke_RemovesCollaborator(t *testing.T) {
	trip := ownedTrip()
	deleted := false
	collabs := &mockCollaboratorRepo{
		getByID: func(_ context.Context, _, collabID uuid.UUID) (domain.Collaborator, error) {
			return domain.Collaborator{ID: collabID, TripID: trip.ID, UserID: friendID, Role: domain.RoleViewer}, nil
		},
		delete: func(_ context.Context, _, _ uuid.UUID) error {
			deleted = true
			return nil
		},
	}
	svc := newCollabService(trip, collabs, &mockUserRepo{})

	err := svc.Revoke(context.Background(), trip.ID, uuid.New(), creatorID)

	require.NoError(t, err)
	assert.True(t, deleted)
}
