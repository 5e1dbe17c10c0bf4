package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnthonysMotion/mappr/backend/internal/domain"
	"github.com/AnthonysMotion/mappr/backend/internal/repo"
)

func TestCollaboratorRepo_Create_DuplicateConflict(t *testing.T) {
	tx := beginTx(t)
	ctx := context.Background()
	owner := createUser(t, tx, "owner@example.com")
	friend := createUser(t, tx, "friend@example.com")
	trip := createTrip(t, tx, owner)
	addCollaborator(t, tx, trip, friend, domain.RoleViewer)

	_, err := repo.NewCollaboratorRepo(tx).Create(ctx, domain.Collaborator{
		TripID: trip.ID,
		UserID: friend.ID,
		Role:   domain.RoleEditor,
	})

	assert.ErrorIs(t, err, domain.ErrConflict, "one row per user per trip")
}

func TestCollaboratorRepo_GetByTripAndUser(t *testing.T) {
	tx := beginTx(t)
	ctx := context.Background()
	owner := createUser(t, tx, "owner@example.com")
	friend := createUser(t, tx, "friend@example.com")
	trip := createTrip(t, tx, owner)
	created := addCollaborator(t, tx, trip, friend, domain.RoleEditor)

	got, err := repo.NewCollaboratorRepo(tx).GetByTripAndUser(ctx, trip.ID, friend.ID)

	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, domain.RoleEditor, got.Role)
}

func TestCollaboratorRepo_GetByTripAndUser_NotFound(t *testing.T) {
	tx := beginTx(t)
	owner := createUser(t, tx, "owner@example.com")
	trip := createTrip(t, tx, owner)

	_, err := repo.NewCollaboratorRepo(tx).GetByTripAndUser(context.Background(), trip.ID, neverUsedID)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCollaboratorRepo_ListByTripID_JoinsEmail(t *testing.T) {
	tx := beginTx(t)
	ctx := context.Background()
	owner := createUser(t, tx, "owner@example.com")
	friend := createUser(t, tx, "friend@example.com")
	trip := createTrip(t, tx, owner)
	addCollaborator(t, tx, trip, owner, domain.RoleOwner)
	addCollaborator(t, tx, trip, friend, domain.RoleViewer)

	got, err := repo.NewCollaboratorRepo(tx).ListByTripID(ctx, trip.ID)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "owner@example.com", got[0].Email, "oldest row first")
	assert.Equal(t, "friend@example.com", got[1].Email)
}

func TestCollaboratorRepo_UpdateRole(t *testing.T) {
	tx := beginTx(t)
	ctx := context.Background()
	owner := createUser(t, tx, "owner@example.com")
	friend := createUser(t, tx, "friend@example.com")
	trip := createTrip(t, tx, owner)
	created := addCollaborator(t, tx, trip, friend, domain.RoleViewer)

	got, err := repo.NewCollaboratorRepo(tx).UpdateRole(ctx, trip.ID, created.ID, domain.RoleEditor)

	require.NoError(t, err)
	assert.Equal(t, domain.RoleEditor, got.Role)
}

func TestCollaboratorRepo_UpdateRole_WrongTrip(t *testing.T) {
	tx := beginTx(t)
	ctx := context.Background()
	owner := createUser(t, tx, "owner@example.com")
	friend := createUser(t, tx, "friend@example.com")
	trip := createTrip(t, tx, owner)
	other := createTrip(t, tx, owner)
	created := addCollaborator(t, tx, trip, friend, domain.RoleViewer)

	_, err := repo.NewCollaboratorRepo(tx).UpdateRole(ctx, other.ID, created.ID, domain.RoleEditor)

	assert.ErrorIs(t, err, domain.ErrNotFound, "collaborator IDs are scoped to their trip")
}

func TestCollaboratorRepo_Delete(t *testing.T) {
	tx := beginTx(t)
	ctx := context.Background()
	r := repo.NewCollaboratorRepo(tx)
	owner := createUser(t, tx, "owner@example.com")
	friend := createUser(t, tx, "friend@example.com")
	trip := createTrip(t, tx, owner)
	created := addCollaborator(t, tx, trip, friend, domain.RoleViewer)

	require.NoError(t, r.Delete(ctx, trip.ID, created.ID))

	_, err := r.GetByID(ctx, trip.ID, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
