package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnthonysMotion/mappr/backend/internal/domain"
	"github.com/AnthonysMotion/mappr/backend/internal/repo"
)

func createListItem(t *testing.T, r repo.ListItemRepo, trip domain.Trip, owner domain.User, listType domain.ListType, name string) domain.ListItem {
	t.Helper()
	item, err := r.Create(context.Background(), domain.ListItem{
		TripID:    trip.ID,
		ListType:  listType,
		Name:      name,
		CreatedBy: owner.ID,
	})
	require.NoError(t, err)
	return item
}

func TestListItemRepo_ListByTripID_TypeFilter(t *testing.T) {
	tx := beginTx(t)
	ctx := context.Background()
	r := repo.NewListItemRepo(tx)
	owner := createUser(t, tx, "owner@example.com")
	trip := createTrip(t, tx, owner)

	createListItem(t, r, trip, owner, domain.ListStores, "Don Quijote")
	createListItem(t, r, trip, owner, domain.ListThingsToDo, "TeamLab Planets")
	createListItem(t, r, trip, owner, domain.ListThingsToSee, "Shibuya Crossing")

	all, err := r.ListByTripID(ctx, trip.ID, "")
	require.NoError(t, err)
	assert.Len(t, all, 3, "empty type means no filter")

	stores, err := r.ListByTripID(ctx, trip.ID, domain.ListStores)
	require.NoError(t, err)
	require.Len(t, stores, 1)
	assert.Equal(t, "Don Quijote", stores[0].Name)
}

func TestListItemRepo_Update_TogglesCompleted(t *testing.T) {
	tx := beginTx(t)
	ctx := context.Background()
	r := repo.NewListItemRepo(tx)
	owner := createUser(t, tx, "owner@example.com")
	trip := createTrip(t, tx, owner)

	item := createListItem(t, r, trip, owner, domain.ListThingsToDo, "TeamLab Planets")
	require.False(t, item.Completed)

	item.Completed = true
	got, err := r.Update(ctx, item)

	require.NoError(t, err)
	assert.True(t, got.Completed)
}

func TestListItemRepo_PinDeleteSetsNull(t *testing.T) {
	tx := beginTx(t)
	ctx := context.Background()
	r := repo.NewListItemRepo(tx)
	owner := createUser(t, tx, "owner@example.com")
	trip := createTrip(t, tx, owner)

	pin, err := repo.NewPinRepo(tx).Create(ctx, pinFixture(trip, owner))
	require.NoError(t, err)

	item, err := r.Create(ctx, domain.ListItem{
		TripID:    trip.ID,
		ListType:  domain.ListThingsToSee,
		Name:      "Senso-ji",
		PinID:     &pin.ID,
		CreatedBy: owner.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, item.PinID)

	require.NoError(t, repo.NewPinRepo(tx).Delete(ctx, trip.ID, pin.ID))

	got, err := r.GetByID(ctx, trip.ID, item.ID)
	require.NoError(t, err)
	assert.Nil(t, got.PinID, "a deleted pin unlinks, the checklist entry survives")
}

func TestListItemRepo_Delete_NotFound(t *testing.T) {
	tx := beginTx(t)
	owner := createUser(t, tx, "owner@example.com")
	trip := createTrip(t, tx, owner)

	err := repo.NewListItemRepo(tx).Delete(context.Background(), trip.ID, neverUsedID)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
