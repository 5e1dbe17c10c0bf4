package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/AnthonysMotion/mappr/backend/internal/domain"
)

func collabWith(role domain.Role, userID uuid.UUID) *domain.Collaborator {
	return &domain.Collaborator{ID: uuid.New(), UserID: userID, Role: role}
}

func TestRole_AtLeast(t *testing.T) {
	assert.True(t, domain.RoleOwner.AtLeast(domain.RoleEditor))
	assert.True(t, domain.RoleEditor.AtLeast(domain.RoleEditor))
	assert.False(t, domain.RoleViewer.AtLeast(domain.RoleEditor))
	assert.True(t, domain.RoleViewer.AtLeast(domain.RoleViewer))

	// Unknown roles grant nothing, not even viewer.
	assert.False(t, domain.Role("admin").AtLeast(domain.RoleViewer))
}

func TestRole_Valid(t *testing.T) {
	assert.True(t, domain.RoleOwner.Valid())
	assert.True(t, domain.RoleEditor.Valid())
	assert.True(t, domain.RoleViewer.Valid())
	assert.False(t, domain.Role("").Valid())
	assert.False(t, domain.Role("superuser").Valid())
}

func TestCanEdit_Creator_NoCollaboratorRow(t *testing.T) {
	creator := uuid.New()
	trip := domain.Trip{ID: uuid.New(), CreatedBy: creator}

	// The creator can edit even with no collaborator record at all.
	assert.True(t, domain.CanEdit(trip, creator, nil))
}

func TestCanEdit_Creator_WithViewerRow(t *testing.T) {
	creator := uuid.New()
	trip := domain.Trip{ID: uuid.New(), CreatedBy: creator}

	// Creator status wins regardless of what role the row carries.
	assert.True(t, domain.CanEdit(trip, creator, collabWith(domain.RoleViewer, creator)))
}

func TestCanEdit_EditorAndOwnerRoles(t *testing.T) {
	trip := domain.Trip{ID: uuid.New(), CreatedBy: uuid.New()}
	user := uuid.New()

	assert.True(t, domain.CanEdit(trip, user, collabWith(domain.RoleEditor, user)))
	assert.True(t, domain.CanEdit(trip, user, collabWith(domain.RoleOwner, user)))
}

func TestCanEdit_ViewerRole_False(t *testing.T) {
	trip := domain.Trip{ID: uuid.New(), CreatedBy: uuid.New()}
	user := uuid.New()

	assert.False(t, domain.CanEdit(trip, user, collabWith(domain.RoleViewer, user)))
}

func TestCanEdit_NoRow_False(t *testing.T) {
	trip := domain.Trip{ID: uuid.New(), CreatedBy: uuid.New()}

	assert.False(t, domain.CanEdit(trip, uuid.New(), nil))
}

func TestCanView_AnyRole(t *testing.T) {
	trip := domain.Trip{ID: uuid.New(), CreatedBy: uuid.New()}
	user := uuid.New()

	assert.True(t, domain.CanView(trip, user, collabWith(domain.RoleViewer, user)))
	assert.True(t, domain.CanView(trip, user, collabWith(domain.RoleEditor, user)))
	assert.True(t, domain.CanView(trip, user, collabWith(domain.RoleOwner, user)))
}

func TestCanView_Creator_NoRow(t *testing.T) {
	creator := uuid.New()
	trip := domain.Trip{ID: uuid.New(), CreatedBy: creator}

	assert.True(t, domain.CanView(trip, creator, nil))
}

func TestCanView_Stranger_False(t *testing.T) {
	trip := domain.Trip{ID: uuid.New(), CreatedBy: uuid.New()}

	assert.False(t, domain.CanView(trip, uuid.New(), nil))
}
