package auth

import (
	"database/sql"
	"testing"

	"taskboard-go/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCanAccessOwner(t *testing.T) {
	ws := models.Workspace{ID: 1, OwnerID: 10}

	assert.True(t, CanAccess(10, ws, ActionRead))
	assert.True(t, CanAccess(10, ws, ActionWrite))
	assert.True(t, CanAccess(10, ws, ActionDelete))

	assert.False(t, CanAccess(11, ws, ActionRead))
	assert.False(t, CanAccess(11, ws, ActionWrite))
	assert.False(t, CanAccess(11, ws, ActionDelete))
}

func TestCanAccessUnknownAction(t *testing.T) {
	ws := models.Workspace{ID: 1, OwnerID: 10}
	assert.False(t, CanAccess(10, ws, Action("share")))
}

func TestTransitiveOwnerResolvedUniformly(t *testing.T) {
	// OwnerID entity bersarang diisi repository dari rantai parent-nya
	entities := []Owned{
		models.Board{ID: 1, OwnerID: 10},
		models.List{ID: 1, OwnerID: 10},
		models.Card{ID: 1, OwnerID: 10},
		models.Project{ID: 1, OwnerID: 10},
		models.Task{ID: 1, OwnerID: 10},
	}
	for _, e := range entities {
		assert.True(t, CanAccess(10, e, ActionRead))
		assert.False(t, CanAccess(20, e, ActionRead))
	}
}

func TestAssignedToDoesNotGrantAccess(t *testing.T) {
	// Task di-assign ke user 20 tapi project-nya milik user 10
	task := models.Task{
		ID:         1,
		OwnerID:    10,
		AssignedTo: sql.NullInt64{Int64: 20, Valid: true},
	}
	assert.True(t, CanAccess(10, task, ActionWrite))
	assert.False(t, CanAccess(20, task, ActionWrite))
}
