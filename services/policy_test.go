package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/techagentng/hazardx/models"
)

func TestCanActOn(t *testing.T) {
	admin := &models.User{IsAdmin: true}
	admin.ID = 1
	owner := &models.User{}
	owner.ID = 2
	stranger := &models.User{}
	stranger.ID = 3

	tests := []struct {
		name    string
		actor   *models.User
		action  Action
		ownerID uint
		want    bool
	}{
		{"nil actor", nil, ActionEditReport, 2, false},
		{"owner edits own report", owner, ActionEditReport, 2, true},
		{"stranger edits someone else's report", stranger, ActionEditReport, 2, false},
		{"admin edits someone else's report", admin, ActionEditReport, 2, true},
		{"owner deletes own comment", owner, ActionDeleteComment, 2, true},
		{"stranger deletes someone else's comment", stranger, ActionDeleteComment, 2, false},
		{"owner cannot transition own report", owner, ActionTransitionReport, 2, false},
		{"admin transitions report", admin, ActionTransitionReport, 2, true},
		{"stranger transitions report", stranger, ActionTransitionReport, 2, false},
		{"non-admin transitions redemption", owner, ActionTransitionRedemption, 2, false},
		{"admin transitions redemption", admin, ActionTransitionRedemption, 0, true},
		{"non-admin manages store", stranger, ActionManageStore, 0, false},
		{"admin manages store", admin, ActionManageStore, 0, true},
		{"unknown action", admin, Action("report:archive"), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanActOn(tt.actor, tt.action, tt.ownerID))
		})
	}
}
