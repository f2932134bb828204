package services

import "github.com/techagentng/hazardx/models"

// Action names a mutating operation for authorization purposes.
type Action string

const (
	ActionEditReport           Action = "report:edit"
	ActionDeleteReport         Action = "report:delete"
	ActionTransitionReport     Action = "report:transition"
	ActionDeleteComment        Action = "comment:delete"
	ActionTransitionRedemption Action = "redemption:transition"
	ActionManageStore          Action = "store:manage"
)

// CanActOn is the single authorization predicate evaluated before every
// mutating engine operation. ownerID is the id of the user owning the resource
// (zero when ownership does not apply). Admin-only actions ignore ownership;
// owner actions also pass for admins.
func CanActOn(actor *models.User, action Action, ownerID uint) bool {
	if actor == nil {
		return false
	}
	switch action {
	case ActionTransitionReport, ActionTransitionRedemption, ActionManageStore:
		return actor.IsAdmin
	case ActionEditReport, ActionDeleteReport, ActionDeleteComment:
		return actor.IsAdmin || actor.ID == ownerID
	}
	return false
}
