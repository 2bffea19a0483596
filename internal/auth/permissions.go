package auth

// Roles
const (
	RoleAdmin       = "admin"
	RoleEditor      = "editor"
	RoleContributor = "contributor"
)

// Actions gated by the permission model
const (
	ActionPostCreate   = "post:create"
	ActionPostEdit     = "post:edit"
	ActionPostPublish  = "post:publish"
	ActionPostDelete   = "post:delete"
	ActionPostReview   = "post:review"
	ActionPostSchedule = "post:schedule"
	ActionPostView     = "post:view"

	ActionMediaUpload    = "media:upload"
	ActionMediaDelete    = "media:delete"
	ActionUserManage     = "user:manage"
	ActionSettingsManage = "settings:manage"
)

// rolePermissions enumerates each role's action set directly. The roles
// form a loose hierarchy (admin > editor > contributor) but nothing is
// inherited at runtime; every set is spelled out so the mapping stays a
// static, total function of (role, action).
var rolePermissions = map[string]map[string]bool{
	RoleContributor: {
		ActionPostCreate:  true,
		ActionPostEdit:    true,
		ActionPostReview:  true,
		ActionPostView:    true,
		ActionMediaUpload: true,
	},
	RoleEditor: {
		ActionPostCreate:   true,
		ActionPostEdit:     true,
		ActionPostReview:   true,
		ActionPostView:     true,
		ActionPostPublish:  true,
		ActionPostDelete:   true,
		ActionPostSchedule: true,
		ActionMediaUpload:  true,
		ActionMediaDelete:  true,
	},
	RoleAdmin: {
		ActionPostCreate:     true,
		ActionPostEdit:       true,
		ActionPostReview:     true,
		ActionPostView:       true,
		ActionPostPublish:    true,
		ActionPostDelete:     true,
		ActionPostSchedule:   true,
		ActionMediaUpload:    true,
		ActionMediaDelete:    true,
		ActionUserManage:     true,
		ActionSettingsManage: true,
	},
}

// Can reports whether a role may perform an action. It is pure and
// independent of data state; unknown roles have no permissions.
func Can(role, action string) bool {
	perms, ok := rolePermissions[role]
	if !ok {
		return false
	}
	return perms[action]
}

// BroadEdit reports whether a role may edit posts it does not own.
func BroadEdit(role string) bool {
	return role == RoleAdmin || role == RoleEditor
}
