package rbac

// Permissions guarding portal operations.
const (
	PermissionProposeChange     = "employer:propose"
	PermissionConfirmProfile    = "employer:confirm"
	PermissionViewApplicants    = "employer:applicants"
	PermissionManageCareers     = "career:manage"
	PermissionApproveChange     = "moderation:approve"
	PermissionManageEmployers   = "employer:manage"
	PermissionViewInbox         = "inbox:view"
	PermissionViewOwnSubmission = "application:view_own"
	PermissionSubmitApplication = "application:submit"
)

// Roles carried in the capability token.
const (
	RoleAlumni   = "alumni"
	RoleEmployer = "employer"
	RoleAdmin    = "admin"
)

var rolePermissions = map[string][]string{
	RoleAlumni: {
		PermissionViewOwnSubmission,
		PermissionSubmitApplication,
	},
	RoleEmployer: {
		PermissionProposeChange,
		PermissionConfirmProfile,
		PermissionViewApplicants,
		PermissionManageCareers,
	},
	RoleAdmin: {
		PermissionApproveChange,
		PermissionManageEmployers,
		PermissionManageCareers,
		PermissionViewInbox,
	},
}

// HasPermission reports whether a role holds the given permission.
func HasPermission(role string, permission string) bool {
	permissions, ok := rolePermissions[role]
	if !ok {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// CheckPermission returns an error instead of a boolean, for handler use.
func CheckPermission(role string, permission string) error {
	if !HasPermission(role, permission) {
		return &PermissionDeniedError{
			Role:       role,
			Permission: permission,
		}
	}
	return nil
}

type PermissionDeniedError struct {
	Role       string
	Permission string
}

func (e *PermissionDeniedError) Error() string {
	return "insufficient permissions"
}
