package domain

// Screen paths the gate redirects to.
const (
	PathLogin              = "/login"
	PathSuperLogin         = "/super-login"
	PathDriverDashboard    = "/driver-portal/dashboard"
	PathFinanceDashboard   = "/finance-portal/dashboard"
	PathFoodDashboard      = "/food-portal/dashboard"
	PathTransportDashboard = "/transport-portal/dashboard"
)

// LoginPathFor returns the role-specific login screen used by portal links.
func LoginPathFor(role Role) string {
	switch role {
	case RoleTeacher:
		return "/teacher-login"
	case RoleStudent:
		return "/student-login"
	case RoleDriver:
		return "/driver-login"
	case RoleStaff, RoleAccountant:
		return "/finance-login"
	case RoleFoodManager:
		return "/food-login"
	case RoleTransportManager:
		return "/transport-login"
	case RoleAdmin, RoleUnknown:
		return PathLogin
	}
	return PathLogin
}
