package guard

import (
	"net/url"

	"github.com/edusaas/portal-gate/internal/core/domain"
)

// AdminArea admits superusers and admins. Other principals are sent to their
// own portal; a principal with no landing route is logged out.
type AdminArea struct{}

func (AdminArea) Name() string { return "admin_area" }

func (AdminArea) Decide(s Snapshot) domain.Decision {
	p := s.Principal
	if p == nil {
		return domain.Redirect(domain.PathLogin, domain.ErrAuthAbsent)
	}
	if p.IsAdminArea() {
		return domain.Allow()
	}
	if target, ok := LandingPath(p); ok {
		return domain.Redirect(target, nil)
	}
	return domain.ForcedLogout(domain.PathLogin)
}

// LandingPath returns the portal a non-admin principal belongs to. Rules are
// checked in priority order; ok is false when no rule applies, including
// when the matching rule's id is missing.
func LandingPath(p *domain.Principal) (string, bool) {
	if p == nil {
		return "", false
	}
	switch p.Role {
	case domain.RoleTeacher:
		if p.TeacherID != "" {
			return "/teacher/" + url.PathEscape(p.TeacherID), true
		}
	case domain.RoleStudent:
		if p.StudentID != "" {
			return "/student/" + url.PathEscape(p.StudentID), true
		}
	case domain.RoleDriver:
		return domain.PathDriverDashboard, true
	case domain.RoleStaff, domain.RoleAccountant:
		return domain.PathFinanceDashboard, true
	case domain.RoleFoodManager:
		return domain.PathFoodDashboard, true
	case domain.RoleTransportManager:
		return domain.PathTransportDashboard, true
	case domain.RoleAdmin, domain.RoleUnknown:
		// admins never reach the table; unknown roles have no portal.
	}
	return "", false
}
