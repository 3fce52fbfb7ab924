package routing

import (
	"github.com/edusaas/portal-gate/internal/core/domain"
	"github.com/edusaas/portal-gate/internal/core/guard"
)

// Route binds a path pattern to a screen and the guards around it,
// outermost first. Patterns use echo syntax (":param", trailing "*").
type Route struct {
	Pattern string
	Screen  string
	Guards  guard.Chain
	// PortalEntry marks /portal/:slug/:role, which resolves the tenant and
	// forwards to the role's login screen.
	PortalEntry bool
}

// NotFound is rendered for paths no route matches. It is public.
var NotFound = Route{Screen: "not_found"}

func public(pattern, screen string) Route {
	return Route{Pattern: pattern, Screen: screen}
}

func admin(pattern, screen string, inner ...guard.Guard) Route {
	return Route{Pattern: pattern, Screen: screen, Guards: append(guard.Chain{guard.AdminArea{}}, inner...)}
}

func portal(pattern, screen string, inner ...guard.Guard) Route {
	return Route{Pattern: pattern, Screen: screen, Guards: append(guard.Chain{guard.Protected{}}, inner...)}
}

// subtree registers both the section root and everything below it.
func subtree(build func(pattern, screen string, inner ...guard.Guard) Route, root, screen string, inner ...guard.Guard) []Route {
	return []Route{build(root, screen, inner...), build(root+"/*", screen, inner...)}
}

// DefaultRoutes is the navigation surface of the school portal.
func DefaultRoutes() []Route {
	routes := []Route{
		public("/", "home"),
		public(domain.PathLogin, "login"),
		public(domain.PathSuperLogin, "super_login"),
		public("/signup", "signup"),
		public("/pricing", "pricing"),
		public("/legal/:type", "legal"),
		public("/driver-login", "driver_login"),
		public("/teacher-login", "teacher_login"),
		public("/finance-login", "finance_login"),
		public("/food-login", "food_login"),
		public("/transport-login", "transport_login"),
		public("/student-login", "student_login"),
		{Pattern: "/portal/:slug/:role", Screen: "portal_entry", PortalEntry: true},

		admin("/dashboard", "admin_dashboard"),
		admin("/students", "students"),
		admin("/students/:id", "student_detail"),
		admin("/teachers", "teachers"),
		admin("/teachers/:id", "teacher_detail"),
		admin("/classes", "classes"),
		admin("/attendance", "attendance"),
		admin("/reports", "reports"),
		admin("/settings", "settings"),
		admin("/profile", "profile"),
		admin("/branches", "branches", guard.RequireFeature(domain.FeatureMultiBranch)),
	}

	routes = append(routes, subtree(admin, "/finance", "finance", guard.RequireFeature(domain.FeatureFinanceManagement))...)
	routes = append(routes, subtree(admin, "/schedule", "schedule", guard.RequireFeature(domain.FeatureSchedule))...)
	routes = append(routes, subtree(admin, "/academics", "academics", guard.RequireFeature(domain.FeatureAcademicManagement))...)
	routes = append(routes, subtree(admin, "/hr", "hr", guard.RequireFeature(domain.FeatureHRManagement))...)
	routes = append(routes, subtree(admin, "/communication", "communication", guard.RequireFeature(domain.FeatureCommunication))...)
	routes = append(routes, subtree(admin, "/ultimate-control-center", "ultimate_control_center", guard.StrictSuperuser{})...)

	routes = append(routes, subtree(portal, "/finance-portal", "finance_portal", guard.RequireFeature(domain.FeatureFinanceManagement))...)
	routes = append(routes, subtree(portal, "/food-portal", "food_portal", guard.RequireFeature(domain.FeatureFoodManagement))...)
	routes = append(routes, subtree(portal, "/transport-portal", "transport_portal", guard.RequireFeature(domain.FeatureTransportManagement))...)
	routes = append(routes, subtree(portal, "/driver-portal", "driver_portal")...)
	routes = append(routes, subtree(portal, "/teacher/:id", "teacher_portal")...)
	routes = append(routes, portal("/student/:id", "student_portal"))

	return routes
}
