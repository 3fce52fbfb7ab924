package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/edusaas/portal-gate/internal/core/domain"
)

// RBAC admits callers whose stored principal has one of allowedRoles.
// Superusers are always admitted.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}
	return requirePrincipal(func(p *domain.Principal) bool {
		if p.IsSuperuser {
			return true
		}
		_, ok := allowed[p.Role]
		return ok
	})
}

// Superuser admits only superusers.
func Superuser() echo.MiddlewareFunc {
	return requirePrincipal(func(p *domain.Principal) bool { return p.IsSuperuser })
}

func requirePrincipal(allow func(*domain.Principal) bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, ok := SessionFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing session")
			}
			p, ok := sess.Principal(c.Request().Context())
			if !ok {
				return domain.ErrAuthAbsent
			}
			if !allow(p) {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
