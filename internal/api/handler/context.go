package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/edusaas/portal-gate/internal/api/middleware"
	"github.com/edusaas/portal-gate/internal/core/ports"
)

// currentSession returns the session the Session middleware loaded. Its
// absence means the route was registered without that middleware.
func currentSession(c echo.Context) (ports.Session, error) {
	sess, ok := middleware.SessionFrom(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}
	return sess, nil
}
