package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/edusaas/portal-gate/internal/core/domain"
	"github.com/edusaas/portal-gate/internal/core/ports"
)

// GateHandler serves navigation decisions and the provider snapshots they
// are based on.
type GateHandler struct {
	status ports.StatusService
}

func NewGateHandler(status ports.StatusService) *GateHandler {
	return &GateHandler{status: status}
}

// Navigate handles GET /v1/navigate?to=<path>.
//
// @Summary      Evaluate a navigation
// @Description  Runs the status gate and the route's guard chain for the
// @Description  session's principal and tenant, applying forced logouts.
// @Tags         gate
// @Produce      json
// @Security     BearerAuth
// @Param        to   query     string  true  "Target path with optional query, e.g. /finance?portal=acme"
// @Success      200  {object}  navigationResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/navigate [get]
func (h *GateHandler) Navigate(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	var q navigateQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}
	if err := c.Validate(&q); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	res, err := sess.Navigate(c.Request().Context(), q.To)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toNavigationResponse(res))
}

// Status handles GET /v1/status.
//
// @Summary      Operational status
// @Tags         gate
// @Produce      json
// @Success      200  {object}  statusResponse
// @Router       /v1/status [get]
func (h *GateHandler) Status(c echo.Context) error {
	return c.JSON(http.StatusOK, toStatusResponse(h.status.Snapshot()))
}

// RefreshStatus handles POST /v1/status/refresh.
//
// @Summary      Re-fetch operational status
// @Tags         gate
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  statusResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/status/refresh [post]
func (h *GateHandler) RefreshStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, toStatusResponse(h.status.Refresh(c.Request().Context())))
}

// Tenant handles GET /v1/tenant.
//
// @Summary      Current tenant and its entitlements
// @Tags         gate
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  tenantResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/tenant [get]
func (h *GateHandler) Tenant(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	return tenantJSON(c, sess.Tenant(c.Request().Context()))
}

// RefreshTenant handles POST /v1/tenant/refresh.
//
// @Summary      Re-fetch the tenant configuration
// @Tags         gate
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  tenantResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/tenant/refresh [post]
func (h *GateHandler) RefreshTenant(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	return tenantJSON(c, sess.RefreshTenant(c.Request().Context()))
}

func tenantJSON(c echo.Context, state domain.EntitlementState) error {
	if state.Load == domain.LoadFailed && errors.Is(state.Err, domain.ErrTenantUnresolved) {
		return domain.ErrTenantUnresolved
	}
	return c.JSON(http.StatusOK, toTenantResponse(state))
}
