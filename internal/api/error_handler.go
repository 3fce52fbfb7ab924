package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/edusaas/portal-gate/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler maps gate errors to status codes and renders them as
// {"error": "<message>"}. Unknown errors are logged and reported as 500
// without their cause.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, "invalid session"
	case errors.Is(err, domain.ErrAuthAbsent):
		return http.StatusUnauthorized, "no principal in session"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrInvalidPrincipal):
		return http.StatusUnprocessableEntity, "invalid principal record"
	case errors.Is(err, domain.ErrInvalidTarget):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrTenantUnresolved):
		return http.StatusNotFound, "no tenant resolved for this session"
	case errors.Is(err, domain.ErrStatusFetchFailed), errors.Is(err, domain.ErrEntitlementFetchFailed):
		return http.StatusBadGateway, "backend unavailable"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
