package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/edusaas/portal-gate/internal/core/domain"
	"github.com/edusaas/portal-gate/internal/core/ports"
)

const maxPrincipalBytes = 64 << 10

// SessionHandler serves session lifecycle, principal and theme endpoints.
type SessionHandler struct {
	sessions ports.SessionService
	tokenTTL time.Duration
}

func NewSessionHandler(sessions ports.SessionService, tokenTTL time.Duration) *SessionHandler {
	return &SessionHandler{sessions: sessions, tokenTTL: tokenTTL}
}

// Open handles POST /v1/sessions.
//
// @Summary      Open a gate session
// @Tags         session
// @Produce      json
// @Success      201  {object}  sessionResponse
// @Failure      500  {object}  errorResponse
// @Router       /v1/sessions [post]
func (h *SessionHandler) Open(c echo.Context) error {
	token, id, err := h.sessions.Open(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, sessionResponse{
		Token:     token,
		SessionID: id,
		ExpiresIn: int64(h.tokenTTL.Seconds()),
	})
}

// GetPrincipal handles GET /v1/session/principal.
//
// @Summary      Current principal
// @Tags         session
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Principal
// @Failure      401  {object}  errorResponse
// @Router       /v1/session/principal [get]
func (h *SessionHandler) GetPrincipal(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	p, ok := sess.Principal(c.Request().Context())
	if !ok {
		return domain.ErrAuthAbsent
	}
	return c.JSON(http.StatusOK, p)
}

// PutPrincipal handles PUT /v1/session/principal with the user record a
// successful backend login returned.
//
// @Summary      Store the logged-in principal
// @Tags         session
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      domain.Principal  true  "Principal record"
// @Success      200   {object}  domain.Principal
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/session/principal [put]
func (h *SessionHandler) PutPrincipal(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	raw, err := io.ReadAll(io.LimitReader(c.Request().Body, maxPrincipalBytes))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	p, err := domain.DecodePrincipal(raw)
	if err != nil {
		return err
	}
	if err := sess.Login(c.Request().Context(), p); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// PatchPrincipal handles PATCH /v1/session/principal. Top-level keys replace
// the stored ones.
//
// @Summary      Update the stored principal
// @Tags         session
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      object  true  "Fields to replace"
// @Success      200   {object}  domain.Principal
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/session/principal [patch]
func (h *SessionHandler) PatchPrincipal(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	var patch map[string]json.RawMessage
	if err := json.NewDecoder(io.LimitReader(c.Request().Body, maxPrincipalBytes)).Decode(&patch); err != nil || patch == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	p, err := sess.UpdateProfile(c.Request().Context(), patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// DeletePrincipal handles DELETE /v1/session/principal (logout).
//
// @Summary      Log out
// @Tags         session
// @Security     BearerAuth
// @Success      204
// @Router       /v1/session/principal [delete]
func (h *SessionHandler) DeletePrincipal(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	if err := sess.Logout(c.Request().Context()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// GetTheme handles GET /v1/session/theme.
//
// @Summary      Display theme
// @Tags         session
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  themeResponse
// @Router       /v1/session/theme [get]
func (h *SessionHandler) GetTheme(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	theme, err := sess.Theme(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, themeResponse{Theme: theme})
}

// PutTheme handles PUT /v1/session/theme.
//
// @Summary      Set display theme
// @Tags         session
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      themeRequest  true  "Theme"
// @Success      200   {object}  themeResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/session/theme [put]
func (h *SessionHandler) PutTheme(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	var req themeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	if err := sess.SetTheme(c.Request().Context(), req.Theme); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, themeResponse(req))
}
