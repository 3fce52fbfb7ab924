package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/edusaas/portal-gate/internal/api/middleware"
	"github.com/edusaas/portal-gate/internal/core/domain"
	"github.com/edusaas/portal-gate/internal/core/ports"
)

type stubSession struct {
	principal  *domain.Principal
	theme      string
	tenant     domain.EntitlementState
	navigateFn func(ctx context.Context, target string) (*ports.NavigationResult, error)
	updateFn   func(ctx context.Context, patch map[string]json.RawMessage) (*domain.Principal, error)
}

func (s *stubSession) ID() string { return "s1" }
func (s *stubSession) Navigate(ctx context.Context, target string) (*ports.NavigationResult, error) {
	return s.navigateFn(ctx, target)
}
func (s *stubSession) Principal(context.Context) (*domain.Principal, bool) {
	return s.principal, s.principal != nil
}
func (s *stubSession) Login(_ context.Context, p *domain.Principal) error {
	s.principal = p
	return nil
}
func (s *stubSession) UpdateProfile(ctx context.Context, patch map[string]json.RawMessage) (*domain.Principal, error) {
	return s.updateFn(ctx, patch)
}
func (s *stubSession) Logout(context.Context) error {
	s.principal = nil
	return nil
}
func (s *stubSession) Tenant(context.Context) domain.EntitlementState        { return s.tenant }
func (s *stubSession) RefreshTenant(context.Context) domain.EntitlementState { return s.tenant }
func (s *stubSession) Theme(context.Context) (string, error)                 { return s.theme, nil }
func (s *stubSession) SetTheme(_ context.Context, theme string) error {
	s.theme = theme
	return nil
}

type stubSessions struct {
	openFn func(ctx context.Context) (string, string, error)
}

func (s *stubSessions) Open(ctx context.Context) (string, string, error) { return s.openFn(ctx) }
func (s *stubSessions) Session(context.Context, string) (ports.Session, error) {
	return nil, domain.ErrSessionNotFound
}

type stubStatus struct {
	state     domain.StatusState
	refreshed bool
}

func (s *stubStatus) Snapshot() domain.StatusState { return s.state }
func (s *stubStatus) Refresh(context.Context) domain.StatusState {
	s.refreshed = true
	return s.state
}

// newContext builds an echo context carrying sess the way the Session
// middleware would.
func newContext(method, target, body string, sess ports.Session) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, nil)
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if sess != nil {
		c.Set(middleware.ContextSession, sess)
	}
	return c, rec
}
