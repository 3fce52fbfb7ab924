package middleware

import (
	"context"
	"encoding/json"

	"github.com/edusaas/portal-gate/internal/core/domain"
	"github.com/edusaas/portal-gate/internal/core/ports"
)

type stubSession struct {
	id        string
	principal *domain.Principal
}

func (s *stubSession) ID() string { return s.id }
func (s *stubSession) Navigate(context.Context, string) (*ports.NavigationResult, error) {
	return nil, nil
}
func (s *stubSession) Principal(context.Context) (*domain.Principal, bool) {
	return s.principal, s.principal != nil
}
func (s *stubSession) Login(_ context.Context, p *domain.Principal) error {
	s.principal = p
	return nil
}
func (s *stubSession) UpdateProfile(context.Context, map[string]json.RawMessage) (*domain.Principal, error) {
	return s.principal, nil
}
func (s *stubSession) Logout(context.Context) error {
	s.principal = nil
	return nil
}
func (s *stubSession) Tenant(context.Context) domain.EntitlementState {
	return domain.EntitlementState{}
}
func (s *stubSession) RefreshTenant(context.Context) domain.EntitlementState {
	return domain.EntitlementState{}
}
func (s *stubSession) Theme(context.Context) (string, error)  { return "", nil }
func (s *stubSession) SetTheme(context.Context, string) error { return nil }

type stubSessions struct {
	sessions map[string]*stubSession
}

func (s *stubSessions) Open(context.Context) (string, string, error) { return "", "", nil }

func (s *stubSessions) Session(_ context.Context, id string) (ports.Session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return sess, nil
}
