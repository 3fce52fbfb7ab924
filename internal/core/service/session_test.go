package service

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/edusaas/portal-gate/internal/core/domain"
	"github.com/edusaas/portal-gate/internal/core/ports"
)

func newMountedSession(t *testing.T, f *fixture, id string) *Session {
	t.Helper()
	s := NewSession(context.Background(), id, f.deps)
	waitSettled(t, s.entitlementsSettled())
	return s
}

func TestSession_UnroutablePrincipalIsLoggedOut(t *testing.T) {
	f := newFixture(t, readyStatus(false))
	s := newMountedSession(t, f, "s1")
	if err := s.Login(context.Background(), &domain.Principal{ID: "7", Role: domain.RoleTeacher}); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	res, err := s.Navigate(context.Background(), "/dashboard")
	if err != nil {
		t.Fatalf("Navigate returned error: %v", err)
	}
	if res.Decision.Kind != domain.DecisionRedirect || res.Decision.Target != domain.PathLogin {
		t.Fatalf("expected redirect to /login, got %+v", res.Decision)
	}
	if _, ok := s.Principal(context.Background()); ok {
		t.Fatalf("expected principal to be cleared")
	}
	if !slices.Contains(f.audit.kinds(), domain.AuditForcedLogout) {
		t.Fatalf("expected forced_logout audit, got %v", f.audit.kinds())
	}
}

func TestSession_TeacherRedirectedToLanding(t *testing.T) {
	f := newFixture(t, readyStatus(false))
	s := newMountedSession(t, f, "s1")
	_ = s.Login(context.Background(), &domain.Principal{ID: "7", Role: domain.RoleTeacher, TeacherID: "t1"})

	res, err := s.Navigate(context.Background(), "/students")
	if err != nil {
		t.Fatalf("Navigate returned error: %v", err)
	}
	if res.Decision.Target != "/teacher/t1" || res.Decision.ClearPrincipal {
		t.Fatalf("unexpected decision: %+v", res.Decision)
	}
	if _, ok := s.Principal(context.Background()); !ok {
		t.Fatalf("principal must survive a landing redirect")
	}
}

func TestSession_FeatureGateFollowsEntitlements(t *testing.T) {
	f := newFixture(t, readyStatus(false))
	s := newMountedSession(t, f, "s1")
	_ = s.Login(context.Background(), &domain.Principal{ID: "1", Role: domain.RoleAdmin})
	gate := make(chan struct{})
	f.configs.mu.Lock()
	f.configs.gate = gate
	f.configs.mu.Unlock()

	// No tenant is known yet, so the explicit slug triggers the first real fetch.
	res, err := s.Navigate(context.Background(), "/finance?portal=acme")
	if err != nil {
		t.Fatalf("Navigate returned error: %v", err)
	}
	if res.Decision.Kind != domain.DecisionPending || res.Slug != "acme" {
		t.Fatalf("expected pending while loading, got %+v slug=%q", res.Decision, res.Slug)
	}
	close(gate)
	waitSettled(t, s.entitlementsSettled())

	res, _ = s.Navigate(context.Background(), "/finance/invoices")
	if res.Decision.Kind != domain.DecisionUpsell || res.Decision.Feature != domain.FeatureFinanceManagement {
		t.Fatalf("expected upsell, got %+v", res.Decision)
	}
	if res.Decision.MinPlan != domain.PlanStandard {
		t.Fatalf("expected standard plan, got %s", res.Decision.MinPlan)
	}
	if !slices.Contains(f.audit.kinds(), domain.AuditFeatureDenied) {
		t.Fatalf("expected feature_denied audit, got %v", f.audit.kinds())
	}

	res, _ = s.Navigate(context.Background(), "/schedule")
	if !res.Decision.Allowed() {
		t.Fatalf("expected schedule to be allowed, got %+v", res.Decision)
	}
}

func TestSession_TenantSwitchNeedsRefresh(t *testing.T) {
	f := newFixture(t, readyStatus(false))
	s := newMountedSession(t, f, "s1")
	_ = s.Login(context.Background(), &domain.Principal{ID: "1", Role: domain.RoleAdmin})

	_, _ = s.Navigate(context.Background(), "/dashboard?portal=acme")
	waitSettled(t, s.entitlementsSettled())

	res, _ := s.Navigate(context.Background(), "/finance?portal=zen")
	if res.Decision.Kind != domain.DecisionUpsell {
		t.Fatalf("expected stale acme entitlements until refresh, got %+v", res.Decision)
	}
	if !slices.Contains(f.audit.kinds(), domain.AuditTenantSwitched) {
		t.Fatalf("expected tenant_switched audit, got %v", f.audit.kinds())
	}

	state := s.RefreshTenant(context.Background())
	if state.Slug != "zen" || state.Load != domain.LoadReady {
		t.Fatalf("unexpected refreshed state: %+v", state)
	}
	res, _ = s.Navigate(context.Background(), "/finance")
	if !res.Decision.Allowed() {
		t.Fatalf("expected finance after refresh, got %+v", res.Decision)
	}
}

func TestSession_PortalEntryPersistsSlug(t *testing.T) {
	f := newFixture(t, readyStatus(false))
	s := newMountedSession(t, f, "s1")

	res, err := s.Navigate(context.Background(), "/portal/zen/teacher")
	if err != nil {
		t.Fatalf("Navigate returned error: %v", err)
	}
	if res.Decision.Target != "/teacher-login" || res.Slug != "zen" {
		t.Fatalf("unexpected portal entry result: %+v slug=%q", res.Decision, res.Slug)
	}
	if v, _ := f.storage.raw("s1", ports.KeyTenantSlug); v != "zen" {
		t.Fatalf("expected zen persisted, got %q", v)
	}
	waitSettled(t, s.entitlementsSettled())
	if state := s.Tenant(context.Background()); state.Slug != "zen" {
		t.Fatalf("expected zen entitlements, got %+v", state)
	}
}

func TestSession_MaintenanceBlocksNonSuperusers(t *testing.T) {
	f := newFixture(t, readyStatus(true))
	s := newMountedSession(t, f, "s1")
	_ = s.Login(context.Background(), &domain.Principal{ID: "1", Role: domain.RoleAdmin})

	res, _ := s.Navigate(context.Background(), "/dashboard")
	if res.Decision.Kind != domain.DecisionMaintenance || res.DecidedBy != "status" {
		t.Fatalf("expected maintenance from status gate, got %+v by %q", res.Decision, res.DecidedBy)
	}
	if !slices.Contains(f.audit.kinds(), domain.AuditMaintenanceBlocked) {
		t.Fatalf("expected maintenance_blocked audit, got %v", f.audit.kinds())
	}

	_ = s.Login(context.Background(), &domain.Principal{ID: "1", Role: domain.RoleAdmin, IsSuperuser: true})
	if res, _ := s.Navigate(context.Background(), "/dashboard"); !res.Decision.Allowed() {
		t.Fatalf("superuser must bypass maintenance, got %+v", res.Decision)
	}
}

func TestSession_InvalidTarget(t *testing.T) {
	f := newFixture(t, readyStatus(false))
	s := newMountedSession(t, f, "s1")

	for _, target := range []string{"", "%zz", "   "} {
		if _, err := s.Navigate(context.Background(), target); !errors.Is(err, domain.ErrInvalidTarget) {
			t.Fatalf("target %q: expected ErrInvalidTarget, got %v", target, err)
		}
	}
}

func TestSession_Theme(t *testing.T) {
	f := newFixture(t, readyStatus(false))
	s := newMountedSession(t, f, "s1")

	if theme, err := s.Theme(context.Background()); err != nil || theme != "" {
		t.Fatalf("expected empty theme, got %q (%v)", theme, err)
	}
	if err := s.SetTheme(context.Background(), "dark"); err != nil {
		t.Fatalf("SetTheme returned error: %v", err)
	}
	if theme, _ := s.Theme(context.Background()); theme != "dark" {
		t.Fatalf("expected dark, got %q", theme)
	}
}

func TestSessionService_OpenSignsSessionID(t *testing.T) {
	f := newFixture(t, readyStatus(false))
	svc := NewSessionService(f.deps, "secret", time.Hour)

	token, id, err := svc.Open(context.Background())
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}

	claims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	}); err != nil {
		t.Fatalf("token did not verify: %v", err)
	}
	if claims["sid"] != id {
		t.Fatalf("expected sid %q, got %v", id, claims["sid"])
	}

	a, _ := svc.Session(context.Background(), id)
	b, _ := svc.Session(context.Background(), id)
	if a != b {
		t.Fatalf("expected the same live session")
	}
	if _, err := svc.Session(context.Background(), ""); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSessionService_EvictsIdleSessions(t *testing.T) {
	f := newFixture(t, readyStatus(false))
	svc := NewSessionService(f.deps, "secret", time.Minute)

	_, id, _ := svc.Open(context.Background())
	if n := svc.Evict(context.Background(), time.Now()); n != 0 {
		t.Fatalf("fresh session must not be evicted, got %d", n)
	}
	if n := svc.Evict(context.Background(), time.Now().Add(2*time.Minute)); n != 1 {
		t.Fatalf("expected 1 eviction, got %d", n)
	}
	if !slices.Contains(f.storage.deleted, id) {
		t.Fatalf("expected persisted state of %s to be deleted", id)
	}
}
