package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/edusaas/portal-gate/internal/core/domain"
	"github.com/edusaas/portal-gate/internal/core/ports"
)

func TestGateHandler_NavigateUpsell(t *testing.T) {
	sess := &stubSession{navigateFn: func(_ context.Context, target string) (*ports.NavigationResult, error) {
		if target != "/finance?portal=acme" {
			t.Fatalf("unexpected target %q", target)
		}
		return &ports.NavigationResult{
			Path:      "/finance",
			Route:     "/finance",
			Screen:    "finance",
			DecidedBy: "feature:FINANCE_MANAGEMENT",
			Decision:  domain.Upsell(domain.FeatureFinanceManagement, domain.PlanStandard),
			Slug:      "acme",
		}, nil
	}}
	h := NewGateHandler(&stubStatus{})
	c, rec := newContext(http.MethodGet, "/v1/navigate?to=%2Ffinance%3Fportal%3Dacme", "", sess)

	if err := h.Navigate(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	d, _ := resp["decision"].(map[string]any)
	if d["kind"] != "upsell" || d["feature"] != "FINANCE_MANAGEMENT" || d["feature_name"] != "Finance Management" || d["min_plan"] != "Standard" {
		t.Fatalf("unexpected decision payload: %v", d)
	}
	if d["reason"] != domain.ErrFeatureDenied.Error() || resp["slug"] != "acme" {
		t.Fatalf("unexpected payload: %v", resp)
	}
}

func TestGateHandler_NavigateValidation(t *testing.T) {
	h := NewGateHandler(&stubStatus{})
	sess := &stubSession{navigateFn: func(context.Context, string) (*ports.NavigationResult, error) {
		t.Fatalf("should not navigate")
		return nil, nil
	}}

	for _, target := range []string{"/v1/navigate", "/v1/navigate?to=dashboard", "/v1/navigate?to=//evil.example/login"} {
		c, _ := newContext(http.MethodGet, target, "", sess)
		err := h.Navigate(c)
		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
			t.Fatalf("%s: expected 422, got %v", target, err)
		}
	}
}

func TestValidator_UsesWireNames(t *testing.T) {
	err := NewValidator().Validate(&navigateQuery{To: "dashboard"})
	if err == nil || !strings.HasPrefix(err.Error(), "to must be an in-app path") {
		t.Fatalf("unexpected validation error: %v", err)
	}
	if err := NewValidator().Validate(&themeRequest{Theme: "dark"}); err != nil {
		t.Fatalf("valid theme rejected: %v", err)
	}
}

func TestGateHandler_StatusAndRefresh(t *testing.T) {
	status := &stubStatus{state: domain.StatusState{Load: domain.LoadReady, Status: domain.DefaultOperationalStatus()}}
	h := NewGateHandler(status)

	c, rec := newContext(http.MethodGet, "/v1/status", "", nil)
	if err := h.Status(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["state"] != "ready" || resp["maintenance_mode"] != false || resp["registration_open"] != true {
		t.Fatalf("unexpected status payload: %v", resp)
	}

	c, _ = newContext(http.MethodPost, "/v1/status/refresh", "", nil)
	if err := h.RefreshStatus(c); err != nil || !status.refreshed {
		t.Fatalf("expected refresh, got err=%v refreshed=%v", err, status.refreshed)
	}
}

func TestGateHandler_TenantUnresolved(t *testing.T) {
	sess := &stubSession{tenant: domain.EntitlementState{Load: domain.LoadFailed, Err: domain.ErrTenantUnresolved}}
	h := NewGateHandler(&stubStatus{})
	c, _ := newContext(http.MethodGet, "/v1/tenant", "", sess)

	if err := h.Tenant(c); !errors.Is(err, domain.ErrTenantUnresolved) {
		t.Fatalf("expected ErrTenantUnresolved, got %v", err)
	}
}

func TestGateHandler_TenantSplitsFeatures(t *testing.T) {
	sess := &stubSession{tenant: domain.EntitlementState{
		Load: domain.LoadReady,
		Slug: "acme",
		Config: domain.TenantConfig{
			SchoolName: "Acme High",
			Plan:       "standard",
			Features:   []domain.Feature{domain.FeatureSchedule, domain.FeatureFinanceManagement},
		},
	}}
	h := NewGateHandler(&stubStatus{})
	c, rec := newContext(http.MethodGet, "/v1/tenant", "", sess)

	if err := h.Tenant(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp tenantResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Features) != 2 || len(resp.Locked) != len(domain.AllFeatures)-2 {
		t.Fatalf("unexpected split: %+v / %+v", resp.Features, resp.Locked)
	}
	for _, l := range resp.Locked {
		if l.Code == domain.FeatureMultiBranch && l.MinPlan != domain.PlanEnterprise {
			t.Fatalf("unexpected min plan for multi-branch: %s", l.MinPlan)
		}
	}
}

func TestGateHandler_TenantFetchFailureIsEmptySet(t *testing.T) {
	sess := &stubSession{tenant: domain.EntitlementState{Load: domain.LoadFailed, Slug: "", Err: domain.ErrEntitlementFetchFailed}}
	h := NewGateHandler(&stubStatus{})
	c, rec := newContext(http.MethodPost, "/v1/tenant/refresh", "", sess)

	if err := h.RefreshTenant(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp tenantResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if len(resp.Features) != 0 || resp.Error == "" {
		t.Fatalf("expected empty feature set with error, got %+v", resp)
	}
}
