package handler

import (
	"github.com/edusaas/portal-gate/internal/core/domain"
	"github.com/edusaas/portal-gate/internal/core/ports"
)

func toNavigationResponse(r *ports.NavigationResult) navigationResponse {
	d := r.Decision
	resp := navigationResponse{
		Path:      r.Path,
		Route:     r.Route,
		Screen:    r.Screen,
		Params:    r.Params,
		DecidedBy: r.DecidedBy,
		Slug:      r.Slug,
		Decision: decisionResponse{
			Kind:           d.Kind,
			Target:         d.Target,
			ClearPrincipal: d.ClearPrincipal,
			Feature:        d.Feature,
			MinPlan:        d.MinPlan,
		},
	}
	if d.Feature != "" {
		resp.Decision.FeatureName = d.Feature.DisplayName()
	}
	if d.Reason != nil {
		resp.Decision.Reason = d.Reason.Error()
	}
	return resp
}

func toStatusResponse(s domain.StatusState) statusResponse {
	resp := statusResponse{
		State:            s.Load,
		MaintenanceMode:  s.Status.MaintenanceMode,
		RegistrationOpen: s.Status.RegistrationOpen,
		Pricing:          s.Status.Pricing,
	}
	if s.Err != nil {
		resp.Error = s.Err.Error()
	}
	return resp
}

func toTenantResponse(s domain.EntitlementState) tenantResponse {
	resp := tenantResponse{
		State:      s.Load,
		Slug:       s.Slug,
		SchoolName: s.Config.SchoolName,
		Plan:       s.Config.Plan,
		Pricing:    s.Config.Pricing,
		Features:   []domain.Feature{},
		Locked:     []lockedFeature{},
	}
	if s.Err != nil {
		resp.Error = s.Err.Error()
	}
	if s.Loading() {
		return resp
	}
	for _, f := range domain.AllFeatures {
		if s.Config.HasFeature(f) {
			resp.Features = append(resp.Features, f)
			continue
		}
		resp.Locked = append(resp.Locked, lockedFeature{Code: f, Name: f.DisplayName(), MinPlan: domain.MinimumPlan(f)})
	}
	return resp
}
