package handler

import "github.com/edusaas/portal-gate/internal/core/domain"

type navigateQuery struct {
	To string `query:"to" validate:"required,apppath,max=2048"`
}

type themeRequest struct {
	Theme string `json:"theme" validate:"required,oneof=light dark system"`
}

type sessionResponse struct {
	Token     string `json:"token"`
	SessionID string `json:"session_id"`
	ExpiresIn int64  `json:"expires_in"`
}

type themeResponse struct {
	Theme string `json:"theme"`
}

type decisionResponse struct {
	Kind           domain.DecisionKind `json:"kind"`
	Target         string              `json:"target,omitempty"`
	ClearPrincipal bool                `json:"clear_principal,omitempty"`
	Feature        domain.Feature      `json:"feature,omitempty"`
	FeatureName    string              `json:"feature_name,omitempty"`
	MinPlan        domain.Plan         `json:"min_plan,omitempty"`
	Reason         string              `json:"reason,omitempty"`
}

type navigationResponse struct {
	Path      string            `json:"path"`
	Route     string            `json:"route,omitempty"`
	Screen    string            `json:"screen"`
	Params    map[string]string `json:"params,omitempty"`
	Decision  decisionResponse  `json:"decision"`
	DecidedBy string            `json:"decided_by,omitempty"`
	Slug      string            `json:"slug,omitempty"`
}

type statusResponse struct {
	State            domain.LoadState `json:"state"`
	MaintenanceMode  bool             `json:"maintenance_mode"`
	RegistrationOpen bool             `json:"registration_open"`
	Pricing          domain.Pricing   `json:"pricing"`
	Error            string           `json:"error,omitempty"`
}

type lockedFeature struct {
	Code    domain.Feature `json:"code"`
	Name    string         `json:"name"`
	MinPlan domain.Plan    `json:"min_plan"`
}

type tenantResponse struct {
	State      domain.LoadState `json:"state"`
	Slug       string           `json:"slug"`
	SchoolName string           `json:"school_name,omitempty"`
	Plan       string           `json:"plan,omitempty"`
	Pricing    domain.Pricing   `json:"pricing"`
	Features   []domain.Feature `json:"features"`
	Locked     []lockedFeature  `json:"locked"`
	Error      string           `json:"error,omitempty"`
}

// errorResponse documents the envelope rendered by the API error handler.
type errorResponse struct {
	Error string `json:"error"`
}
