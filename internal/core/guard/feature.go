package guard

import "github.com/edusaas/portal-gate/internal/core/domain"

// Feature gates a subtree behind a plan entitlement.
type Feature struct {
	Code    domain.Feature
	MinPlan domain.Plan
}

// RequireFeature builds a Feature guard labelled with the feature's minimum plan.
func RequireFeature(code domain.Feature) Feature {
	return Feature{Code: code, MinPlan: domain.MinimumPlan(code)}
}

func (f Feature) Name() string { return "feature:" + string(f.Code) }

// Decide waits while entitlements load, then allows members and renders an
// upsell for everyone else. The upsell is terminal for the subtree.
func (f Feature) Decide(s Snapshot) domain.Decision {
	has, err := s.Entitlements.Contains(f.Code)
	if err != nil {
		return domain.Pending()
	}
	if has {
		return domain.Allow()
	}
	return domain.Upsell(f.Code, f.MinPlan)
}
