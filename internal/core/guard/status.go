package guard

import "github.com/edusaas/portal-gate/internal/core/domain"

// StatusGate wraps the whole application. It is evaluated once per
// navigation, before any route guard.
type StatusGate struct{}

func (StatusGate) Name() string { return "status" }

// Decide never blocks on the status fetch. During maintenance only
// superusers get through, so an operator can always switch it back off.
func (StatusGate) Decide(s Snapshot) domain.Decision {
	if s.Status.Loading() {
		return domain.Allow()
	}
	if !s.Status.Status.MaintenanceMode {
		return domain.Allow()
	}
	if s.Principal != nil && s.Principal.IsSuperuser {
		return domain.Allow()
	}
	return domain.Maintenance()
}
