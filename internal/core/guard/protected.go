package guard

import "github.com/edusaas/portal-gate/internal/core/domain"

// Protected admits any authenticated principal.
type Protected struct{}

func (Protected) Name() string { return "protected" }

func (Protected) Decide(s Snapshot) domain.Decision {
	if s.Principal == nil {
		return domain.Redirect(domain.PathLogin, domain.ErrAuthAbsent)
	}
	return domain.Allow()
}
