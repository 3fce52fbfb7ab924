package guard

import "github.com/edusaas/portal-gate/internal/core/domain"

// StrictSuperuser protects the ultimate control console. The admin role alone
// is not enough.
type StrictSuperuser struct{}

func (StrictSuperuser) Name() string { return "strict_superuser" }

func (StrictSuperuser) Decide(s Snapshot) domain.Decision {
	if s.Principal == nil {
		return domain.Redirect(domain.PathSuperLogin, domain.ErrAuthAbsent)
	}
	if !s.Principal.IsSuperuser {
		return domain.Redirect(domain.PathSuperLogin, domain.ErrForbidden)
	}
	return domain.Allow()
}
