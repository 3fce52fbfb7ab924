// Package guard holds the pure decision functions that gate access to screens.
//
// A Guard looks at one Snapshot and answers Allow, Redirect, Pending, Upsell or
// Maintenance. Guards never block, never touch storage and never panic; side
// effects requested by a decision (clearing the principal) are applied by the
// caller.
package guard

import "github.com/edusaas/portal-gate/internal/core/domain"

// Snapshot is the consistent view every guard in one evaluation observes.
type Snapshot struct {
	Principal    *domain.Principal
	Entitlements domain.EntitlementState
	Status       domain.StatusState
}

// Guard gates a subtree of screens.
type Guard interface {
	Name() string
	Decide(s Snapshot) domain.Decision
}

// Chain is an ordered list of guards, outermost first.
type Chain []Guard

// Evaluate folds the chain: the first non-allow decision wins and inner
// guards are not consulted. It returns the deciding guard's name, or "" when
// every guard allowed.
func (c Chain) Evaluate(s Snapshot) (domain.Decision, string) {
	for _, g := range c {
		if d := g.Decide(s); !d.Allowed() {
			return d, g.Name()
		}
	}
	return domain.Allow(), ""
}
