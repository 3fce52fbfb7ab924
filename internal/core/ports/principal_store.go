package ports

import (
	"context"
	"encoding/json"

	"github.com/edusaas/portal-gate/internal/core/domain"
)

// PrincipalStore reads and writes the persisted principal of one session.
type PrincipalStore interface {
	// Get returns the principal, or ok=false when none is stored or the stored
	// record is malformed. It never fails.
	Get(ctx context.Context) (p *domain.Principal, ok bool)
	Set(ctx context.Context, p *domain.Principal) error
	Merge(ctx context.Context, patch map[string]json.RawMessage) (*domain.Principal, error)
	Clear(ctx context.Context) error
}
