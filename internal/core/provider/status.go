package provider

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/edusaas/portal-gate/internal/core/domain"
	"github.com/edusaas/portal-gate/internal/core/ports"
)

// StatusProvider exposes process-wide operational status. Failed fetches keep
// the documented defaults (fail-open).
type StatusProvider struct {
	async *Async[domain.OperationalStatus]
}

var _ ports.StatusService = (*StatusProvider)(nil)

func NewStatusProvider(src ports.StatusSource, log zerolog.Logger) *StatusProvider {
	fetch := func(ctx context.Context) (domain.OperationalStatus, error) {
		st, err := src.FetchStatus(ctx)
		if err != nil {
			return domain.OperationalStatus{}, fmt.Errorf("%w: %v", domain.ErrStatusFetchFailed, err)
		}
		return st, nil
	}
	return &StatusProvider{
		async: NewAsync("status", domain.DefaultOperationalStatus(), fetch, log),
	}
}

// Mount starts the single startup fetch.
func (p *StatusProvider) Mount(ctx context.Context) { p.async.Mount(ctx) }

func (p *StatusProvider) Snapshot() domain.StatusState {
	data, state, err := p.async.State()
	return domain.StatusState{Load: state, Status: data, Err: err}
}

// Refresh re-fetches status, e.g. after an operator toggles maintenance.
func (p *StatusProvider) Refresh(ctx context.Context) domain.StatusState {
	data, state, err := p.async.Refresh(ctx)
	return domain.StatusState{Load: state, Status: data, Err: err}
}

// Settled is closed once the startup fetch has finished.
func (p *StatusProvider) Settled() <-chan struct{} { return p.async.Settled() }
