package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/edusaas/portal-gate/internal/core/domain"
	"github.com/edusaas/portal-gate/internal/core/ports"
)

// SlugSource yields the slug a fetch should be scoped to.
type SlugSource interface {
	Current(ctx context.Context) (string, bool)
}

// EntitlementProvider exposes one session's tenant configuration. A failed
// fetch keeps the previous set only when it belongs to the same slug; grants
// never carry over to another tenant, whose set falls back to empty.
//
// The slug is read when a fetch starts. Switching tenant does not refetch on
// its own; Refresh does. A fetch still in flight when the tenant changes
// lands anyway and may briefly show the previous school's plan.
type EntitlementProvider struct {
	async *Async[domain.TenantContext]
}

func NewEntitlementProvider(src ports.TenantConfigSource, slugs SlugSource, log zerolog.Logger) *EntitlementProvider {
	fetch := func(ctx context.Context) (domain.TenantContext, error) {
		slug, ok := slugs.Current(ctx)
		if !ok {
			return domain.TenantContext{}, domain.ErrTenantUnresolved
		}
		cfg, err := src.FetchTenantConfig(ctx, slug)
		if err != nil {
			return domain.TenantContext{Slug: slug}, fmt.Errorf("%w: %s: %v", domain.ErrEntitlementFetchFailed, slug, err)
		}
		return domain.TenantContext{Slug: slug, Config: cfg}, nil
	}
	return &EntitlementProvider{
		async: NewAsync("entitlements", domain.TenantContext{}, fetch, log).KeepOnError(sameTenant),
	}
}

// Mount starts the initial fetch for the currently resolved slug.
func (p *EntitlementProvider) Mount(ctx context.Context) { p.async.Mount(ctx) }

// Snapshot returns the current state without blocking.
func (p *EntitlementProvider) Snapshot() domain.EntitlementState {
	data, state, err := p.async.State()
	return domain.EntitlementState{Load: state, Slug: data.Slug, Config: data.Config, Err: err}
}

// Refresh re-fetches synchronously. Settings flows call it after changing the
// school's configuration.
func (p *EntitlementProvider) Refresh(ctx context.Context) domain.EntitlementState {
	data, state, err := p.async.Refresh(ctx)
	return domain.EntitlementState{Load: state, Slug: data.Slug, Config: data.Config, Err: err}
}

// MountResolved re-mounts a provider whose earlier mount found no tenant.
// It reports whether a new fetch was started.
func (p *EntitlementProvider) MountResolved(ctx context.Context) bool {
	s := p.Snapshot()
	if s.Load != domain.LoadFailed || !errors.Is(s.Err, domain.ErrTenantUnresolved) {
		return false
	}
	p.async.Reload(ctx)
	return true
}

// Settled is closed once the current load cycle has finished.
func (p *EntitlementProvider) Settled() <-chan struct{} { return p.async.Settled() }

func sameTenant(current, attempted domain.TenantContext) bool {
	return current.Slug == attempted.Slug
}
