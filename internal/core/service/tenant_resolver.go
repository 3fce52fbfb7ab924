package service

import (
	"context"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/edusaas/portal-gate/internal/core/ports"
	"github.com/edusaas/portal-gate/internal/metrics"
)

// SlugQueryKeys are the navigation query parameters that carry an explicit
// tenant, in order of preference.
var SlugQueryKeys = []string{"portal", "school"}

// TenantResolver resolves a session's portal slug: explicit navigation value
// first, then the persisted value.
type TenantResolver struct {
	storage   ports.SessionStorage
	sessionID string
	log       zerolog.Logger

	// OnSwitch, when set, is called after an explicit slug replaced a
	// different persisted one.
	OnSwitch func(ctx context.Context, from, to string)
}

var _ ports.TenantResolver = (*TenantResolver)(nil)

func NewTenantResolver(storage ports.SessionStorage, sessionID string, log zerolog.Logger) *TenantResolver {
	return &TenantResolver{storage: storage, sessionID: sessionID, log: log}
}

func (r *TenantResolver) Resolve(ctx context.Context, query url.Values) (string, bool) {
	for _, key := range SlugQueryKeys {
		if v := strings.TrimSpace(query.Get(key)); v != "" {
			return r.ResolveExplicit(ctx, v)
		}
	}
	return r.Current(ctx)
}

// ResolveExplicit persists slug, silently replacing any previous tenant. A
// failed write is logged; the explicit slug still applies to this navigation.
func (r *TenantResolver) ResolveExplicit(ctx context.Context, slug string) (string, bool) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return r.Current(ctx)
	}

	previous, hadPrevious := r.Current(ctx)
	if hadPrevious && previous == slug {
		return slug, true
	}

	if err := r.storage.Set(ctx, r.sessionID, ports.KeyTenantSlug, slug); err != nil {
		r.log.Warn().Err(err).Str("session_id", r.sessionID).Str("slug", slug).Msg("failed to persist tenant slug")
	}
	if hadPrevious {
		metrics.TenantSwitchesTotal.Inc()
		r.log.Info().Str("session_id", r.sessionID).Str("from", previous).Str("to", slug).Msg("tenant switched")
		if r.OnSwitch != nil {
			r.OnSwitch(ctx, previous, slug)
		}
	}
	return slug, true
}

func (r *TenantResolver) Current(ctx context.Context) (string, bool) {
	v, found, err := r.storage.Get(ctx, r.sessionID, ports.KeyTenantSlug)
	if err != nil {
		r.log.Warn().Err(err).Str("session_id", r.sessionID).Msg("tenant slug read failed")
		return "", false
	}
	if !found || strings.TrimSpace(v) == "" {
		return "", false
	}
	return v, true
}
