package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/edusaas/portal-gate/internal/core/domain"
	"github.com/edusaas/portal-gate/internal/core/guard"
	"github.com/edusaas/portal-gate/internal/core/ports"
	"github.com/edusaas/portal-gate/internal/core/provider"
	"github.com/edusaas/portal-gate/internal/core/routing"
	"github.com/edusaas/portal-gate/internal/metrics"
)

// Session is one client's gate context. Its operations are serialised, which
// gives every navigation a consistent snapshot and keeps read-modify-write
// updates of the persisted principal from interleaving.
type Session struct {
	id           string
	storage      ports.SessionStorage
	principals   *PrincipalStore
	tenants      *TenantResolver
	entitlements *provider.EntitlementProvider
	status       ports.StatusService
	router       *routing.Router
	audit        ports.AuditRecorder
	log          zerolog.Logger

	mu       sync.Mutex
	lastSeen time.Time
}

var _ ports.Session = (*Session)(nil)

// SessionDeps are the collaborators shared by every session.
type SessionDeps struct {
	Storage ports.SessionStorage
	Status  ports.StatusService
	Configs ports.TenantConfigSource
	Router  *routing.Router
	Audit   ports.AuditRecorder
	Log     zerolog.Logger
}

// NewSession wires a session and mounts its entitlement provider.
func NewSession(ctx context.Context, id string, deps SessionDeps) *Session {
	log := deps.Log.With().Str("session_id", id).Logger()
	s := &Session{
		id:         id,
		storage:    deps.Storage,
		principals: NewPrincipalStore(deps.Storage, id, log),
		tenants:    NewTenantResolver(deps.Storage, id, log),
		status:     deps.Status,
		router:     deps.Router,
		audit:      deps.Audit,
		log:        log,
		lastSeen:   time.Now(),
	}
	s.tenants.OnSwitch = func(ctx context.Context, from, to string) {
		s.record(domain.AuditEvent{Kind: domain.AuditTenantSwitched, Slug: to})
	}
	s.entitlements = provider.NewEntitlementProvider(deps.Configs, s.tenants, log)
	s.entitlements.Mount(ctx)
	return s
}

func (s *Session) ID() string { return s.id }

// Navigate evaluates target, a path with an optional query, and applies the
// side effects the decision asks for.
func (s *Session) Navigate(ctx context.Context, target string) (*ports.NavigationResult, error) {
	u, err := url.Parse(strings.TrimSpace(target))
	if err != nil || (u.Path == "" && u.RawQuery == "") {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidTarget, target)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()

	slug, hasSlug := s.tenants.Resolve(ctx, u.Query())
	if hasSlug {
		s.entitlements.MountResolved(ctx)
	}

	principal, _ := s.principals.Get(ctx)
	snap := guard.Snapshot{
		Principal:    principal,
		Entitlements: s.entitlements.Snapshot(),
		Status:       s.status.Snapshot(),
	}
	ev := s.router.Evaluate(u.Path, snap)

	if ev.PortalSlug != "" {
		slug, _ = s.tenants.ResolveExplicit(ctx, ev.PortalSlug)
		s.entitlements.MountResolved(ctx)
	}

	s.apply(ctx, u.Path, principal, ev)

	return &ports.NavigationResult{
		Path:      u.Path,
		Route:     ev.Route.Pattern,
		Screen:    ev.Route.Screen,
		Params:    ev.Params,
		DecidedBy: ev.DecidedBy,
		Decision:  ev.Decision,
		Slug:      slug,
	}, nil
}

// apply performs the effects of a decision: forced logouts and audit records.
func (s *Session) apply(ctx context.Context, path string, p *domain.Principal, ev routing.Evaluation) {
	d := ev.Decision
	guardName := ev.DecidedBy
	if guardName == "" {
		guardName = "none"
	}
	metrics.GateDecisionsTotal.WithLabelValues(string(d.Kind), guardName).Inc()

	event := domain.AuditEvent{Path: path}
	if p != nil {
		event.PrincipalID, event.Role = p.ID, p.Role
	}

	switch d.Kind {
	case domain.DecisionRedirect:
		if !d.ClearPrincipal {
			break
		}
		if err := s.principals.Clear(ctx); err != nil {
			s.log.Error().Err(err).Msg("forced logout could not clear principal")
		}
		metrics.ForcedLogoutsTotal.Inc()
		s.log.Warn().Str("path", path).Str("role", event.Role.String()).Msg("unroutable principal logged out")
		event.Kind = domain.AuditForcedLogout
		s.record(event)
	case domain.DecisionUpsell:
		event.Kind, event.Feature = domain.AuditFeatureDenied, d.Feature
		event.Slug = s.entitlements.Snapshot().Slug
		s.record(event)
	case domain.DecisionMaintenance:
		event.Kind = domain.AuditMaintenanceBlocked
		s.record(event)
	case domain.DecisionAllow, domain.DecisionPending:
	}

	s.log.Debug().
		Str("path", path).
		Str("decision", string(d.Kind)).
		Str("guard", guardName).
		Str("target", d.Target).
		Msg("navigation evaluated")
}

func (s *Session) record(event domain.AuditEvent) {
	if s.audit == nil {
		return
	}
	event.SessionID = s.id
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	s.audit.Record(event)
}

func (s *Session) Principal(ctx context.Context) (*domain.Principal, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.principals.Get(ctx)
}

// Login stores the principal returned by a successful backend login.
func (s *Session) Login(ctx context.Context, p *domain.Principal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
	return s.principals.Set(ctx, p)
}

// UpdateProfile merges profile changes into the stored principal.
func (s *Session) UpdateProfile(ctx context.Context, patch map[string]json.RawMessage) (*domain.Principal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.principals.Merge(ctx, patch)
}

func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.principals.Clear(ctx)
}

func (s *Session) Tenant(ctx context.Context) domain.EntitlementState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tenants.Current(ctx); ok {
		s.entitlements.MountResolved(ctx)
	}
	return s.entitlements.Snapshot()
}

// RefreshTenant re-fetches the tenant configuration for the current slug.
func (s *Session) RefreshTenant(ctx context.Context) domain.EntitlementState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entitlements.Refresh(ctx)
}

func (s *Session) Theme(ctx context.Context) (string, error) {
	v, _, err := s.storage.Get(ctx, s.id, ports.KeyTheme)
	if err != nil {
		return "", fmt.Errorf("read theme: %w", err)
	}
	return v, nil
}

func (s *Session) SetTheme(ctx context.Context, theme string) error {
	if err := s.storage.Set(ctx, s.id, ports.KeyTheme, theme); err != nil {
		return fmt.Errorf("store theme: %w", err)
	}
	return nil
}

// idleSince reports when the session last served a navigation or login.
func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// entitlementsSettled exposes the provider's settle signal to tests.
func (s *Session) entitlementsSettled() <-chan struct{} { return s.entitlements.Settled() }
