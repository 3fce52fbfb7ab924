package ports

import (
	"context"
	"encoding/json"

	"github.com/edusaas/portal-gate/internal/core/domain"
)

// NavigationResult is the outcome of evaluating one navigation.
type NavigationResult struct {
	Path string
	// Route is the matched route pattern, empty when nothing matched.
	Route  string
	Screen string
	Params map[string]string
	// DecidedBy names the guard that produced a non-allow decision.
	DecidedBy string
	Decision  domain.Decision
	Slug      string
}

// Session is one client's gate context: its persisted principal and tenant,
// its entitlement provider and the shared status provider.
type Session interface {
	ID() string
	Navigate(ctx context.Context, target string) (*NavigationResult, error)
	Principal(ctx context.Context) (*domain.Principal, bool)
	Login(ctx context.Context, p *domain.Principal) error
	UpdateProfile(ctx context.Context, patch map[string]json.RawMessage) (*domain.Principal, error)
	Logout(ctx context.Context) error
	Tenant(ctx context.Context) domain.EntitlementState
	RefreshTenant(ctx context.Context) domain.EntitlementState
	Theme(ctx context.Context) (string, error)
	SetTheme(ctx context.Context, theme string) error
}

// SessionService opens and looks up sessions.
type SessionService interface {
	// Open creates a session and returns its signed token.
	Open(ctx context.Context) (token string, sessionID string, err error)
	Session(ctx context.Context, sessionID string) (Session, error)
}

// StatusService exposes the process-wide status provider.
type StatusService interface {
	Snapshot() domain.StatusState
	Refresh(ctx context.Context) domain.StatusState
}
