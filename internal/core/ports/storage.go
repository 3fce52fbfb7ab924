package ports

import "context"

// Keys persisted in each session namespace.
const (
	KeyPrincipal  = "principal"
	KeyTenantSlug = "tenant_slug"
	KeyTheme      = "theme"
)

// SessionStorage is the per-session persistent key/value namespace that
// stands in for browser-local storage. Get reports found=false for missing keys.
type SessionStorage interface {
	Get(ctx context.Context, sessionID, key string) (value string, found bool, err error)
	Set(ctx context.Context, sessionID, key, value string) error
	Delete(ctx context.Context, sessionID, key string) error
	// DeleteSession drops every key of the session.
	DeleteSession(ctx context.Context, sessionID string) error
}
