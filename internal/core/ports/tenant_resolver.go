package ports

import (
	"context"
	"net/url"
)

// TenantResolver determines the active portal slug of one session.
type TenantResolver interface {
	// Resolve prefers an explicit slug in query, persisting it, then falls
	// back to the persisted slug.
	Resolve(ctx context.Context, query url.Values) (slug string, ok bool)
	// ResolveExplicit persists and returns slug.
	ResolveExplicit(ctx context.Context, slug string) (string, bool)
	// Current returns the persisted slug without looking at a navigation.
	Current(ctx context.Context) (slug string, ok bool)
}
