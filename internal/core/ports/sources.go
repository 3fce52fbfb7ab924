package ports

import (
	"context"

	"github.com/edusaas/portal-gate/internal/core/domain"
)

// StatusSource fetches process-wide operational status from the backend.
type StatusSource interface {
	FetchStatus(ctx context.Context) (domain.OperationalStatus, error)
}

// TenantConfigSource fetches the configuration of the school behind slug.
type TenantConfigSource interface {
	FetchTenantConfig(ctx context.Context, slug string) (domain.TenantConfig, error)
}
