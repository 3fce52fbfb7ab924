package domain

import "errors"

// Gate error taxonomy. Guards never return these; they surface from stores,
// providers and the HTTP layer.
var (
	ErrAuthAbsent             = errors.New("no authenticated principal")
	ErrAuthUnroutable         = errors.New("principal has no landing route")
	ErrFeatureDenied          = errors.New("feature not included in plan")
	ErrTenantUnresolved       = errors.New("tenant could not be resolved")
	ErrStatusFetchFailed      = errors.New("operational status fetch failed")
	ErrEntitlementFetchFailed = errors.New("tenant configuration fetch failed")

	ErrInvalidPrincipal    = errors.New("invalid principal record")
	ErrEntitlementsLoading = errors.New("entitlements still loading")
	ErrSessionNotFound     = errors.New("session not found")
	ErrForbidden           = errors.New("access forbidden")
	ErrInvalidTarget       = errors.New("invalid navigation target")
	ErrInvalidToken        = errors.New("invalid session token")
)
