package domain

import "fmt"

// LoadState is the lifecycle of an asynchronously fetched value.
type LoadState int

const (
	LoadLoading LoadState = iota
	LoadReady
	LoadFailed
)

func (s LoadState) String() string {
	switch s {
	case LoadLoading:
		return "loading"
	case LoadReady:
		return "ready"
	case LoadFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// MarshalText renders the state by name in JSON payloads.
func (s LoadState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *LoadState) UnmarshalText(b []byte) error {
	switch string(b) {
	case "loading":
		*s = LoadLoading
	case "ready":
		*s = LoadReady
	case "failed":
		*s = LoadFailed
	default:
		return fmt.Errorf("unknown load state %q", b)
	}
	return nil
}

// StatusState is a snapshot of the operational status provider.
type StatusState struct {
	Load   LoadState
	Status OperationalStatus
	Err    error
}

// Loading reports whether the first fetch is still outstanding.
func (s StatusState) Loading() bool { return s.Load == LoadLoading }

// EntitlementState is a snapshot of a tenant's entitlement provider.
type EntitlementState struct {
	Load   LoadState
	Slug   string
	Config TenantConfig
	Err    error
}

// Loading reports whether the entitlement fetch is still outstanding.
func (s EntitlementState) Loading() bool { return s.Load == LoadLoading }

// Contains tests feature membership. It refuses to answer while loading so
// that "not yet known" can never be mistaken for "denied".
func (s EntitlementState) Contains(f Feature) (bool, error) {
	if s.Loading() {
		return false, ErrEntitlementsLoading
	}
	return s.Config.HasFeature(f), nil
}
