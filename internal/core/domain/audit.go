package domain

import "time"

// AuditKind classifies recorded gate events.
type AuditKind string

const (
	AuditForcedLogout       AuditKind = "forced_logout"
	AuditFeatureDenied      AuditKind = "feature_denied"
	AuditMaintenanceBlocked AuditKind = "maintenance_blocked"
	AuditTenantSwitched     AuditKind = "tenant_switched"
)

// AuditEvent is a notable gate outcome kept for operators.
type AuditEvent struct {
	SessionID   string    `json:"session_id"             bson:"session_id"`
	Kind        AuditKind `json:"kind"                   bson:"kind"`
	PrincipalID string    `json:"principal_id,omitempty" bson:"principal_id,omitempty"`
	Role        Role      `json:"role,omitempty"         bson:"role,omitempty"`
	Path        string    `json:"path,omitempty"         bson:"path,omitempty"`
	Slug        string    `json:"slug,omitempty"         bson:"slug,omitempty"`
	Feature     Feature   `json:"feature,omitempty"      bson:"feature,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"            bson:"occurred_at"`
}
