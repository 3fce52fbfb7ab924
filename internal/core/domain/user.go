package domain

// Principal is the authenticated identity driving every gate decision.
// A nil *Principal means "absent" (unauthenticated).
type Principal struct {
	ID          string `json:"id"`
	Role        Role   `json:"role"`
	IsSuperuser bool   `json:"is_superuser"`
	TeacherID   string `json:"teacher_id,omitempty"`
	StudentID   string `json:"student_id,omitempty"`
	Name        string `json:"name,omitempty"`
	Email       string `json:"email,omitempty"`
}

// IsAdminArea reports whether the principal may enter the admin area without
// being redirected to a role portal.
func (p *Principal) IsAdminArea() bool {
	return p != nil && (p.IsSuperuser || p.Role == RoleAdmin)
}

// Clone returns a copy that callers may mutate freely.
func (p *Principal) Clone() *Principal {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}
