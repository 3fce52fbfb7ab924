package domain

import "strings"

// Role is the closed set of principal roles understood by the gate.
type Role string

const (
	RoleAdmin            Role = "admin"
	RoleTeacher          Role = "teacher"
	RoleStudent          Role = "student"
	RoleDriver           Role = "driver"
	RoleStaff            Role = "staff"
	RoleAccountant       Role = "accountant"
	RoleFoodManager      Role = "food_manager"
	RoleTransportManager Role = "transport_manager"
	RoleUnknown          Role = "unknown"
)

// AllRoles lists every Role value. Tests iterate it to make sure each role has
// an explicit admin-area landing decision.
var AllRoles = []Role{
	RoleAdmin,
	RoleTeacher,
	RoleStudent,
	RoleDriver,
	RoleStaff,
	RoleAccountant,
	RoleFoodManager,
	RoleTransportManager,
	RoleUnknown,
}

// ParseRole maps a raw role string onto the closed enum. Anything outside the
// known set becomes RoleUnknown.
func ParseRole(s string) Role {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	switch r {
	case RoleAdmin, RoleTeacher, RoleStudent, RoleDriver, RoleStaff,
		RoleAccountant, RoleFoodManager, RoleTransportManager:
		return r
	default:
		return RoleUnknown
	}
}

func (r Role) String() string { return string(r) }
