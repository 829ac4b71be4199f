package domain

import (
	"fmt"
	"strings"
)

// Role is the closed set of principal roles. The zero value is not a valid role.
type Role uint8

const (
	roleUnknown Role = iota
	RoleStandardUser
	RoleAdmin
	RoleSuperAdmin
)

var roleCodes = map[Role]string{
	RoleStandardUser: "user",
	RoleAdmin:        "admin",
	RoleSuperAdmin:   "super_admin",
}

// ParseRole converts a role code ("super_admin", "admin", "user") into a Role.
func ParseRole(code string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(code)) {
	case "super_admin":
		return RoleSuperAdmin, nil
	case "admin":
		return RoleAdmin, nil
	case "user":
		return RoleStandardUser, nil
	default:
		return roleUnknown, fmt.Errorf("unknown role %q", code)
	}
}

// Valid reports whether r is one of the declared roles.
func (r Role) Valid() bool {
	_, ok := roleCodes[r]
	return ok
}

func (r Role) String() string {
	if code, ok := roleCodes[r]; ok {
		return code
	}
	return "unknown"
}

// DisplayName is the human readable label of the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleSuperAdmin:
		return "Super Admin"
	case RoleAdmin:
		return "Admin"
	case RoleStandardUser:
		return "User"
	default:
		return "Unknown"
	}
}

// IsManager reports whether the role may manage projects (Admin or SuperAdmin).
func (r Role) IsManager() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin:
		return true
	default:
		return false
	}
}

func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("cannot marshal invalid role %d", r)
	}
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
