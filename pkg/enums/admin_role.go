package enums

import "fmt"

// AdminRole is the closed set of roles an admin account can hold.
type AdminRole string

const (
	AdminRoleSuperAdmin AdminRole = "super_admin"
	AdminRoleAdmin      AdminRole = "admin"
	AdminRoleModerator  AdminRole = "moderador"
)

// CustomerRole is the only role a customer account carries.
const CustomerRole = "cliente"

var validAdminRoles = []AdminRole{
	AdminRoleSuperAdmin,
	AdminRoleAdmin,
	AdminRoleModerator,
}

// IsValid reports whether the value matches the canonical admin role enum.
func (r AdminRole) IsValid() bool {
	for _, candidate := range validAdminRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

func (r AdminRole) String() string {
	return string(r)
}

// ParseAdminRole converts the raw string to AdminRole.
func ParseAdminRole(value string) (AdminRole, error) {
	for _, candidate := range validAdminRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid admin role %q", value)
}
