package constants

// User roles
const (
	RoleCustomer   = "CUSTOMER"
	RoleEmployee   = "EMPLOYEE"
	RoleSuperAdmin = "SUPER_ADMIN"
)

// User account statuses
const (
	UserStatusActive   = "ACTIVE"
	UserStatusInactive = "INACTIVE"
)

// Role groups for convenience
var (
	// StaffRoles may act on assignments and staff-only booking views.
	StaffRoles = []string{
		RoleEmployee,
		RoleSuperAdmin,
	}

	// ElevatedRegistrationRoles are the only roles a registration request
	// may ask for; anything else falls back to CUSTOMER.
	ElevatedRegistrationRoles = []string{
		RoleEmployee,
		RoleSuperAdmin,
	}
)

// IsElevatedRole reports whether the requested role is on the registration
// allow-list.
func IsElevatedRole(role string) bool {
	for _, r := range ElevatedRegistrationRoles {
		if r == role {
			return true
		}
	}
	return false
}
