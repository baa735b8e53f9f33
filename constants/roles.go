package constants

// User roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
	RoleRider = "rider"
)

// AssignableRoles is the closed set an admin may grant.
var AssignableRoles = []string{RoleAdmin, RoleUser, RoleRider}

// IsAssignableRole reports whether role is one an admin may grant.
func IsAssignableRole(role string) bool {
	for _, r := range AssignableRoles {
		if r == role {
			return true
		}
	}
	return false
}
