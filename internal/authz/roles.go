package authz

// Role is the single source of truth for account roles. Stored as text in the
// accounts table and carried in JWT claims.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
	RoleCustomer Role = "customer"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleEmployee, RoleCustomer:
		return Role(s), true
	}
	return "", false
}

func (r Role) String() string { return string(r) }

// IsStaff reports whether the role may use the admin login surface and the
// management endpoints.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleEmployee
}

// Can is the single capability check used by middleware and handlers instead of
// ad-hoc role comparisons scattered across services.
func Can(r Role, action Action) bool {
	switch r {
	case RoleAdmin:
		return true
	case RoleEmployee:
		return action != ActionManageUsers && action != ActionManageEmployees
	case RoleCustomer:
		return action == ActionShop
	}
	return false
}

type Action int

const (
	ActionShop Action = iota
	ActionManageCatalog
	ActionManageOrders
	ActionManageCustomers
	ActionManageEmployees
	ActionManageUsers
)
