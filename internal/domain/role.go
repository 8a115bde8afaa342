package domain

import "fmt"

// Role is the org role stored on a user profile
type Role string

const (
	RoleAdmin          Role = "admin"
	RoleHead           Role = "head"
	RoleManager        Role = "manager"
	RoleAccountManager Role = "account_manager"
	// RoleStaff is deprecated; treated like account_manager
	RoleStaff Role = "staff"
	// RoleSales is a legacy value that still exists on old rows
	RoleSales Role = "sales"

	// RolePending is a list filter value only and is never stored
	RolePending Role = "pending"
	// RoleUnset is the role of a profile with no role column value
	RoleUnset Role = ""
)

// AssignableRoles are the roles an admin may store on a profile
var AssignableRoles = []Role{RoleAdmin, RoleHead, RoleManager, RoleAccountManager, RoleStaff}

// IsValid reports whether the role may be stored on a profile
func (r Role) IsValid() bool {
	for _, v := range AssignableRoles {
		if r == v {
			return true
		}
	}
	return false
}

// Normalize maps legacy role values onto their current equivalent
func (r Role) Normalize() Role {
	if r == RoleSales {
		return RoleAccountManager
	}
	return r
}

// IsContributor reports whether the role is an individual sales contributor
func (r Role) IsContributor() bool {
	switch r {
	case RoleAccountManager, RoleStaff, RoleSales:
		return true
	}
	return false
}

// Rank orders roles for listings: head, manager, contributors, everything else
func (r Role) Rank() int {
	switch r.Normalize() {
	case RoleHead:
		return 0
	case RoleManager:
		return 1
	case RoleAccountManager, RoleStaff:
		return 2
	default:
		return 3
	}
}

// ContributorRoles lists stored values that count as account managers
var ContributorRoles = []Role{RoleAccountManager, RoleStaff, RoleSales}

// ParseRole parses a role filter value. The pending sentinel is accepted.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if r == RolePending || r == RoleSales || r.IsValid() {
		return r, nil
	}
	return RoleUnset, fmt.Errorf("unknown role %q", s)
}

// RolePtr returns a pointer to r
func RolePtr(r Role) *Role {
	return &r
}
