package rbac

// Role is the coarse account type.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// SubRole is the department tag for ADMIN accounts, or the customer
// segment for USER accounts.
type SubRole string

const (
	// Admin departments
	SubRoleIT         SubRole = "IT"
	SubRoleDirector   SubRole = "DIRECTOR"
	SubRoleSales      SubRole = "SALES"
	SubRoleHR         SubRole = "HR"
	SubRoleManager    SubRole = "MANAGER"
	SubRoleWarehouse  SubRole = "WAREHOUSE"
	SubRoleAccountant SubRole = "ACCOUNTANT"
	SubRoleGraphics   SubRole = "GRAPHICS"
	SubRoleEditor     SubRole = "EDITOR"
	SubRoleLogistics  SubRole = "LOGISTICS"

	// Customer segments
	SubRoleBTC SubRole = "BTC"
	SubRoleBTB SubRole = "BTB"
)

var adminSubRoles = []SubRole{
	SubRoleIT,
	SubRoleDirector,
	SubRoleSales,
	SubRoleHR,
	SubRoleManager,
	SubRoleWarehouse,
	SubRoleAccountant,
	SubRoleGraphics,
	SubRoleEditor,
	SubRoleLogistics,
}

var userSubRoles = []SubRole{
	SubRoleBTC,
	SubRoleBTB,
}

// Valid reports whether the role is one of the recognized account types.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// SubRolesFor returns the closed set of subroles permitted for a role.
func SubRolesFor(r Role) []SubRole {
	switch r {
	case RoleAdmin:
		return adminSubRoles
	case RoleUser:
		return userSubRoles
	default:
		return nil
	}
}

// ValidFor reports whether the subrole belongs to the given role's set.
func (s SubRole) ValidFor(r Role) bool {
	for _, candidate := range SubRolesFor(r) {
		if s == candidate {
			return true
		}
	}
	return false
}

// AdminSubRoles returns all recognized admin department subroles.
func AdminSubRoles() []SubRole {
	out := make([]SubRole, len(adminSubRoles))
	copy(out, adminSubRoles)
	return out
}
