package rbac

// Capability predicates over the acting admin's subrole and a target
// account. All predicates fail closed: an empty or unrecognized target
// never grants access.

// CanCreateUser reports whether an admin with the acting subrole may
// create an account with the target role and subrole.
//
// IT and DIRECTOR may create any valid account, including DIRECTOR
// admins. HR may create admin accounts except DIRECTOR, and customer
// accounts. Every other department may only create customer accounts.
func CanCreateUser(acting SubRole, targetRole Role, targetSubRole SubRole) bool {
	if targetRole == "" || targetSubRole == "" {
		return false
	}
	if !targetSubRole.ValidFor(targetRole) {
		return false
	}

	switch acting {
	case SubRoleIT, SubRoleDirector:
		return true
	case SubRoleHR:
		if targetRole == RoleAdmin {
			return targetSubRole != SubRoleDirector
		}
		return targetRole == RoleUser
	default:
		return targetRole == RoleUser
	}
}

// CanResetPassword reports whether the acting subrole may reset
// another account's password.
func CanResetPassword(acting SubRole) bool {
	switch acting {
	case SubRoleIT, SubRoleDirector, SubRoleHR:
		return true
	default:
		return false
	}
}

// CanDeleteUser reports whether the acting subrole may delete or
// deactivate another account.
func CanDeleteUser(acting SubRole) bool {
	switch acting {
	case SubRoleIT, SubRoleDirector:
		return true
	default:
		return false
	}
}

// CanGenerateRecovery reports whether the acting subrole may issue a
// recovery code for another account. Mirrors the password reset policy.
func CanGenerateRecovery(acting SubRole) bool {
	return CanResetPassword(acting)
}
