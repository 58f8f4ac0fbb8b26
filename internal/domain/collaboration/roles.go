package collaboration

// TeamRole is a member's role within a team. Roles are totally ordered:
// member < admin < owner.
type TeamRole string

const (
	RoleMember TeamRole = "member"
	RoleAdmin  TeamRole = "admin"
	RoleOwner  TeamRole = "owner"
)

var roleRank = map[TeamRole]int{
	RoleMember: 1,
	RoleAdmin:  2,
	RoleOwner:  3,
}

// ParseTeamRole validates s against the closed set of roles.
func ParseTeamRole(s string) (TeamRole, error) {
	r := TeamRole(s)
	if _, ok := roleRank[r]; !ok {
		return "", ErrInvalidTeamRole
	}
	return r, nil
}

// ParseAssignableRole parses a role that a user may be invited as or changed to.
// Ownership is never assignable.
func ParseAssignableRole(s string) (TeamRole, error) {
	r, err := ParseTeamRole(s)
	if err != nil {
		return "", err
	}
	if r == RoleOwner {
		return "", ErrOwnerRoleNotAssignable
	}
	return r, nil
}

func (r TeamRole) String() string { return string(r) }

func (r TeamRole) IsOwner() bool  { return r == RoleOwner }
func (r TeamRole) IsAdmin() bool  { return r == RoleAdmin }
func (r TeamRole) IsMember() bool { return r == RoleMember }

// IsAtLeast reports whether r ranks equal to or above other.
func (r TeamRole) IsAtLeast(other TeamRole) bool {
	return roleRank[r] >= roleRank[other]
}

// IsHigherThan reports whether r ranks strictly above other.
func (r TeamRole) IsHigherThan(other TeamRole) bool {
	return roleRank[r] > roleRank[other]
}

// AllRoles returns every role from lowest to highest.
func AllRoles() []TeamRole {
	return []TeamRole{RoleMember, RoleAdmin, RoleOwner}
}
