package workspaces_enums

// WorkspaceRole is the ordered authority scale shared by workspace and
// project memberships. Larger values carry more authority.
type WorkspaceRole int

const (
	RoleGuest  WorkspaceRole = 5
	RoleViewer WorkspaceRole = 10
	RoleMember WorkspaceRole = 15
	RoleAdmin  WorkspaceRole = 20
)

const (
	// RoleAdminTier is the highest role; sole-admin protection is measured
	// against it for both workspaces and projects.
	RoleAdminTier = RoleAdmin

	// RoleDetailedListingThreshold is the role a viewer must exceed to see
	// member emails and full names in listings.
	RoleDetailedListingThreshold = RoleViewer

	// RoleWriteThreshold is the lowest role allowed to mutate other
	// memberships.
	RoleWriteThreshold = RoleMember
)

// Compare returns -1, 0 or 1 when a is below, equal to or above b.
func Compare(a, b WorkspaceRole) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func IsAdminTier(role WorkspaceRole) bool {
	return role == RoleAdminTier
}

func (r WorkspaceRole) IsValid() bool {
	switch r {
	case RoleGuest, RoleViewer, RoleMember, RoleAdmin:
		return true
	default:
		return false
	}
}

func (r WorkspaceRole) CanSeeMemberDetails() bool {
	return Compare(r, RoleDetailedListingThreshold) > 0
}

func (r WorkspaceRole) CanManageMembers() bool {
	return Compare(r, RoleWriteThreshold) >= 0
}

func (r WorkspaceRole) String() string {
	switch r {
	case RoleGuest:
		return "guest"
	case RoleViewer:
		return "viewer"
	case RoleMember:
		return "member"
	case RoleAdmin:
		return "admin"
	default:
		return "unknown"
	}
}
