package workspaces_enums

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var allRoles = []WorkspaceRole{RoleGuest, RoleViewer, RoleMember, RoleAdmin}

func Test_Compare_WhenRolesSwapped_ResultIsNegated(t *testing.T) {
	for _, a := range allRoles {
		for _, b := range allRoles {
			assert.Equal(t, -Compare(b, a), Compare(a, b), "compare(%s, %s)", a, b)
		}
	}
}

func Test_Compare_WhenChainedLess_IsTransitive(t *testing.T) {
	for _, a := range allRoles {
		for _, b := range allRoles {
			for _, c := range allRoles {
				if Compare(a, b) < 0 && Compare(b, c) < 0 {
					assert.Equal(t, -1, Compare(a, c), "%s < %s < %s", a, b, c)
				}
			}
		}
	}
}

func Test_Compare_WhenScaleOrdered_FollowsAuthority(t *testing.T) {
	assert.Equal(t, -1, Compare(RoleGuest, RoleViewer))
	assert.Equal(t, -1, Compare(RoleViewer, RoleMember))
	assert.Equal(t, -1, Compare(RoleMember, RoleAdmin))
	assert.Equal(t, 0, Compare(RoleAdmin, RoleAdmin))
}

func Test_IsAdminTier_WhenRoleIsAdmin_ReturnsTrue(t *testing.T) {
	assert.True(t, IsAdminTier(RoleAdmin))
	assert.False(t, IsAdminTier(RoleMember))
	assert.False(t, IsAdminTier(RoleViewer))
	assert.False(t, IsAdminTier(RoleGuest))
}

func Test_IsValid_WhenRoleOffScale_ReturnsFalse(t *testing.T) {
	for _, role := range allRoles {
		assert.True(t, role.IsValid())
	}

	assert.False(t, WorkspaceRole(0).IsValid())
	assert.False(t, WorkspaceRole(12).IsValid())
	assert.False(t, WorkspaceRole(25).IsValid())
}

func Test_CanSeeMemberDetails_WhenRoleAboveViewer_ReturnsTrue(t *testing.T) {
	assert.False(t, RoleGuest.CanSeeMemberDetails())
	assert.False(t, RoleViewer.CanSeeMemberDetails())
	assert.True(t, RoleMember.CanSeeMemberDetails())
	assert.True(t, RoleAdmin.CanSeeMemberDetails())
}

func Test_CanManageMembers_WhenRoleBelowMember_ReturnsFalse(t *testing.T) {
	assert.False(t, RoleGuest.CanManageMembers())
	assert.False(t, RoleViewer.CanManageMembers())
	assert.True(t, RoleMember.CanManageMembers())
	assert.True(t, RoleAdmin.CanManageMembers())
}
