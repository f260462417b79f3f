package workspaces_services_test

import (
	"context"
	"testing"

	"teamspace/internal/features/audit_logs"
	workspaces_enums "teamspace/internal/features/workspaces/enums"
	workspaces_errors "teamspace/internal/features/workspaces/errors"
	workspaces_testing "teamspace/internal/features/workspaces/testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_GetWorkspaceWithCache_WhenCached_ReturnsCachedWorkspace(t *testing.T) {
	env := workspaces_testing.NewEnvironment()
	workspace := env.CreateWorkspace("acme")

	first, err := env.WorkspaceService.GetWorkspaceWithCache(context.Background(), "acme")
	require.NoError(t, err)
	assert.Equal(t, workspace.ID, first.ID)

	cached := env.WorkspaceCache.Get(context.Background(), "acme")
	require.NotNil(t, cached)
	assert.Equal(t, workspace.ID, cached.ID)
	assert.False(t, cached.IsNotExists)
}

func Test_GetWorkspaceWithCache_WhenSlugCachedAsMissing_ReturnsNotFound(t *testing.T) {
	env := workspaces_testing.NewEnvironment()

	_, err := env.WorkspaceService.GetWorkspaceWithCache(context.Background(), "ghost")
	assert.ErrorIs(t, err, workspaces_errors.ErrWorkspaceNotFound)

	// The negative entry wins even once the workspace appears.
	env.CreateWorkspace("ghost")
	_, err = env.WorkspaceService.GetWorkspaceWithCache(context.Background(), "ghost")
	assert.ErrorIs(t, err, workspaces_errors.ErrWorkspaceNotFound)
}

func Test_GetWorkspaceAuditLogs_WhenActorIsAdmin_ReturnsLogs(t *testing.T) {
	env := workspaces_testing.NewEnvironment()
	workspace := env.CreateWorkspace("acme")
	admin := env.CreateMember(workspace, "admin", workspaces_enums.RoleAdmin)
	env.AuditLogReader.Response = &audit_logs.GetAuditLogsResponse{
		AuditLogs: []*audit_logs.AuditLogDTO{{Message: "Member left workspace"}},
		Total:     1,
		Limit:     100,
	}

	response, err := env.WorkspaceService.GetWorkspaceAuditLogs(
		context.Background(),
		"acme",
		&audit_logs.GetAuditLogsRequest{},
		admin.User,
	)

	require.NoError(t, err)
	assert.Equal(t, int64(1), response.Total)
}

func Test_GetWorkspaceAuditLogs_WhenActorIsMember_IsForbidden(t *testing.T) {
	env := workspaces_testing.NewEnvironment()
	workspace := env.CreateWorkspace("acme")
	member := env.CreateMember(workspace, "member", workspaces_enums.RoleMember)

	_, err := env.WorkspaceService.GetWorkspaceAuditLogs(
		context.Background(),
		"acme",
		&audit_logs.GetAuditLogsRequest{},
		member.User,
	)

	var rejection *workspaces_errors.RuleRejection
	require.ErrorAs(t, err, &rejection)
	assert.Equal(t, workspaces_errors.RejectionKindForbidden, rejection.Kind)
}
