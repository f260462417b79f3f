package workspaces_services_test

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	workspaces_enums "teamspace/internal/features/workspaces/enums"
	workspaces_errors "teamspace/internal/features/workspaces/errors"
	workspaces_models "teamspace/internal/features/workspaces/models"
	workspaces_testing "teamspace/internal/features/workspaces/testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Random sequences of leave, remove and role changes by random actors must
// never leave the workspace or any populated project without an admin.
func Test_MembershipOperations_WhenRandomlySequenced_KeepAdminsReachable(t *testing.T) {
	roles := []workspaces_enums.WorkspaceRole{
		workspaces_enums.RoleGuest,
		workspaces_enums.RoleViewer,
		workspaces_enums.RoleMember,
		workspaces_enums.RoleAdmin,
	}

	for seed := int64(1); seed <= 25; seed++ {
		random := rand.New(rand.NewSource(seed))
		env := workspaces_testing.NewEnvironment()
		ctx := context.Background()
		workspace := env.CreateWorkspace("acme")

		members := make([]*workspaces_testing.TestMember, 6)
		members[0] = env.CreateMember(workspace, "founder", workspaces_enums.RoleAdmin)
		for i := 1; i < len(members); i++ {
			members[i] = env.CreateMember(workspace, "user", roles[random.Intn(len(roles))])
		}

		projects := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
		for _, project := range projects {
			admin := members[random.Intn(len(members))]
			env.AddToProject(workspace, project, admin, workspaces_enums.RoleAdmin)

			for _, member := range members {
				if member != admin && random.Intn(2) == 0 {
					env.AddToProject(workspace, project, member, roles[random.Intn(len(roles))])
				}
			}
		}

		for step := 0; step < 40; step++ {
			actor := members[random.Intn(len(members))]
			target := members[random.Intn(len(members))]

			var err error
			switch random.Intn(3) {
			case 0:
				err = env.MemberService.Leave(ctx, "acme", actor.User)
			case 1:
				err = env.MemberService.RemoveMember(ctx, "acme", target.Membership.ID, actor.User)
			default:
				role := roles[random.Intn(len(roles))]
				_, err = env.MemberService.ChangeRole(ctx, "acme", target.Membership.ID, &role, actor.User)
			}

			assertExpectedFailure(t, err)
			assertAdminsReachable(t, env, workspace, projects)
		}
	}
}

func assertExpectedFailure(t *testing.T, err error) {
	t.Helper()

	if err == nil {
		return
	}

	var rejection *workspaces_errors.RuleRejection
	if errors.As(err, &rejection) || errors.Is(err, workspaces_errors.ErrMembershipNotFound) {
		return
	}

	t.Fatalf("unexpected error: %v", err)
}

func assertAdminsReachable(
	t *testing.T,
	env *workspaces_testing.Environment,
	workspace *workspaces_models.Workspace,
	projects []uuid.UUID,
) {
	t.Helper()

	listing, err := env.Store.ListActiveWorkspaceMemberships(context.Background(), workspace.ID)
	require.NoError(t, err)

	admins, err := env.Store.CountActiveAdmins(context.Background(), workspace.ID)
	require.NoError(t, err)
	if len(listing) > 0 {
		assert.GreaterOrEqual(t, admins, int64(1))
	}

	for _, project := range projects {
		if env.Store.CountActiveProjectMembers(project) > 0 {
			assert.GreaterOrEqual(t, env.Store.CountActiveProjectAdmins(project), 1, "project %s", project)
		}
	}
}
