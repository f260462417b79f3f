package workspaces_controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"teamspace/internal/features/audit_logs"
	workspaces_dto "teamspace/internal/features/workspaces/dto"
	workspaces_enums "teamspace/internal/features/workspaces/enums"
	workspaces_testing "teamspace/internal/features/workspaces/testing"
	test_utils "teamspace/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func createRouter(
	env *workspaces_testing.Environment,
	limiter *workspaces_testing.StaticRateLimiter,
) *gin.Engine {
	return env.CreateTestRouter(
		NewWorkspaceMemberController(env.MemberService, limiter, 5, 20, 5*time.Second),
		NewTeamController(env.MemberService, limiter, rate.NewLimiter(rate.Inf, 1), 5, 20, 5*time.Second),
		NewWorkspaceController(env.WorkspaceService, 5*time.Second),
	)
}

func memberURL(slug string, membershipID uuid.UUID) string {
	return fmt.Sprintf("/api/v1/workspaces/%s/members/%s", slug, membershipID)
}

func Test_ListMembers_WhenViewerRequests_ReturnsBasicFields(t *testing.T) {
	env := workspaces_testing.NewEnvironment()
	router := createRouter(env, &workspaces_testing.StaticRateLimiter{})
	workspace := env.CreateWorkspace("acme")
	env.CreateMember(workspace, "admin", workspaces_enums.RoleAdmin)
	viewer := env.CreateMember(workspace, "viewer", workspaces_enums.RoleViewer)

	var response workspaces_dto.GetMembersResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t, router, "/api/v1/workspaces/acme/members", viewer.BearerToken(), http.StatusOK, &response,
	)

	require.Len(t, response.Members, 2)
	for _, member := range response.Members {
		assert.Empty(t, member.Member.Email)
		assert.NotEmpty(t, member.Member.DisplayName)
	}
}

func Test_ListMembers_WhenNoToken_ReturnsUnauthorized(t *testing.T) {
	env := workspaces_testing.NewEnvironment()
	router := createRouter(env, &workspaces_testing.StaticRateLimiter{})
	env.CreateWorkspace("acme")

	test_utils.MakeGetRequest(t, router, "/api/v1/workspaces/acme/members", "", http.StatusUnauthorized)
}

func Test_ListMembers_WhenWorkspaceMissing_ReturnsNotFound(t *testing.T) {
	env := workspaces_testing.NewEnvironment()
	router := createRouter(env, &workspaces_testing.StaticRateLimiter{})
	user := env.CreateUser("stranger")

	test_utils.MakeGetRequest(t, router, "/api/v1/workspaces/missing/members", user.BearerToken(), http.StatusNotFound)
}

func Test_ChangeRole_WhenAdminPromotesMember_ReturnsUpdatedMember(t *testing.T) {
	env := workspaces_testing.NewEnvironment()
	router := createRouter(env, &workspaces_testing.StaticRateLimiter{})
	workspace := env.CreateWorkspace("acme")
	admin := env.CreateMember(workspace, "admin", workspaces_enums.RoleAdmin)
	member := env.CreateMember(workspace, "member", workspaces_enums.RoleMember)

	role := workspaces_enums.RoleAdmin
	var response workspaces_dto.WorkspaceMemberResponseDTO
	test_utils.MakePatchRequestAndUnmarshal(
		t,
		router,
		memberURL("acme", member.Membership.ID),
		admin.BearerToken(),
		workspaces_dto.ChangeRoleRequestDTO{Role: &role},
		http.StatusOK,
		&response,
	)

	assert.Equal(t, member.Membership.ID, response.ID)
	assert.Equal(t, workspaces_enums.RoleAdmin, response.Role)
}

func Test_ChangeRole_WhenBodyEmpty_ReturnsMemberUnchanged(t *testing.T) {
	env := workspaces_testing.NewEnvironment()
	router := createRouter(env, &workspaces_testing.StaticRateLimiter{})
	workspace := env.CreateWorkspace("acme")
	admin := env.CreateMember(workspace, "admin", workspaces_enums.RoleAdmin)
	member := env.CreateMember(workspace, "member", workspaces_enums.RoleViewer)

	var response workspaces_dto.WorkspaceMemberResponseDTO
	test_utils.MakePatchRequestAndUnmarshal(
		t, router, memberURL("acme", member.Membership.ID), admin.BearerToken(), nil, http.StatusOK, &response,
	)

	assert.Equal(t, workspaces_enums.RoleViewer, response.Role)
	assert.Empty(t, env.AuditLogs.Entries())
}

func Test_ChangeRole_WhenActorChangesOwnRole_ReturnsBadRequest(t *testing.T) {
	env := workspaces_testing.NewEnvironment()
	router := createRouter(env, &workspaces_testing.StaticRateLimiter{})
	workspace := env.CreateWorkspace("acme")
	admin := env.CreateMember(workspace, "admin", workspaces_enums.RoleAdmin)

	role := workspaces_enums.RoleMember
	response := test_utils.MakePatchRequest(
		t,
		router,
		memberURL("acme", admin.Membership.ID),
		admin.BearerToken(),
		workspaces_dto.ChangeRoleRequestDTO{Role: &role},
		http.StatusBadRequest,
	)

	assert.Contains(t, string(response.Body), "You cannot update your own role")
}

func Test_ChangeRole_WhenViewerActs_ReturnsForbidden(t *testing.T) {
	env := workspaces_testing.NewEnvironment()
	router := createRouter(env, &workspaces_testing.StaticRateLimiter{})
	workspace := env.CreateWorkspace("acme")
	viewer := env.CreateMember(workspace, "viewer", workspaces_enums.RoleViewer)
	guest := env.CreateMember(workspace, "guest", workspaces_enums.RoleGuest)

	role := workspaces_enums.RoleViewer
	test_utils.MakePatchRequest(
		t,
		router,
		memberURL("acme", guest.Membership.ID),
		viewer.BearerToken(),
		workspaces_dto.ChangeRoleRequestDTO{Role: &role},
		http.StatusForbidden,
	)
}

func Test_ChangeRole_WhenMemberIDMalformed_ReturnsBadRequest(t *testing.T) {
	env := workspaces_testing.NewEnvironment()
	router := createRouter(env, &workspaces_testing.StaticRateLimiter{})
	workspace := env.CreateWorkspace("acme")
	admin := env.CreateMember(workspace, "admin", workspaces_enums.RoleAdmin)

	test_utils.MakePatchRequest(
		t, router, "/api/v1/workspaces/acme/members/not-a-uuid", admin.BearerToken(), nil, http.StatusBadRequest,
	)
}

func Test_ChangeRole_WhenMembershipUnknown_ReturnsNotFound(t *testing.T) {
	env := workspaces_testing.NewEnvironment()
	router := createRouter(env, &workspaces_testing.StaticRateLimiter{})
	workspace := env.CreateWorkspace("acme")
	admin := env.CreateMember(workspace, "admin", workspaces_enums.RoleAdmin)

	role := workspaces_enums.RoleMember
	test_utils.MakePatchRequest(
		t,
		router,
		memberURL("acme", uuid.New()),
		admin.BearerToken(),
		workspaces_dto.ChangeRoleRequestDTO{Role: &role},
		http.StatusNotFound,
	)
}

func Test_ChangeRole_WhenRateLimitExhausted_ReturnsTooManyRequests(t *testing.T) {
	env := workspaces_testing.NewEnvironment()
	router := createRouter(env, &workspaces_testing.StaticRateLimiter{Allowance: 1})
	workspace := env.CreateWorkspace("acme")
	admin := env.CreateMember(workspace, "admin", workspaces_enums.RoleAdmin)
	member := env.CreateMember(workspace, "member", workspaces_enums.RoleMember)

	role := workspaces_enums.RoleViewer
	body := workspaces_dto.ChangeRoleRequestDTO{Role: &role}

	test_utils.MakePatchRequest(t, router, memberURL("acme", member.Membership.ID), admin.BearerToken(), body, http.StatusOK)

	w := test_utils.MakeRequest(router, http.MethodPatch, memberURL("acme", member.Membership.ID), admin.BearerToken(), body)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
}

func Test_ChangeRole_WhenRateLimiterFails_LetsRequestThrough(t *testing.T) {
	env := workspaces_testing.NewEnvironment()
	router := createRouter(env, &workspaces_testing.StaticRateLimiter{Err: errors.New("valkey down")})
	workspace := env.CreateWorkspace("acme")
	admin := env.CreateMember(workspace, "admin", workspaces_enums.RoleAdmin)
	member := env.CreateMember(workspace, "member", workspaces_enums.RoleMember)

	role := workspaces_enums.RoleViewer
	test_utils.MakePatchRequest(
		t,
		router,
		memberURL("acme", member.Membership.ID),
		admin.BearerToken(),
		workspaces_dto.ChangeRoleRequestDTO{Role: &role},
		http.StatusOK,
	)
}

func Test_RemoveMember_WhenAdminRemovesMember_ReturnsNoContent(t *testing.T) {
	env := workspaces_testing.NewEnvironment()
	router := createRouter(env, &workspaces_testing.StaticRateLimiter{})
	workspace := env.CreateWorkspace("acme")
	admin := env.CreateMember(workspace, "admin", workspaces_enums.RoleAdmin)
	member := env.CreateMember(workspace, "member", workspaces_enums.RoleMember)

	test_utils.MakeDeleteRequest(t, router, memberURL("acme", member.Membership.ID), admin.BearerToken(), http.StatusNoContent)

	var response workspaces_dto.GetMembersResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t, router, "/api/v1/workspaces/acme/members", admin.BearerToken(), http.StatusOK, &response,
	)
	require.Len(t, response.Members, 1)
	assert.Equal(t, admin.User.ID, response.Members[0].Member.ID)
}

func Test_RemoveMember_WhenTargetIsSoleProjectAdmin_ReturnsBadRequest(t *testing.T) {
	env := workspaces_testing.NewEnvironment()
	router := createRouter(env, &workspaces_testing.StaticRateLimiter{})
	workspace := env.CreateWorkspace("acme")
	admin := env.CreateMember(workspace, "admin", workspaces_enums.RoleAdmin)
	member := env.CreateMember(workspace, "member", workspaces_enums.RoleMember)
	env.AddToProject(workspace, uuid.New(), member, workspaces_enums.RoleAdmin)

	test_utils.MakeDeleteRequest(t, router, memberURL("acme", member.Membership.ID), admin.BearerToken(), http.StatusBadRequest)
}

func Test_RemoveMember_WhenStoreTimesOut_ReturnsServiceUnavailable(t *testing.T) {
	env := workspaces_testing.NewEnvironment()
	router := createRouter(env, &workspaces_testing.StaticRateLimiter{})
	workspace := env.CreateWorkspace("acme")
	admin := env.CreateMember(workspace, "admin", workspaces_enums.RoleAdmin)
	member := env.CreateMember(workspace, "member", workspaces_enums.RoleMember)
	env.Store.FailOn("CountProjectsWhereUserIsSoleAdmin", context.DeadlineExceeded)

	test_utils.MakeDeleteRequest(
		t, router, memberURL("acme", member.Membership.ID), admin.BearerToken(), http.StatusServiceUnavailable,
	)

	var response workspaces_dto.GetMembersResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t, router, "/api/v1/workspaces/acme/members", admin.BearerToken(), http.StatusOK, &response,
	)
	assert.Len(t, response.Members, 2)
}

func Test_Leave_WhenSoleWorkspaceAdmin_ReturnsBadRequest(t *testing.T) {
	env := workspaces_testing.NewEnvironment()
	router := createRouter(env, &workspaces_testing.StaticRateLimiter{})
	workspace := env.CreateWorkspace("acme")
	admin := env.CreateMember(workspace, "admin", workspaces_enums.RoleAdmin)
	env.CreateMember(workspace, "member", workspaces_enums.RoleMember)

	test_utils.MakePostRequest(t, router, "/api/v1/workspaces/acme/members/leave", admin.BearerToken(), nil, http.StatusBadRequest)
}

func Test_Leave_WhenMemberLeaves_ReturnsNoContent(t *testing.T) {
	env := workspaces_testing.NewEnvironment()
	router := createRouter(env, &workspaces_testing.StaticRateLimiter{})
	workspace := env.CreateWorkspace("acme")
	env.CreateMember(workspace, "admin", workspaces_enums.RoleAdmin)
	member := env.CreateMember(workspace, "member", workspaces_enums.RoleMember)

	test_utils.MakePostRequest(t, router, "/api/v1/workspaces/acme/members/leave", member.BearerToken(), nil, http.StatusNoContent)
	test_utils.MakeGetRequest(t, router, "/api/v1/workspaces/acme/members/me", member.BearerToken(), http.StatusNotFound)
}

func Test_ViewProps_WhenUpdated_AreReturnedWithOwnMembership(t *testing.T) {
	env := workspaces_testing.NewEnvironment()
	router := createRouter(env, &workspaces_testing.StaticRateLimiter{})
	workspace := env.CreateWorkspace("acme")
	member := env.CreateMember(workspace, "member", workspaces_enums.RoleMember)

	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/workspaces/acme/members/me/view-props",
		member.BearerToken(),
		map[string]any{"viewProps": map[string]any{"layout": "kanban"}},
		http.StatusNoContent,
	)

	var response workspaces_dto.MyMembershipResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t, router, "/api/v1/workspaces/acme/members/me", member.BearerToken(), http.StatusOK, &response,
	)
	assert.Equal(t, member.Membership.ID, response.ID)
	assert.JSONEq(t, `{"layout":"kanban"}`, string(response.ViewProps))
}

func Test_ListProjectMembers_WhenCallerInProject_GroupsByProject(t *testing.T) {
	env := workspaces_testing.NewEnvironment()
	router := createRouter(env, &workspaces_testing.StaticRateLimiter{})
	workspace := env.CreateWorkspace("acme")
	member := env.CreateMember(workspace, "member", workspaces_enums.RoleMember)
	other := env.CreateMember(workspace, "other", workspaces_enums.RoleMember)
	projectID := uuid.New()
	env.AddToProject(workspace, projectID, member, workspaces_enums.RoleAdmin)
	env.AddToProject(workspace, projectID, other, workspaces_enums.RoleMember)
	env.AddToProject(workspace, uuid.New(), other, workspaces_enums.RoleAdmin)

	var response workspaces_dto.GetProjectMembersResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t, router, "/api/v1/workspaces/acme/project-members", member.BearerToken(), http.StatusOK, &response,
	)

	require.Len(t, response.Projects, 1)
	assert.Len(t, response.Projects[projectID], 2)
}

func Test_CreateTeam_WhenMembersActive_ReturnsCreated(t *testing.T) {
	env := workspaces_testing.NewEnvironment()
	router := createRouter(env, &workspaces_testing.StaticRateLimiter{})
	workspace := env.CreateWorkspace("acme")
	admin := env.CreateMember(workspace, "admin", workspaces_enums.RoleAdmin)
	member := env.CreateMember(workspace, "member", workspaces_enums.RoleMember)

	var team workspaces_dto.TeamResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/workspaces/acme/teams",
		admin.BearerToken(),
		workspaces_dto.CreateTeamRequestDTO{Name: "Platform", Members: []uuid.UUID{member.User.ID}},
		http.StatusCreated,
		&team,
	)
	assert.Equal(t, "Platform", team.Name)

	var list workspaces_dto.ListTeamsResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t, router, "/api/v1/workspaces/acme/teams", admin.BearerToken(), http.StatusOK, &list,
	)
	require.Len(t, list.Teams, 1)
	assert.Equal(t, []uuid.UUID{member.User.ID}, list.Teams[0].Members)
}

func Test_CreateTeam_WhenMemberNotInWorkspace_ReturnsOffendingMembers(t *testing.T) {
	env := workspaces_testing.NewEnvironment()
	router := createRouter(env, &workspaces_testing.StaticRateLimiter{})
	workspace := env.CreateWorkspace("acme")
	admin := env.CreateMember(workspace, "admin", workspaces_enums.RoleAdmin)
	outsider := env.CreateUser("outsider")
	unknownID := uuid.New()

	var response workspaces_dto.TeamRejectionResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/workspaces/acme/teams",
		admin.BearerToken(),
		workspaces_dto.CreateTeamRequestDTO{Name: "Platform", Members: []uuid.UUID{outsider.User.ID, unknownID}},
		http.StatusBadRequest,
		&response,
	)

	assert.Equal(t, "2 of the member(s) are not a part of the workspace", response.Error)
	require.Len(t, response.Members, 2)
	assert.Equal(t, outsider.User.ID, response.Members[0].ID)
	assert.Equal(t, "outsider", response.Members[0].DisplayName)
	assert.Equal(t, unknownID, response.Members[1].ID)
	assert.Empty(t, response.Members[1].DisplayName)
}

func Test_CreateTeam_WhenCreationLimiterExhausted_ReturnsTooManyRequests(t *testing.T) {
	env := workspaces_testing.NewEnvironment()
	workspace := env.CreateWorkspace("acme")
	admin := env.CreateMember(workspace, "admin", workspaces_enums.RoleAdmin)
	router := env.CreateTestRouter(NewTeamController(
		env.MemberService,
		&workspaces_testing.StaticRateLimiter{},
		rate.NewLimiter(rate.Every(time.Hour), 1),
		5,
		20,
		5*time.Second,
	))

	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/workspaces/acme/teams",
		admin.BearerToken(),
		workspaces_dto.CreateTeamRequestDTO{Name: "First"},
		http.StatusCreated,
	)
	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/workspaces/acme/teams",
		admin.BearerToken(),
		workspaces_dto.CreateTeamRequestDTO{Name: "Second"},
		http.StatusTooManyRequests,
	)
}

func Test_ListTeams_WhenActorNotAdmin_ReturnsForbidden(t *testing.T) {
	env := workspaces_testing.NewEnvironment()
	router := createRouter(env, &workspaces_testing.StaticRateLimiter{})
	workspace := env.CreateWorkspace("acme")
	member := env.CreateMember(workspace, "member", workspaces_enums.RoleMember)

	test_utils.MakeGetRequest(t, router, "/api/v1/workspaces/acme/teams", member.BearerToken(), http.StatusForbidden)
}

func Test_GetAuditLogs_WhenAdminRequests_ReturnsPage(t *testing.T) {
	env := workspaces_testing.NewEnvironment()
	router := createRouter(env, &workspaces_testing.StaticRateLimiter{})
	workspace := env.CreateWorkspace("acme")
	admin := env.CreateMember(workspace, "admin", workspaces_enums.RoleAdmin)
	env.AuditLogReader.Response = &audit_logs.GetAuditLogsResponse{
		AuditLogs: []*audit_logs.AuditLogDTO{{ID: uuid.New(), Message: "Member removed from workspace: bob"}},
		Total:     1,
		Limit:     10,
	}

	var response audit_logs.GetAuditLogsResponse
	test_utils.MakeGetRequestAndUnmarshal(
		t, router, "/api/v1/workspaces/acme/audit-logs?limit=10", admin.BearerToken(), http.StatusOK, &response,
	)

	require.Len(t, response.AuditLogs, 1)
	assert.Equal(t, int64(1), response.Total)
}

func Test_GetAuditLogs_WhenMemberRequests_ReturnsForbidden(t *testing.T) {
	env := workspaces_testing.NewEnvironment()
	router := createRouter(env, &workspaces_testing.StaticRateLimiter{})
	workspace := env.CreateWorkspace("acme")
	member := env.CreateMember(workspace, "member", workspaces_enums.RoleMember)

	test_utils.MakeGetRequest(t, router, "/api/v1/workspaces/acme/audit-logs", member.BearerToken(), http.StatusForbidden)
}
