package workspaces_testing

import (
	"context"
	"time"

	"teamspace/internal/features/audit_logs"
	users_middleware "teamspace/internal/features/users/middleware"
	users_services "teamspace/internal/features/users/services"
	users_testing "teamspace/internal/features/users/testing"
	workspaces_dto "teamspace/internal/features/workspaces/dto"
	workspaces_enums "teamspace/internal/features/workspaces/enums"
	workspaces_models "teamspace/internal/features/workspaces/models"
	workspaces_services "teamspace/internal/features/workspaces/services"
	"teamspace/internal/util/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Environment wires the workspace services to in-memory collaborators.
type Environment struct {
	Directory      *users_testing.UserDirectory
	UserService    *users_services.UserService
	Store          *MemoryStore
	MembersCache   *MemoryCache[workspaces_dto.GetMembersResponseDTO]
	MembersGen     *MemoryCounter
	WorkspaceCache *MemoryCache[workspaces_models.Workspace]
	AuditLogs      *AuditLogRecorder
	AuditLogReader *StaticAuditLogReader

	WorkspaceService *workspaces_services.WorkspaceService
	MemberService    *workspaces_services.WorkspaceMemberService
}

func NewEnvironment() *Environment {
	directory := users_testing.NewUserDirectory()
	store := NewMemoryStore(directory)

	env := &Environment{
		Directory:      directory,
		UserService:    users_testing.NewTestUserService(directory),
		Store:          store,
		MembersCache:   NewMemoryCache[workspaces_dto.GetMembersResponseDTO](),
		MembersGen:     NewMemoryCounter(),
		WorkspaceCache: NewMemoryCache[workspaces_models.Workspace](),
		AuditLogs:      &AuditLogRecorder{},
		AuditLogReader: &StaticAuditLogReader{},
	}

	env.WorkspaceService = workspaces_services.NewWorkspaceService(
		store,
		store,
		env.AuditLogReader,
		env.WorkspaceCache,
	)

	env.MemberService = workspaces_services.NewWorkspaceMemberService(
		store,
		env.WorkspaceService,
		directory,
		env.MembersCache,
		env.MembersGen,
		env.AuditLogs,
		2*time.Hour,
		logger.GetLogger(),
	)

	return env
}

type TestMember struct {
	*users_testing.TestUser
	Membership *workspaces_models.WorkspaceMember
}

func (e *Environment) CreateWorkspace(slug string) *workspaces_models.Workspace {
	return e.Store.AddWorkspace(slug)
}

func (e *Environment) CreateUser(name string) *users_testing.TestUser {
	return users_testing.CreateTestUser(e.Directory, e.UserService, name)
}

// CreateMember creates a user holding an active membership with role.
func (e *Environment) CreateMember(
	workspace *workspaces_models.Workspace,
	name string,
	role workspaces_enums.WorkspaceRole,
) *TestMember {
	user := e.CreateUser(name)
	membership := e.Store.AddWorkspaceMember(workspace.ID, user.User.ID, role)

	return &TestMember{TestUser: user, Membership: membership}
}

func (e *Environment) AddToProject(
	workspace *workspaces_models.Workspace,
	projectID uuid.UUID,
	member *TestMember,
	role workspaces_enums.WorkspaceRole,
) *workspaces_models.ProjectMember {
	return e.Store.AddProjectMember(workspace.ID, projectID, member.User.ID, role)
}

// StaticAuditLogReader serves a fixed audit log page.
type StaticAuditLogReader struct {
	Response *audit_logs.GetAuditLogsResponse
}

func (r *StaticAuditLogReader) GetWorkspaceAuditLogs(
	_ context.Context,
	_ uuid.UUID,
	request *audit_logs.GetAuditLogsRequest,
) (*audit_logs.GetAuditLogsResponse, error) {
	if r.Response != nil {
		return r.Response, nil
	}

	return &audit_logs.GetAuditLogsResponse{
		AuditLogs: []*audit_logs.AuditLogDTO{},
		Limit:     request.Limit,
		Offset:    request.Offset,
	}, nil
}

type ControllerInterface interface {
	RegisterRoutes(router *gin.RouterGroup)
}

// CreateTestRouter mounts controllers under /api/v1 behind the auth middleware.
func (e *Environment) CreateTestRouter(controllers ...ControllerInterface) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	v1 := router.Group("/api/v1")
	protected := v1.Group("")
	protected.Use(users_middleware.AuthMiddleware(e.UserService))

	for _, controller := range controllers {
		controller.RegisterRoutes(protected)
	}

	return router
}
