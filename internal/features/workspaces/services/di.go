package workspaces_services

import (
	"sync"

	"teamspace/internal/cache"
	"teamspace/internal/config"
	"teamspace/internal/features/audit_logs"
	users_services "teamspace/internal/features/users/services"
	workspaces_dto "teamspace/internal/features/workspaces/dto"
	workspaces_models "teamspace/internal/features/workspaces/models"
	workspaces_repositories "teamspace/internal/features/workspaces/repositories"
	"teamspace/internal/storage"
	cache_utils "teamspace/internal/util/cache"
	"teamspace/internal/util/logger"
)

var (
	servicesOnce           sync.Once
	workspaceService       *WorkspaceService
	workspaceMemberService *WorkspaceMemberService
)

func setUpServices() {
	servicesOnce.Do(func() {
		db := storage.GetDb()
		valkeyClient := cache.GetCache()
		auditLogService := audit_logs.GetAuditLogService()
		membershipRepository := workspaces_repositories.NewMembershipRepository(db)

		workspaceService = NewWorkspaceService(
			workspaces_repositories.NewWorkspaceRepository(db),
			membershipRepository,
			auditLogService,
			cache_utils.NewCacheUtil[workspaces_models.Workspace](valkeyClient, workspaceCachePrefix),
		)

		workspaceMemberService = NewWorkspaceMemberService(
			membershipRepository,
			workspaceService,
			users_services.GetUserService(),
			cache_utils.NewCacheUtil[workspaces_dto.GetMembersResponseDTO](valkeyClient, membersCachePrefix),
			cache_utils.NewCounter(valkeyClient, membersGenerationPrefix),
			auditLogService,
			config.GetEnv().MembersCacheTTL,
			logger.GetLogger(),
		)
	})
}

func GetWorkspaceService() *WorkspaceService {
	setUpServices()
	return workspaceService
}

func GetWorkspaceMemberService() *WorkspaceMemberService {
	setUpServices()
	return workspaceMemberService
}
