package workspaces_services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"teamspace/internal/features/audit_logs"
	users_models "teamspace/internal/features/users/models"
	workspaces_errors "teamspace/internal/features/workspaces/errors"
	workspaces_interfaces "teamspace/internal/features/workspaces/interfaces"
	workspaces_models "teamspace/internal/features/workspaces/models"
	workspaces_repositories "teamspace/internal/features/workspaces/repositories"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

const (
	workspaceCachePrefix = "ts_workspace:"
	workspaceCacheExpiry = 10 * time.Minute
	notFoundCacheExpiry  = time.Minute
)

type WorkspaceReader interface {
	GetWorkspaceBySlug(ctx context.Context, slug string) (*workspaces_models.Workspace, error)
}

type AuditLogReader interface {
	GetWorkspaceAuditLogs(
		ctx context.Context,
		workspaceID uuid.UUID,
		request *audit_logs.GetAuditLogsRequest,
	) (*audit_logs.GetAuditLogsResponse, error)
}

type WorkspaceService struct {
	workspaceReader WorkspaceReader
	membershipStore workspaces_repositories.MembershipStore
	auditLogReader  AuditLogReader
	workspaceCache  workspaces_interfaces.Cache[workspaces_models.Workspace]
	singleflight    singleflight.Group // Prevents thundering herd on DB calls
}

func NewWorkspaceService(
	workspaceReader WorkspaceReader,
	membershipStore workspaces_repositories.MembershipStore,
	auditLogReader AuditLogReader,
	workspaceCache workspaces_interfaces.Cache[workspaces_models.Workspace],
) *WorkspaceService {
	return &WorkspaceService{
		workspaceReader: workspaceReader,
		membershipStore: membershipStore,
		auditLogReader:  auditLogReader,
		workspaceCache:  workspaceCache,
	}
}

func (s *WorkspaceService) GetWorkspaceWithCache(
	ctx context.Context,
	slug string,
) (*workspaces_models.Workspace, error) {
	if cachedWorkspace := s.workspaceCache.Get(ctx, slug); cachedWorkspace != nil {
		if cachedWorkspace.IsNotExists {
			return nil, workspaces_errors.ErrWorkspaceNotFound
		}

		return cachedWorkspace, nil
	}

	result, err, _ := s.singleflight.Do(slug, func() (any, error) {
		return s.workspaceReader.GetWorkspaceBySlug(ctx, slug)
	})
	if err != nil {
		if errors.Is(err, workspaces_errors.ErrWorkspaceNotFound) {
			// Cache the unknown slug to prevent future DB hits
			s.workspaceCache.SetWithExpiry(
				ctx,
				slug,
				&workspaces_models.Workspace{Slug: slug, IsNotExists: true},
				notFoundCacheExpiry,
			)
		}

		return nil, err
	}

	workspace, ok := result.(*workspaces_models.Workspace)
	if !ok {
		return nil, fmt.Errorf("failed to cast result to Workspace")
	}

	s.workspaceCache.SetWithExpiry(ctx, slug, workspace, workspaceCacheExpiry)

	return workspace, nil
}

func (s *WorkspaceService) GetWorkspaceAuditLogs(
	ctx context.Context,
	slug string,
	request *audit_logs.GetAuditLogsRequest,
	actor *users_models.User,
) (*audit_logs.GetAuditLogsResponse, error) {
	workspace, err := s.GetWorkspaceWithCache(ctx, slug)
	if err != nil {
		return nil, err
	}

	actorMember, err := s.membershipStore.GetActiveWorkspaceMembership(ctx, workspace.ID, actor.ID)
	if err != nil {
		return nil, err
	}

	if rejection := CanAdministerWorkspace(actorMember); rejection != nil {
		return nil, rejection
	}

	response, err := s.auditLogReader.GetWorkspaceAuditLogs(ctx, workspace.ID, request)
	if err != nil {
		return nil, workspaces_errors.WrapStoreError("get audit logs", err)
	}

	return response, nil
}
