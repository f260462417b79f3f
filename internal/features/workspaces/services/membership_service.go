package workspaces_services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	users_models "teamspace/internal/features/users/models"
	workspaces_dto "teamspace/internal/features/workspaces/dto"
	workspaces_enums "teamspace/internal/features/workspaces/enums"
	workspaces_errors "teamspace/internal/features/workspaces/errors"
	workspaces_interfaces "teamspace/internal/features/workspaces/interfaces"
	workspaces_models "teamspace/internal/features/workspaces/models"
	workspaces_repositories "teamspace/internal/features/workspaces/repositories"

	"github.com/google/uuid"
)

const (
	membersCachePrefix      = "ts_workspace_members:"
	membersGenerationPrefix = "ts_workspace_members_gen:"

	// Invalidation outlives the request: a client that disconnects after
	// the commit must not leave the old listing reachable.
	membersInvalidationTimeout = 5 * time.Second

	membersViewDetailed = "detailed"
	membersViewBasic    = "basic"
)

type UserLookup interface {
	GetUsersByIDs(ctx context.Context, userIDs []uuid.UUID) ([]*users_models.User, error)
}

// WorkspaceMemberService runs every membership mutation as one transaction:
// load the actor and target, re-read the counts the rules need, evaluate,
// write, commit. Only after a commit is the member listing cache invalidated
// and the audit log written.
type WorkspaceMemberService struct {
	membershipStore  workspaces_repositories.MembershipStore
	workspaceService *WorkspaceService
	userLookup       UserLookup
	membersCache     workspaces_interfaces.Cache[workspaces_dto.GetMembersResponseDTO]
	membersGen       workspaces_interfaces.GenerationCounter
	auditLogWriter   workspaces_interfaces.AuditLogWriter
	membersCacheTTL  time.Duration
	logger           *slog.Logger
}

func NewWorkspaceMemberService(
	membershipStore workspaces_repositories.MembershipStore,
	workspaceService *WorkspaceService,
	userLookup UserLookup,
	membersCache workspaces_interfaces.Cache[workspaces_dto.GetMembersResponseDTO],
	membersGen workspaces_interfaces.GenerationCounter,
	auditLogWriter workspaces_interfaces.AuditLogWriter,
	membersCacheTTL time.Duration,
	logger *slog.Logger,
) *WorkspaceMemberService {
	return &WorkspaceMemberService{
		membershipStore:  membershipStore,
		workspaceService: workspaceService,
		userLookup:       userLookup,
		membersCache:     membersCache,
		membersGen:       membersGen,
		auditLogWriter:   auditLogWriter,
		membersCacheTTL:  membersCacheTTL,
		logger:           logger,
	}
}

func (s *WorkspaceMemberService) GetMembers(
	ctx context.Context,
	slug string,
	actor *users_models.User,
) (*workspaces_dto.GetMembersResponseDTO, error) {
	workspace, err := s.workspaceService.GetWorkspaceWithCache(ctx, slug)
	if err != nil {
		return nil, err
	}

	actorMember, err := s.membershipStore.GetActiveWorkspaceMembership(ctx, workspace.ID, actor.ID)
	if err != nil {
		return nil, err
	}

	detailed := actorMember.Role.CanSeeMemberDetails()

	// The generation is read before the store. A commit that lands after the
	// store read advances it, so the entry written below is never served again.
	generation, genErr := s.membersGen.Current(ctx, slug)
	if genErr != nil {
		s.logger.Warn("member listing generation unavailable, bypassing cache", "slug", slug, "error", genErr)
	}
	cacheKey := membersCacheKey(slug, generation, detailed)

	if genErr == nil {
		if cached := s.membersCache.Get(ctx, cacheKey); cached != nil {
			return cached, nil
		}
	}

	members, err := s.membershipStore.ListActiveWorkspaceMemberships(ctx, workspace.ID)
	if err != nil {
		return nil, err
	}

	response := &workspaces_dto.GetMembersResponseDTO{
		Members: make([]workspaces_dto.WorkspaceMemberResponseDTO, 0, len(members)),
	}
	for _, member := range members {
		response.Members = append(response.Members, toMemberListingDTO(member, detailed))
	}

	if genErr == nil {
		s.membersCache.SetWithExpiry(ctx, cacheKey, response, s.membersCacheTTL)
	}

	return response, nil
}

// ChangeRole updates the role of the membership identified by membershipID.
// A nil requestedRole keeps the current role but is still validated.
func (s *WorkspaceMemberService) ChangeRole(
	ctx context.Context,
	slug string,
	membershipID uuid.UUID,
	requestedRole *workspaces_enums.WorkspaceRole,
	actor *users_models.User,
) (*workspaces_dto.WorkspaceMemberResponseDTO, error) {
	workspace, err := s.workspaceService.GetWorkspaceWithCache(ctx, slug)
	if err != nil {
		return nil, err
	}

	var target *workspaces_models.WorkspaceMember
	var previousRole workspaces_enums.WorkspaceRole

	err = s.membershipStore.InTransaction(ctx, workspace.ID, func(tx workspaces_repositories.MembershipStore) error {
		actorMember, err := tx.GetActiveWorkspaceMembership(ctx, workspace.ID, actor.ID)
		if err != nil {
			return err
		}

		if rejection := CanManageMembers(actorMember); rejection != nil {
			return rejection
		}

		target, err = tx.GetActiveWorkspaceMembershipByID(ctx, workspace.ID, membershipID)
		if err != nil {
			return err
		}

		previousRole = target.Role
		newRole := target.Role
		if requestedRole != nil {
			newRole = *requestedRole
		}

		if rejection := CanChangeRole(actorMember, target, newRole); rejection != nil {
			return rejection
		}

		if newRole == previousRole {
			return nil
		}

		if err := tx.UpdateWorkspaceRole(ctx, workspace.ID, target.MemberID, newRole); err != nil {
			return err
		}

		target.Role = newRole
		return nil
	})
	if err != nil {
		return nil, err
	}

	targetUser := s.lookupUser(ctx, target.MemberID)

	auditMessage := ""
	if target.Role != previousRole {
		auditMessage = fmt.Sprintf(
			"Member role changed: %s from %s to %s",
			describeUser(targetUser, target.MemberID),
			previousRole,
			target.Role,
		)
	}
	s.afterCommit(ctx, workspace, actor, auditMessage)

	return toMemberResponseDTO(target, targetUser), nil
}

func (s *WorkspaceMemberService) RemoveMember(
	ctx context.Context,
	slug string,
	membershipID uuid.UUID,
	actor *users_models.User,
) error {
	workspace, err := s.workspaceService.GetWorkspaceWithCache(ctx, slug)
	if err != nil {
		return err
	}

	var target *workspaces_models.WorkspaceMember

	err = s.membershipStore.InTransaction(ctx, workspace.ID, func(tx workspaces_repositories.MembershipStore) error {
		actorMember, err := tx.GetActiveWorkspaceMembership(ctx, workspace.ID, actor.ID)
		if err != nil {
			return err
		}

		if rejection := CanManageMembers(actorMember); rejection != nil {
			return rejection
		}

		target, err = tx.GetActiveWorkspaceMembershipByID(ctx, workspace.ID, membershipID)
		if err != nil {
			return err
		}

		soleAdminProjects, err := tx.CountProjectsWhereUserIsSoleAdmin(ctx, workspace.ID, target.MemberID)
		if err != nil {
			return err
		}

		if rejection := CanRemoveMember(actorMember, target, soleAdminProjects); rejection != nil {
			return rejection
		}

		return deactivateWithCascade(ctx, tx, workspace.ID, target.MemberID)
	})
	if err != nil {
		return err
	}

	targetUser := s.lookupUser(ctx, target.MemberID)
	s.afterCommit(
		ctx,
		workspace,
		actor,
		fmt.Sprintf("Member removed from workspace: %s", describeUser(targetUser, target.MemberID)),
	)

	return nil
}

func (s *WorkspaceMemberService) Leave(ctx context.Context, slug string, actor *users_models.User) error {
	workspace, err := s.workspaceService.GetWorkspaceWithCache(ctx, slug)
	if err != nil {
		return err
	}

	err = s.membershipStore.InTransaction(ctx, workspace.ID, func(tx workspaces_repositories.MembershipStore) error {
		actorMember, err := tx.GetActiveWorkspaceMembership(ctx, workspace.ID, actor.ID)
		if err != nil {
			return err
		}

		activeAdmins, err := tx.CountActiveAdmins(ctx, workspace.ID)
		if err != nil {
			return err
		}

		soleAdminProjects, err := tx.CountProjectsWhereUserIsSoleAdmin(ctx, workspace.ID, actor.ID)
		if err != nil {
			return err
		}

		if rejection := CanLeave(actorMember, activeAdmins, soleAdminProjects); rejection != nil {
			return rejection
		}

		return deactivateWithCascade(ctx, tx, workspace.ID, actor.ID)
	})
	if err != nil {
		return err
	}

	s.afterCommit(ctx, workspace, actor, fmt.Sprintf("Member left workspace: %s", actor.Email))

	return nil
}

func (s *WorkspaceMemberService) GetMyMembership(
	ctx context.Context,
	slug string,
	actor *users_models.User,
) (*workspaces_dto.MyMembershipResponseDTO, error) {
	workspace, err := s.workspaceService.GetWorkspaceWithCache(ctx, slug)
	if err != nil {
		return nil, err
	}

	member, err := s.membershipStore.GetActiveWorkspaceMembership(ctx, workspace.ID, actor.ID)
	if err != nil {
		return nil, err
	}

	viewProps := json.RawMessage("{}")
	if member.ViewProps != "" {
		viewProps = json.RawMessage(member.ViewProps)
	}

	return &workspaces_dto.MyMembershipResponseDTO{
		ID:          member.ID,
		WorkspaceID: member.WorkspaceID,
		MemberID:    member.MemberID,
		Role:        member.Role,
		ViewProps:   viewProps,
		CompanyRole: member.CompanyRole,
		CreatedAt:   member.CreatedAt,
	}, nil
}

// UpdateViewProps replaces the caller's view preferences. The blob is not
// part of any cached listing.
func (s *WorkspaceMemberService) UpdateViewProps(
	ctx context.Context,
	slug string,
	viewProps json.RawMessage,
	actor *users_models.User,
) error {
	if !json.Valid(viewProps) {
		return workspaces_errors.NewRuleRejection("view props must be valid JSON")
	}

	workspace, err := s.workspaceService.GetWorkspaceWithCache(ctx, slug)
	if err != nil {
		return err
	}

	return s.membershipStore.UpdateViewProps(ctx, workspace.ID, actor.ID, string(viewProps))
}

// GetProjectMembers groups the active members of every project the caller
// belongs to by project id.
func (s *WorkspaceMemberService) GetProjectMembers(
	ctx context.Context,
	slug string,
	actor *users_models.User,
) (*workspaces_dto.GetProjectMembersResponseDTO, error) {
	workspace, err := s.workspaceService.GetWorkspaceWithCache(ctx, slug)
	if err != nil {
		return nil, err
	}

	if _, err := s.membershipStore.GetActiveWorkspaceMembership(ctx, workspace.ID, actor.ID); err != nil {
		return nil, err
	}

	members, err := s.membershipStore.ListActiveProjectMembershipsInUserProjects(ctx, workspace.ID, actor.ID)
	if err != nil {
		return nil, err
	}

	response := &workspaces_dto.GetProjectMembersResponseDTO{
		Projects: make(map[uuid.UUID][]workspaces_dto.ProjectMemberResponseDTO),
	}
	for _, member := range members {
		response.Projects[member.ProjectID] = append(
			response.Projects[member.ProjectID],
			workspaces_dto.ProjectMemberResponseDTO{
				ID:        member.ID,
				ProjectID: member.ProjectID,
				MemberID:  member.MemberID,
				Role:      member.Role,
			},
		)
	}

	return response, nil
}

// deactivateWithCascade deactivates project memberships before the
// workspace membership so no reader sees an inactive workspace member with
// active project memberships.
func deactivateWithCascade(
	ctx context.Context,
	tx workspaces_repositories.MembershipStore,
	workspaceID, userID uuid.UUID,
) error {
	if err := tx.DeactivateAllProjectMembershipsForUser(ctx, workspaceID, userID); err != nil {
		return err
	}

	return tx.DeactivateWorkspaceMembership(ctx, workspaceID, userID)
}

func (s *WorkspaceMemberService) afterCommit(
	ctx context.Context,
	workspace *workspaces_models.Workspace,
	actor *users_models.User,
	auditMessage string,
) {
	invalidationCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), membersInvalidationTimeout)
	defer cancel()

	s.InvalidateMembersCache(invalidationCtx, workspace.Slug)

	if auditMessage != "" {
		s.auditLogWriter.WriteAuditLog(auditMessage, &actor.ID, &workspace.ID)
	}
}

// InvalidateMembersCache retires the current listing generation, then drops
// the entries of retired generations.
func (s *WorkspaceMemberService) InvalidateMembersCache(ctx context.Context, slug string) {
	if _, err := s.membersGen.Advance(ctx, slug); err != nil {
		s.logger.Error("failed to advance member listing generation", "slug", slug, "error", err)
	}

	s.membersCache.InvalidateByPattern(ctx, slug+":*")
}

func (s *WorkspaceMemberService) lookupUser(ctx context.Context, userID uuid.UUID) *users_models.User {
	users, err := s.userLookup.GetUsersByIDs(ctx, []uuid.UUID{userID})
	if err != nil {
		s.logger.Warn("failed to load user", "userId", userID, "error", err)
		return nil
	}

	if len(users) == 0 {
		return nil
	}

	return users[0]
}

func membersCacheKey(slug string, generation int64, detailed bool) string {
	view := membersViewBasic
	if detailed {
		view = membersViewDetailed
	}

	return fmt.Sprintf("%s:%d:%s", slug, generation, view)
}

func describeUser(user *users_models.User, userID uuid.UUID) string {
	if user == nil {
		return userID.String()
	}

	return user.Email
}

func toMemberListingDTO(
	member *workspaces_models.WorkspaceMemberWithUser,
	detailed bool,
) workspaces_dto.WorkspaceMemberResponseDTO {
	memberUser := workspaces_dto.MemberUserDTO{
		ID:          member.MemberID,
		DisplayName: member.DisplayName,
		Avatar:      member.Avatar,
	}

	if detailed {
		memberUser.Email = member.Email
		memberUser.FirstName = member.FirstName
		memberUser.LastName = member.LastName
	}

	return workspaces_dto.WorkspaceMemberResponseDTO{
		ID:     member.ID,
		Member: memberUser,
		Role:   member.Role,
	}
}

func toMemberResponseDTO(
	member *workspaces_models.WorkspaceMember,
	user *users_models.User,
) *workspaces_dto.WorkspaceMemberResponseDTO {
	memberUser := workspaces_dto.MemberUserDTO{ID: member.MemberID}
	if user != nil {
		memberUser.Email = user.Email
		memberUser.DisplayName = user.DisplayName
		memberUser.FirstName = user.FirstName
		memberUser.LastName = user.LastName
		memberUser.Avatar = user.Avatar
	}

	return &workspaces_dto.WorkspaceMemberResponseDTO{
		ID:     member.ID,
		Member: memberUser,
		Role:   member.Role,
	}
}
