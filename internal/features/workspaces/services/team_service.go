package workspaces_services

import (
	"context"
	"fmt"
	"strings"

	users_dto "teamspace/internal/features/users/dto"
	users_models "teamspace/internal/features/users/models"
	workspaces_dto "teamspace/internal/features/workspaces/dto"
	workspaces_errors "teamspace/internal/features/workspaces/errors"
	workspaces_models "teamspace/internal/features/workspaces/models"
	workspaces_repositories "teamspace/internal/features/workspaces/repositories"

	"github.com/google/uuid"
)

// CreateTeam creates the team only when every requested member holds an
// active membership in the workspace. Otherwise nothing is written and the
// rejection lists the offending ids.
func (s *WorkspaceMemberService) CreateTeam(
	ctx context.Context,
	slug string,
	request *workspaces_dto.CreateTeamRequestDTO,
	actor *users_models.User,
) (*workspaces_dto.TeamResponseDTO, error) {
	name := strings.TrimSpace(request.Name)
	if name == "" {
		return nil, workspaces_errors.NewRuleRejection("team name is required")
	}

	workspace, err := s.workspaceService.GetWorkspaceWithCache(ctx, slug)
	if err != nil {
		return nil, err
	}

	memberIDs := uniqueIDs(request.Members)
	team := &workspaces_models.Team{
		WorkspaceID: workspace.ID,
		Name:        name,
		Description: request.Description,
		CreatedBy:   actor.ID,
	}

	err = s.membershipStore.InTransaction(ctx, workspace.ID, func(tx workspaces_repositories.MembershipStore) error {
		actorMember, err := tx.GetActiveWorkspaceMembership(ctx, workspace.ID, actor.ID)
		if err != nil {
			return err
		}

		if rejection := CanAdministerWorkspace(actorMember); rejection != nil {
			return rejection
		}

		existingTeam, err := tx.GetTeamByName(ctx, workspace.ID, name)
		if err != nil {
			return err
		}
		if existingTeam != nil {
			return workspaces_errors.NewRuleRejection(ReasonTeamNameTaken)
		}

		activeIDs, err := tx.FilterActiveMemberUserIDs(ctx, workspace.ID, memberIDs)
		if err != nil {
			return err
		}

		if rejection := CanCreateTeam(request.Members, activeIDs); rejection != nil {
			return rejection
		}

		return tx.CreateTeam(ctx, team, memberIDs)
	})
	if err != nil {
		return nil, err
	}

	s.afterCommit(ctx, workspace, actor, fmt.Sprintf("Team created: %s with %d member(s)", team.Name, len(memberIDs)))

	return toTeamResponseDTO(team), nil
}

func (s *WorkspaceMemberService) ListTeams(
	ctx context.Context,
	slug string,
	actor *users_models.User,
) (*workspaces_dto.ListTeamsResponseDTO, error) {
	workspace, err := s.workspaceService.GetWorkspaceWithCache(ctx, slug)
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

	teams, err := s.membershipStore.ListTeams(ctx, workspace.ID)
	if err != nil {
		return nil, err
	}

	response := &workspaces_dto.ListTeamsResponseDTO{
		Teams: make([]workspaces_dto.TeamResponseDTO, 0, len(teams)),
	}
	for _, team := range teams {
		response.Teams = append(response.Teams, *toTeamResponseDTO(team))
	}

	return response, nil
}

// DescribeUsers returns a summary for every id. Unknown users are reported
// by id only.
func (s *WorkspaceMemberService) DescribeUsers(ctx context.Context, userIDs []uuid.UUID) []users_dto.UserLiteDTO {
	usersByID := make(map[uuid.UUID]*users_models.User, len(userIDs))

	users, err := s.userLookup.GetUsersByIDs(ctx, userIDs)
	if err != nil {
		s.logger.Warn("failed to load users for rejection", "error", err)
	}
	for _, user := range users {
		usersByID[user.ID] = user
	}

	summaries := make([]users_dto.UserLiteDTO, 0, len(userIDs))
	for _, userID := range userIDs {
		user, ok := usersByID[userID]
		if !ok {
			summaries = append(summaries, users_dto.UserLiteDTO{ID: userID})
			continue
		}

		summaries = append(summaries, users_dto.UserLiteDTO{
			ID:          user.ID,
			DisplayName: user.DisplayName,
			FirstName:   user.FirstName,
			LastName:    user.LastName,
			Avatar:      user.Avatar,
			IsBot:       user.IsBot,
		})
	}

	return summaries
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	unique := make([]uuid.UUID, 0, len(ids))

	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}

		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	return unique
}

func toTeamResponseDTO(team *workspaces_models.Team) *workspaces_dto.TeamResponseDTO {
	members := team.Members
	if members == nil {
		members = []uuid.UUID{}
	}

	return &workspaces_dto.TeamResponseDTO{
		ID:          team.ID,
		WorkspaceID: team.WorkspaceID,
		Name:        team.Name,
		Description: team.Description,
		Members:     members,
		CreatedBy:   team.CreatedBy,
		CreatedAt:   team.CreatedAt,
	}
}
