package workspaces_repositories

import (
	"context"
	"errors"
	"time"

	workspaces_enums "teamspace/internal/features/workspaces/enums"
	workspaces_errors "teamspace/internal/features/workspaces/errors"
	workspaces_models "teamspace/internal/features/workspaces/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MembershipRepository struct {
	db *gorm.DB
}

var _ MembershipStore = (*MembershipRepository)(nil)

func NewMembershipRepository(db *gorm.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

func (r *MembershipRepository) InTransaction(
	ctx context.Context,
	workspaceID uuid.UUID,
	fn func(tx MembershipStore) error,
) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var workspace workspaces_models.Workspace

		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", workspaceID).
			First(&workspace).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return workspaces_errors.ErrWorkspaceNotFound
			}

			return err
		}

		return fn(&MembershipRepository{db: tx})
	})

	return workspaces_errors.WrapStoreError("membership transaction", err)
}

func (r *MembershipRepository) GetActiveWorkspaceMembership(
	ctx context.Context,
	workspaceID, userID uuid.UUID,
) (*workspaces_models.WorkspaceMember, error) {
	var member workspaces_models.WorkspaceMember

	err := r.db.WithContext(ctx).
		Where("workspace_id = ? AND member_id = ? AND is_active = true", workspaceID, userID).
		First(&member).Error
	if err != nil {
		return nil, workspaces_errors.WrapStoreError("get workspace member", err)
	}

	return &member, nil
}

func (r *MembershipRepository) GetActiveWorkspaceMembershipByID(
	ctx context.Context,
	workspaceID, membershipID uuid.UUID,
) (*workspaces_models.WorkspaceMember, error) {
	var member workspaces_models.WorkspaceMember

	err := r.db.WithContext(ctx).
		Joins("JOIN users ON users.id = workspace_members.member_id AND users.is_bot = false").
		Where(
			"workspace_members.id = ? AND workspace_members.workspace_id = ? AND workspace_members.is_active = true",
			membershipID,
			workspaceID,
		).
		First(&member).Error
	if err != nil {
		return nil, workspaces_errors.WrapStoreError("get workspace member by id", err)
	}

	return &member, nil
}

func (r *MembershipRepository) ListActiveWorkspaceMemberships(
	ctx context.Context,
	workspaceID uuid.UUID,
) ([]*workspaces_models.WorkspaceMemberWithUser, error) {
	members := make([]*workspaces_models.WorkspaceMemberWithUser, 0)

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			wm.id,
			wm.workspace_id,
			wm.member_id,
			wm.role,
			wm.is_active,
			wm.view_props,
			wm.company_role,
			wm.created_at,
			wm.updated_at,
			u.email,
			u.display_name,
			u.first_name,
			u.last_name,
			u.avatar,
			u.is_bot
		FROM workspace_members wm
		JOIN users u ON u.id = wm.member_id
		WHERE wm.workspace_id = ? AND wm.is_active = true
		ORDER BY wm.created_at ASC`, workspaceID).
		Scan(&members).Error
	if err != nil {
		return nil, workspaces_errors.WrapStoreError("list workspace members", err)
	}

	return members, nil
}

func (r *MembershipRepository) CountActiveAdmins(ctx context.Context, workspaceID uuid.UUID) (int64, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Model(&workspaces_models.WorkspaceMember{}).
		Where("workspace_id = ? AND is_active = true AND role = ?", workspaceID, workspaces_enums.RoleAdminTier).
		Count(&count).Error
	if err != nil {
		return 0, workspaces_errors.WrapStoreError("count workspace admins", err)
	}

	return count, nil
}

func (r *MembershipRepository) DeactivateWorkspaceMembership(
	ctx context.Context,
	workspaceID, userID uuid.UUID,
) error {
	return r.updateActiveWorkspaceMember(ctx, "deactivate workspace member", workspaceID, userID, map[string]any{
		"is_active": false,
	})
}

func (r *MembershipRepository) UpdateWorkspaceRole(
	ctx context.Context,
	workspaceID, userID uuid.UUID,
	role workspaces_enums.WorkspaceRole,
) error {
	return r.updateActiveWorkspaceMember(ctx, "update workspace role", workspaceID, userID, map[string]any{
		"role": role,
	})
}

func (r *MembershipRepository) UpdateViewProps(
	ctx context.Context,
	workspaceID, userID uuid.UUID,
	viewProps string,
) error {
	return r.updateActiveWorkspaceMember(ctx, "update view props", workspaceID, userID, map[string]any{
		"view_props": viewProps,
	})
}

func (r *MembershipRepository) ListActiveProjectMembershipsForUser(
	ctx context.Context,
	workspaceID, userID uuid.UUID,
) ([]*workspaces_models.ProjectMember, error) {
	members := make([]*workspaces_models.ProjectMember, 0)

	err := r.db.WithContext(ctx).
		Where("workspace_id = ? AND member_id = ? AND is_active = true", workspaceID, userID).
		Order("created_at ASC").
		Find(&members).Error
	if err != nil {
		return nil, workspaces_errors.WrapStoreError("list project memberships", err)
	}

	return members, nil
}

func (r *MembershipRepository) ListActiveProjectMembershipsInUserProjects(
	ctx context.Context,
	workspaceID, userID uuid.UUID,
) ([]*workspaces_models.ProjectMember, error) {
	members := make([]*workspaces_models.ProjectMember, 0)

	userProjects := r.db.
		Model(&workspaces_models.ProjectMember{}).
		Select("project_id").
		Where("workspace_id = ? AND member_id = ? AND is_active = true", workspaceID, userID)

	err := r.db.WithContext(ctx).
		Where("workspace_id = ? AND is_active = true AND project_id IN (?)", workspaceID, userProjects).
		Order("project_id, created_at ASC").
		Find(&members).Error
	if err != nil {
		return nil, workspaces_errors.WrapStoreError("list project members", err)
	}

	return members, nil
}

func (r *MembershipRepository) CountProjectsWhereUserIsSoleAdmin(
	ctx context.Context,
	workspaceID, userID uuid.UUID,
) (int64, error) {
	var count int64

	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) FROM (
			SELECT project_id
			FROM project_members
			WHERE workspace_id = ? AND is_active = true AND role = ?
			GROUP BY project_id
			HAVING COUNT(*) = 1 AND BOOL_OR(member_id = ?)
		) sole_admin_projects`, workspaceID, workspaces_enums.RoleAdminTier, userID).
		Scan(&count).Error
	if err != nil {
		return 0, workspaces_errors.WrapStoreError("count sole admin projects", err)
	}

	return count, nil
}

func (r *MembershipRepository) DeactivateAllProjectMembershipsForUser(
	ctx context.Context,
	workspaceID, userID uuid.UUID,
) error {
	err := r.db.WithContext(ctx).
		Model(&workspaces_models.ProjectMember{}).
		Where("workspace_id = ? AND member_id = ? AND is_active = true", workspaceID, userID).
		Updates(map[string]any{
			"is_active":  false,
			"updated_at": time.Now().UTC(),
		}).Error

	return workspaces_errors.WrapStoreError("deactivate project memberships", err)
}

func (r *MembershipRepository) FilterActiveMemberUserIDs(
	ctx context.Context,
	workspaceID uuid.UUID,
	userIDs []uuid.UUID,
) ([]uuid.UUID, error) {
	activeIDs := make([]uuid.UUID, 0, len(userIDs))
	if len(userIDs) == 0 {
		return activeIDs, nil
	}

	err := r.db.WithContext(ctx).
		Model(&workspaces_models.WorkspaceMember{}).
		Where("workspace_id = ? AND is_active = true AND member_id IN ?", workspaceID, userIDs).
		Pluck("member_id", &activeIDs).Error
	if err != nil {
		return nil, workspaces_errors.WrapStoreError("filter active members", err)
	}

	return activeIDs, nil
}

func (r *MembershipRepository) CreateTeam(
	ctx context.Context,
	team *workspaces_models.Team,
	memberIDs []uuid.UUID,
) error {
	if team.ID == uuid.Nil {
		team.ID = uuid.New()
	}
	if team.CreatedAt.IsZero() {
		team.CreatedAt = time.Now().UTC()
	}

	db := r.db.WithContext(ctx)

	if err := db.Create(team).Error; err != nil {
		return workspaces_errors.WrapStoreError("create team", err)
	}

	if len(memberIDs) == 0 {
		team.Members = []uuid.UUID{}
		return nil
	}

	teamMembers := make([]*workspaces_models.TeamMember, len(memberIDs))
	for i, memberID := range memberIDs {
		teamMembers[i] = &workspaces_models.TeamMember{
			ID:          uuid.New(),
			TeamID:      team.ID,
			WorkspaceID: team.WorkspaceID,
			MemberID:    memberID,
			CreatedAt:   team.CreatedAt,
		}
	}

	if err := db.Create(&teamMembers).Error; err != nil {
		return workspaces_errors.WrapStoreError("create team members", err)
	}

	team.Members = memberIDs
	return nil
}

func (r *MembershipRepository) GetTeamByName(
	ctx context.Context,
	workspaceID uuid.UUID,
	name string,
) (*workspaces_models.Team, error) {
	var team workspaces_models.Team

	err := r.db.WithContext(ctx).
		Where("workspace_id = ? AND name = ?", workspaceID, name).
		First(&team).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, workspaces_errors.WrapStoreError("get team by name", err)
	}

	return &team, nil
}

func (r *MembershipRepository) ListTeams(
	ctx context.Context,
	workspaceID uuid.UUID,
) ([]*workspaces_models.Team, error) {
	teams := make([]*workspaces_models.Team, 0)
	db := r.db.WithContext(ctx)

	if err := db.Where("workspace_id = ?", workspaceID).Order("created_at ASC").Find(&teams).Error; err != nil {
		return nil, workspaces_errors.WrapStoreError("list teams", err)
	}

	if len(teams) == 0 {
		return teams, nil
	}

	teamIDs := make([]uuid.UUID, len(teams))
	teamsByID := make(map[uuid.UUID]*workspaces_models.Team, len(teams))
	for i, team := range teams {
		team.Members = []uuid.UUID{}
		teamIDs[i] = team.ID
		teamsByID[team.ID] = team
	}

	var teamMembers []*workspaces_models.TeamMember
	if err := db.Where("team_id IN ?", teamIDs).Order("created_at ASC").Find(&teamMembers).Error; err != nil {
		return nil, workspaces_errors.WrapStoreError("list team members", err)
	}

	for _, teamMember := range teamMembers {
		if team, ok := teamsByID[teamMember.TeamID]; ok {
			team.Members = append(team.Members, teamMember.MemberID)
		}
	}

	return teams, nil
}

func (r *MembershipRepository) updateActiveWorkspaceMember(
	ctx context.Context,
	op string,
	workspaceID, userID uuid.UUID,
	updates map[string]any,
) error {
	updates["updated_at"] = time.Now().UTC()

	result := r.db.WithContext(ctx).
		Model(&workspaces_models.WorkspaceMember{}).
		Where("workspace_id = ? AND member_id = ? AND is_active = true", workspaceID, userID).
		Updates(updates)
	if result.Error != nil {
		return workspaces_errors.WrapStoreError(op, result.Error)
	}

	if result.RowsAffected == 0 {
		return workspaces_errors.ErrMembershipNotFound
	}

	return nil
}
