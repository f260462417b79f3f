package workspaces_repositories

import (
	"context"

	workspaces_enums "teamspace/internal/features/workspaces/enums"
	workspaces_models "teamspace/internal/features/workspaces/models"

	"github.com/google/uuid"
)

// MembershipStore is the data access surface of the membership engine.
// Every call is scoped to a workspace. Writes made through the store handed
// to an InTransaction callback commit or roll back together.
type MembershipStore interface {
	GetActiveWorkspaceMembership(
		ctx context.Context,
		workspaceID, userID uuid.UUID,
	) (*workspaces_models.WorkspaceMember, error)

	// GetActiveWorkspaceMembershipByID resolves a membership by its own id.
	// Bot users are never returned.
	GetActiveWorkspaceMembershipByID(
		ctx context.Context,
		workspaceID, membershipID uuid.UUID,
	) (*workspaces_models.WorkspaceMember, error)

	ListActiveWorkspaceMemberships(
		ctx context.Context,
		workspaceID uuid.UUID,
	) ([]*workspaces_models.WorkspaceMemberWithUser, error)

	CountActiveAdmins(ctx context.Context, workspaceID uuid.UUID) (int64, error)

	DeactivateWorkspaceMembership(ctx context.Context, workspaceID, userID uuid.UUID) error

	UpdateWorkspaceRole(
		ctx context.Context,
		workspaceID, userID uuid.UUID,
		role workspaces_enums.WorkspaceRole,
	) error

	UpdateViewProps(ctx context.Context, workspaceID, userID uuid.UUID, viewProps string) error

	ListActiveProjectMembershipsForUser(
		ctx context.Context,
		workspaceID, userID uuid.UUID,
	) ([]*workspaces_models.ProjectMember, error)

	// ListActiveProjectMembershipsInUserProjects returns every active
	// membership of every project the user is an active member of.
	ListActiveProjectMembershipsInUserProjects(
		ctx context.Context,
		workspaceID, userID uuid.UUID,
	) ([]*workspaces_models.ProjectMember, error)

	// CountProjectsWhereUserIsSoleAdmin counts projects whose only active
	// admin-tier membership belongs to the user.
	CountProjectsWhereUserIsSoleAdmin(ctx context.Context, workspaceID, userID uuid.UUID) (int64, error)

	DeactivateAllProjectMembershipsForUser(ctx context.Context, workspaceID, userID uuid.UUID) error

	// FilterActiveMemberUserIDs returns the subset of userIDs holding an
	// active membership in the workspace.
	FilterActiveMemberUserIDs(
		ctx context.Context,
		workspaceID uuid.UUID,
		userIDs []uuid.UUID,
	) ([]uuid.UUID, error)

	CreateTeam(ctx context.Context, team *workspaces_models.Team, memberIDs []uuid.UUID) error

	// GetTeamByName returns nil without error when no team has the name.
	GetTeamByName(ctx context.Context, workspaceID uuid.UUID, name string) (*workspaces_models.Team, error)

	ListTeams(ctx context.Context, workspaceID uuid.UUID) ([]*workspaces_models.Team, error)

	// InTransaction runs fn against a store bound to one transaction that
	// holds a row lock on the workspace. fn returning an error, a panic or
	// ctx being cancelled rolls everything back.
	InTransaction(ctx context.Context, workspaceID uuid.UUID, fn func(tx MembershipStore) error) error
}
