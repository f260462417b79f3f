package workspaces_services

import (
	"fmt"

	workspaces_enums "teamspace/internal/features/workspaces/enums"
	workspaces_errors "teamspace/internal/features/workspaces/errors"
	workspaces_models "teamspace/internal/features/workspaces/models"

	"github.com/google/uuid"
)

const (
	ReasonSelfRoleUpdate   = "You cannot update your own role"
	ReasonRoleAboveActor   = "You cannot update a role that is higher than your own role"
	ReasonTargetAboveActor = "You cannot update the role of a user having role higher than you"
	ReasonSelfRemoval      = "You cannot remove yourself from the workspace. Please use leave workspace"
	ReasonRemoveHigherRole = "You cannot remove a user having role higher than you"

	ReasonTargetSoleProjectAdmin = "User is a part of some projects where they are the only admin, " +
		"they should either leave that project or promote another user to admin."
	ReasonSoleWorkspaceAdmin = "You cannot leave the workspace as you are the only admin of the workspace " +
		"you will have to either delete the workspace or promote another user to admin."
	ReasonActorSoleProjectAdmin = "You are a part of some projects where you are the only admin, " +
		"you should either leave the project or promote another user to admin."

	ReasonInsufficientPermissions = "You don't have the required permissions."
	ReasonInvalidRole             = "Invalid role"
	ReasonTeamNameTaken           = "The team with the name already exists"
	reasonTeamMembersFormat       = "%d of the member(s) are not a part of the workspace"
)

// The functions below decide legality only. Counts are read by the caller
// inside the same transaction that applies the mutation.

func CanChangeRole(
	actor, target *workspaces_models.WorkspaceMember,
	requestedRole workspaces_enums.WorkspaceRole,
) *workspaces_errors.RuleRejection {
	if actor.MemberID == target.MemberID {
		return workspaces_errors.NewRuleRejection(ReasonSelfRoleUpdate)
	}

	if !requestedRole.IsValid() {
		return workspaces_errors.NewRuleRejection(ReasonInvalidRole)
	}

	if workspaces_enums.Compare(requestedRole, actor.Role) > 0 {
		return workspaces_errors.NewRuleRejection(ReasonRoleAboveActor)
	}

	if workspaces_enums.Compare(target.Role, actor.Role) > 0 {
		return workspaces_errors.NewRuleRejection(ReasonTargetAboveActor)
	}

	return nil
}

func CanRemoveMember(
	actor, target *workspaces_models.WorkspaceMember,
	targetSoleProjectAdminCount int64,
) *workspaces_errors.RuleRejection {
	if actor.MemberID == target.MemberID {
		return workspaces_errors.NewRuleRejection(ReasonSelfRemoval)
	}

	if workspaces_enums.Compare(actor.Role, target.Role) < 0 {
		return workspaces_errors.NewRuleRejection(ReasonRemoveHigherRole)
	}

	if targetSoleProjectAdminCount > 0 {
		return workspaces_errors.NewRuleRejection(ReasonTargetSoleProjectAdmin)
	}

	return nil
}

func CanLeave(
	actor *workspaces_models.WorkspaceMember,
	activeAdminCount int64,
	actorSoleProjectAdminCount int64,
) *workspaces_errors.RuleRejection {
	if workspaces_enums.IsAdminTier(actor.Role) && activeAdminCount <= 1 {
		return workspaces_errors.NewRuleRejection(ReasonSoleWorkspaceAdmin)
	}

	if actorSoleProjectAdminCount > 0 {
		return workspaces_errors.NewRuleRejection(ReasonActorSoleProjectAdmin)
	}

	return nil
}

// CanCreateTeam rejects when any requested id is missing from resolved. The
// rejection lists every unresolved id once, in request order.
func CanCreateTeam(requested, resolved []uuid.UUID) *workspaces_errors.RuleRejection {
	active := make(map[uuid.UUID]struct{}, len(resolved))
	for _, id := range resolved {
		active[id] = struct{}{}
	}

	seen := make(map[uuid.UUID]struct{}, len(requested))
	var missing []uuid.UUID
	for _, id := range requested {
		if _, ok := active[id]; ok {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}

		seen[id] = struct{}{}
		missing = append(missing, id)
	}

	if len(missing) == 0 {
		return nil
	}

	return &workspaces_errors.RuleRejection{
		Reason:  fmt.Sprintf(reasonTeamMembersFormat, len(missing)),
		Members: missing,
		Kind:    workspaces_errors.RejectionKindRule,
	}
}

// CanManageMembers gates every mutation of another member's record.
func CanManageMembers(actor *workspaces_models.WorkspaceMember) *workspaces_errors.RuleRejection {
	if !actor.Role.CanManageMembers() {
		return workspaces_errors.NewForbidden(ReasonInsufficientPermissions)
	}

	return nil
}

func CanAdministerWorkspace(actor *workspaces_models.WorkspaceMember) *workspaces_errors.RuleRejection {
	if !workspaces_enums.IsAdminTier(actor.Role) {
		return workspaces_errors.NewForbidden(ReasonInsufficientPermissions)
	}

	return nil
}
