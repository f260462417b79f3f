package workspaces_dto

import (
	"encoding/json"
	"time"

	users_dto "teamspace/internal/features/users/dto"
	workspaces_enums "teamspace/internal/features/workspaces/enums"

	"github.com/google/uuid"
)

type ChangeRoleRequestDTO struct {
	Role *workspaces_enums.WorkspaceRole `json:"role"`
}

type MemberUserDTO struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email,omitempty"`
	DisplayName string    `json:"displayName"`
	FirstName   string    `json:"firstName,omitempty"`
	LastName    string    `json:"lastName,omitempty"`
	Avatar      string    `json:"avatar"`
}

type WorkspaceMemberResponseDTO struct {
	ID     uuid.UUID                      `json:"id"`
	Member MemberUserDTO                  `json:"member"`
	Role   workspaces_enums.WorkspaceRole `json:"role"`
}

type GetMembersResponseDTO struct {
	Members []WorkspaceMemberResponseDTO `json:"members"`
}

type MyMembershipResponseDTO struct {
	ID          uuid.UUID                      `json:"id"`
	WorkspaceID uuid.UUID                      `json:"workspaceId"`
	MemberID    uuid.UUID                      `json:"memberId"`
	Role        workspaces_enums.WorkspaceRole `json:"role"`
	ViewProps   json.RawMessage                `json:"viewProps"`
	CompanyRole string                         `json:"companyRole"`
	CreatedAt   time.Time                      `json:"createdAt"`
}

type UpdateViewPropsRequestDTO struct {
	ViewProps json.RawMessage `json:"viewProps" binding:"required"`
}

type ProjectMemberResponseDTO struct {
	ID        uuid.UUID                      `json:"id"`
	ProjectID uuid.UUID                      `json:"projectId"`
	MemberID  uuid.UUID                      `json:"memberId"`
	Role      workspaces_enums.WorkspaceRole `json:"role"`
}

type GetProjectMembersResponseDTO struct {
	Projects map[uuid.UUID][]ProjectMemberResponseDTO `json:"projects"`
}

type CreateTeamRequestDTO struct {
	Name        string      `json:"name"        binding:"required"`
	Description string      `json:"description"`
	Members     []uuid.UUID `json:"members"`
}

type TeamResponseDTO struct {
	ID          uuid.UUID   `json:"id"`
	WorkspaceID uuid.UUID   `json:"workspaceId"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Members     []uuid.UUID `json:"members"`
	CreatedBy   uuid.UUID   `json:"createdBy"`
	CreatedAt   time.Time   `json:"createdAt"`
}

type ListTeamsResponseDTO struct {
	Teams []TeamResponseDTO `json:"teams"`
}

// TeamRejectionResponseDTO is returned when a team references users without
// an active membership in the workspace.
type TeamRejectionResponseDTO struct {
	Error   string                  `json:"error"`
	Members []users_dto.UserLiteDTO `json:"members"`
}
