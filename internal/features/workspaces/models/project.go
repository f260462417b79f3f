package workspaces_models

import (
	"time"

	workspaces_enums "teamspace/internal/features/workspaces/enums"

	"github.com/google/uuid"
)

// ProjectMember is a (user, project) membership. It is forced inactive when
// the owning workspace membership is deactivated.
type ProjectMember struct {
	ID          uuid.UUID                      `json:"id"          gorm:"column:id"`
	WorkspaceID uuid.UUID                      `json:"workspaceId" gorm:"column:workspace_id"`
	ProjectID   uuid.UUID                      `json:"projectId"   gorm:"column:project_id"`
	MemberID    uuid.UUID                      `json:"memberId"    gorm:"column:member_id"`
	Role        workspaces_enums.WorkspaceRole `json:"role"        gorm:"column:role"`
	IsActive    bool                           `json:"isActive"    gorm:"column:is_active"`
	CreatedAt   time.Time                      `json:"createdAt"   gorm:"column:created_at"`
	UpdatedAt   time.Time                      `json:"updatedAt"   gorm:"column:updated_at"`
}

func (ProjectMember) TableName() string {
	return "project_members"
}
