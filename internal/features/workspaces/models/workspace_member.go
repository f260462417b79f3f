package workspaces_models

import (
	"time"

	workspaces_enums "teamspace/internal/features/workspaces/enums"

	"github.com/google/uuid"
)

// WorkspaceMember is a (user, workspace) membership. Rows are never deleted;
// IsActive=false is terminal.
type WorkspaceMember struct {
	ID          uuid.UUID                      `json:"id"          gorm:"column:id"`
	WorkspaceID uuid.UUID                      `json:"workspaceId" gorm:"column:workspace_id"`
	MemberID    uuid.UUID                      `json:"memberId"    gorm:"column:member_id"`
	Role        workspaces_enums.WorkspaceRole `json:"role"        gorm:"column:role"`
	IsActive    bool                           `json:"isActive"    gorm:"column:is_active"`
	ViewProps   string                         `json:"viewProps"   gorm:"column:view_props"`
	CompanyRole string                         `json:"companyRole" gorm:"column:company_role"`
	CreatedAt   time.Time                      `json:"createdAt"   gorm:"column:created_at"`
	UpdatedAt   time.Time                      `json:"updatedAt"   gorm:"column:updated_at"`
}

func (WorkspaceMember) TableName() string {
	return "workspace_members"
}

// WorkspaceMemberWithUser is a membership row joined with the user columns
// needed by member listings.
type WorkspaceMemberWithUser struct {
	WorkspaceMember

	Email       string `json:"email"       gorm:"column:email"`
	DisplayName string `json:"displayName" gorm:"column:display_name"`
	FirstName   string `json:"firstName"   gorm:"column:first_name"`
	LastName    string `json:"lastName"    gorm:"column:last_name"`
	Avatar      string `json:"avatar"      gorm:"column:avatar"`
	IsBot       bool   `json:"isBot"       gorm:"column:is_bot"`
}
