package workspaces_models

import (
	"time"

	"github.com/google/uuid"
)

type Team struct {
	ID          uuid.UUID `json:"id"          gorm:"column:id"`
	WorkspaceID uuid.UUID `json:"workspaceId" gorm:"column:workspace_id"`
	Name        string    `json:"name"        gorm:"column:name"`
	Description string    `json:"description" gorm:"column:description"`
	CreatedBy   uuid.UUID `json:"createdBy"   gorm:"column:created_by"`
	CreatedAt   time.Time `json:"createdAt"   gorm:"column:created_at"`

	Members []uuid.UUID `json:"members" gorm:"-"`
}

func (Team) TableName() string {
	return "teams"
}

type TeamMember struct {
	ID          uuid.UUID `json:"id"          gorm:"column:id"`
	TeamID      uuid.UUID `json:"teamId"      gorm:"column:team_id"`
	WorkspaceID uuid.UUID `json:"workspaceId" gorm:"column:workspace_id"`
	MemberID    uuid.UUID `json:"memberId"    gorm:"column:member_id"`
	CreatedAt   time.Time `json:"createdAt"   gorm:"column:created_at"`
}

func (TeamMember) TableName() string {
	return "team_members"
}
