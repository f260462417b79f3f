package workspaces_models

import (
	"time"

	"github.com/google/uuid"
)

type Workspace struct {
	ID        uuid.UUID `json:"id"        gorm:"column:id"`
	Slug      string    `json:"slug"      gorm:"column:slug"`
	Name      string    `json:"name"      gorm:"column:name"`
	OwnerID   uuid.UUID `json:"ownerId"   gorm:"column:owner_id"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at"`

	IsNotExists bool `json:"isNotExists,omitempty" gorm:"-"` // Used for caching unknown slugs
}

func (Workspace) TableName() string {
	return "workspaces"
}
