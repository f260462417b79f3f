package users_models

import (
	"time"

	users_enums "teamspace/internal/features/users/enums"

	"github.com/google/uuid"
)

type User struct {
	ID                   uuid.UUID              `json:"id"          gorm:"column:id"`
	Email                string                 `json:"email"       gorm:"column:email"`
	DisplayName          string                 `json:"displayName" gorm:"column:display_name"`
	FirstName            string                 `json:"firstName"   gorm:"column:first_name"`
	LastName             string                 `json:"lastName"    gorm:"column:last_name"`
	Avatar               string                 `json:"avatar"      gorm:"column:avatar"`
	IsBot                bool                   `json:"isBot"       gorm:"column:is_bot"`
	Status               users_enums.UserStatus `json:"status"      gorm:"column:status"`
	PasswordCreationTime time.Time              `json:"-"           gorm:"column:password_creation_time"`
	CreatedAt            time.Time              `json:"createdAt"   gorm:"column:created_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsActiveUser() bool {
	return u.Status.CanAuthenticate()
}

// SecretKey holds the HMAC key that signs access tokens. The table has a
// single row seeded by migrations.
type SecretKey struct {
	Secret string `gorm:"column:secret"`
}

func (SecretKey) TableName() string {
	return "secret_keys"
}
