package users_dto

import (
	"time"

	"github.com/google/uuid"
)

type SignInResponseDTO struct {
	UserID uuid.UUID `json:"userId"`
	Email  string    `json:"email"`
	Token  string    `json:"token"`
}

type UserProfileResponseDTO struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Avatar      string    `json:"avatar"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

// UserLiteDTO is the public summary of a user used inside other payloads.
type UserLiteDTO struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"displayName,omitempty"`
	FirstName   string    `json:"firstName,omitempty"`
	LastName    string    `json:"lastName,omitempty"`
	Avatar      string    `json:"avatar,omitempty"`
	IsBot       bool      `json:"isBot"`
}
