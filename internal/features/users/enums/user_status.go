package users_enums

// UserStatus is the account state. Only active accounts can act on
// workspaces; deactivated accounts keep their rows for audit history.
type UserStatus string

const (
	UserStatusActive   UserStatus = "ACTIVE"
	UserStatusInactive UserStatus = "INACTIVE"
)

func (s UserStatus) CanAuthenticate() bool {
	return s == UserStatusActive
}
