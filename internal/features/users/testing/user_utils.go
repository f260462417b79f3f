package users_testing

import (
	"context"
	"fmt"
	"sync"
	"time"

	users_enums "teamspace/internal/features/users/enums"
	users_models "teamspace/internal/features/users/models"
	users_services "teamspace/internal/features/users/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const testSecretKey = "teamspace-test-secret"

type staticSecretKey string

func (s staticSecretKey) GetSecretKey() (string, error) {
	return string(s), nil
}

// UserDirectory is an in-memory users table for tests that do not touch postgres.
type UserDirectory struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*users_models.User
}

func NewUserDirectory() *UserDirectory {
	return &UserDirectory{users: make(map[uuid.UUID]*users_models.User)}
}

func (d *UserDirectory) Add(user *users_models.User) {
	d.mu.Lock()
	defer d.mu.Unlock()

	copied := *user
	d.users[user.ID] = &copied
}

func (d *UserDirectory) GetUserByID(_ context.Context, userID uuid.UUID) (*users_models.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	user, ok := d.users[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}

	copied := *user
	return &copied, nil
}

func (d *UserDirectory) GetUsersByIDs(_ context.Context, userIDs []uuid.UUID) ([]*users_models.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	result := make([]*users_models.User, 0, len(userIDs))
	for _, userID := range userIDs {
		if user, ok := d.users[userID]; ok {
			copied := *user
			result = append(result, &copied)
		}
	}

	return result, nil
}

// NewTestUserService returns a user service backed by the directory and a
// fixed signing key.
func NewTestUserService(directory *UserDirectory) *users_services.UserService {
	return users_services.NewUserService(directory, staticSecretKey(testSecretKey))
}

type TestUser struct {
	User  *users_models.User
	Token string
}

func (u *TestUser) BearerToken() string {
	return "Bearer " + u.Token
}

// CreateTestUser registers an active user in the directory and signs a token for it.
func CreateTestUser(directory *UserDirectory, userService *users_services.UserService, name string) *TestUser {
	userID := uuid.New()

	user := &users_models.User{
		ID:                   userID,
		Email:                fmt.Sprintf("%s-%s@test.com", name, userID.String()[:8]),
		DisplayName:          name,
		FirstName:            name,
		LastName:             "Tester",
		Status:               users_enums.UserStatusActive,
		PasswordCreationTime: time.Now().UTC().Truncate(time.Second),
		CreatedAt:            time.Now().UTC(),
	}
	directory.Add(user)

	response, err := userService.GenerateAccessToken(user)
	if err != nil {
		panic(err)
	}

	return &TestUser{User: user, Token: response.Token}
}
