package users_services_test

import (
	"context"
	"testing"
	"time"

	users_enums "teamspace/internal/features/users/enums"
	users_testing "teamspace/internal/features/users/testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_GetUserFromToken_WhenTokenIsFresh_ReturnsUser(t *testing.T) {
	directory := users_testing.NewUserDirectory()
	userService := users_testing.NewTestUserService(directory)
	testUser := users_testing.CreateTestUser(directory, userService, "alice")

	user, err := userService.GetUserFromToken(context.Background(), testUser.Token)

	require.NoError(t, err)
	assert.Equal(t, testUser.User.ID, user.ID)
	assert.Equal(t, testUser.User.Email, user.Email)
}

func Test_GetUserFromToken_WhenTokenIsGarbage_ReturnsError(t *testing.T) {
	directory := users_testing.NewUserDirectory()
	userService := users_testing.NewTestUserService(directory)

	_, err := userService.GetUserFromToken(context.Background(), "not-a-jwt")

	assert.Error(t, err)
}

func Test_GetUserFromToken_WhenUserDeactivated_ReturnsError(t *testing.T) {
	directory := users_testing.NewUserDirectory()
	userService := users_testing.NewTestUserService(directory)
	testUser := users_testing.CreateTestUser(directory, userService, "bob")

	deactivated := *testUser.User
	deactivated.Status = users_enums.UserStatusInactive
	directory.Add(&deactivated)

	_, err := userService.GetUserFromToken(context.Background(), testUser.Token)

	assert.EqualError(t, err, "user account is deactivated")
}

func Test_GetUserFromToken_WhenPasswordRotated_ReturnsError(t *testing.T) {
	directory := users_testing.NewUserDirectory()
	userService := users_testing.NewTestUserService(directory)
	testUser := users_testing.CreateTestUser(directory, userService, "carol")

	rotated := *testUser.User
	rotated.PasswordCreationTime = rotated.PasswordCreationTime.Add(time.Hour)
	directory.Add(&rotated)

	_, err := userService.GetUserFromToken(context.Background(), testUser.Token)

	assert.EqualError(t, err, "password has been changed, please sign in again")
}
