package users_services

import (
	"sync"

	users_repositories "teamspace/internal/features/users/repositories"
	"teamspace/internal/storage"
)

var (
	userServiceOnce sync.Once
	userService     *UserService
)

func GetUserService() *UserService {
	userServiceOnce.Do(func() {
		db := storage.GetDb()

		userService = NewUserService(
			users_repositories.NewUserRepository(db),
			users_repositories.NewSecretKeyRepository(db),
		)
	})

	return userService
}
