package system_healthcheck

import (
	"sync"

	"teamspace/internal/config"
	"teamspace/internal/storage"
	cache_utils "teamspace/internal/util/cache"
)

var (
	healthcheckOnce       sync.Once
	healthcheckController *HealthcheckController
)

func GetHealthcheckController() *HealthcheckController {
	healthcheckOnce.Do(func() {
		sqlDB, err := storage.GetDb().DB()
		if err != nil {
			panic(err)
		}

		healthcheckService := NewHealthcheckService(
			sqlDB,
			func() error {
				cache_utils.TestCacheConnection()
				return nil
			},
			config.GetEnv().BackendRootPath,
		)

		healthcheckController = &HealthcheckController{healthcheckService}
	})

	return healthcheckController
}
