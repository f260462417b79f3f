package storage

import (
	"sync"
	"time"

	"teamspace/internal/config"
	"teamspace/internal/util/logger"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gorm_logger "gorm.io/gorm/logger"
)

var (
	once sync.Once
	db   *gorm.DB
)

// GetDb returns the shared postgres handle. The process exits if the database
// is unreachable on first use.
func GetDb() *gorm.DB {
	once.Do(func() {
		log := logger.GetLogger()

		database, err := gorm.Open(postgres.Open(config.GetEnv().DatabaseDsn), &gorm.Config{
			Logger:                 gorm_logger.Default.LogMode(gorm_logger.Silent),
			SkipDefaultTransaction: true,
		})
		if err != nil {
			log.Error("Failed to connect to database", "error", err)
			panic(err)
		}

		sqlDB, err := database.DB()
		if err != nil {
			log.Error("Failed to get database handle", "error", err)
			panic(err)
		}

		sqlDB.SetMaxOpenConns(50)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)

		db = database
	})

	return db
}
