package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	env_utils "teamspace/internal/util/env"
	"teamspace/internal/util/logger"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

var log = logger.GetLogger()

type EnvVariables struct {
	IsTesting       bool
	DatabaseDsn     string            `env:"DATABASE_DSN"                required:"true"`
	EnvMode         env_utils.EnvMode `env:"ENV_MODE"                    required:"true"`
	BackendRootPath string            `env:"BACKEND_ROOT_PATH"`
	HttpPort        string            `env:"HTTP_PORT"                   env-default:"4005"`
	// cache
	ValkeyHost     string `env:"VALKEY_HOST"     required:"true"`
	ValkeyPort     string `env:"VALKEY_PORT"     required:"true"`
	ValkeyUsername string `env:"VALKEY_USERNAME" required:"false"`
	ValkeyPassword string `env:"VALKEY_PASSWORD" required:"false"`
	ValkeyIsSsl    bool   `env:"VALKEY_IS_SSL"   required:"true"`
	// membership engine
	MembersCacheTTL          time.Duration `env:"MEMBERS_CACHE_TTL"           env-default:"2h"`
	StoreTimeout             time.Duration `env:"STORE_TIMEOUT"               env-default:"10s"`
	MemberMutationsPerSecond int           `env:"MEMBER_MUTATIONS_PER_SECOND" env-default:"5"`
	MemberMutationsBurst     int           `env:"MEMBER_MUTATIONS_BURST"      env-default:"20"`
}

var (
	env  EnvVariables
	once sync.Once
)

func GetEnv() EnvVariables {
	once.Do(loadEnvVariables)
	return env
}

func loadEnvVariables() {
	cwd, err := os.Getwd()
	if err != nil {
		log.Warn("could not get current working directory", "error", err)
		cwd = "."
	}

	backendRoot := cwd
	for {
		if _, err := os.Stat(filepath.Join(backendRoot, "go.mod")); err == nil {
			break
		}

		parent := filepath.Dir(backendRoot)
		if parent == backendRoot {
			break
		}

		backendRoot = parent
	}

	envPaths := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(backendRoot, ".env"),
	}

	var loaded bool
	for _, path := range envPaths {
		log.Info("Trying to load .env", "path", path)
		if err := godotenv.Load(path); err == nil {
			log.Info("Successfully loaded .env", "path", path)
			loaded = true
			break
		}
	}

	if !loaded {
		// containers pass variables directly, .env is a local convenience
		log.Warn("No .env file found, reading configuration from process environment only")
	}

	err = cleanenv.ReadEnv(&env)
	if err != nil {
		log.Error("Configuration could not be loaded", "error", err)
		os.Exit(1)
	}

	if env.BackendRootPath == "" {
		env.BackendRootPath = backendRoot
	}

	for _, arg := range os.Args {
		if strings.Contains(arg, "test") {
			env.IsTesting = true
			break
		}
	}

	if env.DatabaseDsn == "" {
		log.Error("DATABASE_DSN is empty")
		os.Exit(1)
	}

	if !env.EnvMode.IsValid() {
		log.Error("ENV_MODE is invalid", "mode", env.EnvMode)
		os.Exit(1)
	}
	log.Info("ENV_MODE loaded", "mode", env.EnvMode)

	if env.ValkeyHost == "" {
		log.Error("VALKEY_HOST is empty")
		os.Exit(1)
	}
	if env.ValkeyPort == "" {
		log.Error("VALKEY_PORT is empty")
		os.Exit(1)
	}

	if env.MembersCacheTTL <= 0 {
		log.Error("MEMBERS_CACHE_TTL must be positive", "value", env.MembersCacheTTL)
		os.Exit(1)
	}
	if env.StoreTimeout <= 0 {
		log.Error("STORE_TIMEOUT must be positive", "value", env.StoreTimeout)
		os.Exit(1)
	}
	if env.MemberMutationsPerSecond <= 0 || env.MemberMutationsBurst <= 0 {
		log.Error(
			"member mutation rate limits must be positive",
			"perSecond", env.MemberMutationsPerSecond,
			"burst", env.MemberMutationsBurst,
		)
		os.Exit(1)
	}

	log.Info("Environment variables loaded successfully!")
}
