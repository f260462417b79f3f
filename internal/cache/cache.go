package cache

import (
	"crypto/tls"
	"net"
	"sync"

	"teamspace/internal/config"
	"teamspace/internal/util/logger"

	"github.com/valkey-io/valkey-go"
)

var (
	once         sync.Once
	valkeyClient valkey.Client
)

// GetCache returns the shared valkey client. Client-side caching is disabled:
// member listings are invalidated explicitly after commit and every node must
// observe the deletion on its next read.
func GetCache() valkey.Client {
	once.Do(func() {
		env := config.GetEnv()

		options := valkey.ClientOption{
			InitAddress:      []string{net.JoinHostPort(env.ValkeyHost, env.ValkeyPort)},
			Username:         env.ValkeyUsername,
			Password:         env.ValkeyPassword,
			DisableCache:     true,
			ConnWriteTimeout: env.StoreTimeout,
		}

		if env.ValkeyIsSsl {
			options.TLSConfig = &tls.Config{
				ServerName: env.ValkeyHost,
				MinVersion: tls.VersionTLS12,
			}
		}

		client, err := valkey.NewClient(options)
		if err != nil {
			logger.GetLogger().Error("Failed to connect to valkey", "address", options.InitAddress, "error", err)
			panic(err)
		}

		valkeyClient = client
	})

	return valkeyClient
}
