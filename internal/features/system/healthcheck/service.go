package system_healthcheck

import (
	"context"
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v4/disk"
)

const checkTimeout = 3 * time.Second

type DatabasePinger interface {
	PingContext(ctx context.Context) error
}

type HealthcheckService struct {
	database   DatabasePinger
	checkCache func() error
	diskPath   string
}

func NewHealthcheckService(database DatabasePinger, checkCache func() error, diskPath string) *HealthcheckService {
	return &HealthcheckService{
		database:   database,
		checkCache: checkCache,
		diskPath:   diskPath,
	}
}

// IsAvailable reports the first failing dependency. Membership mutations
// need both postgres and valkey, so either one down makes the node unhealthy.
func (s *HealthcheckService) IsAvailable(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	if err := s.database.PingContext(ctx); err != nil {
		return fmt.Errorf("database check failed: %w", err)
	}

	if err := s.testCacheConnection(); err != nil {
		return fmt.Errorf("cache check failed: %w", err)
	}

	return nil
}

func (s *HealthcheckService) GetDiskUsage(ctx context.Context) (*DiskUsage, error) {
	usage, err := disk.UsageWithContext(ctx, s.diskPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read disk usage of %s: %w", s.diskPath, err)
	}

	return &DiskUsage{
		Path:        s.diskPath,
		TotalBytes:  usage.Total,
		UsedBytes:   usage.Used,
		FreeBytes:   usage.Free,
		UsedPercent: usage.UsedPercent,
	}, nil
}

func (s *HealthcheckService) testCacheConnection() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("cache connection test panicked: %v", r)
		}
	}()

	return s.checkCache()
}
