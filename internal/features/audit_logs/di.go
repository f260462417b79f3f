package audit_logs

import (
	"sync"

	"teamspace/internal/storage"
	"teamspace/internal/util/logger"
)

var (
	auditLogServiceOnce sync.Once
	auditLogService     *AuditLogService
)

func GetAuditLogService() *AuditLogService {
	auditLogServiceOnce.Do(func() {
		auditLogService = NewAuditLogService(
			NewAuditLogRepository(storage.GetDb()),
			logger.GetLogger(),
		)
	})

	return auditLogService
}
