package audit_logs

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const auditLogWriteTimeout = 5 * time.Second

type AuditLogService struct {
	auditLogRepository *AuditLogRepository
	logger             *slog.Logger
}

func NewAuditLogService(auditLogRepository *AuditLogRepository, logger *slog.Logger) *AuditLogService {
	return &AuditLogService{
		auditLogRepository: auditLogRepository,
		logger:             logger,
	}
}

// WriteAuditLog records a message best-effort: a failed write is logged and
// never propagated to the operation that produced it.
func (s *AuditLogService) WriteAuditLog(
	message string,
	userID *uuid.UUID,
	workspaceID *uuid.UUID,
) {
	ctx, cancel := context.WithTimeout(context.Background(), auditLogWriteTimeout)
	defer cancel()

	auditLog := &AuditLog{
		UserID:      userID,
		WorkspaceID: workspaceID,
		Message:     message,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.auditLogRepository.Create(ctx, auditLog); err != nil {
		s.logger.Error("failed to create audit log", "error", err)
	}
}

func (s *AuditLogService) GetWorkspaceAuditLogs(
	ctx context.Context,
	workspaceID uuid.UUID,
	request *GetAuditLogsRequest,
) (*GetAuditLogsResponse, error) {
	limit := request.Limit
	if limit <= 0 || limit > 1000 {
		limit = 100
	}

	offset := max(request.Offset, 0)

	auditLogs, err := s.auditLogRepository.GetByWorkspace(ctx, workspaceID, limit, offset, request.BeforeDate)
	if err != nil {
		return nil, err
	}

	total, err := s.auditLogRepository.CountByWorkspace(ctx, workspaceID, request.BeforeDate)
	if err != nil {
		return nil, err
	}

	return &GetAuditLogsResponse{
		AuditLogs: auditLogs,
		Total:     total,
		Limit:     limit,
		Offset:    offset,
	}, nil
}
