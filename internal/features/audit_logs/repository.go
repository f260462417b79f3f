package audit_logs

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuditLogRepository struct {
	db *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

func (r *AuditLogRepository) Create(ctx context.Context, auditLog *AuditLog) error {
	if auditLog.ID == uuid.Nil {
		auditLog.ID = uuid.New()
	}

	return r.db.WithContext(ctx).Create(auditLog).Error
}

func (r *AuditLogRepository) GetByWorkspace(
	ctx context.Context,
	workspaceID uuid.UUID,
	limit, offset int,
	beforeDate *time.Time,
) ([]*AuditLogDTO, error) {
	var auditLogs = make([]*AuditLogDTO, 0)

	sql := `
		SELECT
			al.id,
			al.user_id,
			al.workspace_id,
			al.message,
			al.created_at,
			u.email as user_email,
			u.display_name as user_display_name
		FROM audit_logs al
		LEFT JOIN users u ON al.user_id = u.id
		WHERE al.workspace_id = ?`

	args := []any{workspaceID}

	if beforeDate != nil {
		sql += " AND al.created_at < ?"
		args = append(args, *beforeDate)
	}

	sql += " ORDER BY al.created_at DESC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	err := r.db.WithContext(ctx).Raw(sql, args...).Scan(&auditLogs).Error

	return auditLogs, err
}

func (r *AuditLogRepository) CountByWorkspace(
	ctx context.Context,
	workspaceID uuid.UUID,
	beforeDate *time.Time,
) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&AuditLog{}).Where("workspace_id = ?", workspaceID)

	if beforeDate != nil {
		query = query.Where("created_at < ?", *beforeDate)
	}

	err := query.Count(&count).Error
	return count, err
}
