package audit_logs

import (
	"context"
	"errors"
	"testing"

	"teamspace/internal/util/logger"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gorm_logger "gorm.io/gorm/logger"
)

func newMockedRepository(t *testing.T) (*AuditLogRepository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:                 gorm_logger.Default.LogMode(gorm_logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewAuditLogRepository(db), mock
}

func Test_Create_WhenIDEmpty_AssignsIDAndInserts(t *testing.T) {
	repository, mock := newMockedRepository(t)
	workspaceID := uuid.New()

	mock.ExpectExec(`INSERT INTO "audit_logs"`).WillReturnResult(sqlmock.NewResult(0, 1))

	auditLog := &AuditLog{WorkspaceID: &workspaceID, Message: "member left"}
	err := repository.Create(context.Background(), auditLog)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, auditLog.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func Test_CountByWorkspace_WhenRowsExist_ReturnsCount(t *testing.T) {
	repository, mock := newMockedRepository(t)
	workspaceID := uuid.New()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "audit_logs" WHERE workspace_id = \$1`).
		WithArgs(workspaceID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repository.CountByWorkspace(context.Background(), workspaceID, nil)

	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func Test_WriteAuditLog_WhenInsertFails_DoesNotPanic(t *testing.T) {
	repository, mock := newMockedRepository(t)
	service := NewAuditLogService(repository, logger.GetLogger())
	workspaceID := uuid.New()

	mock.ExpectExec(`INSERT INTO "audit_logs"`).WillReturnError(errors.New("connection reset"))

	assert.NotPanics(t, func() {
		service.WriteAuditLog("member removed", nil, &workspaceID)
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func Test_GetWorkspaceAuditLogs_WhenLimitOutOfRange_ClampsToDefault(t *testing.T) {
	repository, mock := newMockedRepository(t)
	service := NewAuditLogService(repository, logger.GetLogger())
	workspaceID := uuid.New()

	mock.ExpectQuery(`FROM audit_logs al`).
		WithArgs(workspaceID, 100, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "workspace_id", "message", "created_at", "user_email", "user_display_name"}))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "audit_logs"`).
		WithArgs(workspaceID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	response, err := service.GetWorkspaceAuditLogs(
		context.Background(),
		workspaceID,
		&GetAuditLogsRequest{Limit: 5000, Offset: -3},
	)

	require.NoError(t, err)
	assert.Equal(t, 100, response.Limit)
	assert.Equal(t, 0, response.Offset)
	assert.Empty(t, response.AuditLogs)
	assert.NoError(t, mock.ExpectationsWereMet())
}
