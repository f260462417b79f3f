package workspaces_controllers

import (
	"errors"
	"net/http"

	workspaces_errors "teamspace/internal/features/workspaces/errors"
	"teamspace/internal/util/logger"

	"github.com/gin-gonic/gin"
)

// respondWithError maps the workspace error taxonomy onto HTTP statuses.
func respondWithError(ctx *gin.Context, err error) {
	var rejection *workspaces_errors.RuleRejection
	var transient *workspaces_errors.TransientStoreError

	switch {
	case errors.As(err, &rejection):
		status := http.StatusBadRequest
		if rejection.Kind == workspaces_errors.RejectionKindForbidden {
			status = http.StatusForbidden
		}
		ctx.JSON(status, gin.H{"error": rejection.Reason})
	case errors.Is(err, workspaces_errors.ErrWorkspaceNotFound),
		errors.Is(err, workspaces_errors.ErrMembershipNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &transient):
		logger.GetLogger().Warn("transient store failure", "op", transient.Op, "error", transient.Err)
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "Service temporarily unavailable, please retry"})
	default:
		logger.GetLogger().Error("unexpected workspace error", "path", ctx.FullPath(), "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
