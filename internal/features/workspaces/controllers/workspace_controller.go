package workspaces_controllers

import (
	"context"
	"net/http"
	"time"

	"teamspace/internal/features/audit_logs"
	users_middleware "teamspace/internal/features/users/middleware"
	workspaces_services "teamspace/internal/features/workspaces/services"

	"github.com/gin-gonic/gin"
)

type WorkspaceController struct {
	workspaceService *workspaces_services.WorkspaceService
	storeTimeout     time.Duration
}

func NewWorkspaceController(
	workspaceService *workspaces_services.WorkspaceService,
	storeTimeout time.Duration,
) *WorkspaceController {
	return &WorkspaceController{
		workspaceService: workspaceService,
		storeTimeout:     storeTimeout,
	}
}

func (c *WorkspaceController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/workspaces/:slug/audit-logs", c.GetAuditLogs)
}

// GetAuditLogs
// @Summary Get workspace audit logs
// @Description Membership changes in the workspace, newest first. Admins only.
// @Tags workspace-audit-logs
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Workspace slug"
// @Param limit query int false "Limit number of results" default(100)
// @Param offset query int false "Offset for pagination" default(0)
// @Param beforeDate query string false "Filter logs created before this date (RFC3339 format)" format(date-time)
// @Success 200 {object} audit_logs.GetAuditLogsResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /workspaces/{slug}/audit-logs [get]
func (c *WorkspaceController) GetAuditLogs(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	request := &audit_logs.GetAuditLogsRequest{}
	if err := ctx.ShouldBindQuery(request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	storeCtx, cancel := context.WithTimeout(ctx.Request.Context(), c.storeTimeout)
	defer cancel()

	response, err := c.workspaceService.GetWorkspaceAuditLogs(storeCtx, ctx.Param("slug"), request, user)
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}
