package workspaces_controllers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	users_middleware "teamspace/internal/features/users/middleware"
	workspaces_dto "teamspace/internal/features/workspaces/dto"
	workspaces_services "teamspace/internal/features/workspaces/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type WorkspaceMemberController struct {
	memberService      *workspaces_services.WorkspaceMemberService
	rateLimiter        MutationRateLimiter
	mutationsPerSecond int
	mutationsBurst     int
	storeTimeout       time.Duration
}

func NewWorkspaceMemberController(
	memberService *workspaces_services.WorkspaceMemberService,
	rateLimiter MutationRateLimiter,
	mutationsPerSecond int,
	mutationsBurst int,
	storeTimeout time.Duration,
) *WorkspaceMemberController {
	return &WorkspaceMemberController{
		memberService:      memberService,
		rateLimiter:        rateLimiter,
		mutationsPerSecond: mutationsPerSecond,
		mutationsBurst:     mutationsBurst,
		storeTimeout:       storeTimeout,
	}
}

func (c *WorkspaceMemberController) RegisterRoutes(router *gin.RouterGroup) {
	workspaceRoutes := router.Group("/workspaces/:slug")
	limited := memberMutationRateLimit(c.rateLimiter, c.mutationsPerSecond, c.mutationsBurst)

	workspaceRoutes.GET("/members", c.ListMembers)
	workspaceRoutes.GET("/members/me", c.GetMyMembership)
	workspaceRoutes.POST("/members/me/view-props", c.UpdateViewProps)
	workspaceRoutes.PATCH("/members/:id", limited, c.ChangeRole)
	workspaceRoutes.DELETE("/members/:id", limited, c.RemoveMember)
	workspaceRoutes.POST("/members/leave", limited, c.Leave)
	workspaceRoutes.GET("/project-members", c.ListProjectMembers)
}

// ListMembers
// @Summary List workspace members
// @Description Active members of the workspace. Members above viewer see emails and full names.
// @Tags workspace-members
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Workspace slug"
// @Success 200 {object} workspaces_dto.GetMembersResponseDTO
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /workspaces/{slug}/members [get]
func (c *WorkspaceMemberController) ListMembers(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	storeCtx, cancel := c.storeContext(ctx)
	defer cancel()

	response, err := c.memberService.GetMembers(storeCtx, ctx.Param("slug"), user)
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// ChangeRole
// @Summary Change member role
// @Description Update the role of a workspace member. Omitting role returns the member unchanged.
// @Tags workspace-members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Workspace slug"
// @Param id path string true "Workspace member ID"
// @Param request body workspaces_dto.ChangeRoleRequestDTO false "Role change"
// @Success 200 {object} workspaces_dto.WorkspaceMemberResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 429 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /workspaces/{slug}/members/{id} [patch]
func (c *WorkspaceMemberController) ChangeRole(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	memberID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member ID"})
		return
	}

	var request workspaces_dto.ChangeRoleRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil && !errors.Is(err, io.EOF) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	storeCtx, cancel := c.storeContext(ctx)
	defer cancel()

	response, err := c.memberService.ChangeRole(storeCtx, ctx.Param("slug"), memberID, request.Role, user)
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// RemoveMember
// @Summary Remove member from workspace
// @Description Deactivate a workspace member and all of their project memberships
// @Tags workspace-members
// @Security BearerAuth
// @Param slug path string true "Workspace slug"
// @Param id path string true "Workspace member ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 429 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /workspaces/{slug}/members/{id} [delete]
func (c *WorkspaceMemberController) RemoveMember(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	memberID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member ID"})
		return
	}

	storeCtx, cancel := c.storeContext(ctx)
	defer cancel()

	if err := c.memberService.RemoveMember(storeCtx, ctx.Param("slug"), memberID, user); err != nil {
		respondWithError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Leave
// @Summary Leave workspace
// @Description Deactivate the caller's workspace membership and project memberships
// @Tags workspace-members
// @Security BearerAuth
// @Param slug path string true "Workspace slug"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 429 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /workspaces/{slug}/members/leave [post]
func (c *WorkspaceMemberController) Leave(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	storeCtx, cancel := c.storeContext(ctx)
	defer cancel()

	if err := c.memberService.Leave(storeCtx, ctx.Param("slug"), user); err != nil {
		respondWithError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// GetMyMembership
// @Summary Get own workspace membership
// @Tags workspace-members
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Workspace slug"
// @Success 200 {object} workspaces_dto.MyMembershipResponseDTO
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /workspaces/{slug}/members/me [get]
func (c *WorkspaceMemberController) GetMyMembership(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	storeCtx, cancel := c.storeContext(ctx)
	defer cancel()

	response, err := c.memberService.GetMyMembership(storeCtx, ctx.Param("slug"), user)
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// UpdateViewProps
// @Summary Update own view preferences
// @Tags workspace-members
// @Accept json
// @Security BearerAuth
// @Param slug path string true "Workspace slug"
// @Param request body workspaces_dto.UpdateViewPropsRequestDTO true "View preferences"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /workspaces/{slug}/members/me/view-props [post]
func (c *WorkspaceMemberController) UpdateViewProps(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var request workspaces_dto.UpdateViewPropsRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	storeCtx, cancel := c.storeContext(ctx)
	defer cancel()

	if err := c.memberService.UpdateViewProps(storeCtx, ctx.Param("slug"), request.ViewProps, user); err != nil {
		respondWithError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// ListProjectMembers
// @Summary List members of the caller's projects
// @Description Active members of every project the caller belongs to, grouped by project ID
// @Tags workspace-members
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Workspace slug"
// @Success 200 {object} workspaces_dto.GetProjectMembersResponseDTO
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /workspaces/{slug}/project-members [get]
func (c *WorkspaceMemberController) ListProjectMembers(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	storeCtx, cancel := c.storeContext(ctx)
	defer cancel()

	response, err := c.memberService.GetProjectMembers(storeCtx, ctx.Param("slug"), user)
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

func (c *WorkspaceMemberController) storeContext(ctx *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx.Request.Context(), c.storeTimeout)
}
