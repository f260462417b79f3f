package workspaces_controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	users_middleware "teamspace/internal/features/users/middleware"
	workspaces_dto "teamspace/internal/features/workspaces/dto"
	workspaces_errors "teamspace/internal/features/workspaces/errors"
	workspaces_services "teamspace/internal/features/workspaces/services"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type TeamController struct {
	memberService       *workspaces_services.WorkspaceMemberService
	rateLimiter         MutationRateLimiter
	teamCreationLimiter *rate.Limiter
	mutationsPerSecond  int
	mutationsBurst      int
	storeTimeout        time.Duration
}

func NewTeamController(
	memberService *workspaces_services.WorkspaceMemberService,
	rateLimiter MutationRateLimiter,
	teamCreationLimiter *rate.Limiter,
	mutationsPerSecond int,
	mutationsBurst int,
	storeTimeout time.Duration,
) *TeamController {
	return &TeamController{
		memberService:       memberService,
		rateLimiter:         rateLimiter,
		teamCreationLimiter: teamCreationLimiter,
		mutationsPerSecond:  mutationsPerSecond,
		mutationsBurst:      mutationsBurst,
		storeTimeout:        storeTimeout,
	}
}

func (c *TeamController) RegisterRoutes(router *gin.RouterGroup) {
	workspaceRoutes := router.Group("/workspaces/:slug")

	workspaceRoutes.GET("/teams", c.ListTeams)
	workspaceRoutes.POST(
		"/teams",
		memberMutationRateLimit(c.rateLimiter, c.mutationsPerSecond, c.mutationsBurst),
		c.CreateTeam,
	)
}

// CreateTeam
// @Summary Create team
// @Description Create a team. Every member must hold an active membership in the workspace.
// @Tags workspace-teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Workspace slug"
// @Param request body workspaces_dto.CreateTeamRequestDTO true "Team data"
// @Success 201 {object} workspaces_dto.TeamResponseDTO
// @Failure 400 {object} workspaces_dto.TeamRejectionResponseDTO
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 429 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /workspaces/{slug}/teams [post]
func (c *TeamController) CreateTeam(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if !c.teamCreationLimiter.Allow() {
		ctx.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many teams created, please retry later"})
		return
	}

	var request workspaces_dto.CreateTeamRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	storeCtx, cancel := context.WithTimeout(ctx.Request.Context(), c.storeTimeout)
	defer cancel()

	team, err := c.memberService.CreateTeam(storeCtx, ctx.Param("slug"), &request, user)
	if err != nil {
		var rejection *workspaces_errors.RuleRejection
		if errors.As(err, &rejection) && len(rejection.Members) > 0 {
			ctx.JSON(http.StatusBadRequest, workspaces_dto.TeamRejectionResponseDTO{
				Error:   rejection.Reason,
				Members: c.memberService.DescribeUsers(storeCtx, rejection.Members),
			})
			return
		}

		respondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, team)
}

// ListTeams
// @Summary List teams
// @Tags workspace-teams
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Workspace slug"
// @Success 200 {object} workspaces_dto.ListTeamsResponseDTO
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /workspaces/{slug}/teams [get]
func (c *TeamController) ListTeams(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	storeCtx, cancel := context.WithTimeout(ctx.Request.Context(), c.storeTimeout)
	defer cancel()

	response, err := c.memberService.ListTeams(storeCtx, ctx.Param("slug"), user)
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}
