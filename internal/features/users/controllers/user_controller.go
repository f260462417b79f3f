package users_controllers

import (
	"net/http"

	users_middleware "teamspace/internal/features/users/middleware"
	users_services "teamspace/internal/features/users/services"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	userService *users_services.UserService
}

func NewUserController(userService *users_services.UserService) *UserController {
	return &UserController{userService: userService}
}

func (c *UserController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/users/me", c.GetCurrentUser)
}

// GetCurrentUser
// @Summary Get current user profile
// @Description Get the profile of the authenticated user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} users_dto.UserProfileResponseDTO
// @Failure 401 {object} map[string]string
// @Router /users/me [get]
func (c *UserController) GetCurrentUser(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx.JSON(http.StatusOK, c.userService.GetCurrentUserProfile(user))
}
