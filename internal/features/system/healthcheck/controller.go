package system_healthcheck

import (
	"net/http"

	"teamspace/internal/util/logger"

	"github.com/gin-gonic/gin"
)

type HealthcheckController struct {
	healthcheckService *HealthcheckService
}

func (c *HealthcheckController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/system/health", c.CheckHealth)
}

// CheckHealth
// @Summary Check system health
// @Description Checks postgres and valkey availability and reports disk usage
// @Tags system/health
// @Produce json
// @Success 200 {object} HealthcheckResponse
// @Failure 503 {object} map[string]string
// @Router /system/health [get]
func (c *HealthcheckController) CheckHealth(ctx *gin.Context) {
	if err := c.healthcheckService.IsAvailable(ctx.Request.Context()); err != nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	response := HealthcheckResponse{Status: "ok"}

	diskUsage, err := c.healthcheckService.GetDiskUsage(ctx.Request.Context())
	if err != nil {
		logger.GetLogger().Warn("disk usage unavailable", "error", err)
	} else {
		response.Disk = diskUsage
	}

	ctx.JSON(http.StatusOK, response)
}
