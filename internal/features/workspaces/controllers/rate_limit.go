package workspaces_controllers

import (
	"context"
	"net/http"
	"strconv"

	users_middleware "teamspace/internal/features/users/middleware"
	"teamspace/internal/util/logger"
	"teamspace/internal/util/rate_limit"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MutationRateLimiter interface {
	CheckRateLimit(
		ctx context.Context,
		actorID uuid.UUID,
		requestsPerSecond int,
		burst int,
	) (*rate_limit.RateLimitResult, error)
}

// memberMutationRateLimit throttles membership mutations per actor. A limiter
// failure lets the request through.
func memberMutationRateLimit(limiter MutationRateLimiter, requestsPerSecond, burst int) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, ok := users_middleware.GetUserFromContext(ctx)
		if !ok {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			ctx.Abort()
			return
		}

		result, err := limiter.CheckRateLimit(ctx.Request.Context(), user.ID, requestsPerSecond, burst)
		if err != nil {
			logger.GetLogger().Warn("member mutation rate limit check failed", "userId", user.ID, "error", err)
			ctx.Next()
			return
		}

		if !result.Allowed {
			ctx.Header("Retry-After", strconv.Itoa(result.RetryAfterSec))
			ctx.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many membership changes, please slow down"})
			ctx.Abort()
			return
		}

		ctx.Next()
	}
}
