package middleware

import (
	"fmt"
	"net/http"
	"time"

	"tubeshare-go/internal/config"
	infraRedis "tubeshare-go/internal/infra/redis"
	"tubeshare-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RateLimit enforces a fixed-window per-IP limit on write endpoints,
// backed by a shared Redis counter so it holds across replicas. A limiter
// error lets the request through; throttling must not take the API down
// with it.
func RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		cfg := config.GetRateLimit()
		if !cfg.Enabled {
			c.Next()
			return
		}

		client := infraRedis.Get()
		if client == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("ratelimit:%s", c.ClientIP())
		ctx := c.Request.Context()

		count, err := client.Incr(ctx, key).Result()
		if err != nil {
			logger.Warn("Rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}
		if count == 1 {
			client.Expire(ctx, key, time.Minute)
		}

		if count > int64(cfg.RequestsPerMin) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": gin.H{
					"code":    http.StatusTooManyRequests,
					"message": "Too many requests, slow down",
					"type":    "RateLimited",
				},
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
