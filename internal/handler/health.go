package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health reports liveness of the API and its two backing stores. Returns 503
// when either store is unreachable so load balancers stop routing here.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		postgres := "ok"
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			postgres = "unreachable"
		}

		cache := "ok"
		if rdb.Ping(ctx).Err() != nil {
			cache = "unreachable"
		}

		status := http.StatusOK
		if postgres != "ok" || cache != "ok" {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{
			"status":   http.StatusText(status),
			"postgres": postgres,
			"redis":    cache,
		})
	}
}
