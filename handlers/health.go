package handlers

import (
	"context"
	"net/http"
	"time"

	"advisorly/database"
	"advisorly/utils"

	"github.com/gin-gonic/gin"
)

// HealthCheck reports liveness plus the state of the core backing stores.
func HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	checks := gin.H{"mongo": "ok", "redis": "ok"}

	if err := database.MongoClient.Ping(ctx, nil); err != nil {
		checks["mongo"] = err.Error()
		status = http.StatusServiceUnavailable
	}
	if err := utils.GetCacheClient().Ping(ctx).Err(); err != nil {
		checks["redis"] = err.Error()
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{"status": http.StatusText(status), "checks": checks})
}
