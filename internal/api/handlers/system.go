package handlers

import (
	"net/http"
	"time"

	"icoffee-admin/internal/api/interfaces"
	"icoffee-admin/internal/api/middlewares"
	"icoffee-admin/internal/api/models"

	"github.com/gin-gonic/gin"
)

var startTime = time.Now()

// HealthCheck returns service health status
func HealthCheck(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		checks := make(map[string]models.HealthCheck)

		dbStatus := "healthy"
		if !services.IsHealthy() {
			dbStatus = "unhealthy"
		}
		checks["database"] = models.HealthCheck{Status: dbStatus}
		checks["sessions"] = models.HealthCheck{Status: "healthy"}

		status := "healthy"
		httpStatus := http.StatusOK
		for _, check := range checks {
			if check.Status != "healthy" {
				status = "unhealthy"
				httpStatus = http.StatusServiceUnavailable
				break
			}
		}

		c.JSON(httpStatus, models.HealthCheckResponse{
			Status:    status,
			Timestamp: time.Now().Unix(),
			Version:   "1.0.0",
			Uptime:    int64(time.Since(startTime).Seconds()),
			Checks:    checks,
		})
	}
}

// Ping is a lightweight liveness probe
func Ping() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	}
}

// Root redirects the bare path: a live session lands on the dashboard,
// everyone else goes to login.
func Root(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := middlewares.ExtractToken(c)
		if token != "" && services.SessionStore().IsTokenValid(token) {
			c.Redirect(http.StatusFound, "/admin/dashboard")
			return
		}
		c.Redirect(http.StatusFound, services.GetConfig().API.LoginPath)
	}
}

// NotFound handles unknown routes
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, models.BaseResponse{
			Success: false,
			Error: &models.ErrorInfo{
				Code:    models.ErrCodeNotFound,
				Message: "The requested resource was not found",
			},
			Timestamp: time.Now().Unix(),
		})
	}
}
