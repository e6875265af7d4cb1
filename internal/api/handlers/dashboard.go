package handlers

import (
	"net/http"
	"time"

	"icoffee-admin/internal/api/interfaces"
	"icoffee-admin/internal/api/middlewares"
	"icoffee-admin/internal/api/models"
	"icoffee-admin/internal/dashboard"

	"github.com/gin-gonic/gin"
)

// AdminDashboard resolves the landing page for the caller's department.
// Every admin gets a dashboard; an unrecognized department falls back to
// the IT layout.
func AdminDashboard(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := middlewares.CurrentUser(c)

		stats, err := services.StatsRepository().GetStats()
		if err != nil {
			services.GetLogger().Error("Failed to load dashboard stats: %v", err)
			c.JSON(http.StatusInternalServerError, models.BaseResponse{
				Success: false,
				Error: &models.ErrorInfo{
					Code:    models.ErrCodeInternalError,
					Message: "Failed to load dashboard",
				},
				Timestamp: time.Now().Unix(),
			})
			return
		}

		config := dashboard.Resolve(user.SubRole, stats)

		c.JSON(http.StatusOK, models.BaseResponse{
			Success: true,
			Data: models.DashboardResponse{
				Config: config,
				Stats:  stats,
			},
			Timestamp: time.Now().Unix(),
		})
	}
}
