package handlers

import (
	"net/http"
	"strconv"
	"time"

	"icoffee-admin/internal/api/interfaces"
	"icoffee-admin/internal/api/models"

	"github.com/gin-gonic/gin"
)

// GetAuditLogs returns the audit trail, newest first, with optional
// action and actor filters.
func GetAuditLogs(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "50"))
		if page < 1 {
			page = 1
		}
		if pageSize < 1 || pageSize > 200 {
			pageSize = 50
		}

		var startTime, endTime *time.Time
		if raw := c.Query("start"); raw != "" {
			if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
				startTime = &parsed
			}
		}
		if raw := c.Query("end"); raw != "" {
			if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
				endTime = &parsed
			}
		}

		logs, err := services.AuditLogRepository().GetAuditLogs(
			pageSize, (page-1)*pageSize,
			c.Query("action"), c.Query("actor"),
			startTime, endTime,
		)
		if err != nil {
			services.GetLogger().Error("Failed to fetch audit logs: %v", err)
			c.JSON(http.StatusInternalServerError, models.BaseResponse{
				Success: false,
				Error: &models.ErrorInfo{
					Code:    models.ErrCodeInternalError,
					Message: "Failed to fetch audit logs",
				},
				Timestamp: time.Now().Unix(),
			})
			return
		}

		c.JSON(http.StatusOK, models.BaseResponse{
			Success:   true,
			Data:      logs,
			Timestamp: time.Now().Unix(),
		})
	}
}
