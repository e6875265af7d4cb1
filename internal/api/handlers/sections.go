package handlers

import (
	"net/http"
	"time"

	"icoffee-admin/internal/api/interfaces"
	"icoffee-admin/internal/api/models"
	"icoffee-admin/internal/rbac"

	"github.com/gin-gonic/gin"
)

// Section serves a guarded admin section view. The guard middleware has
// already settled the authorization question by the time this runs, so
// the handler only describes the section the caller landed on.
func Section(services interfaces.Services, path, title string, allowed []rbac.SubRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.BaseResponse{
			Success: true,
			Data: models.SectionResponse{
				Path:            path,
				Title:           title,
				AllowedSubRoles: allowed,
			},
			Timestamp: time.Now().Unix(),
		})
	}
}
