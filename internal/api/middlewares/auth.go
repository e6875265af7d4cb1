package middlewares

import (
	"net/http"
	"strings"
	"time"

	"icoffee-admin/internal/api/interfaces"
	"icoffee-admin/internal/api/models"
	"icoffee-admin/internal/guard"
	"icoffee-admin/internal/rbac"
	"icoffee-admin/internal/session"

	"github.com/gin-gonic/gin"
)

const (
	contextUserKey  = "current_user"
	contextTokenKey = "access_token"
)

// GuardRequired wraps a protected route in the route guard. With no
// subroles listed, any authenticated admin is authorized. Session and
// permission failures are answered here and never reach the handler.
func GuardRequired(services interfaces.Services, allowed ...rbac.SubRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ExtractToken(c)

		g := guard.New(
			services.SessionStore(),
			guard.Requirement{AllowedSubRoles: allowed},
			services.GetConfig().API.LoginPath,
		)
		decision := g.Evaluate(token)

		switch decision.State {
		case guard.StateAuthorized:
			c.Set(contextUserKey, *decision.User)
			c.Set(contextTokenKey, token)
			c.Next()

		case guard.StateDeniedWrongSubRole:
			// In-place denial panel, not a redirect.
			c.JSON(http.StatusForbidden, models.BaseResponse{
				Success: false,
				Error: &models.ErrorInfo{
					Code:    models.ErrCodePermissionDenied,
					Message: "Your department does not have access to this section",
				},
				Data: models.AccessDenied{
					CurrentSubRole: decision.CurrentSubRole,
					GoBackPath:     "/admin/dashboard",
				},
				Timestamp: time.Now().Unix(),
			})
			c.Abort()

		default:
			c.JSON(http.StatusUnauthorized, models.BaseResponse{
				Success: false,
				Error: &models.ErrorInfo{
					Code:    models.ErrCodeSessionInvalid,
					Message: "Sign in required",
				},
				Data: models.LoginRedirect{
					RedirectTo: decision.RedirectTo,
				},
				Timestamp: time.Now().Unix(),
			})
			c.Abort()
		}
	}
}

// CurrentUser returns the authenticated identity set by GuardRequired.
func CurrentUser(c *gin.Context) (session.UserIdentity, bool) {
	value, exists := c.Get(contextUserKey)
	if !exists {
		return session.UserIdentity{}, false
	}
	user, ok := value.(session.UserIdentity)
	return user, ok
}

// CurrentToken returns the access token set by GuardRequired.
func CurrentToken(c *gin.Context) string {
	return c.GetString(contextTokenKey)
}

// ExtractToken extracts the bearer token from the Authorization header,
// falling back to the token query parameter for websocket upgrades.
func ExtractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return c.Query("token")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}

	return parts[1]
}
