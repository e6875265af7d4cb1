package handlers

import (
	"net/http"
	"time"

	"icoffee-admin/internal/api/interfaces"
	"icoffee-admin/internal/api/middlewares"
	"icoffee-admin/internal/api/models"
	"icoffee-admin/internal/database"
	"icoffee-admin/internal/rbac"
	"icoffee-admin/internal/session"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// Helper functions
func getClientIP(c *gin.Context) string {
	if forwarded := c.GetHeader("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	if realIP := c.GetHeader("X-Real-IP"); realIP != "" {
		return realIP
	}
	return c.ClientIP()
}

func createAuditLog(services interfaces.Services, action, actorID, resource, details, clientIP string) {
	auditLog := &database.AuditLog{
		Action:    action,
		ActorID:   actorID,
		Resource:  resource,
		Details:   details,
		IPAddress: clientIP,
		CreatedAt: time.Now(),
	}

	if err := services.AuditLogRepository().InsertAuditLog(auditLog); err != nil {
		services.GetLogger().Error("Failed to create audit log: %v", err)
	}
}

func identityFor(user *database.User) session.UserIdentity {
	return session.UserIdentity{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		Role:    rbac.Role(user.Role),
		SubRole: rbac.SubRole(user.SubRole),
	}
}

// Login handles authentication requests
func Login(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.BaseResponse{
				Success: false,
				Error: &models.ErrorInfo{
					Code:    models.ErrCodeValidationError,
					Message: "Invalid request format: " + err.Error(),
				},
				Timestamp: time.Now().Unix(),
			})
			return
		}

		clientIP := getClientIP(c)
		services.GetLogger().Info("Login attempt - email: %s, ip: %s", req.Email, clientIP)

		user, err := services.UserRepository().GetByEmail(req.Email)
		if err != nil {
			services.GetLogger().SecurityLogger("login_failed", req.Email, "unknown email")
			c.JSON(http.StatusUnauthorized, models.BaseResponse{
				Success: false,
				Error: &models.ErrorInfo{
					Code:    models.ErrCodeInvalidCredentials,
					Message: "Invalid email or password",
				},
				Timestamp: time.Now().Unix(),
			})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			services.GetLogger().SecurityLogger("login_failed", req.Email, "bad password")
			createAuditLog(services, "login_failed", req.Email, "auth", "Bad password", clientIP)
			c.JSON(http.StatusUnauthorized, models.BaseResponse{
				Success: false,
				Error: &models.ErrorInfo{
					Code:    models.ErrCodeInvalidCredentials,
					Message: "Invalid email or password",
				},
				Timestamp: time.Now().Unix(),
			})
			return
		}

		// The login form pre-selects a department; a mismatch is treated
		// the same as bad credentials.
		if req.SubRole != "" && req.SubRole != user.SubRole {
			services.GetLogger().SecurityLogger("login_failed", req.Email, "sub_role mismatch")
			c.JSON(http.StatusUnauthorized, models.BaseResponse{
				Success: false,
				Error: &models.ErrorInfo{
					Code:    models.ErrCodeInvalidCredentials,
					Message: "Invalid email or password",
				},
				Timestamp: time.Now().Unix(),
			})
			return
		}

		identity := identityFor(user)

		accessToken, err := services.TokenManager().Generate(identity)
		if err != nil {
			services.GetLogger().Error("Failed to generate access token: %v", err)
			c.JSON(http.StatusInternalServerError, models.BaseResponse{
				Success: false,
				Error: &models.ErrorInfo{
					Code:    models.ErrCodeInternalError,
					Message: "Failed to create session",
				},
				Timestamp: time.Now().Unix(),
			})
			return
		}

		refreshToken, err := services.TokenManager().GenerateRefresh(identity)
		if err != nil {
			services.GetLogger().Error("Failed to generate refresh token: %v", err)
			c.JSON(http.StatusInternalServerError, models.BaseResponse{
				Success: false,
				Error: &models.ErrorInfo{
					Code:    models.ErrCodeInternalError,
					Message: "Failed to create session",
				},
				Timestamp: time.Now().Unix(),
			})
			return
		}

		services.SessionStore().SetAuthData(accessToken, refreshToken, identity)

		if err := services.UserRepository().UpdateLastLogin(user.ID); err != nil {
			services.GetLogger().Error("Failed to update last login: %v", err)
		}

		createAuditLog(services, "login", user.Email, "auth", "Signed in", clientIP)
		services.GetLogger().SessionLogger("created", user.Email, "login")

		c.JSON(http.StatusOK, models.AuthResponse{
			Success:      true,
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			ExpiresIn:    int64(services.GetConfig().Security.JWTExpiration.Seconds()),
			User:         &identity,
		})
	}
}

// RefreshToken exchanges a refresh token for a new token pair
func RefreshToken(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.RefreshRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.BaseResponse{
				Success: false,
				Error: &models.ErrorInfo{
					Code:    models.ErrCodeValidationError,
					Message: "Invalid request format: " + err.Error(),
				},
				Timestamp: time.Now().Unix(),
			})
			return
		}

		sess, ok := services.SessionStore().FindByRefresh(req.RefreshToken)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.BaseResponse{
				Success: false,
				Error: &models.ErrorInfo{
					Code:    models.ErrCodeInvalidToken,
					Message: "Unknown refresh token",
				},
				Timestamp: time.Now().Unix(),
			})
			return
		}

		if _, err := services.TokenManager().ParseClaims(req.RefreshToken); err != nil {
			// Expired refresh token: the whole session is gone.
			services.SessionStore().ClearAuthData(sess.Token)
			c.JSON(http.StatusUnauthorized, models.BaseResponse{
				Success: false,
				Error: &models.ErrorInfo{
					Code:    models.ErrCodeTokenExpired,
					Message: "Refresh token expired, sign in again",
				},
				Timestamp: time.Now().Unix(),
			})
			return
		}

		accessToken, err := services.TokenManager().Generate(sess.User)
		if err != nil {
			services.GetLogger().Error("Failed to generate access token: %v", err)
			c.JSON(http.StatusInternalServerError, models.BaseResponse{
				Success: false,
				Error: &models.ErrorInfo{
					Code:    models.ErrCodeInternalError,
					Message: "Failed to refresh session",
				},
				Timestamp: time.Now().Unix(),
			})
			return
		}

		refreshToken, err := services.TokenManager().GenerateRefresh(sess.User)
		if err != nil {
			services.GetLogger().Error("Failed to generate refresh token: %v", err)
			c.JSON(http.StatusInternalServerError, models.BaseResponse{
				Success: false,
				Error: &models.ErrorInfo{
					Code:    models.ErrCodeInternalError,
					Message: "Failed to refresh session",
				},
				Timestamp: time.Now().Unix(),
			})
			return
		}

		user := sess.User
		services.SessionStore().ClearAuthData(sess.Token)
		services.SessionStore().SetAuthData(accessToken, refreshToken, user)

		c.JSON(http.StatusOK, models.AuthResponse{
			Success:      true,
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			ExpiresIn:    int64(services.GetConfig().Security.JWTExpiration.Seconds()),
			User:         &user,
		})
	}
}

// Logout clears the caller's session
func Logout(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := middlewares.CurrentToken(c)
		user, _ := middlewares.CurrentUser(c)

		services.SessionStore().ClearAuthData(token)

		createAuditLog(services, "logout", user.Email, "auth", "Signed out", getClientIP(c))
		services.GetLogger().SessionLogger("cleared", user.Email, "logout")

		c.JSON(http.StatusOK, models.BaseResponse{
			Success:   true,
			Message:   "Signed out",
			Timestamp: time.Now().Unix(),
		})
	}
}

// GetStats returns the live dashboard counters
func GetStats(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := services.StatsRepository().GetStats()
		if err != nil {
			services.GetLogger().Error("Failed to load stats: %v", err)
			c.JSON(http.StatusInternalServerError, models.BaseResponse{
				Success: false,
				Error: &models.ErrorInfo{
					Code:    models.ErrCodeInternalError,
					Message: "Failed to load statistics",
				},
				Timestamp: time.Now().Unix(),
			})
			return
		}

		c.JSON(http.StatusOK, models.BaseResponse{
			Success:   true,
			Data:      stats,
			Timestamp: time.Now().Unix(),
		})
	}
}
