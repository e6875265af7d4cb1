package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"icoffee-admin/internal/api/interfaces"
	"icoffee-admin/internal/api/middlewares"
	"icoffee-admin/internal/api/models"
	"icoffee-admin/internal/database"
	"icoffee-admin/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

func toUserResponse(user *database.User) models.UserResponse {
	resp := models.UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		SubRole:   user.SubRole,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt.Unix(),
	}
	if user.LastLogin != nil {
		ts := user.LastLogin.Unix()
		resp.LastLogin = &ts
	}
	return resp
}

// ListUsers returns a paginated user listing
func ListUsers(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.PaginationRequest
		if err := c.ShouldBindQuery(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.BaseResponse{
				Success: false,
				Error: &models.ErrorInfo{
					Code:    models.ErrCodeValidationError,
					Message: "Invalid pagination parameters",
				},
				Timestamp: time.Now().Unix(),
			})
			return
		}

		if req.Page < 1 {
			req.Page = 1
		}
		if req.PageSize < 1 || req.PageSize > 100 {
			req.PageSize = 20
		}

		offset := (req.Page - 1) * req.PageSize
		users, err := services.UserRepository().List(req.PageSize, offset, req.Role, req.SubRole)
		if err != nil {
			services.GetLogger().Error("Failed to list users: %v", err)
			c.JSON(http.StatusInternalServerError, models.BaseResponse{
				Success: false,
				Error: &models.ErrorInfo{
					Code:    models.ErrCodeInternalError,
					Message: "Failed to list users",
				},
				Timestamp: time.Now().Unix(),
			})
			return
		}

		total, err := services.UserRepository().Count(req.Role, req.SubRole)
		if err != nil {
			services.GetLogger().Error("Failed to count users: %v", err)
			c.JSON(http.StatusInternalServerError, models.BaseResponse{
				Success: false,
				Error: &models.ErrorInfo{
					Code:    models.ErrCodeInternalError,
					Message: "Failed to list users",
				},
				Timestamp: time.Now().Unix(),
			})
			return
		}

		responses := make([]models.UserResponse, 0, len(users))
		for i := range users {
			responses = append(responses, toUserResponse(&users[i]))
		}

		totalPages := int((total + int64(req.PageSize) - 1) / int64(req.PageSize))

		c.JSON(http.StatusOK, models.BaseResponse{
			Success: true,
			Data: models.PaginatedResponse{
				Data: responses,
				Pagination: models.PaginationInfo{
					CurrentPage:  req.Page,
					PageSize:     req.PageSize,
					TotalPages:   totalPages,
					TotalRecords: total,
					HasNext:      req.Page < totalPages,
					HasPrevious:  req.Page > 1,
				},
			},
			Timestamp: time.Now().Unix(),
		})
	}
}

// CreateUser creates a staff or customer account. What the caller may
// create depends on their own department: IT and DIRECTOR create
// anything, HR creates non-director staff and customers, everyone else
// creates customers only.
func CreateUser(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, _ := middlewares.CurrentUser(c)

		var req models.UserCreateRequest
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

		targetRole := rbac.Role(req.Role)
		targetSubRole := rbac.SubRole(req.SubRole)

		if !targetSubRole.ValidFor(targetRole) {
			c.JSON(http.StatusBadRequest, models.BaseResponse{
				Success: false,
				Error: &models.ErrorInfo{
					Code:    models.ErrCodeValidationError,
					Message: fmt.Sprintf("Sub role %s is not valid for role %s", req.SubRole, req.Role),
				},
				Timestamp: time.Now().Unix(),
			})
			return
		}

		if !rbac.CanCreateUser(actor.SubRole, targetRole, targetSubRole) {
			services.GetLogger().SecurityLogger("create_user_denied", actor.Email,
				fmt.Sprintf("target %s/%s", req.Role, req.SubRole))
			c.JSON(http.StatusForbidden, models.BaseResponse{
				Success: false,
				Error: &models.ErrorInfo{
					Code:    models.ErrCodePermissionDenied,
					Message: "Your department cannot create this kind of account",
				},
				Timestamp: time.Now().Unix(),
			})
			return
		}

		if _, err := services.UserRepository().GetByEmail(req.Email); err == nil {
			c.JSON(http.StatusConflict, models.BaseResponse{
				Success: false,
				Error: &models.ErrorInfo{
					Code:    models.ErrCodeUserExists,
					Message: "A user with this email already exists",
				},
				Timestamp: time.Now().Unix(),
			})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			services.GetLogger().Error("Failed to hash password: %v", err)
			c.JSON(http.StatusInternalServerError, models.BaseResponse{
				Success: false,
				Error: &models.ErrorInfo{
					Code:    models.ErrCodeInternalError,
					Message: "Failed to create user",
				},
				Timestamp: time.Now().Unix(),
			})
			return
		}

		user := &database.User{
			Name:         req.Name,
			Email:        req.Email,
			PasswordHash: string(hash),
			Role:         req.Role,
			SubRole:      req.SubRole,
			IsActive:     true,
		}

		if err := services.UserRepository().Create(user); err != nil {
			services.GetLogger().Error("Failed to create user: %v", err)
			c.JSON(http.StatusInternalServerError, models.BaseResponse{
				Success: false,
				Error: &models.ErrorInfo{
					Code:    models.ErrCodeInternalError,
					Message: "Failed to create user",
				},
				Timestamp: time.Now().Unix(),
			})
			return
		}

		createAuditLog(services, "user_created", actor.Email, "users",
			fmt.Sprintf("Created %s/%s account for %s", req.Role, req.SubRole, req.Email),
			getClientIP(c))

		c.JSON(http.StatusCreated, models.BaseResponse{
			Success:   true,
			Message:   "User created",
			Data:      toUserResponse(user),
			Timestamp: time.Now().Unix(),
		})
	}
}

// UpdateUser modifies a user's profile fields
func UpdateUser(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, _ := middlewares.CurrentUser(c)

		userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.BaseResponse{
				Success: false,
				Error: &models.ErrorInfo{
					Code:    models.ErrCodeValidationError,
					Message: "Invalid user ID",
				},
				Timestamp: time.Now().Unix(),
			})
			return
		}

		var req models.UserUpdateRequest
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

		user, err := services.UserRepository().GetByID(userID)
		if err != nil {
			c.JSON(http.StatusNotFound, models.BaseResponse{
				Success: false,
				Error: &models.ErrorInfo{
					Code:    models.ErrCodeUserNotFound,
					Message: "User not found",
				},
				Timestamp: time.Now().Unix(),
			})
			return
		}

		if req.SubRole != "" && req.SubRole != user.SubRole {
			newSubRole := rbac.SubRole(req.SubRole)
			if !newSubRole.ValidFor(rbac.Role(user.Role)) {
				c.JSON(http.StatusBadRequest, models.BaseResponse{
					Success: false,
					Error: &models.ErrorInfo{
						Code:    models.ErrCodeValidationError,
						Message: fmt.Sprintf("Sub role %s is not valid for role %s", req.SubRole, user.Role),
					},
					Timestamp: time.Now().Unix(),
				})
				return
			}
			// Changing a department assignment is account creation in
			// disguise, so it uses the same policy.
			if !rbac.CanCreateUser(actor.SubRole, rbac.Role(user.Role), newSubRole) {
				c.JSON(http.StatusForbidden, models.BaseResponse{
					Success: false,
					Error: &models.ErrorInfo{
						Code:    models.ErrCodePermissionDenied,
						Message: "Your department cannot assign this sub role",
					},
					Timestamp: time.Now().Unix(),
				})
				return
			}
			user.SubRole = req.SubRole
		}

		if req.Name != "" {
			user.Name = req.Name
		}
		if req.Email != "" {
			user.Email = req.Email
		}
		if req.IsActive != nil {
			user.IsActive = *req.IsActive
		}

		if err := services.UserRepository().Update(user); err != nil {
			services.GetLogger().Error("Failed to update user %d: %v", userID, err)
			c.JSON(http.StatusInternalServerError, models.BaseResponse{
				Success: false,
				Error: &models.ErrorInfo{
					Code:    models.ErrCodeInternalError,
					Message: "Failed to update user",
				},
				Timestamp: time.Now().Unix(),
			})
			return
		}

		createAuditLog(services, "user_updated", actor.Email, "users",
			fmt.Sprintf("Updated account %d", userID), getClientIP(c))

		c.JSON(http.StatusOK, models.BaseResponse{
			Success:   true,
			Message:   "User updated",
			Data:      toUserResponse(user),
			Timestamp: time.Now().Unix(),
		})
	}
}

// DeleteUser deactivates an account. Only IT and DIRECTOR may do this.
func DeleteUser(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, _ := middlewares.CurrentUser(c)

		if !rbac.CanDeleteUser(actor.SubRole) {
			c.JSON(http.StatusForbidden, models.BaseResponse{
				Success: false,
				Error: &models.ErrorInfo{
					Code:    models.ErrCodePermissionDenied,
					Message: "Your department cannot delete accounts",
				},
				Timestamp: time.Now().Unix(),
			})
			return
		}

		userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.BaseResponse{
				Success: false,
				Error: &models.ErrorInfo{
					Code:    models.ErrCodeValidationError,
					Message: "Invalid user ID",
				},
				Timestamp: time.Now().Unix(),
			})
			return
		}

		if _, err := services.UserRepository().GetByID(userID); err != nil {
			c.JSON(http.StatusNotFound, models.BaseResponse{
				Success: false,
				Error: &models.ErrorInfo{
					Code:    models.ErrCodeUserNotFound,
					Message: "User not found",
				},
				Timestamp: time.Now().Unix(),
			})
			return
		}

		if err := services.UserRepository().Deactivate(userID); err != nil {
			services.GetLogger().Error("Failed to deactivate user %d: %v", userID, err)
			c.JSON(http.StatusInternalServerError, models.BaseResponse{
				Success: false,
				Error: &models.ErrorInfo{
					Code:    models.ErrCodeInternalError,
					Message: "Failed to delete user",
				},
				Timestamp: time.Now().Unix(),
			})
			return
		}

		createAuditLog(services, "user_deleted", actor.Email, "users",
			fmt.Sprintf("Deactivated account %d", userID), getClientIP(c))

		c.JSON(http.StatusOK, models.BaseResponse{
			Success:   true,
			Message:   "User deactivated",
			Timestamp: time.Now().Unix(),
		})
	}
}

// ResetPassword sets a new password for an account. IT, DIRECTOR and HR
// may reset any account.
func ResetPassword(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, _ := middlewares.CurrentUser(c)

		if !rbac.CanResetPassword(actor.SubRole) {
			c.JSON(http.StatusForbidden, models.BaseResponse{
				Success: false,
				Error: &models.ErrorInfo{
					Code:    models.ErrCodePermissionDenied,
					Message: "Your department cannot reset passwords",
				},
				Timestamp: time.Now().Unix(),
			})
			return
		}

		userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.BaseResponse{
				Success: false,
				Error: &models.ErrorInfo{
					Code:    models.ErrCodeValidationError,
					Message: "Invalid user ID",
				},
				Timestamp: time.Now().Unix(),
			})
			return
		}

		var req models.PasswordResetRequest
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

		if req.NewPassword != req.ConfirmPassword {
			c.JSON(http.StatusBadRequest, models.BaseResponse{
				Success: false,
				Error: &models.ErrorInfo{
					Code:    models.ErrCodeValidationError,
					Message: "Passwords do not match",
				},
				Timestamp: time.Now().Unix(),
			})
			return
		}

		if _, err := services.UserRepository().GetByID(userID); err != nil {
			c.JSON(http.StatusNotFound, models.BaseResponse{
				Success: false,
				Error: &models.ErrorInfo{
					Code:    models.ErrCodeUserNotFound,
					Message: "User not found",
				},
				Timestamp: time.Now().Unix(),
			})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			services.GetLogger().Error("Failed to hash password: %v", err)
			c.JSON(http.StatusInternalServerError, models.BaseResponse{
				Success: false,
				Error: &models.ErrorInfo{
					Code:    models.ErrCodeInternalError,
					Message: "Failed to reset password",
				},
				Timestamp: time.Now().Unix(),
			})
			return
		}

		if err := services.UserRepository().UpdatePassword(userID, string(hash)); err != nil {
			services.GetLogger().Error("Failed to reset password for user %d: %v", userID, err)
			c.JSON(http.StatusInternalServerError, models.BaseResponse{
				Success: false,
				Error: &models.ErrorInfo{
					Code:    models.ErrCodeInternalError,
					Message: "Failed to reset password",
				},
				Timestamp: time.Now().Unix(),
			})
			return
		}

		createAuditLog(services, "password_reset", actor.Email, "users",
			fmt.Sprintf("Reset password for account %d", userID), getClientIP(c))
		services.GetLogger().SecurityLogger("password_reset", actor.Email,
			fmt.Sprintf("account %d", userID))

		c.JSON(http.StatusOK, models.BaseResponse{
			Success:   true,
			Message:   "Password reset",
			Timestamp: time.Now().Unix(),
		})
	}
}

// GenerateRecoveryCode issues a one-time recovery code for an account
func GenerateRecoveryCode(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, _ := middlewares.CurrentUser(c)

		if !rbac.CanGenerateRecovery(actor.SubRole) {
			c.JSON(http.StatusForbidden, models.BaseResponse{
				Success: false,
				Error: &models.ErrorInfo{
					Code:    models.ErrCodePermissionDenied,
					Message: "Your department cannot issue recovery codes",
				},
				Timestamp: time.Now().Unix(),
			})
			return
		}

		userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.BaseResponse{
				Success: false,
				Error: &models.ErrorInfo{
					Code:    models.ErrCodeValidationError,
					Message: "Invalid user ID",
				},
				Timestamp: time.Now().Unix(),
			})
			return
		}

		if _, err := services.UserRepository().GetByID(userID); err != nil {
			c.JSON(http.StatusNotFound, models.BaseResponse{
				Success: false,
				Error: &models.ErrorInfo{
					Code:    models.ErrCodeUserNotFound,
					Message: "User not found",
				},
				Timestamp: time.Now().Unix(),
			})
			return
		}

		code := uuid.New().String()
		if err := services.UserRepository().SetRecoveryCode(userID, code); err != nil {
			services.GetLogger().Error("Failed to set recovery code for user %d: %v", userID, err)
			c.JSON(http.StatusInternalServerError, models.BaseResponse{
				Success: false,
				Error: &models.ErrorInfo{
					Code:    models.ErrCodeInternalError,
					Message: "Failed to generate recovery code",
				},
				Timestamp: time.Now().Unix(),
			})
			return
		}

		createAuditLog(services, "recovery_code_issued", actor.Email, "users",
			fmt.Sprintf("Issued recovery code for account %d", userID), getClientIP(c))

		c.JSON(http.StatusOK, models.BaseResponse{
			Success:   true,
			Message:   "Recovery code generated",
			Data:      gin.H{"recovery_code": code},
			Timestamp: time.Now().Unix(),
		})
	}
}
