package models

// LoginRequest represents authentication login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"admin@i-coffee.ng"`
	Password string `json:"password" binding:"required" example:"password123"`
	SubRole  string `json:"sub_role,omitempty" example:"IT"`
}

// RefreshRequest represents a token refresh request
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UserCreateRequest represents user creation request
type UserCreateRequest struct {
	Name     string `json:"name" binding:"required" example:"Jane Doe"`
	Email    string `json:"email" binding:"required,email" example:"jane@i-coffee.ng"`
	Password string `json:"password" binding:"required,min=8" example:"securepass123"`
	Role     string `json:"role" binding:"required,oneof=ADMIN USER" example:"ADMIN"`
	SubRole  string `json:"sub_role" binding:"required" example:"SALES"`
}

// UserUpdateRequest represents user update request
type UserUpdateRequest struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	SubRole  string `json:"sub_role,omitempty"`
	IsActive *bool  `json:"is_active,omitempty"`
}

// PasswordResetRequest represents password reset request
type PasswordResetRequest struct {
	NewPassword     string `json:"new_password" binding:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// PaginationRequest represents pagination parameters
type PaginationRequest struct {
	Page     int    `form:"page" json:"page" example:"1"`
	PageSize int    `form:"page_size" json:"page_size" example:"20"`
	Role     string `form:"role" json:"role,omitempty"`
	SubRole  string `form:"sub_role" json:"sub_role,omitempty"`
}
