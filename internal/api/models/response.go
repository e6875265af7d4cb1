package models

import (
	"icoffee-admin/internal/dashboard"
	"icoffee-admin/internal/rbac"
	"icoffee-admin/internal/session"
)

// BaseResponse represents the base API response structure
type BaseResponse struct {
	Success   bool        `json:"success" example:"true"`
	Message   string      `json:"message,omitempty" example:"Operation completed successfully"`
	Data      interface{} `json:"data,omitempty"`
	Error     *ErrorInfo  `json:"error,omitempty"`
	Timestamp int64       `json:"timestamp" example:"1640995200"`
	RequestID string      `json:"request_id,omitempty" example:"req_123456"`
}

// ErrorInfo represents error information
type ErrorInfo struct {
	Code    string `json:"code" example:"INVALID_REQUEST"`
	Message string `json:"message" example:"Invalid request parameters"`
	Details string `json:"details,omitempty"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	Success      bool                  `json:"success" example:"true"`
	AccessToken  string                `json:"access_token"`
	RefreshToken string                `json:"refresh_token,omitempty"`
	ExpiresIn    int64                 `json:"expires_in" example:"3600"`
	User         *session.UserIdentity `json:"user,omitempty"`
}

// UserResponse represents user information
type UserResponse struct {
	ID        int64  `json:"id" example:"123"`
	Name      string `json:"name" example:"Jane Doe"`
	Email     string `json:"email" example:"jane@i-coffee.ng"`
	Role      string `json:"role" example:"ADMIN"`
	SubRole   string `json:"sub_role" example:"SALES"`
	IsActive  bool   `json:"is_active" example:"true"`
	LastLogin *int64 `json:"last_login,omitempty" example:"1640995200"`
	CreatedAt int64  `json:"created_at" example:"1640995200"`
}

// AccessDenied is the in-place denial panel payload rendered when a
// valid admin lacks the subrole a view requires. It is not a redirect;
// the client navigates away via the go-back path.
type AccessDenied struct {
	CurrentSubRole rbac.SubRole `json:"current_sub_role"`
	GoBackPath     string       `json:"go_back_path"`
}

// LoginRedirect points an unauthenticated caller at the login view.
type LoginRedirect struct {
	RedirectTo string `json:"redirect_to"`
}

// SectionResponse describes a guarded admin section view.
type SectionResponse struct {
	Path            string         `json:"path"`
	Title           string         `json:"title"`
	AllowedSubRoles []rbac.SubRole `json:"allowed_sub_roles,omitempty"`
}

// DashboardResponse bundles the resolved landing page configuration.
type DashboardResponse struct {
	Config dashboard.Config `json:"config"`
	Stats  dashboard.Stats  `json:"stats"`
}

// PaginatedResponse represents paginated response
type PaginatedResponse struct {
	Data       interface{}    `json:"data"`
	Pagination PaginationInfo `json:"pagination"`
}

// PaginationInfo represents pagination information
type PaginationInfo struct {
	CurrentPage  int   `json:"current_page" example:"1"`
	PageSize     int   `json:"page_size" example:"20"`
	TotalPages   int   `json:"total_pages" example:"5"`
	TotalRecords int64 `json:"total_records" example:"100"`
	HasNext      bool  `json:"has_next" example:"true"`
	HasPrevious  bool  `json:"has_previous" example:"false"`
}

// HealthCheckResponse represents health check response
type HealthCheckResponse struct {
	Status    string                 `json:"status" example:"healthy"`
	Timestamp int64                  `json:"timestamp" example:"1640995200"`
	Version   string                 `json:"version" example:"1.0.0"`
	Uptime    int64                  `json:"uptime" example:"86400"`
	Checks    map[string]HealthCheck `json:"checks"`
}

// HealthCheck represents individual health check
type HealthCheck struct {
	Status  string `json:"status" example:"healthy"`
	Message string `json:"message,omitempty"`
}

// SessionEventMessage is pushed over the session events websocket when
// the caller's session changes elsewhere.
type SessionEventMessage struct {
	Type      string `json:"type" example:"session_cleared"`
	Timestamp int64  `json:"timestamp" example:"1640995200"`
}
