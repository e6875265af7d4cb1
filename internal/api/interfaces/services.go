package interfaces

import (
	"icoffee-admin/internal/auth"
	"icoffee-admin/internal/database/repositories"
	"icoffee-admin/internal/session"
	"icoffee-admin/pkg/config"
	"icoffee-admin/pkg/logger"
)

// Services defines the interface for API services
type Services interface {
	GetLogger() *logger.Logger
	GetConfig() *config.Config
	SessionStore() *session.Store
	TokenManager() *auth.TokenManager
	UserRepository() *repositories.UserRepository
	AuditLogRepository() *repositories.AuditLogRepository
	StatsRepository() *repositories.StatsRepository
	IsHealthy() bool
}
