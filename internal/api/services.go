package api

import (
	"database/sql"

	"icoffee-admin/internal/auth"
	"icoffee-admin/internal/database/repositories"
	"icoffee-admin/internal/session"
	"icoffee-admin/pkg/config"
	"icoffee-admin/pkg/logger"
)

// Services contains all the dependencies for API handlers
type Services struct {
	DB     *sql.DB
	Logger *logger.Logger
	Config *config.Config

	sessionStore *session.Store
	tokenManager *auth.TokenManager

	// Repositories
	userRepository     *repositories.UserRepository
	auditLogRepository *repositories.AuditLogRepository
	statsRepository    *repositories.StatsRepository
}

// NewServices creates a new services container
func NewServices(db *sql.DB, log *logger.Logger, cfg *config.Config) *Services {
	tokenManager := auth.NewTokenManager(
		cfg.Security.JWTSecret,
		"icoffee-admin",
		cfg.Security.JWTExpiration,
		cfg.Security.RefreshExpiration,
	)

	services := &Services{
		DB:           db,
		Logger:       log,
		Config:       cfg,
		tokenManager: tokenManager,
		sessionStore: session.NewStore(tokenManager),
	}

	// Initialize repositories
	services.userRepository = repositories.NewUserRepository(db)
	services.auditLogRepository = repositories.NewAuditLogRepository(db)
	services.statsRepository = repositories.NewStatsRepository(db)

	return services
}

// Interface implementation methods
func (s *Services) GetLogger() *logger.Logger {
	return s.Logger
}

func (s *Services) GetConfig() *config.Config {
	return s.Config
}

func (s *Services) SessionStore() *session.Store {
	return s.sessionStore
}

func (s *Services) TokenManager() *auth.TokenManager {
	return s.tokenManager
}

func (s *Services) UserRepository() *repositories.UserRepository {
	return s.userRepository
}

func (s *Services) AuditLogRepository() *repositories.AuditLogRepository {
	return s.auditLogRepository
}

func (s *Services) StatsRepository() *repositories.StatsRepository {
	return s.statsRepository
}

// IsHealthy checks if all critical services are healthy
func (s *Services) IsHealthy() bool {
	if err := s.DB.Ping(); err != nil {
		s.Logger.Error("Database health check failed: %v", err)
		return false
	}
	return true
}
