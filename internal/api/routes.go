package api

import (
	"icoffee-admin/internal/api/handlers"
	"icoffee-admin/internal/api/interfaces"
	"icoffee-admin/internal/api/middlewares"
	"icoffee-admin/internal/rbac"

	"github.com/gin-gonic/gin"
)

// RouteSpec declares one guarded admin section: a path, a display
// title, and the subroles admitted. A nil subrole list admits any
// authenticated admin.
type RouteSpec struct {
	Path            string
	Title           string
	AllowedSubRoles []rbac.SubRole
}

// SectionRoutes is the static path to permitted-subroles table. Guards
// compose from this declaration alone; there is no computed routing
// logic anywhere else.
var SectionRoutes = []RouteSpec{
	// Catalog taxonomy
	{"/admin/categories", "Categories", []rbac.SubRole{rbac.SubRoleIT, rbac.SubRoleDirector, rbac.SubRoleEditor}},
	{"/admin/brands", "Brands", []rbac.SubRole{rbac.SubRoleIT, rbac.SubRoleDirector, rbac.SubRoleEditor}},
	{"/admin/colors", "Colors", []rbac.SubRole{rbac.SubRoleIT, rbac.SubRoleDirector, rbac.SubRoleEditor}},
	{"/admin/sub-categories", "Sub Categories", []rbac.SubRole{rbac.SubRoleIT, rbac.SubRoleDirector, rbac.SubRoleEditor}},
	{"/admin/tags", "Tags", []rbac.SubRole{rbac.SubRoleIT, rbac.SubRoleDirector, rbac.SubRoleEditor}},
	{"/admin/attributes", "Attributes", []rbac.SubRole{rbac.SubRoleIT, rbac.SubRoleDirector, rbac.SubRoleEditor}},
	{"/admin/coffee-roasted-areas", "Coffee Roasted Areas", []rbac.SubRole{rbac.SubRoleIT, rbac.SubRoleDirector, rbac.SubRoleEditor}},

	// Logistics
	{"/admin/logistics", "Logistics", []rbac.SubRole{rbac.SubRoleIT, rbac.SubRoleDirector, rbac.SubRoleLogistics}},
	{"/admin/tracking", "Tracking", []rbac.SubRole{rbac.SubRoleIT, rbac.SubRoleDirector, rbac.SubRoleLogistics}},

	// Procurement
	{"/admin/suppliers", "Suppliers", []rbac.SubRole{rbac.SubRoleDirector, rbac.SubRoleIT}},
	{"/admin/purchase-orders", "Purchase Orders", []rbac.SubRole{rbac.SubRoleIT, rbac.SubRoleDirector, rbac.SubRoleManager, rbac.SubRoleWarehouse}},

	// Warehouse
	{"/admin/stock", "Stock", []rbac.SubRole{rbac.SubRoleIT, rbac.SubRoleDirector, rbac.SubRoleWarehouse, rbac.SubRoleManager}},
	{"/admin/stock-movements", "Stock Movements", []rbac.SubRole{rbac.SubRoleIT, rbac.SubRoleDirector, rbac.SubRoleWarehouse, rbac.SubRoleManager}},
	{"/admin/warehouse", "Warehouse", []rbac.SubRole{rbac.SubRoleIT, rbac.SubRoleDirector, rbac.SubRoleWarehouse, rbac.SubRoleManager}},

	// Pricing
	{"/admin/pricing", "Pricing", []rbac.SubRole{rbac.SubRoleIT, rbac.SubRoleDirector, rbac.SubRoleAccountant, rbac.SubRoleManager}},
	{"/admin/pricing-lists", "Pricing Lists", []rbac.SubRole{rbac.SubRoleIT, rbac.SubRoleDirector, rbac.SubRoleAccountant, rbac.SubRoleManager}},
	{"/admin/pricing-config", "Pricing Configuration", []rbac.SubRole{rbac.SubRoleIT, rbac.SubRoleDirector, rbac.SubRoleAccountant}},
	{"/admin/price-calculation", "Price Calculation", []rbac.SubRole{rbac.SubRoleIT, rbac.SubRoleDirector, rbac.SubRoleAccountant}},
	{"/admin/price-utilities", "Price Utilities", []rbac.SubRole{rbac.SubRoleIT, rbac.SubRoleDirector, rbac.SubRoleAccountant}},
	{"/admin/exchange-rates", "Exchange Rates", []rbac.SubRole{rbac.SubRoleIT, rbac.SubRoleDirector, rbac.SubRoleAccountant}},

	// Content. The catch-all covers every blog subpath; the bare
	// /admin/blog path reaches it through the trailing-slash redirect.
	{"/admin/blog/*rest", "Blog", []rbac.SubRole{rbac.SubRoleEditor, rbac.SubRoleIT, rbac.SubRoleDirector}},

	// Reports
	{"/admin/reports/inventory", "Inventory Reports", []rbac.SubRole{rbac.SubRoleIT, rbac.SubRoleDirector, rbac.SubRoleWarehouse, rbac.SubRoleManager, rbac.SubRoleAccountant}},
	{"/admin/reports/purchase", "Purchase Reports", []rbac.SubRole{rbac.SubRoleIT, rbac.SubRoleDirector, rbac.SubRoleWarehouse, rbac.SubRoleManager, rbac.SubRoleAccountant}},
	{"/admin/reports/pricing", "Pricing Reports", []rbac.SubRole{rbac.SubRoleIT, rbac.SubRoleDirector, rbac.SubRoleAccountant, rbac.SubRoleManager}},

	// Any admin
	{"/admin/settings", "Settings", nil},
}

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, services interfaces.Services) {
	cfg := services.GetConfig()

	// Global middleware
	router.Use(middlewares.Recovery())
	router.Use(middlewares.CORS(cfg.API.CORS.AllowedOrigins))
	router.Use(middlewares.Security())
	router.Use(services.GetLogger().GinLogger())
	router.Use(middlewares.RateLimit(cfg.API.RateLimit, cfg.API.BurstLimit))

	// Public routes
	router.GET("/", handlers.Root(services))
	router.GET("/health", handlers.HealthCheck(services))
	router.GET("/ping", handlers.Ping())
	router.POST("/login", handlers.Login(services))
	router.POST("/refresh", handlers.RefreshToken(services))

	// Authenticated, any admin
	router.POST("/logout", middlewares.GuardRequired(services), handlers.Logout(services))
	router.GET("/admin/dashboard", middlewares.GuardRequired(services), handlers.AdminDashboard(services))
	router.GET("/admin/stats", middlewares.GuardRequired(services), handlers.GetStats(services))
	router.GET("/ws/session", handlers.SessionEvents(services))

	// User management: listing the section is guarded by subrole, the
	// finer-grained create/reset/delete rules are the capability
	// predicates inside the handlers.
	usersGuard := middlewares.GuardRequired(services, rbac.SubRoleIT, rbac.SubRoleDirector, rbac.SubRoleHR)
	users := router.Group("/admin/users", usersGuard)
	{
		users.GET("", handlers.ListUsers(services))
		users.POST("", handlers.CreateUser(services))
		users.PUT("/:id", handlers.UpdateUser(services))
		users.DELETE("/:id", handlers.DeleteUser(services))
		users.POST("/:id/reset-password", handlers.ResetPassword(services))
		users.POST("/:id/recovery-code", handlers.GenerateRecoveryCode(services))
	}

	// Audit trail is restricted to the two all-access departments
	router.GET("/admin/audit-logs",
		middlewares.GuardRequired(services, rbac.SubRoleIT, rbac.SubRoleDirector),
		handlers.GetAuditLogs(services))

	// Guarded admin sections from the static table
	for _, spec := range SectionRoutes {
		router.GET(spec.Path,
			middlewares.GuardRequired(services, spec.AllowedSubRoles...),
			handlers.Section(services, spec.Path, spec.Title, spec.AllowedSubRoles))
	}

	// 404 handler
	router.NoRoute(handlers.NotFound())
}
