package dashboard

import (
	"icoffee-admin/internal/rbac"
)

// Stats are the live counters fetched from the stats endpoint and
// passed into the resolver. The resolver itself performs no I/O.
type Stats struct {
	TotalProducts       int64 `json:"total_products"`
	TotalOrders         int64 `json:"total_orders"`
	TotalUsers          int64 `json:"total_users"`
	TotalStaff          int64 `json:"total_staff"`
	PendingOrders       int64 `json:"pending_orders"`
	LowStockItems       int64 `json:"low_stock_items"`
	OpenPurchaseOrders  int64 `json:"open_purchase_orders"`
	StockMovementsToday int64 `json:"stock_movements_today"`
	PublishedPosts      int64 `json:"published_posts"`
	DraftPosts          int64 `json:"draft_posts"`
	ActiveShipments     int64 `json:"active_shipments"`
	PriceListCount      int64 `json:"price_list_count"`
}

// StatDescriptor is one stat card on a landing page.
type StatDescriptor struct {
	Label string `json:"label"`
	Value int64  `json:"value"`
}

// ActionDescriptor is one quick-action shortcut on a landing page. The
// subrole list is a hint for the client; the target path enforces its
// own guard server-side.
type ActionDescriptor struct {
	Label           string         `json:"label"`
	Path            string         `json:"path"`
	AllowedSubRoles []rbac.SubRole `json:"allowed_sub_roles,omitempty"`
}

// Config is the declarative per-subrole landing page bundle.
type Config struct {
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	Stats        []StatDescriptor   `json:"stats"`
	QuickActions []ActionDescriptor `json:"quick_actions"`
}

// Resolve maps a subrole to its dashboard configuration. Total over
// every input: an unknown or missing subrole falls back to the IT
// configuration, which is the documented default rather than an error.
func Resolve(subRole rbac.SubRole, stats Stats) Config {
	switch subRole {
	case rbac.SubRoleDirector:
		return directorConfig(stats)
	case rbac.SubRoleSales:
		return salesConfig(stats)
	case rbac.SubRoleHR:
		return hrConfig(stats)
	case rbac.SubRoleManager:
		return managerConfig(stats)
	case rbac.SubRoleWarehouse:
		return warehouseConfig(stats)
	case rbac.SubRoleAccountant:
		return accountantConfig(stats)
	case rbac.SubRoleGraphics:
		return graphicsConfig(stats)
	case rbac.SubRoleEditor:
		return editorConfig(stats)
	case rbac.SubRoleLogistics:
		return logisticsConfig(stats)
	case rbac.SubRoleIT:
		return itConfig(stats)
	default:
		return itConfig(stats)
	}
}

func itConfig(stats Stats) Config {
	return Config{
		Title:       "IT Dashboard",
		Description: "Full system overview and administration",
		Stats: []StatDescriptor{
			{Label: "Total Products", Value: stats.TotalProducts},
			{Label: "Total Orders", Value: stats.TotalOrders},
			{Label: "Registered Users", Value: stats.TotalUsers},
			{Label: "Staff Accounts", Value: stats.TotalStaff},
		},
		QuickActions: []ActionDescriptor{
			{Label: "Manage Users", Path: "/admin/users", AllowedSubRoles: []rbac.SubRole{rbac.SubRoleIT, rbac.SubRoleDirector, rbac.SubRoleHR}},
			{Label: "Manage Categories", Path: "/admin/categories", AllowedSubRoles: []rbac.SubRole{rbac.SubRoleIT, rbac.SubRoleDirector, rbac.SubRoleEditor}},
			{Label: "Pricing Configuration", Path: "/admin/pricing-config", AllowedSubRoles: []rbac.SubRole{rbac.SubRoleIT, rbac.SubRoleDirector, rbac.SubRoleAccountant}},
			{Label: "System Settings", Path: "/admin/settings"},
		},
	}
}

func directorConfig(stats Stats) Config {
	return Config{
		Title:       "Director Dashboard",
		Description: "Company-wide performance at a glance",
		Stats: []StatDescriptor{
			{Label: "Total Orders", Value: stats.TotalOrders},
			{Label: "Pending Orders", Value: stats.PendingOrders},
			{Label: "Open Purchase Orders", Value: stats.OpenPurchaseOrders},
			{Label: "Registered Users", Value: stats.TotalUsers},
		},
		QuickActions: []ActionDescriptor{
			{Label: "Inventory Report", Path: "/admin/reports/inventory", AllowedSubRoles: []rbac.SubRole{rbac.SubRoleIT, rbac.SubRoleDirector, rbac.SubRoleWarehouse, rbac.SubRoleManager, rbac.SubRoleAccountant}},
			{Label: "Pricing Report", Path: "/admin/reports/pricing", AllowedSubRoles: []rbac.SubRole{rbac.SubRoleIT, rbac.SubRoleDirector, rbac.SubRoleAccountant, rbac.SubRoleManager}},
			{Label: "Manage Users", Path: "/admin/users", AllowedSubRoles: []rbac.SubRole{rbac.SubRoleIT, rbac.SubRoleDirector, rbac.SubRoleHR}},
			{Label: "Suppliers", Path: "/admin/suppliers", AllowedSubRoles: []rbac.SubRole{rbac.SubRoleDirector, rbac.SubRoleIT}},
		},
	}
}

func salesConfig(stats Stats) Config {
	return Config{
		Title:       "Sales Dashboard",
		Description: "Orders and customer activity",
		Stats: []StatDescriptor{
			{Label: "Total Orders", Value: stats.TotalOrders},
			{Label: "Pending Orders", Value: stats.PendingOrders},
			{Label: "Registered Users", Value: stats.TotalUsers},
			{Label: "Total Products", Value: stats.TotalProducts},
		},
		QuickActions: []ActionDescriptor{
			{Label: "Dashboard", Path: "/admin/dashboard"},
			{Label: "Price Lists", Path: "/admin/pricing-lists", AllowedSubRoles: []rbac.SubRole{rbac.SubRoleIT, rbac.SubRoleDirector, rbac.SubRoleAccountant, rbac.SubRoleManager}},
			{Label: "Order Tracking", Path: "/admin/tracking", AllowedSubRoles: []rbac.SubRole{rbac.SubRoleIT, rbac.SubRoleDirector, rbac.SubRoleLogistics}},
			{Label: "Settings", Path: "/admin/settings"},
		},
	}
}

func hrConfig(stats Stats) Config {
	return Config{
		Title:       "HR Dashboard",
		Description: "Staff administration and onboarding",
		Stats: []StatDescriptor{
			{Label: "Staff Accounts", Value: stats.TotalStaff},
			{Label: "Registered Users", Value: stats.TotalUsers},
			{Label: "Total Orders", Value: stats.TotalOrders},
			{Label: "Total Products", Value: stats.TotalProducts},
		},
		QuickActions: []ActionDescriptor{
			{Label: "Manage Users", Path: "/admin/users", AllowedSubRoles: []rbac.SubRole{rbac.SubRoleIT, rbac.SubRoleDirector, rbac.SubRoleHR}},
			{Label: "Create Staff Account", Path: "/admin/users", AllowedSubRoles: []rbac.SubRole{rbac.SubRoleIT, rbac.SubRoleDirector, rbac.SubRoleHR}},
			{Label: "Dashboard", Path: "/admin/dashboard"},
			{Label: "Settings", Path: "/admin/settings"},
		},
	}
}

func managerConfig(stats Stats) Config {
	return Config{
		Title:       "Manager Dashboard",
		Description: "Stock, purchasing, and pricing oversight",
		Stats: []StatDescriptor{
			{Label: "Open Purchase Orders", Value: stats.OpenPurchaseOrders},
			{Label: "Low Stock Items", Value: stats.LowStockItems},
			{Label: "Stock Movements Today", Value: stats.StockMovementsToday},
			{Label: "Price Lists", Value: stats.PriceListCount},
		},
		QuickActions: []ActionDescriptor{
			{Label: "Purchase Orders", Path: "/admin/purchase-orders", AllowedSubRoles: []rbac.SubRole{rbac.SubRoleIT, rbac.SubRoleDirector, rbac.SubRoleManager, rbac.SubRoleWarehouse}},
			{Label: "Stock Levels", Path: "/admin/stock", AllowedSubRoles: []rbac.SubRole{rbac.SubRoleIT, rbac.SubRoleDirector, rbac.SubRoleWarehouse, rbac.SubRoleManager}},
			{Label: "Pricing", Path: "/admin/pricing", AllowedSubRoles: []rbac.SubRole{rbac.SubRoleIT, rbac.SubRoleDirector, rbac.SubRoleAccountant, rbac.SubRoleManager}},
			{Label: "Inventory Report", Path: "/admin/reports/inventory", AllowedSubRoles: []rbac.SubRole{rbac.SubRoleIT, rbac.SubRoleDirector, rbac.SubRoleWarehouse, rbac.SubRoleManager, rbac.SubRoleAccountant}},
		},
	}
}

func warehouseConfig(stats Stats) Config {
	return Config{
		Title:       "Warehouse Dashboard",
		Description: "Stock levels and movements",
		Stats: []StatDescriptor{
			{Label: "Low Stock Items", Value: stats.LowStockItems},
			{Label: "Stock Movements Today", Value: stats.StockMovementsToday},
			{Label: "Open Purchase Orders", Value: stats.OpenPurchaseOrders},
			{Label: "Total Products", Value: stats.TotalProducts},
		},
		QuickActions: []ActionDescriptor{
			{Label: "Stock Levels", Path: "/admin/stock", AllowedSubRoles: []rbac.SubRole{rbac.SubRoleIT, rbac.SubRoleDirector, rbac.SubRoleWarehouse, rbac.SubRoleManager}},
			{Label: "Stock Movements", Path: "/admin/stock-movements", AllowedSubRoles: []rbac.SubRole{rbac.SubRoleIT, rbac.SubRoleDirector, rbac.SubRoleWarehouse, rbac.SubRoleManager}},
			{Label: "Warehouse", Path: "/admin/warehouse", AllowedSubRoles: []rbac.SubRole{rbac.SubRoleIT, rbac.SubRoleDirector, rbac.SubRoleWarehouse, rbac.SubRoleManager}},
			{Label: "Purchase Orders", Path: "/admin/purchase-orders", AllowedSubRoles: []rbac.SubRole{rbac.SubRoleIT, rbac.SubRoleDirector, rbac.SubRoleManager, rbac.SubRoleWarehouse}},
		},
	}
}

func accountantConfig(stats Stats) Config {
	return Config{
		Title:       "Accountant Dashboard",
		Description: "Pricing, exchange rates, and financial reports",
		Stats: []StatDescriptor{
			{Label: "Price Lists", Value: stats.PriceListCount},
			{Label: "Total Orders", Value: stats.TotalOrders},
			{Label: "Open Purchase Orders", Value: stats.OpenPurchaseOrders},
			{Label: "Pending Orders", Value: stats.PendingOrders},
		},
		QuickActions: []ActionDescriptor{
			{Label: "Pricing Configuration", Path: "/admin/pricing-config", AllowedSubRoles: []rbac.SubRole{rbac.SubRoleIT, rbac.SubRoleDirector, rbac.SubRoleAccountant}},
			{Label: "Price Calculation", Path: "/admin/price-calculation", AllowedSubRoles: []rbac.SubRole{rbac.SubRoleIT, rbac.SubRoleDirector, rbac.SubRoleAccountant}},
			{Label: "Exchange Rates", Path: "/admin/exchange-rates", AllowedSubRoles: []rbac.SubRole{rbac.SubRoleIT, rbac.SubRoleDirector, rbac.SubRoleAccountant}},
			{Label: "Pricing Report", Path: "/admin/reports/pricing", AllowedSubRoles: []rbac.SubRole{rbac.SubRoleIT, rbac.SubRoleDirector, rbac.SubRoleAccountant, rbac.SubRoleManager}},
		},
	}
}

func graphicsConfig(stats Stats) Config {
	return Config{
		Title:       "Graphics Dashboard",
		Description: "Product imagery and creative assets",
		Stats: []StatDescriptor{
			{Label: "Total Products", Value: stats.TotalProducts},
			{Label: "Published Posts", Value: stats.PublishedPosts},
			{Label: "Draft Posts", Value: stats.DraftPosts},
			{Label: "Total Orders", Value: stats.TotalOrders},
		},
		QuickActions: []ActionDescriptor{
			{Label: "Dashboard", Path: "/admin/dashboard"},
			{Label: "Categories", Path: "/admin/categories", AllowedSubRoles: []rbac.SubRole{rbac.SubRoleIT, rbac.SubRoleDirector, rbac.SubRoleEditor}},
			{Label: "Brands", Path: "/admin/brands", AllowedSubRoles: []rbac.SubRole{rbac.SubRoleIT, rbac.SubRoleDirector, rbac.SubRoleEditor}},
			{Label: "Settings", Path: "/admin/settings"},
		},
	}
}

func editorConfig(stats Stats) Config {
	return Config{
		Title:       "Editor Dashboard",
		Description: "Catalog content and blog publishing",
		Stats: []StatDescriptor{
			{Label: "Published Posts", Value: stats.PublishedPosts},
			{Label: "Draft Posts", Value: stats.DraftPosts},
			{Label: "Total Products", Value: stats.TotalProducts},
			{Label: "Total Orders", Value: stats.TotalOrders},
		},
		QuickActions: []ActionDescriptor{
			{Label: "Blog", Path: "/admin/blog", AllowedSubRoles: []rbac.SubRole{rbac.SubRoleEditor, rbac.SubRoleIT, rbac.SubRoleDirector}},
			{Label: "Categories", Path: "/admin/categories", AllowedSubRoles: []rbac.SubRole{rbac.SubRoleIT, rbac.SubRoleDirector, rbac.SubRoleEditor}},
			{Label: "Tags", Path: "/admin/tags", AllowedSubRoles: []rbac.SubRole{rbac.SubRoleIT, rbac.SubRoleDirector, rbac.SubRoleEditor}},
			{Label: "Coffee Roasted Areas", Path: "/admin/coffee-roasted-areas", AllowedSubRoles: []rbac.SubRole{rbac.SubRoleIT, rbac.SubRoleDirector, rbac.SubRoleEditor}},
		},
	}
}

func logisticsConfig(stats Stats) Config {
	return Config{
		Title:       "Logistics Dashboard",
		Description: "Shipments and delivery tracking",
		Stats: []StatDescriptor{
			{Label: "Active Shipments", Value: stats.ActiveShipments},
			{Label: "Pending Orders", Value: stats.PendingOrders},
			{Label: "Total Orders", Value: stats.TotalOrders},
			{Label: "Stock Movements Today", Value: stats.StockMovementsToday},
		},
		QuickActions: []ActionDescriptor{
			{Label: "Logistics", Path: "/admin/logistics", AllowedSubRoles: []rbac.SubRole{rbac.SubRoleIT, rbac.SubRoleDirector, rbac.SubRoleLogistics}},
			{Label: "Tracking", Path: "/admin/tracking", AllowedSubRoles: []rbac.SubRole{rbac.SubRoleIT, rbac.SubRoleDirector, rbac.SubRoleLogistics}},
			{Label: "Dashboard", Path: "/admin/dashboard"},
			{Label: "Settings", Path: "/admin/settings"},
		},
	}
}
