package repositories

import (
	"database/sql"

	"icoffee-admin/internal/dashboard"
)

// Low-stock threshold used by the stats counters.
const lowStockThreshold = 10

type StatsRepository struct {
	db *sql.DB
}

func NewStatsRepository(db *sql.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// GetStats collects the live counters the dashboard resolver consumes.
func (r *StatsRepository) GetStats() (dashboard.Stats, error) {
	var stats dashboard.Stats

	counters := []struct {
		query string
		dest  *int64
	}{
		{`SELECT COUNT(*) FROM products`, &stats.TotalProducts},
		{`SELECT COUNT(*) FROM orders`, &stats.TotalOrders},
		{`SELECT COUNT(*) FROM users WHERE role = 'USER'`, &stats.TotalUsers},
		{`SELECT COUNT(*) FROM users WHERE role = 'ADMIN' AND is_active = true`, &stats.TotalStaff},
		{`SELECT COUNT(*) FROM orders WHERE status = 'pending'`, &stats.PendingOrders},
		{`SELECT COUNT(*) FROM products WHERE stock_level < ?`, &stats.LowStockItems},
		{`SELECT COUNT(*) FROM orders WHERE status = 'paid'`, &stats.OpenPurchaseOrders},
		{`SELECT COUNT(*) FROM stock_movements WHERE created_at >= date('now')`, &stats.StockMovementsToday},
		{`SELECT COUNT(*) FROM blog_posts WHERE published = true`, &stats.PublishedPosts},
		{`SELECT COUNT(*) FROM blog_posts WHERE published = false`, &stats.DraftPosts},
		{`SELECT COUNT(*) FROM orders WHERE status = 'shipped'`, &stats.ActiveShipments},
		{`SELECT COUNT(*) FROM price_lists`, &stats.PriceListCount},
	}

	for _, counter := range counters {
		var err error
		if counter.dest == &stats.LowStockItems {
			err = r.db.QueryRow(counter.query, lowStockThreshold).Scan(counter.dest)
		} else {
			err = r.db.QueryRow(counter.query).Scan(counter.dest)
		}
		if err != nil {
			return dashboard.Stats{}, err
		}
	}

	return stats, nil
}
