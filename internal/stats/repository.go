package stats

import (
	"context"
	"database/sql"
	"time"

	"floracrm/internal/domain"
)

type Dashboard struct {
	TotalOrders    int            `json:"total_orders"`
	OrdersToday    int            `json:"orders_today"`
	TotalClients   int            `json:"total_clients"`
	TotalProducts  int            `json:"total_products"`
	OrdersByStatus map[string]int `json:"orders_by_status"`
	LowStockItems  int            `json:"low_stock_items"`
}

type SalesPoint struct {
	Date    string  `json:"date"`
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}

type MySQLStatsRepository struct {
	db *sql.DB
}

func NewMySQLStatsRepository(db *sql.DB) *MySQLStatsRepository {
	return &MySQLStatsRepository{db: db}
}

func (r *MySQLStatsRepository) Dashboard(ctx context.Context) (*Dashboard, error) {
	d := &Dashboard{OrdersByStatus: map[string]int{}}

	counts := []struct {
		query string
		dest  *int
	}{
		{"SELECT COUNT(*) FROM orders", &d.TotalOrders},
		{"SELECT COUNT(*) FROM orders WHERE DATE(created_at) = CURDATE()", &d.OrdersToday},
		{"SELECT COUNT(*) FROM clients", &d.TotalClients},
		{"SELECT COUNT(*) FROM products", &d.TotalProducts},
		{"SELECT COUNT(*) FROM inventory WHERE min_quantity IS NOT NULL AND quantity <= min_quantity", &d.LowStockItems},
	}
	for _, c := range counts {
		if err := r.db.QueryRowContext(ctx, c.query).Scan(c.dest); err != nil {
			return nil, err
		}
	}

	rows, err := r.db.QueryContext(ctx, "SELECT status, COUNT(*) FROM orders GROUP BY status")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		d.OrdersByStatus[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Every known status shows up in the map, zero included.
	for _, s := range domain.AllStatuses() {
		if _, ok := d.OrdersByStatus[string(s)]; !ok {
			d.OrdersByStatus[string(s)] = 0
		}
	}

	return d, nil
}

// Sales aggregates non-canceled orders by delivery date, oldest first.
func (r *MySQLStatsRepository) Sales(ctx context.Context, from *time.Time, to *time.Time) ([]SalesPoint, error) {
	query := `SELECT DATE_FORMAT(delivery_date, '%Y-%m-%d'), COUNT(*), COALESCE(SUM(total_price), 0)
		FROM orders
		WHERE status != ?`
	args := []interface{}{string(domain.StatusCanceled)}

	if from != nil {
		query += " AND delivery_date >= ?"
		args = append(args, *from)
	}
	if to != nil {
		query += " AND delivery_date < ?"
		args = append(args, to.AddDate(0, 0, 1))
	}

	query += " GROUP BY DATE_FORMAT(delivery_date, '%Y-%m-%d') ORDER BY DATE_FORMAT(delivery_date, '%Y-%m-%d') ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	points := []SalesPoint{}
	for rows.Next() {
		var p SalesPoint
		if err := rows.Scan(&p.Date, &p.Orders, &p.Revenue); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, rows.Err()
}
