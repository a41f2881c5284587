package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"floracrm/internal/domain"
	"floracrm/internal/errors"
)

type OrderFilter struct {
	Status   string
	ClientID *uint
	DateFrom *time.Time
	DateTo   *time.Time
	Skip     int
	Limit    int
}

type MySQLOrderRepository struct {
	db *sql.DB
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

const orderColumns = `id, client_id, recipient_id, executor_id, status, delivery_date,
	delivery_address, delivery_time_range, total_price, comment, created_at`

func scanOrder(row interface{ Scan(...interface{}) error }) (*domain.Order, error) {
	var o domain.Order
	err := row.Scan(
		&o.ID, &o.ClientID, &o.RecipientID, &o.ExecutorID, &o.Status,
		&o.DeliveryDate, &o.DeliveryAddress, &o.DeliveryTimeRange,
		&o.TotalPrice, &o.Comment, &o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *MySQLOrderRepository) FindByID(ctx context.Context, id uint) (*domain.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE id = ?`, orderColumns)

	o, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying order by id: %w", err)
	}

	return o, nil
}

func (r *MySQLOrderRepository) List(ctx context.Context, filter OrderFilter) ([]domain.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE 1=1`, orderColumns)
	var args []interface{}

	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, filter.Status)
	}

	if filter.ClientID != nil {
		query += ` AND (client_id = ? OR recipient_id = ?)`
		args = append(args, *filter.ClientID, *filter.ClientID)
	}

	if filter.DateFrom != nil {
		query += ` AND delivery_date >= ?`
		args = append(args, *filter.DateFrom)
	}

	if filter.DateTo != nil {
		query += ` AND delivery_date <= ?`
		args = append(args, *filter.DateTo)
	}

	query += ` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
	args = append(args, filter.Limit, filter.Skip)

	return r.queryOrders(ctx, query, args...)
}

func (r *MySQLOrderRepository) FindByClient(ctx context.Context, clientID uint) ([]domain.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE client_id = ? ORDER BY created_at DESC, id DESC`, orderColumns)
	return r.queryOrders(ctx, query, clientID)
}

func (r *MySQLOrderRepository) FindByRecipient(ctx context.Context, clientID uint) ([]domain.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE recipient_id = ? ORDER BY created_at DESC, id DESC`, orderColumns)
	return r.queryOrders(ctx, query, clientID)
}

func (r *MySQLOrderRepository) CountByClient(ctx context.Context, clientID uint) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM orders WHERE client_id = ? OR recipient_id = ?`,
		clientID, clientID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting orders by client: %w", err)
	}
	return count, nil
}

func (r *MySQLOrderRepository) queryOrders(ctx context.Context, query string, args ...interface{}) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning order row: %w", err)
		}
		orders = append(orders, *o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order rows: %w", err)
	}

	return orders, nil
}

func (r *MySQLOrderRepository) Insert(ctx context.Context, tx *sql.Tx, o domain.Order) (uint, error) {
	query := `
		INSERT INTO orders (client_id, recipient_id, executor_id, status, delivery_date,
			delivery_address, delivery_time_range, total_price, comment)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := tx.ExecContext(ctx, query,
		o.ClientID, o.RecipientID, o.ExecutorID, o.Status, o.DeliveryDate,
		o.DeliveryAddress, o.DeliveryTimeRange, o.TotalPrice, o.Comment,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting order: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}

func (r *MySQLOrderRepository) Update(ctx context.Context, tx *sql.Tx, o domain.Order) error {
	query := `
		UPDATE orders
		SET client_id = ?, recipient_id = ?, executor_id = ?, status = ?, delivery_date = ?,
			delivery_address = ?, delivery_time_range = ?, comment = ?
		WHERE id = ?
	`

	result, err := tx.ExecContext(ctx, query,
		o.ClientID, o.RecipientID, o.ExecutorID, o.Status, o.DeliveryDate,
		o.DeliveryAddress, o.DeliveryTimeRange, o.Comment, o.ID,
	)
	if err != nil {
		return fmt.Errorf("updating order: %w", err)
	}

	if _, err := result.RowsAffected(); err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	return nil
}

func (r *MySQLOrderRepository) UpdateStatus(ctx context.Context, tx *sql.Tx, id uint, status domain.OrderStatus) error {
	result, err := tx.ExecContext(ctx, `UPDATE orders SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("updating order status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}

	return nil
}

func (r *MySQLOrderRepository) UpdateTotalPrice(ctx context.Context, tx *sql.Tx, id uint, totalPrice float64) error {
	result, err := tx.ExecContext(ctx, `UPDATE orders SET total_price = ? WHERE id = ?`, totalPrice, id)
	if err != nil {
		return fmt.Errorf("updating order total price: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}

	return nil
}

func (r *MySQLOrderRepository) Delete(ctx context.Context, tx *sql.Tx, id uint) error {
	result, err := tx.ExecContext(ctx, `DELETE FROM orders WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting order: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}

	return nil
}
