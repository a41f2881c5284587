package repository

import (
	"context"
	"database/sql"
	"fmt"

	"floracrm/internal/domain"
	"floracrm/internal/errors"
)

type MySQLOrderItemRepository struct {
	db *sql.DB
}

func NewMySQLOrderItemRepository(db *sql.DB) *MySQLOrderItemRepository {
	return &MySQLOrderItemRepository{db: db}
}

func (r *MySQLOrderItemRepository) Insert(ctx context.Context, tx *sql.Tx, item domain.OrderItem) (uint, error) {
	query := `INSERT INTO order_items (order_id, product_id, quantity, price) VALUES (?, ?, ?, ?)`

	result, err := tx.ExecContext(ctx, query, item.OrderID, item.ProductID, item.Quantity, item.Price)
	if err != nil {
		return 0, fmt.Errorf("inserting order item: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}

func (r *MySQLOrderItemRepository) FindByOrder(ctx context.Context, orderID uint) ([]domain.OrderItem, error) {
	query := `SELECT id, order_id, product_id, quantity, price FROM order_items WHERE order_id = ? ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("querying order items: %w", err)
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Price); err != nil {
			return nil, fmt.Errorf("scanning order item row: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order item rows: %w", err)
	}

	return items, nil
}

func (r *MySQLOrderItemRepository) FindByIDAndOrder(ctx context.Context, tx *sql.Tx, itemID uint, orderID uint) (*domain.OrderItem, error) {
	query := `SELECT id, order_id, product_id, quantity, price FROM order_items WHERE id = ? AND order_id = ?`

	var item domain.OrderItem
	err := tx.QueryRowContext(ctx, query, itemID, orderID).Scan(
		&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Price,
	)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order item with id %d not found in order %d", itemID, orderID))
	}
	if err != nil {
		return nil, fmt.Errorf("querying order item: %w", err)
	}

	return &item, nil
}

func (r *MySQLOrderItemRepository) Delete(ctx context.Context, tx *sql.Tx, itemID uint) error {
	result, err := tx.ExecContext(ctx, `DELETE FROM order_items WHERE id = ?`, itemID)
	if err != nil {
		return fmt.Errorf("deleting order item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("order item with id %d not found", itemID))
	}

	return nil
}

func (r *MySQLOrderItemRepository) DeleteByOrder(ctx context.Context, tx *sql.Tx, orderID uint) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM order_items WHERE order_id = ?`, orderID); err != nil {
		return fmt.Errorf("deleting order items: %w", err)
	}
	return nil
}

// SumByOrder recomputes the derived total inside the mutating transaction so
// the stored total_price never drifts from the items.
func (r *MySQLOrderItemRepository) SumByOrder(ctx context.Context, tx *sql.Tx, orderID uint) (float64, error) {
	var total float64
	err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(price * quantity), 0) FROM order_items WHERE order_id = ?`, orderID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("summing order items: %w", err)
	}
	return total, nil
}
