package repository

import (
	"context"
	"database/sql"
	"fmt"

	"floracrm/internal/domain"
)

type MySQLOrderHistoryRepository struct {
	db *sql.DB
}

func NewMySQLOrderHistoryRepository(db *sql.DB) *MySQLOrderHistoryRepository {
	return &MySQLOrderHistoryRepository{db: db}
}

func (r *MySQLOrderHistoryRepository) Insert(ctx context.Context, tx *sql.Tx, h domain.OrderHistory) (uint, error) {
	query := `INSERT INTO order_history (order_id, action, old_status, new_status, comment) VALUES (?, ?, ?, ?, ?)`

	result, err := tx.ExecContext(ctx, query, h.OrderID, h.Action, h.OldStatus, h.NewStatus, h.Comment)
	if err != nil {
		return 0, fmt.Errorf("inserting order history: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}

// FindByOrder returns history entries oldest first; callers wanting
// newest-first reverse explicitly.
func (r *MySQLOrderHistoryRepository) FindByOrder(ctx context.Context, orderID uint) ([]domain.OrderHistory, error) {
	query := `
		SELECT id, order_id, action, old_status, new_status, comment, created_at
		FROM order_history
		WHERE order_id = ?
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("querying order history: %w", err)
	}
	defer rows.Close()

	var entries []domain.OrderHistory
	for rows.Next() {
		var h domain.OrderHistory
		err := rows.Scan(&h.ID, &h.OrderID, &h.Action, &h.OldStatus, &h.NewStatus, &h.Comment, &h.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning order history row: %w", err)
		}
		entries = append(entries, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order history rows: %w", err)
	}

	return entries, nil
}

func (r *MySQLOrderHistoryRepository) DeleteByOrder(ctx context.Context, tx *sql.Tx, orderID uint) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM order_history WHERE order_id = ?`, orderID); err != nil {
		return fmt.Errorf("deleting order history: %w", err)
	}
	return nil
}
