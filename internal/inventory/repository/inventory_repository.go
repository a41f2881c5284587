package repository

import (
	"context"
	"database/sql"
	"fmt"

	"floracrm/internal/domain"
	"floracrm/internal/errors"
)

type InventoryFilter struct {
	LowStock bool
	Search   string
	Skip     int
	Limit    int
}

type MySQLInventoryRepository struct {
	db *sql.DB
}

func NewMySQLInventoryRepository(db *sql.DB) *MySQLInventoryRepository {
	return &MySQLInventoryRepository{db: db}
}

const inventoryColumns = `id, name, quantity, unit, min_quantity, price_per_unit, created_at`

func scanInventory(row interface{ Scan(...interface{}) error }) (*domain.Inventory, error) {
	var item domain.Inventory
	err := row.Scan(
		&item.ID, &item.Name, &item.Quantity, &item.Unit,
		&item.MinQuantity, &item.PricePerUnit, &item.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *MySQLInventoryRepository) FindByID(ctx context.Context, id uint) (*domain.Inventory, error) {
	query := fmt.Sprintf(`SELECT %s FROM inventory WHERE id = ?`, inventoryColumns)

	item, err := scanInventory(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("inventory item with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying inventory item by id: %w", err)
	}

	return item, nil
}

func (r *MySQLInventoryRepository) List(ctx context.Context, filter InventoryFilter) ([]domain.Inventory, error) {
	query := fmt.Sprintf(`SELECT %s FROM inventory WHERE 1=1`, inventoryColumns)
	var args []interface{}

	if filter.LowStock {
		query += ` AND min_quantity IS NOT NULL AND quantity <= min_quantity`
	}

	if filter.Search != "" {
		query += ` AND name LIKE ?`
		args = append(args, "%"+filter.Search+"%")
	}

	query += ` ORDER BY id LIMIT ? OFFSET ?`
	args = append(args, filter.Limit, filter.Skip)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying inventory: %w", err)
	}
	defer rows.Close()

	var items []domain.Inventory
	for rows.Next() {
		item, err := scanInventory(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning inventory row: %w", err)
		}
		items = append(items, *item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating inventory rows: %w", err)
	}

	return items, nil
}

func (r *MySQLInventoryRepository) Insert(ctx context.Context, item domain.Inventory) (uint, error) {
	query := `INSERT INTO inventory (name, quantity, unit, min_quantity, price_per_unit) VALUES (?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		item.Name, item.Quantity, item.Unit, item.MinQuantity, item.PricePerUnit,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting inventory item: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}

func (r *MySQLInventoryRepository) Update(ctx context.Context, item domain.Inventory) error {
	query := `
		UPDATE inventory
		SET name = ?, quantity = ?, unit = ?, min_quantity = ?, price_per_unit = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		item.Name, item.Quantity, item.Unit, item.MinQuantity, item.PricePerUnit, item.ID,
	)
	if err != nil {
		return fmt.Errorf("updating inventory item: %w", err)
	}

	if _, err := result.RowsAffected(); err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	return nil
}

func (r *MySQLInventoryRepository) Delete(ctx context.Context, id uint) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM inventory WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting inventory item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("inventory item with id %d not found", id))
	}

	return nil
}
