package repository

import (
	"context"
	"database/sql"
	"fmt"

	"floracrm/internal/domain"
	"floracrm/internal/errors"
)

type ClientFilter struct {
	Search     string
	ClientType string
	Skip       int
	Limit      int
}

type MySQLClientRepository struct {
	db *sql.DB
}

func NewMySQLClientRepository(db *sql.DB) *MySQLClientRepository {
	return &MySQLClientRepository{db: db}
}

const clientColumns = `id, name, phone, email, address, client_type, notes, created_at`

func scanClient(row interface{ Scan(...interface{}) error }) (*domain.Client, error) {
	var c domain.Client
	err := row.Scan(
		&c.ID, &c.Name, &c.Phone, &c.Email, &c.Address,
		&c.ClientType, &c.Notes, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *MySQLClientRepository) FindByID(ctx context.Context, id uint) (*domain.Client, error) {
	query := fmt.Sprintf(`SELECT %s FROM clients WHERE id = ?`, clientColumns)

	c, err := scanClient(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("client with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying client by id: %w", err)
	}

	return c, nil
}

func (r *MySQLClientRepository) FindByPhone(ctx context.Context, phone string) (*domain.Client, error) {
	query := fmt.Sprintf(`SELECT %s FROM clients WHERE phone = ?`, clientColumns)

	c, err := scanClient(r.db.QueryRowContext(ctx, query, phone))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("client with phone %s not found", phone))
	}
	if err != nil {
		return nil, fmt.Errorf("querying client by phone: %w", err)
	}

	return c, nil
}

func (r *MySQLClientRepository) List(ctx context.Context, filter ClientFilter) ([]domain.Client, error) {
	query := fmt.Sprintf(`SELECT %s FROM clients WHERE 1=1`, clientColumns)
	var args []interface{}

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query += ` AND (name LIKE ? OR phone LIKE ? OR email LIKE ?)`
		args = append(args, pattern, pattern, pattern)
	}

	if filter.ClientType != "" {
		query += ` AND client_type = ?`
		args = append(args, filter.ClientType)
	}

	query += ` ORDER BY id LIMIT ? OFFSET ?`
	args = append(args, filter.Limit, filter.Skip)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying clients: %w", err)
	}
	defer rows.Close()

	var clients []domain.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning client row: %w", err)
		}
		clients = append(clients, *c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating client rows: %w", err)
	}

	return clients, nil
}

func (r *MySQLClientRepository) Insert(ctx context.Context, c domain.Client) (uint, error) {
	query := `INSERT INTO clients (name, phone, email, address, client_type, notes) VALUES (?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, c.Name, c.Phone, c.Email, c.Address, c.ClientType, c.Notes)
	if err != nil {
		return 0, fmt.Errorf("inserting client: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}

func (r *MySQLClientRepository) Update(ctx context.Context, c domain.Client) error {
	query := `
		UPDATE clients
		SET name = ?, phone = ?, email = ?, address = ?, client_type = ?, notes = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query, c.Name, c.Phone, c.Email, c.Address, c.ClientType, c.Notes, c.ID)
	if err != nil {
		return fmt.Errorf("updating client: %w", err)
	}

	if _, err := result.RowsAffected(); err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	return nil
}

func (r *MySQLClientRepository) Delete(ctx context.Context, id uint) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting client: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("client with id %d not found", id))
	}

	return nil
}
