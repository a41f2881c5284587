package repository

import (
	"context"
	"database/sql"
	"fmt"

	"floracrm/internal/domain"
	"floracrm/internal/errors"
)

// MySQLUserRepository resolves executors referenced by orders.
type MySQLUserRepository struct {
	db *sql.DB
}

func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{db: db}
}

func (r *MySQLUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	query := `SELECT id, username, email, city, position, address, phone, created_at FROM users WHERE id = ?`

	var u domain.User
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&u.ID, &u.Username, &u.Email, &u.City, &u.Position, &u.Address, &u.Phone, &u.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("user with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying user by id: %w", err)
	}

	return &u, nil
}

func (r *MySQLUserRepository) Insert(ctx context.Context, u domain.User) (uint, error) {
	query := `
		INSERT INTO users (username, email, city, position, address, phone)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, u.Username, u.Email, u.City, u.Position, u.Address, u.Phone)
	if err != nil {
		return 0, fmt.Errorf("inserting user: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}
