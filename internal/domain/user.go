package domain

import "time"

// User is an order executor (florist). There is no user-facing CRUD, the
// table exists so orders can carry an assigned-executor reference.
type User struct {
	ID        uint
	Username  string
	Email     string
	City      *string
	Position  *string
	Address   *string
	Phone     *string
	CreatedAt time.Time
}
