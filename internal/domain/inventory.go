package domain

import "time"

type Inventory struct {
	ID           uint
	Name         string
	Quantity     float64
	Unit         string
	MinQuantity  *float64
	PricePerUnit *float64
	CreatedAt    time.Time
}

// LowStock reports whether the position is at or below its minimum level.
// Positions without a configured minimum are never low.
func (i Inventory) LowStock() bool {
	return i.MinQuantity != nil && i.Quantity <= *i.MinQuantity
}
