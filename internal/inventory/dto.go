package inventory

import (
	"time"

	"floracrm/internal/domain"
)

type CreateInventoryRequest struct {
	Name         string   `json:"name"`
	Quantity     float64  `json:"quantity"`
	Unit         string   `json:"unit"`
	MinQuantity  *float64 `json:"min_quantity"`
	PricePerUnit *float64 `json:"price_per_unit"`
}

type InventoryResponse struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Quantity     float64   `json:"quantity"`
	Unit         string    `json:"unit"`
	MinQuantity  *float64  `json:"min_quantity"`
	PricePerUnit *float64  `json:"price_per_unit"`
	LowStock     bool      `json:"low_stock"`
	CreatedAt    time.Time `json:"created_at"`
}

func newInventoryResponse(item domain.Inventory) InventoryResponse {
	return InventoryResponse{
		ID:           item.ID,
		Name:         item.Name,
		Quantity:     item.Quantity,
		Unit:         item.Unit,
		MinQuantity:  item.MinQuantity,
		PricePerUnit: item.PricePerUnit,
		LowStock:     item.LowStock(),
		CreatedAt:    item.CreatedAt,
	}
}
