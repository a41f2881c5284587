package product

import (
	"time"

	"floracrm/internal/domain"
)

type CreateProductRequest struct {
	Name            string   `json:"name"`
	Description     *string  `json:"description"`
	Price           float64  `json:"price"`
	Category        string   `json:"category"`
	PreparationTime *int     `json:"preparation_time"`
	ImageURL        *string  `json:"image_url"`
}

type ProductResponse struct {
	ID              uint      `json:"id"`
	Name            string    `json:"name"`
	Description     *string   `json:"description"`
	Price           float64   `json:"price"`
	Category        string    `json:"category"`
	PreparationTime *int      `json:"preparation_time"`
	ImageURL        *string   `json:"image_url"`
	CreatedAt       time.Time `json:"created_at"`
}

func newProductResponse(p domain.Product) ProductResponse {
	return ProductResponse{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		Price:           p.Price,
		Category:        string(p.Category),
		PreparationTime: p.PreparationTime,
		ImageURL:        p.ImageURL,
		CreatedAt:       p.CreatedAt,
	}
}
