package client

import (
	"time"

	"floracrm/internal/domain"
	"floracrm/internal/dto"
)

type CreateClientRequest struct {
	Name       *string `json:"name"`
	Phone      string  `json:"phone"`
	Email      *string `json:"email"`
	Address    *string `json:"address"`
	ClientType string  `json:"client_type"`
	Notes      *string `json:"notes"`
}

type ClientResponse struct {
	ID         uint      `json:"id"`
	Name       *string   `json:"name"`
	Phone      string    `json:"phone"`
	Email      *string   `json:"email"`
	Address    *string   `json:"address"`
	ClientType string    `json:"client_type"`
	Notes      *string   `json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
}

func newClientResponse(c domain.Client) ClientResponse {
	return ClientResponse{
		ID:         c.ID,
		Name:       c.Name,
		Phone:      c.Phone,
		Email:      c.Email,
		Address:    c.Address,
		ClientType: string(c.ClientType),
		Notes:      c.Notes,
		CreatedAt:  c.CreatedAt,
	}
}

type ClientOrdersResponse struct {
	Client            ClientResponse      `json:"client"`
	OrdersAsCustomer  []dto.OrderResponse `json:"orders_as_customer"`
	OrdersAsRecipient []dto.OrderResponse `json:"orders_as_recipient"`
	TotalOrders       int                 `json:"total_orders"`
}
