package dto

import (
	"time"

	"floracrm/internal/domain"
)

type CreateOrderRequest struct {
	ClientID          uint       `json:"client_id"`
	RecipientID       uint       `json:"recipient_id"`
	ExecutorID        *uint      `json:"executor_id"`
	Status            string     `json:"status"`
	DeliveryDate      *time.Time `json:"delivery_date"`
	DeliveryAddress   string     `json:"delivery_address"`
	DeliveryTimeRange *string    `json:"delivery_time_range"`
	Comment           *string    `json:"comment"`
}

// PatchOrderRequest is the whitelist of patchable order fields. Requests
// carrying any other key are rejected during decoding.
type PatchOrderRequest struct {
	ClientID          *uint      `json:"client_id"`
	RecipientID       *uint      `json:"recipient_id"`
	ExecutorID        *uint      `json:"executor_id"`
	Status            *string    `json:"status"`
	DeliveryDate      *time.Time `json:"delivery_date"`
	DeliveryAddress   *string    `json:"delivery_address"`
	DeliveryTimeRange *string    `json:"delivery_time_range"`
	Comment           *string    `json:"comment"`
}

type StatusUpdateRequest struct {
	Status  string  `json:"status"`
	Comment *string `json:"comment"`
}

type AddItemRequest struct {
	ProductID uint     `json:"product_id"`
	Quantity  int      `json:"quantity"`
	Price     *float64 `json:"price"`
}

type OrderResponse struct {
	ID                uint      `json:"id"`
	ClientID          uint      `json:"client_id"`
	RecipientID       uint      `json:"recipient_id"`
	ExecutorID        *uint     `json:"executor_id"`
	Status            string    `json:"status"`
	StatusLabelRU     string    `json:"status_label_ru"`
	DeliveryDate      time.Time `json:"delivery_date"`
	DeliveryAddress   string    `json:"delivery_address"`
	DeliveryTimeRange *string   `json:"delivery_time_range"`
	TotalPrice        float64   `json:"total_price"`
	Comment           *string   `json:"comment"`
	CreatedAt         time.Time `json:"created_at"`
}

func NewOrderResponse(o domain.Order) OrderResponse {
	return OrderResponse{
		ID:                o.ID,
		ClientID:          o.ClientID,
		RecipientID:       o.RecipientID,
		ExecutorID:        o.ExecutorID,
		Status:            string(o.Status),
		StatusLabelRU:     o.Status.LabelRU(),
		DeliveryDate:      o.DeliveryDate,
		DeliveryAddress:   o.DeliveryAddress,
		DeliveryTimeRange: o.DeliveryTimeRange,
		TotalPrice:        o.TotalPrice,
		Comment:           o.Comment,
		CreatedAt:         o.CreatedAt,
	}
}

func NewOrderResponses(orders []domain.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, NewOrderResponse(o))
	}
	return out
}

type OrderItemResponse struct {
	ID        uint            `json:"id"`
	OrderID   uint            `json:"order_id"`
	ProductID uint            `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     float64         `json:"price"`
	Product   *ProductSummary `json:"product,omitempty"`
}

func NewOrderItemResponse(item domain.OrderItem) OrderItemResponse {
	return OrderItemResponse{
		ID:        item.ID,
		OrderID:   item.OrderID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
		Price:     item.Price,
	}
}

type HistoryResponse struct {
	ID            uint      `json:"id"`
	OrderID       uint      `json:"order_id"`
	Action        string    `json:"action"`
	OldStatus     *string   `json:"old_status"`
	NewStatus     string    `json:"new_status"`
	StatusLabelRU string    `json:"status_label_ru"`
	Comment       *string   `json:"comment"`
	CreatedAt     time.Time `json:"created_at"`
}

func NewHistoryResponse(h domain.OrderHistory) HistoryResponse {
	resp := HistoryResponse{
		ID:            h.ID,
		OrderID:       h.OrderID,
		Action:        h.Action,
		NewStatus:     string(h.NewStatus),
		StatusLabelRU: h.NewStatus.LabelRU(),
		Comment:       h.Comment,
		CreatedAt:     h.CreatedAt,
	}
	if h.OldStatus != nil {
		old := string(*h.OldStatus)
		resp.OldStatus = &old
	}
	return resp
}

type ClientSummary struct {
	ID    uint    `json:"id"`
	Name  *string `json:"name"`
	Phone string  `json:"phone"`
	Email *string `json:"email"`
}

func NewClientSummary(c domain.Client) *ClientSummary {
	return &ClientSummary{ID: c.ID, Name: c.Name, Phone: c.Phone, Email: c.Email}
}

type ProductSummary struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
}

func NewProductSummary(p domain.Product) *ProductSummary {
	return &ProductSummary{ID: p.ID, Name: p.Name, Category: string(p.Category), Price: p.Price}
}

type UserSummary struct {
	ID       uint    `json:"id"`
	Username string  `json:"username"`
	Position *string `json:"position"`
}

func NewUserSummary(u domain.User) *UserSummary {
	return &UserSummary{ID: u.ID, Username: u.Username, Position: u.Position}
}

type OrderDetailResponse struct {
	OrderResponse
	Client     *ClientSummary      `json:"client"`
	Recipient  *ClientSummary      `json:"recipient"`
	Executor   *UserSummary        `json:"executor"`
	OrderItems []OrderItemResponse `json:"order_items"`
	History    []HistoryResponse   `json:"history_entries"`
}
