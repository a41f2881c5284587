package domain

import (
	"fmt"
	"time"
)

type Order struct {
	ID                uint
	ClientID          uint
	RecipientID       uint
	ExecutorID        *uint
	Status            OrderStatus
	DeliveryDate      time.Time
	DeliveryAddress   string
	DeliveryTimeRange *string
	TotalPrice        float64
	Comment           *string
	CreatedAt         time.Time
}

type OrderItem struct {
	ID        uint
	OrderID   uint
	ProductID uint
	Quantity  int
	Price     float64
}

const (
	HistoryActionCreated       = "created"
	HistoryActionStatusChanged = "status_changed"
)

type OrderHistory struct {
	ID        uint
	OrderID   uint
	Action    string
	OldStatus *OrderStatus
	NewStatus OrderStatus
	Comment   *string
	CreatedAt time.Time
}

// OrderTotal is the derived total price: sum of quantity*price over the
// current items. An order with no items totals 0, never null.
func OrderTotal(items []OrderItem) float64 {
	total := 0.0
	for _, item := range items {
		total += float64(item.Quantity) * item.Price
	}
	return total
}

// TransitionTo applies a status change to the order. When the new status
// equals the current one the call is a no-op and no history entry is
// produced. Otherwise the order is updated and a status_changed entry is
// returned, carrying the supplied comment or an auto-generated one.
func (o *Order) TransitionTo(newStatus OrderStatus, comment string) (*OrderHistory, bool) {
	if newStatus == o.Status {
		return nil, false
	}

	oldStatus := o.Status
	o.Status = newStatus

	if comment == "" {
		comment = fmt.Sprintf("Статус изменен с %s на %s", oldStatus.LabelRU(), newStatus.LabelRU())
	}

	return &OrderHistory{
		OrderID:   o.ID,
		Action:    HistoryActionStatusChanged,
		OldStatus: &oldStatus,
		NewStatus: newStatus,
		Comment:   &comment,
	}, true
}

// CreationHistory is the audit entry recorded when an order is created.
func (o *Order) CreationHistory() OrderHistory {
	comment := "Заказ создан"
	return OrderHistory{
		OrderID:   o.ID,
		Action:    HistoryActionCreated,
		NewStatus: o.Status,
		Comment:   &comment,
	}
}
