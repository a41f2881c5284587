package domain

import "strings"

// OrderStatus is the canonical contract code of an order state, the value
// stored in the database and returned on the wire.
type OrderStatus string

const (
	StatusNew       OrderStatus = "new"
	StatusPaid      OrderStatus = "paid"
	StatusInWork    OrderStatus = "accepted"
	StatusCollected OrderStatus = "assembled"
	StatusReady     OrderStatus = "in-transit"
	StatusDelivered OrderStatus = "completed"
	StatusCanceled  OrderStatus = "canceled"
)

// statusLabelsRU maps each contract code to its display label.
var statusLabelsRU = map[OrderStatus]string{
	StatusNew:       "новый",
	StatusPaid:      "оплачен",
	StatusInWork:    "принят",
	StatusCollected: "собран",
	StatusReady:     "в доставке",
	StatusDelivered: "доставлен",
	StatusCanceled:  "отменен",
}

// legacyStatusAliases covers uppercase tokens older API clients still send.
var legacyStatusAliases = map[string]OrderStatus{
	"NEW":         StatusNew,
	"PAID":        StatusPaid,
	"IN_PROGRESS": StatusInWork,
	"IN_WORK":     StatusInWork,
	"ASSEMBLED":   StatusCollected,
	"READY":       StatusCollected,
	"COLLECTED":   StatusCollected,
	"ON_DELIVERY": StatusReady,
	"DELIVERED":   StatusDelivered,
	"CANCELED":    StatusCanceled,
}

// russianStatusAliases accepts display labels and their historical synonyms.
var russianStatusAliases = map[string]OrderStatus{
	"новый":      StatusNew,
	"оплачен":    StatusPaid,
	"принят":     StatusInWork,
	"в работе":   StatusInWork,
	"собран":     StatusCollected,
	"готов":      StatusCollected,
	"в доставке": StatusReady,
	"в пути":     StatusReady,
	"доставлен":  StatusDelivered,
	"завершен":   StatusDelivered,
	"отменен":    StatusCanceled,
}

// NormalizeStatus resolves any accepted status spelling to a canonical code.
// Resolution order: contract code, legacy uppercase alias, Russian label.
// Unrecognized input falls back to StatusNew; callers must not rely on an
// error being raised for garbage values.
func NormalizeStatus(raw string) OrderStatus {
	lower := strings.ToLower(strings.TrimSpace(raw))

	candidate := OrderStatus(lower)
	if _, ok := statusLabelsRU[candidate]; ok {
		return candidate
	}

	if status, ok := legacyStatusAliases[strings.ToUpper(strings.TrimSpace(raw))]; ok {
		return status
	}

	if status, ok := russianStatusAliases[lower]; ok {
		return status
	}

	return StatusNew
}

// IsValidStatus reports whether code is one of the canonical contract codes.
func IsValidStatus(code string) bool {
	_, ok := statusLabelsRU[OrderStatus(code)]
	return ok
}

// LabelRU returns the Russian display label for the status.
func (s OrderStatus) LabelRU() string {
	if label, ok := statusLabelsRU[s]; ok {
		return label
	}
	return string(s)
}

// AllStatuses returns every canonical status in lifecycle order.
func AllStatuses() []OrderStatus {
	return []OrderStatus{
		StatusNew, StatusPaid, StatusInWork, StatusCollected,
		StatusReady, StatusDelivered, StatusCanceled,
	}
}
