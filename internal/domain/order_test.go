package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderTotal_SumsQuantityTimesPrice(t *testing.T) {
	items := []OrderItem{
		{ProductID: 1, Quantity: 1, Price: 18000},
		{ProductID: 2, Quantity: 1, Price: 8000},
	}

	assert.Equal(t, 26000.0, OrderTotal(items))
}

func TestOrderTotal_AfterRemoval(t *testing.T) {
	items := []OrderItem{
		{ProductID: 1, Quantity: 1, Price: 18000},
	}

	assert.Equal(t, 18000.0, OrderTotal(items))
}

func TestOrderTotal_EmptyOrderIsZero(t *testing.T) {
	assert.Equal(t, 0.0, OrderTotal(nil))
	assert.Equal(t, 0.0, OrderTotal([]OrderItem{}))
}

func TestOrderTotal_Quantities(t *testing.T) {
	items := []OrderItem{
		{Quantity: 3, Price: 1500},
		{Quantity: 2, Price: 250.5},
	}

	assert.Equal(t, 5001.0, OrderTotal(items))
}

func TestTransitionTo_ChangesStatusAndRecordsHistory(t *testing.T) {
	order := &Order{ID: 7, Status: StatusNew}

	entry, changed := order.TransitionTo(StatusPaid, "оплата получена")
	require.True(t, changed)
	require.NotNil(t, entry)

	assert.Equal(t, StatusPaid, order.Status)
	assert.Equal(t, uint(7), entry.OrderID)
	assert.Equal(t, HistoryActionStatusChanged, entry.Action)
	require.NotNil(t, entry.OldStatus)
	assert.Equal(t, StatusNew, *entry.OldStatus)
	assert.Equal(t, StatusPaid, entry.NewStatus)
	require.NotNil(t, entry.Comment)
	assert.Equal(t, "оплата получена", *entry.Comment)
}

func TestTransitionTo_SameStatusIsNoOp(t *testing.T) {
	order := &Order{ID: 7, Status: StatusInWork}

	entry, changed := order.TransitionTo(StatusInWork, "")
	assert.False(t, changed)
	assert.Nil(t, entry)
	assert.Equal(t, StatusInWork, order.Status)
}

func TestTransitionTo_AutoComment(t *testing.T) {
	order := &Order{ID: 3, Status: StatusNew}

	entry, changed := order.TransitionTo(StatusCanceled, "")
	require.True(t, changed)
	require.NotNil(t, entry.Comment)
	assert.Equal(t, "Статус изменен с новый на отменен", *entry.Comment)
}

func TestTransitionTo_RawStatusScenarios(t *testing.T) {
	// "в работе" is a legacy label for the accepted state.
	order := &Order{ID: 1, Status: StatusNew}
	entry, changed := order.TransitionTo(NormalizeStatus("в работе"), "")
	require.True(t, changed)
	assert.Equal(t, StatusInWork, order.Status)
	assert.Equal(t, StatusInWork, entry.NewStatus)

	// "DELIVERED" maps to the completed state.
	entry, changed = order.TransitionTo(NormalizeStatus("DELIVERED"), "")
	require.True(t, changed)
	assert.Equal(t, StatusDelivered, order.Status)
	assert.Equal(t, StatusDelivered, entry.NewStatus)
}

func TestTransitionTo_NoTerminalStates(t *testing.T) {
	// Canceled orders may still be transitioned away; the state machine is
	// deliberately unenforced.
	order := &Order{ID: 5, Status: StatusCanceled}

	_, changed := order.TransitionTo(StatusNew, "")
	assert.True(t, changed)
	assert.Equal(t, StatusNew, order.Status)
}

func TestCreationHistory(t *testing.T) {
	order := &Order{ID: 12, Status: StatusNew}

	entry := order.CreationHistory()
	assert.Equal(t, uint(12), entry.OrderID)
	assert.Equal(t, HistoryActionCreated, entry.Action)
	assert.Nil(t, entry.OldStatus)
	assert.Equal(t, StatusNew, entry.NewStatus)
	require.NotNil(t, entry.Comment)
	assert.Equal(t, "Заказ создан", *entry.Comment)
}
