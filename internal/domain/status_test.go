package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStatus_ContractCodes(t *testing.T) {
	for _, status := range AllStatuses() {
		assert.Equal(t, status, NormalizeStatus(string(status)))
	}
}

func TestNormalizeStatus_ContractCodes_CaseInsensitive(t *testing.T) {
	assert.Equal(t, StatusReady, NormalizeStatus("In-Transit"))
	assert.Equal(t, StatusPaid, NormalizeStatus("PAID"))
	assert.Equal(t, StatusNew, NormalizeStatus("  new  "))
}

func TestNormalizeStatus_LegacyAliases(t *testing.T) {
	cases := map[string]OrderStatus{
		"IN_PROGRESS": StatusInWork,
		"IN_WORK":     StatusInWork,
		"READY":       StatusCollected,
		"COLLECTED":   StatusCollected,
		"ASSEMBLED":   StatusCollected,
		"ON_DELIVERY": StatusReady,
		"DELIVERED":   StatusDelivered,
	}

	for raw, want := range cases {
		assert.Equal(t, want, NormalizeStatus(raw), "alias %q", raw)
	}
}

func TestNormalizeStatus_RussianLabels(t *testing.T) {
	cases := map[string]OrderStatus{
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

	for raw, want := range cases {
		assert.Equal(t, want, NormalizeStatus(raw), "label %q", raw)
	}
}

func TestNormalizeStatus_RussianLabels_CaseInsensitive(t *testing.T) {
	assert.Equal(t, StatusInWork, NormalizeStatus("В работе"))
	assert.Equal(t, StatusDelivered, NormalizeStatus("Доставлен"))
}

func TestNormalizeStatus_UnknownFallsBackToNew(t *testing.T) {
	for _, raw := range []string{"", "garbage", "???", "status-42", "готово бы"} {
		assert.Equal(t, StatusNew, NormalizeStatus(raw), "input %q", raw)
	}
}

func TestNormalizeStatus_Idempotent(t *testing.T) {
	inputs := []string{"new", "DELIVERED", "в пути", "готов", "nonsense"}
	for _, raw := range inputs {
		once := NormalizeStatus(raw)
		twice := NormalizeStatus(string(once))
		assert.Equal(t, once, twice, "input %q", raw)
	}
}

func TestIsValidStatus(t *testing.T) {
	assert.True(t, IsValidStatus("in-transit"))
	assert.True(t, IsValidStatus("canceled"))
	assert.False(t, IsValidStatus("DELIVERED"))
	assert.False(t, IsValidStatus("в пути"))
}

func TestLabelRU(t *testing.T) {
	assert.Equal(t, "новый", StatusNew.LabelRU())
	assert.Equal(t, "в доставке", StatusReady.LabelRU())
	assert.Equal(t, "доставлен", StatusDelivered.LabelRU())

	// Unknown codes fall through to the raw value.
	assert.Equal(t, "weird", OrderStatus("weird").LabelRU())
}

func TestAllStatuses_CoveredByLabels(t *testing.T) {
	for _, status := range AllStatuses() {
		assert.NotEqual(t, string(status), status.LabelRU(), "status %q has no label", status)
	}
}
