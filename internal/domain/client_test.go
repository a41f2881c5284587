package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone_TenDigits(t *testing.T) {
	phone, ok := NormalizePhone("7071234567")
	assert.True(t, ok)
	assert.Equal(t, "+77071234567", phone)
}

func TestNormalizePhone_TrunkPrefix(t *testing.T) {
	phone, ok := NormalizePhone("87071234567")
	assert.True(t, ok)
	assert.Equal(t, "+77071234567", phone)
}

func TestNormalizePhone_AlreadyCanonical(t *testing.T) {
	phone, ok := NormalizePhone("+77071234567")
	assert.True(t, ok)
	assert.Equal(t, "+77071234567", phone)
}

func TestNormalizePhone_FormattingStripped(t *testing.T) {
	phone, ok := NormalizePhone("+7 (701) 777-77-77")
	assert.True(t, ok)
	assert.Equal(t, "+77017777777", phone)
}

func TestNormalizePhone_Invalid(t *testing.T) {
	for _, raw := range []string{"", "12345", "123456789012", "абв"} {
		_, ok := NormalizePhone(raw)
		assert.False(t, ok, "input %q", raw)
	}
}

func TestIsValidClientType(t *testing.T) {
	assert.True(t, IsValidClientType("заказчик"))
	assert.True(t, IsValidClientType("получатель"))
	assert.True(t, IsValidClientType("оба"))
	assert.False(t, IsValidClientType("customer"))
	assert.False(t, IsValidClientType(""))
}

func TestIsValidCategory(t *testing.T) {
	assert.True(t, IsValidCategory("букет"))
	assert.True(t, IsValidCategory("композиция"))
	assert.True(t, IsValidCategory("горшечный"))
	assert.False(t, IsValidCategory("bouquet"))
}

func TestInventory_LowStock(t *testing.T) {
	min := 10.0

	assert.True(t, Inventory{Quantity: 5, MinQuantity: &min}.LowStock())
	assert.True(t, Inventory{Quantity: 10, MinQuantity: &min}.LowStock())
	assert.False(t, Inventory{Quantity: 11, MinQuantity: &min}.LowStock())
	assert.False(t, Inventory{Quantity: 0}.LowStock())
}
