package domain

import (
	"strings"
	"time"
	"unicode"
)

type ClientType string

const (
	ClientTypeCustomer  ClientType = "заказчик"
	ClientTypeRecipient ClientType = "получатель"
	ClientTypeBoth      ClientType = "оба"
)

func IsValidClientType(v string) bool {
	switch ClientType(v) {
	case ClientTypeCustomer, ClientTypeRecipient, ClientTypeBoth:
		return true
	}
	return false
}

type Client struct {
	ID         uint
	Name       *string
	Phone      string
	Email      *string
	Address    *string
	ClientType ClientType
	Notes      *string
	CreatedAt  time.Time
}

// NormalizePhone brings a raw phone number to the +7XXXXXXXXXX form.
// Accepted shapes, after stripping every non-digit rune: 11 digits with a
// leading 7, 11 digits with a leading 8 (trunk prefix), or a bare 10-digit
// subscriber number. Anything else is rejected.
func NormalizePhone(raw string) (string, bool) {
	var digits strings.Builder
	for _, r := range raw {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}

	d := digits.String()
	switch {
	case len(d) == 11 && d[0] == '7':
		return "+" + d, true
	case len(d) == 11 && d[0] == '8':
		return "+7" + d[1:], true
	case len(d) == 10:
		return "+7" + d, true
	}
	return "", false
}
