package validation

import (
	"testing"
	"time"

	"storefront/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func TestCardNumber(t *testing.T) {
	tests := []struct {
		name    string
		number  string
		wantErr error
	}{
		{name: "valid visa", number: "4539148803436467"},
		{name: "valid with spaces", number: "4539 1488 0343 6467"},
		{name: "valid with dashes", number: "4539-1488-0343-6467"},
		{name: "single digit perturbation", number: "4539148803436468", wantErr: ErrCardNumberChecksum},
		{name: "too short", number: "453914880343", wantErr: ErrCardNumberLength},
		{name: "too long", number: "45391488034364671234", wantErr: ErrCardNumberLength},
		{name: "empty", number: "", wantErr: ErrCardNumberLength},
		{name: "valid amex", number: "378282246310005"},
		{name: "valid mastercard", number: "5555555555554444"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CardNumber(tt.number)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLuhn_RejectsNonDigits(t *testing.T) {
	assert.False(t, Luhn("4539a48803436467"))
	assert.False(t, Luhn(""))
	assert.True(t, Luhn("0"))
}

func TestExpiry(t *testing.T) {
	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		expiry  string
		wantErr error
	}{
		{expiry: "02-25", wantErr: ErrCardExpired},
		{expiry: "03-25"},
		{expiry: "01-30"},
		{expiry: "12-24", wantErr: ErrCardExpired},
		{expiry: "13-25", wantErr: ErrExpiryMonth},
		{expiry: "00-26", wantErr: ErrExpiryMonth},
		{expiry: "0325", wantErr: ErrExpiryFormat},
		{expiry: "03/25", wantErr: ErrExpiryFormat},
		{expiry: "ab-25", wantErr: ErrExpiryFormat},
		{expiry: "", wantErr: ErrExpiryFormat},
		{expiry: "+3-30", wantErr: ErrExpiryFormat},
		{expiry: "03--1", wantErr: ErrExpiryFormat},
		{expiry: "0３-2", wantErr: ErrExpiryFormat},
	}

	for _, tt := range tests {
		t.Run(tt.expiry, func(t *testing.T) {
			err := Expiry(tt.expiry, now)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCVV(t *testing.T) {
	assert.NoError(t, CVV("123", entity.PaymentTypeVisa))
	assert.NoError(t, CVV("1234", entity.PaymentTypeAmex))
	assert.ErrorIs(t, CVV("1234", entity.PaymentTypeVisa), ErrCVV)
	assert.ErrorIs(t, CVV("123", entity.PaymentTypeAmex), ErrCVVAmex)
	assert.ErrorIs(t, CVV("12a", entity.PaymentTypeMasterCard), ErrCVV)
	assert.ErrorIs(t, CVV("", entity.PaymentTypeVisa), ErrCVV)
	assert.ErrorIs(t, CVV("１", entity.PaymentTypeVisa), ErrCVV)
	assert.ErrorIs(t, CVV("١٢", entity.PaymentTypeAmex), ErrCVVAmex)
	assert.ErrorIs(t, CVV("+12", entity.PaymentTypeVisa), ErrCVV)
}

func TestDetectCardType(t *testing.T) {
	tests := map[string]entity.PaymentType{
		"4539148803436467":   entity.PaymentTypeVisa,
		"378282246310005":    entity.PaymentTypeAmex,
		"3400 0000 0000 009": entity.PaymentTypeAmex,
		"5555555555554444":   entity.PaymentTypeMasterCard,
		"2221000000000009":   entity.PaymentTypeMasterCard,
		"6011111111111117":   entity.PaymentTypeVisa,
		"":                   entity.PaymentTypeVisa,
	}

	for number, want := range tests {
		t.Run(number, func(t *testing.T) {
			assert.Equal(t, want, DetectCardType(number))
		})
	}
}

func TestLast4(t *testing.T) {
	assert.Equal(t, "6467", Last4("4539 1488 0343 6467"))
	assert.Equal(t, "12", Last4("12"))
}
