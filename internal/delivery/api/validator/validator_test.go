package validator

import (
	"testing"
	"time"

	"storefront/internal/domain/validation"
	"storefront/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cardForm struct {
	Number string `json:"number" validate:"required,luhn"`
	Expiry string `json:"expiry" validate:"required,card_expiry"`
	CVV    string `json:"cvv" validate:"required,card_cvv=Number"`
}

type walletForm struct {
	Network string `json:"network" validate:"required,oneof=MTN Vodafone AirtelTigo"`
	Phone   string `json:"phone" validate:"required,momo_network=Network"`
}

type documentForm struct {
	Number  string `json:"number" validate:"required,id_document=Type Country"`
	Type    string `json:"type" validate:"required"`
	Country string `json:"country"`
}

func newTestValidator() *CustomValidator {
	v := New()
	v.now = func() time.Time { return time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC) }

	return v
}

func fieldErrors(t *testing.T, err error) []FieldError {
	t.Helper()

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr), "expected ValidationError, got %v", err)

	return validationErr.Fields
}

func TestValidate_Card(t *testing.T) {
	v := newTestValidator()

	assert.NoError(t, v.Validate(&cardForm{Number: "4111 1111 1111 1111", Expiry: "03-25", CVV: "123"}))
	assert.NoError(t, v.Validate(&cardForm{Number: "3782 822463 10005", Expiry: "12-30", CVV: "1234"}))

	fields := fieldErrors(t, v.Validate(&cardForm{Number: "4111 1111 1111 1112", Expiry: "02-25", CVV: "1234"}))
	require.Len(t, fields, 3)
	assert.Equal(t, FieldError{Field: "number", Rule: TagLuhn, Message: validation.ErrCardNumberChecksum.Error()}, fields[0])
	assert.Equal(t, FieldError{Field: "expiry", Rule: TagCardExpiry, Message: validation.ErrCardExpired.Error()}, fields[1])
	assert.Equal(t, FieldError{Field: "cvv", Rule: TagCardCVV, Message: validation.ErrCVV.Error()}, fields[2])
}

func TestValidate_MobileMoney(t *testing.T) {
	v := newTestValidator()

	assert.NoError(t, v.Validate(&walletForm{Network: "MTN", Phone: "024 123 4567"}))

	fields := fieldErrors(t, v.Validate(&walletForm{Network: "Vodafone", Phone: "0241234567"}))
	require.Len(t, fields, 1)
	assert.Equal(t, "phone", fields[0].Field)
	assert.Equal(t, validation.ErrMobileMoneyNumber.Error(), fields[0].Message)

	fields = fieldErrors(t, v.Validate(&walletForm{Network: "Orange", Phone: "0241234567"}))
	assert.Equal(t, "oneof", fields[0].Rule)
}

func TestValidate_IDDocument(t *testing.T) {
	v := newTestValidator()

	assert.NoError(t, v.Validate(&documentForm{Number: "123 45 6789", Type: "ssn", Country: "United States"}))

	fields := fieldErrors(t, v.Validate(&documentForm{Number: "000456789", Type: "ssn", Country: "United States"}))
	require.Len(t, fields, 1)
	assert.Equal(t, TagIDDocument, fields[0].Rule)
	assert.NotEmpty(t, fields[0].Message)

	fields = fieldErrors(t, v.Validate(&documentForm{Type: "passport"}))
	assert.Equal(t, "required", fields[0].Rule)
	assert.Equal(t, "is required", fields[0].Message)
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Fields: []FieldError{
		{Field: "number", Message: "card number is invalid"},
		{Field: "cvv", Message: "security code must have 3 digits"},
	}}

	assert.Equal(t, "number: card number is invalid; cvv: security code must have 3 digits", err.Error())
}
