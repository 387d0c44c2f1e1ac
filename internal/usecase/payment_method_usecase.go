package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// NewPaymentMethodInput is what the add-payment form submits. Card numbers
// and security codes are only used for validation and never stored.
type NewPaymentMethodInput struct {
	Kind      entity.PaymentKind   `json:"kind"`
	Number    string               `json:"number,omitempty"`
	Expiry    string               `json:"expiry,omitempty"`
	CVV       string               `json:"cvv,omitempty"`
	Network   entity.MobileNetwork `json:"network,omitempty"`
	Phone     string               `json:"phone,omitempty"`
	IsDefault bool                 `json:"isDefault"`
}

// PaymentMethodUsecase owns the payment methods saved on this device.
type PaymentMethodUsecase interface {
	Load(ctx context.Context)
	Flush(ctx context.Context) error

	List() []entity.PaymentMethod
	Get(methodID string) (entity.PaymentMethod, error)

	// Add validates and saves a method. A default method unsets the previous
	// default. While an account is linked the method is saved on the account
	// first and keeps the server's id, so a later Sync returns it.
	Add(ctx context.Context, input NewPaymentMethodInput) (entity.PaymentMethod, error)

	// Remove and SetDefault apply to the account first while one is linked.
	Remove(ctx context.Context, methodID string) error
	SetDefault(ctx context.Context, methodID string) error

	// Sync replaces the saved methods with the ones on the user's account.
	Sync(ctx context.Context, token, userID string) ([]entity.PaymentMethod, error)

	// LinkAccount mirrors later changes onto the account's saved methods.
	LinkAccount(account entity.Session)

	// Reset unlinks the account and forgets every saved method.
	Reset()
}
