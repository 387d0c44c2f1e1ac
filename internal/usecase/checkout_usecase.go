package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// PlaceOrderInput identifies who is buying which cart.
type PlaceOrderInput struct {
	Token            string
	UserID           string
	CartID           string
	ShippingMethodID string
}

// CheckoutUsecase owns the address and payment method chosen for checkout.
// Each half is stored under its own key and can be cleared alone.
type CheckoutUsecase interface {
	// Load restores the selection and drops a payment method that is no
	// longer among the saved payment methods.
	Load(ctx context.Context)

	Flush(ctx context.Context) error

	Address() *entity.Address
	PaymentMethod() *entity.PaymentMethod
	Selection() entity.CheckoutSelection

	// SetAddress replaces the address; nil clears it.
	SetAddress(address *entity.Address)

	// SetPaymentMethod replaces the payment method; nil clears it.
	SetPaymentMethod(method *entity.PaymentMethod)

	ClearAddress()
	ClearPaymentMethod()
	ClearCheckoutData()

	// PlaceOrder submits the cart with the current selection. On success the
	// selection is cleared and the cart emptied.
	PlaceOrder(ctx context.Context, input PlaceOrderInput) (*entity.Order, error)
}
