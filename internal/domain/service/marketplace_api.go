package service

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// AuthAPI talks to the account service.
type AuthAPI interface {
	// Me returns the signed-in user.
	Me(ctx context.Context, token string) (*entity.User, error)

	// Login exchanges credentials for a bearer token.
	Login(ctx context.Context, email, password string) (string, error)

	ChangePassword(ctx context.Context, token, currentPassword, newPassword string) error

	// DeleteAccount removes the account the token belongs to.
	DeleteAccount(ctx context.Context, token string) error
}

// ProductAPI reads the product catalogue.
type ProductAPI interface {
	GetProduct(ctx context.Context, productID string) (*entity.Product, error)

	// ListProducts returns one page of the catalogue. Pages start at zero.
	ListProducts(ctx context.Context, page, size int) ([]entity.Product, error)

	SearchProducts(ctx context.Context, query string) ([]entity.Product, error)
	ProductsByCategory(ctx context.Context, categoryID string) ([]entity.Product, error)
}

// SavePaymentMethodRequest is a payment method as the account service stores it.
// AccountNumber is the full card number or wallet phone and is never kept locally.
type SavePaymentMethodRequest struct {
	ID            string
	UserID        string
	Method        entity.PaymentMethod
	AccountNumber string
}

// PaymentMethodAPI manages the payment methods saved on the user's account.
type PaymentMethodAPI interface {
	ListPaymentMethods(ctx context.Context, token, userID string) ([]entity.PaymentMethod, error)

	// AddPaymentMethod returns the saved method carrying the server's id.
	AddPaymentMethod(ctx context.Context, token string, req SavePaymentMethodRequest) (entity.PaymentMethod, error)

	UpdatePaymentMethod(ctx context.Context, token string, req SavePaymentMethodRequest) error
	DeletePaymentMethod(ctx context.Context, token, methodID string) error
}

// AddressAPI manages the user's address book.
type AddressAPI interface {
	ListAddresses(ctx context.Context, token, userID string) ([]entity.Address, error)

	// DefaultAddress returns nil without error when the user has no default address.
	DefaultAddress(ctx context.Context, token, userID string) (*entity.Address, error)

	// AddAddress creates an address and links it to the user.
	AddAddress(ctx context.Context, token, userID string, address entity.Address) (*entity.Address, error)

	UpdateAddress(ctx context.Context, token string, address entity.Address) (*entity.Address, error)

	// DeleteAddress unlinks the address from the user, then deletes it.
	DeleteAddress(ctx context.Context, token, userID, addressID string) error

	SetDefaultAddress(ctx context.Context, token, userID, addressID string) error
}

// CreateOrderRequest is the order the checkout submits.
type CreateOrderRequest struct {
	UserID           string
	PaymentMethodID  string
	ShippingAddress  string
	ShippingMethodID string
	Total            decimal.Decimal
	Lines            []entity.OrderLine
}

// OrderAPI places and reads orders.
type OrderAPI interface {
	CreateOrder(ctx context.Context, token string, req CreateOrderRequest) (*entity.Order, error)
	ListOrders(ctx context.Context, token, userID string) ([]entity.Order, error)
	GetOrder(ctx context.Context, token, orderID string) (*entity.Order, error)
	OrderLines(ctx context.Context, token, orderID string) ([]entity.OrderLine, error)
	UpdateOrderStatus(ctx context.Context, token, orderID, status string) (*entity.Order, error)
	StatusHistory(ctx context.Context, token, orderID string) ([]entity.OrderStatusHistory, error)
}

// CartAPI keeps a signed-in user's carts on the cart service. Carts returned
// by the service carry only product ids, sizes and quantities on their lines.
type CartAPI interface {
	// MergeGuestCarts copies carts built as a guest into the account.
	MergeGuestCarts(ctx context.Context, token, email string, carts []entity.Cart) error

	ListCarts(ctx context.Context, token, email string) ([]entity.Cart, error)
	CreateCart(ctx context.Context, token, email, name string) (*entity.Cart, error)
	DeleteCart(ctx context.Context, token, cartID string) error
}
