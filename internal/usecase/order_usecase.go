package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// OrderUsecase reads the user's orders from the order services.
type OrderUsecase interface {
	ListOrders(ctx context.Context, token, userID string) ([]entity.Order, error)
	GetOrder(ctx context.Context, token, orderID string) (*entity.Order, error)
	StatusHistory(ctx context.Context, token, orderID string) ([]entity.OrderStatusHistory, error)

	// Timeline returns the status history as labelled steps, oldest first.
	Timeline(ctx context.Context, token, orderID string) ([]entity.TimelineEntry, error)

	OrderLines(ctx context.Context, token, orderID string) ([]entity.OrderLine, error)

	// UpdateOrderStatus moves an order to the named backend status.
	// Unknown names fail with ErrValidationFailed before any request.
	UpdateOrderStatus(ctx context.Context, token, orderID, status string) (*entity.Order, error)
}

// AddressUsecase manages the user's address book.
type AddressUsecase interface {
	ListAddresses(ctx context.Context, token, userID string) ([]entity.Address, error)

	// DefaultAddress returns nil when the user has none.
	DefaultAddress(ctx context.Context, token, userID string) (*entity.Address, error)

	AddAddress(ctx context.Context, token, userID string, address entity.Address) (*entity.Address, error)
	UpdateAddress(ctx context.Context, token string, address entity.Address) (*entity.Address, error)
	DeleteAddress(ctx context.Context, token, userID, addressID string) error
	SetDefaultAddress(ctx context.Context, token, userID, addressID string) error
}
