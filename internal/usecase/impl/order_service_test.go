package impl

import (
	"context"
	"testing"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/errors"
	mockService "storefront/internal/mocks/service"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// orderServiceFixtures holds all test dependencies for order service tests.
type orderServiceFixtures struct {
	service usecase.OrderUsecase
	orders  *mockService.MockOrderAPI
}

func createTestOrderService(t *testing.T) orderServiceFixtures {
	orders := mockService.NewMockOrderAPI(t)

	return orderServiceFixtures{
		service: NewOrderService(orders),
		orders:  orders,
	}
}

func TestOrderService_ListAndGet(t *testing.T) {
	ctx := context.Background()
	fx := createTestOrderService(t)

	fx.orders.EXPECT().ListOrders(ctx, "tok", "5").Return([]entity.Order{{ID: "1"}, {ID: "2"}}, nil)
	orders, err := fx.service.ListOrders(ctx, "tok", "5")
	require.NoError(t, err)
	assert.Len(t, orders, 2)

	fx.orders.EXPECT().GetOrder(ctx, "tok", "3").Return(nil, domainerrors.ErrNotFound)
	_, err = fx.service.GetOrder(ctx, "tok", "3")
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}

func TestOrderService_Timeline(t *testing.T) {
	ctx := context.Background()
	fx := createTestOrderService(t)
	base := time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC)

	fx.orders.EXPECT().StatusHistory(ctx, "tok", "3").Return([]entity.OrderStatusHistory{
		{ID: "b", StatusID: entity.OrderStatusShipped, ChangedAt: base.Add(48 * time.Hour)},
		{ID: "a", StatusID: entity.OrderStatusPending, ChangedAt: base},
	}, nil)

	timeline, err := fx.service.Timeline(ctx, "tok", "3")
	require.NoError(t, err)
	require.Len(t, timeline, 2)
	assert.Equal(t, "Order Placed", timeline[0].Status.Label)
	assert.Equal(t, "Shipped", timeline[1].Status.Label)
	assert.True(t, timeline[1].Current)
}

func TestOrderService_OrderLines(t *testing.T) {
	ctx := context.Background()
	fx := createTestOrderService(t)

	fx.orders.EXPECT().OrderLines(ctx, "tok", "3").Return([]entity.OrderLine{{ID: "1", ProductItemID: "42", Quantity: 2}}, nil)
	lines, err := fx.service.OrderLines(ctx, "tok", "3")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "42", lines[0].ProductItemID)
}

func TestOrderService_UpdateOrderStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("status names are normalised", func(t *testing.T) {
		fx := createTestOrderService(t)
		fx.orders.EXPECT().UpdateOrderStatus(ctx, "tok", "3", "CANCELLED").Return(&entity.Order{ID: "3", Status: "CANCELLED"}, nil)

		order, err := fx.service.UpdateOrderStatus(ctx, "tok", "3", " cancelled ")
		require.NoError(t, err)
		assert.Equal(t, "CANCELLED", order.Status)
	})

	t.Run("unknown status is rejected before any request", func(t *testing.T) {
		fx := createTestOrderService(t)

		_, err := fx.service.UpdateOrderStatus(ctx, "tok", "3", "lost")
		assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
		fx.orders.AssertNotCalled(t, "UpdateOrderStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAddressService(t *testing.T) {
	ctx := context.Background()
	addresses := mockService.NewMockAddressAPI(t)
	service := NewAddressService(addresses)

	addresses.EXPECT().ListAddresses(ctx, "tok", "5").Return([]entity.Address{*testAddress()}, nil)
	list, err := service.ListAddresses(ctx, "tok", "5")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	addresses.EXPECT().DefaultAddress(ctx, "tok", "5").Return(nil, nil)
	address, err := service.DefaultAddress(ctx, "tok", "5")
	require.NoError(t, err)
	assert.Nil(t, address)
}

func TestAddressService_Changes(t *testing.T) {
	ctx := context.Background()

	t.Run("add drops any client id", func(t *testing.T) {
		addresses := mockService.NewMockAddressAPI(t)
		service := NewAddressService(addresses)
		input := *testAddress()
		input.ID = "client"

		addresses.EXPECT().AddAddress(ctx, "tok", "5", mock.MatchedBy(func(a entity.Address) bool {
			return a.ID == "" && a.Street == input.Street
		})).Return(&entity.Address{ID: "31", Street: input.Street}, nil)

		saved, err := service.AddAddress(ctx, "tok", "5", input)
		require.NoError(t, err)
		assert.Equal(t, "31", saved.ID)
	})

	t.Run("update needs an id", func(t *testing.T) {
		addresses := mockService.NewMockAddressAPI(t)
		service := NewAddressService(addresses)

		_, err := service.UpdateAddress(ctx, "tok", entity.Address{Street: "1 Ring Rd"})
		assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

		addresses.EXPECT().UpdateAddress(ctx, "tok", entity.Address{ID: "31", Street: "2 Ring Rd"}).
			Return(&entity.Address{ID: "31", Street: "2 Ring Rd"}, nil)
		saved, err := service.UpdateAddress(ctx, "tok", entity.Address{ID: "31", Street: "2 Ring Rd"})
		require.NoError(t, err)
		assert.Equal(t, "2 Ring Rd", saved.Street)
	})

	t.Run("delete and set default", func(t *testing.T) {
		addresses := mockService.NewMockAddressAPI(t)
		service := NewAddressService(addresses)

		addresses.EXPECT().SetDefaultAddress(ctx, "tok", "5", "31").Return(nil)
		require.NoError(t, service.SetDefaultAddress(ctx, "tok", "5", "31"))

		addresses.EXPECT().DeleteAddress(ctx, "tok", "5", "31").Return(domainerrors.ErrNotFound)
		err := service.DeleteAddress(ctx, "tok", "5", "31")
		assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
	})
}
