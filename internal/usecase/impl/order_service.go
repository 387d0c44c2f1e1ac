package impl

import (
	"context"
	"fmt"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"
)

type orderService struct {
	orders service.OrderAPI
}

// NewOrderService creates the order reader.
func NewOrderService(orders service.OrderAPI) usecase.OrderUsecase {
	return &orderService{orders: orders}
}

func (s *orderService) ListOrders(ctx context.Context, token, userID string) ([]entity.Order, error) {
	orders, err := s.orders.ListOrders(ctx, token, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	return orders, nil
}

func (s *orderService) GetOrder(ctx context.Context, token, orderID string) (*entity.Order, error) {
	order, err := s.orders.GetOrder(ctx, token, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return order, nil
}

func (s *orderService) StatusHistory(ctx context.Context, token, orderID string) ([]entity.OrderStatusHistory, error) {
	history, err := s.orders.StatusHistory(ctx, token, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get status history: %w", err)
	}

	return history, nil
}

func (s *orderService) Timeline(ctx context.Context, token, orderID string) ([]entity.TimelineEntry, error) {
	history, err := s.StatusHistory(ctx, token, orderID)
	if err != nil {
		return nil, err
	}

	return entity.Timeline(history), nil
}

func (s *orderService) OrderLines(ctx context.Context, token, orderID string) ([]entity.OrderLine, error) {
	lines, err := s.orders.OrderLines(ctx, token, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order lines: %w", err)
	}

	return lines, nil
}

func (s *orderService) UpdateOrderStatus(ctx context.Context, token, orderID, status string) (*entity.Order, error) {
	known, ok := entity.OrderStatusByName(status)
	if !ok {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown order status " + status)
	}

	order, err := s.orders.UpdateOrderStatus(ctx, token, orderID, known.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	return order, nil
}
