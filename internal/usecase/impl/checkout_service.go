package impl

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
	"storefront/internal/usecase"
)

// defaultShippingMethodID is the backend's standard shipping method.
const defaultShippingMethodID = "1"

type checkoutService struct {
	storage repository.DeviceStorage
	writer  repository.StorageWriter
	carts   usecase.CartUsecase
	orders  service.OrderAPI
	logger  *slog.Logger

	mu            sync.Mutex
	address       *entity.Address
	paymentMethod *entity.PaymentMethod
}

// NewCheckoutService creates the checkout selection store.
func NewCheckoutService(
	storage repository.DeviceStorage,
	writer repository.StorageWriter,
	carts usecase.CartUsecase,
	orders service.OrderAPI,
	logger *slog.Logger,
) usecase.CheckoutUsecase {
	return &checkoutService{
		storage: storage,
		writer:  writer,
		carts:   carts,
		orders:  orders,
		logger:  logger.With(slog.String("component", "checkout_store")),
	}
}

func (s *checkoutService) Load(ctx context.Context) {
	var address *entity.Address
	if !s.readJSON(ctx, repository.KeyCheckoutAddress, &address) {
		address = nil
	}

	var method *entity.PaymentMethod
	if !s.readJSON(ctx, repository.KeyCheckoutPaymentMethod, &method) {
		method = nil
	}

	if method != nil && !s.isSaved(ctx, method.ID) {
		s.logger.Info("Dropping checkout payment method that is no longer saved", slog.String("payment_method_id", method.ID))
		if err := s.storage.RemoveItems(ctx, repository.KeyCheckoutPaymentMethod); err != nil {
			s.logger.Warn("Failed to remove checkout payment method", slog.Any("error", err))
		}
		method = nil
	}

	s.mu.Lock()
	s.address = address
	s.paymentMethod = method
	s.mu.Unlock()
}

// isSaved reports whether the saved payment methods still contain methodID.
// A missing list counts as empty.
func (s *checkoutService) isSaved(ctx context.Context, methodID string) bool {
	if methodID == "" {
		return false
	}

	var saved []entity.PaymentMethod
	s.readJSON(ctx, repository.KeyProfilePaymentMethods, &saved)

	return slices.ContainsFunc(saved, func(m entity.PaymentMethod) bool { return m.ID == methodID })
}

// readJSON decodes key into out and reports whether a usable value was found.
func (s *checkoutService) readJSON(ctx context.Context, key string, out any) bool {
	raw, err := s.storage.GetItem(ctx, key)
	if err != nil {
		if !errors.Is(err, repository.ErrStorageKeyNotFound) {
			s.logger.Warn("Failed to read checkout data", slog.String("key", key), slog.Any("error", err))
		}

		return false
	}

	if err := json.Unmarshal([]byte(raw), out); err != nil {
		s.logger.Warn("Ignoring unreadable checkout data", slog.String("key", key), slog.Any("error", err))

		return false
	}

	return true
}

func (s *checkoutService) Flush(ctx context.Context) error {
	return s.writer.Flush(ctx)
}

func (s *checkoutService) Address() *entity.Address {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.address.Clone()
}

func (s *checkoutService) PaymentMethod() *entity.PaymentMethod {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.paymentMethod.Clone()
}

func (s *checkoutService) Selection() entity.CheckoutSelection {
	s.mu.Lock()
	defer s.mu.Unlock()

	return entity.CheckoutSelection{
		Address:       s.address.Clone(),
		PaymentMethod: s.paymentMethod.Clone(),
	}
}

func (s *checkoutService) SetAddress(address *entity.Address) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.address = address.Clone()
	s.persistLocked(repository.KeyCheckoutAddress, s.address)
}

func (s *checkoutService) SetPaymentMethod(method *entity.PaymentMethod) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.paymentMethod = method.Clone()
	s.persistLocked(repository.KeyCheckoutPaymentMethod, s.paymentMethod)
}

func (s *checkoutService) ClearAddress() {
	s.SetAddress(nil)
}

func (s *checkoutService) ClearPaymentMethod() {
	s.SetPaymentMethod(nil)
}

func (s *checkoutService) ClearCheckoutData() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.address = nil
	s.paymentMethod = nil
	s.writer.Remove(repository.KeyCheckoutAddress, repository.KeyCheckoutPaymentMethod)
}

func (s *checkoutService) PlaceOrder(ctx context.Context, input usecase.PlaceOrderInput) (*entity.Order, error) {
	selection := s.Selection()
	if !selection.Complete() {
		return nil, domainerrors.ErrCheckoutIncomplete
	}

	cart, err := s.carts.Cart(input.CartID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, domainerrors.ErrCartEmpty
	}

	shippingMethodID := input.ShippingMethodID
	if shippingMethodID == "" {
		shippingMethodID = defaultShippingMethodID
	}

	lines := make([]entity.OrderLine, 0, len(cart.Items))
	for _, item := range cart.Items {
		lines = append(lines, entity.OrderLine{
			ProductItemID: item.ProductRef(),
			Quantity:      item.Quantity,
			Price:         item.Price,
		})
	}

	order, err := s.orders.CreateOrder(ctx, input.Token, service.CreateOrderRequest{
		UserID:           input.UserID,
		PaymentMethodID:  selection.PaymentMethod.ID,
		ShippingAddress:  selection.Address.Format(),
		ShippingMethodID: shippingMethodID,
		Total:            cart.Totals().Total,
		Lines:            lines,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.ClearCheckoutData()
	s.carts.ClearCart(cart.ID)

	s.logger.Info("Order placed", slog.String("order_id", order.ID), slog.String("cart_id", cart.ID))

	return order, nil
}

// persistLocked writes value under key, or removes the key when value is nil.
func (s *checkoutService) persistLocked(key string, value any) {
	switch v := value.(type) {
	case *entity.Address:
		if v == nil {
			s.writer.Remove(key)

			return
		}
	case *entity.PaymentMethod:
		if v == nil {
			s.writer.Remove(key)

			return
		}
	}

	data, err := json.Marshal(value)
	if err != nil {
		s.logger.Error("Failed to encode checkout data", slog.String("key", key), slog.Any("error", err))

		return
	}
	s.writer.Set(key, string(data))
}
