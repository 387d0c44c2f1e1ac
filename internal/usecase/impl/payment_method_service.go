package impl

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/domain/validation"
	"storefront/internal/errors"
	"storefront/internal/usecase"

	"github.com/google/uuid"
)

type paymentMethodService struct {
	storage repository.DeviceStorage
	writer  repository.StorageWriter
	remote  service.PaymentMethodAPI
	logger  *slog.Logger
	now     func() time.Time

	mu      sync.Mutex
	methods []entity.PaymentMethod
	account *entity.Session // set while methods mirror a signed-in account
}

// NewPaymentMethodService creates the saved payment methods store.
func NewPaymentMethodService(
	storage repository.DeviceStorage,
	writer repository.StorageWriter,
	remote service.PaymentMethodAPI,
	logger *slog.Logger,
) usecase.PaymentMethodUsecase {
	return &paymentMethodService{
		storage: storage,
		writer:  writer,
		remote:  remote,
		logger:  logger.With(slog.String("component", "payment_method_store")),
		now:     time.Now,
		methods: []entity.PaymentMethod{},
	}
}

func (s *paymentMethodService) Load(ctx context.Context) {
	methods := []entity.PaymentMethod{}

	raw, err := s.storage.GetItem(ctx, repository.KeyProfilePaymentMethods)
	switch {
	case err == nil:
		if err := json.Unmarshal([]byte(raw), &methods); err != nil {
			s.logger.Warn("Ignoring unreadable payment methods", slog.Any("error", err))
			methods = []entity.PaymentMethod{}
		}
	case !errors.Is(err, repository.ErrStorageKeyNotFound):
		s.logger.Warn("Failed to read payment methods", slog.Any("error", err))
	}

	s.mu.Lock()
	s.methods = methods
	s.mu.Unlock()
}

func (s *paymentMethodService) Flush(ctx context.Context) error {
	return s.writer.Flush(ctx)
}

func (s *paymentMethodService) List() []entity.PaymentMethod {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.methods)
}

func (s *paymentMethodService) Get(methodID string) (entity.PaymentMethod, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(methodID)
	if idx < 0 {
		return entity.PaymentMethod{}, domainerrors.ErrPaymentMethodNotFound.WithDetails(methodID)
	}

	return s.methods[idx], nil
}

func (s *paymentMethodService) Add(ctx context.Context, input usecase.NewPaymentMethodInput) (entity.PaymentMethod, error) {
	method, accountNumber, err := s.buildMethod(input)
	if err != nil {
		return entity.PaymentMethod{}, err
	}

	if account := s.linkedAccount(); account != nil {
		saved, err := s.remote.AddPaymentMethod(ctx, account.Token, service.SavePaymentMethodRequest{
			UserID:        account.UserID,
			Method:        method,
			AccountNumber: accountNumber,
		})
		if err != nil {
			return entity.PaymentMethod{}, fmt.Errorf("failed to save payment method: %w", err)
		}
		method.ID = saved.ID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if method.IsDefault {
		for i := range s.methods {
			s.methods[i].IsDefault = false
		}
	}
	s.methods = append(s.methods, method)
	s.persistLocked()

	return method, nil
}

// buildMethod validates the form input and keeps only what may be stored.
// The full card number or phone is returned separately for the account service.
func (s *paymentMethodService) buildMethod(input usecase.NewPaymentMethodInput) (entity.PaymentMethod, string, error) {
	method := entity.PaymentMethod{
		ID:        uuid.NewString(),
		IsDefault: input.IsDefault,
	}

	switch input.Kind {
	case entity.PaymentKindMobileMoney:
		if err := validation.MobileMoneyPhone(input.Phone, input.Network); err != nil {
			return entity.PaymentMethod{}, "", domainerrors.ErrValidationFailed.WithDetails(err.Error())
		}
		method.Type = entity.PaymentTypeMobileMoney
		method.Network = input.Network
		method.Phone = strings.Join(strings.Fields(input.Phone), "")

		return method, method.Phone, nil

	case entity.PaymentKindCard, "":
		cardType := validation.DetectCardType(input.Number)
		for _, err := range []error{
			validation.CardNumber(input.Number),
			validation.Expiry(input.Expiry, s.now()),
			validation.CVV(input.CVV, cardType),
		} {
			if err != nil {
				return entity.PaymentMethod{}, "", domainerrors.ErrValidationFailed.WithDetails(err.Error())
			}
		}
		method.Type = cardType
		method.Last4 = validation.Last4(input.Number)
		method.Expiry = input.Expiry

		return method, validation.DigitsOnly(input.Number), nil

	default:
		return entity.PaymentMethod{}, "", domainerrors.ErrValidationFailed.WithDetails(fmt.Sprintf("unknown payment kind %q", input.Kind))
	}
}

func (s *paymentMethodService) Remove(ctx context.Context, methodID string) error {
	if _, err := s.Get(methodID); err != nil {
		return err
	}

	if account := s.linkedAccount(); account != nil {
		err := s.remote.DeletePaymentMethod(ctx, account.Token, methodID)
		if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
			return fmt.Errorf("failed to delete payment method: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := s.indexLocked(methodID); idx >= 0 {
		s.methods = slices.Delete(s.methods, idx, idx+1)
		s.persistLocked()
	}

	return nil
}

func (s *paymentMethodService) SetDefault(ctx context.Context, methodID string) error {
	method, err := s.Get(methodID)
	if err != nil {
		return err
	}

	if account := s.linkedAccount(); account != nil {
		method.IsDefault = true
		err := s.remote.UpdatePaymentMethod(ctx, account.Token, service.SavePaymentMethodRequest{
			ID:     methodID,
			UserID: account.UserID,
			Method: method,
		})
		if err != nil {
			return fmt.Errorf("failed to update payment method: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexLocked(methodID) < 0 {
		return domainerrors.ErrPaymentMethodNotFound.WithDetails(methodID)
	}
	for i := range s.methods {
		s.methods[i].IsDefault = s.methods[i].ID == methodID
	}
	s.persistLocked()

	return nil
}

func (s *paymentMethodService) Sync(ctx context.Context, token, userID string) ([]entity.PaymentMethod, error) {
	remote, err := s.remote.ListPaymentMethods(ctx, token, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment methods: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.methods = slices.Clone(remote)
	if s.methods == nil {
		s.methods = []entity.PaymentMethod{}
	}
	s.persistLocked()

	return slices.Clone(s.methods), nil
}

func (s *paymentMethodService) LinkAccount(account entity.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.account = &account
}

func (s *paymentMethodService) linkedAccount() *entity.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.account == nil {
		return nil
	}
	account := *s.account

	return &account
}

func (s *paymentMethodService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.account = nil
	s.methods = []entity.PaymentMethod{}
	s.writer.Remove(repository.KeyProfilePaymentMethods)
}

func (s *paymentMethodService) indexLocked(methodID string) int {
	return slices.IndexFunc(s.methods, func(m entity.PaymentMethod) bool { return m.ID == methodID })
}

func (s *paymentMethodService) persistLocked() {
	data, err := json.Marshal(s.methods)
	if err != nil {
		s.logger.Error("Failed to encode payment methods", slog.Any("error", err))

		return
	}
	s.writer.Set(repository.KeyProfilePaymentMethods, string(data))
}
