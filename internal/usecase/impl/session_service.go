package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
	"storefront/internal/usecase"
)

type sessionService struct {
	decoder  service.TokenDecoder
	auth     service.AuthAPI
	writer   repository.StorageWriter
	carts    usecase.CartUsecase
	checkout usecase.CheckoutUsecase
	payments usecase.PaymentMethodUsecase
	logger   *slog.Logger

	mu      sync.RWMutex
	session *entity.Session
}

// NewSessionService creates the session holder. Sessions are never persisted.
func NewSessionService(
	decoder service.TokenDecoder,
	auth service.AuthAPI,
	writer repository.StorageWriter,
	carts usecase.CartUsecase,
	checkout usecase.CheckoutUsecase,
	payments usecase.PaymentMethodUsecase,
	logger *slog.Logger,
) usecase.SessionUsecase {
	return &sessionService{
		decoder:  decoder,
		auth:     auth,
		writer:   writer,
		carts:    carts,
		checkout: checkout,
		payments: payments,
		logger:   logger.With(slog.String("component", "session")),
	}
}

func (s *sessionService) Login(ctx context.Context, token string) (*entity.Session, error) {
	claims, err := s.decoder.Decode(token)
	if err != nil {
		return nil, err
	}

	session := &entity.Session{
		Token:  token,
		UserID: claims.Subject,
		Email:  claims.Email,
		Role:   entity.ParseRole(claims.Role),
	}

	if session.UserID == "" {
		user, err := s.auth.Me(ctx, token)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve user: %w", err)
		}
		session.UserID = user.ID
		if session.Email == "" {
			session.Email = user.Email
		}
		if session.Role == "" {
			session.Role = user.Role
		}
	}

	s.clearUserData()

	s.mu.Lock()
	s.session = session
	s.mu.Unlock()

	s.payments.LinkAccount(*session)
	if err := s.carts.MergeIntoAccount(ctx, *session); err != nil {
		s.logger.WarnContext(ctx, "Carts stay on this device", slog.String("user_id", session.UserID), slog.Any("error", err))
	}

	s.logger.Info("User signed in", slog.String("user_id", session.UserID), slog.String("role", session.Role.String()))

	cloned := *session

	return &cloned, nil
}

func (s *sessionService) LoginWithPassword(ctx context.Context, email, password string) (*entity.Session, error) {
	token, err := s.auth.Login(ctx, strings.TrimSpace(email), password)
	if err != nil {
		if errors.Is(err, domainerrors.ErrInvalidToken) {
			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, fmt.Errorf("failed to sign in: %w", err)
	}

	return s.Login(ctx, token)
}

func (s *sessionService) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	session, err := s.Current()
	if err != nil {
		return err
	}
	if newPassword == currentPassword {
		return domainerrors.ErrValidationFailed.WithDetails("the new password must differ from the current one")
	}

	if err := s.auth.ChangePassword(ctx, session.Token, currentPassword, newPassword); err != nil {
		return fmt.Errorf("failed to change password: %w", err)
	}
	s.logger.InfoContext(ctx, "Password changed", slog.String("user_id", session.UserID))

	return nil
}

func (s *sessionService) DeleteAccount(ctx context.Context) error {
	session, err := s.Current()
	if err != nil {
		return err
	}

	if err := s.auth.DeleteAccount(ctx, session.Token); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	s.logger.InfoContext(ctx, "Account deleted", slog.String("user_id", session.UserID))
	s.Logout(ctx)

	return nil
}

// clearUserData forgets everything tied to the previous user. Carts stay so
// a guest keeps the cart built before signing in.
func (s *sessionService) clearUserData() {
	s.checkout.ClearCheckoutData()
	s.payments.Reset()
	s.carts.SelectCart(entity.DefaultCartID)
	s.writer.Remove(repository.UserDataKeys...)
}

func (s *sessionService) Logout(_ context.Context) {
	s.mu.Lock()
	userID := ""
	if s.session != nil {
		userID = s.session.UserID
	}
	s.session = nil
	s.mu.Unlock()

	s.clearUserData()
	s.carts.Reset()
	s.writer.Remove(repository.KeyGuestCart)

	s.logger.Info("User signed out", slog.String("user_id", userID))
}

func (s *sessionService) Current() (*entity.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.session == nil {
		return nil, domainerrors.ErrNotLoggedIn
	}
	cloned := *s.session

	return &cloned, nil
}

func (s *sessionService) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.session == nil {
		return ""
	}

	return s.session.Token
}

func (s *sessionService) Role() entity.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.session == nil {
		return ""
	}

	return s.session.Role
}

func (s *sessionService) Me(ctx context.Context) (*entity.User, error) {
	session, err := s.Current()
	if err != nil {
		return nil, err
	}

	user, err := s.auth.Me(ctx, session.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}

	return user, nil
}
