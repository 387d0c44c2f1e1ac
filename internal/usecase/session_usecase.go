package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// SessionUsecase tracks the signed-in user. The token lives in memory only.
type SessionUsecase interface {
	// Login switches to the token's user and clears the previous user's data.
	// Guest carts are merged into the account's carts, and payment method
	// changes are mirrored to the account from then on.
	Login(ctx context.Context, token string) (*entity.Session, error)

	// LoginWithPassword signs in through the account service, then behaves like Login.
	LoginWithPassword(ctx context.Context, email, password string) (*entity.Session, error)

	ChangePassword(ctx context.Context, currentPassword, newPassword string) error

	// DeleteAccount removes the signed-in account, then logs out.
	DeleteAccount(ctx context.Context) error

	// Logout clears user data, guest carts and the checkout selection.
	Logout(ctx context.Context)

	// Current returns the session or ErrNotLoggedIn.
	Current() (*entity.Session, error)

	Token() string
	Role() entity.Role

	// Me fetches the signed-in user's account.
	Me(ctx context.Context) (*entity.User, error)
}
