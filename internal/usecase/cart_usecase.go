package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// CartUsecase owns the user's carts and the selected-cart pointer.
// Mutations apply to memory immediately and are persisted in the background;
// they never fail because of storage.
type CartUsecase interface {
	// Load runs the one-time storage migration and restores persisted carts.
	Load(ctx context.Context)

	// Flush waits until every mutation so far has been persisted.
	Flush(ctx context.Context) error

	// Carts returns a copy of every cart in creation order.
	Carts() []entity.Cart

	// Cart returns a copy of one cart.
	Cart(cartID string) (entity.Cart, error)

	// SelectedCartID returns the selection pointer as set, without checking it.
	SelectedCartID() string

	// SelectedCart returns the selected cart, or the default cart when the pointer is dangling.
	SelectedCart() entity.Cart

	// AddCart creates an empty cart and selects it. While an account is
	// linked the cart is created on the cart service and takes its id.
	AddCart(ctx context.Context, name string) (entity.Cart, error)

	// RemoveCart deletes a cart, and its account copy while an account is
	// linked. The default cart is never removed.
	RemoveCart(ctx context.Context, cartID string) error

	// MergeIntoAccount links the store to a signed-in account. Guest carts
	// with items are copied into the account, then the local carts are
	// replaced by the account's carts next to an empty default cart. Guest
	// carts stay on this device when the copy fails.
	MergeIntoAccount(ctx context.Context, account entity.Session) error

	RenameCart(cartID, name string) error

	// SelectCart moves the selection pointer without checking that the cart exists.
	SelectCart(cartID string)

	// SetSelectedCartID is SelectCart under the name the screens use.
	SetSelectedCartID(cartID string)

	// AddItemToCart appends a line. Repeated adds of a product create separate lines.
	AddItemToCart(cartID string, item entity.CartItem)

	// AddProductToCart fetches a product and appends it as a line.
	AddProductToCart(ctx context.Context, cartID, productID string, selection entity.ItemSelection) (entity.CartItem, error)

	// UpdateItemQuantity adds delta to every line with itemID, never going below one.
	UpdateItemQuantity(cartID, itemID string, delta int)

	RemoveItem(cartID, itemID string)

	// ClearCart empties a cart's lines and keeps its collaborators.
	ClearCart(cartID string)

	InvitePerson(cartID, person string)

	HandleRemovePerson(cartID, person string)

	Totals(cartID string) (entity.CartTotals, error)

	// InviteCode renders a QR code that shares the cart.
	InviteCode(cartID string) ([]byte, error)

	// SelectByInviteCode selects the cart named by a scanned invite code.
	SelectByInviteCode(qrData string) (entity.Cart, error)

	// Reset unlinks the account, drops every cart except an empty default cart and selects it.
	Reset()
}
