package impl

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
	"storefront/internal/usecase"

	"github.com/google/uuid"
)

type cartService struct {
	storage  repository.DeviceStorage
	writer   repository.StorageWriter
	products service.ProductAPI
	remote   service.CartAPI
	qrCodes  service.QRCodeService
	logger   *slog.Logger

	mu       sync.Mutex
	carts    []entity.Cart
	selected string
	account  *entity.Session // set while carts mirror a signed-in account
}

// NewCartService creates the cart store. It starts with only the default cart
// until Load restores persisted state.
func NewCartService(
	storage repository.DeviceStorage,
	writer repository.StorageWriter,
	products service.ProductAPI,
	remote service.CartAPI,
	qrCodes service.QRCodeService,
	logger *slog.Logger,
) usecase.CartUsecase {
	return &cartService{
		storage:  storage,
		writer:   writer,
		products: products,
		remote:   remote,
		qrCodes:  qrCodes,
		logger:   logger.With(slog.String("component", "cart_store")),
		carts:    []entity.Cart{entity.NewDefaultCart()},
		selected: entity.DefaultCartID,
	}
}

func (s *cartService) Load(ctx context.Context) {
	s.migrate(ctx)

	carts := s.readCarts(ctx)
	selected := entity.DefaultCartID
	if id, err := s.storage.GetItem(ctx, repository.KeySelectedCartID); err == nil {
		if slices.ContainsFunc(carts, func(c entity.Cart) bool { return c.ID == id }) {
			selected = id
		}
	} else if !errors.Is(err, repository.ErrStorageKeyNotFound) {
		s.logger.Warn("Failed to read selected cart", slog.Any("error", err))
	}

	s.mu.Lock()
	s.carts = carts
	s.selected = selected
	s.mu.Unlock()

	s.logger.Debug("Carts loaded", slog.Int("count", len(carts)), slog.String("selected", selected))
}

// migrate discards cart data written by older installs exactly once.
// The flag is only set after the legacy keys are gone, so a failed
// cleanup is retried on the next start.
func (s *cartService) migrate(ctx context.Context) {
	_, err := s.storage.GetItem(ctx, repository.KeyCartStorageMigrated)
	if err == nil {
		return
	}
	if !errors.Is(err, repository.ErrStorageKeyNotFound) {
		s.logger.Warn("Failed to read cart migration flag", slog.Any("error", err))

		return
	}

	if err := s.storage.RemoveItems(ctx, repository.LegacyCartKeys...); err != nil {
		s.logger.Error("Failed to remove legacy cart data", slog.Any("error", err))

		return
	}

	if err := s.storage.SetItem(ctx, repository.KeyCartStorageMigrated, "true"); err != nil {
		s.logger.Error("Failed to set cart migration flag", slog.Any("error", err))

		return
	}

	s.logger.Info("Legacy cart data discarded")
}

func (s *cartService) readCarts(ctx context.Context) []entity.Cart {
	raw, err := s.storage.GetItem(ctx, repository.KeyUserCarts)
	if err != nil {
		if !errors.Is(err, repository.ErrStorageKeyNotFound) {
			s.logger.Warn("Failed to read carts", slog.Any("error", err))
		}

		return []entity.Cart{entity.NewDefaultCart()}
	}

	var stored []entity.Cart
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		s.logger.Warn("Ignoring unreadable carts", slog.Any("error", err))

		return []entity.Cart{entity.NewDefaultCart()}
	}

	carts := make([]entity.Cart, 0, len(stored)+1)
	hasDefault := false
	for _, cart := range stored {
		if cart.ID == "" {
			continue
		}
		cart = cart.Clone()
		for i := range cart.Items {
			cart.Items[i].Quantity = entity.ClampQuantity(cart.Items[i].Quantity)
		}
		hasDefault = hasDefault || cart.IsDefault()
		carts = append(carts, cart)
	}

	if !hasDefault {
		carts = append([]entity.Cart{entity.NewDefaultCart()}, carts...)
	}

	return carts
}

func (s *cartService) Flush(ctx context.Context) error {
	return s.writer.Flush(ctx)
}

func (s *cartService) Carts() []entity.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	carts := make([]entity.Cart, len(s.carts))
	for i, cart := range s.carts {
		carts[i] = cart.Clone()
	}

	return carts
}

func (s *cartService) Cart(cartID string) (entity.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.findLocked(cartID)
	if cart == nil {
		return entity.Cart{}, domainerrors.ErrCartNotFound.WithDetails(cartID)
	}

	return cart.Clone(), nil
}

func (s *cartService) SelectedCartID() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.selected
}

func (s *cartService) SelectedCart() entity.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cart := s.findLocked(s.selected); cart != nil {
		return cart.Clone()
	}

	return s.findLocked(entity.DefaultCartID).Clone()
}

// AddCart creates the cart on the cart service first when an account is linked.
func (s *cartService) AddCart(ctx context.Context, name string) (entity.Cart, error) {
	cart := entity.Cart{
		ID:      uuid.NewString(),
		Name:    strings.TrimSpace(name),
		Items:   []entity.CartItem{},
		Invited: []string{},
	}

	if account := s.linkedAccount(); account != nil {
		created, err := s.remote.CreateCart(ctx, account.Token, account.Email, cart.Name)
		if err != nil {
			return entity.Cart{}, fmt.Errorf("failed to create cart: %w", err)
		}
		cart.ID, cart.Synced = created.ID, true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.carts = append(s.carts, cart)
	s.selected = cart.ID
	s.persistLocked()

	return cart.Clone(), nil
}

func (s *cartService) RemoveCart(ctx context.Context, cartID string) error {
	if cartID == entity.DefaultCartID {
		return nil
	}

	s.mu.Lock()
	idx := s.indexLocked(cartID)
	synced := idx >= 0 && s.carts[idx].Synced
	s.mu.Unlock()
	if idx < 0 {
		return nil
	}

	if account := s.linkedAccount(); synced && account != nil {
		err := s.remote.DeleteCart(ctx, account.Token, cartID)
		if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
			return fmt.Errorf("failed to delete cart: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if idx = s.indexLocked(cartID); idx < 0 {
		return nil
	}
	s.carts = slices.Delete(s.carts, idx, idx+1)
	if s.selected == cartID {
		s.selected = entity.DefaultCartID
	}
	s.persistLocked()

	return nil
}

func (s *cartService) MergeIntoAccount(ctx context.Context, account entity.Session) error {
	if account.Email == "" {
		return domainerrors.ErrValidationFailed.WithDetails("an account email is required to sync carts")
	}

	s.mu.Lock()
	s.account = &account
	var guests []entity.Cart
	for _, cart := range s.carts {
		if !cart.Synced && len(cart.Items) > 0 {
			guests = append(guests, cart.Clone())
		}
	}
	s.mu.Unlock()

	var mergeErr error
	if len(guests) > 0 {
		mergeErr = s.remote.MergeGuestCarts(ctx, account.Token, account.Email, guests)
		if mergeErr != nil {
			s.logger.WarnContext(ctx, "Failed to merge guest carts, keeping them on this device",
				slog.Int("carts", len(guests)),
				slog.Any("error", mergeErr),
			)
		}
	}

	remote, err := s.remote.ListCarts(ctx, account.Token, account.Email)
	if err != nil {
		return fmt.Errorf("failed to list account carts: %w", err)
	}
	s.describeLines(ctx, remote)

	carts := []entity.Cart{entity.NewDefaultCart()}
	if mergeErr != nil {
		for _, guest := range guests {
			if guest.IsDefault() {
				carts[0] = guest
			} else {
				carts = append(carts, guest)
			}
		}
	}
	carts = append(carts, remote...)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.account == nil || s.account.Token != account.Token {
		return nil
	}
	s.carts = carts
	s.selected = preferredCartID(remote)
	s.persistLocked()

	s.logger.InfoContext(ctx, "Carts synced with account",
		slog.Int("merged", len(guests)),
		slog.Int("remote", len(remote)),
		slog.String("selected", s.selected),
	)

	return nil
}

// describeLines fills in product details the cart service does not keep.
// Lines whose product cannot be fetched keep their id as the name.
func (s *cartService) describeLines(ctx context.Context, carts []entity.Cart) {
	products := make(map[string]*entity.Product)

	for i := range carts {
		for j, line := range carts[i].Items {
			productID := line.ProductRef()
			product, seen := products[productID]
			if !seen {
				var err error
				product, err = s.products.GetProduct(ctx, productID)
				if err != nil {
					s.logger.WarnContext(ctx, "Failed to describe cart line",
						slog.String("product_id", productID),
						slog.Any("error", err),
					)
					product = nil
				}
				products[productID] = product
			}

			if product == nil {
				carts[i].Items[j].Name = productID
				continue
			}
			item := entity.NewCartItem(product, entity.ItemSelection{Quantity: line.Quantity, Size: line.Size})
			item.ID = line.ID
			carts[i].Items[j] = item
		}
	}
}

// preferredCartID picks the account's "My Cart", then its first cart, then the default cart.
func preferredCartID(remote []entity.Cart) string {
	for _, cart := range remote {
		if cart.Name == entity.DefaultCartName {
			return cart.ID
		}
	}
	if len(remote) > 0 {
		return remote[0].ID
	}

	return entity.DefaultCartID
}

func (s *cartService) linkedAccount() *entity.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.account == nil {
		return nil
	}
	account := *s.account

	return &account
}

func (s *cartService) RenameCart(cartID, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return domainerrors.ErrValidationFailed.WithDetails("cart name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.findLocked(cartID)
	if cart == nil {
		return domainerrors.ErrCartNotFound.WithDetails(cartID)
	}
	cart.Name = name
	s.persistLocked()

	return nil
}

func (s *cartService) SelectCart(cartID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.selected = cartID
	s.persistLocked()
}

func (s *cartService) SetSelectedCartID(cartID string) {
	s.SelectCart(cartID)
}

func (s *cartService) AddItemToCart(cartID string, item entity.CartItem) {
	item = item.Clone()
	item.Quantity = entity.ClampQuantity(item.Quantity)

	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.findLocked(cartID)
	if cart == nil {
		s.logger.Debug("Ignoring item for unknown cart", slog.String("cart_id", cartID))

		return
	}
	cart.Items = append(cart.Items, item)
	s.persistLocked()
}

func (s *cartService) AddProductToCart(ctx context.Context, cartID, productID string, selection entity.ItemSelection) (entity.CartItem, error) {
	if _, err := s.Cart(cartID); err != nil {
		return entity.CartItem{}, err
	}

	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return entity.CartItem{}, fmt.Errorf("failed to get product: %w", err)
	}

	item := entity.NewCartItem(product, selection)
	s.AddItemToCart(cartID, item)

	return item, nil
}

func (s *cartService) UpdateItemQuantity(cartID, itemID string, delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.findLocked(cartID)
	if cart == nil {
		return
	}

	changed := false
	for i := range cart.Items {
		if cart.Items[i].ID != itemID {
			continue
		}
		cart.Items[i].Quantity = entity.AdjustQuantity(cart.Items[i].Quantity, delta)
		changed = true
	}

	if changed {
		s.persistLocked()
	}
}

func (s *cartService) RemoveItem(cartID, itemID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.findLocked(cartID)
	if cart == nil {
		return
	}

	before := len(cart.Items)
	cart.Items = slices.DeleteFunc(cart.Items, func(item entity.CartItem) bool {
		return item.ID == itemID
	})
	if len(cart.Items) != before {
		s.persistLocked()
	}
}

func (s *cartService) ClearCart(cartID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.findLocked(cartID)
	if cart == nil {
		return
	}
	cart.Items = []entity.CartItem{}
	s.persistLocked()
}

func (s *cartService) InvitePerson(cartID, person string) {
	person = strings.TrimSpace(person)
	if person == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.findLocked(cartID)
	if cart == nil || slices.Contains(cart.Invited, person) {
		return
	}
	cart.Invited = append(cart.Invited, person)
	s.persistLocked()
}

func (s *cartService) HandleRemovePerson(cartID, person string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.findLocked(cartID)
	if cart == nil {
		return
	}

	before := len(cart.Invited)
	cart.Invited = slices.DeleteFunc(cart.Invited, func(p string) bool { return p == person })
	if len(cart.Invited) != before {
		s.persistLocked()
	}
}

func (s *cartService) Totals(cartID string) (entity.CartTotals, error) {
	cart, err := s.Cart(cartID)
	if err != nil {
		return entity.CartTotals{}, err
	}

	return cart.Totals(), nil
}

func (s *cartService) InviteCode(cartID string) ([]byte, error) {
	if _, err := s.Cart(cartID); err != nil {
		return nil, err
	}

	png, err := s.qrCodes.GenerateCartInviteQR(cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate invite code: %w", err)
	}

	return png, nil
}

func (s *cartService) SelectByInviteCode(qrData string) (entity.Cart, error) {
	cartID, err := s.qrCodes.ParseCartInviteQR(qrData)
	if err != nil {
		return entity.Cart{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.findLocked(cartID)
	if cart == nil {
		return entity.Cart{}, domainerrors.ErrCartNotFound.WithDetails(cartID)
	}
	s.selected = cartID
	s.persistLocked()

	return cart.Clone(), nil
}

func (s *cartService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.account = nil
	s.carts = []entity.Cart{entity.NewDefaultCart()}
	s.selected = entity.DefaultCartID
	s.persistLocked()
}

func (s *cartService) findLocked(cartID string) *entity.Cart {
	if idx := s.indexLocked(cartID); idx >= 0 {
		return &s.carts[idx]
	}

	return nil
}

func (s *cartService) indexLocked(cartID string) int {
	return slices.IndexFunc(s.carts, func(c entity.Cart) bool { return c.ID == cartID })
}

// persistLocked enqueues the current state. Enqueueing under the lock keeps
// the write order identical to the mutation order.
func (s *cartService) persistLocked() {
	data, err := json.Marshal(s.carts)
	if err != nil {
		s.logger.Error("Failed to encode carts", slog.Any("error", err))

		return
	}

	s.writer.Set(repository.KeyUserCarts, string(data))
	s.writer.Set(repository.KeySelectedCartID, s.selected)
}
