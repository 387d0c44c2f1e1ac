// Package entity contains the core business objects of the storefront:
// carts, checkout selections, payment methods and the records the remote
// marketplace API is mapped into.
package entity

import (
	"math"
	"slices"

	"github.com/shopspring/decimal"
)

const (
	// DefaultCartID is the reserved id of the always-present guest cart.
	DefaultCartID = "default"
	// DefaultCartName is the display label of the default cart.
	DefaultCartName = "My Cart"
	// MinItemQuantity is the lowest quantity a cart line can hold.
	MinItemQuantity = 1
)

// Cart is a named collection of line items a user intends to purchase.
// A user may own several carts, e.g. for group purchases.
type Cart struct {
	ID      string     `json:"id"`
	Name    string     `json:"name"`
	Items   []CartItem `json:"items"`   // Insertion order is display order.
	Invited []string   `json:"invited"` // Collaborators of a shared cart.

	// Synced marks carts that live on the cart service of the signed-in account.
	Synced bool `json:"synced,omitempty"`
}

// CartItem is a single line in a cart.
// Repeated adds of the same product create separate lines.
type CartItem struct {
	ID             string          `json:"id"`
	ProductItemID  string          `json:"productItemId,omitempty"`
	Name           string          `json:"name"`
	Title          string          `json:"title,omitempty"`
	Image          string          `json:"image,omitempty"`
	Color          string          `json:"color,omitempty"`
	Size           string          `json:"size,omitempty"`
	Quantity       int             `json:"quantity"`
	Price          decimal.Decimal `json:"price"`
	OldPrice       decimal.Decimal `json:"oldPrice"`
	ShippingOption *ShippingOption `json:"shippingOption,omitempty"`
}

// ShippingOption is the shipping tier chosen for one cart line.
type ShippingOption struct {
	Type     string          `json:"type"`
	Price    decimal.Decimal `json:"price"`
	Duration string          `json:"duration,omitempty"`
}

// CartTotals summarises the money in a cart.
type CartTotals struct {
	ItemCount int             `json:"itemCount"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Shipping  decimal.Decimal `json:"shipping"`
	Savings   decimal.Decimal `json:"savings"`
	Total     decimal.Decimal `json:"total"`
}

// NewDefaultCart returns the empty guest cart.
func NewDefaultCart() Cart {
	return Cart{
		ID:      DefaultCartID,
		Name:    DefaultCartName,
		Items:   []CartItem{},
		Invited: []string{},
	}
}

// IsDefault reports whether c is the non-deletable default cart.
func (c *Cart) IsDefault() bool {
	return c.ID == DefaultCartID
}

// Clone returns a deep copy of the cart.
func (c Cart) Clone() Cart {
	items := make([]CartItem, len(c.Items))
	for i, item := range c.Items {
		items[i] = item.Clone()
	}

	invited := slices.Clone(c.Invited)
	if invited == nil {
		invited = []string{}
	}

	return Cart{
		ID:      c.ID,
		Name:    c.Name,
		Items:   items,
		Invited: invited,
		Synced:  c.Synced,
	}
}

// Totals computes the subtotal, per-line shipping and savings of the cart.
func (c *Cart) Totals() CartTotals {
	totals := CartTotals{
		Subtotal: decimal.Zero,
		Shipping: decimal.Zero,
		Savings:  decimal.Zero,
	}

	for _, item := range c.Items {
		qty := decimal.NewFromInt(int64(item.Quantity))
		totals.ItemCount += item.Quantity
		totals.Subtotal = totals.Subtotal.Add(item.Price.Mul(qty))

		if item.ShippingOption != nil {
			totals.Shipping = totals.Shipping.Add(item.ShippingOption.Price)
		}

		if item.OldPrice.GreaterThan(item.Price) {
			totals.Savings = totals.Savings.Add(item.OldPrice.Sub(item.Price).Mul(qty))
		}
	}

	totals.Total = totals.Subtotal.Add(totals.Shipping)

	return totals
}

// Clone returns a deep copy of the line item.
func (i CartItem) Clone() CartItem {
	cloned := i
	if i.ShippingOption != nil {
		option := *i.ShippingOption
		cloned.ShippingOption = &option
	}

	return cloned
}

// ProductRef is the identifier sent to the order service for this line.
func (i CartItem) ProductRef() string {
	if i.ProductItemID != "" {
		return i.ProductItemID
	}

	return i.ID
}

// ClampQuantity applies the quantity floor shared by every cart mutation.
func ClampQuantity(quantity int) int {
	return max(MinItemQuantity, quantity)
}

// AdjustQuantity adds delta to quantity, saturating at the int limits, then clamps.
func AdjustQuantity(quantity, delta int) int {
	switch {
	case delta > 0 && quantity > math.MaxInt-delta:
		return math.MaxInt
	case delta < 0 && quantity < math.MinInt-delta:
		return MinItemQuantity
	}

	return ClampQuantity(quantity + delta)
}
