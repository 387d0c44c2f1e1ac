package entity

import "github.com/shopspring/decimal"

// Product is a catalogue product as returned by the product service.
type Product struct {
	ID              string                  `json:"id"`
	Name            string                  `json:"name"`
	Description     string                  `json:"description,omitempty"`
	Price           decimal.Decimal         `json:"price"`
	OriginalPrice   decimal.Decimal         `json:"originalPrice"`
	Image           string                  `json:"image,omitempty"`
	Condition       string                  `json:"condition,omitempty"`
	CategoryID      string                  `json:"categoryId,omitempty"`
	ShippingOptions []ProductShippingOption `json:"shippingOptions"`
}

// ProductShippingOption is a shipping tier offered for a product.
type ProductShippingOption struct {
	ID       string          `json:"id"`
	Type     string          `json:"type"`
	Duration string          `json:"duration"`
	Price    decimal.Decimal `json:"price"`
}

// ItemSelection is what a product detail screen sends when adding to cart.
type ItemSelection struct {
	Quantity     int
	Color        string
	Size         string
	ShippingType string
}

// NewCartItem maps a product into the one cart line shape the stores accept.
func NewCartItem(product *Product, selection ItemSelection) CartItem {
	item := CartItem{
		ID:            product.ID,
		ProductItemID: product.ID,
		Name:          product.Name,
		Title:         product.Name,
		Image:         product.Image,
		Color:         selection.Color,
		Size:          selection.Size,
		Quantity:      ClampQuantity(selection.Quantity),
		Price:         product.Price,
		OldPrice:      product.OriginalPrice,
	}

	for _, option := range product.ShippingOptions {
		if option.Type == selection.ShippingType {
			item.ShippingOption = &ShippingOption{
				Type:     option.Type,
				Price:    option.Price,
				Duration: option.Duration,
			}

			break
		}
	}

	return item
}
