package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// ProductQuery selects a catalogue listing. Search wins over CategoryID,
// and paging only applies when neither is set.
type ProductQuery struct {
	Search     string
	CategoryID string
	Page       int
	Size       int
}

// ProductUsecase browses the product catalogue.
type ProductUsecase interface {
	ListProducts(ctx context.Context, query ProductQuery) ([]entity.Product, error)
	GetProduct(ctx context.Context, productID string) (*entity.Product, error)
}
