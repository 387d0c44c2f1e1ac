package impl

import (
	"context"
	"fmt"
	"strings"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type productService struct {
	products service.ProductAPI
}

// NewProductService creates the catalogue reader.
func NewProductService(products service.ProductAPI) usecase.ProductUsecase {
	return &productService{products: products}
}

func (s *productService) ListProducts(ctx context.Context, query usecase.ProductQuery) ([]entity.Product, error) {
	var (
		products []entity.Product
		err      error
	)
	switch {
	case strings.TrimSpace(query.Search) != "":
		products, err = s.products.SearchProducts(ctx, strings.TrimSpace(query.Search))
	case query.CategoryID != "":
		products, err = s.products.ProductsByCategory(ctx, query.CategoryID)
	default:
		page, size := pageBounds(query.Page, query.Size)
		products, err = s.products.ListProducts(ctx, page, size)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return products, nil
}

func (s *productService) GetProduct(ctx context.Context, productID string) (*entity.Product, error) {
	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return product, nil
}

func pageBounds(page, size int) (int, int) {
	page = max(page, 0)
	switch {
	case size <= 0:
		size = defaultPageSize
	case size > maxPageSize:
		size = maxPageSize
	}

	return page, size
}
