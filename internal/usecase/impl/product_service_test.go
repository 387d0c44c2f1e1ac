package impl

import (
	"context"
	"testing"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/errors"
	mockService "storefront/internal/mocks/service"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductService_ListProducts(t *testing.T) {
	ctx := context.Background()
	page := []entity.Product{{ID: "42", Name: "Sneakers"}}

	tests := []struct {
		name   string
		query  usecase.ProductQuery
		expect func(products *mockService.MockProductAPI)
	}{
		{
			name:  "search wins over category",
			query: usecase.ProductQuery{Search: " shoes ", CategoryID: "3"},
			expect: func(products *mockService.MockProductAPI) {
				products.EXPECT().SearchProducts(ctx, "shoes").Return(page, nil)
			},
		},
		{
			name:  "category",
			query: usecase.ProductQuery{CategoryID: "3"},
			expect: func(products *mockService.MockProductAPI) {
				products.EXPECT().ProductsByCategory(ctx, "3").Return(page, nil)
			},
		},
		{
			name:  "default page size",
			query: usecase.ProductQuery{Page: -1},
			expect: func(products *mockService.MockProductAPI) {
				products.EXPECT().ListProducts(ctx, 0, defaultPageSize).Return(page, nil)
			},
		},
		{
			name:  "page size is capped",
			query: usecase.ProductQuery{Page: 2, Size: 500},
			expect: func(products *mockService.MockProductAPI) {
				products.EXPECT().ListProducts(ctx, 2, maxPageSize).Return(page, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products := mockService.NewMockProductAPI(t)
			tt.expect(products)

			got, err := NewProductService(products).ListProducts(ctx, tt.query)
			require.NoError(t, err)
			assert.Equal(t, page, got)
		})
	}
}

func TestProductService_GetProduct(t *testing.T) {
	ctx := context.Background()
	products := mockService.NewMockProductAPI(t)
	service := NewProductService(products)

	products.EXPECT().GetProduct(ctx, "42").Return(&entity.Product{ID: "42"}, nil)
	product, err := service.GetProduct(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, "42", product.ID)

	products.EXPECT().GetProduct(ctx, "7").Return(nil, domainerrors.ErrNotFound)
	_, err = service.GetProduct(ctx, "7")
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}
