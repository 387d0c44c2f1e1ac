package handler

import (
	"net/http"

	"storefront/internal/delivery/api/response"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ProductHandlerParams holds dependencies for ProductHandler, injected by Fx.
type ProductHandlerParams struct {
	fx.In

	ProductUC usecase.ProductUsecase
}

// ProductHandler serves the product catalogue.
type ProductHandler struct {
	productUC usecase.ProductUsecase
}

func NewProductHandler(params ProductHandlerParams) *ProductHandler {
	return &ProductHandler{productUC: params.ProductUC}
}

type ListProductsRequest struct {
	Query      string `query:"q" validate:"max=200"`
	CategoryID string `query:"categoryId"`
	Page       int    `query:"page" validate:"min=0"`
	Size       int    `query:"size" validate:"min=0,max=100"`
}

func (h *ProductHandler) ListProducts(c echo.Context) error {
	var req ListProductsRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	products, err := h.productUC.ListProducts(c.Request().Context(), usecase.ProductQuery{
		Search:     req.Query,
		CategoryID: req.CategoryID,
		Page:       req.Page,
		Size:       req.Size,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, products)
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	product, err := h.productUC.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, product)
}
