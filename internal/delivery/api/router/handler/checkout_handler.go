package handler

import (
	"log/slog"
	"net/http"

	"storefront/internal/delivery/api/response"
	"storefront/internal/domain/entity"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// CheckoutHandlerParams holds dependencies for CheckoutHandler, injected by Fx.
type CheckoutHandlerParams struct {
	fx.In

	CheckoutUC      usecase.CheckoutUsecase
	CartUC          usecase.CartUsecase
	PaymentMethodUC usecase.PaymentMethodUsecase
	Logger          *slog.Logger
}

// CheckoutHandler serves the checkout selection and order placement.
type CheckoutHandler struct {
	checkoutUC      usecase.CheckoutUsecase
	cartUC          usecase.CartUsecase
	paymentMethodUC usecase.PaymentMethodUsecase
	logger          *slog.Logger
}

func NewCheckoutHandler(params CheckoutHandlerParams) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutUC:      params.CheckoutUC,
		cartUC:          params.CartUC,
		paymentMethodUC: params.PaymentMethodUC,
		logger:          params.Logger,
	}
}

type AddressRequest struct {
	ID          string `json:"id"`
	Name        string `json:"name" validate:"required,max=100"`
	Phone       string `json:"phone" validate:"required,phone"`
	Street      string `json:"street" validate:"required"`
	City        string `json:"city" validate:"required"`
	Region      string `json:"region"`
	PostalCode  string `json:"postalCode"`
	Country     string `json:"country"`
	CountryID   int64  `json:"countryId"`
	CountryCode string `json:"countryCode"`
	IsDefault   bool   `json:"isDefault"`
}

func (r *AddressRequest) toEntity() *entity.Address {
	return &entity.Address{
		ID:          r.ID,
		Name:        r.Name,
		Phone:       r.Phone,
		Street:      r.Street,
		City:        r.City,
		Region:      r.Region,
		PostalCode:  r.PostalCode,
		Country:     r.Country,
		CountryID:   r.CountryID,
		CountryCode: r.CountryCode,
		IsDefault:   r.IsDefault,
	}
}

type SelectPaymentMethodRequest struct {
	PaymentMethodID string `json:"paymentMethodId" validate:"required"`
}

type PlaceOrderRequest struct {
	CartID           string `json:"cartId"`
	ShippingMethodID string `json:"shippingMethodId"`
}

type checkoutResponse struct {
	entity.CheckoutSelection
	Complete bool `json:"complete"`
}

func (h *CheckoutHandler) GetCheckout(c echo.Context) error {
	selection := h.checkoutUC.Selection()

	return response.Success(c, http.StatusOK, checkoutResponse{
		CheckoutSelection: selection,
		Complete:          selection.Complete(),
	})
}

func (h *CheckoutHandler) ClearCheckout(c echo.Context) error {
	h.checkoutUC.ClearCheckoutData()

	return c.NoContent(http.StatusNoContent)
}

func (h *CheckoutHandler) SetAddress(c echo.Context) error {
	var req AddressRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	h.checkoutUC.SetAddress(req.toEntity())

	return h.GetCheckout(c)
}

func (h *CheckoutHandler) ClearAddress(c echo.Context) error {
	h.checkoutUC.ClearAddress()

	return h.GetCheckout(c)
}

// SetPaymentMethod selects one of the saved payment methods for checkout.
func (h *CheckoutHandler) SetPaymentMethod(c echo.Context) error {
	var req SelectPaymentMethodRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	method, err := h.paymentMethodUC.Get(req.PaymentMethodID)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	h.checkoutUC.SetPaymentMethod(&method)

	return h.GetCheckout(c)
}

func (h *CheckoutHandler) ClearPaymentMethod(c echo.Context) error {
	h.checkoutUC.ClearPaymentMethod()

	return h.GetCheckout(c)
}

// PlaceOrder submits a cart, the selected one when no cart is named.
func (h *CheckoutHandler) PlaceOrder(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req PlaceOrderRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}
	if req.CartID == "" {
		req.CartID = h.cartUC.SelectedCart().ID
	}

	order, err := h.checkoutUC.PlaceOrder(c.Request().Context(), usecase.PlaceOrderInput{
		Token:            session.Token,
		UserID:           session.UserID,
		CartID:           req.CartID,
		ShippingMethodID: req.ShippingMethodID,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	h.logger.Info("Checkout completed", slog.String("order_id", order.ID), slog.String("user_id", session.UserID))

	return response.Success(c, http.StatusCreated, order)
}
