package handler

import (
	"net/http"

	"storefront/internal/delivery/api/response"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// PaymentMethodHandlerParams holds dependencies for PaymentMethodHandler, injected by Fx.
type PaymentMethodHandlerParams struct {
	fx.In

	PaymentMethodUC usecase.PaymentMethodUsecase
}

// PaymentMethodHandler serves the saved payment methods.
type PaymentMethodHandler struct {
	paymentMethodUC usecase.PaymentMethodUsecase
}

func NewPaymentMethodHandler(params PaymentMethodHandlerParams) *PaymentMethodHandler {
	return &PaymentMethodHandler{paymentMethodUC: params.PaymentMethodUC}
}

func (h *PaymentMethodHandler) List(c echo.Context) error {
	return response.Success(c, http.StatusOK, h.paymentMethodUC.List())
}

// Add validates a card or wallet and saves it. Card numbers and security
// codes are never echoed back.
func (h *PaymentMethodHandler) Add(c echo.Context) error {
	var input usecase.NewPaymentMethodInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Request body could not be read")
	}

	method, err := h.paymentMethodUC.Add(c.Request().Context(), input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, method)
}

func (h *PaymentMethodHandler) Remove(c echo.Context) error {
	if err := h.paymentMethodUC.Remove(c.Request().Context(), c.Param("id")); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *PaymentMethodHandler) SetDefault(c echo.Context) error {
	if err := h.paymentMethodUC.SetDefault(c.Request().Context(), c.Param("id")); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, h.paymentMethodUC.List())
}

// Sync replaces the saved methods with the ones on the signed-in account.
func (h *PaymentMethodHandler) Sync(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	methods, err := h.paymentMethodUC.Sync(c.Request().Context(), session.Token, session.UserID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, methods)
}
