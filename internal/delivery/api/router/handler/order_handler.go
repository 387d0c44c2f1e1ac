package handler

import (
	"net/http"

	"storefront/internal/delivery/api/response"
	"storefront/internal/domain/entity"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// OrderHandlerParams holds dependencies for OrderHandler, injected by Fx.
type OrderHandlerParams struct {
	fx.In

	OrderUC   usecase.OrderUsecase
	AddressUC usecase.AddressUsecase
}

// OrderHandler serves the signed-in user's orders and address book.
type OrderHandler struct {
	orderUC   usecase.OrderUsecase
	addressUC usecase.AddressUsecase
}

func NewOrderHandler(params OrderHandlerParams) *OrderHandler {
	return &OrderHandler{
		orderUC:   params.OrderUC,
		addressUC: params.AddressUC,
	}
}

type orderView struct {
	entity.Order
	Tone entity.StatusTone `json:"tone"`
}

type historyResponse struct {
	History  []entity.OrderStatusHistory `json:"history"`
	Timeline []entity.TimelineEntry      `json:"timeline"`
}

func (h *OrderHandler) ListOrders(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	orders, err := h.orderUC.ListOrders(c.Request().Context(), session.Token, session.UserID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	views := make([]orderView, 0, len(orders))
	for _, order := range orders {
		views = append(views, orderView{Order: order, Tone: entity.ToneForStatus(order.Status)})
	}

	return response.Success(c, http.StatusOK, views)
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	order, err := h.orderUC.GetOrder(c.Request().Context(), session.Token, c.Param("id"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, orderView{Order: *order, Tone: entity.ToneForStatus(order.Status)})
}

func (h *OrderHandler) StatusHistory(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	history, err := h.orderUC.StatusHistory(c.Request().Context(), session.Token, c.Param("id"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, historyResponse{
		History:  history,
		Timeline: entity.Timeline(history),
	})
}

func (h *OrderHandler) ListAddresses(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	addresses, err := h.addressUC.ListAddresses(c.Request().Context(), session.Token, session.UserID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, addresses)
}

// DefaultAddress answers 204 when the user has no default address.
func (h *OrderHandler) DefaultAddress(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	address, err := h.addressUC.DefaultAddress(c.Request().Context(), session.Token, session.UserID)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	if address == nil {
		return c.NoContent(http.StatusNoContent)
	}

	return response.Success(c, http.StatusOK, address)
}

func (h *OrderHandler) OrderLines(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	lines, err := h.orderUC.OrderLines(c.Request().Context(), session.Token, c.Param("id"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, lines)
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *OrderHandler) UpdateOrderStatus(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req UpdateOrderStatusRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	order, err := h.orderUC.UpdateOrderStatus(c.Request().Context(), session.Token, c.Param("id"), req.Status)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, orderView{Order: *order, Tone: entity.ToneForStatus(order.Status)})
}

func (h *OrderHandler) AddAddress(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req AddressRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	address, err := h.addressUC.AddAddress(c.Request().Context(), session.Token, session.UserID, *req.toEntity())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, address)
}

// UpdateAddress takes the address id from the path, not the body.
func (h *OrderHandler) UpdateAddress(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req AddressRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}
	req.ID = c.Param("id")

	address, err := h.addressUC.UpdateAddress(c.Request().Context(), session.Token, *req.toEntity())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, address)
}

func (h *OrderHandler) DeleteAddress(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.addressUC.DeleteAddress(c.Request().Context(), session.Token, session.UserID, c.Param("id")); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *OrderHandler) SetDefaultAddress(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.addressUC.SetDefaultAddress(c.Request().Context(), session.Token, session.UserID, c.Param("id")); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
