package handler

import (
	"log/slog"
	"net/http"

	"storefront/internal/delivery/api/response"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// CartHandlerParams holds dependencies for CartHandler, injected by Fx.
type CartHandlerParams struct {
	fx.In

	CartUC usecase.CartUsecase
	Logger *slog.Logger
}

// CartHandler serves the multi-cart store.
type CartHandler struct {
	cartUC usecase.CartUsecase
	logger *slog.Logger
}

func NewCartHandler(params CartHandlerParams) *CartHandler {
	return &CartHandler{
		cartUC: params.CartUC,
		logger: params.Logger,
	}
}

type CartNameRequest struct {
	Name string `json:"name" validate:"required,max=60"`
}

type SelectCartRequest struct {
	CartID string `json:"cartId" validate:"required"`
}

type ShippingOptionRequest struct {
	Type     string          `json:"type" validate:"required"`
	Price    decimal.Decimal `json:"price"`
	Duration string          `json:"duration"`
}

type AddItemRequest struct {
	ID             string                 `json:"id" validate:"required"`
	ProductItemID  string                 `json:"productItemId"`
	Name           string                 `json:"name" validate:"required"`
	Title          string                 `json:"title"`
	Image          string                 `json:"image"`
	Color          string                 `json:"color"`
	Size           string                 `json:"size"`
	Quantity       int                    `json:"quantity"`
	Price          decimal.Decimal        `json:"price"`
	OldPrice       decimal.Decimal        `json:"oldPrice"`
	ShippingOption *ShippingOptionRequest `json:"shippingOption"`
}

func (r *AddItemRequest) toEntity() entity.CartItem {
	item := entity.CartItem{
		ID:            r.ID,
		ProductItemID: r.ProductItemID,
		Name:          r.Name,
		Title:         r.Title,
		Image:         r.Image,
		Color:         r.Color,
		Size:          r.Size,
		Quantity:      r.Quantity,
		Price:         r.Price,
		OldPrice:      r.OldPrice,
	}
	if r.ShippingOption != nil {
		item.ShippingOption = &entity.ShippingOption{
			Type:     r.ShippingOption.Type,
			Price:    r.ShippingOption.Price,
			Duration: r.ShippingOption.Duration,
		}
	}

	return item
}

type AddProductRequest struct {
	ProductID    string `json:"productId" validate:"required"`
	Quantity     int    `json:"quantity"`
	Color        string `json:"color"`
	Size         string `json:"size"`
	ShippingType string `json:"shippingType"`
}

type UpdateQuantityRequest struct {
	Delta int `json:"delta"`
}

type InvitePersonRequest struct {
	Person string `json:"person" validate:"required,max=254"`
}

type InviteCodeRequest struct {
	QRData string `json:"qrData" validate:"required"`
}

type cartsResponse struct {
	Carts          []entity.Cart `json:"carts"`
	SelectedCartID string        `json:"selectedCartId"`
}

// ListCarts returns every cart with the current selection.
func (h *CartHandler) ListCarts(c echo.Context) error {
	return response.Success(c, http.StatusOK, cartsResponse{
		Carts:          h.cartUC.Carts(),
		SelectedCartID: h.cartUC.SelectedCartID(),
	})
}

func (h *CartHandler) CreateCart(c echo.Context) error {
	var req CartNameRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	cart, err := h.cartUC.AddCart(c.Request().Context(), req.Name)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, cart)
}

func (h *CartHandler) GetCart(c echo.Context) error {
	cart, err := h.cartUC.Cart(c.Param("id"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, cart)
}

func (h *CartHandler) RenameCart(c echo.Context) error {
	var req CartNameRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	if err := h.cartUC.RenameCart(c.Param("id"), req.Name); err != nil {
		return response.HandleAppError(c, err)
	}

	return h.GetCart(c)
}

// DeleteCart removes a cart. The default cart answers 409.
func (h *CartHandler) DeleteCart(c echo.Context) error {
	cartID := c.Param("id")
	if cartID == entity.DefaultCartID {
		return response.HandleAppError(c, domainerrors.ErrDefaultCartProtected)
	}

	if _, err := h.cartUC.Cart(cartID); err != nil {
		return response.HandleAppError(c, err)
	}
	if err := h.cartUC.RemoveCart(c.Request().Context(), cartID); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *CartHandler) GetSelectedCart(c echo.Context) error {
	return response.Success(c, http.StatusOK, h.cartUC.SelectedCart())
}

func (h *CartHandler) SelectCart(c echo.Context) error {
	var req SelectCartRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	h.cartUC.SetSelectedCartID(req.CartID)

	return response.Success(c, http.StatusOK, h.cartUC.SelectedCart())
}

func (h *CartHandler) AddItem(c echo.Context) error {
	cartID := c.Param("id")
	if _, err := h.cartUC.Cart(cartID); err != nil {
		return response.HandleAppError(c, err)
	}

	var req AddItemRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	h.cartUC.AddItemToCart(cartID, req.toEntity())

	return h.respondCart(c, cartID, http.StatusCreated)
}

// AddProduct looks the product up in the catalogue and adds it as a line.
func (h *CartHandler) AddProduct(c echo.Context) error {
	var req AddProductRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	item, err := h.cartUC.AddProductToCart(c.Request().Context(), c.Param("id"), req.ProductID, entity.ItemSelection{
		Quantity:     req.Quantity,
		Color:        req.Color,
		Size:         req.Size,
		ShippingType: req.ShippingType,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, item)
}

func (h *CartHandler) UpdateItemQuantity(c echo.Context) error {
	var req UpdateQuantityRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	cartID := c.Param("id")
	h.cartUC.UpdateItemQuantity(cartID, c.Param("itemId"), req.Delta)

	return h.respondCart(c, cartID, http.StatusOK)
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	cartID := c.Param("id")
	h.cartUC.RemoveItem(cartID, c.Param("itemId"))

	return h.respondCart(c, cartID, http.StatusOK)
}

func (h *CartHandler) ClearCart(c echo.Context) error {
	cartID := c.Param("id")
	h.cartUC.ClearCart(cartID)

	return h.respondCart(c, cartID, http.StatusOK)
}

func (h *CartHandler) InvitePerson(c echo.Context) error {
	var req InvitePersonRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	cartID := c.Param("id")
	h.cartUC.InvitePerson(cartID, req.Person)

	return h.respondCart(c, cartID, http.StatusOK)
}

func (h *CartHandler) RemovePerson(c echo.Context) error {
	cartID := c.Param("id")
	h.cartUC.HandleRemovePerson(cartID, c.Param("person"))

	return h.respondCart(c, cartID, http.StatusOK)
}

func (h *CartHandler) Totals(c echo.Context) error {
	totals, err := h.cartUC.Totals(c.Param("id"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, totals)
}

// InviteQR returns the cart's invite code as a PNG image.
func (h *CartHandler) InviteQR(c echo.Context) error {
	png, err := h.cartUC.InviteCode(c.Param("id"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

// JoinByInvite selects the cart named by a scanned invite code.
func (h *CartHandler) JoinByInvite(c echo.Context) error {
	var req InviteCodeRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	cart, err := h.cartUC.SelectByInviteCode(req.QRData)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, cart)
}

func (h *CartHandler) respondCart(c echo.Context, cartID string, status int) error {
	cart, err := h.cartUC.Cart(cartID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, status, cart)
}
