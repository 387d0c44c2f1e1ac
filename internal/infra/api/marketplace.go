package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
)

var (
	_ service.AuthAPI          = (*Client)(nil)
	_ service.ProductAPI       = (*Client)(nil)
	_ service.PaymentMethodAPI = (*Client)(nil)
	_ service.AddressAPI       = (*Client)(nil)
	_ service.OrderAPI         = (*Client)(nil)
	_ service.CartAPI          = (*Client)(nil)
)

func (c *Client) Me(ctx context.Context, token string) (*entity.User, error) {
	var dto userDTO
	if err := c.do(ctx, http.MethodGet, c.ports.Auth, "/api/auth/me", token, nil, &dto); err != nil {
		return nil, err
	}

	return dto.toEntity(), nil
}

func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var resp loginResponse
	body := loginRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, c.ports.Auth, "/api/auth/login", "", body, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", domainerrors.ErrRemoteRequestFailed.WithDetails("login response carried no token")
	}

	return resp.Token, nil
}

func (c *Client) ChangePassword(ctx context.Context, token, currentPassword, newPassword string) error {
	body := changePasswordRequest{CurrentPassword: currentPassword, NewPassword: newPassword}

	return c.do(ctx, http.MethodPost, c.ports.Auth, "/api/auth/change-password", token, body, nil)
}

func (c *Client) DeleteAccount(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodDelete, c.ports.Auth, "/api/auth/user", token, nil, nil)
}

func (c *Client) GetProduct(ctx context.Context, productID string) (*entity.Product, error) {
	var dto productDTO
	if err := c.do(ctx, http.MethodGet, c.ports.Products, "/api/products/"+url.PathEscape(productID), "", nil, &dto); err != nil {
		return nil, err
	}

	return dto.toEntity(), nil
}

func (c *Client) ListProducts(ctx context.Context, page, size int) ([]entity.Product, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))

	return c.products(ctx, "/api/products?"+query.Encode())
}

func (c *Client) SearchProducts(ctx context.Context, query string) ([]entity.Product, error) {
	return c.products(ctx, "/api/products/search?"+url.Values{"query": {query}}.Encode())
}

func (c *Client) ProductsByCategory(ctx context.Context, categoryID string) ([]entity.Product, error) {
	return c.products(ctx, "/api/products/category/id/"+url.PathEscape(categoryID))
}

func (c *Client) products(ctx context.Context, path string) ([]entity.Product, error) {
	var page productPage
	if err := c.do(ctx, http.MethodGet, c.ports.Products, path, "", nil, &page); err != nil {
		return nil, err
	}

	return page.toEntities(), nil
}

func (c *Client) ListPaymentMethods(ctx context.Context, token, userID string) ([]entity.PaymentMethod, error) {
	var dtos []paymentMethodDTO
	path := "/api/payment-methods/user/" + url.PathEscape(userID)
	if err := c.do(ctx, http.MethodGet, c.ports.PaymentMethods, path, token, nil, &dtos); err != nil {
		return nil, err
	}

	methods := make([]entity.PaymentMethod, 0, len(dtos))
	for _, dto := range dtos {
		methods = append(methods, dto.toEntity())
	}

	return methods, nil
}

func (c *Client) AddPaymentMethod(ctx context.Context, token string, req service.SavePaymentMethodRequest) (entity.PaymentMethod, error) {
	body, err := newPaymentMethodRequest(req)
	if err != nil {
		return entity.PaymentMethod{}, err
	}

	var dto paymentMethodDTO
	if err := c.do(ctx, http.MethodPost, c.ports.PaymentMethods, "/api/payment-methods", token, body, &dto); err != nil {
		return entity.PaymentMethod{}, err
	}
	if dto.ID == "" {
		return entity.PaymentMethod{}, domainerrors.ErrRemoteRequestFailed.WithDetails("saved payment method carried no id")
	}

	// The response may echo the full account number; keep the local view.
	saved := req.Method
	saved.ID = string(dto.ID)

	return saved, nil
}

func (c *Client) UpdatePaymentMethod(ctx context.Context, token string, req service.SavePaymentMethodRequest) error {
	body, err := newPaymentMethodRequest(req)
	if err != nil {
		return err
	}

	return c.do(ctx, http.MethodPut, c.ports.PaymentMethods, "/api/payment-methods", token, body, nil)
}

func (c *Client) DeletePaymentMethod(ctx context.Context, token, methodID string) error {
	path := "/api/payment-methods/" + url.PathEscape(methodID)

	return c.do(ctx, http.MethodDelete, c.ports.PaymentMethods, path, token, nil, nil)
}

func (c *Client) ListAddresses(ctx context.Context, token, userID string) ([]entity.Address, error) {
	var dtos []addressDTO
	path := "/api/addresses/user/" + url.PathEscape(userID)
	if err := c.do(ctx, http.MethodGet, c.ports.Addresses, path, token, nil, &dtos); err != nil {
		return nil, err
	}

	addresses := make([]entity.Address, 0, len(dtos))
	for _, dto := range dtos {
		addresses = append(addresses, dto.toEntity())
	}

	return addresses, nil
}

func (c *Client) DefaultAddress(ctx context.Context, token, userID string) (*entity.Address, error) {
	var dto *addressDTO
	path := "/api/addresses/user/" + url.PathEscape(userID) + "/default"
	err := c.do(ctx, http.MethodGet, c.ports.Addresses, path, token, nil, &dto)
	if errors.Is(err, domainerrors.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if dto == nil {
		return nil, nil
	}

	address := dto.toEntity()

	return &address, nil
}

func (c *Client) AddAddress(ctx context.Context, token, userID string, address entity.Address) (*entity.Address, error) {
	address.ID = ""
	body, err := newAddressRequest(userID, address)
	if err != nil {
		return nil, err
	}

	var dto addressDTO
	if err := c.do(ctx, http.MethodPost, c.ports.Addresses, "/api/addresses", token, body, &dto); err != nil {
		return nil, err
	}
	if dto.ID == "" {
		return nil, domainerrors.ErrRemoteRequestFailed.WithDetails("saved address carried no id")
	}

	link := addressLinkRequest{UserID: userID, AddressID: string(dto.ID), IsDefault: address.IsDefault}
	if err := c.do(ctx, http.MethodPost, c.ports.Addresses, "/api/addresses/link", token, link, nil); err != nil {
		return nil, err
	}

	saved := dto.toEntity()
	saved.IsDefault = address.IsDefault

	return &saved, nil
}

func (c *Client) UpdateAddress(ctx context.Context, token string, address entity.Address) (*entity.Address, error) {
	if address.ID == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("address id is required")
	}
	body, err := newAddressRequest("", address)
	if err != nil {
		return nil, err
	}

	var dto addressDTO
	if err := c.do(ctx, http.MethodPut, c.ports.Addresses, "/api/addresses", token, body, &dto); err != nil {
		return nil, err
	}

	saved := dto.toEntity()

	return &saved, nil
}

func (c *Client) DeleteAddress(ctx context.Context, token, userID, addressID string) error {
	link := "/api/addresses/user/" + url.PathEscape(userID) + "/address/" + url.PathEscape(addressID)
	if err := c.do(ctx, http.MethodDelete, c.ports.Addresses, link, token, nil, nil); err != nil {
		return err
	}

	return c.do(ctx, http.MethodDelete, c.ports.Addresses, "/api/addresses/"+url.PathEscape(addressID), token, nil, nil)
}

func (c *Client) SetDefaultAddress(ctx context.Context, token, userID, addressID string) error {
	link := addressLinkRequest{UserID: userID, AddressID: addressID, IsDefault: true}

	return c.do(ctx, http.MethodPost, c.ports.Addresses, "/api/addresses/link", token, link, nil)
}

func (c *Client) CreateOrder(ctx context.Context, token string, req service.CreateOrderRequest) (*entity.Order, error) {
	body, err := newCreateOrderRequest(req)
	if err != nil {
		return nil, err
	}

	var dto orderDTO
	if err := c.do(ctx, http.MethodPost, c.ports.Orders, "/api/orders", token, body, &dto); err != nil {
		return nil, err
	}

	order := dto.toEntity()

	return &order, nil
}

func (c *Client) ListOrders(ctx context.Context, token, userID string) ([]entity.Order, error) {
	var dtos []orderDTO
	path := "/api/orders/user/" + url.PathEscape(userID)
	if err := c.do(ctx, http.MethodGet, c.ports.Orders, path, token, nil, &dtos); err != nil {
		return nil, err
	}

	orders := make([]entity.Order, 0, len(dtos))
	for _, dto := range dtos {
		orders = append(orders, dto.toEntity())
	}

	return orders, nil
}

func (c *Client) GetOrder(ctx context.Context, token, orderID string) (*entity.Order, error) {
	var dto orderDTO
	if err := c.do(ctx, http.MethodGet, c.ports.Orders, "/api/orders/"+url.PathEscape(orderID), token, nil, &dto); err != nil {
		return nil, err
	}

	order := dto.toEntity()

	return &order, nil
}

func (c *Client) OrderLines(ctx context.Context, token, orderID string) ([]entity.OrderLine, error) {
	var dtos []orderLineDTO
	path := "/api/orders/" + url.PathEscape(orderID) + "/lines"
	if err := c.do(ctx, http.MethodGet, c.ports.Orders, path, token, nil, &dtos); err != nil {
		return nil, err
	}

	return orderLinesToEntities(dtos), nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, token, orderID, status string) (*entity.Order, error) {
	path := "/api/orders/" + url.PathEscape(orderID) + "/status?" + url.Values{"status": {status}}.Encode()

	var dto orderDTO
	if err := c.do(ctx, http.MethodPut, c.ports.Orders, path, token, nil, &dto); err != nil {
		return nil, err
	}

	order := dto.toEntity()

	return &order, nil
}

func (c *Client) StatusHistory(ctx context.Context, token, orderID string) ([]entity.OrderStatusHistory, error) {
	var dtos []statusHistoryDTO
	path := "/api/order-status-history/order/" + url.PathEscape(orderID)
	if err := c.do(ctx, http.MethodGet, c.ports.StatusHistory, path, token, nil, &dtos); err != nil {
		return nil, err
	}

	history := make([]entity.OrderStatusHistory, 0, len(dtos))
	for _, dto := range dtos {
		history = append(history, dto.toEntity())
	}

	return history, nil
}

func (c *Client) MergeGuestCarts(ctx context.Context, token, email string, carts []entity.Cart) error {
	return c.do(ctx, http.MethodPost, c.ports.Carts, "/api/cart/merge", token, newMergeCartsRequest(email, carts), nil)
}

func (c *Client) ListCarts(ctx context.Context, token, email string) ([]entity.Cart, error) {
	var dtos []cartDTO
	if err := c.do(ctx, http.MethodGet, c.ports.Carts, "/api/cart/user/"+url.PathEscape(email), token, nil, &dtos); err != nil {
		return nil, err
	}

	carts := make([]entity.Cart, 0, len(dtos))
	for _, dto := range dtos {
		carts = append(carts, dto.toEntity())
	}

	return carts, nil
}

func (c *Client) CreateCart(ctx context.Context, token, email, name string) (*entity.Cart, error) {
	var dto cartDTO
	body := createCartRequest{Name: name, CreatedBy: email}
	if err := c.do(ctx, http.MethodPost, c.ports.Carts, "/api/cart", token, body, &dto); err != nil {
		return nil, err
	}
	if dto.ID == "" {
		return nil, domainerrors.ErrRemoteRequestFailed.WithDetails("created cart carried no id")
	}

	cart := dto.toEntity()

	return &cart, nil
}

func (c *Client) DeleteCart(ctx context.Context, token, cartID string) error {
	return c.do(ctx, http.MethodDelete, c.ports.Carts, "/api/cart/"+url.PathEscape(cartID), token, nil, nil)
}
