package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"storefront/config"
	apimiddleware "storefront/internal/delivery/api/middleware"
	"storefront/internal/delivery/api/router"
	"storefront/internal/delivery/api/router/handler"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	"storefront/internal/infra/qrcode"
	"storefront/internal/infra/storage"
	mockService "storefront/internal/mocks/service"
	"storefront/internal/usecase"
	"storefront/internal/usecase/impl"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// apiFixtures wires the real stores over in-memory storage with mocked
// marketplace services.
type apiFixtures struct {
	echo          *echo.Echo
	carts         usecase.CartUsecase
	payments      usecase.PaymentMethodUsecase
	decoder       *mockService.MockTokenDecoder
	auth          *mockService.MockAuthAPI
	products      *mockService.MockProductAPI
	remoteMethods *mockService.MockPaymentMethodAPI
	addresses     *mockService.MockAddressAPI
	orders        *mockService.MockOrderAPI
	countries     *mockService.MockCountryService
}

func createTestAPI(t *testing.T) apiFixtures {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{QRCode: &config.QRCodeConfig{Size: 128}}

	store, err := storage.NewBlobStorage(context.Background(), "mem://")
	require.NoError(t, err)
	writer := storage.NewQueueWriter(store, logger, time.Second, 16)
	t.Cleanup(func() { _ = writer.Close(context.Background()) })

	decoder := mockService.NewMockTokenDecoder(t)
	auth := mockService.NewMockAuthAPI(t)
	products := mockService.NewMockProductAPI(t)
	remoteMethods := mockService.NewMockPaymentMethodAPI(t)
	addresses := mockService.NewMockAddressAPI(t)
	orders := mockService.NewMockOrderAPI(t)
	countries := mockService.NewMockCountryService(t)
	remoteCarts := mockService.NewMockCartAPI(t)

	carts := impl.NewCartService(store, writer, products, remoteCarts, qrcode.NewQRCodeService(cfg), logger)
	checkout := impl.NewCheckoutService(store, writer, carts, orders, logger)
	payments := impl.NewPaymentMethodService(store, writer, remoteMethods, logger)
	sessions := impl.NewSessionService(decoder, auth, writer, carts, checkout, payments, logger)

	routes := router.NewRouter(router.RouterParams{
		CartHandler: handler.NewCartHandler(handler.CartHandlerParams{CartUC: carts, Logger: logger}),
		CheckoutHandler: handler.NewCheckoutHandler(handler.CheckoutHandlerParams{
			CheckoutUC:      checkout,
			CartUC:          carts,
			PaymentMethodUC: payments,
			Logger:          logger,
		}),
		PaymentMethodHandler: handler.NewPaymentMethodHandler(handler.PaymentMethodHandlerParams{PaymentMethodUC: payments}),
		SessionHandler:       handler.NewSessionHandler(handler.SessionHandlerParams{SessionUC: sessions}),
		OrderHandler: handler.NewOrderHandler(handler.OrderHandlerParams{
			OrderUC:   impl.NewOrderService(orders),
			AddressUC: impl.NewAddressService(addresses),
		}),
		ProductHandler:    handler.NewProductHandler(handler.ProductHandlerParams{ProductUC: impl.NewProductService(products)}),
		CountryHandler:    handler.NewCountryHandler(handler.CountryHandlerParams{Countries: countries}),
		ValidationHandler: handler.NewValidationHandler(),
		SessionMiddleware: apimiddleware.NewSessionMiddleware(sessions),
	})

	return apiFixtures{
		echo:          NewEcho(cfg, logger, routes),
		carts:         carts,
		payments:      payments,
		decoder:       decoder,
		auth:          auth,
		products:      products,
		remoteMethods: remoteMethods,
		addresses:     addresses,
		orders:        orders,
		countries:     countries,
	}
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
	Meta struct {
		RequestID string `json:"request_id"`
	} `json:"meta"`
}

func (app apiFixtures) do(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	app.echo.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 && strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}

	return rec, env
}

// signIn starts a session for user 5 without an email, so carts stay local.
func (app apiFixtures) signIn(t *testing.T) {
	t.Helper()

	app.decoder.EXPECT().Decode("tok").Return(&service.TokenClaims{Subject: "5", Role: "buyer"}, nil).Once()
	rec, _ := app.do(t, http.MethodPost, "/session", `{"token":"tok"}`)
	require.Equal(t, http.StatusOK, rec.Code)
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(raw, &out))

	return out
}

func TestAPI_Health(t *testing.T) {
	app := createTestAPI(t)

	rec, env := app.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, env.Meta.RequestID)
	assert.Equal(t, env.Meta.RequestID, rec.Header().Get("X-Request-Id"))
}

func TestAPI_CartLifecycle(t *testing.T) {
	app := createTestAPI(t)

	rec, env := app.do(t, http.MethodPost, "/carts", `{"name":"Party"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	party := decode[entity.Cart](t, env.Data)
	assert.Equal(t, party.ID, app.carts.SelectedCartID())

	rec, _ = app.do(t, http.MethodPost, "/carts/"+party.ID+"/items",
		`{"id":"a","name":"Sneakers","quantity":2,"price":50,"oldPrice":"65","shippingOption":{"type":"Express","price":9.99}}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env = app.do(t, http.MethodPatch, "/carts/"+party.ID+"/items/a", `{"delta":-5}`)
	require.Equal(t, http.StatusOK, rec.Code)
	cart := decode[entity.Cart](t, env.Data)
	assert.Equal(t, 1, cart.Items[0].Quantity)

	rec, env = app.do(t, http.MethodGet, "/carts/"+party.ID+"/totals", "")
	require.Equal(t, http.StatusOK, rec.Code)
	totals := decode[entity.CartTotals](t, env.Data)
	assert.Equal(t, "59.99", totals.Total.StringFixed(2))
	assert.Equal(t, "15.00", totals.Savings.StringFixed(2))

	rec, _ = app.do(t, http.MethodGet, "/carts/"+party.ID+"/invite-qr", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
	assert.NotEmpty(t, rec.Body.Bytes())

	rec, _ = app.do(t, http.MethodDelete, "/carts/"+party.ID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, entity.DefaultCartID, app.carts.SelectedCartID())
}

func TestAPI_CartErrors(t *testing.T) {
	app := createTestAPI(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		code   string
	}{
		{name: "unknown cart", method: http.MethodGet, path: "/carts/missing", status: http.StatusNotFound, code: "CART_NOT_FOUND"},
		{name: "default cart protected", method: http.MethodDelete, path: "/carts/default", status: http.StatusConflict, code: "DEFAULT_CART_PROTECTED"},
		{name: "missing name", method: http.MethodPost, path: "/carts", body: `{}`, status: http.StatusBadRequest, code: "VALIDATION_FAILED"},
		{name: "item for unknown cart", method: http.MethodPost, path: "/carts/missing/items", body: `{"id":"a","name":"A"}`, status: http.StatusNotFound, code: "CART_NOT_FOUND"},
		{name: "malformed body", method: http.MethodPost, path: "/carts", body: `{`, status: http.StatusBadRequest, code: "INVALID_INPUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := app.do(t, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, rec.Code)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.code, env.Error.Code)
		})
	}
}

func TestAPI_SessionRequired(t *testing.T) {
	app := createTestAPI(t)

	for _, path := range []string{"/orders", "/orders/3/lines", "/addresses", "/session/me"} {
		rec, env := app.do(t, http.MethodGet, path, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
		require.NotNil(t, env.Error)
		assert.Equal(t, "NOT_LOGGED_IN", env.Error.Code)
	}
}

func TestAPI_Checkout(t *testing.T) {
	app := createTestAPI(t)
	app.signIn(t)
	app.remoteMethods.EXPECT().AddPaymentMethod(mock.Anything, "tok", mock.AnythingOfType("service.SavePaymentMethodRequest")).
		Return(entity.PaymentMethod{ID: "11"}, nil)

	rec, env := app.do(t, http.MethodPost, "/payment-methods", `{"kind":"mobile-money","network":"MTN","phone":"0241234567","isDefault":true}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	method := decode[entity.PaymentMethod](t, env.Data)
	assert.Equal(t, "11", method.ID)

	rec, _ = app.do(t, http.MethodPut, "/checkout/address",
		`{"name":"Ama Mensah","phone":"+233 24 123 4567","street":"12 Oxford St","city":"Accra","country":"Ghana"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env = app.do(t, http.MethodPut, "/checkout/payment-method", `{"paymentMethodId":"`+method.ID+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"complete":true`)

	rec, env = app.do(t, http.MethodPost, "/checkout/orders", `{}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "CART_EMPTY", env.Error.Code)

	app.carts.AddItemToCart(entity.DefaultCartID, entity.CartItem{ID: "a", ProductItemID: "42", Name: "Sneakers", Quantity: 1})
	app.orders.EXPECT().CreateOrder(mock.Anything, "tok", mock.AnythingOfType("service.CreateOrderRequest")).
		Return(&entity.Order{ID: "900", Status: "PENDING"}, nil)

	rec, env = app.do(t, http.MethodPost, "/checkout/orders", `{}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	order := decode[entity.Order](t, env.Data)
	assert.Equal(t, "900", order.ID)

	rec, env = app.do(t, http.MethodGet, "/checkout", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"complete":false`)
}

func TestAPI_PaymentMethodValidation(t *testing.T) {
	app := createTestAPI(t)

	rec, env := app.do(t, http.MethodPost, "/payment-methods", `{"kind":"card-network","number":"4111111111111112","expiry":"12-99","cvv":"123"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
	assert.Empty(t, app.payments.List())

	rec, env = app.do(t, http.MethodPut, "/checkout/payment-method", `{"paymentMethodId":"missing"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "PAYMENT_METHOD_NOT_FOUND", env.Error.Code)
}

func TestAPI_ValidateEndpoints(t *testing.T) {
	app := createTestAPI(t)

	tests := []struct {
		name   string
		path   string
		body   string
		status int
	}{
		{name: "valid card", path: "/validate/card", body: `{"number":"4111 1111 1111 1111"}`, status: http.StatusOK},
		{name: "bad card", path: "/validate/card", body: `{"number":"4111 1111 1111 1112"}`, status: http.StatusBadRequest},
		{name: "amex cvv", path: "/validate/cvv", body: `{"number":"378282246310005","cvv":"123"}`, status: http.StatusBadRequest},
		{name: "momo", path: "/validate/mobile-money", body: `{"network":"MTN","phone":"0241234567"}`, status: http.StatusOK},
		{name: "momo wrong network", path: "/validate/mobile-money", body: `{"network":"Vodafone","phone":"0241234567"}`, status: http.StatusBadRequest},
		{name: "id document", path: "/validate/id-document", body: `{"number":"123456789","type":"ssn","country":"United States"}`, status: http.StatusOK},
		{name: "phone", path: "/validate/phone", body: `{"phone":"12"}`, status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _ := app.do(t, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}

	rec, env := app.do(t, http.MethodPost, "/validate/card", `{"number":"4111 1111 1111 1112"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, string(env.Error.Details), `"field":"number"`)
}

func TestAPI_Countries(t *testing.T) {
	app := createTestAPI(t)

	app.countries.EXPECT().Countries(mock.Anything).Return(nil, domainerrors.ErrRemoteUnavailable).Once()
	rec, env := app.do(t, http.MethodGet, "/countries", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "REMOTE_UNAVAILABLE", env.Error.Code)

	app.countries.EXPECT().Countries(mock.Anything).Return([]entity.Country{{Name: "Ghana", Code: "GH", DialCode: "+233"}}, nil).Once()
	rec, env = app.do(t, http.MethodGet, "/countries", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Ghana", decode[[]entity.Country](t, env.Data)[0].Name)
}

func TestAPI_SessionCredentials(t *testing.T) {
	app := createTestAPI(t)

	rec, env := app.do(t, http.MethodPost, "/session", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)

	rec, env = app.do(t, http.MethodPost, "/session", `{"email":"ama@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)

	app.auth.EXPECT().Login(mock.Anything, "ama@example.com", "wrong").Return("", domainerrors.ErrInvalidToken).Once()
	rec, env = app.do(t, http.MethodPost, "/session", `{"email":"ama@example.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", env.Error.Code)

	app.auth.EXPECT().Login(mock.Anything, "ama@example.com", "secret").Return("tok", nil).Once()
	app.decoder.EXPECT().Decode("tok").Return(&service.TokenClaims{Subject: "5"}, nil).Once()
	rec, env = app.do(t, http.MethodPost, "/session", `{"email":"ama@example.com","password":"secret"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "5", decode[entity.Session](t, env.Data).UserID)

	rec, _ = app.do(t, http.MethodPut, "/session/password", `{"currentPassword":"secret","newPassword":"abc"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	app.auth.EXPECT().ChangePassword(mock.Anything, "tok", "secret", "longer-secret").Return(nil)
	rec, _ = app.do(t, http.MethodPut, "/session/password", `{"currentPassword":"secret","newPassword":"longer-secret"}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	app.auth.EXPECT().DeleteAccount(mock.Anything, "tok").Return(nil)
	rec, _ = app.do(t, http.MethodDelete, "/session/account", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec, _ = app.do(t, http.MethodGet, "/session", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAPI_AddressBook(t *testing.T) {
	app := createTestAPI(t)
	app.signIn(t)
	body := `{"name":"Ama Mensah","phone":"+233 24 123 4567","street":"12 Oxford St","city":"Accra","country":"Ghana"}`

	app.addresses.EXPECT().AddAddress(mock.Anything, "tok", "5", mock.MatchedBy(func(a entity.Address) bool {
		return a.Street == "12 Oxford St" && a.ID == ""
	})).Return(&entity.Address{ID: "31", Street: "12 Oxford St"}, nil)
	rec, env := app.do(t, http.MethodPost, "/addresses", body)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "31", decode[entity.Address](t, env.Data).ID)

	app.addresses.EXPECT().UpdateAddress(mock.Anything, "tok", mock.MatchedBy(func(a entity.Address) bool {
		return a.ID == "31"
	})).Return(&entity.Address{ID: "31", Street: "12 Oxford St"}, nil)
	rec, _ = app.do(t, http.MethodPut, "/addresses/31", body)
	assert.Equal(t, http.StatusOK, rec.Code)

	app.addresses.EXPECT().SetDefaultAddress(mock.Anything, "tok", "5", "31").Return(nil)
	rec, _ = app.do(t, http.MethodPut, "/addresses/31/default", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	app.addresses.EXPECT().DeleteAddress(mock.Anything, "tok", "5", "31").Return(nil)
	rec, _ = app.do(t, http.MethodDelete, "/addresses/31", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec, env = app.do(t, http.MethodPost, "/addresses", `{"name":"Ama"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
}

func TestAPI_OrderUpdates(t *testing.T) {
	app := createTestAPI(t)
	app.signIn(t)

	app.orders.EXPECT().OrderLines(mock.Anything, "tok", "3").Return([]entity.OrderLine{{ID: "1", ProductItemID: "42", Quantity: 2}}, nil)
	rec, env := app.do(t, http.MethodGet, "/orders/3/lines", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]entity.OrderLine](t, env.Data), 1)

	rec, env = app.do(t, http.MethodPut, "/orders/3/status", `{"status":"lost"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)

	app.orders.EXPECT().UpdateOrderStatus(mock.Anything, "tok", "3", "CANCELLED").Return(&entity.Order{ID: "3", Status: "CANCELLED"}, nil)
	rec, env = app.do(t, http.MethodPut, "/orders/3/status", `{"status":"cancelled"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"tone":"danger"`)
}

func TestAPI_Products(t *testing.T) {
	app := createTestAPI(t)
	shoes := []entity.Product{{ID: "42", Name: "Sneakers"}}

	app.products.EXPECT().SearchProducts(mock.Anything, "shoes").Return(shoes, nil)
	rec, env := app.do(t, http.MethodGet, "/products?q=shoes", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Sneakers", decode[[]entity.Product](t, env.Data)[0].Name)

	app.products.EXPECT().ListProducts(mock.Anything, 1, 10).Return(shoes, nil)
	rec, _ = app.do(t, http.MethodGet, "/products?page=1&size=10", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = app.do(t, http.MethodGet, "/products?size=1000", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	app.products.EXPECT().GetProduct(mock.Anything, "42").Return(&shoes[0], nil)
	rec, env = app.do(t, http.MethodGet, "/products/42", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "42", decode[entity.Product](t, env.Data).ID)
}
