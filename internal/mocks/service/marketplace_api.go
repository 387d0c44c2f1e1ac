// Package service holds testify mocks for the domain service interfaces.
package service

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockAuthAPI is a mock of service.AuthAPI.
type MockAuthAPI struct {
	mock.Mock
}

type MockAuthAPI_Expecter struct {
	mock *mock.Mock
}

func NewMockAuthAPI(t testingT) *MockAuthAPI {
	m := &MockAuthAPI{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (_m *MockAuthAPI) EXPECT() *MockAuthAPI_Expecter {
	return &MockAuthAPI_Expecter{mock: &_m.Mock}
}

func (_m *MockAuthAPI) Me(ctx context.Context, token string) (*entity.User, error) {
	ret := _m.Called(ctx, token)

	r0, _ := ret.Get(0).(*entity.User)

	return r0, ret.Error(1)
}

func (_e *MockAuthAPI_Expecter) Me(ctx, token any) *mock.Call {
	return _e.mock.On("Me", ctx, token)
}

func (_m *MockAuthAPI) Login(ctx context.Context, email string, password string) (string, error) {
	ret := _m.Called(ctx, email, password)

	r0, _ := ret.Get(0).(string)

	return r0, ret.Error(1)
}

func (_e *MockAuthAPI_Expecter) Login(ctx, email, password any) *mock.Call {
	return _e.mock.On("Login", ctx, email, password)
}

func (_m *MockAuthAPI) ChangePassword(ctx context.Context, token string, currentPassword string, newPassword string) error {
	ret := _m.Called(ctx, token, currentPassword, newPassword)

	return ret.Error(0)
}

func (_e *MockAuthAPI_Expecter) ChangePassword(ctx, token, currentPassword, newPassword any) *mock.Call {
	return _e.mock.On("ChangePassword", ctx, token, currentPassword, newPassword)
}

func (_m *MockAuthAPI) DeleteAccount(ctx context.Context, token string) error {
	ret := _m.Called(ctx, token)

	return ret.Error(0)
}

func (_e *MockAuthAPI_Expecter) DeleteAccount(ctx, token any) *mock.Call {
	return _e.mock.On("DeleteAccount", ctx, token)
}

// MockProductAPI is a mock of service.ProductAPI.
type MockProductAPI struct {
	mock.Mock
}

type MockProductAPI_Expecter struct {
	mock *mock.Mock
}

func NewMockProductAPI(t testingT) *MockProductAPI {
	m := &MockProductAPI{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (_m *MockProductAPI) EXPECT() *MockProductAPI_Expecter {
	return &MockProductAPI_Expecter{mock: &_m.Mock}
}

func (_m *MockProductAPI) GetProduct(ctx context.Context, productID string) (*entity.Product, error) {
	ret := _m.Called(ctx, productID)

	r0, _ := ret.Get(0).(*entity.Product)

	return r0, ret.Error(1)
}

func (_e *MockProductAPI_Expecter) GetProduct(ctx, productID any) *mock.Call {
	return _e.mock.On("GetProduct", ctx, productID)
}

func (_m *MockProductAPI) ListProducts(ctx context.Context, page int, size int) ([]entity.Product, error) {
	ret := _m.Called(ctx, page, size)

	r0, _ := ret.Get(0).([]entity.Product)

	return r0, ret.Error(1)
}

func (_e *MockProductAPI_Expecter) ListProducts(ctx, page, size any) *mock.Call {
	return _e.mock.On("ListProducts", ctx, page, size)
}

func (_m *MockProductAPI) SearchProducts(ctx context.Context, query string) ([]entity.Product, error) {
	ret := _m.Called(ctx, query)

	r0, _ := ret.Get(0).([]entity.Product)

	return r0, ret.Error(1)
}

func (_e *MockProductAPI_Expecter) SearchProducts(ctx, query any) *mock.Call {
	return _e.mock.On("SearchProducts", ctx, query)
}

func (_m *MockProductAPI) ProductsByCategory(ctx context.Context, categoryID string) ([]entity.Product, error) {
	ret := _m.Called(ctx, categoryID)

	r0, _ := ret.Get(0).([]entity.Product)

	return r0, ret.Error(1)
}

func (_e *MockProductAPI_Expecter) ProductsByCategory(ctx, categoryID any) *mock.Call {
	return _e.mock.On("ProductsByCategory", ctx, categoryID)
}

// MockPaymentMethodAPI is a mock of service.PaymentMethodAPI.
type MockPaymentMethodAPI struct {
	mock.Mock
}

type MockPaymentMethodAPI_Expecter struct {
	mock *mock.Mock
}

func NewMockPaymentMethodAPI(t testingT) *MockPaymentMethodAPI {
	m := &MockPaymentMethodAPI{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (_m *MockPaymentMethodAPI) EXPECT() *MockPaymentMethodAPI_Expecter {
	return &MockPaymentMethodAPI_Expecter{mock: &_m.Mock}
}

func (_m *MockPaymentMethodAPI) ListPaymentMethods(ctx context.Context, token, userID string) ([]entity.PaymentMethod, error) {
	ret := _m.Called(ctx, token, userID)

	r0, _ := ret.Get(0).([]entity.PaymentMethod)

	return r0, ret.Error(1)
}

func (_e *MockPaymentMethodAPI_Expecter) ListPaymentMethods(ctx, token, userID any) *mock.Call {
	return _e.mock.On("ListPaymentMethods", ctx, token, userID)
}

func (_m *MockPaymentMethodAPI) AddPaymentMethod(ctx context.Context, token string, req service.SavePaymentMethodRequest) (entity.PaymentMethod, error) {
	ret := _m.Called(ctx, token, req)

	r0, _ := ret.Get(0).(entity.PaymentMethod)

	return r0, ret.Error(1)
}

func (_e *MockPaymentMethodAPI_Expecter) AddPaymentMethod(ctx, token, req any) *mock.Call {
	return _e.mock.On("AddPaymentMethod", ctx, token, req)
}

func (_m *MockPaymentMethodAPI) UpdatePaymentMethod(ctx context.Context, token string, req service.SavePaymentMethodRequest) error {
	ret := _m.Called(ctx, token, req)

	return ret.Error(0)
}

func (_e *MockPaymentMethodAPI_Expecter) UpdatePaymentMethod(ctx, token, req any) *mock.Call {
	return _e.mock.On("UpdatePaymentMethod", ctx, token, req)
}

func (_m *MockPaymentMethodAPI) DeletePaymentMethod(ctx context.Context, token string, methodID string) error {
	ret := _m.Called(ctx, token, methodID)

	return ret.Error(0)
}

func (_e *MockPaymentMethodAPI_Expecter) DeletePaymentMethod(ctx, token, methodID any) *mock.Call {
	return _e.mock.On("DeletePaymentMethod", ctx, token, methodID)
}

// MockAddressAPI is a mock of service.AddressAPI.
type MockAddressAPI struct {
	mock.Mock
}

type MockAddressAPI_Expecter struct {
	mock *mock.Mock
}

func NewMockAddressAPI(t testingT) *MockAddressAPI {
	m := &MockAddressAPI{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (_m *MockAddressAPI) EXPECT() *MockAddressAPI_Expecter {
	return &MockAddressAPI_Expecter{mock: &_m.Mock}
}

func (_m *MockAddressAPI) ListAddresses(ctx context.Context, token, userID string) ([]entity.Address, error) {
	ret := _m.Called(ctx, token, userID)

	r0, _ := ret.Get(0).([]entity.Address)

	return r0, ret.Error(1)
}

func (_e *MockAddressAPI_Expecter) ListAddresses(ctx, token, userID any) *mock.Call {
	return _e.mock.On("ListAddresses", ctx, token, userID)
}

func (_m *MockAddressAPI) DefaultAddress(ctx context.Context, token, userID string) (*entity.Address, error) {
	ret := _m.Called(ctx, token, userID)

	r0, _ := ret.Get(0).(*entity.Address)

	return r0, ret.Error(1)
}

func (_e *MockAddressAPI_Expecter) DefaultAddress(ctx, token, userID any) *mock.Call {
	return _e.mock.On("DefaultAddress", ctx, token, userID)
}

func (_m *MockAddressAPI) AddAddress(ctx context.Context, token string, userID string, address entity.Address) (*entity.Address, error) {
	ret := _m.Called(ctx, token, userID, address)

	r0, _ := ret.Get(0).(*entity.Address)

	return r0, ret.Error(1)
}

func (_e *MockAddressAPI_Expecter) AddAddress(ctx, token, userID, address any) *mock.Call {
	return _e.mock.On("AddAddress", ctx, token, userID, address)
}

func (_m *MockAddressAPI) UpdateAddress(ctx context.Context, token string, address entity.Address) (*entity.Address, error) {
	ret := _m.Called(ctx, token, address)

	r0, _ := ret.Get(0).(*entity.Address)

	return r0, ret.Error(1)
}

func (_e *MockAddressAPI_Expecter) UpdateAddress(ctx, token, address any) *mock.Call {
	return _e.mock.On("UpdateAddress", ctx, token, address)
}

func (_m *MockAddressAPI) DeleteAddress(ctx context.Context, token string, userID string, addressID string) error {
	ret := _m.Called(ctx, token, userID, addressID)

	return ret.Error(0)
}

func (_e *MockAddressAPI_Expecter) DeleteAddress(ctx, token, userID, addressID any) *mock.Call {
	return _e.mock.On("DeleteAddress", ctx, token, userID, addressID)
}

func (_m *MockAddressAPI) SetDefaultAddress(ctx context.Context, token string, userID string, addressID string) error {
	ret := _m.Called(ctx, token, userID, addressID)

	return ret.Error(0)
}

func (_e *MockAddressAPI_Expecter) SetDefaultAddress(ctx, token, userID, addressID any) *mock.Call {
	return _e.mock.On("SetDefaultAddress", ctx, token, userID, addressID)
}

// MockOrderAPI is a mock of service.OrderAPI.
type MockOrderAPI struct {
	mock.Mock
}

type MockOrderAPI_Expecter struct {
	mock *mock.Mock
}

func NewMockOrderAPI(t testingT) *MockOrderAPI {
	m := &MockOrderAPI{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (_m *MockOrderAPI) EXPECT() *MockOrderAPI_Expecter {
	return &MockOrderAPI_Expecter{mock: &_m.Mock}
}

func (_m *MockOrderAPI) CreateOrder(ctx context.Context, token string, req service.CreateOrderRequest) (*entity.Order, error) {
	ret := _m.Called(ctx, token, req)

	r0, _ := ret.Get(0).(*entity.Order)

	return r0, ret.Error(1)
}

func (_e *MockOrderAPI_Expecter) CreateOrder(ctx, token, req any) *mock.Call {
	return _e.mock.On("CreateOrder", ctx, token, req)
}

func (_m *MockOrderAPI) ListOrders(ctx context.Context, token, userID string) ([]entity.Order, error) {
	ret := _m.Called(ctx, token, userID)

	r0, _ := ret.Get(0).([]entity.Order)

	return r0, ret.Error(1)
}

func (_e *MockOrderAPI_Expecter) ListOrders(ctx, token, userID any) *mock.Call {
	return _e.mock.On("ListOrders", ctx, token, userID)
}

func (_m *MockOrderAPI) GetOrder(ctx context.Context, token, orderID string) (*entity.Order, error) {
	ret := _m.Called(ctx, token, orderID)

	r0, _ := ret.Get(0).(*entity.Order)

	return r0, ret.Error(1)
}

func (_e *MockOrderAPI_Expecter) GetOrder(ctx, token, orderID any) *mock.Call {
	return _e.mock.On("GetOrder", ctx, token, orderID)
}

func (_m *MockOrderAPI) StatusHistory(ctx context.Context, token, orderID string) ([]entity.OrderStatusHistory, error) {
	ret := _m.Called(ctx, token, orderID)

	r0, _ := ret.Get(0).([]entity.OrderStatusHistory)

	return r0, ret.Error(1)
}

func (_e *MockOrderAPI_Expecter) StatusHistory(ctx, token, orderID any) *mock.Call {
	return _e.mock.On("StatusHistory", ctx, token, orderID)
}

func (_m *MockOrderAPI) OrderLines(ctx context.Context, token string, orderID string) ([]entity.OrderLine, error) {
	ret := _m.Called(ctx, token, orderID)

	r0, _ := ret.Get(0).([]entity.OrderLine)

	return r0, ret.Error(1)
}

func (_e *MockOrderAPI_Expecter) OrderLines(ctx, token, orderID any) *mock.Call {
	return _e.mock.On("OrderLines", ctx, token, orderID)
}

func (_m *MockOrderAPI) UpdateOrderStatus(ctx context.Context, token string, orderID string, status string) (*entity.Order, error) {
	ret := _m.Called(ctx, token, orderID, status)

	r0, _ := ret.Get(0).(*entity.Order)

	return r0, ret.Error(1)
}

func (_e *MockOrderAPI_Expecter) UpdateOrderStatus(ctx, token, orderID, status any) *mock.Call {
	return _e.mock.On("UpdateOrderStatus", ctx, token, orderID, status)
}

// MockCartAPI is a mock of service.CartAPI.
type MockCartAPI struct {
	mock.Mock
}

type MockCartAPI_Expecter struct {
	mock *mock.Mock
}

func NewMockCartAPI(t testingT) *MockCartAPI {
	m := &MockCartAPI{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (_m *MockCartAPI) EXPECT() *MockCartAPI_Expecter {
	return &MockCartAPI_Expecter{mock: &_m.Mock}
}

func (_m *MockCartAPI) MergeGuestCarts(ctx context.Context, token string, email string, carts []entity.Cart) error {
	ret := _m.Called(ctx, token, email, carts)

	return ret.Error(0)
}

func (_e *MockCartAPI_Expecter) MergeGuestCarts(ctx, token, email, carts any) *mock.Call {
	return _e.mock.On("MergeGuestCarts", ctx, token, email, carts)
}

func (_m *MockCartAPI) ListCarts(ctx context.Context, token string, email string) ([]entity.Cart, error) {
	ret := _m.Called(ctx, token, email)

	r0, _ := ret.Get(0).([]entity.Cart)

	return r0, ret.Error(1)
}

func (_e *MockCartAPI_Expecter) ListCarts(ctx, token, email any) *mock.Call {
	return _e.mock.On("ListCarts", ctx, token, email)
}

func (_m *MockCartAPI) CreateCart(ctx context.Context, token string, email string, name string) (*entity.Cart, error) {
	ret := _m.Called(ctx, token, email, name)

	r0, _ := ret.Get(0).(*entity.Cart)

	return r0, ret.Error(1)
}

func (_e *MockCartAPI_Expecter) CreateCart(ctx, token, email, name any) *mock.Call {
	return _e.mock.On("CreateCart", ctx, token, email, name)
}

func (_m *MockCartAPI) DeleteCart(ctx context.Context, token string, cartID string) error {
	ret := _m.Called(ctx, token, cartID)

	return ret.Error(0)
}

func (_e *MockCartAPI_Expecter) DeleteCart(ctx, token, cartID any) *mock.Call {
	return _e.mock.On("DeleteCart", ctx, token, cartID)
}
