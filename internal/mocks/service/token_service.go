package service

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

// MockTokenDecoder is a mock of service.TokenDecoder.
type MockTokenDecoder struct {
	mock.Mock
}

type MockTokenDecoder_Expecter struct {
	mock *mock.Mock
}

func NewMockTokenDecoder(t testingT) *MockTokenDecoder {
	m := &MockTokenDecoder{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (_m *MockTokenDecoder) EXPECT() *MockTokenDecoder_Expecter {
	return &MockTokenDecoder_Expecter{mock: &_m.Mock}
}

func (_m *MockTokenDecoder) Decode(token string) (*service.TokenClaims, error) {
	ret := _m.Called(token)

	r0, _ := ret.Get(0).(*service.TokenClaims)

	return r0, ret.Error(1)
}

func (_e *MockTokenDecoder_Expecter) Decode(token any) *mock.Call {
	return _e.mock.On("Decode", token)
}

// MockQRCodeService is a mock of service.QRCodeService.
type MockQRCodeService struct {
	mock.Mock
}

type MockQRCodeService_Expecter struct {
	mock *mock.Mock
}

func NewMockQRCodeService(t testingT) *MockQRCodeService {
	m := &MockQRCodeService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (_m *MockQRCodeService) EXPECT() *MockQRCodeService_Expecter {
	return &MockQRCodeService_Expecter{mock: &_m.Mock}
}

func (_m *MockQRCodeService) GenerateCartInviteQR(cartID string) ([]byte, error) {
	ret := _m.Called(cartID)

	r0, _ := ret.Get(0).([]byte)

	return r0, ret.Error(1)
}

func (_e *MockQRCodeService_Expecter) GenerateCartInviteQR(cartID any) *mock.Call {
	return _e.mock.On("GenerateCartInviteQR", cartID)
}

func (_m *MockQRCodeService) ParseCartInviteQR(qrData string) (string, error) {
	ret := _m.Called(qrData)

	return ret.String(0), ret.Error(1)
}

func (_e *MockQRCodeService_Expecter) ParseCartInviteQR(qrData any) *mock.Call {
	return _e.mock.On("ParseCartInviteQR", qrData)
}

// MockCountryService is a mock of service.CountryService.
type MockCountryService struct {
	mock.Mock
}

type MockCountryService_Expecter struct {
	mock *mock.Mock
}

func NewMockCountryService(t testingT) *MockCountryService {
	m := &MockCountryService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (_m *MockCountryService) EXPECT() *MockCountryService_Expecter {
	return &MockCountryService_Expecter{mock: &_m.Mock}
}

func (_m *MockCountryService) Countries(ctx context.Context) ([]entity.Country, error) {
	ret := _m.Called(ctx)

	r0, _ := ret.Get(0).([]entity.Country)

	return r0, ret.Error(1)
}

func (_e *MockCountryService_Expecter) Countries(ctx any) *mock.Call {
	return _e.mock.On("Countries", ctx)
}
