// Package repository holds testify mocks for the domain repository interfaces.
package repository

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockDeviceStorage is a mock of repository.DeviceStorage.
type MockDeviceStorage struct {
	mock.Mock
}

type MockDeviceStorage_Expecter struct {
	mock *mock.Mock
}

func NewMockDeviceStorage(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockDeviceStorage {
	m := &MockDeviceStorage{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (_m *MockDeviceStorage) EXPECT() *MockDeviceStorage_Expecter {
	return &MockDeviceStorage_Expecter{mock: &_m.Mock}
}

func (_m *MockDeviceStorage) GetItem(ctx context.Context, key string) (string, error) {
	ret := _m.Called(ctx, key)

	return ret.String(0), ret.Error(1)
}

func (_e *MockDeviceStorage_Expecter) GetItem(ctx, key any) *mock.Call {
	return _e.mock.On("GetItem", ctx, key)
}

func (_m *MockDeviceStorage) SetItem(ctx context.Context, key, value string) error {
	ret := _m.Called(ctx, key, value)

	return ret.Error(0)
}

func (_e *MockDeviceStorage_Expecter) SetItem(ctx, key, value any) *mock.Call {
	return _e.mock.On("SetItem", ctx, key, value)
}

func (_m *MockDeviceStorage) RemoveItems(ctx context.Context, keys ...string) error {
	args := []any{ctx}
	for _, key := range keys {
		args = append(args, key)
	}
	ret := _m.Called(args...)

	return ret.Error(0)
}

func (_e *MockDeviceStorage_Expecter) RemoveItems(ctx any, keys ...any) *mock.Call {
	return _e.mock.On("RemoveItems", append([]any{ctx}, keys...)...)
}

func (_m *MockDeviceStorage) Close() error {
	ret := _m.Called()

	return ret.Error(0)
}

func (_e *MockDeviceStorage_Expecter) Close() *mock.Call {
	return _e.mock.On("Close")
}
