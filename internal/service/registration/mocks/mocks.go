package mocks

import (
	"context"

	"github.com/darkkaiser/push-probe/internal/service/registration"
	"github.com/stretchr/testify/mock"
)

// MockProvider registration.Provider 인터페이스의 Mock 구현체입니다.
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) Name() string {
	return "mock"
}

func (m *MockProvider) Create(ctx context.Context, settings registration.Settings, hooks registration.Hooks) (registration.Control, error) {
	args := m.Called(ctx, settings, hooks)

	var c registration.Control
	if v := args.Get(0); v != nil {
		c = v.(registration.Control)
	}

	return c, args.Error(1)
}

func (m *MockProvider) Register(ctx context.Context, control registration.Control) error {
	args := m.Called(ctx, control)
	return args.Error(0)
}

// MockControl registration.Control 인터페이스의 Mock 구현체입니다.
type MockControl struct {
	mock.Mock
}

func (m *MockControl) DeviceID(ctx context.Context) (string, bool, error) {
	args := m.Called(ctx)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockControl) Login(ctx context.Context, externalUserID string) (bool, error) {
	args := m.Called(ctx, externalUserID)
	return args.Bool(0), args.Error(1)
}

func (m *MockControl) ExternalUserID(ctx context.Context) (string, bool, error) {
	args := m.Called(ctx)
	return args.String(0), args.Bool(1), args.Error(2)
}

// MockEventControl 이벤트 전달(registration.EventSource)을 지원하는 MockControl입니다.
type MockEventControl struct {
	MockControl
}

func (m *MockEventControl) Dispatch(event registration.Event) bool {
	args := m.Called(event)
	return args.Bool(0)
}
