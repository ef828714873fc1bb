package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docvault/internal/auth"
	"docvault/internal/model"
)

type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) List(ctx context.Context, actor auth.Identity) ([]model.Notification, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Notification), args.Error(1)
}

func (m *MockNotificationService) MarkRead(ctx context.Context, actor auth.Identity, id string) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}

func (m *MockNotificationService) Delete(ctx context.Context, actor auth.Identity, id string) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}
