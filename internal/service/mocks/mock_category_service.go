package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docvault/internal/auth"
	"docvault/internal/model"
)

type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) List(ctx context.Context, actor auth.Identity) ([]model.Category, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *MockCategoryService) Create(ctx context.Context, actor auth.Identity, name string) (*model.Category, error) {
	args := m.Called(ctx, actor, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryService) Delete(ctx context.Context, actor auth.Identity, id string) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}
