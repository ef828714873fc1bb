package mocks

import (
	"context"

	"docvault/internal/model"
	"docvault/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentRepository) FindByID(ctx context.Context, id string) (*model.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentRepository) FindByIDs(ctx context.Context, ids []string) ([]model.Document, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Document), args.Error(1)
}

func (m *MockDocumentRepository) List(ctx context.Context, f repository.DocumentFilter) ([]model.Document, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Document), args.Error(1)
}

func (m *MockDocumentRepository) ListAssignedTo(ctx context.Context, userID string) ([]model.Document, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Document), args.Error(1)
}

func (m *MockDocumentRepository) UpdateContent(ctx context.Context, id, filename, storagePath, contentType string, size int64, history []model.HistoryEntry) error {
	args := m.Called(ctx, id, filename, storagePath, contentType, size, history)
	return args.Error(0)
}

func (m *MockDocumentRepository) UpdateHistory(ctx context.Context, id string, history []model.HistoryEntry) error {
	args := m.Called(ctx, id, history)
	return args.Error(0)
}

func (m *MockDocumentRepository) UpdateAssignments(ctx context.Context, id string, assignments []model.Assignment) error {
	args := m.Called(ctx, id, assignments)
	return args.Error(0)
}

func (m *MockDocumentRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDocumentRepository) DeleteMany(ctx context.Context, ids []string) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}
