package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"docvault/internal/auth"
	"docvault/internal/model"
	"docvault/internal/permission"
	"docvault/internal/service"
)

type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) Upload(ctx context.Context, actor auth.Identity, r io.Reader, originalFilename, contentType string, size int64, categoryID string) (*model.Document, error) {
	args := m.Called(ctx, actor, r, originalFilename, contentType, size, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentService) List(ctx context.Context, actor auth.Identity, q service.ListQuery) ([]model.Document, error) {
	args := m.Called(ctx, actor, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Document), args.Error(1)
}

func (m *MockDocumentService) Get(ctx context.Context, actor auth.Identity, id string) (*model.Document, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentService) Open(ctx context.Context, actor auth.Identity, id string, action permission.Action) (io.ReadCloser, *model.Document, error) {
	args := m.Called(ctx, actor, id, action)
	var rc io.ReadCloser
	if args.Get(0) != nil {
		rc = args.Get(0).(io.ReadCloser)
	}
	var doc *model.Document
	if args.Get(1) != nil {
		doc = args.Get(1).(*model.Document)
	}
	return rc, doc, args.Error(2)
}

func (m *MockDocumentService) Replace(ctx context.Context, actor auth.Identity, id string, r io.Reader, originalFilename, contentType string, size int64) (*model.Document, error) {
	args := m.Called(ctx, actor, id, r, originalFilename, contentType, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentService) Delete(ctx context.Context, actor auth.Identity, id string) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}

func (m *MockDocumentService) BulkDelete(ctx context.Context, actor auth.Identity, ids []string) (int, error) {
	args := m.Called(ctx, actor, ids)
	return args.Int(0), args.Error(1)
}

func (m *MockDocumentService) History(ctx context.Context, actor auth.Identity, id string) ([]model.HistoryEntry, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.HistoryEntry), args.Error(1)
}

func (m *MockDocumentService) OpenHistory(ctx context.Context, actor auth.Identity, id string, index int) (io.ReadCloser, *model.HistoryEntry, error) {
	args := m.Called(ctx, actor, id, index)
	var rc io.ReadCloser
	if args.Get(0) != nil {
		rc = args.Get(0).(io.ReadCloser)
	}
	var entry *model.HistoryEntry
	if args.Get(1) != nil {
		entry = args.Get(1).(*model.HistoryEntry)
	}
	return rc, entry, args.Error(2)
}

func (m *MockDocumentService) DeleteHistoryEntry(ctx context.Context, actor auth.Identity, id string, index int) error {
	args := m.Called(ctx, actor, id, index)
	return args.Error(0)
}

func (m *MockDocumentService) Assign(ctx context.Context, actor auth.Identity, id string, requested []service.AssignmentRequest) ([]model.Assignment, error) {
	args := m.Called(ctx, actor, id, requested)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Assignment), args.Error(1)
}

func (m *MockDocumentService) ListAssigned(ctx context.Context, actor auth.Identity, targetUserID string) ([]service.AssignedDocument, error) {
	args := m.Called(ctx, actor, targetUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.AssignedDocument), args.Error(1)
}
