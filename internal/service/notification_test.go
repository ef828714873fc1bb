package service

import (
	"context"
	"database/sql"
	"testing"

	"docvault/internal/model"
	"docvault/internal/repository"
	repoMocks "docvault/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
)

func TestNotificationService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("user feed is unfiltered", func(t *testing.T) {
		mRepo := new(repoMocks.MockNotificationRepository)
		mRepo.On("ListByUser", ctx, repository.NotificationFilter{UserID: testOwner.UserID}).
			Return([]model.Notification{{ID: "n-1"}}, nil)
		svc := NewNotificationService(mRepo)

		ns, err := svc.List(ctx, testOwner)
		assert.NoError(t, err)
		assert.Len(t, ns, 1)
		mRepo.AssertExpectations(t)
	})

	t.Run("admin feed restricted to admin-sent", func(t *testing.T) {
		mRepo := new(repoMocks.MockNotificationRepository)
		mRepo.On("ListByUser", ctx, repository.NotificationFilter{
			UserID:     testAdmin.UserID,
			SenderRole: model.RoleAdmin,
		}).Return([]model.Notification{}, nil)
		svc := NewNotificationService(mRepo)

		_, err := svc.List(ctx, testAdmin)
		assert.NoError(t, err)
		mRepo.AssertExpectations(t)
	})
}

func TestNotificationService_MarkRead(t *testing.T) {
	ctx := context.Background()

	own := &model.Notification{ID: "n-1", UserID: testOwner.UserID}

	t.Run("receiver marks read", func(t *testing.T) {
		mRepo := new(repoMocks.MockNotificationRepository)
		mRepo.On("FindByID", ctx, "n-1").Return(own, nil)
		mRepo.On("MarkRead", ctx, "n-1").Return(nil)
		svc := NewNotificationService(mRepo)

		assert.NoError(t, svc.MarkRead(ctx, testOwner, "n-1"))
		mRepo.AssertExpectations(t)
	})

	t.Run("non-receiver denied", func(t *testing.T) {
		mRepo := new(repoMocks.MockNotificationRepository)
		mRepo.On("FindByID", ctx, "n-1").Return(own, nil)
		svc := NewNotificationService(mRepo)

		assert.ErrorIs(t, svc.MarkRead(ctx, testStranger, "n-1"), ErrForbidden)
	})

	t.Run("missing notification", func(t *testing.T) {
		mRepo := new(repoMocks.MockNotificationRepository)
		mRepo.On("FindByID", ctx, "n-9").Return(nil, sql.ErrNoRows)
		svc := NewNotificationService(mRepo)

		assert.ErrorIs(t, svc.MarkRead(ctx, testOwner, "n-9"), ErrNotFound)
	})
}

func TestNotificationService_Delete(t *testing.T) {
	ctx := context.Background()

	own := &model.Notification{ID: "n-1", UserID: testOwner.UserID}

	t.Run("receiver deletes", func(t *testing.T) {
		mRepo := new(repoMocks.MockNotificationRepository)
		mRepo.On("FindByID", ctx, "n-1").Return(own, nil)
		mRepo.On("Delete", ctx, "n-1").Return(nil)
		svc := NewNotificationService(mRepo)

		assert.NoError(t, svc.Delete(ctx, testOwner, "n-1"))
		mRepo.AssertExpectations(t)
	})

	t.Run("non-receiver denied", func(t *testing.T) {
		mRepo := new(repoMocks.MockNotificationRepository)
		mRepo.On("FindByID", ctx, "n-1").Return(own, nil)
		svc := NewNotificationService(mRepo)

		assert.ErrorIs(t, svc.Delete(ctx, testStranger, "n-1"), ErrForbidden)
	})
}
