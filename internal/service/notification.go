package service

import (
	"context"
	"database/sql"
	"errors"

	"docvault/internal/auth"
	"docvault/internal/model"
	"docvault/internal/repository"
)

// NotificationService defines the receiver-side use cases for notifications.
// Creation happens inside assignment reconciliation, not here.
type NotificationService interface {
	// List returns the actor's notifications, newest first. Admin feeds are
	// restricted to admin-sent entries.
	List(ctx context.Context, actor auth.Identity) ([]model.Notification, error)

	// MarkRead flags a notification as read; receiver only.
	MarkRead(ctx context.Context, actor auth.Identity, id string) error

	// Delete removes a notification; receiver only.
	Delete(ctx context.Context, actor auth.Identity, id string) error
}

type notificationService struct {
	notifs repository.NotificationRepository
}

func NewNotificationService(notifs repository.NotificationRepository) NotificationService {
	return &notificationService{notifs: notifs}
}

func (s *notificationService) List(ctx context.Context, actor auth.Identity) ([]model.Notification, error) {
	f := repository.NotificationFilter{UserID: actor.UserID}
	if actor.IsAdmin() {
		f.SenderRole = model.RoleAdmin
	}
	return s.notifs.ListByUser(ctx, f)
}

func (s *notificationService) MarkRead(ctx context.Context, actor auth.Identity, id string) error {
	if err := s.authorize(ctx, actor, id); err != nil {
		return err
	}
	if err := s.notifs.MarkRead(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *notificationService) Delete(ctx context.Context, actor auth.Identity, id string) error {
	if err := s.authorize(ctx, actor, id); err != nil {
		return err
	}
	return s.notifs.Delete(ctx, id)
}

// authorize loads the notification and checks the actor is its receiver.
func (s *notificationService) authorize(ctx context.Context, actor auth.Identity, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	n, err := s.notifs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if n.UserID != actor.UserID {
		return ErrForbidden
	}
	return nil
}
