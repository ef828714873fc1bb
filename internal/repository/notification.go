package repository

import (
	"context"

	"docvault/internal/model"
)

// NotificationFilter scopes a notification listing to one receiver,
// optionally restricted by sender role.
type NotificationFilter struct {
	UserID     string
	SenderRole string
}

// NotificationRepository defines data access for notifications.
type NotificationRepository interface {
	// InsertMany stores a batch of notifications in one statement.
	InsertMany(ctx context.Context, ns []model.Notification) error

	FindByID(ctx context.Context, id string) (*model.Notification, error)

	// ListByUser returns the receiver's notifications, newest first.
	ListByUser(ctx context.Context, f NotificationFilter) ([]model.Notification, error)

	MarkRead(ctx context.Context, id string) error

	Delete(ctx context.Context, id string) error

	// DeleteByDocument removes every notification referencing the document.
	DeleteByDocument(ctx context.Context, documentID string) error
}
