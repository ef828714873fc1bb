package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"docvault/internal/model"
	"docvault/internal/repository"
)

// NotificationPostgres is a PostgreSQL implementation of repository.NotificationRepository.
type NotificationPostgres struct {
	db *sql.DB
}

func NewNotificationPostgres(db *sql.DB) *NotificationPostgres {
	return &NotificationPostgres{db: db}
}

var _ repository.NotificationRepository = (*NotificationPostgres)(nil)

const notificationColumns = `id, user_id, document_id, sender_role, message, link, read, created_at`

func scanNotification(row rowScanner) (*model.Notification, error) {
	var n model.Notification
	if err := row.Scan(
		&n.ID,
		&n.UserID,
		&n.DocumentID,
		&n.SenderRole,
		&n.Message,
		&n.Link,
		&n.Read,
		&n.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &n, nil
}

// InsertMany stores a batch of notifications in one multi-row insert.
func (r *NotificationPostgres) InsertMany(ctx context.Context, ns []model.Notification) error {
	if len(ns) == 0 {
		return nil
	}

	placeholders := make([]string, 0, len(ns))
	args := make([]any, 0, len(ns)*8)
	for i, n := range ns {
		base := i * 8
		placeholders = append(placeholders, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8))
		args = append(args, n.ID, n.UserID, n.DocumentID, n.SenderRole, n.Message, n.Link, n.Read, n.CreatedAt)
	}

	q := `INSERT INTO notifications (` + notificationColumns + `) VALUES ` + strings.Join(placeholders, ", ")
	_, err := r.db.ExecContext(ctx, q, args...)
	return err
}

func (r *NotificationPostgres) FindByID(ctx context.Context, id string) (*model.Notification, error) {
	const q = `SELECT ` + notificationColumns + ` FROM notifications WHERE id = $1`
	return scanNotification(r.db.QueryRowContext(ctx, q, id))
}

// ListByUser returns the receiver's notifications, newest first, optionally
// restricted to one sender role.
func (r *NotificationPostgres) ListByUser(ctx context.Context, f repository.NotificationFilter) ([]model.Notification, error) {
	q := `SELECT ` + notificationColumns + ` FROM notifications WHERE user_id = $1`
	args := []any{f.UserID}
	if f.SenderRole != "" {
		args = append(args, f.SenderRole)
		q += fmt.Sprintf(" AND sender_role = $%d", len(args))
	}
	q += " ORDER BY created_at DESC, id DESC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Notification, 0)
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *NotificationPostgres) MarkRead(ctx context.Context, id string) error {
	const q = `UPDATE notifications SET read = true WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *NotificationPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM notifications WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}

// DeleteByDocument removes every notification referencing the document.
func (r *NotificationPostgres) DeleteByDocument(ctx context.Context, documentID string) error {
	const q = `DELETE FROM notifications WHERE document_id = $1`
	_, err := r.db.ExecContext(ctx, q, documentID)
	return err
}
