package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"docvault/internal/model"
	"docvault/internal/repository"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

var notificationTestColumns = []string{"id", "user_id", "document_id", "sender_role", "message", "link", "read", "created_at"}

func TestNotificationPostgres_InsertMany(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewNotificationPostgres(db)
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("multi-row insert", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO notifications (.+) VALUES \(\$1, \$2, \$3, \$4, \$5, \$6, \$7, \$8\), \(\$9, \$10, \$11, \$12, \$13, \$14, \$15, \$16\)`).
			WithArgs(
				"n-1", "u-1", "doc-1", "admin", "msg one", "/assigned-documents", false, now,
				"n-2", "u-2", "doc-1", "admin", "msg two", "/assigned-documents", false, now,
			).
			WillReturnResult(sqlmock.NewResult(0, 2))

		err := repo.InsertMany(ctx, []model.Notification{
			{ID: "n-1", UserID: "u-1", DocumentID: "doc-1", SenderRole: "admin", Message: "msg one", Link: "/assigned-documents", CreatedAt: now},
			{ID: "n-2", UserID: "u-2", DocumentID: "doc-1", SenderRole: "admin", Message: "msg two", Link: "/assigned-documents", CreatedAt: now},
		})
		assert.NoError(t, err)
	})

	t.Run("empty batch is a no-op", func(t *testing.T) {
		assert.NoError(t, repo.InsertMany(ctx, nil))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationPostgres_ListByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewNotificationPostgres(db)
	ctx := context.Background()

	t.Run("receiver feed", func(t *testing.T) {
		rows := sqlmock.NewRows(notificationTestColumns).
			AddRow("n-1", "u-1", "doc-1", "admin", "msg", "/assigned-documents", false, time.Now())

		mock.ExpectQuery("SELECT (.+) FROM notifications WHERE user_id = (.+) ORDER BY").
			WithArgs("u-1").
			WillReturnRows(rows)

		ns, err := repo.ListByUser(ctx, repository.NotificationFilter{UserID: "u-1"})
		assert.NoError(t, err)
		assert.Len(t, ns, 1)
	})

	t.Run("restricted to sender role", func(t *testing.T) {
		rows := sqlmock.NewRows(notificationTestColumns)

		mock.ExpectQuery("SELECT (.+) FROM notifications WHERE user_id = (.+) AND sender_role = (.+) ORDER BY").
			WithArgs("u-1", "admin").
			WillReturnRows(rows)

		ns, err := repo.ListByUser(ctx, repository.NotificationFilter{UserID: "u-1", SenderRole: "admin"})
		assert.NoError(t, err)
		assert.Empty(t, ns)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationPostgres_MarkReadAndDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewNotificationPostgres(db)
	ctx := context.Background()

	t.Run("mark read", func(t *testing.T) {
		mock.ExpectExec("UPDATE notifications SET read = true WHERE id = ?").
			WithArgs("n-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.MarkRead(ctx, "n-1"))
	})

	t.Run("mark read on missing row", func(t *testing.T) {
		mock.ExpectExec("UPDATE notifications SET read = true WHERE id = ?").
			WithArgs("n-9").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.True(t, errors.Is(repo.MarkRead(ctx, "n-9"), sql.ErrNoRows))
	})

	t.Run("delete by document", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM notifications WHERE document_id = ?").
			WithArgs("doc-1").
			WillReturnResult(sqlmock.NewResult(0, 3))

		assert.NoError(t, repo.DeleteByDocument(ctx, "doc-1"))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
