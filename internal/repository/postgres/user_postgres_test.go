package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"docvault/internal/model"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

var userTestColumns = []string{"id", "firstname", "lastname", "email", "password_hash", "role", "created_at"}

func TestUserPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewUserPostgres(db)
	ctx := context.Background()
	now := time.Now().UTC()

	rows := sqlmock.NewRows(userTestColumns).
		AddRow("u-1", "Ada", "Lovelace", "ada@example.com", "hash", "user", now)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("u-1", "Ada", "Lovelace", "ada@example.com", "hash", "user", now).
		WillReturnRows(rows)

	u, err := repo.Create(ctx, &model.User{
		ID: "u-1", Firstname: "Ada", Lastname: "Lovelace",
		Email: "ada@example.com", PasswordHash: "hash", Role: "user", CreatedAt: now,
	})

	assert.NoError(t, err)
	assert.Equal(t, "u-1", u.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserPostgres_FindByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewUserPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows(userTestColumns).
			AddRow("u-1", "Ada", "Lovelace", "ada@example.com", "hash", "user", time.Now())

		mock.ExpectQuery("SELECT (.+) FROM users WHERE email = ?").
			WithArgs("ada@example.com").
			WillReturnRows(rows)

		u, err := repo.FindByEmail(ctx, "ada@example.com")
		assert.NoError(t, err)
		assert.Equal(t, "u-1", u.ID)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE email = ?").
			WithArgs("nobody@example.com").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.FindByEmail(ctx, "nobody@example.com")
		assert.True(t, errors.Is(err, sql.ErrNoRows))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserPostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewUserPostgres(db)
	ctx := context.Background()

	rows := sqlmock.NewRows(userTestColumns).
		AddRow("u-1", "Ada", "Lovelace", "ada@example.com", "hash", "user", time.Now()).
		AddRow("u-2", "Grace", "Hopper", "grace@example.com", "hash", "admin", time.Now())

	mock.ExpectQuery("SELECT (.+) FROM users ORDER BY").
		WillReturnRows(rows)

	us, err := repo.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, us, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}
