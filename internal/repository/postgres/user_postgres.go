package postgres

import (
	"context"
	"database/sql"

	"docvault/internal/model"
	"docvault/internal/repository"
)

// UserPostgres is a PostgreSQL implementation of repository.UserRepository.
type UserPostgres struct {
	db *sql.DB
}

func NewUserPostgres(db *sql.DB) *UserPostgres {
	return &UserPostgres{db: db}
}

var _ repository.UserRepository = (*UserPostgres)(nil)

const userColumns = `id, firstname, lastname, email, password_hash, role, created_at`

func scanUser(row rowScanner) (*model.User, error) {
	var u model.User
	if err := row.Scan(
		&u.ID,
		&u.Firstname,
		&u.Lastname,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserPostgres) Create(ctx context.Context, u *model.User) (*model.User, error) {
	const q = `
		INSERT INTO users (id, firstname, lastname, email, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + userColumns

	row := r.db.QueryRowContext(ctx, q,
		u.ID,
		u.Firstname,
		u.Lastname,
		u.Email,
		u.PasswordHash,
		u.Role,
		u.CreatedAt,
	)
	return scanUser(row)
}

func (r *UserPostgres) FindByID(ctx context.Context, id string) (*model.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRowContext(ctx, q, id))
}

func (r *UserPostgres) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.db.QueryRowContext(ctx, q, email))
}

func (r *UserPostgres) List(ctx context.Context) ([]model.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users ORDER BY created_at ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *UserPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM users WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}
