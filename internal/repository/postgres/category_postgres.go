package postgres

import (
	"context"
	"database/sql"

	"docvault/internal/model"
	"docvault/internal/repository"
)

// CategoryPostgres is a PostgreSQL implementation of repository.CategoryRepository.
type CategoryPostgres struct {
	db *sql.DB
}

func NewCategoryPostgres(db *sql.DB) *CategoryPostgres {
	return &CategoryPostgres{db: db}
}

var _ repository.CategoryRepository = (*CategoryPostgres)(nil)

const categoryColumns = `id, name, created_by, created_by_role, created_at`

func scanCategory(row rowScanner) (*model.Category, error) {
	var (
		c         model.Category
		createdBy sql.NullString
	)
	if err := row.Scan(&c.ID, &c.Name, &createdBy, &c.CreatedByRole, &c.CreatedAt); err != nil {
		return nil, err
	}
	c.CreatedBy = createdBy.String
	return &c, nil
}

func (r *CategoryPostgres) Create(ctx context.Context, c *model.Category) (*model.Category, error) {
	const q = `
		INSERT INTO categories (id, name, created_by, created_by_role, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + categoryColumns

	var createdBy any
	if c.CreatedBy != "" {
		createdBy = c.CreatedBy
	}
	row := r.db.QueryRowContext(ctx, q, c.ID, c.Name, createdBy, c.CreatedByRole, c.CreatedAt)
	return scanCategory(row)
}

func (r *CategoryPostgres) FindByID(ctx context.Context, id string) (*model.Category, error) {
	const q = `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`
	return scanCategory(r.db.QueryRowContext(ctx, q, id))
}

// ListVisible returns admin-created categories for admins, admin-created plus
// the actor's own for regular users.
func (r *CategoryPostgres) ListVisible(ctx context.Context, actorID, actorRole string) ([]model.Category, error) {
	var (
		q    string
		args []any
	)
	if actorRole == model.RoleAdmin {
		q = `SELECT ` + categoryColumns + ` FROM categories WHERE created_by_role = 'admin' ORDER BY created_at ASC, id ASC`
	} else {
		q = `SELECT ` + categoryColumns + ` FROM categories WHERE created_by_role = 'admin' OR created_by = $1 ORDER BY created_at ASC, id ASC`
		args = append(args, actorID)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *CategoryPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM categories WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}
