package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"

	"docvault/internal/model"
	"docvault/internal/repository"
)

// stringArray renders a []string as a Postgres array literal so the same
// statement works under the pgx stdlib driver and sqlmock.
type stringArray []string

func (a stringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "{}", nil
	}
	quoted := make([]string, len(a))
	for i, s := range a {
		quoted[i] = `"` + strings.ReplaceAll(strings.ReplaceAll(s, `\`, `\\`), `"`, `\"`) + `"`
	}
	return "{" + strings.Join(quoted, ",") + "}", nil
}

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// It uses database/sql with parameterized queries and contains no business logic.
// The embedded assignment and history lists live in JSONB columns and are always
// written as whole values, so every save is a single atomic row update.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

const documentColumns = `id, filename, storage_path, size, content_type, category_id, owner_id, assigned_to, history, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (*model.Document, error) {
	var (
		d          model.Document
		assignedTo []byte
		history    []byte
	)
	if err := row.Scan(
		&d.ID,
		&d.Filename,
		&d.StoragePath,
		&d.Size,
		&d.ContentType,
		&d.CategoryID,
		&d.OwnerID,
		&assignedTo,
		&history,
		&d.CreatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(assignedTo, &d.AssignedTo); err != nil {
		return nil, fmt.Errorf("decode assigned_to: %w", err)
	}
	if err := json.Unmarshal(history, &d.History); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}
	return &d, nil
}

func encodeJSONB(v any) ([]byte, error) {
	if v == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(v)
}

// Create inserts a new document row and returns the stored record.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		INSERT INTO documents (id, filename, storage_path, size, content_type, category_id, owner_id, assigned_to, history, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + documentColumns

	assignedTo, err := encodeJSONB(doc.AssignedTo)
	if err != nil {
		return nil, err
	}
	history, err := encodeJSONB(doc.History)
	if err != nil {
		return nil, err
	}

	row := r.db.QueryRowContext(ctx, q,
		doc.ID,
		doc.Filename,
		doc.StoragePath,
		doc.Size,
		doc.ContentType,
		doc.CategoryID,
		doc.OwnerID,
		assignedTo,
		history,
		doc.CreatedAt,
	)
	return scanDocument(row)
}

// FindByID fetches a single document by its ID.
func (r *DocumentPostgres) FindByID(ctx context.Context, id string) (*model.Document, error) {
	const q = `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`
	return scanDocument(r.db.QueryRowContext(ctx, q, id))
}

// FindByIDs fetches every existing document among the given IDs.
func (r *DocumentPostgres) FindByIDs(ctx context.Context, ids []string) ([]model.Document, error) {
	const q = `SELECT ` + documentColumns + ` FROM documents WHERE id = ANY($1::uuid[]) ORDER BY created_at DESC, id DESC`
	return r.queryDocuments(ctx, q, stringArray(ids))
}

// List returns documents matching the filter, newest first.
func (r *DocumentPostgres) List(ctx context.Context, f repository.DocumentFilter) ([]model.Document, error) {
	q := `SELECT ` + documentColumns + ` FROM documents WHERE owner_id = $1`
	args := []any{f.OwnerID}

	if f.CategoryID != "" {
		args = append(args, f.CategoryID)
		q += fmt.Sprintf(" AND category_id = $%d", len(args))
	}
	if f.ContentType != "" {
		args = append(args, f.ContentType)
		q += fmt.Sprintf(" AND content_type = $%d", len(args))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		q += fmt.Sprintf(" AND filename ILIKE $%d", len(args))
	}
	q += " ORDER BY created_at DESC, id DESC"

	return r.queryDocuments(ctx, q, args...)
}

// ListAssignedTo returns documents whose assignment list contains an entry
// for the given user. The JSONB containment predicate is served by the GIN
// index on assigned_to.
func (r *DocumentPostgres) ListAssignedTo(ctx context.Context, userID string) ([]model.Document, error) {
	const q = `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE assigned_to @> jsonb_build_array(jsonb_build_object('user_id', $1::text))
		ORDER BY created_at DESC, id DESC
	`
	return r.queryDocuments(ctx, q, userID)
}

// UpdateContent overwrites the current content pointer and history in one statement.
func (r *DocumentPostgres) UpdateContent(ctx context.Context, id, filename, storagePath, contentType string, size int64, history []model.HistoryEntry) error {
	const q = `
		UPDATE documents
		SET filename = $2, storage_path = $3, content_type = $4, size = $5, history = $6
		WHERE id = $1
	`
	encoded, err := encodeJSONB(history)
	if err != nil {
		return err
	}
	return r.execOne(ctx, q, id, filename, storagePath, contentType, size, encoded)
}

// UpdateHistory overwrites only the history list.
func (r *DocumentPostgres) UpdateHistory(ctx context.Context, id string, history []model.HistoryEntry) error {
	const q = `UPDATE documents SET history = $2 WHERE id = $1`
	encoded, err := encodeJSONB(history)
	if err != nil {
		return err
	}
	return r.execOne(ctx, q, id, encoded)
}

// UpdateAssignments overwrites only the assignment list.
func (r *DocumentPostgres) UpdateAssignments(ctx context.Context, id string, assignments []model.Assignment) error {
	const q = `UPDATE documents SET assigned_to = $2 WHERE id = $1`
	encoded, err := encodeJSONB(assignments)
	if err != nil {
		return err
	}
	return r.execOne(ctx, q, id, encoded)
}

// Delete removes a document by ID. It does not return an error if the row does not exist.
func (r *DocumentPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM documents WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}

// DeleteMany removes every listed document in one statement.
func (r *DocumentPostgres) DeleteMany(ctx context.Context, ids []string) error {
	const q = `DELETE FROM documents WHERE id = ANY($1::uuid[])`
	_, err := r.db.ExecContext(ctx, q, stringArray(ids))
	return err
}

func (r *DocumentPostgres) queryDocuments(ctx context.Context, q string, args ...any) ([]model.Document, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *DocumentPostgres) execOne(ctx context.Context, q string, args ...any) error {
	res, err := r.db.ExecContext(ctx, q, args...)
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
