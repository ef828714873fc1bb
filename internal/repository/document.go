// Package repository contains data access layer abstractions.
// Implementations live in subpackages (e.g., postgres) inside this directory.
package repository

import (
	"context"

	"docvault/internal/model"
)

// DocumentFilter scopes a document listing. OwnerID is always set by the
// visibility filter before the query reaches the repository; the other
// fields narrow the result when non-empty.
type DocumentFilter struct {
	OwnerID     string
	CategoryID  string
	ContentType string
	// Search is a case-insensitive substring match on filename.
	Search string
}

// DocumentRepository defines data access for documents using SQL queries only.
// No business logic here — strictly persistence operations. Updates to the
// embedded assignment and history lists replace the whole column, giving the
// atomic single-document save the service layer relies on.
type DocumentRepository interface {
	// Create inserts a new document record and returns the stored document.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns a document by its ID.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// FindByIDs returns every existing document among the given IDs.
	// Missing IDs are not an error.
	FindByIDs(ctx context.Context, ids []string) ([]model.Document, error)

	// List returns documents matching the filter, newest first.
	List(ctx context.Context, f DocumentFilter) ([]model.Document, error)

	// ListAssignedTo returns documents whose assignment list contains an
	// entry for the given user, newest first.
	ListAssignedTo(ctx context.Context, userID string) ([]model.Document, error)

	// UpdateContent overwrites the current content pointer and the history
	// list in one statement (the replace operation).
	UpdateContent(ctx context.Context, id, filename, storagePath, contentType string, size int64, history []model.HistoryEntry) error

	// UpdateHistory overwrites only the history list.
	UpdateHistory(ctx context.Context, id string, history []model.HistoryEntry) error

	// UpdateAssignments overwrites only the assignment list.
	UpdateAssignments(ctx context.Context, id string, assignments []model.Assignment) error

	// Delete removes a document by ID. It returns nil if the row was deleted or did not exist.
	Delete(ctx context.Context, id string) error

	// DeleteMany removes every listed document in one statement.
	DeleteMany(ctx context.Context, ids []string) error
}
