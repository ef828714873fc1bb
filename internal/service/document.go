package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"docvault/internal/auth"
	"docvault/internal/model"
	"docvault/internal/permission"
	"docvault/internal/repository"
	"docvault/internal/storage"
)

// ListQuery carries the optional narrowing parameters of a document listing.
// TargetUserID is only honored for admin actors; see buildListFilter.
type ListQuery struct {
	CategoryID   string
	FileType     string
	Search       string
	TargetUserID string
}

// AssignmentRequest is one requested (user, permission-set) pair of an
// assign call, before validation.
type AssignmentRequest struct {
	UserID      string              `json:"user_id"`
	Permissions model.PermissionSet `json:"permissions"`
}

// AssignedDocument is the projection returned by assigned-document listings:
// the document's descriptive fields plus only the target user's own grant.
// Other assignees' entries are stripped before the result leaves the service.
type AssignedDocument struct {
	ID          string              `json:"id"`
	Filename    string              `json:"filename"`
	ContentType string              `json:"content_type"`
	CategoryID  string              `json:"category_id"`
	OwnerID     string              `json:"owner_id"`
	Permissions model.PermissionSet `json:"permissions"`
	AssignedAt  time.Time           `json:"assigned_at"`
}

// DocumentService defines the use cases for handling documents. Every method
// takes the resolved actor; authorization is decided per call through the
// permission engine, never cached across mutations.
type DocumentService interface {
	// Upload stores the content in object storage and the metadata in the
	// repository, rolling the object back if the metadata save fails.
	Upload(ctx context.Context, actor auth.Identity, r io.Reader, originalFilename, contentType string, size int64, categoryID string) (*model.Document, error)

	// List returns the documents the actor may enumerate, scoped per the
	// visibility rules and narrowed by the query.
	List(ctx context.Context, actor auth.Identity, q ListQuery) ([]model.Document, error)

	// Get returns a single document by its ID.
	Get(ctx context.Context, actor auth.Identity, id string) (*model.Document, error)

	// Open streams the current content for view or download, gated by the
	// corresponding permission.
	Open(ctx context.Context, actor auth.Identity, id string, action permission.Action) (io.ReadCloser, *model.Document, error)

	// Replace archives the current version into history and establishes the
	// new content as current. The prior object is kept in storage so history
	// entries stay retrievable. Concurrent replaces are last-write-wins.
	Replace(ctx context.Context, actor auth.Identity, id string, r io.Reader, originalFilename, contentType string, size int64) (*model.Document, error)

	// Delete removes a document (admin or owner only). History objects and
	// notifications referencing the document are left behind.
	Delete(ctx context.Context, actor auth.Identity, id string) error

	// BulkDelete removes a batch of documents. Object removal is best-effort
	// per item; the batch continues past storage failures.
	BulkDelete(ctx context.Context, actor auth.Identity, ids []string) (int, error)

	// History returns the archived versions, oldest first.
	History(ctx context.Context, actor auth.Identity, id string) ([]model.HistoryEntry, error)

	// OpenHistory streams one archived version by index.
	OpenHistory(ctx context.Context, actor auth.Identity, id string, index int) (io.ReadCloser, *model.HistoryEntry, error)

	// DeleteHistoryEntry removes exactly one history entry; later entries
	// shift down one index. The archived object itself is not removed.
	DeleteHistoryEntry(ctx context.Context, actor auth.Identity, id string, index int) error

	// Assign reconciles the document's assignment set with the requested one
	// and derives the notification side effects. Callers must have verified
	// the actor is an admin.
	Assign(ctx context.Context, actor auth.Identity, id string, requested []AssignmentRequest) ([]model.Assignment, error)

	// ListAssigned returns the documents assigned to the target user,
	// projected to that user's own grant.
	ListAssigned(ctx context.Context, actor auth.Identity, targetUserID string) ([]AssignedDocument, error)
}

type documentService struct {
	store  storage.Storage
	docs   repository.DocumentRepository
	notifs repository.NotificationRepository
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(store storage.Storage, docs repository.DocumentRepository, notifs repository.NotificationRepository) DocumentService {
	return &documentService{store: store, docs: docs, notifs: notifs}
}

// objectKey derives a collision-resistant storage key, keeping only the
// original extension.
func objectKey(originalFilename string) string {
	ext := filepath.Ext(originalFilename)
	return filepath.ToSlash(filepath.Join("documents", uuid.New().String()+ext))
}

func (s *documentService) Upload(ctx context.Context, actor auth.Identity, r io.Reader, originalFilename, contentType string, size int64, categoryID string) (*model.Document, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	if categoryID == "" {
		return nil, ErrCategoryRequired
	}

	key := objectKey(originalFilename)

	objInfo, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": originalFilename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	doc := &model.Document{
		ID:          uuid.New().String(),
		Filename:    originalFilename,
		StoragePath: objInfo.Key,
		Size:        objInfo.Size,
		ContentType: contentType,
		CategoryID:  categoryID,
		OwnerID:     actor.UserID,
		AssignedTo:  []model.Assignment{},
		History:     []model.HistoryEntry{},
		CreatedAt:   time.Now().UTC(),
	}
	stored, err := s.docs.Create(ctx, doc)
	if err != nil {
		// Rollback: delete the object from storage
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

func (s *documentService) List(ctx context.Context, actor auth.Identity, q ListQuery) ([]model.Document, error) {
	return s.docs.List(ctx, buildListFilter(actor, q))
}

func (s *documentService) Get(ctx context.Context, actor auth.Identity, id string) (*model.Document, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.docs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

func (s *documentService) Open(ctx context.Context, actor auth.Identity, id string, action permission.Action) (io.ReadCloser, *model.Document, error) {
	doc, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, nil, err
	}
	if !permission.CanPerform(doc, actor.UserID, actor.Role, action) {
		return nil, nil, ErrForbidden
	}

	rc, _, err := s.store.Get(ctx, doc.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("open storage object: %w", err)
	}
	return rc, doc, nil
}

func (s *documentService) Replace(ctx context.Context, actor auth.Identity, id string, r io.Reader, originalFilename, contentType string, size int64) (*model.Document, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	doc, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !permission.CanPerform(doc, actor.UserID, actor.Role, permission.ActionUpdate) {
		return nil, ErrForbidden
	}

	key := objectKey(originalFilename)
	objInfo, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": originalFilename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	// Archive the current version, then make the new content current. The
	// old object stays in storage so the history entry remains retrievable.
	history := append(append([]model.HistoryEntry{}, doc.History...), model.HistoryEntry{
		Filename:    doc.Filename,
		StoragePath: doc.StoragePath,
		ContentType: doc.ContentType,
		ReplacedAt:  time.Now().UTC(),
	})

	if err := s.docs.UpdateContent(ctx, id, originalFilename, objInfo.Key, contentType, objInfo.Size, history); err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}

	doc.Filename = originalFilename
	doc.StoragePath = objInfo.Key
	doc.ContentType = contentType
	doc.Size = objInfo.Size
	doc.History = history
	return doc, nil
}

func (s *documentService) Delete(ctx context.Context, actor auth.Identity, id string) error {
	doc, err := s.Get(ctx, actor, id)
	if err != nil {
		return err
	}
	switch permission.Resolve(doc, actor.UserID, actor.Role).Variant {
	case permission.VariantAdmin, permission.VariantOwner:
	default:
		return ErrForbidden
	}

	// Only the current object is removed; history objects and notifications
	// referencing this document are intentionally left behind.
	if err := s.store.Delete(ctx, doc.StoragePath); err != nil {
		return fmt.Errorf("delete storage: %w", err)
	}
	return s.docs.Delete(ctx, id)
}

func (s *documentService) BulkDelete(ctx context.Context, actor auth.Identity, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, ErrNoDocumentsGiven
	}

	docs, err := s.docs.FindByIDs(ctx, ids)
	if err != nil {
		return 0, err
	}
	if len(docs) == 0 {
		return 0, ErrNotFound
	}

	if !actor.IsAdmin() {
		for _, doc := range docs {
			if doc.OwnerID != actor.UserID {
				return 0, ErrForbidden
			}
		}
	}

	// Best-effort object removal: a storage failure on one item must not
	// abort the batch.
	for _, doc := range docs {
		if doc.StoragePath == "" {
			continue
		}
		if err := s.store.Delete(ctx, doc.StoragePath); err != nil {
			log.Printf("bulk delete: remove object %s: %v", doc.StoragePath, err)
		}
	}

	if err := s.docs.DeleteMany(ctx, ids); err != nil {
		return 0, err
	}
	return len(docs), nil
}

func (s *documentService) History(ctx context.Context, actor auth.Identity, id string) ([]model.HistoryEntry, error) {
	doc, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return doc.History, nil
}

func (s *documentService) OpenHistory(ctx context.Context, actor auth.Identity, id string, index int) (io.ReadCloser, *model.HistoryEntry, error) {
	doc, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, nil, err
	}
	if index < 0 || index >= len(doc.History) {
		return nil, nil, ErrNotFound
	}
	entry := doc.History[index]

	rc, _, err := s.store.Get(ctx, entry.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("open storage object: %w", err)
	}
	return rc, &entry, nil
}

func (s *documentService) DeleteHistoryEntry(ctx context.Context, actor auth.Identity, id string, index int) error {
	doc, err := s.Get(ctx, actor, id)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(doc.History) {
		return ErrNotFound
	}

	// Splice the entry out; the archived object is kept (accepted orphan).
	history := make([]model.HistoryEntry, 0, len(doc.History)-1)
	history = append(history, doc.History[:index]...)
	history = append(history, doc.History[index+1:]...)

	if err := s.docs.UpdateHistory(ctx, id, history); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
