package service

import (
	"context"

	"docvault/internal/auth"
	"docvault/internal/model"
	"docvault/internal/repository"
)

// buildListFilter derives the query predicate for a document listing.
// Non-admin actors are always pinned to their own documents; a target user
// passed by a non-admin is ignored, not rejected. Admins are scoped to the
// target user when one is given, otherwise to their own uploads (the admin's
// personal document space, not "all documents").
func buildListFilter(actor auth.Identity, q ListQuery) repository.DocumentFilter {
	owner := actor.UserID
	if actor.IsAdmin() && q.TargetUserID != "" {
		owner = q.TargetUserID
	}
	return repository.DocumentFilter{
		OwnerID:     owner,
		CategoryID:  q.CategoryID,
		ContentType: q.FileType,
		Search:      q.Search,
	}
}

// projectAssigned reduces documents to the target user's view: descriptive
// fields plus only that user's own grant. An assignee must never see other
// assignees' permission entries.
func projectAssigned(docs []model.Document, targetUserID string) []AssignedDocument {
	out := make([]AssignedDocument, 0, len(docs))
	for _, doc := range docs {
		for _, a := range doc.AssignedTo {
			if a.UserID != targetUserID {
				continue
			}
			out = append(out, AssignedDocument{
				ID:          doc.ID,
				Filename:    doc.Filename,
				ContentType: doc.ContentType,
				CategoryID:  doc.CategoryID,
				OwnerID:     doc.OwnerID,
				Permissions: a.Permissions,
				AssignedAt:  a.AssignedAt,
			})
			break
		}
	}
	return out
}

func (s *documentService) ListAssigned(ctx context.Context, actor auth.Identity, targetUserID string) ([]AssignedDocument, error) {
	target := actor.UserID
	if actor.IsAdmin() {
		if targetUserID == "" {
			return nil, ErrTargetUserRequired
		}
		target = targetUserID
	}

	docs, err := s.docs.ListAssignedTo(ctx, target)
	if err != nil {
		return nil, err
	}
	return projectAssigned(docs, target), nil
}
