package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"docvault/internal/auth"
	"docvault/internal/model"
)

// AssignedDocumentsLink is the in-app destination carried by assignment
// notifications.
const AssignedDocumentsLink = "/assigned-documents"

// filterAssignments validates the requested pairs and converts the survivors
// into stored assignments. Entries with a malformed user id or an all-false
// permission set are silently dropped. A user listed twice keeps only the
// last occurrence, so stored user ids stay unique.
func filterAssignments(requested []AssignmentRequest, now time.Time) []model.Assignment {
	byUser := make(map[string]int)
	out := make([]model.Assignment, 0, len(requested))
	for _, req := range requested {
		if _, err := uuid.Parse(req.UserID); err != nil {
			continue
		}
		if req.Permissions.Empty() {
			continue
		}
		a := model.Assignment{
			UserID:      req.UserID,
			Permissions: req.Permissions,
			AssignedAt:  now,
		}
		if i, ok := byUser[req.UserID]; ok {
			out[i] = a
			continue
		}
		byUser[req.UserID] = len(out)
		out = append(out, a)
	}
	return out
}

// buildNotifications synthesizes one notification per surviving assignment.
func buildNotifications(doc *model.Document, assignments []model.Assignment, senderRole string, now time.Time) []model.Notification {
	ns := make([]model.Notification, 0, len(assignments))
	for _, a := range assignments {
		ns = append(ns, model.Notification{
			ID:         uuid.New().String(),
			UserID:     a.UserID,
			DocumentID: doc.ID,
			SenderRole: senderRole,
			Message:    fmt.Sprintf("A new document %q has been assigned to you.", doc.Filename),
			Link:       AssignedDocumentsLink,
			Read:       false,
			CreatedAt:  now,
		})
	}
	return ns
}

// Assign replaces the document's assignment set wholesale with the validated
// request and swaps the document's notifications: stale ones are deleted
// before new ones are created, per document. The document save is
// authoritative; notification failures are logged and never roll it back.
// Concurrent assigns on the same document are last-write-wins.
func (s *documentService) Assign(ctx context.Context, actor auth.Identity, id string, requested []AssignmentRequest) ([]model.Assignment, error) {
	doc, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	assignments := filterAssignments(requested, now)

	if err := s.docs.UpdateAssignments(ctx, id, assignments); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("save assignments: %w", err)
	}

	if err := s.notifs.DeleteByDocument(ctx, id); err != nil {
		// Skip creation so stale notices are not duplicated alongside new ones.
		log.Printf("assign: delete notifications for document %s: %v", id, err)
		return assignments, nil
	}

	if len(assignments) > 0 {
		ns := buildNotifications(doc, assignments, actor.Role, now)
		if err := s.notifs.InsertMany(ctx, ns); err != nil {
			log.Printf("assign: insert notifications for document %s: %v", id, err)
		}
	}

	return assignments, nil
}
