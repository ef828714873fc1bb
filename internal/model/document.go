package model

import "time"

// PermissionSet holds the per-action grants of a single assignment.
// A set with all three flags false is meaningless and is dropped during
// assignment reconciliation rather than stored.
type PermissionSet struct {
	View     bool `json:"view"`
	Download bool `json:"download"`
	Update   bool `json:"update"`
}

// Empty reports whether no action is granted.
func (p PermissionSet) Empty() bool {
	return !p.View && !p.Download && !p.Update
}

// Assignment grants permissions on a document to one non-owner user.
// Assignments are embedded in the document; user IDs are unique within a
// document because reconciliation replaces the whole list.
type Assignment struct {
	UserID      string        `json:"user_id"`
	Permissions PermissionSet `json:"permissions"`
	AssignedAt  time.Time     `json:"assigned_at"`
}

// HistoryEntry is an archived prior version of a document's content pointer,
// created once per replace and never mutated afterwards. Entries are ordered
// oldest first; an index is only valid until the next deletion.
type HistoryEntry struct {
	Filename    string    `json:"filename"`
	StoragePath string    `json:"storage_path"`
	ContentType string    `json:"content_type"`
	ReplacedAt  time.Time `json:"replaced_at"`
}

// Document represents a stored file in the system.
// This is a pure domain model with no database-specific dependencies or tags.
// OwnerID is immutable after creation.
type Document struct {
	ID          string         `json:"id"`
	Filename    string         `json:"filename"`
	StoragePath string         `json:"storage_path"`
	Size        int64          `json:"size"`
	ContentType string         `json:"content_type"`
	CategoryID  string         `json:"category_id"`
	OwnerID     string         `json:"owner_id"`
	AssignedTo  []Assignment   `json:"assigned_to"`
	History     []HistoryEntry `json:"history"`
	CreatedAt   time.Time      `json:"created_at"`
}
