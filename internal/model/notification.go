package model

import "time"

// Notification tells a user that a document was assigned to them. It is
// created as a side effect of assignment reconciliation but lifecycled
// independently afterwards (mark read, delete).
type Notification struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	DocumentID string    `json:"document_id"`
	SenderRole string    `json:"sender_role"`
	Message    string    `json:"message"`
	Link       string    `json:"link"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"created_at"`
}
