package model

import "time"

// Category groups documents. Admin-created categories are globally visible;
// user-created categories are visible only to their creator.
// CreatedBy is empty for the seeded defaults.
type Category struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	CreatedBy     string    `json:"created_by,omitempty"`
	CreatedByRole string    `json:"created_by_role"`
	CreatedAt     time.Time `json:"created_at"`
}
