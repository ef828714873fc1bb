package model

import "time"

// Roles understood by the system. There are exactly two; everything else is
// rejected at the identity boundary.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is an account that can own, be assigned, and act on documents.
// PasswordHash never leaves the repository/service layers.
type User struct {
	ID           string    `json:"id"`
	Firstname    string    `json:"firstname"`
	Lastname     string    `json:"lastname"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
