package repository

import (
	"context"

	"docvault/internal/model"
)

// UserRepository defines data access for user accounts.
type UserRepository interface {
	Create(ctx context.Context, u *model.User) (*model.User, error)

	FindByID(ctx context.Context, id string) (*model.User, error)

	FindByEmail(ctx context.Context, email string) (*model.User, error)

	List(ctx context.Context) ([]model.User, error)

	Delete(ctx context.Context, id string) error
}
