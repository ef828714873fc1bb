package repository

import (
	"context"

	"docvault/internal/model"
)

// CategoryRepository defines data access for categories.
type CategoryRepository interface {
	Create(ctx context.Context, c *model.Category) (*model.Category, error)

	FindByID(ctx context.Context, id string) (*model.Category, error)

	// ListVisible returns the categories the actor may see: admin-created
	// ones for admins, admin-created plus own for regular users.
	ListVisible(ctx context.Context, actorID, actorRole string) ([]model.Category, error)

	Delete(ctx context.Context, id string) error
}
