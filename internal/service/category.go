package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"docvault/internal/auth"
	"docvault/internal/model"
	"docvault/internal/repository"
)

// CategoryService defines the use cases for document categories.
type CategoryService interface {
	// List returns the categories visible to the actor.
	List(ctx context.Context, actor auth.Identity) ([]model.Category, error)

	// Create adds a category owned by the actor.
	Create(ctx context.Context, actor auth.Identity, name string) (*model.Category, error)

	// Delete removes a category; admins may delete any, users only their own.
	Delete(ctx context.Context, actor auth.Identity, id string) error
}

type categoryService struct {
	categories repository.CategoryRepository
}

func NewCategoryService(categories repository.CategoryRepository) CategoryService {
	return &categoryService{categories: categories}
}

func (s *categoryService) List(ctx context.Context, actor auth.Identity) ([]model.Category, error) {
	return s.categories.ListVisible(ctx, actor.UserID, actor.Role)
}

func (s *categoryService) Create(ctx context.Context, actor auth.Identity, name string) (*model.Category, error) {
	if name == "" {
		return nil, ErrNameRequired
	}
	c := &model.Category{
		ID:            uuid.New().String(),
		Name:          name,
		CreatedBy:     actor.UserID,
		CreatedByRole: actor.Role,
		CreatedAt:     time.Now().UTC(),
	}
	return s.categories.Create(ctx, c)
}

func (s *categoryService) Delete(ctx context.Context, actor auth.Identity, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	c, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if actor.Role != model.RoleAdmin && c.CreatedBy != actor.UserID {
		return ErrForbidden
	}
	return s.categories.Delete(ctx, id)
}
