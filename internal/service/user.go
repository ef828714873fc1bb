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

// TokenIssuer signs identity tokens for successful logins.
type TokenIssuer interface {
	Issue(userID, role string) (string, error)
}

// CreateUserInput carries the fields of an admin-created account.
type CreateUserInput struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
}

// LoginResult is the authenticated session returned on login.
type LoginResult struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// UserService defines account management and login.
type UserService interface {
	// Create adds an account. Caller must have verified the actor is admin.
	Create(ctx context.Context, input CreateUserInput) (*model.User, error)

	// List returns every account without password hashes.
	List(ctx context.Context) ([]model.User, error)

	// Delete removes an account by ID.
	Delete(ctx context.Context, id string) error

	// Login verifies credentials and issues a token. Invalid email and
	// invalid password are indistinguishable to the caller.
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}

type userService struct {
	users  repository.UserRepository
	tokens TokenIssuer
}

func NewUserService(users repository.UserRepository, tokens TokenIssuer) UserService {
	return &userService{users: users, tokens: tokens}
}

func (s *userService) Create(ctx context.Context, input CreateUserInput) (*model.User, error) {
	if input.Firstname == "" || input.Lastname == "" || input.Email == "" || input.Password == "" || input.Role == "" {
		return nil, ErrFieldsRequired
	}

	if _, err := s.users.FindByEmail(ctx, input.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	u := &model.User{
		ID:           uuid.New().String(),
		Firstname:    input.Firstname,
		Lastname:     input.Lastname,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         input.Role,
		CreatedAt:    time.Now().UTC(),
	}
	return s.users.Create(ctx, u)
}

func (s *userService) List(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

func (s *userService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	if _, err := s.users.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return s.users.Delete(ctx, id)
}

func (s *userService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := auth.CheckPassword(password, u.PasswordHash); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(u.ID, u.Role)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, User: *u}, nil
}
