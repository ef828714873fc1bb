package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"docvault/internal/service"
)

// Login verifies credentials and returns a signed token with the profile.
func Login(svc service.UserService) fiber.Handler {
	type request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	return func(c *fiber.Ctx) error {
		var req request
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		if req.Email == "" || req.Password == "" {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "email and password are required")
		}

		res, err := svc.Login(c.UserContext(), req.Email, req.Password)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// CreateUser adds an account (admin only, enforced by route middleware).
func CreateUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input service.CreateUserInput
		if err := c.BodyParser(&input); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		u, err := svc.Create(c.UserContext(), input)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(u)
	}
}

// ListUsers returns all accounts without password hashes.
func ListUsers(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		us, err := svc.List(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"items": us, "total": len(us)})
	}
}

// DeleteUser removes an account (admin only).
func DeleteUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
