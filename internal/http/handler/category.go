package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"docvault/internal/http/middleware"
	"docvault/internal/service"
)

// ListCategories returns the categories visible to the actor.
func ListCategories(svc service.CategoryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cs, err := svc.List(c.UserContext(), middleware.ActorFromCtx(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"items": cs, "total": len(cs)})
	}
}

// CreateCategory adds a category owned by the actor.
func CreateCategory(svc service.CategoryService) fiber.Handler {
	type request struct {
		Name string `json:"name"`
	}
	return func(c *fiber.Ctx) error {
		var req request
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		cat, err := svc.Create(c.UserContext(), middleware.ActorFromCtx(c), req.Name)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(cat)
	}
}

// DeleteCategory removes a category (admin or creator).
func DeleteCategory(svc service.CategoryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.Delete(c.UserContext(), middleware.ActorFromCtx(c), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
