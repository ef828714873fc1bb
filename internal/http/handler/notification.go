package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"docvault/internal/http/middleware"
	"docvault/internal/service"
)

func parseNotificationID(c *fiber.Ctx) (string, bool) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}

// ListNotifications returns the actor's notification feed.
func ListNotifications(svc service.NotificationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ns, err := svc.List(c.UserContext(), middleware.ActorFromCtx(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"items": ns, "total": len(ns)})
	}
}

// MarkNotificationRead flags one notification as read (receiver only).
func MarkNotificationRead(svc service.NotificationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseNotificationID(c)
		if !ok {
			return invalidID(c)
		}
		if err := svc.MarkRead(c.UserContext(), middleware.ActorFromCtx(c), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// DeleteNotification removes one notification (receiver only).
func DeleteNotification(svc service.NotificationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseNotificationID(c)
		if !ok {
			return invalidID(c)
		}
		if err := svc.Delete(c.UserContext(), middleware.ActorFromCtx(c), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
