package api

import (
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) GetAlerts(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}
	return c.JSON(fiber.Map{"alerts": handler.alertService.PendingAlerts(user.ID)})
}

func (handler *Handler) DismissAlerts(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}
	handler.alertService.DismissAlerts(user.ID)
	return c.JSON(fiber.Map{"ok": true})
}
