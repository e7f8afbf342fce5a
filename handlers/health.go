package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gradpath/consultancy-api/database"
)

// HandleCheckHealth answers the /ping health check
func HandleCheckHealth(c *fiber.Ctx, store database.Storage) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
