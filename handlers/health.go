package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/studyshelf/catalog-api/database"
	"github.com/studyshelf/catalog-api/utils/response"
)

// HandleCheckHealth reports whether the store connection is alive.
func HandleCheckHealth(c *fiber.Ctx, store *database.GORMStore) error {
	if err := store.HealthCheck(); err != nil {
		return response.ServiceUnavailable(c, "Store connection is down")
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
