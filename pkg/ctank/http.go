package ctank

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

func InitializeRoutes(app, api *fiber.App) {

	app.Get("/health", HandleHealth)

	InitializeTankRoutes(api)
	InitializeReadingRoutes(api)
	InitializeSupplyRoutes(api)
	InitializeParameterRoutes(api)
	InitializeNoteRoutes(api)
	InitializeAlertRoutes(api)
	InitializeReportRoutes(api)
	InitializeFeedRoutes(app, api)
}

func HandleHealth(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "CTMS is running",
	})
}

/* NOT-FOUND ERRORS FROM THE GATEWAY CARRY "does not exist" */
func notFoundOr(err error, fallback int) int {
	if err != nil && strings.Contains(err.Error(), "does not exist") {
		return fiber.StatusNotFound
	}
	return fallback
}
