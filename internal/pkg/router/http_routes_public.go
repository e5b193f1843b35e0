package router

import (
	"github.com/gofiber/fiber/v2"
)

func (h HttpRouter) registerPublicRoutes(app *fiber.App) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/admin", fiber.StatusSeeOther)
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
}
