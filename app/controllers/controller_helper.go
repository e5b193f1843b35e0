package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/TontonYahya/tonton-stories/internal/pkg/apperr"
	"github.com/TontonYahya/tonton-stories/internal/pkg/middleware"
)

// jsonError maps an error to its HTTP status and the shared failure
// envelope. The full error detail is logged; the caller only sees the safe
// message of the error kind.
func jsonError(c *fiber.Ctx, err error) error {
	log.Printf("%s %s failed: %v", c.Method(), c.Path(), err)

	kind := apperr.KindOf(err)
	return c.Status(kind.StatusCode()).JSON(fiber.Map{
		"success": false,
		"error":   apperr.SafeMessage(err),
	})
}

// jsonSuccess wraps a payload in the shared success envelope.
func jsonSuccess(c *fiber.Ctx, payload fiber.Map) error {
	body := fiber.Map{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	return c.JSON(body)
}

func isLoggedIn(c *fiber.Ctx) bool {
	loggedIn, ok := c.Locals(middleware.AdminAuthKey).(bool)
	return ok && loggedIn
}
