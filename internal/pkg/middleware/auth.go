package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/TontonYahya/tonton-stories/internal/pkg/session"
)

// Session key set by the admin login handler.
const AdminAuthKey = "admin_logged_in"

// AdminContextMiddleware resolves the admin session once per request and
// exposes the result via Locals.
func AdminContextMiddleware(c *fiber.Ctx) error {
	loggedIn := false

	sess, err := session.GetSessionStore().Get(c)
	if err == nil {
		if v, ok := sess.Get(AdminAuthKey).(bool); ok {
			loggedIn = v
		}
	}

	c.Locals(AdminAuthKey, loggedIn)
	return c.Next()
}

// RequireAdmin ensures a logged-in admin session; redirects to the login
// page otherwise. The login and logout pages themselves stay reachable.
func RequireAdmin(c *fiber.Ctx) error {
	if c.Path() == "/admin/login" || c.Path() == "/admin/logout" {
		return c.Next()
	}

	loggedIn, ok := c.Locals(AdminAuthKey).(bool)
	if !ok || !loggedIn {
		return c.Redirect("/admin/login", fiber.StatusSeeOther)
	}
	return c.Next()
}
