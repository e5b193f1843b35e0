package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/TontonYahya/tonton-stories/internal/pkg/config"
)

type Router interface {
	InstallRouter(app *fiber.App)
}

// InstallRouter wires all routes. The HTTP router initializes the session
// store the admin middleware depends on, so it is installed first.
func InstallRouter(app *fiber.App, cfg *config.Config) {
	setup(app, NewHttpRouter(cfg), NewApiRouter(cfg))
}

func setup(app *fiber.App, router ...Router) {
	for _, r := range router {
		r.InstallRouter(app)
	}
}
