package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/TontonYahya/tonton-stories/app/controllers"
	"github.com/TontonYahya/tonton-stories/app/repository"
	"github.com/TontonYahya/tonton-stories/internal/pkg/config"
	"github.com/TontonYahya/tonton-stories/internal/pkg/middleware"
	"github.com/TontonYahya/tonton-stories/internal/pkg/session"
)

type HttpRouter struct {
	cfg *config.Config
}

func NewHttpRouter(cfg *config.Config) *HttpRouter {
	return &HttpRouter{cfg: cfg}
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// init session
	session.NewSessionStore()

	// Resolve the admin session once per request
	app.Use(middleware.AdminContextMiddleware)

	factory := repository.GetGlobalFactory()
	adminController := controllers.NewAdminController(h.cfg, factory.GetStoryRepository(), factory.GetPurchaseRepository())
	adminStoryController := controllers.NewAdminStoryController(factory.GetStoryRepository())
	adminPackController := controllers.NewAdminPackController(factory.GetPackRepository())

	h.registerPublicRoutes(app)
	h.registerAdminRoutes(app, adminController, adminStoryController, adminPackController)
}
