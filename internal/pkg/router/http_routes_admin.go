package router

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"

	"github.com/TontonYahya/tonton-stories/app/controllers"
	"github.com/TontonYahya/tonton-stories/internal/pkg/env"
	"github.com/TontonYahya/tonton-stories/internal/pkg/middleware"
)

func (h HttpRouter) registerAdminRoutes(app *fiber.App, admin *controllers.AdminController, stories *controllers.AdminStoryController, packs *controllers.AdminPackController) {
	csrfConf := csrf.Config{
		KeyLookup:      "form:_csrf",
		ContextKey:     "csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		Expiration:     1 * time.Hour,
		CookieSecure:   !env.IsDev(),
	}

	adminGroup := app.Group("/admin", csrf.New(csrfConf), middleware.RequireAdmin)
	adminGroup.Get("/login", admin.HandleLoginPage)
	adminGroup.Post("/login", admin.HandleLogin)
	adminGroup.Get("/logout", admin.HandleLogout)
	adminGroup.Get("/", admin.HandleDashboard)
	adminGroup.Post("/purchases/deactivate/:id", admin.HandleDeactivatePurchase)

	// Story management
	adminGroup.Get("/stories/add", stories.HandleAddStoryPage)
	adminGroup.Post("/stories/add", stories.HandleAddStory)
	adminGroup.Get("/stories/edit/:id", stories.HandleEditStoryPage)
	adminGroup.Post("/stories/edit/:id", stories.HandleEditStory)
	adminGroup.Post("/stories/delete/:id", stories.HandleDeleteStory)

	// Pack management
	adminGroup.Get("/packs", packs.HandlePacksPage)
	adminGroup.Get("/packs/add", packs.HandleAddPackPage)
	adminGroup.Post("/packs/add", packs.HandleAddPack)
	adminGroup.Get("/packs/edit/:id", packs.HandleEditPackPage)
	adminGroup.Post("/packs/edit/:id", packs.HandleEditPack)
	adminGroup.Post("/packs/delete/:id", packs.HandleDeletePack)
}
