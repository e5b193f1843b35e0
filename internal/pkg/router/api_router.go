package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/TontonYahya/tonton-stories/app/controllers"
	"github.com/TontonYahya/tonton-stories/app/repository"
	"github.com/TontonYahya/tonton-stories/internal/pkg/config"
	"github.com/TontonYahya/tonton-stories/internal/pkg/entitlements"
	"github.com/TontonYahya/tonton-stories/internal/pkg/payments"
	"github.com/TontonYahya/tonton-stories/internal/pkg/paypal"
)

type ApiRouter struct {
	cfg *config.Config
}

func NewApiRouter(cfg *config.Config) *ApiRouter {
	return &ApiRouter{cfg: cfg}
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	factory := repository.GetGlobalFactory()
	stories := factory.GetStoryRepository()
	packs := factory.GetPackRepository()
	purchases := factory.GetPurchaseRepository()

	resolver := entitlements.NewResolver(purchases, stories)
	gateway := paypal.NewClient(h.cfg.PayPal)
	paymentsSvc := payments.NewService(gateway, stories, purchases, h.cfg.Shop)

	storyController := controllers.NewStoryController(stories, purchases, resolver, paymentsSvc)
	packController := controllers.NewPackController(packs)
	paymentController := controllers.NewPaymentController(paymentsSvc)

	api := app.Group("/api", limiter.New())

	// Catalog
	api.Get("/stories", storyController.HandleGetStories)
	api.Get("/stories/:id", storyController.HandleGetStory)
	api.Post("/init-sample-data", storyController.HandleInitSampleData)

	// Packs
	api.Get("/packs", packController.HandleGetPacks)
	api.Get("/packs/:pack_id", packController.HandleGetPack)
	api.Post("/packs", packController.HandleCreatePack)
	api.Put("/packs/:id", packController.HandleUpdatePack)
	api.Delete("/packs/:id", packController.HandleDeletePack)
	api.Post("/init-packs", packController.HandleInitPacks)

	// Purchases and entitlements
	api.Get("/purchases/user/:email", storyController.HandleGetUserPurchases)
	api.Get("/purchases", storyController.HandleGetUserPurchasesByQuery)
	api.Post("/purchases", storyController.HandleCreatePurchase)
	api.Get("/check-access", storyController.HandleCheckAccess)
	api.Post("/simulate-purchase", storyController.HandleSimulatePurchase)

	// PayPal checkout
	api.Post("/paypal/create-payment", paymentController.HandleCreatePayment)
	api.Post("/paypal/capture-payment", paymentController.HandleCapturePayment)
	api.Get("/paypal/payment-status/:order_id", paymentController.HandlePaymentStatus)
}
