package controllers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"

	"github.com/TontonYahya/tonton-stories/app/models"
	"github.com/TontonYahya/tonton-stories/app/repository"
	"github.com/TontonYahya/tonton-stories/internal/pkg/apperr"
	"github.com/TontonYahya/tonton-stories/internal/pkg/entitlements"
	"github.com/TontonYahya/tonton-stories/internal/pkg/metrics/counter"
	"github.com/TontonYahya/tonton-stories/internal/pkg/payments"
)

// StoryController handles the public story, purchase and entitlement routes
type StoryController struct {
	stories   repository.StoryRepository
	purchases repository.PurchaseRepository
	resolver  *entitlements.Resolver
	payments  *payments.Service
}

// NewStoryController creates a story controller with its dependencies
func NewStoryController(stories repository.StoryRepository, purchases repository.PurchaseRepository, resolver *entitlements.Resolver, paymentsSvc *payments.Service) *StoryController {
	return &StoryController{
		stories:   stories,
		purchases: purchases,
		resolver:  resolver,
		payments:  paymentsSvc,
	}
}

// HandleGetStories returns the full catalog
func (sc *StoryController) HandleGetStories(c *fiber.Ctx) error {
	stories, err := sc.stories.GetAll()
	if err != nil {
		return jsonError(c, apperr.Wrap(apperr.Persistence, "failed to load stories", err))
	}
	return jsonSuccess(c, fiber.Map{"stories": stories})
}

// HandleGetStory returns one story by id
func (sc *StoryController) HandleGetStory(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return jsonError(c, apperr.New(apperr.Validation, "invalid story id"))
	}

	story, err := sc.stories.GetByID(id)
	if err != nil {
		return jsonError(c, apperr.FromDB(err, "story not found"))
	}

	// Pending plays accumulate in Redis and are flushed in batches
	_ = counter.AddStoryPlay(story.ID)

	return jsonSuccess(c, fiber.Map{"story": story})
}

// HandleInitSampleData seeds demo stories into an empty catalog
func (sc *StoryController) HandleInitSampleData(c *fiber.Ctx) error {
	count, err := sc.stories.Count()
	if err != nil {
		return jsonError(c, apperr.Wrap(apperr.Persistence, "failed to count stories", err))
	}
	if count > 0 {
		return jsonSuccess(c, fiber.Map{"message": "sample data already present"})
	}

	samples := []models.Story{
		{
			Title:       "Le Prophète et l'Araignée",
			Description: "L'histoire miraculeuse de la protection divine",
			Duration:    "8:30",
			Category:    "Prophètes",
			Price:       2.99,
			IsPremium:   true,
		},
		{
			Title:       "Les Compagnons de la Caverne",
			Description: "Une histoire de foi et de persévérance",
			Duration:    "12:15",
			Category:    "Coran",
			Price:       2.99,
			IsPremium:   true,
		},
		{
			Title:       "La Générosité d'Abu Bakr",
			Description: "L'exemple de générosité du premier Calife",
			Duration:    "6:45",
			Category:    "Compagnons",
			Price:       2.99,
			IsPremium:   true,
		},
		{
			Title:       "L'Histoire de Bilal",
			Description: "Le premier muezzin de l'Islam",
			Duration:    "10:20",
			Category:    "Compagnons",
			Price:       2.99,
			IsPremium:   true,
		},
	}
	for i := range samples {
		if err := sc.stories.Create(&samples[i]); err != nil {
			return jsonError(c, apperr.Wrap(apperr.Persistence, "failed to create sample stories", err))
		}
	}

	return jsonSuccess(c, fiber.Map{"message": strconv.Itoa(len(samples)) + " histoires d'exemple créées"})
}

// HandleGetUserPurchases returns a user's active ledger rows together with
// the resolved unlocked-story set
func (sc *StoryController) HandleGetUserPurchases(c *fiber.Ctx) error {
	email := strings.TrimSpace(c.Params("email"))
	if email == "" {
		return jsonError(c, apperr.New(apperr.Validation, "user email is required"))
	}

	purchases, err := sc.purchases.GetActiveByEmail(email)
	if err != nil {
		return jsonError(c, apperr.Wrap(apperr.Persistence, "failed to load purchases", err))
	}

	entitlement, err := sc.resolver.ResolveWith(purchases)
	if err != nil {
		return jsonError(c, apperr.Wrap(apperr.Persistence, "failed to resolve entitlements", err))
	}

	return jsonSuccess(c, fiber.Map{
		"purchases":        purchases,
		"unlocked_stories": entitlement.UnlockedStoryIDs,
		"has_unlimited":    entitlement.HasUnlimited,
	})
}

// HandleGetUserPurchasesByQuery returns every ledger row for ?email=
func (sc *StoryController) HandleGetUserPurchasesByQuery(c *fiber.Ctx) error {
	email := strings.TrimSpace(c.Query("email"))
	if email == "" {
		return jsonError(c, apperr.New(apperr.Validation, "user email is required"))
	}

	purchases, err := sc.purchases.GetByEmail(email)
	if err != nil {
		return jsonError(c, apperr.Wrap(apperr.Persistence, "failed to load purchases", err))
	}
	return jsonSuccess(c, fiber.Map{"purchases": purchases})
}

type createPurchaseRequest struct {
	UserEmail           string   `json:"user_email"`
	PackType            string   `json:"pack_type"`
	StoryIDs            []uint64 `json:"story_ids"`
	AmountPaid          float64  `json:"amount_paid"`
	PayPalTransactionID *string  `json:"paypal_transaction_id"`
}

// HandleCreatePurchase appends a ledger row directly (administrative use)
func (sc *StoryController) HandleCreatePurchase(c *fiber.Ctx) error {
	var req createPurchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, apperr.Wrap(apperr.Validation, "invalid request body", err))
	}
	if strings.TrimSpace(req.UserEmail) == "" {
		return jsonError(c, apperr.New(apperr.Validation, "user_email is required"))
	}
	if strings.TrimSpace(req.PackType) == "" {
		return jsonError(c, apperr.New(apperr.Validation, "pack_type is required"))
	}
	if req.AmountPaid <= 0 {
		return jsonError(c, apperr.New(apperr.Validation, "amount_paid must be positive"))
	}

	purchase := &models.Purchase{
		UserEmail:           req.UserEmail,
		PackType:            req.PackType,
		StoryIDs:            datatypes.JSONSlice[uint64](req.StoryIDs),
		AmountPaid:          req.AmountPaid,
		PayPalTransactionID: req.PayPalTransactionID,
		IsActive:            true,
	}
	if err := sc.purchases.Create(purchase); err != nil {
		return jsonError(c, apperr.FromDB(err, "purchase not found"))
	}

	return jsonSuccess(c, fiber.Map{"purchase": purchase})
}

// HandleCheckAccess reports whether a user may access one story
func (sc *StoryController) HandleCheckAccess(c *fiber.Ctx) error {
	email := strings.TrimSpace(c.Query("email"))
	storyIDRaw := strings.TrimSpace(c.Query("story_id"))
	if email == "" || storyIDRaw == "" {
		return jsonError(c, apperr.New(apperr.Validation, "email and story_id are required"))
	}
	storyID, err := strconv.ParseUint(storyIDRaw, 10, 64)
	if err != nil {
		return jsonError(c, apperr.New(apperr.Validation, "invalid story id"))
	}

	hasAccess, err := sc.resolver.HasAccess(email, storyID)
	if err != nil {
		return jsonError(c, apperr.Wrap(apperr.Persistence, "failed to check access", err))
	}
	return jsonSuccess(c, fiber.Map{"has_access": hasAccess})
}

type simulatePurchaseRequest struct {
	UserEmail string  `json:"user_email"`
	PackType  string  `json:"pack_type"`
	StoryID   *uint64 `json:"story_id"`
}

// HandleSimulatePurchase writes a test ledger row without a gateway call
func (sc *StoryController) HandleSimulatePurchase(c *fiber.Ctx) error {
	var req simulatePurchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, apperr.Wrap(apperr.Validation, "invalid request body", err))
	}

	purchase, err := sc.payments.Simulate(payments.SimulatePurchaseInput{
		UserEmail: req.UserEmail,
		PackType:  req.PackType,
		StoryID:   req.StoryID,
	})
	if err != nil {
		return jsonError(c, err)
	}

	return jsonSuccess(c, fiber.Map{
		"purchase_id": purchase.ID,
		"message":     "Achat simulé: " + purchase.PackType,
	})
}
