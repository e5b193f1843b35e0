package controllers

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/TontonYahya/tonton-stories/app/models"
	"github.com/TontonYahya/tonton-stories/app/repository"
	"github.com/TontonYahya/tonton-stories/internal/pkg/apperr"
	"github.com/TontonYahya/tonton-stories/internal/pkg/cache"
)

const (
	activePacksCacheKey = "packs:active"
	activePacksCacheTTL = 5 * time.Minute
)

// PackController handles the pack catalog routes
type PackController struct {
	packs repository.PackRepository
}

// NewPackController creates a pack controller with its repository
func NewPackController(packs repository.PackRepository) *PackController {
	return &PackController{packs: packs}
}

// HandleGetPacks returns the active packs, served from cache when warm
func (pc *PackController) HandleGetPacks(c *fiber.Ctx) error {
	if cached, err := cache.Get(activePacksCacheKey); err == nil && cached != "" {
		var responses []models.PackResponse
		if err := json.Unmarshal([]byte(cached), &responses); err == nil {
			return jsonSuccess(c, fiber.Map{"packs": responses})
		}
	}

	packs, err := pc.packs.GetActive()
	if err != nil {
		return jsonError(c, apperr.Wrap(apperr.Persistence, "failed to load packs", err))
	}

	responses := make([]models.PackResponse, 0, len(packs))
	for i := range packs {
		responses = append(responses, packs[i].ToResponse())
	}

	if raw, err := json.Marshal(responses); err == nil {
		_ = cache.Set(activePacksCacheKey, string(raw), activePacksCacheTTL)
	}

	return jsonSuccess(c, fiber.Map{"packs": responses})
}

// HandleGetPack returns one active pack by its stable string key
func (pc *PackController) HandleGetPack(c *fiber.Ctx) error {
	packID := strings.TrimSpace(c.Params("pack_id"))
	if packID == "" {
		return jsonError(c, apperr.New(apperr.Validation, "pack id is required"))
	}

	pack, err := pc.packs.GetActiveByPackID(packID)
	if err != nil {
		return jsonError(c, apperr.FromDB(err, "pack not found"))
	}
	return jsonSuccess(c, fiber.Map{"pack": pack.ToResponse()})
}

type createPackRequest struct {
	PackID        string   `json:"pack_id"`
	Name          string   `json:"name"`
	Price         *float64 `json:"price"`
	OriginalPrice *float64 `json:"original_price"`
	Description   string   `json:"description"`
	StoriesCount  string   `json:"stories_count"`
}

// HandleCreatePack creates a new pack
func (pc *PackController) HandleCreatePack(c *fiber.Ctx) error {
	var req createPackRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, apperr.Wrap(apperr.Validation, "invalid request body", err))
	}
	if strings.TrimSpace(req.PackID) == "" {
		return jsonError(c, apperr.New(apperr.Validation, "pack_id is required"))
	}
	if strings.TrimSpace(req.Name) == "" {
		return jsonError(c, apperr.New(apperr.Validation, "name is required"))
	}
	if req.Price == nil {
		return jsonError(c, apperr.New(apperr.Validation, "price is required"))
	}
	if strings.TrimSpace(req.StoriesCount) == "" {
		return jsonError(c, apperr.New(apperr.Validation, "stories_count is required"))
	}

	exists, err := pc.packs.PackIDExists(req.PackID)
	if err != nil {
		return jsonError(c, apperr.Wrap(apperr.Persistence, "failed to check pack id", err))
	}
	if exists {
		return jsonError(c, apperr.New(apperr.Conflict, "a pack with this id already exists"))
	}

	pack := &models.Pack{
		PackID:        req.PackID,
		Name:          req.Name,
		Price:         *req.Price,
		OriginalPrice: req.OriginalPrice,
		Description:   req.Description,
		StoriesCount:  req.StoriesCount,
		Status:        models.PackStatusActive,
	}
	if err := pack.Validate(); err != nil {
		return jsonError(c, apperr.Wrap(apperr.Validation, "invalid pack data", err))
	}
	if err := pc.packs.Create(pack); err != nil {
		return jsonError(c, apperr.FromDB(err, "pack not found"))
	}

	invalidatePackCache()
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"pack":    pack.ToResponse(),
		"message": "Pack créé avec succès",
	})
}

type updatePackRequest struct {
	Name          *string  `json:"name"`
	Price         *float64 `json:"price"`
	OriginalPrice *float64 `json:"original_price"`
	Description   *string  `json:"description"`
	StoriesCount  *string  `json:"stories_count"`
	IsActive      *bool    `json:"is_active"`
}

// HandleUpdatePack partially updates a pack by its numeric id
func (pc *PackController) HandleUpdatePack(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return jsonError(c, apperr.Validationf("invalid pack id %q", c.Params("id")))
	}

	pack, err := pc.packs.GetByID(uint(id))
	if err != nil {
		return jsonError(c, apperr.FromDB(err, "pack not found"))
	}

	var req updatePackRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, apperr.Wrap(apperr.Validation, "invalid request body", err))
	}

	if req.Name != nil {
		pack.Name = *req.Name
	}
	if req.Price != nil {
		pack.Price = *req.Price
	}
	if req.OriginalPrice != nil {
		pack.OriginalPrice = req.OriginalPrice
	}
	if req.Description != nil {
		pack.Description = *req.Description
	}
	if req.StoriesCount != nil {
		pack.StoriesCount = *req.StoriesCount
	}
	if req.IsActive != nil {
		if *req.IsActive {
			pack.Status = models.PackStatusActive
		} else {
			pack.Status = models.PackStatusRetired
		}
	}

	if err := pack.Validate(); err != nil {
		return jsonError(c, apperr.Wrap(apperr.Validation, "invalid pack data", err))
	}
	if err := pc.packs.Update(pack); err != nil {
		return jsonError(c, apperr.FromDB(err, "pack not found"))
	}

	invalidatePackCache()
	return jsonSuccess(c, fiber.Map{
		"pack":    pack.ToResponse(),
		"message": "Pack mis à jour avec succès",
	})
}

// HandleDeletePack retires a pack; the row stays for purchase history
func (pc *PackController) HandleDeletePack(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return jsonError(c, apperr.Validationf("invalid pack id %q", c.Params("id")))
	}

	if err := pc.packs.Retire(uint(id)); err != nil {
		return jsonError(c, apperr.FromDB(err, "pack not found"))
	}

	invalidatePackCache()
	return jsonSuccess(c, fiber.Map{"message": "Pack désactivé avec succès"})
}

// HandleInitPacks seeds the default packs, skipping existing pack_ids
func (pc *PackController) HandleInitPacks(c *fiber.Ctx) error {
	if err := pc.packs.SeedDefaults(); err != nil {
		return jsonError(c, apperr.Wrap(apperr.Persistence, "failed to initialize packs", err))
	}

	invalidatePackCache()
	return jsonSuccess(c, fiber.Map{"message": "Packs initialisés avec succès"})
}

// invalidatePackCache drops the cached storefront pack list after writes.
// The admin console shares it.
func invalidatePackCache() {
	_ = cache.Delete(activePacksCacheKey)
}
