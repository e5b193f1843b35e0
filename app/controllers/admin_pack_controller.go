package controllers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/TontonYahya/tonton-stories/app/models"
	"github.com/TontonYahya/tonton-stories/app/repository"
)

// AdminPackController handles the pack management pages of the admin console
type AdminPackController struct {
	packs repository.PackRepository
}

// NewAdminPackController creates an admin pack controller with its
// repository
func NewAdminPackController(packs repository.PackRepository) *AdminPackController {
	return &AdminPackController{packs: packs}
}

// HandlePacksPage renders the pack management page, retired packs included
func (apc *AdminPackController) HandlePacksPage(c *fiber.Ctx) error {
	packs, err := apc.packs.GetAll()
	if err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "Erreur lors du chargement des packs",
		}
		return flash.WithError(c, fm).Redirect("/admin")
	}

	return c.Render("admin/packs", fiber.Map{
		"Title":     "Gestion des packs",
		"Packs":     packs,
		"Flash":     flash.Get(c),
		"CSRFToken": c.Locals("csrf"),
	})
}

// HandleAddPackPage renders the creation form
func (apc *AdminPackController) HandleAddPackPage(c *fiber.Ctx) error {
	return c.Render("admin/pack_form", fiber.Map{
		"Title":     "Ajouter un pack",
		"Flash":     flash.Get(c),
		"CSRFToken": c.Locals("csrf"),
	})
}

// HandleAddPack creates a pack from the submitted form
func (apc *AdminPackController) HandleAddPack(c *fiber.Ctx) error {
	pack := &models.Pack{Status: models.PackStatusActive}
	if err := apc.packFromForm(c, pack); err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": err.Error(),
		}
		return flash.WithError(c, fm).Redirect("/admin/packs/add")
	}

	exists, err := apc.packs.PackIDExists(pack.PackID)
	if err == nil && exists {
		fm := fiber.Map{
			"type":    "error",
			"message": "Un pack avec cet identifiant existe déjà",
		}
		return flash.WithError(c, fm).Redirect("/admin/packs/add")
	}

	if err := apc.packs.Create(pack); err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "Erreur lors de la création du pack",
		}
		return flash.WithError(c, fm).Redirect("/admin/packs/add")
	}

	invalidatePackCache()
	fm := fiber.Map{
		"type":    "success",
		"message": "Pack '" + pack.Name + "' créé avec succès",
	}
	return flash.WithSuccess(c, fm).Redirect("/admin/packs")
}

// HandleEditPackPage renders the edit form for one pack
func (apc *AdminPackController) HandleEditPackPage(c *fiber.Ctx) error {
	pack, err := apc.packFromParams(c)
	if err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "Pack introuvable",
		}
		return flash.WithError(c, fm).Redirect("/admin/packs")
	}

	return c.Render("admin/pack_form", fiber.Map{
		"Title":     "Modifier le pack",
		"Pack":      pack,
		"Flash":     flash.Get(c),
		"CSRFToken": c.Locals("csrf"),
	})
}

// HandleEditPack updates a pack from the submitted form
func (apc *AdminPackController) HandleEditPack(c *fiber.Ctx) error {
	pack, err := apc.packFromParams(c)
	if err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "Pack introuvable",
		}
		return flash.WithError(c, fm).Redirect("/admin/packs")
	}

	if err := apc.packFromForm(c, pack); err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": err.Error(),
		}
		return flash.WithError(c, fm).Redirect("/admin/packs/edit/" + c.Params("id"))
	}
	if c.FormValue("is_active") != "" {
		pack.Status = models.PackStatusActive
	} else {
		pack.Status = models.PackStatusRetired
	}

	if err := apc.packs.Update(pack); err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "Erreur lors de la mise à jour du pack",
		}
		return flash.WithError(c, fm).Redirect("/admin/packs/edit/" + c.Params("id"))
	}

	invalidatePackCache()
	fm := fiber.Map{
		"type":    "success",
		"message": "Pack '" + pack.Name + "' mis à jour avec succès",
	}
	return flash.WithSuccess(c, fm).Redirect("/admin/packs")
}

// HandleDeletePack retires a pack; the row stays for the purchase history
func (apc *AdminPackController) HandleDeletePack(c *fiber.Ctx) error {
	pack, err := apc.packFromParams(c)
	if err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "Pack introuvable",
		}
		return flash.WithError(c, fm).Redirect("/admin/packs")
	}

	if err := apc.packs.Retire(pack.ID); err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "Erreur lors de la désactivation du pack",
		}
		return flash.WithError(c, fm).Redirect("/admin/packs")
	}

	invalidatePackCache()
	fm := fiber.Map{
		"type":    "success",
		"message": "Pack '" + pack.Name + "' désactivé",
	}
	return flash.WithSuccess(c, fm).Redirect("/admin/packs")
}

func (apc *AdminPackController) packFromParams(c *fiber.Ctx) (*models.Pack, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return nil, err
	}
	return apc.packs.GetByID(uint(id))
}

func (apc *AdminPackController) packFromForm(c *fiber.Ctx, pack *models.Pack) error {
	if pack.ID == 0 {
		pack.PackID = strings.TrimSpace(c.FormValue("pack_id"))
	}
	pack.Name = strings.TrimSpace(c.FormValue("name"))
	pack.Description = strings.TrimSpace(c.FormValue("description"))
	pack.StoriesCount = strings.TrimSpace(c.FormValue("stories_count"))

	if priceRaw := strings.TrimSpace(c.FormValue("price")); priceRaw != "" {
		price, err := strconv.ParseFloat(priceRaw, 64)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Prix invalide")
		}
		pack.Price = price
	}

	if origRaw := strings.TrimSpace(c.FormValue("original_price")); origRaw != "" {
		orig, err := strconv.ParseFloat(origRaw, 64)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Prix d'origine invalide")
		}
		pack.OriginalPrice = &orig
	} else {
		pack.OriginalPrice = nil
	}

	return pack.Validate()
}
