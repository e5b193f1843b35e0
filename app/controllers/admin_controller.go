package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"
	"golang.org/x/crypto/bcrypt"

	"github.com/TontonYahya/tonton-stories/app/repository"
	"github.com/TontonYahya/tonton-stories/internal/pkg/config"
	"github.com/TontonYahya/tonton-stories/internal/pkg/middleware"
	"github.com/TontonYahya/tonton-stories/internal/pkg/session"
)

// AdminController handles login, logout and the dashboard of the admin
// console
type AdminController struct {
	cfg       *config.Config
	stories   repository.StoryRepository
	purchases repository.PurchaseRepository
}

// NewAdminController creates an admin controller with its dependencies
func NewAdminController(cfg *config.Config, stories repository.StoryRepository, purchases repository.PurchaseRepository) *AdminController {
	return &AdminController{
		cfg:       cfg,
		stories:   stories,
		purchases: purchases,
	}
}

// HandleLoginPage renders the login form
func (ac *AdminController) HandleLoginPage(c *fiber.Ctx) error {
	if isLoggedIn(c) {
		return c.Redirect("/admin", fiber.StatusSeeOther)
	}

	return c.Render("admin/login", fiber.Map{
		"Title":     "Connexion",
		"ShopName":  ac.cfg.Shop.ShopName,
		"Flash":     flash.Get(c),
		"CSRFToken": c.Locals("csrf"),
	})
}

// HandleLogin checks the password and opens an admin session
func (ac *AdminController) HandleLogin(c *fiber.Ctx) error {
	password := c.FormValue("password")

	if err := bcrypt.CompareHashAndPassword([]byte(ac.cfg.Admin.PasswordHash), []byte(password)); err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "Mot de passe incorrect",
		}
		return flash.WithError(c, fm).Redirect("/admin/login")
	}

	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "Erreur de session, veuillez réessayer",
		}
		return flash.WithError(c, fm).Redirect("/admin/login")
	}
	sess.Set(middleware.AdminAuthKey, true)
	if err := sess.Save(); err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "Erreur de session, veuillez réessayer",
		}
		return flash.WithError(c, fm).Redirect("/admin/login")
	}

	return c.Redirect("/admin", fiber.StatusSeeOther)
}

// HandleLogout destroys the admin session
func (ac *AdminController) HandleLogout(c *fiber.Ctx) error {
	if sess, err := session.GetSessionStore().Get(c); err == nil {
		_ = sess.Destroy()
	}

	fm := fiber.Map{
		"type":    "success",
		"message": "Vous êtes déconnecté",
	}
	return flash.WithSuccess(c, fm).Redirect("/admin/login")
}

// HandleDashboard renders the admin dashboard with the catalog and the most
// recent purchases
func (ac *AdminController) HandleDashboard(c *fiber.Ctx) error {
	stories, err := ac.stories.GetAll()
	if err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "Erreur lors du chargement des histoires",
		}
		return flash.WithError(c, fm).Redirect("/admin/login")
	}

	recent, err := ac.purchases.GetRecent(10)
	if err != nil {
		recent = nil
	}

	return c.Render("admin/dashboard", fiber.Map{
		"Title":      "Tableau de bord",
		"ShopName":   ac.cfg.Shop.ShopName,
		"Stories":    stories,
		"StoryCount": len(stories),
		"Purchases":  recent,
		"Flash":      flash.Get(c),
		"CSRFToken":  c.Locals("csrf"),
	})
}

// HandleDeactivatePurchase flags a ledger row inactive, revoking its grant.
// Rows are never deleted.
func (ac *AdminController) HandleDeactivatePurchase(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "Identifiant d'achat invalide",
		}
		return flash.WithError(c, fm).Redirect("/admin")
	}

	if err := ac.purchases.Deactivate(id); err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "Achat introuvable",
		}
		return flash.WithError(c, fm).Redirect("/admin")
	}

	fm := fiber.Map{
		"type":    "success",
		"message": "Achat désactivé",
	}
	return flash.WithSuccess(c, fm).Redirect("/admin")
}
