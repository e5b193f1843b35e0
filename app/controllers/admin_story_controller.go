package controllers

import (
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sujit-baniya/flash"

	"github.com/TontonYahya/tonton-stories/app/models"
	"github.com/TontonYahya/tonton-stories/app/repository"
	"github.com/TontonYahya/tonton-stories/internal/pkg/upload"
)

// Audio files are served from the static mount, uploads land next to it.
const audioUploadDir = "./public/static/audio"

// AdminStoryController handles the story management pages of the admin
// console
type AdminStoryController struct {
	stories repository.StoryRepository
}

// NewAdminStoryController creates an admin story controller with its
// repository
func NewAdminStoryController(stories repository.StoryRepository) *AdminStoryController {
	return &AdminStoryController{stories: stories}
}

// HandleAddStoryPage renders the creation form
func (asc *AdminStoryController) HandleAddStoryPage(c *fiber.Ctx) error {
	return c.Render("admin/story_form", fiber.Map{
		"Title":      "Ajouter une histoire",
		"Categories": models.StoryCategories,
		"Flash":      flash.Get(c),
		"CSRFToken":  c.Locals("csrf"),
	})
}

// HandleAddStory creates a story from the submitted form
func (asc *AdminStoryController) HandleAddStory(c *fiber.Ctx) error {
	story, err := asc.storyFromForm(c, &models.Story{})
	if err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": err.Error(),
		}
		return flash.WithError(c, fm).Redirect("/admin/stories/add")
	}

	if err := asc.stories.Create(story); err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "Erreur lors de la création de l'histoire",
		}
		return flash.WithError(c, fm).Redirect("/admin/stories/add")
	}

	fm := fiber.Map{
		"type":    "success",
		"message": "Histoire '" + story.Title + "' ajoutée avec succès",
	}
	return flash.WithSuccess(c, fm).Redirect("/admin")
}

// HandleEditStoryPage renders the edit form for one story
func (asc *AdminStoryController) HandleEditStoryPage(c *fiber.Ctx) error {
	story, err := asc.storyFromParams(c)
	if err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "Histoire introuvable",
		}
		return flash.WithError(c, fm).Redirect("/admin")
	}

	return c.Render("admin/story_form", fiber.Map{
		"Title":      "Modifier l'histoire",
		"Story":      story,
		"Categories": models.StoryCategories,
		"Flash":      flash.Get(c),
		"CSRFToken":  c.Locals("csrf"),
	})
}

// HandleEditStory updates a story from the submitted form
func (asc *AdminStoryController) HandleEditStory(c *fiber.Ctx) error {
	story, err := asc.storyFromParams(c)
	if err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "Histoire introuvable",
		}
		return flash.WithError(c, fm).Redirect("/admin")
	}

	previousAudio := story.AudioFilePath
	if _, err := asc.storyFromForm(c, story); err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": err.Error(),
		}
		return flash.WithError(c, fm).Redirect("/admin/stories/edit/" + c.Params("id"))
	}

	if err := asc.stories.Update(story); err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "Erreur lors de la mise à jour de l'histoire",
		}
		return flash.WithError(c, fm).Redirect("/admin/stories/edit/" + c.Params("id"))
	}

	// A replaced recording leaves its old file behind; remove it after the
	// row is saved.
	if previousAudio != nil && story.AudioFilePath != nil && *previousAudio != *story.AudioFilePath {
		removeAudioFile(*previousAudio)
	}

	fm := fiber.Map{
		"type":    "success",
		"message": "Histoire '" + story.Title + "' mise à jour avec succès",
	}
	return flash.WithSuccess(c, fm).Redirect("/admin")
}

// HandleDeleteStory removes a story and its audio file
func (asc *AdminStoryController) HandleDeleteStory(c *fiber.Ctx) error {
	story, err := asc.storyFromParams(c)
	if err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "Histoire introuvable",
		}
		return flash.WithError(c, fm).Redirect("/admin")
	}

	if err := asc.stories.Delete(story.ID); err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "Erreur lors de la suppression de l'histoire",
		}
		return flash.WithError(c, fm).Redirect("/admin")
	}

	if story.AudioFilePath != nil {
		removeAudioFile(*story.AudioFilePath)
	}

	fm := fiber.Map{
		"type":    "success",
		"message": "Histoire '" + story.Title + "' supprimée",
	}
	return flash.WithSuccess(c, fm).Redirect("/admin")
}

func (asc *AdminStoryController) storyFromParams(c *fiber.Ctx) (*models.Story, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return nil, err
	}
	return asc.stories.GetByID(id)
}

// storyFromForm fills a story from the multipart form, storing a new audio
// file when one was uploaded.
func (asc *AdminStoryController) storyFromForm(c *fiber.Ctx, story *models.Story) (*models.Story, error) {
	story.Title = strings.TrimSpace(c.FormValue("title"))
	story.Description = strings.TrimSpace(c.FormValue("description"))
	story.Duration = strings.TrimSpace(c.FormValue("duration"))
	story.Category = strings.TrimSpace(c.FormValue("category"))
	story.IsPremium = c.FormValue("is_premium") != ""

	if priceRaw := strings.TrimSpace(c.FormValue("price")); priceRaw != "" {
		price, err := strconv.ParseFloat(priceRaw, 64)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Prix invalide")
		}
		story.Price = price
	}

	if err := story.Validate(); err != nil {
		return nil, err
	}

	fileHeader, err := c.FormFile("audio_file")
	if err != nil {
		// No upload on this submit, keep the existing recording
		return story, nil
	}

	storedPath, err := asc.saveAudioFile(c, fileHeader)
	if err != nil {
		return nil, err
	}
	story.AudioFilePath = &storedPath

	return story, nil
}

func (asc *AdminStoryController) saveAudioFile(c *fiber.Ctx, fileHeader *multipart.FileHeader) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "Impossible de lire le fichier audio")
	}
	defer file.Close()

	head := make([]byte, 512)
	n, _ := file.Read(head)
	if _, err := upload.ValidateAudioBySniff(fileHeader.Filename, head[:n]); err != nil {
		return "", err
	}

	if err := os.MkdirAll(audioUploadDir, 0o755); err != nil {
		return "", err
	}

	filename := uuid.NewString() + strings.ToLower(filepath.Ext(fileHeader.Filename))
	if err := c.SaveFile(fileHeader, filepath.Join(audioUploadDir, filename)); err != nil {
		return "", err
	}

	return "/static/audio/" + filename, nil
}

// removeAudioFile deletes a stored recording. A missing file is not an
// error, the ledger row is what matters.
func removeAudioFile(publicPath string) {
	if !strings.HasPrefix(publicPath, "/static/audio/") {
		return
	}
	name := strings.TrimPrefix(publicPath, "/static/audio/")
	if name == "" {
		return
	}

	if err := os.Remove(filepath.Join(audioUploadDir, filepath.Base(name))); err != nil && !os.IsNotExist(err) {
		log.Printf("failed to remove audio file %s: %v", publicPath, err)
	}
}
