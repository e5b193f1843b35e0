package repository

import (
	"github.com/TontonYahya/tonton-stories/app/models"
	"gorm.io/gorm"
)

// storyRepository implements the StoryRepository interface
type storyRepository struct {
	db *gorm.DB
}

// NewStoryRepository creates a new story repository instance
func NewStoryRepository(db *gorm.DB) StoryRepository {
	return &storyRepository{db: db}
}

// Create creates a new story in the database
func (r *storyRepository) Create(story *models.Story) error {
	return r.db.Create(story).Error
}

// GetByID retrieves a story by its ID
func (r *storyRepository) GetByID(id uint64) (*models.Story, error) {
	return models.FindStoryByID(r.db, id)
}

// GetAll retrieves all stories
func (r *storyRepository) GetAll() ([]models.Story, error) {
	return models.GetAllStories(r.db)
}

// GetOldestFirst retrieves up to limit stories in stable catalog order.
// Finite packs grant the first N stories of this ordering.
func (r *storyRepository) GetOldestFirst(limit int) ([]models.Story, error) {
	return models.GetStoriesOldestFirst(r.db, limit)
}

// GetAllIDs retrieves the ids of every story currently in the catalog
func (r *storyRepository) GetAllIDs() ([]uint64, error) {
	var ids []uint64
	err := r.db.Model(&models.Story{}).Order("id ASC").Pluck("id", &ids).Error
	return ids, err
}

// Update updates an existing story in the database
func (r *storyRepository) Update(story *models.Story) error {
	return r.db.Save(story).Error
}

// Delete hard deletes a story by its ID
func (r *storyRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Story{}, id).Error
}

// Count returns the total number of stories
func (r *storyRepository) Count() (int64, error) {
	return models.CountStories(r.db)
}
