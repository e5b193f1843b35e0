package repository

import (
	"errors"

	"github.com/TontonYahya/tonton-stories/app/models"
	"gorm.io/gorm"
)

// packRepository implements the PackRepository interface
type packRepository struct {
	db *gorm.DB
}

// NewPackRepository creates a new pack repository instance
func NewPackRepository(db *gorm.DB) PackRepository {
	return &packRepository{db: db}
}

// Create creates a new pack in the database
func (r *packRepository) Create(pack *models.Pack) error {
	if pack.Status == "" {
		pack.Status = models.PackStatusActive
	}
	return r.db.Create(pack).Error
}

// GetByID retrieves a pack by its numeric ID regardless of lifecycle state
func (r *packRepository) GetByID(id uint) (*models.Pack, error) {
	return models.FindPackByID(r.db, id)
}

// GetActiveByPackID retrieves an active pack by its stable string key
func (r *packRepository) GetActiveByPackID(packID string) (*models.Pack, error) {
	return models.FindActivePackByPackID(r.db, packID)
}

// GetActive retrieves all active packs, storefront view
func (r *packRepository) GetActive() ([]models.Pack, error) {
	return models.GetActivePacks(r.db)
}

// GetAll retrieves every pack including retired ones
func (r *packRepository) GetAll() ([]models.Pack, error) {
	var packs []models.Pack
	err := r.db.Order("id ASC").Find(&packs).Error
	return packs, err
}

// PackIDExists reports whether any pack, active or retired, uses the key
func (r *packRepository) PackIDExists(packID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Pack{}).Where("pack_id = ?", packID).Count(&count).Error
	return count > 0, err
}

// Update updates an existing pack in the database
func (r *packRepository) Update(pack *models.Pack) error {
	return r.db.Save(pack).Error
}

// Retire moves a pack to the retired lifecycle state. The row remains
// retrievable by numeric id so historical purchases stay traceable.
func (r *packRepository) Retire(id uint) error {
	result := r.db.Model(&models.Pack{}).Where("id = ?", id).
		Update("status", models.PackStatusRetired)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SeedDefaults inserts the default packs, skipping pack_ids that already
// exist. Calling it repeatedly leaves the catalog unchanged.
func (r *packRepository) SeedDefaults() error {
	for _, pack := range models.DefaultPacks() {
		var existing models.Pack
		err := r.db.Where("pack_id = ?", pack.PackID).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		p := pack
		if err := r.db.Create(&p).Error; err != nil {
			return err
		}
	}
	return nil
}
