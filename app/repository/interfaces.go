package repository

import (
	"github.com/TontonYahya/tonton-stories/app/models"
)

// StoryRepository defines the interface for story-related database operations
type StoryRepository interface {
	Create(story *models.Story) error
	GetByID(id uint64) (*models.Story, error)
	GetAll() ([]models.Story, error)
	GetOldestFirst(limit int) ([]models.Story, error)
	GetAllIDs() ([]uint64, error)
	Update(story *models.Story) error
	Delete(id uint64) error
	Count() (int64, error)
}

// PackRepository defines the interface for pack-related database operations
type PackRepository interface {
	Create(pack *models.Pack) error
	GetByID(id uint) (*models.Pack, error)
	GetActiveByPackID(packID string) (*models.Pack, error)
	GetActive() ([]models.Pack, error)
	GetAll() ([]models.Pack, error)
	PackIDExists(packID string) (bool, error)
	Update(pack *models.Pack) error
	Retire(id uint) error
	SeedDefaults() error
}

// PurchaseRepository defines the interface for the purchase ledger
type PurchaseRepository interface {
	Create(purchase *models.Purchase) error
	// CreateIfNotExists inserts the purchase unless a row with the same
	// paypal_transaction_id already exists. It reports whether a new row
	// was created and returns the stored row either way.
	CreateIfNotExists(purchase *models.Purchase) (bool, *models.Purchase, error)
	GetActiveByEmail(email string) ([]models.Purchase, error)
	GetByEmail(email string) ([]models.Purchase, error)
	GetRecent(limit int) ([]models.Purchase, error)
	HasActiveUnlimited(email string) (bool, error)
	Deactivate(id uint64) error
}

// Repositories holds all repository instances
type Repositories struct {
	Story    StoryRepository
	Pack     PackRepository
	Purchase PurchaseRepository
}
