package repository

import (
	"sync"

	"gorm.io/gorm"
)

// NewRepositories creates all repository instances against one DB handle
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Story:    NewStoryRepository(db),
		Pack:     NewPackRepository(db),
		Purchase: NewPurchaseRepository(db),
	}
}

// Factory manages repository instances and ensures they are singletons
type Factory struct {
	db    *gorm.DB
	repos *Repositories
	once  sync.Once
}

// NewFactory creates a new repository factory
func NewFactory(db *gorm.DB) *Factory {
	return &Factory{
		db: db,
	}
}

// GetRepositories returns a singleton instance of all repositories
func (f *Factory) GetRepositories() *Repositories {
	f.once.Do(func() {
		f.repos = NewRepositories(f.db)
	})
	return f.repos
}

// GetStoryRepository returns the story repository instance
func (f *Factory) GetStoryRepository() StoryRepository {
	return f.GetRepositories().Story
}

// GetPackRepository returns the pack repository instance
func (f *Factory) GetPackRepository() PackRepository {
	return f.GetRepositories().Pack
}

// GetPurchaseRepository returns the purchase repository instance
func (f *Factory) GetPurchaseRepository() PurchaseRepository {
	return f.GetRepositories().Purchase
}

// Global factory instance
var globalFactory *Factory
var factoryOnce sync.Once

// InitializeFactory initializes the global repository factory
func InitializeFactory(db *gorm.DB) {
	factoryOnce.Do(func() {
		globalFactory = NewFactory(db)
	})
}

// GetGlobalFactory returns the global repository factory instance
func GetGlobalFactory() *Factory {
	if globalFactory == nil {
		panic("Repository factory not initialized. Call InitializeFactory first.")
	}
	return globalFactory
}
