package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Story is a purchasable audio story. Stories are hard-deleted; purchases
// keep referencing deleted ids without retracting the entitlement.
type Story struct {
	ID            uint64    `gorm:"primaryKey" json:"id"`
	Title         string    `gorm:"type:varchar(200);not null" json:"title" validate:"required,min=1,max=200"`
	Description   string    `gorm:"type:text;not null" json:"description" validate:"required"`
	Duration      string    `gorm:"type:varchar(10);not null" json:"duration" validate:"required,max=10"`
	Category      string    `gorm:"type:varchar(50);not null" json:"category" validate:"required,max=50"`
	Price         float64   `gorm:"not null" json:"price" validate:"gte=0"`
	AudioFilePath *string   `gorm:"type:varchar(500)" json:"audio_file_path"`
	IsPremium     bool      `gorm:"default:true" json:"is_premium"`
	PlayCount     int64     `gorm:"not null;default:0" json:"play_count"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the Story model
func (Story) TableName() string {
	return "stories"
}

// StoryCategories are the selectable categories in the admin console.
var StoryCategories = []string{"Prophètes", "Compagnons", "Coran", "Morale", "Histoire"}

func (s *Story) Validate() error {
	v := validator.New()
	return v.Struct(s)
}

func FindStoryByID(db *gorm.DB, id uint64) (*Story, error) {
	var story Story
	err := db.First(&story, id).Error
	if err != nil {
		return nil, err
	}
	return &story, nil
}

func GetAllStories(db *gorm.DB) ([]Story, error) {
	var stories []Story
	err := db.Find(&stories).Error
	return stories, err
}

// GetStoriesOldestFirst returns up to limit stories in a stable catalog
// order. Finite packs unlock the first N stories of this ordering, so it
// must not depend on insertion or query order.
func GetStoriesOldestFirst(db *gorm.DB, limit int) ([]Story, error) {
	var stories []Story
	err := db.Order("created_at ASC, id ASC").Limit(limit).Find(&stories).Error
	return stories, err
}

func CountStories(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&Story{}).Count(&count).Error
	return count, err
}
