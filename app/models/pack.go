package models

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Pack lifecycle states. A retired pack disappears from the storefront but
// its row stays so historical purchases keep a traceable pack_type.
const (
	PackStatusActive  = "active"
	PackStatusRetired = "retired"
)

// PackTypeUnlimited is the pack identifier granting the whole catalog,
// including stories added after purchase.
const PackTypeUnlimited = "unlimited"

// StoriesCountUnlimited is the sentinel used in the stories_count column.
const StoriesCountUnlimited = "∞"

// Pack is a fixed pricing tier granting access to some number of stories.
type Pack struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	PackID        string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"pack_id" validate:"required,min=1,max=50"`
	Name          string    `gorm:"type:varchar(100);not null" json:"name" validate:"required,min=1,max=100"`
	Price         float64   `gorm:"not null" json:"price" validate:"gte=0"`
	OriginalPrice *float64  `json:"original_price"`
	Description   string    `gorm:"type:varchar(200)" json:"description"`
	StoriesCount  string    `gorm:"type:varchar(20);not null" json:"stories_count" validate:"required,max=20"`
	Status        string    `gorm:"type:varchar(16);not null;default:'active';index" json:"status"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the Pack model
func (Pack) TableName() string {
	return "packs"
}

func (p *Pack) Validate() error {
	v := validator.New()
	return v.Struct(p)
}

func (p *Pack) IsActive() bool {
	return p.Status == PackStatusActive
}

// Savings returns the discount percentage as a display string ("16%") when
// an original price above the current price exists, nil otherwise.
func (p *Pack) Savings() *string {
	if p.OriginalPrice != nil && *p.OriginalPrice > p.Price {
		percent := int(((*p.OriginalPrice - p.Price) / *p.OriginalPrice) * 100)
		s := fmt.Sprintf("%d%%", percent)
		return &s
	}
	return nil
}

// PackResponse is the API shape of a pack, carrying the derived fields the
// struct itself cannot express.
type PackResponse struct {
	ID            uint      `json:"id"`
	PackID        string    `json:"pack_id"`
	Name          string    `json:"name"`
	Price         float64   `json:"price"`
	OriginalPrice *float64  `json:"original_price"`
	Description   string    `json:"description"`
	StoriesCount  string    `json:"stories_count"`
	Status        string    `json:"status"`
	IsActive      bool      `json:"is_active"`
	Savings       *string   `json:"savings"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (p *Pack) ToResponse() PackResponse {
	return PackResponse{
		ID:            p.ID,
		PackID:        p.PackID,
		Name:          p.Name,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		Description:   p.Description,
		StoriesCount:  p.StoriesCount,
		Status:        p.Status,
		IsActive:      p.IsActive(),
		Savings:       p.Savings(),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func floatPtr(v float64) *float64 { return &v }

// DefaultPacks returns the packs seeded into an empty catalog.
func DefaultPacks() []Pack {
	return []Pack{
		{
			PackID:       "single",
			Name:         "1 Histoire",
			Price:        2.99,
			Description:  "Achat unique",
			StoriesCount: "1",
			Status:       PackStatusActive,
		},
		{
			PackID:        "pack10",
			Name:          "10 Histoires",
			Price:         24.99,
			OriginalPrice: floatPtr(29.90),
			Description:   "Économisez 16%",
			StoriesCount:  "10",
			Status:        PackStatusActive,
		},
		{
			PackID:        "pack50",
			Name:          "50 Histoires",
			Price:         99.99,
			OriginalPrice: floatPtr(149.50),
			Description:   "Économisez 33%",
			StoriesCount:  "50",
			Status:        PackStatusActive,
		},
		{
			PackID:        "pack100",
			Name:          "100 Histoires",
			Price:         179.99,
			OriginalPrice: floatPtr(299.00),
			Description:   "Économisez 40%",
			StoriesCount:  "100",
			Status:        PackStatusActive,
		},
		{
			PackID:       PackTypeUnlimited,
			Name:         "Collection Complète",
			Price:        249.99,
			Description:  "Accès illimité + futures histoires",
			StoriesCount: StoriesCountUnlimited,
			Status:       PackStatusActive,
		},
	}
}

func FindPackByID(db *gorm.DB, id uint) (*Pack, error) {
	var pack Pack
	err := db.First(&pack, id).Error
	if err != nil {
		return nil, err
	}
	return &pack, nil
}

// FindActivePackByPackID looks a pack up by its stable string key,
// storefront view only.
func FindActivePackByPackID(db *gorm.DB, packID string) (*Pack, error) {
	var pack Pack
	err := db.Where("pack_id = ? AND status = ?", packID, PackStatusActive).First(&pack).Error
	if err != nil {
		return nil, err
	}
	return &pack, nil
}

func GetActivePacks(db *gorm.DB) ([]Pack, error) {
	var packs []Pack
	err := db.Where("status = ?", PackStatusActive).Order("id ASC").Find(&packs).Error
	return packs, err
}
