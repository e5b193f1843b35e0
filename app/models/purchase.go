package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Purchase is one ledger row of a successful payment. StoryIDs holds the
// explicit grant for finite packs and stays null for unlimited purchases.
// The unique index on paypal_transaction_id is the idempotency key that
// keeps a retried capture from double-granting.
type Purchase struct {
	ID                  uint64                       `gorm:"primaryKey" json:"id"`
	UserEmail           string                       `gorm:"type:varchar(200);not null;index" json:"user_email"`
	PackType            string                       `gorm:"type:varchar(50);not null" json:"pack_type"`
	StoryIDs            datatypes.JSONSlice[uint64]  `gorm:"type:json" json:"story_ids"`
	AmountPaid          float64                      `gorm:"not null" json:"amount_paid"`
	PayPalTransactionID *string                      `gorm:"type:varchar(200);uniqueIndex" json:"paypal_transaction_id"`
	PurchaseDate        time.Time                    `gorm:"autoCreateTime" json:"purchase_date"`
	IsActive            bool                         `gorm:"default:true" json:"is_active"`
}

// TableName specifies the table name for the Purchase model
func (Purchase) TableName() string {
	return "purchases"
}

// IsUnlimited reports whether this row grants the whole catalog.
func (p *Purchase) IsUnlimited() bool {
	return p.PackType == PackTypeUnlimited
}

func GetActivePurchasesByEmail(db *gorm.DB, email string) ([]Purchase, error) {
	var purchases []Purchase
	err := db.Where("user_email = ? AND is_active = ?", email, true).Find(&purchases).Error
	return purchases, err
}

func GetPurchasesByEmail(db *gorm.DB, email string) ([]Purchase, error) {
	var purchases []Purchase
	err := db.Where("user_email = ?", email).Find(&purchases).Error
	return purchases, err
}

func GetRecentPurchases(db *gorm.DB, limit int) ([]Purchase, error) {
	var purchases []Purchase
	err := db.Order("purchase_date DESC").Limit(limit).Find(&purchases).Error
	return purchases, err
}
