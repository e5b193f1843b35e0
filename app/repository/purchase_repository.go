package repository

import (
	"github.com/TontonYahya/tonton-stories/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// purchaseRepository implements the PurchaseRepository interface
type purchaseRepository struct {
	db *gorm.DB
}

// NewPurchaseRepository creates a new purchase repository instance
func NewPurchaseRepository(db *gorm.DB) PurchaseRepository {
	return &purchaseRepository{db: db}
}

// Create appends a purchase to the ledger
func (r *purchaseRepository) Create(purchase *models.Purchase) error {
	return r.db.Create(purchase).Error
}

// CreateIfNotExists inserts the purchase unless the external transaction id
// is already recorded. A retried capture therefore resolves to the original
// row instead of double-granting the entitlement.
func (r *purchaseRepository) CreateIfNotExists(purchase *models.Purchase) (bool, *models.Purchase, error) {
	if purchase.PayPalTransactionID == nil {
		// No idempotency key (manual ledger writes): plain insert.
		if err := r.db.Create(purchase).Error; err != nil {
			return false, nil, err
		}
		return true, purchase, nil
	}

	tx := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "paypal_transaction_id"}},
		DoNothing: true,
	}).Create(purchase)
	if tx.Error != nil {
		return false, nil, tx.Error
	}

	created := tx.RowsAffected > 0
	var stored models.Purchase
	if err := r.db.Where("paypal_transaction_id = ?", *purchase.PayPalTransactionID).
		First(&stored).Error; err != nil {
		return false, nil, err
	}
	return created, &stored, nil
}

// GetActiveByEmail retrieves the active ledger rows for one user
func (r *purchaseRepository) GetActiveByEmail(email string) ([]models.Purchase, error) {
	return models.GetActivePurchasesByEmail(r.db, email)
}

// GetByEmail retrieves every ledger row for one user
func (r *purchaseRepository) GetByEmail(email string) ([]models.Purchase, error) {
	return models.GetPurchasesByEmail(r.db, email)
}

// GetRecent retrieves the latest purchases for the admin dashboard
func (r *purchaseRepository) GetRecent(limit int) ([]models.Purchase, error) {
	return models.GetRecentPurchases(r.db, limit)
}

// HasActiveUnlimited reports whether the user holds an active unlimited
// purchase, without loading the full ledger.
func (r *purchaseRepository) HasActiveUnlimited(email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Purchase{}).
		Where("user_email = ? AND pack_type = ? AND is_active = ?", email, models.PackTypeUnlimited, true).
		Count(&count).Error
	return count > 0, err
}

// Deactivate flags a ledger row inactive. Rows are never deleted.
func (r *purchaseRepository) Deactivate(id uint64) error {
	result := r.db.Model(&models.Purchase{}).Where("id = ?", id).Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
