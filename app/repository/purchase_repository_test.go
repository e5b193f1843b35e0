package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/TontonYahya/tonton-stories/app/models"
)

func TestCreateIfNotExistsDedupesTransactionID(t *testing.T) {
	db := newTestDB(t)
	repo := NewPurchaseRepository(db)

	txn := "TXN-1"
	first := &models.Purchase{
		UserEmail:           "a@b.com",
		PackType:            "single",
		StoryIDs:            datatypes.JSONSlice[uint64]{7},
		AmountPaid:          2.99,
		PayPalTransactionID: &txn,
		IsActive:            true,
	}
	created, stored, err := repo.CreateIfNotExists(first)
	require.NoError(t, err)
	assert.True(t, created)

	replayTxn := "TXN-1"
	replay := &models.Purchase{
		UserEmail:           "a@b.com",
		PackType:            "single",
		StoryIDs:            datatypes.JSONSlice[uint64]{7},
		AmountPaid:          2.99,
		PayPalTransactionID: &replayTxn,
		IsActive:            true,
	}
	createdAgain, storedAgain, err := repo.CreateIfNotExists(replay)
	require.NoError(t, err)
	assert.False(t, createdAgain)
	assert.Equal(t, stored.ID, storedAgain.ID)

	var count int64
	require.NoError(t, db.Model(&models.Purchase{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestDeactivateFlagsRowInactive(t *testing.T) {
	repo := NewPurchaseRepository(newTestDB(t))

	purchase := &models.Purchase{
		UserEmail:  "a@b.com",
		PackType:   "pack10",
		StoryIDs:   datatypes.JSONSlice[uint64]{1, 2},
		AmountPaid: 24.99,
		IsActive:   true,
	}
	require.NoError(t, repo.Create(purchase))

	require.NoError(t, repo.Deactivate(purchase.ID))

	active, err := repo.GetActiveByEmail("a@b.com")
	require.NoError(t, err)
	assert.Empty(t, active)

	// The row itself stays in the ledger
	all, err := repo.GetByEmail("a@b.com")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.False(t, all[0].IsActive)
}

func TestDeactivateUnknownPurchase(t *testing.T) {
	repo := NewPurchaseRepository(newTestDB(t))
	assert.ErrorIs(t, repo.Deactivate(42), gorm.ErrRecordNotFound)
}
