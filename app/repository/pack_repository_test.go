package repository

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/TontonYahya/tonton-stories/app/models"
)

// newTestDB opens a per-test in-memory database with the domain schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Story{}, &models.Pack{}, &models.Purchase{}))
	return db
}

func TestSeedDefaultsIsIdempotent(t *testing.T) {
	repo := NewPackRepository(newTestDB(t))

	require.NoError(t, repo.SeedDefaults())
	packs, err := repo.GetAll()
	require.NoError(t, err)
	require.Len(t, packs, 5)

	packIDs := make([]string, 0, len(packs))
	for _, p := range packs {
		packIDs = append(packIDs, p.PackID)
	}
	assert.ElementsMatch(t, []string{"single", "pack10", "pack50", "pack100", "unlimited"}, packIDs)

	// A second seed run skips the existing pack_ids
	require.NoError(t, repo.SeedDefaults())
	packs, err = repo.GetAll()
	require.NoError(t, err)
	assert.Len(t, packs, 5)
}

func TestSeedDefaultsKeepsExistingRows(t *testing.T) {
	db := newTestDB(t)
	repo := NewPackRepository(db)

	custom := &models.Pack{
		PackID:       "pack10",
		Name:         "Promo 10",
		Price:        19.99,
		StoriesCount: "10",
	}
	require.NoError(t, repo.Create(custom))

	require.NoError(t, repo.SeedDefaults())

	stored, err := repo.GetActiveByPackID("pack10")
	require.NoError(t, err)
	assert.Equal(t, "Promo 10", stored.Name)
	assert.Equal(t, 19.99, stored.Price)
}

func TestRetireKeepsRowRetrievable(t *testing.T) {
	repo := NewPackRepository(newTestDB(t))
	require.NoError(t, repo.SeedDefaults())

	pack, err := repo.GetActiveByPackID("pack10")
	require.NoError(t, err)
	require.NoError(t, repo.Retire(pack.ID))

	stored, err := repo.GetByID(pack.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PackStatusRetired, stored.Status)
	assert.False(t, stored.IsActive())

	active, err := repo.GetActive()
	require.NoError(t, err)
	assert.Len(t, active, 4)
	for _, p := range active {
		assert.NotEqual(t, "pack10", p.PackID)
	}

	// The storefront lookup no longer resolves a retired pack
	_, err = repo.GetActiveByPackID("pack10")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRetireUnknownPack(t *testing.T) {
	repo := NewPackRepository(newTestDB(t))
	assert.ErrorIs(t, repo.Retire(999), gorm.ErrRecordNotFound)
}
