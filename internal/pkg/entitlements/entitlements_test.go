package entitlements

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/TontonYahya/tonton-stories/app/models"
)

type fakeStoryRepo struct {
	ids []uint64
}

func (f *fakeStoryRepo) Create(*models.Story) error { return nil }

func (f *fakeStoryRepo) GetByID(uint64) (*models.Story, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeStoryRepo) GetAll() ([]models.Story, error) { return nil, nil }
func (f *fakeStoryRepo) GetOldestFirst(limit int) ([]models.Story, error) {
	stories := make([]models.Story, 0, limit)
	for i, id := range f.ids {
		if i >= limit {
			break
		}
		stories = append(stories, models.Story{ID: id})
	}
	return stories, nil
}
func (f *fakeStoryRepo) GetAllIDs() ([]uint64, error) { return f.ids, nil }
func (f *fakeStoryRepo) Update(*models.Story) error   { return nil }
func (f *fakeStoryRepo) Delete(uint64) error          { return nil }
func (f *fakeStoryRepo) Count() (int64, error)        { return int64(len(f.ids)), nil }

type fakePurchaseRepo struct {
	rows []models.Purchase
}

func (f *fakePurchaseRepo) Create(p *models.Purchase) error {
	f.rows = append(f.rows, *p)
	return nil
}

func (f *fakePurchaseRepo) CreateIfNotExists(p *models.Purchase) (bool, *models.Purchase, error) {
	f.rows = append(f.rows, *p)
	return true, p, nil
}

func (f *fakePurchaseRepo) GetActiveByEmail(email string) ([]models.Purchase, error) {
	var out []models.Purchase
	for _, r := range f.rows {
		if r.UserEmail == email && r.IsActive {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakePurchaseRepo) GetByEmail(email string) ([]models.Purchase, error) {
	var out []models.Purchase
	for _, r := range f.rows {
		if r.UserEmail == email {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakePurchaseRepo) GetRecent(limit int) ([]models.Purchase, error) { return f.rows, nil }

func (f *fakePurchaseRepo) HasActiveUnlimited(email string) (bool, error) {
	for _, r := range f.rows {
		if r.UserEmail == email && r.IsActive && r.IsUnlimited() {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePurchaseRepo) Deactivate(id uint64) error { return nil }

func storyIDs(ids ...uint64) datatypes.JSONSlice[uint64] {
	return datatypes.JSONSlice[uint64](ids)
}

func TestResolveEmptyLedger(t *testing.T) {
	resolver := NewResolver(&fakePurchaseRepo{}, &fakeStoryRepo{ids: []uint64{1, 2, 3}})

	ent, err := resolver.Resolve("nobody@example.com")
	assert.NoError(t, err)
	assert.False(t, ent.HasUnlimited)
	assert.Empty(t, ent.UnlockedStoryIDs)
}

func TestResolveUnionOfFinitePurchases(t *testing.T) {
	purchases := &fakePurchaseRepo{rows: []models.Purchase{
		{UserEmail: "u@example.com", PackType: "single", StoryIDs: storyIDs(3), IsActive: true},
		{UserEmail: "u@example.com", PackType: "pack10", StoryIDs: storyIDs(1, 2, 3), IsActive: true},
		{UserEmail: "other@example.com", PackType: "single", StoryIDs: storyIDs(9), IsActive: true},
	}}
	resolver := NewResolver(purchases, &fakeStoryRepo{ids: []uint64{1, 2, 3, 4}})

	ent, err := resolver.Resolve("u@example.com")
	assert.NoError(t, err)
	assert.False(t, ent.HasUnlimited)
	assert.Equal(t, []uint64{1, 2, 3}, ent.UnlockedStoryIDs)
}

func TestResolveIgnoresInactiveRows(t *testing.T) {
	purchases := &fakePurchaseRepo{rows: []models.Purchase{
		{UserEmail: "u@example.com", PackType: "single", StoryIDs: storyIDs(7), IsActive: false},
	}}
	resolver := NewResolver(purchases, &fakeStoryRepo{ids: []uint64{7}})

	ent, err := resolver.Resolve("u@example.com")
	assert.NoError(t, err)
	assert.Empty(t, ent.UnlockedStoryIDs)
}

func TestResolveUnlimitedCoversGrowingCatalog(t *testing.T) {
	purchases := &fakePurchaseRepo{rows: []models.Purchase{
		{UserEmail: "u@example.com", PackType: models.PackTypeUnlimited, IsActive: true},
	}}
	catalog := &fakeStoryRepo{ids: []uint64{1, 2}}
	resolver := NewResolver(purchases, catalog)

	ent, err := resolver.Resolve("u@example.com")
	assert.NoError(t, err)
	assert.True(t, ent.HasUnlimited)
	assert.Equal(t, []uint64{1, 2}, ent.UnlockedStoryIDs)

	// A story added after the purchase is covered on the next resolve
	catalog.ids = append(catalog.ids, 3)
	ent, err = resolver.Resolve("u@example.com")
	assert.NoError(t, err)
	assert.Equal(t, []uint64{1, 2, 3}, ent.UnlockedStoryIDs)
	assert.True(t, ent.Unlocks(3))
}

func TestResolveNilStoryIDsContributeNothing(t *testing.T) {
	purchases := &fakePurchaseRepo{rows: []models.Purchase{
		{UserEmail: "u@example.com", PackType: "pack10", StoryIDs: nil, IsActive: true},
	}}
	resolver := NewResolver(purchases, &fakeStoryRepo{ids: []uint64{1, 2, 3}})

	ent, err := resolver.Resolve("u@example.com")
	assert.NoError(t, err)
	assert.Empty(t, ent.UnlockedStoryIDs)
}

func TestHasAccess(t *testing.T) {
	purchases := &fakePurchaseRepo{rows: []models.Purchase{
		{UserEmail: "finite@example.com", PackType: "single", StoryIDs: storyIDs(5), IsActive: true},
		{UserEmail: "unlimited@example.com", PackType: models.PackTypeUnlimited, IsActive: true},
	}}
	resolver := NewResolver(purchases, &fakeStoryRepo{ids: []uint64{1, 5, 99}})

	ok, err := resolver.HasAccess("finite@example.com", 5)
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = resolver.HasAccess("finite@example.com", 99)
	assert.NoError(t, err)
	assert.False(t, ok)

	ok, err = resolver.HasAccess("unlimited@example.com", 99)
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = resolver.HasAccess("nobody@example.com", 1)
	assert.NoError(t, err)
	assert.False(t, ok)
}
