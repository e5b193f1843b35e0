package entitlements

import (
	"sort"

	"github.com/TontonYahya/tonton-stories/app/models"
	"github.com/TontonYahya/tonton-stories/app/repository"
)

// Entitlement is the set of stories a user may access, derived from their
// purchase ledger.
type Entitlement struct {
	UnlockedStoryIDs []uint64
	HasUnlimited     bool
}

// Unlocks reports whether the entitlement covers the given story.
func (e *Entitlement) Unlocks(storyID uint64) bool {
	if e.HasUnlimited {
		return true
	}
	for _, id := range e.UnlockedStoryIDs {
		if id == storyID {
			return true
		}
	}
	return false
}

// Resolver computes entitlements from the purchase ledger and the catalog.
type Resolver struct {
	purchases repository.PurchaseRepository
	stories   repository.StoryRepository
}

// NewResolver creates a resolver from injected repositories.
func NewResolver(purchases repository.PurchaseRepository, stories repository.StoryRepository) *Resolver {
	return &Resolver{purchases: purchases, stories: stories}
}

// Resolve computes the unlocked-story set for a user. An unlimited purchase
// short-circuits to the full current catalog, so stories added after the
// purchase are included. Users without purchases get an empty set.
func (r *Resolver) Resolve(email string) (*Entitlement, error) {
	purchases, err := r.purchases.GetActiveByEmail(email)
	if err != nil {
		return nil, err
	}
	return r.resolvePurchases(purchases)
}

// ResolveWith computes the entitlement for ledger rows already loaded by
// the caller, sharing one resolution path with Resolve.
func (r *Resolver) ResolveWith(purchases []models.Purchase) (*Entitlement, error) {
	return r.resolvePurchases(purchases)
}

func (r *Resolver) resolvePurchases(purchases []models.Purchase) (*Entitlement, error) {
	for _, p := range purchases {
		if p.IsUnlimited() {
			ids, err := r.stories.GetAllIDs()
			if err != nil {
				return nil, err
			}
			return &Entitlement{UnlockedStoryIDs: ids, HasUnlimited: true}, nil
		}
	}

	seen := make(map[uint64]struct{})
	for _, p := range purchases {
		// A finite purchase without a story list contributes nothing.
		for _, id := range p.StoryIDs {
			seen[id] = struct{}{}
		}
	}

	ids := make([]uint64, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return &Entitlement{UnlockedStoryIDs: ids, HasUnlimited: false}, nil
}

// HasAccess reports whether the user may access one story. The unlimited
// check is an existence query so the common premium case never loads the
// full ledger.
func (r *Resolver) HasAccess(email string, storyID uint64) (bool, error) {
	unlimited, err := r.purchases.HasActiveUnlimited(email)
	if err != nil {
		return false, err
	}
	if unlimited {
		return true, nil
	}

	purchases, err := r.purchases.GetActiveByEmail(email)
	if err != nil {
		return false, err
	}
	ent, err := r.resolvePurchases(purchases)
	if err != nil {
		return false, err
	}
	return ent.Unlocks(storyID), nil
}
