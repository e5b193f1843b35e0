package payments

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/TontonYahya/tonton-stories/app/models"
	"github.com/TontonYahya/tonton-stories/app/repository"
	"github.com/TontonYahya/tonton-stories/internal/pkg/apperr"
	"github.com/TontonYahya/tonton-stories/internal/pkg/config"
	"github.com/TontonYahya/tonton-stories/internal/pkg/paypal"
)

// Gateway is the slice of the PayPal client the service depends on.
type Gateway interface {
	CreateOrder(ctx context.Context, in paypal.CreateOrderInput) (*paypal.Order, error)
	CaptureOrder(ctx context.Context, orderID string) (*paypal.CaptureResult, error)
	GetOrder(ctx context.Context, orderID string) (*paypal.OrderStatus, error)
}

// packDescriptions localizes the checkout line item per pack.
var packDescriptions = map[string]string{
	"single":                 "1 Histoire",
	"pack10":                 "10 Histoires",
	"pack50":                 "50 Histoires",
	"pack100":                "100 Histoires",
	models.PackTypeUnlimited: "Collection Complète",
}

// packSizes maps finite pack tiers to the number of stories they unlock.
var packSizes = map[string]int{
	"pack10":  10,
	"pack50":  50,
	"pack100": 100,
}

// simulatedAmounts are the fixed prices used by simulated purchases.
var simulatedAmounts = map[string]float64{
	"single":                 2.99,
	"pack10":                 24.99,
	"pack50":                 99.99,
	"pack100":                179.99,
	models.PackTypeUnlimited: 249.99,
}

// Service drives the payment capture state machine: create an order at the
// gateway, capture it after buyer approval, and record the purchase row
// exactly once.
type Service struct {
	gateway   Gateway
	stories   repository.StoryRepository
	purchases repository.PurchaseRepository
	shop      config.ShopConfig
}

// NewService creates a payments service from injected collaborators.
func NewService(gateway Gateway, stories repository.StoryRepository, purchases repository.PurchaseRepository, shop config.ShopConfig) *Service {
	return &Service{
		gateway:   gateway,
		stories:   stories,
		purchases: purchases,
		shop:      shop,
	}
}

// CreateOrder creates a gateway order for one pack and returns the order id
// plus the buyer approval link.
func (s *Service) CreateOrder(ctx context.Context, in CreatePaymentInput) (*paypal.Order, error) {
	if strings.TrimSpace(in.PackID) == "" {
		return nil, apperr.New(apperr.Validation, "pack_id is required")
	}
	if strings.TrimSpace(in.UserEmail) == "" {
		return nil, apperr.New(apperr.Validation, "user_email is required")
	}
	if in.Amount <= 0 {
		return nil, apperr.New(apperr.Validation, "amount must be positive")
	}

	description, ok := packDescriptions[in.PackID]
	if !ok {
		description = "Pack d'histoires"
	}

	order, err := s.gateway.CreateOrder(ctx, paypal.CreateOrderInput{
		Amount:      in.Amount,
		Currency:    s.shop.Currency,
		Description: s.shop.ShopName + " - " + description,
		ReturnURL:   s.shop.PublicURL + "/payment-success",
		CancelURL:   s.shop.PublicURL + "/payment-cancel",
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.Gateway, "payment gateway rejected the order", err)
	}
	return order, nil
}

// Capture captures an approved order and records the purchase. Recording is
// idempotent on the external transaction id: a retried capture resolves to
// the already-stored row and never double-grants the entitlement.
func (s *Service) Capture(ctx context.Context, orderID string, data PurchaseData) (*CaptureOutcome, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, apperr.New(apperr.Validation, "order_id is required")
	}
	if strings.TrimSpace(data.UserEmail) == "" {
		return nil, apperr.New(apperr.Validation, "user_email is required")
	}
	packType := strings.TrimSpace(data.PackType)
	if packType == "" {
		packType = "single"
	}
	if packType == "single" && data.StoryID == nil {
		return nil, apperr.New(apperr.Validation, "story_id is required for a single purchase")
	}

	result, err := s.gateway.CaptureOrder(ctx, orderID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Gateway, "payment capture failed", err)
	}
	if !result.Completed() {
		return nil, apperr.New(apperr.Gateway, "payment was not completed")
	}

	storyIDs, err := s.entitledStories(packType, data.StoryID)
	if err != nil {
		return nil, err
	}

	purchase := &models.Purchase{
		UserEmail:           data.UserEmail,
		PackType:            packType,
		StoryIDs:            storyIDs,
		AmountPaid:          result.AmountPaid,
		PayPalTransactionID: &result.TransactionID,
		IsActive:            true,
	}

	created, stored, err := s.purchases.CreateIfNotExists(purchase)
	if err != nil {
		return nil, apperr.Wrap(apperr.Persistence, "failed to record purchase", err)
	}

	return &CaptureOutcome{
		TransactionID:   result.TransactionID,
		PurchaseID:      stored.ID,
		AlreadyRecorded: !created,
	}, nil
}

// OrderStatus reads the gateway's view of an order.
func (s *Service) OrderStatus(ctx context.Context, orderID string) (*paypal.OrderStatus, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, apperr.New(apperr.Validation, "order_id is required")
	}
	status, err := s.gateway.GetOrder(ctx, orderID)
	if err != nil {
		if paypal.IsNotFound(err) {
			return nil, apperr.Wrap(apperr.NotFound, "order not found", err)
		}
		return nil, apperr.Wrap(apperr.Gateway, "payment gateway unavailable", err)
	}
	return status, nil
}

// Simulate writes a ledger row without a gateway round trip, for testing
// the entitlement flow end to end.
func (s *Service) Simulate(in SimulatePurchaseInput) (*models.Purchase, error) {
	if strings.TrimSpace(in.UserEmail) == "" {
		return nil, apperr.New(apperr.Validation, "user_email is required")
	}
	packType := strings.TrimSpace(in.PackType)
	if packType == "" {
		return nil, apperr.New(apperr.Validation, "pack_type is required")
	}
	if packType == "single" && in.StoryID == nil {
		return nil, apperr.New(apperr.Validation, "story_id is required for a single purchase")
	}

	storyIDs, err := s.entitledStories(packType, in.StoryID)
	if err != nil {
		return nil, err
	}

	txnID := "SIMULATED_" + uuid.NewString()
	purchase := &models.Purchase{
		UserEmail:           in.UserEmail,
		PackType:            packType,
		StoryIDs:            storyIDs,
		AmountPaid:          simulatedAmounts[packType],
		PayPalTransactionID: &txnID,
		IsActive:            true,
	}
	if err := s.purchases.Create(purchase); err != nil {
		return nil, apperr.Wrap(apperr.Persistence, "failed to record purchase", err)
	}
	return purchase, nil
}

// entitledStories maps a pack tier to the explicit grant list. Finite packs
// take the first N stories of the stable catalog ordering; unlimited (and
// unknown tiers) grant no explicit list.
func (s *Service) entitledStories(packType string, storyID *uint64) (datatypes.JSONSlice[uint64], error) {
	switch {
	case packType == "single":
		if storyID == nil {
			return nil, apperr.New(apperr.Validation, "story_id is required for a single purchase")
		}
		return datatypes.JSONSlice[uint64]{*storyID}, nil
	case packSizes[packType] > 0:
		stories, err := s.stories.GetOldestFirst(packSizes[packType])
		if err != nil {
			return nil, apperr.Wrap(apperr.Persistence, "failed to load catalog", err)
		}
		ids := make(datatypes.JSONSlice[uint64], 0, len(stories))
		for _, story := range stories {
			ids = append(ids, story.ID)
		}
		return ids, nil
	default:
		// unlimited relies on the resolver short-circuit; unknown tiers
		// grant nothing.
		return nil, nil
	}
}
