package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/TontonYahya/tonton-stories/internal/pkg/apperr"
	"github.com/TontonYahya/tonton-stories/internal/pkg/payments"
)

// PaymentController handles the PayPal checkout routes
type PaymentController struct {
	payments *payments.Service
}

// NewPaymentController creates a payment controller with its service
func NewPaymentController(paymentsSvc *payments.Service) *PaymentController {
	return &PaymentController{payments: paymentsSvc}
}

type createPaymentRequest struct {
	PackID    string  `json:"pack_id"`
	UserEmail string  `json:"user_email"`
	Amount    float64 `json:"amount"`
}

// HandleCreatePayment creates a gateway order and returns the approval link
func (pc *PaymentController) HandleCreatePayment(c *fiber.Ctx) error {
	var req createPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, apperr.Wrap(apperr.Validation, "invalid request body", err))
	}

	order, err := pc.payments.CreateOrder(c.Context(), payments.CreatePaymentInput{
		PackID:    req.PackID,
		UserEmail: req.UserEmail,
		Amount:    req.Amount,
	})
	if err != nil {
		return jsonError(c, err)
	}

	return jsonSuccess(c, fiber.Map{
		"order_id":     order.ID,
		"approval_url": order.ApprovalURL,
	})
}

type capturePaymentRequest struct {
	OrderID      string `json:"order_id"`
	PurchaseData struct {
		PackType  string  `json:"pack_type"`
		UserEmail string  `json:"user_email"`
		StoryID   *uint64 `json:"story_id"`
	} `json:"purchase_data"`
}

// HandleCapturePayment captures an approved order and records the purchase
func (pc *PaymentController) HandleCapturePayment(c *fiber.Ctx) error {
	var req capturePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, apperr.Wrap(apperr.Validation, "invalid request body", err))
	}

	outcome, err := pc.payments.Capture(c.Context(), req.OrderID, payments.PurchaseData{
		PackType:  req.PurchaseData.PackType,
		UserEmail: req.PurchaseData.UserEmail,
		StoryID:   req.PurchaseData.StoryID,
	})
	if err != nil {
		return jsonError(c, err)
	}

	return jsonSuccess(c, fiber.Map{
		"transaction_id":   outcome.TransactionID,
		"purchase_id":      outcome.PurchaseID,
		"already_recorded": outcome.AlreadyRecorded,
	})
}

// HandlePaymentStatus returns the gateway's view of an order
func (pc *PaymentController) HandlePaymentStatus(c *fiber.Ctx) error {
	orderID := strings.TrimSpace(c.Params("order_id"))

	status, err := pc.payments.OrderStatus(c.Context(), orderID)
	if err != nil {
		return jsonError(c, err)
	}

	return jsonSuccess(c, fiber.Map{
		"status": status.Status,
		"order":  status.Raw,
	})
}
