package paypal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/TontonYahya/tonton-stories/internal/pkg/config"
)

// Order statuses reported by the gateway.
const (
	OrderStatusCompleted = "COMPLETED"
)

// APIError is a non-success response from the gateway.
type APIError struct {
	Operation  string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("paypal %s failed: status=%d body=%s", e.Operation, e.StatusCode, e.Body)
}

// IsNotFound reports whether the gateway answered 404 for the request.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// Client talks to the PayPal REST API: client-credentials token exchange,
// order creation, capture and status lookup. BaseURL is configurable so
// tests can point it at a local server.
type Client struct {
	ClientID     string
	ClientSecret string
	BaseURL      string

	HTTPClient *http.Client
}

// NewClient creates a PayPal client from injected configuration.
func NewClient(cfg config.PayPalConfig) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		BaseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// GetAccessToken exchanges the client credentials for a bearer token.
func (c *Client) GetAccessToken(ctx context.Context) (string, error) {
	if strings.TrimSpace(c.ClientID) == "" || strings.TrimSpace(c.ClientSecret) == "" {
		return "", errors.New("PAYPAL_CLIENT_ID/PAYPAL_CLIENT_SECRET are not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/oauth2/token",
		strings.NewReader("grant_type=client_credentials"))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(c.ClientID, c.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &APIError{Operation: "token exchange", StatusCode: resp.StatusCode, Body: string(body)}
	}

	var out tokenResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", err
	}
	if strings.TrimSpace(out.AccessToken) == "" {
		return "", errors.New("paypal token exchange returned empty access_token")
	}
	return out.AccessToken, nil
}

// CreateOrderInput describes one checkout order.
type CreateOrderInput struct {
	Amount      float64
	Currency    string
	Description string
	ReturnURL   string
	CancelURL   string
}

// Order is the created gateway order with its buyer approval link.
type Order struct {
	ID          string
	ApprovalURL string
}

// CreateOrder creates a CAPTURE-intent order at the gateway.
func (c *Client) CreateOrder(ctx context.Context, in CreateOrderInput) (*Order, error) {
	token, err := c.GetAccessToken(ctx)
	if err != nil {
		return nil, err
	}

	payload := map[string]interface{}{
		"intent": "CAPTURE",
		"purchase_units": []map[string]interface{}{{
			"amount": map[string]string{
				"currency_code": in.Currency,
				"value":         strconv.FormatFloat(in.Amount, 'f', 2, 64),
			},
			"description": in.Description,
		}},
		"application_context": map[string]string{
			"return_url": in.ReturnURL,
			"cancel_url": in.CancelURL,
		},
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v2/checkout/orders", bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode != http.StatusCreated {
		return nil, &APIError{Operation: "order creation", StatusCode: resp.StatusCode, Body: string(body)}
	}

	var raw2 struct {
		ID    string `json:"id"`
		Links []struct {
			Href string `json:"href"`
			Rel  string `json:"rel"`
		} `json:"links"`
	}
	if err := json.Unmarshal(body, &raw2); err != nil {
		return nil, err
	}
	if strings.TrimSpace(raw2.ID) == "" {
		return nil, errors.New("paypal order response missing order id")
	}

	approvalURL := ""
	for _, link := range raw2.Links {
		if link.Rel == "approve" {
			approvalURL = link.Href
			break
		}
	}

	return &Order{ID: raw2.ID, ApprovalURL: approvalURL}, nil
}

// CaptureResult is the outcome of a capture call.
type CaptureResult struct {
	TransactionID string
	Status        string
	AmountPaid    float64
}

// Completed reports whether the gateway finalized the fund transfer.
func (r *CaptureResult) Completed() bool {
	return r.Status == OrderStatusCompleted
}

// CaptureOrder captures a previously approved order.
func (c *Client) CaptureOrder(ctx context.Context, orderID string) (*CaptureResult, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, errors.New("order id is required")
	}

	token, err := c.GetAccessToken(ctx)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/v2/checkout/orders/%s/capture", c.BaseURL, orderID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode != http.StatusCreated {
		return nil, &APIError{Operation: "capture", StatusCode: resp.StatusCode, Body: string(body)}
	}

	var raw struct {
		ID            string `json:"id"`
		Status        string `json:"status"`
		PurchaseUnits []struct {
			Payments struct {
				Captures []struct {
					Amount struct {
						Value string `json:"value"`
					} `json:"amount"`
				} `json:"captures"`
			} `json:"payments"`
		} `json:"purchase_units"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}
	if strings.TrimSpace(raw.ID) == "" {
		return nil, errors.New("paypal capture response missing order id")
	}

	result := &CaptureResult{
		TransactionID: raw.ID,
		Status:        raw.Status,
	}
	if len(raw.PurchaseUnits) > 0 && len(raw.PurchaseUnits[0].Payments.Captures) > 0 {
		value := raw.PurchaseUnits[0].Payments.Captures[0].Amount.Value
		if amount, err := strconv.ParseFloat(value, 64); err == nil {
			result.AmountPaid = amount
		}
	}
	return result, nil
}

// OrderStatus is the gateway's view of an order.
type OrderStatus struct {
	ID     string
	Status string
	Raw    json.RawMessage
}

// GetOrder reads an order's status by id.
func (c *Client) GetOrder(ctx context.Context, orderID string) (*OrderStatus, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, errors.New("order id is required")
	}

	token, err := c.GetAccessToken(ctx)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/v2/checkout/orders/%s", c.BaseURL, orderID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Operation: "order lookup", StatusCode: resp.StatusCode, Body: string(body)}
	}

	var raw struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}

	return &OrderStatus{ID: raw.ID, Status: raw.Status, Raw: body}, nil
}
