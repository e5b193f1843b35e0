package paypal

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/TontonYahya/tonton-stories/internal/pkg/config"
)

func newTestClient(baseURL string) *Client {
	return NewClient(config.PayPalConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		BaseURL:      baseURL,
	})
}

func tokenHandler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "client-id", user)
		assert.Equal(t, "client-secret", pass)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "test-token",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	}
}

func TestGetAccessToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/oauth2/token", r.URL.Path)
		tokenHandler(t)(w, r)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	token, err := client.GetAccessToken(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "test-token", token)
}

func TestGetAccessTokenMissingCredentials(t *testing.T) {
	client := NewClient(config.PayPalConfig{BaseURL: "http://localhost"})
	_, err := client.GetAccessToken(context.Background())
	assert.Error(t, err)
}

func TestCreateOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/oauth2/token":
			tokenHandler(t)(w, r)
		case "/v2/checkout/orders":
			assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

			var payload map[string]interface{}
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.Equal(t, "CAPTURE", payload["intent"])

			units := payload["purchase_units"].([]interface{})
			amount := units[0].(map[string]interface{})["amount"].(map[string]interface{})
			assert.Equal(t, "24.99", amount["value"])
			assert.Equal(t, "EUR", amount["currency_code"])

			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"id":     "ORDER-123",
				"status": "CREATED",
				"links": []map[string]string{
					{"href": "https://paypal.example/self", "rel": "self"},
					{"href": "https://paypal.example/approve", "rel": "approve"},
				},
			})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	order, err := client.CreateOrder(context.Background(), CreateOrderInput{
		Amount:      24.99,
		Currency:    "EUR",
		Description: "Les histoires de tonton Yahya - 10 Histoires",
		ReturnURL:   "http://localhost:4000/payment-success",
		CancelURL:   "http://localhost:4000/payment-cancel",
	})
	assert.NoError(t, err)
	assert.Equal(t, "ORDER-123", order.ID)
	assert.Equal(t, "https://paypal.example/approve", order.ApprovalURL)
}

func TestCreateOrderRejectedByGateway(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/oauth2/token" {
			tokenHandler(t)(w, r)
			return
		}
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"name":"UNPROCESSABLE_ENTITY"}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.CreateOrder(context.Background(), CreateOrderInput{Amount: 1, Currency: "EUR"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "status=422")
}

func TestCaptureOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/oauth2/token":
			tokenHandler(t)(w, r)
		case "/v2/checkout/orders/ORDER-123/capture":
			assert.Equal(t, http.MethodPost, r.Method)
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"id":     "ORDER-123",
				"status": "COMPLETED",
				"purchase_units": []map[string]interface{}{{
					"payments": map[string]interface{}{
						"captures": []map[string]interface{}{{
							"amount": map[string]string{"value": "24.99", "currency_code": "EUR"},
						}},
					},
				}},
			})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	result, err := client.CaptureOrder(context.Background(), "ORDER-123")
	assert.NoError(t, err)
	assert.Equal(t, "ORDER-123", result.TransactionID)
	assert.True(t, result.Completed())
	assert.Equal(t, 24.99, result.AmountPaid)
}

func TestCaptureOrderEmptyID(t *testing.T) {
	client := newTestClient("http://localhost")
	_, err := client.CaptureOrder(context.Background(), "")
	assert.Error(t, err)
}

func TestGetOrderUnknownID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/oauth2/token" {
			tokenHandler(t)(w, r)
			return
		}
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"name":"RESOURCE_NOT_FOUND"}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.GetOrder(context.Background(), "MISSING")
	assert.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "status=404")
}

func TestGetOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/oauth2/token":
			tokenHandler(t)(w, r)
		case "/v2/checkout/orders/ORDER-123":
			assert.Equal(t, http.MethodGet, r.Method)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"id":     "ORDER-123",
				"status": "APPROVED",
			})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	status, err := client.GetOrder(context.Background(), "ORDER-123")
	assert.NoError(t, err)
	assert.Equal(t, "APPROVED", status.Status)
	assert.NotEmpty(t, status.Raw)
}
