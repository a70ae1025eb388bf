package payment_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdadks/billing-api/internal/application/billing"
	"github.com/kdadks/billing-api/internal/infrastructure/payment"
	"github.com/kdadks/billing-api/pkg/config"
)

func TestCreatePaymentRequestSendsFullBody(t *testing.T) {
	var captured map[string]any
	var auth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"request_id":"req-77"}`))
	}))
	defer srv.Close()

	client := payment.NewClient(config.PaymentConfig{BaseURL: srv.URL, APIKey: "secret"})
	id, err := client.CreatePaymentRequest(context.Background(), billing.PaymentRequest{
		InvoiceID:      "inv-42",
		GatewayID:      "gw-razorpay",
		Amount:         decimal.RequireFromString("995.43"),
		Currency:       "INR",
		CustomerEmail:  "billing@acme.example",
		ExpiresInHours: 72,
	})
	require.NoError(t, err)
	assert.Equal(t, "req-77", id)

	assert.Equal(t, "Bearer secret", auth)
	assert.Equal(t, "inv-42", captured["invoice_id"])
	assert.Equal(t, "gw-razorpay", captured["gateway_id"])
	assert.Equal(t, "995.43", captured["amount"])
	assert.Equal(t, "INR", captured["currency"])
	assert.Equal(t, "billing@acme.example", captured["customer_email"])
	assert.Equal(t, float64(72), captured["expires_in_hours"])
}

func TestCreatePaymentRequestSurfacesProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"gateway disabled"}`, http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	client := payment.NewClient(config.PaymentConfig{BaseURL: srv.URL, APIKey: "secret"})
	_, err := client.CreatePaymentRequest(context.Background(), billing.PaymentRequest{
		InvoiceID: "inv-42",
		GatewayID: "gw-razorpay",
		Amount:    decimal.NewFromInt(10),
		Currency:  "INR",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 422")
	assert.Contains(t, err.Error(), "gateway disabled")
}
