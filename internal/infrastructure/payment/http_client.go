// Package payment talks to the external payment-gateway aggregator over its
// JSON HTTP API. Link tokens are opaque to this service.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kdadks/billing-api/internal/application/billing"
	"github.com/kdadks/billing-api/pkg/config"
)

var _ billing.PaymentService = (*Client)(nil)

// Client is the HTTP adapter for the payment aggregator.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient builds the adapter from payment configuration.
func NewClient(cfg config.PaymentConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// ListActiveGateways returns the provider's currently enabled gateways.
func (c *Client) ListActiveGateways(ctx context.Context) ([]billing.Gateway, error) {
	var out struct {
		Gateways []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"gateways"`
	}
	if err := c.do(ctx, http.MethodGet, "/v1/gateways?status=active", nil, &out); err != nil {
		return nil, err
	}
	gateways := make([]billing.Gateway, 0, len(out.Gateways))
	for _, g := range out.Gateways {
		gateways = append(gateways, billing.Gateway{ID: g.ID, Name: g.Name})
	}
	return gateways, nil
}

// CreatePaymentRequest registers a payable amount with the gateway and
// returns the provider's request id.
func (c *Client) CreatePaymentRequest(ctx context.Context, req billing.PaymentRequest) (string, error) {
	body := map[string]any{
		"invoice_id":       req.InvoiceID,
		"gateway_id":       req.GatewayID,
		"amount":           req.Amount.StringFixed(2),
		"currency":         req.Currency,
		"customer_email":   req.CustomerEmail,
		"expires_in_hours": req.ExpiresInHours,
		"metadata":         req.Metadata,
	}
	var out struct {
		RequestID string `json:"request_id"`
	}
	if err := c.do(ctx, http.MethodPost, "/v1/payment-requests", body, &out); err != nil {
		return "", err
	}
	if out.RequestID == "" {
		return "", fmt.Errorf("payment: provider returned empty request id")
	}
	return out.RequestID, nil
}

// CreatePaymentLink asks the provider for a shareable link for the request.
func (c *Client) CreatePaymentLink(ctx context.Context, requestID, channel string) (string, error) {
	body := map[string]any{"channel": channel}
	var out struct {
		URL string `json:"url"`
	}
	path := fmt.Sprintf("/v1/payment-requests/%s/links", requestID)
	if err := c.do(ctx, http.MethodPost, path, body, &out); err != nil {
		return "", err
	}
	if out.URL == "" {
		return "", fmt.Errorf("payment: provider returned empty link")
	}
	return out.URL, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("payment: encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("payment: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("payment: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("payment: %s %s: status %d: %s", method, path, resp.StatusCode, snippet)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("payment: decode response: %w", err)
	}
	return nil
}
