// Package gateway is the client for the hosted-checkout payment
// provider: session creation, session retrieval, refunds and webhook
// signature verification.
package gateway

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// EventCheckoutCompleted is the single webhook event type consumed.
	EventCheckoutCompleted = "checkout.session.completed"

	// SessionPaid is the gateway's terminal payment state.
	SessionPaid = "paid"
)

var ErrBadSignature = errors.New("webhook signature mismatch")

type Client struct {
	baseURL       string
	apiKey        string
	webhookSecret string
	http          *http.Client
}

func New(baseURL, apiKey, webhookSecret string) *Client {
	return &Client{
		baseURL:       strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:        apiKey,
		webhookSecret: webhookSecret,
		http:          &http.Client{Timeout: 10 * time.Second},
	}
}

type LineItem struct {
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
}

type SessionRequest struct {
	OrderNumber   string            `json:"order_number"`
	CustomerEmail string            `json:"customer_email,omitempty"`
	LineItems     []LineItem        `json:"line_items"`
	SuccessURL    string            `json:"success_url"`
	CancelURL     string            `json:"cancel_url"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

type CheckoutSession struct {
	ID            string            `json:"id"`
	URL           string            `json:"url"`
	PaymentStatus string            `json:"payment_status"`
	PaymentRef    string            `json:"payment_ref"`
	Metadata      map[string]string `json:"metadata"`
}

// Event is the webhook envelope delivered by the gateway.
type Event struct {
	Type string `json:"type"`
	Data struct {
		Object CheckoutSession `json:"object"`
	} `json:"data"`
}

type apiError struct {
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// CreateCheckoutSession requests a hosted checkout page for the frozen
// order lines and returns the session to redirect the buyer to.
func (c *Client) CreateCheckoutSession(ctx context.Context, req SessionRequest) (*CheckoutSession, error) {
	if req.SuccessURL == "" || req.CancelURL == "" {
		return nil, errors.New("success and cancel URLs are required")
	}

	var session CheckoutSession
	if err := c.do(ctx, http.MethodPost, "/v1/checkout/sessions", req, &session); err != nil {
		return nil, err
	}
	if session.URL == "" {
		return nil, errors.New("gateway returned empty checkout URL")
	}
	return &session, nil
}

// GetCheckoutSession fetches the authoritative session state. Webhook
// processing never trusts the delivered payload's status field.
func (c *Client) GetCheckoutSession(ctx context.Context, id string) (*CheckoutSession, error) {
	var session CheckoutSession
	if err := c.do(ctx, http.MethodGet, "/v1/checkout/sessions/"+id, nil, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

type refundRequest struct {
	PaymentRef string  `json:"payment_ref"`
	Amount     float64 `json:"amount"`
}

// Refund issues a refund against a completed payment.
func (c *Client) Refund(ctx context.Context, paymentRef string, amount float64) error {
	return c.do(ctx, http.MethodPost, "/v1/refunds", refundRequest{PaymentRef: paymentRef, Amount: amount}, nil)
}

// VerifySignature checks the HMAC-SHA256 hex signature the gateway puts
// on webhook deliveries.
func (c *Client) VerifySignature(payload []byte, signature string) error {
	mac := hmac.New(sha256.New, []byte(c.webhookSecret))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrBadSignature
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach payment gateway: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		var apiErr apiError
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != nil {
			return fmt.Errorf("gateway error (%d): %s", resp.StatusCode, apiErr.Error.Message)
		}
		return fmt.Errorf("gateway error (%d): %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to parse gateway response: %w", err)
		}
	}
	return nil
}
