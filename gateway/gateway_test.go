package gateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCheckoutSession(t *testing.T) {
	var got SessionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/checkout/sessions", r.URL.Path)
		assert.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		json.NewEncoder(w).Encode(CheckoutSession{
			ID:  "cs_1",
			URL: "https://pay.example/cs_1",
		})
	}))
	defer server.Close()

	client := New(server.URL, "sk_test", "whsec")
	session, err := client.CreateCheckoutSession(context.Background(), SessionRequest{
		OrderNumber: "ORD-20260829-AAAA1111",
		LineItems:   []LineItem{{Name: "Desk Lamp", UnitPrice: 10, Quantity: 2}},
		SuccessURL:  "https://shop.example/success",
		CancelURL:   "https://shop.example/cancel",
		Metadata:    map[string]string{"order_number": "ORD-20260829-AAAA1111"},
	})
	require.NoError(t, err)

	assert.Equal(t, "cs_1", session.ID)
	assert.Equal(t, "https://pay.example/cs_1", session.URL)
	assert.Equal(t, "ORD-20260829-AAAA1111", got.OrderNumber)
	assert.Equal(t, "ORD-20260829-AAAA1111", got.Metadata["order_number"])
	require.Len(t, got.LineItems, 1)
	assert.Equal(t, 2, got.LineItems[0].Quantity)
}

func TestCreateCheckoutSessionRequiresURLs(t *testing.T) {
	client := New("https://gateway.example", "sk_test", "whsec")

	_, err := client.CreateCheckoutSession(context.Background(), SessionRequest{
		OrderNumber: "ORD-1",
		SuccessURL:  "https://shop.example/success",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required")
}

func TestCreateCheckoutSessionGatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error":{"code":"invalid_amount","message":"amount must be positive"}}`))
	}))
	defer server.Close()

	client := New(server.URL, "sk_test", "whsec")
	_, err := client.CreateCheckoutSession(context.Background(), SessionRequest{
		OrderNumber: "ORD-1",
		SuccessURL:  "https://shop.example/success",
		CancelURL:   "https://shop.example/cancel",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "amount must be positive")
	assert.Contains(t, err.Error(), "422")
}

func TestGetCheckoutSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/checkout/sessions/cs_7", r.URL.Path)
		json.NewEncoder(w).Encode(CheckoutSession{
			ID:            "cs_7",
			PaymentStatus: SessionPaid,
			PaymentRef:    "pay_7",
		})
	}))
	defer server.Close()

	client := New(server.URL, "sk_test", "whsec")
	session, err := client.GetCheckoutSession(context.Background(), "cs_7")
	require.NoError(t, err)
	assert.Equal(t, SessionPaid, session.PaymentStatus)
	assert.Equal(t, "pay_7", session.PaymentRef)
}

func TestRefund(t *testing.T) {
	var got refundRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/refunds", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := New(server.URL, "sk_test", "whsec")
	require.NoError(t, client.Refund(context.Background(), "pay_7", 25))
	assert.Equal(t, "pay_7", got.PaymentRef)
	assert.Equal(t, 25.0, got.Amount)
}

func TestVerifySignature(t *testing.T) {
	client := New("https://gateway.example", "sk_test", "whsec")
	payload := []byte(`{"type":"checkout.session.completed"}`)

	mac := hmac.New(sha256.New, []byte("whsec"))
	mac.Write(payload)
	valid := hex.EncodeToString(mac.Sum(nil))

	assert.NoError(t, client.VerifySignature(payload, valid))
	assert.ErrorIs(t, client.VerifySignature(payload, "deadbeef"), ErrBadSignature)
	assert.ErrorIs(t, client.VerifySignature([]byte("tampered"), valid), ErrBadSignature)
}
