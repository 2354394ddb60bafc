// Package razorpay integrates with the Razorpay Orders API and verifies
// checkout and webhook signatures.
package razorpay

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"travelassist/internal/adapters/observability"
	"travelassist/internal/domain"
)

type Client struct {
	base          string
	keyID         string
	keySecret     string
	webhookSecret string
	hc            *http.Client
}

func New(keyID, keySecret, webhookSecret string) *Client {
	return &Client{
		base:          "https://api.razorpay.com/v1",
		keyID:         keyID,
		keySecret:     keySecret,
		webhookSecret: webhookSecret,
		hc:            &http.Client{Timeout: 15 * time.Second},
	}
}

// WithBase overrides the API endpoint (tests).
func (c *Client) WithBase(u string) *Client {
	c.base = strings.TrimSuffix(u, "/")
	return c
}

func (c *Client) KeyID() string { return c.keyID }

type orderRequest struct {
	Amount         int64  `json:"amount"` // paise
	Currency       string `json:"currency"`
	Receipt        string `json:"receipt"`
	PaymentCapture int    `json:"payment_capture"`
}

type orderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

// CreateOrder creates a gateway order with auto-capture. The amount is
// in INR and converted to paise on the wire. Order creation is not
// retried; a duplicate order would charge the user twice.
func (c *Client) CreateOrder(ctx context.Context, amount float64, currency, receipt string) (domain.GatewayOrder, error) {
	if currency == "" {
		currency = "INR"
	}
	body, err := json.Marshal(orderRequest{
		Amount:         int64(amount * 100),
		Currency:       currency,
		Receipt:        receipt,
		PaymentCapture: 1,
	})
	if err != nil {
		return domain.GatewayOrder{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/orders", bytes.NewReader(body))
	if err != nil {
		return domain.GatewayOrder{}, err
	}
	req.SetBasicAuth(c.keyID, c.keySecret)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		return domain.GatewayOrder{}, err
	}
	defer resp.Body.Close()
	observability.ObserveExternal("razorpay", "orders", resp.StatusCode, time.Since(start))

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return domain.GatewayOrder{}, fmt.Errorf("razorpay order create: status %d: %s",
			resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var or orderResponse
	if err := json.NewDecoder(resp.Body).Decode(&or); err != nil {
		return domain.GatewayOrder{}, err
	}
	return domain.GatewayOrder{ID: or.ID, Amount: or.Amount, Currency: or.Currency, Receipt: or.Receipt}, nil
}

// VerifyPayment checks the checkout signature: HMAC-SHA256 of
// "orderID|paymentID" keyed with the API secret, compared in constant time.
func (c *Client) VerifyPayment(orderID, paymentID, signature string) bool {
	return verify(c.keySecret, []byte(orderID+"|"+paymentID), signature)
}

// VerifyWebhook checks the X-Razorpay-Signature HMAC over the raw body.
func (c *Client) VerifyWebhook(payload []byte, signature string) bool {
	if c.webhookSecret == "" {
		return false
	}
	return verify(c.webhookSecret, payload, signature)
}

func verify(secret string, message []byte, signature string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(message)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
