// Package razorpay creates checkout orders and verifies payment signatures
// against the Razorpay Orders API.
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

	"github.com/custodia-labs/briefvault/internal/core/domain"
	"github.com/custodia-labs/briefvault/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.CheckoutGateway = (*Gateway)(nil)

const defaultBaseURL = "https://api.razorpay.com/v1"

// Config holds gateway credentials
type Config struct {
	KeyID     string
	KeySecret string
	BaseURL   string
	Timeout   time.Duration
}

// DefaultConfig returns a config for the live API
func DefaultConfig(keyID, keySecret string) Config {
	return Config{
		KeyID:     keyID,
		KeySecret: keySecret,
		BaseURL:   defaultBaseURL,
		Timeout:   30 * time.Second,
	}
}

// Gateway implements driven.CheckoutGateway
type Gateway struct {
	cfg    Config
	client *http.Client
}

// NewGateway creates a Gateway. Both key parts are required.
func NewGateway(cfg Config) (*Gateway, error) {
	if cfg.KeyID == "" || cfg.KeySecret == "" {
		return nil, fmt.Errorf("razorpay key id and secret are required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return &Gateway{cfg: cfg, client: &http.Client{Timeout: cfg.Timeout}}, nil
}

// KeyID is the public key the checkout widget opens with
func (g *Gateway) KeyID() string {
	return g.cfg.KeyID
}

type orderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type orderResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Error  *struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error,omitempty"`
}

// CreateOrder registers an order for amount minor units
func (g *Gateway) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (string, error) {
	body, err := json.Marshal(orderRequest{Amount: amount, Currency: currency, Receipt: receipt})
	if err != nil {
		return "", fmt.Errorf("marshal order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.BaseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(g.cfg.KeyID, g.cfg.KeySecret)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("create order: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read order response: %w", err)
	}

	var order orderResponse
	_ = json.Unmarshal(raw, &order)

	if resp.StatusCode != http.StatusOK {
		if order.Error != nil {
			return "", fmt.Errorf("create order: status %d: %s: %s", resp.StatusCode, order.Error.Code, order.Error.Description)
		}
		return "", fmt.Errorf("create order: status %d", resp.StatusCode)
	}
	if order.ID == "" {
		return "", fmt.Errorf("create order: response carried no order id")
	}
	return order.ID, nil
}

// VerifyPayment checks signature == hex(HMAC-SHA256(secret, order_id|payment_id))
func (g *Gateway) VerifyPayment(outcome domain.PaymentOutcome) error {
	if outcome.OrderID == "" || outcome.PaymentID == "" || outcome.Signature == "" {
		return fmt.Errorf("%w: incomplete payment response", domain.ErrPaymentVerification)
	}

	got, err := hex.DecodeString(outcome.Signature)
	if err != nil {
		return fmt.Errorf("%w: signature is not hex", domain.ErrPaymentVerification)
	}

	if !hmac.Equal(g.sign(outcome.OrderID, outcome.PaymentID), got) {
		return fmt.Errorf("%w: signature mismatch", domain.ErrPaymentVerification)
	}
	return nil
}

func (g *Gateway) sign(orderID, paymentID string) []byte {
	mac := hmac.New(sha256.New, []byte(g.cfg.KeySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return mac.Sum(nil)
}
