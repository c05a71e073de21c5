package domain

import "time"

// Pro plan defaults
const (
	ProPlanName            = "Pro Monthly"
	DefaultProPlanAmount   = 1900 // minor units
	DefaultProPlanCurrency = "INR"
	PaymentStatusSuccess   = "SUCCESS"
)

// CheckoutPrefill identifies the payer to the checkout widget
type CheckoutPrefill struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CheckoutConfig is handed to the checkout widget
type CheckoutConfig struct {
	Key         string          `json:"key"`
	OrderID     string          `json:"order_id"`
	Amount      int64           `json:"amount"`
	Currency    string          `json:"currency"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Prefill     CheckoutPrefill `json:"prefill"`
}

// PaymentOutcome is what the checkout widget reports on success
type PaymentOutcome struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
}

// Transaction is a logged subscription payment
type Transaction struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Email         string    `json:"email"`
	Plan          string    `json:"plan"`
	PaymentAmount int64     `json:"payment_amount"`
	Currency      string    `json:"currency"`
	PaymentStatus string    `json:"payment_status"`
	OrderID       string    `json:"razorpay_order_id,omitempty"`
	PaymentID     string    `json:"razorpay_payment_id,omitempty"`
	Signature     string    `json:"razorpay_signature,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// CheckoutOrder ties a provider order to the account that opened checkout
type CheckoutOrder struct {
	OrderID   string    `json:"order_id"`
	UserID    string    `json:"user_id"`
	Amount    int64     `json:"amount"` // minor units
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"created_at"`
}
