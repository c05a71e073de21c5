package driven

import (
	"context"

	"github.com/custodia-labs/briefvault/internal/core/domain"
)

// CheckoutGateway is the payment provider behind the checkout widget
type CheckoutGateway interface {
	// KeyID is the public key the widget is opened with
	KeyID() string

	// CreateOrder registers an order for amount (minor units) and returns its id
	CreateOrder(ctx context.Context, amount int64, currency, receipt string) (string, error)

	// VerifyPayment checks the signature the widget returned
	VerifyPayment(outcome domain.PaymentOutcome) error
}
