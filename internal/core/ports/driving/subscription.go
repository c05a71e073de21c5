package driving

import (
	"context"

	"github.com/custodia-labs/briefvault/internal/core/domain"
)

// SubscriptionService upgrades users through the checkout widget
type SubscriptionService interface {
	// StartCheckout creates an order and returns the widget configuration
	StartCheckout(ctx context.Context, auth *domain.AuthContext) (*domain.CheckoutConfig, error)

	// CompleteCheckout verifies the widget result, upgrades the user and logs the payment
	CompleteCheckout(ctx context.Context, auth *domain.AuthContext, outcome domain.PaymentOutcome) (*domain.Transaction, error)

	// Transactions lists the user's payments, newest first
	Transactions(ctx context.Context, auth *domain.AuthContext) ([]*domain.Transaction, error)
}
