package driven

import (
	"context"

	"github.com/custodia-labs/briefvault/internal/core/domain"
)

// TransactionStore logs subscription payments and the orders they pay for (PostgreSQL)
type TransactionStore interface {
	// Save inserts a transaction. A payment id that is already logged
	// yields domain.ErrAlreadyExists.
	Save(ctx context.Context, tx *domain.Transaction) error

	// GetByPaymentID returns the transaction logged for a payment
	GetByPaymentID(ctx context.Context, paymentID string) (*domain.Transaction, error)

	// ListByUser returns a user's transactions, newest first
	ListByUser(ctx context.Context, userID string) ([]*domain.Transaction, error)

	// SaveOrder records which account an order was created for
	SaveOrder(ctx context.Context, order *domain.CheckoutOrder) error

	// GetOrder returns a recorded order, or domain.ErrNotFound
	GetOrder(ctx context.Context, orderID string) (*domain.CheckoutOrder, error)
}
