package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/custodia-labs/briefvault/internal/core/domain"
	"github.com/custodia-labs/briefvault/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.TransactionStore = (*TransactionStore)(nil)

// TransactionStore implements driven.TransactionStore using PostgreSQL
type TransactionStore struct {
	db *DB
}

// NewTransactionStore creates a new TransactionStore
func NewTransactionStore(db *DB) *TransactionStore {
	return &TransactionStore{db: db}
}

// Save inserts a transaction. The unique index on razorpay_payment_id turns
// a second log of the same payment into domain.ErrAlreadyExists.
func (s *TransactionStore) Save(ctx context.Context, tx *domain.Transaction) error {
	query := `
		INSERT INTO transactions (
			id, user_id, email, plan, payment_amount, currency, payment_status,
			razorpay_order_id, razorpay_payment_id, razorpay_signature, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := s.db.ExecContext(ctx, query,
		tx.ID,
		tx.UserID,
		tx.Email,
		tx.Plan,
		tx.PaymentAmount,
		tx.Currency,
		tx.PaymentStatus,
		tx.OrderID,
		tx.PaymentID,
		tx.Signature,
		tx.CreatedAt,
	)
	if isUniqueViolation(err) {
		return domain.ErrAlreadyExists
	}
	return err
}

// GetByPaymentID returns the transaction logged for a payment
func (s *TransactionStore) GetByPaymentID(ctx context.Context, paymentID string) (*domain.Transaction, error) {
	query := `
		SELECT id, user_id, email, plan, payment_amount, currency, payment_status,
			razorpay_order_id, razorpay_payment_id, razorpay_signature, created_at
		FROM transactions
		WHERE razorpay_payment_id = $1
	`

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, paymentID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return tx, err
}

// ListByUser returns a user's transactions, newest first
func (s *TransactionStore) ListByUser(ctx context.Context, userID string) ([]*domain.Transaction, error) {
	query := `
		SELECT id, user_id, email, plan, payment_amount, currency, payment_status,
			razorpay_order_id, razorpay_payment_id, razorpay_signature, created_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []*domain.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}

	return txs, rows.Err()
}

// SaveOrder records which user an order was created for
func (s *TransactionStore) SaveOrder(ctx context.Context, order *domain.CheckoutOrder) error {
	query := `
		INSERT INTO checkout_orders (order_id, user_id, amount, currency, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := s.db.ExecContext(ctx, query, order.OrderID, order.UserID, order.Amount, order.Currency, order.CreatedAt)
	if isUniqueViolation(err) {
		return domain.ErrAlreadyExists
	}
	return err
}

// GetOrder returns a recorded checkout order
func (s *TransactionStore) GetOrder(ctx context.Context, orderID string) (*domain.CheckoutOrder, error) {
	query := `
		SELECT order_id, user_id, amount, currency, created_at
		FROM checkout_orders
		WHERE order_id = $1
	`

	var order domain.CheckoutOrder
	err := s.db.QueryRowContext(ctx, query, orderID).Scan(
		&order.OrderID,
		&order.UserID,
		&order.Amount,
		&order.Currency,
		&order.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func scanTransaction(row rowScanner) (*domain.Transaction, error) {
	var tx domain.Transaction
	if err := row.Scan(
		&tx.ID,
		&tx.UserID,
		&tx.Email,
		&tx.Plan,
		&tx.PaymentAmount,
		&tx.Currency,
		&tx.PaymentStatus,
		&tx.OrderID,
		&tx.PaymentID,
		&tx.Signature,
		&tx.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &tx, nil
}
