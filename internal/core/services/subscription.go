package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/briefvault/internal/core/domain"
	"github.com/custodia-labs/briefvault/internal/core/ports/driven"
	"github.com/custodia-labs/briefvault/internal/core/ports/driving"
)

// Ensure subscriptionService implements SubscriptionService
var _ driving.SubscriptionService = (*subscriptionService)(nil)

// SubscriptionConfig describes the plan sold through checkout
type SubscriptionConfig struct {
	MerchantName string
	Plan         string
	Amount       int64 // minor units
	Currency     string
	Logger       *slog.Logger
}

// DefaultSubscriptionConfig returns the Pro Monthly plan at 1900 INR minor units
func DefaultSubscriptionConfig() SubscriptionConfig {
	return SubscriptionConfig{
		MerchantName: "BriefVault",
		Plan:         domain.ProPlanName,
		Amount:       domain.DefaultProPlanAmount,
		Currency:     domain.DefaultProPlanCurrency,
	}
}

// subscriptionService implements the SubscriptionService interface
type subscriptionService struct {
	gateway      driven.CheckoutGateway
	userStore    driven.UserStore
	transactions driven.TransactionStore
	cfg          SubscriptionConfig
	logger       *slog.Logger
}

// NewSubscriptionService creates a new SubscriptionService
func NewSubscriptionService(
	gateway driven.CheckoutGateway,
	userStore driven.UserStore,
	transactions driven.TransactionStore,
	cfg SubscriptionConfig,
) driving.SubscriptionService {
	def := DefaultSubscriptionConfig()
	if cfg.Amount <= 0 {
		cfg.Amount = def.Amount
	}
	if cfg.Currency == "" {
		cfg.Currency = def.Currency
	}
	if cfg.Plan == "" {
		cfg.Plan = def.Plan
	}
	if cfg.MerchantName == "" {
		cfg.MerchantName = def.MerchantName
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &subscriptionService{
		gateway:      gateway,
		userStore:    userStore,
		transactions: transactions,
		cfg:          cfg,
		logger:       logger,
	}
}

// StartCheckout creates an order and returns what the widget needs to open
func (s *subscriptionService) StartCheckout(ctx context.Context, auth *domain.AuthContext) (*domain.CheckoutConfig, error) {
	if auth == nil {
		return nil, domain.ErrUnauthorized
	}
	user, err := s.userStore.Get(ctx, auth.UserID)
	if err != nil {
		return nil, err
	}
	if user.IsPro() {
		return nil, fmt.Errorf("%w: already on %s", domain.ErrAlreadyExists, domain.TierPro)
	}

	receipt := "rcpt_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
	orderID, err := s.gateway.CreateOrder(ctx, s.cfg.Amount, s.cfg.Currency, receipt)
	if err != nil {
		s.logger.Error("checkout order failed", "user_id", user.ID, "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrCheckoutUnavailable, err)
	}

	order := &domain.CheckoutOrder{
		OrderID:   orderID,
		UserID:    user.ID,
		Amount:    s.cfg.Amount,
		Currency:  s.cfg.Currency,
		CreatedAt: time.Now(),
	}
	if err := s.transactions.SaveOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("record checkout order: %w", err)
	}

	return &domain.CheckoutConfig{
		Key:         s.gateway.KeyID(),
		OrderID:     orderID,
		Amount:      s.cfg.Amount,
		Currency:    s.cfg.Currency,
		Name:        s.cfg.MerchantName,
		Description: s.cfg.Plan,
		Prefill: domain.CheckoutPrefill{
			Name:  user.DisplayName(),
			Email: user.Email,
		},
	}, nil
}

// CompleteCheckout verifies the payment, upgrades the user and logs the
// transaction. The order must have been created for this user, and each
// payment is applied once: confirming it again returns the logged
// transaction. Nothing changes if verification fails.
func (s *subscriptionService) CompleteCheckout(ctx context.Context, auth *domain.AuthContext, outcome domain.PaymentOutcome) (*domain.Transaction, error) {
	if auth == nil {
		return nil, domain.ErrUnauthorized
	}
	if outcome.OrderID == "" || outcome.PaymentID == "" || outcome.Signature == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := s.gateway.VerifyPayment(outcome); err != nil {
		s.logger.Warn("payment verification failed", "user_id", auth.UserID, "order_id", outcome.OrderID, "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrPaymentVerification, err)
	}

	order, err := s.transactions.GetOrder(ctx, outcome.OrderID)
	if errors.Is(err, domain.ErrNotFound) || (err == nil && order.UserID != auth.UserID) {
		s.logger.Warn("payment for an order not issued to this user", "user_id", auth.UserID, "order_id", outcome.OrderID)
		return nil, fmt.Errorf("%w: order %s was not issued to this account", domain.ErrPaymentVerification, outcome.OrderID)
	}
	if err != nil {
		return nil, err
	}

	prior, err := s.transactions.GetByPaymentID(ctx, outcome.PaymentID)
	switch {
	case err == nil:
		return s.alreadyApplied(ctx, auth, prior)
	case !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}

	tx := &domain.Transaction{
		ID:            uuid.NewString(),
		UserID:        auth.UserID,
		Email:         auth.Email,
		Plan:          s.cfg.Plan,
		PaymentAmount: order.Amount / 100,
		Currency:      order.Currency,
		PaymentStatus: domain.PaymentStatusSuccess,
		OrderID:       outcome.OrderID,
		PaymentID:     outcome.PaymentID,
		Signature:     outcome.Signature,
		CreatedAt:     time.Now(),
	}
	if err := s.transactions.Save(ctx, tx); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			// A concurrent confirm for the same payment got there first
			if prior, getErr := s.transactions.GetByPaymentID(ctx, outcome.PaymentID); getErr == nil {
				return s.alreadyApplied(ctx, auth, prior)
			}
		}
		s.logger.Error("transaction log failed", "user_id", auth.UserID, "payment_id", outcome.PaymentID, "error", err)
		return nil, err
	}

	if err := s.userStore.UpdateTier(ctx, auth.UserID, domain.TierPro); err != nil {
		// The payment is logged; confirming again finishes the upgrade
		return nil, fmt.Errorf("profile update failed, payment reference %s: %w", outcome.PaymentID, err)
	}

	s.logger.Info("subscription upgraded", "user_id", auth.UserID, "payment_id", outcome.PaymentID)
	return tx, nil
}

// alreadyApplied handles a payment that is already logged. It belongs to
// this user only if the logged transaction says so; the tier is set again so
// an upgrade interrupted after logging completes.
func (s *subscriptionService) alreadyApplied(ctx context.Context, auth *domain.AuthContext, prior *domain.Transaction) (*domain.Transaction, error) {
	if prior.UserID != auth.UserID {
		s.logger.Warn("payment already applied to another user", "user_id", auth.UserID, "payment_id", prior.PaymentID)
		return nil, fmt.Errorf("%w: payment %s was already applied", domain.ErrPaymentVerification, prior.PaymentID)
	}
	if err := s.userStore.UpdateTier(ctx, auth.UserID, domain.TierPro); err != nil {
		return nil, fmt.Errorf("profile update failed, payment reference %s: %w", prior.PaymentID, err)
	}
	return prior, nil
}

// Transactions lists the user's payments, newest first
func (s *subscriptionService) Transactions(ctx context.Context, auth *domain.AuthContext) ([]*domain.Transaction, error) {
	if auth == nil {
		return nil, domain.ErrUnauthorized
	}
	return s.transactions.ListByUser(ctx, auth.UserID)
}
