package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/briefvault/internal/core/domain"
	"github.com/custodia-labs/briefvault/internal/core/ports/driven/mocks"
)

func newSubscriptionFixture(t *testing.T) (*mocks.MockCheckoutGateway, *mocks.MockUserStore, *mocks.MockTransactionStore, *subscriptionService) {
	t.Helper()
	gateway := &mocks.MockCheckoutGateway{}
	users := mocks.NewMockUserStore()
	txs := mocks.NewMockTransactionStore()
	require.NoError(t, users.Save(context.Background(), &domain.User{
		ID:    "user-1",
		Email: "reader@example.com",
		Name:  "Reader One",
		Tier:  domain.TierFree,
	}))
	svc := NewSubscriptionService(gateway, users, txs, DefaultSubscriptionConfig()).(*subscriptionService)
	return gateway, users, txs, svc
}

func TestSubscriptionService_StartCheckout(t *testing.T) {
	gateway, _, _, svc := newSubscriptionFixture(t)
	gateway.On("CreateOrder", mock.Anything, int64(1900), "INR", mock.AnythingOfType("string")).Return("order_ABC123", nil)
	gateway.On("KeyID").Return("rzp_test_key")

	cfg, err := svc.StartCheckout(context.Background(), testAuth)
	require.NoError(t, err)

	assert.Equal(t, "rzp_test_key", cfg.Key)
	assert.Equal(t, "order_ABC123", cfg.OrderID)
	assert.Equal(t, int64(1900), cfg.Amount)
	assert.Equal(t, "INR", cfg.Currency)
	assert.Equal(t, domain.ProPlanName, cfg.Description)
	assert.Equal(t, domain.CheckoutPrefill{Name: "Reader One", Email: "reader@example.com"}, cfg.Prefill)
	gateway.AssertExpectations(t)
}

func TestSubscriptionService_StartCheckout_RecordsOrderOwner(t *testing.T) {
	gateway, _, txs, svc := newSubscriptionFixture(t)
	gateway.On("CreateOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("order_OWN", nil)
	gateway.On("KeyID").Return("rzp_test_key")

	_, err := svc.StartCheckout(context.Background(), testAuth)
	require.NoError(t, err)

	order, err := txs.GetOrder(context.Background(), "order_OWN")
	require.NoError(t, err)
	assert.Equal(t, "user-1", order.UserID)
	assert.Equal(t, int64(1900), order.Amount)
}

func TestSubscriptionService_StartCheckout_GatewayDown(t *testing.T) {
	gateway, _, _, svc := newSubscriptionFixture(t)
	gateway.On("CreateOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("502 bad gateway"))

	_, err := svc.StartCheckout(context.Background(), testAuth)
	assert.ErrorIs(t, err, domain.ErrCheckoutUnavailable)
}

func TestSubscriptionService_StartCheckout_AlreadyPro(t *testing.T) {
	gateway, users, _, svc := newSubscriptionFixture(t)
	require.NoError(t, users.UpdateTier(context.Background(), "user-1", domain.TierPro))

	_, err := svc.StartCheckout(context.Background(), testAuth)
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	gateway.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func seedOrder(t *testing.T, txs *mocks.MockTransactionStore, orderID, userID string) {
	t.Helper()
	require.NoError(t, txs.SaveOrder(context.Background(), &domain.CheckoutOrder{
		OrderID:  orderID,
		UserID:   userID,
		Amount:   domain.DefaultProPlanAmount,
		Currency: domain.DefaultProPlanCurrency,
	}))
}

func TestSubscriptionService_CompleteCheckout(t *testing.T) {
	gateway, users, txs, svc := newSubscriptionFixture(t)
	seedOrder(t, txs, "order_1", "user-1")
	outcome := domain.PaymentOutcome{OrderID: "order_1", PaymentID: "pay_1", Signature: "sig"}
	gateway.On("VerifyPayment", outcome).Return(nil)

	tx, err := svc.CompleteCheckout(context.Background(), testAuth, outcome)
	require.NoError(t, err)

	assert.Equal(t, domain.PaymentStatusSuccess, tx.PaymentStatus)
	assert.Equal(t, int64(19), tx.PaymentAmount)
	assert.Equal(t, domain.ProPlanName, tx.Plan)
	assert.Equal(t, "pay_1", tx.PaymentID)

	user, _ := users.Get(context.Background(), "user-1")
	assert.Equal(t, domain.TierPro, user.Tier)

	list, err := svc.Transactions(context.Background(), testAuth)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, tx.ID, list[0].ID)
}

func TestSubscriptionService_CompleteCheckout_BadSignature(t *testing.T) {
	gateway, users, txs, svc := newSubscriptionFixture(t)
	outcome := domain.PaymentOutcome{OrderID: "order_1", PaymentID: "pay_1", Signature: "forged"}
	gateway.On("VerifyPayment", outcome).Return(errors.New("signature mismatch"))

	_, err := svc.CompleteCheckout(context.Background(), testAuth, outcome)
	assert.ErrorIs(t, err, domain.ErrPaymentVerification)

	user, _ := users.Get(context.Background(), "user-1")
	assert.Equal(t, domain.TierFree, user.Tier, "tier must not change")
	list, _ := txs.ListByUser(context.Background(), "user-1")
	assert.Empty(t, list)
}

func TestSubscriptionService_CompleteCheckout_MissingFields(t *testing.T) {
	gateway, _, _, svc := newSubscriptionFixture(t)

	_, err := svc.CompleteCheckout(context.Background(), testAuth, domain.PaymentOutcome{OrderID: "order_1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	gateway.AssertNotCalled(t, "VerifyPayment", mock.Anything)
}

func TestSubscriptionService_CompleteCheckout_OrderOfAnotherUser(t *testing.T) {
	gateway, users, txs, svc := newSubscriptionFixture(t)
	seedOrder(t, txs, "order_2", "user-2")
	outcome := domain.PaymentOutcome{OrderID: "order_2", PaymentID: "pay_2", Signature: "valid"}
	gateway.On("VerifyPayment", outcome).Return(nil)

	_, err := svc.CompleteCheckout(context.Background(), testAuth, outcome)
	assert.ErrorIs(t, err, domain.ErrPaymentVerification)

	user, _ := users.Get(context.Background(), "user-1")
	assert.Equal(t, domain.TierFree, user.Tier, "tier must not change")
	list, _ := txs.ListByUser(context.Background(), "user-1")
	assert.Empty(t, list)
}

func TestSubscriptionService_CompleteCheckout_UnknownOrder(t *testing.T) {
	gateway, users, _, svc := newSubscriptionFixture(t)
	outcome := domain.PaymentOutcome{OrderID: "order_never_issued", PaymentID: "pay_3", Signature: "valid"}
	gateway.On("VerifyPayment", outcome).Return(nil)

	_, err := svc.CompleteCheckout(context.Background(), testAuth, outcome)
	assert.ErrorIs(t, err, domain.ErrPaymentVerification)

	user, _ := users.Get(context.Background(), "user-1")
	assert.Equal(t, domain.TierFree, user.Tier)
}

func TestSubscriptionService_CompleteCheckout_PaymentAppliedOnce(t *testing.T) {
	gateway, users, txs, svc := newSubscriptionFixture(t)
	require.NoError(t, users.Save(context.Background(), &domain.User{ID: "user-2", Email: "other@example.com", Tier: domain.TierFree}))
	seedOrder(t, txs, "order_1", "user-1")
	outcome := domain.PaymentOutcome{OrderID: "order_1", PaymentID: "pay_1", Signature: "valid"}
	gateway.On("VerifyPayment", outcome).Return(nil)

	first, err := svc.CompleteCheckout(context.Background(), testAuth, outcome)
	require.NoError(t, err)

	// Confirming again for the same account returns the logged payment
	again, err := svc.CompleteCheckout(context.Background(), testAuth, outcome)
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
	list, _ := txs.ListByUser(context.Background(), "user-1")
	assert.Len(t, list, 1)

	// Replaying the same triple from another account upgrades nothing
	other := &domain.AuthContext{UserID: "user-2", Email: "other@example.com"}
	_, err = svc.CompleteCheckout(context.Background(), other, outcome)
	assert.ErrorIs(t, err, domain.ErrPaymentVerification)
	user, _ := users.Get(context.Background(), "user-2")
	assert.Equal(t, domain.TierFree, user.Tier)
}

func TestSubscriptionService_CompleteCheckout_RetryFinishesUpgrade(t *testing.T) {
	gateway, users, txs, svc := newSubscriptionFixture(t)
	seedOrder(t, txs, "order_1", "user-1")
	outcome := domain.PaymentOutcome{OrderID: "order_1", PaymentID: "pay_1", Signature: "valid"}
	gateway.On("VerifyPayment", outcome).Return(nil)

	// The payment was logged but the tier update never happened
	require.NoError(t, txs.Save(context.Background(), &domain.Transaction{ID: "tx-1", UserID: "user-1", PaymentID: "pay_1"}))

	tx, err := svc.CompleteCheckout(context.Background(), testAuth, outcome)
	require.NoError(t, err)
	assert.Equal(t, "tx-1", tx.ID)

	user, _ := users.Get(context.Background(), "user-1")
	assert.Equal(t, domain.TierPro, user.Tier)
}
