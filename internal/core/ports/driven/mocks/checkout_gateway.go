package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/custodia-labs/briefvault/internal/core/domain"
	"github.com/custodia-labs/briefvault/internal/core/ports/driven"
)

var _ driven.CheckoutGateway = (*MockCheckoutGateway)(nil)

// MockCheckoutGateway is a testify mock; set expectations with On(...)
type MockCheckoutGateway struct {
	mock.Mock
}

func (m *MockCheckoutGateway) KeyID() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockCheckoutGateway) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (string, error) {
	args := m.Called(ctx, amount, currency, receipt)
	return args.String(0), args.Error(1)
}

func (m *MockCheckoutGateway) VerifyPayment(outcome domain.PaymentOutcome) error {
	args := m.Called(outcome)
	return args.Error(0)
}
