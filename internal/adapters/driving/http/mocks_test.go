package http

import (
	"context"
	"errors"

	"github.com/custodia-labs/briefvault/internal/core/domain"
	"github.com/custodia-labs/briefvault/internal/core/ports/driving"
)

// Mock services for testing

type mockAuthService struct {
	signUpFn        func(ctx context.Context, req domain.SignUpRequest) (*domain.LoginResponse, error)
	authenticateFn  func(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error)
	validateTokenFn func(ctx context.Context, token string) (*domain.AuthContext, error)
	refreshTokenFn  func(ctx context.Context, req domain.RefreshRequest) (*domain.LoginResponse, error)
	logoutFn        func(ctx context.Context, token string) error
	requestResetFn  func(ctx context.Context, req domain.PasswordResetRequest) error
	confirmResetFn  func(ctx context.Context, req domain.PasswordResetConfirm) error
}

func (m *mockAuthService) SignUp(ctx context.Context, req domain.SignUpRequest) (*domain.LoginResponse, error) {
	if m.signUpFn != nil {
		return m.signUpFn(ctx, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAuthService) Authenticate(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	if m.authenticateFn != nil {
		return m.authenticateFn(ctx, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAuthService) ValidateToken(ctx context.Context, token string) (*domain.AuthContext, error) {
	if m.validateTokenFn != nil {
		return m.validateTokenFn(ctx, token)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAuthService) RefreshToken(ctx context.Context, req domain.RefreshRequest) (*domain.LoginResponse, error) {
	if m.refreshTokenFn != nil {
		return m.refreshTokenFn(ctx, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAuthService) Logout(ctx context.Context, token string) error {
	if m.logoutFn != nil {
		return m.logoutFn(ctx, token)
	}
	return nil
}

func (m *mockAuthService) OnSessionChange(observer driving.SessionObserver) {}

func (m *mockAuthService) RequestPasswordReset(ctx context.Context, req domain.PasswordResetRequest) error {
	if m.requestResetFn != nil {
		return m.requestResetFn(ctx, req)
	}
	return nil
}

func (m *mockAuthService) ConfirmPasswordReset(ctx context.Context, req domain.PasswordResetConfirm) error {
	if m.confirmResetFn != nil {
		return m.confirmResetFn(ctx, req)
	}
	return nil
}

type mockUserService struct {
	getFn func(ctx context.Context, id string) (*domain.UserSummary, error)
}

func (m *mockUserService) Get(ctx context.Context, id string) (*domain.UserSummary, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, errors.New("not implemented")
}

type mockIngestionService struct {
	extractFn func(ctx context.Context, auth *domain.AuthContext, input domain.RawInput) (*domain.ExtractedDocument, error)
	ingestFn  func(ctx context.Context, auth *domain.AuthContext, req driving.IngestRequest) (*domain.SummaryRecord, error)
}

func (m *mockIngestionService) Extract(ctx context.Context, auth *domain.AuthContext, input domain.RawInput) (*domain.ExtractedDocument, error) {
	if m.extractFn != nil {
		return m.extractFn(ctx, auth, input)
	}
	return nil, errors.New("not implemented")
}

func (m *mockIngestionService) Ingest(ctx context.Context, auth *domain.AuthContext, req driving.IngestRequest) (*domain.SummaryRecord, error) {
	if m.ingestFn != nil {
		return m.ingestFn(ctx, auth, req)
	}
	return nil, errors.New("not implemented")
}

type mockLibraryService struct {
	listFn      func(ctx context.Context, auth *domain.AuthContext, state domain.LibraryViewState) ([]*domain.SummaryRecord, error)
	getFn       func(ctx context.Context, auth *domain.AuthContext, id string) (*domain.SummaryRecord, error)
	deleteFn    func(ctx context.Context, auth *domain.AuthContext, id string) error
	countFn     func(ctx context.Context, auth *domain.AuthContext) (int, error)
	dashboardFn func(ctx context.Context, auth *domain.AuthContext) (*domain.Dashboard, error)
}

func (m *mockLibraryService) List(ctx context.Context, auth *domain.AuthContext, state domain.LibraryViewState) ([]*domain.SummaryRecord, error) {
	if m.listFn != nil {
		return m.listFn(ctx, auth, state)
	}
	return nil, nil
}

func (m *mockLibraryService) Get(ctx context.Context, auth *domain.AuthContext, id string) (*domain.SummaryRecord, error) {
	if m.getFn != nil {
		return m.getFn(ctx, auth, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockLibraryService) Delete(ctx context.Context, auth *domain.AuthContext, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, auth, id)
	}
	return nil
}

func (m *mockLibraryService) Count(ctx context.Context, auth *domain.AuthContext) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx, auth)
	}
	return 0, nil
}

func (m *mockLibraryService) Dashboard(ctx context.Context, auth *domain.AuthContext) (*domain.Dashboard, error) {
	if m.dashboardFn != nil {
		return m.dashboardFn(ctx, auth)
	}
	return nil, errors.New("not implemented")
}

type mockBriefingService struct {
	renderFn        func(ctx context.Context, auth *domain.AuthContext, id string, pref *domain.TypographyPreference) (*domain.RenderedBriefing, error)
	typographyFn    func(ctx context.Context, auth *domain.AuthContext) (domain.TypographyPreference, error)
	setTypographyFn func(ctx context.Context, auth *domain.AuthContext, pref domain.TypographyPreference) error
}

func (m *mockBriefingService) Render(ctx context.Context, auth *domain.AuthContext, id string, pref *domain.TypographyPreference) (*domain.RenderedBriefing, error) {
	if m.renderFn != nil {
		return m.renderFn(ctx, auth, id, pref)
	}
	return nil, errors.New("not implemented")
}

func (m *mockBriefingService) Typography(ctx context.Context, auth *domain.AuthContext) (domain.TypographyPreference, error) {
	if m.typographyFn != nil {
		return m.typographyFn(ctx, auth)
	}
	return domain.DefaultTypography(), nil
}

func (m *mockBriefingService) SetTypography(ctx context.Context, auth *domain.AuthContext, pref domain.TypographyPreference) error {
	if m.setTypographyFn != nil {
		return m.setTypographyFn(ctx, auth, pref)
	}
	return nil
}

type mockSubscriptionService struct {
	startFn        func(ctx context.Context, auth *domain.AuthContext) (*domain.CheckoutConfig, error)
	completeFn     func(ctx context.Context, auth *domain.AuthContext, outcome domain.PaymentOutcome) (*domain.Transaction, error)
	transactionsFn func(ctx context.Context, auth *domain.AuthContext) ([]*domain.Transaction, error)
}

func (m *mockSubscriptionService) StartCheckout(ctx context.Context, auth *domain.AuthContext) (*domain.CheckoutConfig, error) {
	if m.startFn != nil {
		return m.startFn(ctx, auth)
	}
	return nil, errors.New("not implemented")
}

func (m *mockSubscriptionService) CompleteCheckout(ctx context.Context, auth *domain.AuthContext, outcome domain.PaymentOutcome) (*domain.Transaction, error) {
	if m.completeFn != nil {
		return m.completeFn(ctx, auth, outcome)
	}
	return nil, errors.New("not implemented")
}

func (m *mockSubscriptionService) Transactions(ctx context.Context, auth *domain.AuthContext) ([]*domain.Transaction, error) {
	if m.transactionsFn != nil {
		return m.transactionsFn(ctx, auth)
	}
	return nil, nil
}

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(ctx context.Context) error {
	return m.err
}

// testServer bundles a server with its mocks. Every request carrying
// "Bearer good" is authenticated as testAuth.
type testServer struct {
	*Server
	auth         *mockAuthService
	users        *mockUserService
	ingestion    *mockIngestionService
	library      *mockLibraryService
	briefing     *mockBriefingService
	subscription *mockSubscriptionService
	db           *mockPinger
}

var testAuth = &domain.AuthContext{
	UserID:    "user-1",
	Email:     "ana@example.com",
	Name:      "Ana",
	Tier:      domain.TierFree,
	SessionID: "sess-1",
}

func newTestServer() *testServer {
	ts := &testServer{
		auth: &mockAuthService{
			validateTokenFn: func(ctx context.Context, token string) (*domain.AuthContext, error) {
				if token == "good" {
					return testAuth, nil
				}
				return nil, domain.ErrTokenInvalid
			},
		},
		users:        &mockUserService{},
		ingestion:    &mockIngestionService{},
		library:      &mockLibraryService{},
		briefing:     &mockBriefingService{},
		subscription: &mockSubscriptionService{},
		db:           &mockPinger{},
	}

	cfg := DefaultConfig()
	cfg.MaxUploadBytes = 1024
	ts.Server = NewServer(cfg, ts.auth, ts.users, ts.ingestion, ts.library, ts.briefing, ts.subscription,
		domain.NewRuntimeConfig("postgres"), ts.db, nil)
	return ts
}
