package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/briefvault/internal/core/domain"
	"github.com/custodia-labs/briefvault/internal/core/ports/driven"
	"github.com/custodia-labs/briefvault/internal/core/ports/driving"
)

// Ensure authService implements AuthService
var _ driving.AuthService = (*authService)(nil)

// MinPasswordLength is the shortest accepted password
const MinPasswordLength = 6

// AuthServiceConfig holds auth service settings
type AuthServiceConfig struct {
	TokenTTL time.Duration
	ResetTTL time.Duration
	Logger   *slog.Logger
}

// DefaultAuthServiceConfig returns a 24h session and a 30 minute reset window
func DefaultAuthServiceConfig() AuthServiceConfig {
	return AuthServiceConfig{
		TokenTTL: 24 * time.Hour,
		ResetTTL: 30 * time.Minute,
	}
}

// authService implements the AuthService interface
type authService struct {
	userStore    driven.UserStore
	sessionStore driven.SessionStore
	authAdapter  driven.AuthAdapter
	resets       driven.ResetTokenStore
	notifier     driven.ResetNotifier
	tokenTTL     time.Duration
	resetTTL     time.Duration
	logger       *slog.Logger

	mu        sync.RWMutex
	observers []driving.SessionObserver
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userStore driven.UserStore,
	sessionStore driven.SessionStore,
	authAdapter driven.AuthAdapter,
	resets driven.ResetTokenStore,
	notifier driven.ResetNotifier,
	cfg AuthServiceConfig,
) driving.AuthService {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	if cfg.ResetTTL <= 0 {
		cfg.ResetTTL = 30 * time.Minute
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &authService{
		userStore:    userStore,
		sessionStore: sessionStore,
		authAdapter:  authAdapter,
		resets:       resets,
		notifier:     notifier,
		tokenTTL:     cfg.TokenTTL,
		resetTTL:     cfg.ResetTTL,
		logger:       logger,
	}
}

// SignUp registers a new free-tier account and signs it in
func (s *authService) SignUp(ctx context.Context, req domain.SignUpRequest) (*domain.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validEmail(email) || len(req.Password) < MinPasswordLength {
		return nil, domain.ErrInvalidInput
	}

	if _, err := s.userStore.GetByEmail(ctx, email); err == nil {
		return nil, domain.ErrAlreadyExists
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := s.authAdapter.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Name:         strings.TrimSpace(req.Name),
		Tier:         domain.TierFree,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userStore.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user signed up", "user_id", user.ID)
	return s.startSession(ctx, user)
}

// Authenticate validates credentials and creates a session
func (s *authService) Authenticate(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	user, err := s.userStore.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if !s.authAdapter.VerifyPassword(req.Password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	resp, err := s.startSession(ctx, user)
	if err != nil {
		return nil, err
	}

	_ = s.userStore.UpdateLastLogin(ctx, user.ID)
	return resp, nil
}

func (s *authService) startSession(ctx context.Context, user *domain.User) (*domain.LoginResponse, error) {
	session, err := s.issueSession(ctx, user)
	if err != nil {
		return nil, err
	}

	s.notify(domain.SessionEvent{Kind: domain.SessionSignedIn, UserID: user.ID, SessionID: session.ID})

	return &domain.LoginResponse{
		Token:        session.Token,
		RefreshToken: session.RefreshToken,
		ExpiresAt:    session.ExpiresAt,
		User:         user.ToSummary(),
	}, nil
}

func (s *authService) issueSession(ctx context.Context, user *domain.User) (*domain.Session, error) {
	now := time.Now()
	sessionID := uuid.NewString()
	claims := &domain.TokenClaims{
		UserID:    user.ID,
		Email:     user.Email,
		SessionID: sessionID,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(s.tokenTTL).Unix(),
	}

	token, err := s.authAdapter.GenerateToken(claims)
	if err != nil {
		return nil, err
	}

	session := &domain.Session{
		ID:           sessionID,
		UserID:       user.ID,
		Token:        token,
		RefreshToken: generateRefreshToken(),
		ExpiresAt:    now.Add(s.tokenTTL),
		CreatedAt:    now,
	}
	if err := s.sessionStore.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// ValidateToken validates a JWT token and returns the auth context
func (s *authService) ValidateToken(ctx context.Context, token string) (*domain.AuthContext, error) {
	if token == "" {
		return nil, domain.ErrTokenInvalid
	}

	claims, err := s.authAdapter.ParseToken(token)
	if errors.Is(err, domain.ErrTokenExpired) {
		return nil, domain.ErrTokenExpired
	}
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}

	if time.Now().Unix() > claims.ExpiresAt {
		return nil, domain.ErrTokenExpired
	}

	session, err := s.sessionStore.Get(ctx, claims.SessionID)
	if err != nil {
		return nil, domain.ErrSessionNotFound
	}
	if session.IsExpired() {
		return nil, domain.ErrTokenExpired
	}

	// Tier changes after checkout, so it is read fresh rather than from the token
	user, err := s.userStore.Get(ctx, claims.UserID)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	return &domain.AuthContext{
		UserID:    user.ID,
		Email:     user.Email,
		Name:      user.DisplayName(),
		Tier:      user.Tier,
		SessionID: claims.SessionID,
	}, nil
}

// RefreshToken rotates a session using its refresh token
func (s *authService) RefreshToken(ctx context.Context, req domain.RefreshRequest) (*domain.LoginResponse, error) {
	if req.RefreshToken == "" {
		return nil, domain.ErrTokenInvalid
	}

	session, err := s.sessionStore.GetByRefreshToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}
	if session.IsExpired() {
		return nil, domain.ErrTokenExpired
	}

	user, err := s.userStore.Get(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	newSession, err := s.issueSession(ctx, user)
	if err != nil {
		return nil, err
	}
	_ = s.sessionStore.Delete(ctx, session.ID)

	return &domain.LoginResponse{
		Token:        newSession.Token,
		RefreshToken: newSession.RefreshToken,
		ExpiresAt:    newSession.ExpiresAt,
		User:         user.ToSummary(),
	}, nil
}

// Logout invalidates a session and tells observers the user signed out
func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	claims, err := s.authAdapter.ParseToken(token)
	if err != nil {
		return nil // Already invalid, nothing to do
	}

	if err := s.sessionStore.Delete(ctx, claims.SessionID); err != nil {
		return err
	}

	s.notify(domain.SessionEvent{Kind: domain.SessionSignedOut, UserID: claims.UserID, SessionID: claims.SessionID})
	return nil
}

// OnSessionChange registers an observer. Observers run synchronously in
// registration order.
func (s *authService) OnSessionChange(observer driving.SessionObserver) {
	if observer == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, observer)
}

func (s *authService) notify(event domain.SessionEvent) {
	s.mu.RLock()
	observers := append([]driving.SessionObserver(nil), s.observers...)
	s.mu.RUnlock()

	for _, observe := range observers {
		observe(event)
	}
}

// RequestPasswordReset issues a single-use reset link
func (s *authService) RequestPasswordReset(ctx context.Context, req domain.PasswordResetRequest) error {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validEmail(email) {
		return domain.ErrInvalidInput
	}

	user, err := s.userStore.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		s.logger.Debug("password reset for unknown email ignored")
		return nil
	}
	if err != nil {
		return err
	}

	grant := &domain.PasswordReset{
		Token:      generateRefreshToken(),
		UserID:     user.ID,
		Email:      user.Email,
		RedirectTo: req.RedirectTo,
		ExpiresAt:  time.Now().Add(s.resetTTL),
	}
	if err := s.resets.Save(ctx, grant); err != nil {
		return err
	}

	link, err := resetLink(req.RedirectTo, grant.Token)
	if err != nil {
		return err
	}
	return s.notifier.SendPasswordReset(ctx, user.Email, link)
}

// ConfirmPasswordReset consumes a reset grant and sets the new password
func (s *authService) ConfirmPasswordReset(ctx context.Context, req domain.PasswordResetConfirm) error {
	if req.Token == "" || len(req.NewPassword) < MinPasswordLength {
		return domain.ErrInvalidInput
	}

	grant, err := s.resets.Consume(ctx, req.Token)
	if err != nil {
		return domain.ErrTokenInvalid
	}
	if grant.IsExpired() {
		return domain.ErrTokenExpired
	}

	user, err := s.userStore.Get(ctx, grant.UserID)
	if err != nil {
		return err
	}

	hash, err := s.authAdapter.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = hash
	user.UpdatedAt = time.Now()
	if err := s.userStore.Save(ctx, user); err != nil {
		return err
	}

	if err := s.sessionStore.DeleteByUser(ctx, user.ID); err != nil {
		return err
	}
	s.notify(domain.SessionEvent{Kind: domain.SessionSignedOut, UserID: user.ID})
	return nil
}

// Helper functions

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

func resetLink(redirectTo, token string) (string, error) {
	if redirectTo == "" {
		return token, nil
	}
	u, err := url.Parse(redirectTo)
	if err != nil {
		return "", fmt.Errorf("%w: redirect target", domain.ErrInvalidInput)
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func generateRefreshToken() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}
