package http

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/custodia-labs/briefvault/internal/core/domain"
	"github.com/custodia-labs/briefvault/internal/core/ports/driving"
)

// Pinger is a simple health check interface
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	router     *http.ServeMux
	version    string
	maxUpload  int64
	authLimit  *RateLimitMiddleware // nil when disabled

	// Services
	authService         driving.AuthService
	userService         driving.UserService
	ingestionService    driving.IngestionService
	libraryService      driving.LibraryService
	briefingService     driving.BriefingService
	subscriptionService driving.SubscriptionService

	// Infrastructure
	runtimeConfig *domain.RuntimeConfig
	db            Pinger // PostgreSQL health check
	redisClient   Pinger // Redis health check (optional)
}

// Config holds server configuration
type Config struct {
	Host    string
	Port    int
	Version string

	// MaxUploadBytes is the extractor's input limit; request bodies may
	// exceed it slightly so the extractor can report the oversize itself.
	MaxUploadBytes int64

	// AllowedOrigins for CORS. Empty disables CORS headers.
	AllowedOrigins []string

	// AuthRatePerMinute limits public auth requests per client IP.
	// Zero disables the limit.
	AuthRatePerMinute int
	AuthRateBurst     int
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Host:              "0.0.0.0",
		Port:              8080,
		Version:           "dev",
		MaxUploadBytes:    domain.DefaultMaxInputBytes,
		AuthRatePerMinute: 20,
		AuthRateBurst:     5,
	}
}

// NewServer creates a new HTTP server
func NewServer(
	cfg Config,
	authService driving.AuthService,
	userService driving.UserService,
	ingestionService driving.IngestionService,
	libraryService driving.LibraryService,
	briefingService driving.BriefingService,
	subscriptionService driving.SubscriptionService, // can be nil when payments are not configured
	runtimeConfig *domain.RuntimeConfig,
	db Pinger,
	redisClient Pinger, // can be nil
) *Server {
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = domain.DefaultMaxInputBytes
	}

	s := &Server{
		router:              http.NewServeMux(),
		version:             cfg.Version,
		maxUpload:           cfg.MaxUploadBytes,
		authService:         authService,
		userService:         userService,
		ingestionService:    ingestionService,
		libraryService:      libraryService,
		briefingService:     briefingService,
		subscriptionService: subscriptionService,
		runtimeConfig:       runtimeConfig,
		db:                  db,
		redisClient:         redisClient,
	}

	if cfg.AuthRatePerMinute > 0 {
		s.authLimit = NewRateLimitMiddleware(cfg.AuthRatePerMinute, cfg.AuthRateBurst)
	}

	s.setupRoutes()

	var handler http.Handler = s.router
	if len(cfg.AllowedOrigins) > 0 {
		handler = NewCORSMiddleware(cfg.AllowedOrigins).Handler(handler)
	}
	handler = NewLoggingMiddleware().Handler(handler)
	handler = NewRecoveryMiddleware().Handler(handler)

	s.httpServer = &http.Server{
		Addr:        fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:     handler,
		ReadTimeout: 60 * time.Second,
		// Synthesis of a large document can take well over a minute
		WriteTimeout: 180 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler exposes the full middleware chain, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	authMiddleware := NewAuthMiddleware(s.authService)
	authed := func(h http.HandlerFunc) http.Handler {
		return authMiddleware.Authenticate(h)
	}
	limited := func(h http.HandlerFunc) http.Handler {
		if s.authLimit == nil {
			return h
		}
		return s.authLimit.Handler(h)
	}

	// Health endpoints (no auth)
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("GET /ready", s.handleReady)
	s.router.HandleFunc("GET /version", s.handleVersion)

	// Auth endpoints (public)
	s.router.Handle("POST /api/v1/auth/signup", limited(s.handleSignUp))
	s.router.Handle("POST /api/v1/auth/login", limited(s.handleLogin))
	s.router.Handle("POST /api/v1/auth/refresh", limited(s.handleRefresh))
	s.router.Handle("POST /api/v1/auth/password-reset", limited(s.handleRequestPasswordReset))
	s.router.Handle("POST /api/v1/auth/password-reset/confirm", limited(s.handleConfirmPasswordReset))

	// Auth endpoints (authenticated)
	s.router.Handle("POST /api/v1/auth/logout", authed(s.handleLogout))
	s.router.Handle("GET /api/v1/me", authed(s.handleGetMe))

	// Briefing endpoints
	s.router.Handle("POST /api/v1/briefings/extract", authed(s.handleExtract))
	s.router.Handle("POST /api/v1/briefings", authed(s.handleIngest))
	s.router.Handle("GET /api/v1/briefings", authed(s.handleListBriefings))
	s.router.Handle("GET /api/v1/briefings/count", authed(s.handleCountBriefings))
	s.router.Handle("GET /api/v1/briefings/{id}", authed(s.handleGetBriefing))
	s.router.Handle("GET /api/v1/briefings/{id}/render", authed(s.handleRenderBriefing))
	s.router.Handle("DELETE /api/v1/briefings/{id}", authed(s.handleDeleteBriefing))
	s.router.Handle("GET /api/v1/dashboard", authed(s.handleDashboard))

	// Reading preferences
	s.router.Handle("GET /api/v1/preferences/typography", authed(s.handleGetTypography))
	s.router.Handle("PUT /api/v1/preferences/typography", authed(s.handleSetTypography))

	// Subscription endpoints
	s.router.Handle("POST /api/v1/subscription/checkout", authed(s.handleStartCheckout))
	s.router.Handle("POST /api/v1/subscription/confirm", authed(s.handleConfirmCheckout))
	s.router.Handle("GET /api/v1/subscription/transactions", authed(s.handleListTransactions))
}

// Start starts the HTTP server with graceful shutdown
func (s *Server) Start() error {
	// Channel to listen for OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Start server in goroutine
	go func() {
		log.Printf("Starting server on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-stop
	log.Println("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("Server stopped")
	return nil
}

// Stop stops the server
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
