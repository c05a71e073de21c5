package http

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/briefvault/internal/core/domain"
	"github.com/custodia-labs/briefvault/internal/core/ports/driving"
)

// multipartOverhead leaves room for form boundaries and fields on top of
// the document itself.
const multipartOverhead = 1 << 20

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error" example:"Briefing not found."`
}

// StatusResponse represents a simple status response
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// VersionResponse represents version information
type VersionResponse struct {
	Version string `json:"version" example:"1.0.0"`
}

// ReadyResponse reports the state of each dependency
type ReadyResponse struct {
	Status    string            `json:"status" example:"ready"`
	Checks    map[string]string `json:"checks"`
	Synthesis bool              `json:"synthesis_available"`
}

// CountResponse wraps a count
type CountResponse struct {
	Count int `json:"count" example:"12"`
}

// IngestTextRequest is the JSON form of a briefing request
type IngestTextRequest struct {
	Text     string          `json:"text" example:"Q3 revenue rose 12%..."`
	Category domain.Category `json:"category,omitempty" example:"Text"`
}

// MessageResponse carries an informational message
type MessageResponse struct {
	Message string `json:"message" example:"If the account exists, a reset link has been sent."`
}

// Health endpoints

// handleHealth godoc
// @Summary      Health check
// @Description  Liveness check
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// handleReady godoc
// @Summary      Readiness check
// @Description  Checks PostgreSQL and, when configured, Redis
// @Tags         Health
// @Produce      json
// @Success      200  {object}  ReadyResponse
// @Failure      503  {object}  ReadyResponse
// @Router       /ready [get]
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	resp := ReadyResponse{Status: "ready", Checks: map[string]string{}}
	status := http.StatusOK

	if s.db != nil {
		if err := s.db.Ping(r.Context()); err != nil {
			resp.Checks["postgres"] = err.Error()
			status = http.StatusServiceUnavailable
		} else {
			resp.Checks["postgres"] = "ok"
		}
	}
	if s.redisClient != nil {
		if err := s.redisClient.Ping(r.Context()); err != nil {
			resp.Checks["redis"] = err.Error()
			status = http.StatusServiceUnavailable
		} else {
			resp.Checks["redis"] = "ok"
		}
	}
	if s.runtimeConfig != nil {
		resp.Synthesis = s.runtimeConfig.SynthesisAvailable()
	}

	if status != http.StatusOK {
		resp.Status = "not ready"
	}
	writeJSON(w, status, resp)
}

// handleVersion godoc
// @Summary      Version
// @Tags         Health
// @Produce      json
// @Success      200  {object}  VersionResponse
// @Router       /version [get]
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, VersionResponse{Version: s.version})
}

// Auth handlers

// handleSignUp godoc
// @Summary      Create an account
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      domain.SignUpRequest  true  "New account"
// @Success      201      {object}  domain.LoginResponse
// @Failure      400      {object}  ErrorResponse
// @Failure      409      {object}  ErrorResponse
// @Router       /api/v1/auth/signup [post]
func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req domain.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := s.authService.SignUp(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAlreadyExists):
			writeError(w, http.StatusConflict, "an account with this email already exists")
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "valid email and a password of at least 6 characters are required")
		default:
			writeError(w, http.StatusInternalServerError, "sign up failed")
		}
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// handleLogin godoc
// @Summary      Sign in
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      domain.LoginRequest  true  "Credentials"
// @Success      200      {object}  domain.LoginResponse
// @Failure      401      {object}  ErrorResponse
// @Router       /api/v1/auth/login [post]
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	resp, err := s.authService.Authenticate(r.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		writeError(w, http.StatusInternalServerError, "authentication failed")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleRefresh godoc
// @Summary      Refresh a session
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      domain.RefreshRequest  true  "Refresh token"
// @Success      200      {object}  domain.LoginResponse
// @Failure      401      {object}  ErrorResponse
// @Router       /api/v1/auth/refresh [post]
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req domain.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		writeError(w, http.StatusBadRequest, "refresh_token is required")
		return
	}

	resp, err := s.authService.RefreshToken(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleLogout godoc
// @Summary      Sign out
// @Tags         Auth
// @Security     BearerAuth
// @Success      204
// @Router       /api/v1/auth/logout [post]
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.authService.Logout(r.Context(), extractBearerToken(r)); err != nil {
		writeError(w, http.StatusInternalServerError, "logout failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleRequestPasswordReset godoc
// @Summary      Request a password reset link
// @Description  Always answers 202 so callers cannot learn which emails exist
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      domain.PasswordResetRequest  true  "Account email"
// @Success      202      {object}  MessageResponse
// @Router       /api/v1/auth/password-reset [post]
func (s *Server) handleRequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req domain.PasswordResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.authService.RequestPasswordReset(r.Context(), req); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "a valid email is required")
			return
		}
		writeError(w, http.StatusInternalServerError, "could not start password reset")
		return
	}

	writeJSON(w, http.StatusAccepted, MessageResponse{Message: "If the account exists, a reset link has been sent."})
}

// handleConfirmPasswordReset godoc
// @Summary      Set a new password with a reset token
// @Tags         Auth
// @Accept       json
// @Param        request  body  domain.PasswordResetConfirm  true  "Token and new password"
// @Success      204
// @Failure      400  {object}  ErrorResponse
// @Router       /api/v1/auth/password-reset/confirm [post]
func (s *Server) handleConfirmPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req domain.PasswordResetConfirm
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.authService.ConfirmPasswordReset(r.Context(), req); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "password must be at least 6 characters")
		case errors.Is(err, domain.ErrTokenInvalid), errors.Is(err, domain.ErrTokenExpired), errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusBadRequest, "reset link is invalid or has expired")
		default:
			writeError(w, http.StatusInternalServerError, "password reset failed")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleGetMe godoc
// @Summary      Current user
// @Tags         Auth
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  domain.UserSummary
// @Router       /api/v1/me [get]
func (s *Server) handleGetMe(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())

	user, err := s.userService.Get(r.Context(), authCtx.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load user")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// Briefing handlers

// handleExtract godoc
// @Summary      Preview an extraction
// @Description  Runs the extractor without calling the synthesis model. Accepts
// @Description  multipart/form-data with a "file" part, or JSON with "text".
// @Tags         Briefings
// @Security     BearerAuth
// @Accept       json,mpfd
// @Produce      json
// @Success      200  {object}  domain.ExtractedDocument
// @Failure      413  {object}  ErrorResponse
// @Failure      415  {object}  ErrorResponse
// @Failure      422  {object}  ErrorResponse
// @Router       /api/v1/briefings/extract [post]
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	input, _, err := s.readIngestInput(w, r)
	if err != nil {
		writeDomainError(w, err, "invalid request body")
		return
	}

	doc, err := s.ingestionService.Extract(r.Context(), GetAuthContext(r.Context()), input)
	if err != nil {
		writeDomainError(w, err, "extraction failed")
		return
	}

	writeJSON(w, http.StatusOK, doc)
}

// handleIngest godoc
// @Summary      Create a briefing
// @Description  Extracts, synthesizes and stores a briefing. Accepts
// @Description  multipart/form-data with a "file" part, or JSON with "text".
// @Tags         Briefings
// @Security     BearerAuth
// @Accept       json,mpfd
// @Produce      json
// @Success      201  {object}  domain.SummaryRecord
// @Failure      409  {object}  ErrorResponse
// @Failure      429  {object}  ErrorResponse
// @Failure      502  {object}  ErrorResponse
// @Failure      503  {object}  ErrorResponse
// @Router       /api/v1/briefings [post]
func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	input, category, err := s.readIngestInput(w, r)
	if err != nil {
		writeDomainError(w, err, "invalid request body")
		return
	}

	record, err := s.ingestionService.Ingest(r.Context(), GetAuthContext(r.Context()), driving.IngestRequest{
		Input:    input,
		Category: category,
	})
	if err != nil {
		writeDomainError(w, err, "briefing failed")
		return
	}

	writeJSON(w, http.StatusCreated, record)
}

// readIngestInput decodes either a multipart upload or a JSON text body
func (s *Server) readIngestInput(w http.ResponseWriter, r *http.Request) (domain.RawInput, domain.Category, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload+multipartOverhead)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		return s.readMultipartInput(r)
	}

	var req IngestTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return domain.RawInput{}, "", domain.ErrOversizeInput
		}
		return domain.RawInput{}, "", domain.ErrInvalidInput
	}
	if req.Category != "" && !req.Category.IsValid() {
		return domain.RawInput{}, "", domain.ErrInvalidInput
	}
	return domain.RawInput{Text: req.Text, MediaType: "text/plain"}, req.Category, nil
}

func (s *Server) readMultipartInput(r *http.Request) (domain.RawInput, domain.Category, error) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return domain.RawInput{}, "", domain.ErrOversizeInput
		}
		return domain.RawInput{}, "", domain.ErrInvalidInput
	}
	if r.MultipartForm != nil {
		defer func() { _ = r.MultipartForm.RemoveAll() }()
	}

	category := domain.Category(r.FormValue("category"))
	if category != "" && !category.IsValid() {
		return domain.RawInput{}, "", domain.ErrInvalidInput
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		// A form without a file may still carry pasted text
		if text := r.FormValue("text"); text != "" {
			return domain.RawInput{Text: text, MediaType: "text/plain"}, category, nil
		}
		return domain.RawInput{}, "", domain.ErrEmptyInput
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		return domain.RawInput{}, "", domain.ErrInvalidInput
	}

	return domain.RawInput{
		Data:      data,
		MediaType: uploadMediaType(header.Header.Get("Content-Type"), header.Filename),
		FileName:  header.Filename,
	}, category, nil
}

// uploadMediaType trusts the part's declared type unless it is missing or
// generic, in which case the file extension decides.
func uploadMediaType(declared, filename string) string {
	mediaType, _, err := mime.ParseMediaType(declared)
	if err == nil && mediaType != "" && mediaType != "application/octet-stream" {
		return mediaType
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == ".txt" || ext == ".md" {
		return "text/plain"
	}
	if byExt := mime.TypeByExtension(ext); byExt != "" {
		mediaType, _, _ = mime.ParseMediaType(byExt)
		return mediaType
	}
	return declared
}

// handleListBriefings godoc
// @Summary      List briefings
// @Description  Applies the library view: search over title and summary,
// @Description  category filter and sort order.
// @Tags         Briefings
// @Security     BearerAuth
// @Produce      json
// @Param        search    query     string  false  "Case-insensitive search term"
// @Param        category  query     string  false  "All, Text or Document"
// @Param        sort      query     string  false  "newest, oldest or alphabetical"
// @Success      200       {array}   domain.SummaryRecord
// @Failure      400       {object}  ErrorResponse
// @Router       /api/v1/briefings [get]
func (s *Server) handleListBriefings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	category, err := domain.ParseCategoryFilter(q.Get("category"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "category must be All, Text or Document")
		return
	}
	sortOrder, err := domain.ParseSortOrder(q.Get("sort"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "sort must be newest, oldest or alphabetical")
		return
	}

	records, err := s.libraryService.List(r.Context(), GetAuthContext(r.Context()), domain.LibraryViewState{
		SearchTerm: q.Get("search"),
		Category:   category,
		Sort:       sortOrder,
	})
	if err != nil {
		writeDomainError(w, err, "failed to list briefings")
		return
	}
	if records == nil {
		records = []*domain.SummaryRecord{}
	}

	writeJSON(w, http.StatusOK, records)
}

// handleCountBriefings godoc
// @Summary      Count briefings
// @Tags         Briefings
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  CountResponse
// @Router       /api/v1/briefings/count [get]
func (s *Server) handleCountBriefings(w http.ResponseWriter, r *http.Request) {
	count, err := s.libraryService.Count(r.Context(), GetAuthContext(r.Context()))
	if err != nil {
		writeDomainError(w, err, "failed to count briefings")
		return
	}
	writeJSON(w, http.StatusOK, CountResponse{Count: count})
}

// handleGetBriefing godoc
// @Summary      Get a briefing
// @Description  Returns the stored record. With format=text the raw briefing
// @Description  text is returned as text/plain, ready to copy.
// @Tags         Briefings
// @Security     BearerAuth
// @Produce      json,plain
// @Param        id      path      string  true   "Briefing ID"
// @Param        format  query     string  false  "text for the raw briefing"
// @Success      200     {object}  domain.SummaryRecord
// @Failure      404     {object}  ErrorResponse
// @Router       /api/v1/briefings/{id} [get]
func (s *Server) handleGetBriefing(w http.ResponseWriter, r *http.Request) {
	record, err := s.libraryService.Get(r.Context(), GetAuthContext(r.Context()), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err, "failed to load briefing")
		return
	}

	if r.URL.Query().Get("format") == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, record.Summary)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// handleRenderBriefing godoc
// @Summary      Render a briefing for reading
// @Description  Parses the briefing into paragraphs, bullets and emphasis.
// @Description  font_scale and line_spacing override the saved preference
// @Description  for this request only.
// @Tags         Briefings
// @Security     BearerAuth
// @Produce      json
// @Param        id            path      string  true   "Briefing ID"
// @Param        font_scale    query     string  false  "sm, base, lg or xl"
// @Param        line_spacing  query     string  false  "tight, normal, relaxed or loose"
// @Success      200           {object}  domain.RenderedBriefing
// @Failure      404           {object}  ErrorResponse
// @Router       /api/v1/briefings/{id}/render [get]
func (s *Server) handleRenderBriefing(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	q := r.URL.Query()

	var pref *domain.TypographyPreference
	if q.Has("font_scale") || q.Has("line_spacing") {
		current, err := s.briefingService.Typography(r.Context(), authCtx)
		if err != nil {
			writeDomainError(w, err, "failed to load reading preferences")
			return
		}
		if v := q.Get("font_scale"); v != "" {
			if current.FontScale, err = domain.ParseFontScale(v); err != nil {
				writeError(w, http.StatusBadRequest, "font_scale must be sm, base, lg or xl")
				return
			}
		}
		if v := q.Get("line_spacing"); v != "" {
			if current.LineSpacing, err = domain.ParseLineSpacing(v); err != nil {
				writeError(w, http.StatusBadRequest, "line_spacing must be tight, normal, relaxed or loose")
				return
			}
		}
		pref = &current
	}

	rendered, err := s.briefingService.Render(r.Context(), authCtx, r.PathValue("id"), pref)
	if err != nil {
		writeDomainError(w, err, "failed to render briefing")
		return
	}

	writeJSON(w, http.StatusOK, rendered)
}

// handleDeleteBriefing godoc
// @Summary      Delete a briefing
// @Tags         Briefings
// @Security     BearerAuth
// @Param        id   path      string  true  "Briefing ID"
// @Success      204
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /api/v1/briefings/{id} [delete]
func (s *Server) handleDeleteBriefing(w http.ResponseWriter, r *http.Request) {
	if err := s.libraryService.Delete(r.Context(), GetAuthContext(r.Context()), r.PathValue("id")); err != nil {
		writeDomainError(w, err, "Delete failed. Please retry.")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleDashboard godoc
// @Summary      Dashboard
// @Description  Profile, total briefings and the most recent few
// @Tags         Briefings
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  domain.Dashboard
// @Router       /api/v1/dashboard [get]
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	dash, err := s.libraryService.Dashboard(r.Context(), GetAuthContext(r.Context()))
	if err != nil {
		writeDomainError(w, err, "failed to load dashboard")
		return
	}
	writeJSON(w, http.StatusOK, dash)
}

// Preference handlers

// handleGetTypography godoc
// @Summary      Reading preferences
// @Tags         Preferences
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  domain.TypographyPreference
// @Router       /api/v1/preferences/typography [get]
func (s *Server) handleGetTypography(w http.ResponseWriter, r *http.Request) {
	pref, err := s.briefingService.Typography(r.Context(), GetAuthContext(r.Context()))
	if err != nil {
		writeDomainError(w, err, "failed to load reading preferences")
		return
	}
	writeJSON(w, http.StatusOK, pref)
}

// handleSetTypography godoc
// @Summary      Update reading preferences
// @Tags         Preferences
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      domain.TypographyPreference  true  "font_scale and line_spacing"
// @Success      200      {object}  domain.TypographyPreference
// @Failure      400      {object}  ErrorResponse
// @Router       /api/v1/preferences/typography [put]
func (s *Server) handleSetTypography(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())

	// Start from the saved values so a partial body only changes what it names
	pref, err := s.briefingService.Typography(r.Context(), authCtx)
	if err != nil {
		writeDomainError(w, err, "failed to load reading preferences")
		return
	}
	if err := json.NewDecoder(r.Body).Decode(&pref); err != nil {
		writeError(w, http.StatusBadRequest, "font_scale must be sm, base, lg or xl and line_spacing tight, normal, relaxed or loose")
		return
	}

	if err := s.briefingService.SetTypography(r.Context(), authCtx, pref); err != nil {
		writeDomainError(w, err, "failed to save reading preferences")
		return
	}

	writeJSON(w, http.StatusOK, pref)
}

// Subscription handlers

// handleStartCheckout godoc
// @Summary      Start a Pro checkout
// @Description  Creates a gateway order and returns the widget configuration
// @Tags         Subscription
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  domain.CheckoutConfig
// @Failure      409  {object}  ErrorResponse
// @Failure      503  {object}  ErrorResponse
// @Router       /api/v1/subscription/checkout [post]
func (s *Server) handleStartCheckout(w http.ResponseWriter, r *http.Request) {
	if s.subscriptionService == nil {
		writeDomainError(w, domain.ErrCheckoutUnavailable, "")
		return
	}

	cfg, err := s.subscriptionService.StartCheckout(r.Context(), GetAuthContext(r.Context()))
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			writeError(w, http.StatusConflict, "account is already on the Pro plan")
			return
		}
		writeDomainError(w, err, "checkout failed")
		return
	}

	writeJSON(w, http.StatusOK, cfg)
}

// handleConfirmCheckout godoc
// @Summary      Confirm a Pro checkout
// @Description  Verifies the widget's signature, upgrades the account and
// @Description  records the payment.
// @Tags         Subscription
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      domain.PaymentOutcome  true  "Widget result"
// @Success      200      {object}  domain.Transaction
// @Failure      402      {object}  ErrorResponse
// @Router       /api/v1/subscription/confirm [post]
func (s *Server) handleConfirmCheckout(w http.ResponseWriter, r *http.Request) {
	if s.subscriptionService == nil {
		writeDomainError(w, domain.ErrCheckoutUnavailable, "")
		return
	}

	var outcome domain.PaymentOutcome
	if err := json.NewDecoder(r.Body).Decode(&outcome); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	txn, err := s.subscriptionService.CompleteCheckout(r.Context(), GetAuthContext(r.Context()), outcome)
	if err != nil {
		writeDomainError(w, err, "payment confirmation failed")
		return
	}

	writeJSON(w, http.StatusOK, txn)
}

// handleListTransactions godoc
// @Summary      Payment history
// @Tags         Subscription
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  domain.Transaction
// @Router       /api/v1/subscription/transactions [get]
func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	if s.subscriptionService == nil {
		writeJSON(w, http.StatusOK, []*domain.Transaction{})
		return
	}

	txns, err := s.subscriptionService.Transactions(r.Context(), GetAuthContext(r.Context()))
	if err != nil {
		writeDomainError(w, err, "failed to list transactions")
		return
	}
	if txns == nil {
		txns = []*domain.Transaction{}
	}

	writeJSON(w, http.StatusOK, txns)
}

// Helper functions

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}
