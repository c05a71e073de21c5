package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/custodia-labs/briefvault/internal/core/domain"
	"github.com/custodia-labs/briefvault/internal/core/ports/driven"
	"github.com/custodia-labs/briefvault/internal/core/ports/driving"
)

// Ensure ingestionService implements IngestionService
var _ driving.IngestionService = (*ingestionService)(nil)

// DocumentExtractor is the extraction stage
type DocumentExtractor interface {
	Extract(ctx context.Context, input domain.RawInput) (*domain.ExtractedDocument, error)
}

// Synthesizer is the model stage
type Synthesizer interface {
	Summarize(ctx context.Context, text string, category domain.Category, payload *domain.BinaryPart) (string, error)
	GenerateTitle(ctx context.Context, content string, payload *domain.BinaryPart) string
}

// IngestionServiceConfig holds ingestion settings
type IngestionServiceConfig struct {
	// LockTTL bounds how long a crashed instance can hold a user's ingestion lock
	LockTTL time.Duration
	Logger  *slog.Logger
}

// DefaultIngestionServiceConfig returns default ingestion settings
func DefaultIngestionServiceConfig() IngestionServiceConfig {
	return IngestionServiceConfig{LockTTL: 5 * time.Minute}
}

// ingestionService implements the IngestionService interface
type ingestionService struct {
	extractor  DocumentExtractor
	synth      Synthesizer
	assembler  *RecordAssembler
	workspaces *WorkspaceRegistry
	lock       driven.DistributedLock
	lockTTL    time.Duration
	logger     *slog.Logger
}

// NewIngestionService creates a new IngestionService
func NewIngestionService(
	extractor DocumentExtractor,
	synth Synthesizer,
	assembler *RecordAssembler,
	workspaces *WorkspaceRegistry,
	lock driven.DistributedLock,
	cfg IngestionServiceConfig,
) driving.IngestionService {
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = 5 * time.Minute
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &ingestionService{
		extractor:  extractor,
		synth:      synth,
		assembler:  assembler,
		workspaces: workspaces,
		lock:       lock,
		lockTTL:    cfg.LockTTL,
		logger:     logger,
	}
}

// Extract runs only the extraction stage
func (s *ingestionService) Extract(ctx context.Context, auth *domain.AuthContext, input domain.RawInput) (*domain.ExtractedDocument, error) {
	if auth == nil || auth.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	return s.extractor.Extract(ctx, input)
}

// Ingest runs extraction, synthesis and persistence in sequence. Only one
// ingestion per user runs at a time; a second attempt is rejected. Nothing
// is written unless synthesis succeeds, and the workspace changes only after
// the insert succeeds.
func (s *ingestionService) Ingest(ctx context.Context, auth *domain.AuthContext, req driving.IngestRequest) (*domain.SummaryRecord, error) {
	ws, err := s.workspaces.Open(ctx, auth)
	if err != nil {
		return nil, err
	}

	if !ws.BeginIngest() {
		return nil, domain.ErrIngestionInProgress
	}
	defer ws.EndIngest()

	release, err := s.acquire(ctx, auth.UserID)
	if err != nil {
		return nil, err
	}
	defer release()

	doc, err := s.extractor.Extract(ctx, req.Input)
	if err != nil {
		s.logger.Info("extraction rejected", "user_id", auth.UserID, "error", err)
		return nil, err
	}
	if !doc.HasText() && doc.Payload == nil {
		return nil, domain.ErrEmptyInput
	}

	category := doc.Category
	if req.Category.IsValid() {
		category = req.Category
	}

	var payload *domain.BinaryPart
	if doc.IsVisual {
		payload = doc.Payload
	}

	briefing, err := s.synth.Summarize(ctx, doc.NormalizedText, category, payload)
	if err != nil {
		return nil, err
	}
	// A visual-only document has no text; the briefing gives the title context
	titleSource := doc.NormalizedText
	if titleSource == "" {
		titleSource = briefing
	}
	title := s.synth.GenerateTitle(ctx, titleSource, payload)

	record, err := s.assembler.Assemble(ctx, auth, doc, domain.SynthesisResult{Briefing: briefing, Title: title}, category)
	if err != nil {
		s.logger.Error("briefing synthesized but not saved", "user_id", auth.UserID, "error", err)
		return nil, err
	}

	ws.Add(record)
	s.logger.Info("briefing stored",
		"user_id", auth.UserID,
		"record_id", record.ID,
		"category", record.Category,
		"visual", doc.IsVisual,
		"pages", doc.PageCount)
	return record, nil
}

// acquire takes the cross-instance ingestion lock for a user
func (s *ingestionService) acquire(ctx context.Context, userID string) (func(), error) {
	if s.lock == nil {
		return func() {}, nil
	}

	name := "ingest:" + userID
	acquired, err := s.lock.Acquire(ctx, name, s.lockTTL)
	if err != nil {
		return nil, fmt.Errorf("acquire ingestion lock: %w", err)
	}
	if !acquired {
		return nil, domain.ErrIngestionInProgress
	}

	return func() {
		// The request context may already be done; release on a fresh one.
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.lock.Release(releaseCtx, name); err != nil {
			s.logger.Warn("failed to release ingestion lock", "user_id", userID, "error", err)
		}
	}, nil
}
