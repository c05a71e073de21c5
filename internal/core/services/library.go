package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/custodia-labs/briefvault/internal/core/domain"
	"github.com/custodia-labs/briefvault/internal/core/ports/driven"
	"github.com/custodia-labs/briefvault/internal/core/ports/driving"
)

// Ensure libraryService implements LibraryService
var _ driving.LibraryService = (*libraryService)(nil)

// DashboardRecentLimit is how many records the dashboard shows
const DashboardRecentLimit = 3

// libraryService implements the LibraryService interface
type libraryService struct {
	store      driven.RecordStore
	userStore  driven.UserStore
	workspaces *WorkspaceRegistry
	logger     *slog.Logger
}

// NewLibraryService creates a new LibraryService
func NewLibraryService(store driven.RecordStore, userStore driven.UserStore, workspaces *WorkspaceRegistry, logger *slog.Logger) driving.LibraryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &libraryService{
		store:      store,
		userStore:  userStore,
		workspaces: workspaces,
		logger:     logger,
	}
}

// List returns the user's records after search, filter and sort
func (s *libraryService) List(ctx context.Context, auth *domain.AuthContext, state domain.LibraryViewState) ([]*domain.SummaryRecord, error) {
	ws, err := s.workspaces.Refresh(ctx, auth)
	if err != nil {
		return nil, err
	}
	return ApplyLibraryView(ws.Records(), state), nil
}

// Get retrieves one of the user's records from the store. Records of other
// users are reported as not found.
func (s *libraryService) Get(ctx context.Context, auth *domain.AuthContext, id string) (*domain.SummaryRecord, error) {
	if auth == nil || auth.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	if id == "" {
		return nil, domain.ErrInvalidInput
	}

	row, err := s.store.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		s.forget(auth.UserID, id)
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	rec := FromRow(row)
	if !rec.OwnedBy(auth.UserID) {
		return nil, domain.ErrNotFound
	}
	return rec, nil
}

// Delete removes a record from the store and then from the workspace.
// A failed store delete leaves the workspace untouched. A record that is
// already gone from the store, deleted elsewhere in the meantime, counts as
// deleted.
func (s *libraryService) Delete(ctx context.Context, auth *domain.AuthContext, id string) error {
	if _, err := s.Get(ctx, auth, id); err != nil {
		return err
	}

	err := s.store.DeleteByID(ctx, id)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		s.logger.Info("record already deleted", "user_id", auth.UserID, "record_id", id)
	case err != nil:
		s.logger.Error("record delete failed", "user_id", auth.UserID, "record_id", id, "error", err)
		return fmt.Errorf("%w: %v", domain.ErrDeleteFailed, err)
	default:
		s.logger.Info("record deleted", "user_id", auth.UserID, "record_id", id)
	}

	s.forget(auth.UserID, id)
	return nil
}

// forget drops a record from the user's workspace if it is resident
func (s *libraryService) forget(userID, id string) {
	if ws, ok := s.workspaces.Get(userID); ok {
		ws.Remove(id)
	}
}

// Count returns the user's total record count
func (s *libraryService) Count(ctx context.Context, auth *domain.AuthContext) (int, error) {
	if auth == nil || auth.UserID == "" {
		return 0, domain.ErrUnauthorized
	}
	return s.store.CountByOwner(ctx, auth.UserID)
}

// Dashboard returns the profile, total count and most recent records
func (s *libraryService) Dashboard(ctx context.Context, auth *domain.AuthContext) (*domain.Dashboard, error) {
	ws, err := s.workspaces.Refresh(ctx, auth)
	if err != nil {
		return nil, err
	}

	summary := &domain.UserSummary{ID: auth.UserID, Email: auth.Email, Name: auth.Name, Tier: auth.Tier}
	if user, err := s.userStore.Get(ctx, auth.UserID); err == nil {
		summary = user.ToSummary()
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	recent := ApplyLibraryView(ws.Records(), domain.DefaultLibraryView())
	if len(recent) > DashboardRecentLimit {
		recent = recent[:DashboardRecentLimit]
	}

	return &domain.Dashboard{
		User:       summary,
		TotalCount: ws.Total(),
		Recent:     recent,
	}, nil
}
