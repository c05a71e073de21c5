package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/custodia-labs/briefvault/internal/core/domain"
	"github.com/custodia-labs/briefvault/internal/core/ports/driven"
	"github.com/custodia-labs/briefvault/internal/core/ports/driving"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"
)

// Workspace is the signed-in state of one user: the loaded record
// collection, the total count and the ingestion guard. All access goes
// through its methods.
type Workspace struct {
	mu        sync.Mutex
	userID    string
	records   []*domain.SummaryRecord // newest first
	total     int
	ingesting bool
}

// UserID returns the owner of the workspace
func (w *Workspace) UserID() string {
	return w.userID
}

// Records returns a copy of the loaded records, newest first
func (w *Workspace) Records() []*domain.SummaryRecord {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]*domain.SummaryRecord, len(w.records))
	copy(out, w.records)
	return out
}

// Total returns the record count
func (w *Workspace) Total() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.total
}

// Find returns a loaded record by id
func (w *Workspace) Find(id string) (*domain.SummaryRecord, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, r := range w.records {
		if r.ID == id {
			return r, true
		}
	}
	return nil, false
}

// Add puts a newly created record at the front and bumps the count
func (w *Workspace) Add(r *domain.SummaryRecord) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.records = append([]*domain.SummaryRecord{r}, w.records...)
	w.total++
}

// Remove drops a record and decrements the count. Returns false when the
// record was not loaded.
func (w *Workspace) Remove(id string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i, r := range w.records {
		if r.ID == id {
			w.records = append(w.records[:i:i], w.records[i+1:]...)
			if w.total > 0 {
				w.total--
			}
			return true
		}
	}
	return false
}

// BeginIngest claims the ingestion slot. Returns false if one is in flight.
func (w *Workspace) BeginIngest() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.ingesting {
		return false
	}
	w.ingesting = true
	return true
}

// EndIngest releases the ingestion slot
func (w *Workspace) EndIngest() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.ingesting = false
}

// replace swaps in a fresh snapshot from the store
func (w *Workspace) replace(records []*domain.SummaryRecord, total int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.records = records
	w.total = total
}

// Ingesting reports whether an ingestion is in flight
func (w *Workspace) Ingesting() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.ingesting
}

// WorkspaceRegistryConfig bounds how many workspaces stay resident
type WorkspaceRegistryConfig struct {
	// MaxWorkspaces caps resident workspaces; the least recently used is evicted
	MaxWorkspaces int
	// IdleTTL evicts a workspace nobody has touched for this long. Sessions
	// that simply expire never sign out, so this is what reclaims them.
	IdleTTL time.Duration
	Logger  *slog.Logger
}

// DefaultWorkspaceRegistryConfig returns default registry bounds
func DefaultWorkspaceRegistryConfig() WorkspaceRegistryConfig {
	return WorkspaceRegistryConfig{
		MaxWorkspaces: 1000,
		IdleTTL:       30 * time.Minute,
	}
}

// WorkspaceRegistry owns one Workspace per signed-in user. A workspace is
// loaded from the store on first use and discarded when its user signs out,
// when it sits idle past IdleTTL, or when it is the least recently used
// beyond MaxWorkspaces. Concurrent first opens for one user share a single
// load.
type WorkspaceRegistry struct {
	store  driven.RecordStore
	logger *slog.Logger
	loads  singleflight.Group

	mu         sync.Mutex
	workspaces *expirable.LRU[string, *Workspace]
}

// NewWorkspaceRegistry creates a registry. When auth is non-nil the registry
// subscribes to its session changes.
func NewWorkspaceRegistry(store driven.RecordStore, auth driving.AuthService, cfg WorkspaceRegistryConfig) *WorkspaceRegistry {
	defaults := DefaultWorkspaceRegistryConfig()
	if cfg.MaxWorkspaces <= 0 {
		cfg.MaxWorkspaces = defaults.MaxWorkspaces
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = defaults.IdleTTL
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := &WorkspaceRegistry{
		store:  store,
		logger: logger,
	}
	r.workspaces = expirable.NewLRU[string, *Workspace](cfg.MaxWorkspaces, func(userID string, _ *Workspace) {
		r.logger.Debug("workspace evicted", "user_id", userID)
	}, cfg.IdleTTL)

	if auth != nil {
		auth.OnSessionChange(r.handleSessionChange)
	}
	return r
}

func (r *WorkspaceRegistry) handleSessionChange(event domain.SessionEvent) {
	if event.Kind == domain.SessionSignedOut {
		r.Close(event.UserID)
	}
}

// Open returns the user's workspace, loading it on first use
func (r *WorkspaceRegistry) Open(ctx context.Context, auth *domain.AuthContext) (*Workspace, error) {
	if auth == nil || auth.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	if ws, ok := r.Get(auth.UserID); ok {
		return ws, nil
	}

	v, err, _ := r.loads.Do(auth.UserID, func() (any, error) {
		records, total, err := r.load(ctx, auth.UserID)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		defer r.mu.Unlock()
		if existing, ok := r.workspaces.Get(auth.UserID); ok {
			return existing, nil
		}
		ws := &Workspace{userID: auth.UserID, records: records, total: total}
		r.workspaces.Add(auth.UserID, ws)
		return ws, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Workspace), nil
}

// Refresh returns the user's workspace reloaded from the store. Other
// instances write to the same store, so anything shown to the user is read
// through here rather than from a snapshot taken earlier.
func (r *WorkspaceRegistry) Refresh(ctx context.Context, auth *domain.AuthContext) (*Workspace, error) {
	if auth == nil || auth.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	ws, ok := r.Get(auth.UserID)
	if !ok {
		return r.Open(ctx, auth)
	}

	records, total, err := r.load(ctx, auth.UserID)
	if err != nil {
		return nil, err
	}
	ws.replace(records, total)
	return ws, nil
}

func (r *WorkspaceRegistry) load(ctx context.Context, userID string) ([]*domain.SummaryRecord, int, error) {
	rows, err := r.store.ListByOwner(ctx, userID, driven.OrderCreatedDesc, 0)
	if err != nil {
		return nil, 0, fmt.Errorf("list records: %w", err)
	}
	total, err := r.store.CountByOwner(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("count records: %w", err)
	}

	records := make([]*domain.SummaryRecord, 0, len(rows))
	for _, row := range rows {
		rec := FromRow(row)
		if !rec.OwnedBy(userID) {
			r.logger.Warn("dropping foreign record from listing", "user_id", userID, "record_id", rec.ID)
			continue
		}
		records = append(records, rec)
	}
	if total < len(records) {
		total = len(records)
	}

	r.logger.Debug("workspace loaded", "user_id", userID, "records", len(records), "total", total)
	return records, total, nil
}

// Get returns a resident workspace and restarts its idle timer
func (r *WorkspaceRegistry) Get(userID string) (*Workspace, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ws, ok := r.workspaces.Get(userID)
	if ok {
		r.workspaces.Add(userID, ws)
	}
	return ws, ok
}

// Close discards a user's workspace and everything loaded into it
func (r *WorkspaceRegistry) Close(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.workspaces.Remove(userID) {
		r.logger.Debug("workspace closed", "user_id", userID)
	}
}

// Len returns the number of resident workspaces
func (r *WorkspaceRegistry) Len() int {
	return r.workspaces.Len()
}
