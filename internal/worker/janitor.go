// Package worker runs background maintenance alongside the API.
package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/custodia-labs/briefvault/internal/core/ports/driven"
)

// sweepLockName serializes sweeps across instances sharing a database
const sweepLockName = "maintenance:session-sweep"

// Janitor periodically removes expired sessions from stores that keep them
// forever otherwise. With several API instances only the one holding the
// sweep lock runs a given pass.
type Janitor struct {
	sweeper  driven.ExpiredSessionSweeper
	lock     driven.DistributedLock
	interval time.Duration
	logger   *slog.Logger
	now      func() time.Time

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// JanitorConfig holds configuration for the janitor.
type JanitorConfig struct {
	Sweeper  driven.ExpiredSessionSweeper
	Lock     driven.DistributedLock // optional
	Interval time.Duration
	Logger   *slog.Logger
}

// NewJanitor creates a janitor. Interval defaults to one hour.
func NewJanitor(cfg JanitorConfig) *Janitor {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	interval := cfg.Interval
	if interval <= 0 {
		interval = time.Hour
	}

	return &Janitor{
		sweeper:  cfg.Sweeper,
		lock:     cfg.Lock,
		interval: interval,
		logger:   logger,
		now:      time.Now,
	}
}

// Start runs a sweep immediately and then once per interval until Stop is
// called or ctx is cancelled.
func (j *Janitor) Start(ctx context.Context) {
	j.mu.Lock()
	if j.running {
		j.mu.Unlock()
		return
	}
	j.running = true
	j.stopCh = make(chan struct{})
	j.doneCh = make(chan struct{})
	j.mu.Unlock()

	j.logger.Info("janitor starting", "interval", j.interval)

	go func() {
		defer close(j.doneCh)

		ticker := time.NewTicker(j.interval)
		defer ticker.Stop()

		for {
			if _, err := j.SweepOnce(ctx); err != nil {
				j.logger.Error("session sweep failed", "error", err)
			}

			select {
			case <-ctx.Done():
				return
			case <-j.stopCh:
				return
			case <-ticker.C:
			}
		}
	}()
}

// Stop halts the janitor and waits for an in-progress sweep to finish.
func (j *Janitor) Stop() {
	j.mu.Lock()
	if !j.running {
		j.mu.Unlock()
		return
	}
	close(j.stopCh)
	j.mu.Unlock()

	<-j.doneCh

	j.mu.Lock()
	j.running = false
	j.mu.Unlock()

	j.logger.Info("janitor stopped")
}

// SweepOnce removes expired sessions. It returns zero without sweeping when
// another instance holds the sweep lock.
func (j *Janitor) SweepOnce(ctx context.Context) (int64, error) {
	if j.lock != nil {
		acquired, err := j.lock.Acquire(ctx, sweepLockName, j.interval)
		if err != nil {
			return 0, err
		}
		if !acquired {
			j.logger.Debug("session sweep skipped, lock held elsewhere")
			return 0, nil
		}
		defer func() {
			if err := j.lock.Release(context.WithoutCancel(ctx), sweepLockName); err != nil {
				j.logger.Warn("failed to release sweep lock", "error", err)
			}
		}()
	}

	removed, err := j.sweeper.DeleteExpired(ctx, j.now())
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		j.logger.Info("expired sessions removed", "count", removed)
	}
	return removed, nil
}
