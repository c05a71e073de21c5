package postgres

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/briefvault/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.DistributedLock = (*LeaseLock)(nil)

// LeaseLock implements DistributedLock with rows in the locks table. A row
// is a lease: it names its owner and expires after the TTL, so a crashed
// holder frees the lock on its own. Every call is a single statement on a
// pooled connection; nothing is held between Acquire and Release.
type LeaseLock struct {
	db      *DB
	ownerID string
}

// NewLeaseLock creates a new PostgreSQL-backed distributed lock
func NewLeaseLock(db *DB) *LeaseLock {
	hostname, _ := os.Hostname()
	return &LeaseLock{
		db:      db,
		ownerID: fmt.Sprintf("%s:%d:%s", hostname, os.Getpid(), uuid.NewString()),
	}
}

// Acquire inserts the lease, or takes over one that has expired.
// Returns false without error while another owner's lease is live.
// Expiry is judged by the database clock.
func (l *LeaseLock) Acquire(ctx context.Context, name string, ttl time.Duration) (bool, error) {
	query := `
		INSERT INTO locks (name, owner, expires_at)
		VALUES ($1, $2, NOW() + $3 * INTERVAL '1 millisecond')
		ON CONFLICT (name) DO UPDATE
			SET owner = EXCLUDED.owner, expires_at = EXCLUDED.expires_at
			WHERE locks.expires_at <= NOW()
	`

	result, err := l.db.ExecContext(ctx, query, name, l.ownerID, ttl.Milliseconds())
	if err != nil {
		return false, fmt.Errorf("acquire lock %s: %w", name, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("acquire lock %s: %w", name, err)
	}
	return n == 1, nil
}

// Release deletes the lease if this owner still holds it
func (l *LeaseLock) Release(ctx context.Context, name string) error {
	_, err := l.db.ExecContext(ctx, `DELETE FROM locks WHERE name = $1 AND owner = $2`, name, l.ownerID)
	if err != nil {
		return fmt.Errorf("release lock %s: %w", name, err)
	}
	return nil
}

// Extend pushes out a live lease held by this owner
func (l *LeaseLock) Extend(ctx context.Context, name string, ttl time.Duration) error {
	result, err := l.db.ExecContext(ctx, `
		UPDATE locks SET expires_at = NOW() + $3 * INTERVAL '1 millisecond'
		WHERE name = $1 AND owner = $2 AND expires_at > NOW()
	`, name, l.ownerID, ttl.Milliseconds())
	if err != nil {
		return fmt.Errorf("extend lock %s: %w", name, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("extend lock %s: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("lock %q not held", name)
	}
	return nil
}

// Ping checks if the PostgreSQL backend is healthy.
func (l *LeaseLock) Ping(ctx context.Context) error {
	return l.db.PingContext(ctx)
}
