package driven

import (
	"context"
	"time"
)

// DistributedLock guards work that must run on only one instance at a time:
// a user's in-flight ingestion and the session sweep.
type DistributedLock interface {
	// Acquire takes the named lock for ttl. It reports false, without error,
	// when another holder already has it.
	Acquire(ctx context.Context, name string, ttl time.Duration) (acquired bool, err error)

	// Release drops the named lock. Releasing a lock that is not held or has
	// already expired is not an error.
	Release(ctx context.Context, name string) error

	// Extend pushes out the expiry of a held lock. Backends without expiry
	// (advisory locks) treat this as a no-op.
	Extend(ctx context.Context, name string, ttl time.Duration) error

	// Ping reports whether the lock backend is reachable.
	Ping(ctx context.Context) error
}
