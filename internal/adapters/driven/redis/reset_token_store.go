package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/custodia-labs/briefvault/internal/core/domain"
	"github.com/custodia-labs/briefvault/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ResetTokenStore = (*ResetTokenStore)(nil)

// ResetTokenStore keeps password reset grants in Redis until they expire
type ResetTokenStore struct {
	client *redis.Client
}

// NewResetTokenStore creates a new Redis-backed ResetTokenStore
func NewResetTokenStore(client *redis.Client) *ResetTokenStore {
	return &ResetTokenStore{client: client}
}

// Save stores a grant with a TTL matching its expiry
func (s *ResetTokenStore) Save(ctx context.Context, reset *domain.PasswordReset) error {
	ttl := time.Until(reset.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("%w: reset grant already expired", domain.ErrInvalidInput)
	}

	data, err := json.Marshal(reset)
	if err != nil {
		return fmt.Errorf("marshal reset grant: %w", err)
	}
	return s.client.Set(ctx, resetPrefix+reset.Token, data, ttl).Err()
}

// Consume reads and deletes a grant atomically (GETDEL)
func (s *ResetTokenStore) Consume(ctx context.Context, token string) (*domain.PasswordReset, error) {
	data, err := s.client.GetDel(ctx, resetPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("consume reset grant: %w", err)
	}

	var reset domain.PasswordReset
	if err := json.Unmarshal(data, &reset); err != nil {
		return nil, fmt.Errorf("unmarshal reset grant: %w", err)
	}
	return &reset, nil
}
