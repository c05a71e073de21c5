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
var _ driven.SessionStore = (*SessionStore)(nil)

// userSetTTL keeps a user's session index around after its last write
const userSetTTL = 30 * 24 * time.Hour

// SessionStore implements driven.SessionStore using Redis.
// Session bodies expire with the session; token and refresh-token keys index into them.
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore creates a new Redis-backed SessionStore
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// Save stores a session with TTL based on ExpiresAt.
// An already expired session is not stored.
func (s *SessionStore) Save(ctx context.Context, session *domain.Session) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return nil
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, sessionPrefix+session.ID, data, ttl)
		pipe.Set(ctx, sessionTokenPrefix+session.Token, session.ID, ttl)
		if session.RefreshToken != "" {
			pipe.Set(ctx, sessionRefreshPrefix+session.RefreshToken, session.ID, ttl)
		}
		pipe.SAdd(ctx, sessionUserPrefix+session.UserID, session.ID)
		pipe.Expire(ctx, sessionUserPrefix+session.UserID, userSetTTL)
		return nil
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Get retrieves a session by ID
func (s *SessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	data, err := s.client.Get(ctx, sessionPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &session, nil
}

// GetByToken retrieves a session by token value
func (s *SessionStore) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	return s.resolve(ctx, sessionTokenPrefix+token)
}

// GetByRefreshToken retrieves a session by refresh token value
func (s *SessionStore) GetByRefreshToken(ctx context.Context, refreshToken string) (*domain.Session, error) {
	if refreshToken == "" {
		return nil, domain.ErrNotFound
	}
	return s.resolve(ctx, sessionRefreshPrefix+refreshToken)
}

// resolve follows an index key to its session
func (s *SessionStore) resolve(ctx context.Context, indexKey string) (*domain.Session, error) {
	id, err := s.client.Get(ctx, indexKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("resolve session index: %w", err)
	}
	return s.Get(ctx, id)
}

// Delete deletes a session. Deleting a missing session is not an error.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	session, err := s.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return s.deleteSession(ctx, session)
}

// DeleteByToken deletes a session by token
func (s *SessionStore) DeleteByToken(ctx context.Context, token string) error {
	session, err := s.GetByToken(ctx, token)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return s.deleteSession(ctx, session)
}

// DeleteByUser deletes all sessions for a user (logout everywhere)
func (s *SessionStore) DeleteByUser(ctx context.Context, userID string) error {
	ids, err := s.client.SMembers(ctx, sessionUserPrefix+userID).Result()
	if err != nil {
		return fmt.Errorf("list user sessions: %w", err)
	}

	for _, id := range ids {
		// Sessions may have expired between SMEMBERS and here
		_ = s.Delete(ctx, id)
	}

	return s.client.Del(ctx, sessionUserPrefix+userID).Err()
}

// ListByUser lists all active sessions for a user and prunes expired ids
func (s *SessionStore) ListByUser(ctx context.Context, userID string) ([]*domain.Session, error) {
	ids, err := s.client.SMembers(ctx, sessionUserPrefix+userID).Result()
	if err != nil {
		return nil, fmt.Errorf("list user sessions: %w", err)
	}

	var sessions []*domain.Session
	var stale []any
	for _, id := range ids {
		session, err := s.Get(ctx, id)
		if errors.Is(err, domain.ErrNotFound) {
			stale = append(stale, id)
			continue
		}
		if err != nil {
			return nil, err
		}
		if session.IsExpired() {
			stale = append(stale, id)
			continue
		}
		sessions = append(sessions, session)
	}

	if len(stale) > 0 {
		s.client.SRem(ctx, sessionUserPrefix+userID, stale...)
	}
	return sessions, nil
}

// deleteSession removes a session and all its indexes
func (s *SessionStore) deleteSession(ctx context.Context, session *domain.Session) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, sessionPrefix+session.ID, sessionTokenPrefix+session.Token)
		if session.RefreshToken != "" {
			pipe.Del(ctx, sessionRefreshPrefix+session.RefreshToken)
		}
		pipe.SRem(ctx, sessionUserPrefix+session.UserID, session.ID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
