package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/briefvault/internal/core/domain"
)

func TestResetTokenStore_ConsumeOnce(t *testing.T) {
	client, mr := setupTestRedis(t)
	store := NewResetTokenStore(client)
	ctx := context.Background()

	grant := &domain.PasswordReset{
		Token:      "tok-1",
		UserID:     "user-1",
		Email:      "a@example.com",
		RedirectTo: "https://app.example.com/reset",
		ExpiresAt:  time.Now().Add(30 * time.Minute),
	}
	require.NoError(t, store.Save(ctx, grant))
	assert.True(t, mr.Exists(resetPrefix+"tok-1"))

	got, err := store.Consume(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", got.UserID)
	assert.Equal(t, "https://app.example.com/reset", got.RedirectTo)

	_, err = store.Consume(ctx, "tok-1")
	assert.True(t, errors.Is(err, domain.ErrNotFound), "second consume should miss, got %v", err)
}

func TestResetTokenStore_Expiry(t *testing.T) {
	client, mr := setupTestRedis(t)
	store := NewResetTokenStore(client)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &domain.PasswordReset{
		Token:     "tok-2",
		UserID:    "user-1",
		ExpiresAt: time.Now().Add(time.Minute),
	}))

	mr.FastForward(2 * time.Minute)

	_, err := store.Consume(ctx, "tok-2")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestResetTokenStore_RejectsExpiredGrant(t *testing.T) {
	client, _ := setupTestRedis(t)
	store := NewResetTokenStore(client)

	err := store.Save(context.Background(), &domain.PasswordReset{
		Token:     "tok-3",
		ExpiresAt: time.Now().Add(-time.Second),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
