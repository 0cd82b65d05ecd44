package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepository_CreateAndExists(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewSessionRepository(client, time.Hour)
	ctx := context.Background()

	ok, err := repo.Exists(ctx, "sess-1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Create(ctx, "sess-1"))
	assert.Equal(t, time.Hour, mr.TTL("session:sess-1"))

	ok, err = repo.Exists(ctx, "sess-1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSessionRepository_ExistsRefreshesTTL(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewSessionRepository(client, time.Hour)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, "sess-1"))
	mr.FastForward(45 * time.Minute)

	ok, err := repo.Exists(ctx, "sess-1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, time.Hour, mr.TTL("session:sess-1"))
}

func TestSessionRepository_Expired(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewSessionRepository(client, time.Hour)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, "sess-1"))
	mr.FastForward(2 * time.Hour)

	ok, err := repo.Exists(ctx, "sess-1")
	require.NoError(t, err)
	assert.False(t, ok)
}
