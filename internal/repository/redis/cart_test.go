package redis

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/audiophile/internal/domain"
	apperrors "github.com/utafrali/audiophile/pkg/errors"
)

func setupTestRedis(t *testing.T) (*goredis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client, mr
}

func sampleCart() *domain.Cart {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return &domain.Cart{
		ID:       "cart-001",
		Currency: "USD",
		Items: []domain.LineItem{
			{ProductID: "prod-1", Quantity: 2},
			{ProductID: "prod-2", Quantity: 1},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ---------------------------------------------------------------------------
// Get
// ---------------------------------------------------------------------------

func TestCartRepository_Get_Success(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewCartRepository(client, 24*time.Hour)

	cart := sampleCart()
	data, err := json.Marshal(cart)
	require.NoError(t, err)
	require.NoError(t, mr.Set("cart:user-001", string(data)))

	got, err := repo.Get(context.Background(), "user-001")
	require.NoError(t, err)
	assert.Equal(t, cart.ID, got.ID)
	assert.Equal(t, cart.Items, got.Items)
	assert.True(t, cart.CreatedAt.Equal(got.CreatedAt))
}

func TestCartRepository_Get_NotFound(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewCartRepository(client, 24*time.Hour)

	_, err := repo.Get(context.Background(), "nobody")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCartRepository_Get_NullItems(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewCartRepository(client, 24*time.Hour)
	require.NoError(t, mr.Set("cart:u", `{"id":"c","currency":"USD","items":null}`))

	got, err := repo.Get(context.Background(), "u")
	require.NoError(t, err)
	assert.NotNil(t, got.Items)
}

func TestCartRepository_Get_Unavailable(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewCartRepository(client, 24*time.Hour)
	mr.Close()

	_, err := repo.Get(context.Background(), "user-001")
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrNotFound)
}

// ---------------------------------------------------------------------------
// Save / Delete
// ---------------------------------------------------------------------------

func TestCartRepository_Save_SetsSlidingTTL(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewCartRepository(client, time.Hour)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "user-001", sampleCart()))
	assert.Equal(t, time.Hour, mr.TTL("cart:user-001"))

	mr.FastForward(30 * time.Minute)
	require.NoError(t, repo.Save(ctx, "user-001", sampleCart()))
	assert.Equal(t, time.Hour, mr.TTL("cart:user-001"))
}

func TestCartRepository_Save_Overwrites(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewCartRepository(client, time.Hour)
	ctx := context.Background()

	cart := sampleCart()
	require.NoError(t, repo.Save(ctx, "user-001", cart))

	cart.Items = []domain.LineItem{{ProductID: "prod-9", Quantity: 5}}
	require.NoError(t, repo.Save(ctx, "user-001", cart))

	got, err := repo.Get(ctx, "user-001")
	require.NoError(t, err)
	assert.Equal(t, cart.Items, got.Items)
}

func TestCartRepository_Delete(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewCartRepository(client, time.Hour)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "user-001", sampleCart()))
	require.NoError(t, repo.Delete(ctx, "user-001"))
	assert.False(t, mr.Exists("cart:user-001"))

	// Deleting a missing cart is not an error.
	require.NoError(t, repo.Delete(ctx, "user-001"))
}
