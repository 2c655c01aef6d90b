package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Set REDIS_ADDR (e.g. localhost:6379) to run against a live server
func TestRedisStore_Live(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	ctx := context.Background()
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	defer rdb.Close()
	require.NoError(t, rdb.Ping(ctx).Err())

	store := NewRedisStore(rdb, "test:"+uuid.NewString()+":")
	repo := NewStateRepository(store)

	assert.Equal(t, SeedCoupons(), repo.LoadCoupons(ctx))

	require.NoError(t, repo.SaveCart(ctx, nil))
	_, ok, err := store.Load(ctx, KeyCart)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Save(ctx, KeyProducts, []byte(`[]`)))
	assert.Empty(t, repo.LoadProducts(ctx))
	require.NoError(t, store.Delete(ctx, KeyProducts))
}

func TestRedisStore_Unreachable(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()
	store := NewRedisStore(rdb, "storefront:")
	ctx := context.Background()

	_, _, err := store.Load(ctx, KeyCart)
	assert.Error(t, err)
	assert.Error(t, store.Save(ctx, KeyCart, []byte(`[]`)))

	// the repository falls back to the seed catalog
	assert.Equal(t, SeedProducts(), NewStateRepository(store).LoadProducts(ctx))
}
