package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRedisAddr() string {
	if addr := os.Getenv("TEST_REDIS_ADDR"); addr != "" {
		return addr
	}
	return "localhost:6379"
}

// setupTestCache returns a cache backed by a local redis, skipping the test
// when none is reachable.
func setupTestCache(t *testing.T) *RedisCache {
	t.Helper()

	client := redis.NewClient(&redis.Options{Addr: testRedisAddr()})
	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		t.Skipf("Redis not available at %s: %v", testRedisAddr(), err)
	}
	t.Cleanup(func() { client.Close() })

	prefix := "storefront-test:" + t.Name() + ":"
	return NewRedisCache(client, prefix, time.Minute)
}

func TestRedisCache(t *testing.T) {
	c := setupTestCache(t)
	ctx := context.Background()

	type value struct {
		Name string `json:"name"`
	}

	var got value
	hit, err := c.Get(ctx, KeyProduct(1), &got)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.Set(ctx, KeyProduct(1), value{Name: "Kurta"}))

	hit, err = c.Get(ctx, KeyProduct(1), &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "Kurta", got.Name)

	require.NoError(t, c.Delete(ctx, KeyProduct(1), KeyCategories))

	hit, err = c.Get(ctx, KeyProduct(1), &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestNoop(t *testing.T) {
	var c Cache = Noop{}
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", 1))
	var v int
	hit, err := c.Get(ctx, "k", &v)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.NoError(t, c.Delete(ctx, "k"))
}

func TestKeys(t *testing.T) {
	id := int64(3)

	assert.Equal(t, "product:42", KeyProduct(42))
	assert.Equal(t, KeyProductsAll, KeyProducts(nil, false))
	assert.Equal(t, KeyProductsFeatured, KeyProducts(nil, true))
	assert.Equal(t, "products:category:3", KeyProducts(&id, false))
	assert.Equal(t, "products:category:3:featured", KeyProducts(&id, true))

	assert.Equal(t, []string{
		KeyProductsAll,
		KeyProductsFeatured,
		"products:category:3",
		"products:category:3:featured",
		"products:category:7",
		"products:category:7:featured",
	}, ProductListKeys(3, 7))
}
