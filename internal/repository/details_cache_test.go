package repository

import (
    "context"
    "testing"
    "time"

    "github.com/alicebob/miniredis/v2"
    "github.com/redis/go-redis/v9"
    "github.com/stretchr/testify/assert"
)

func newCache(t *testing.T) (*DetailsCache, *miniredis.Miniredis) {
    t.Helper()
    mr := miniredis.RunT(t)
    client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
    return NewDetailsCache(client, time.Minute), mr
}

func TestDetailsCacheRoundTrip(t *testing.T) {
    cache, _ := newCache(t)
    ctx := context.Background()

    _, ok := cache.Get(ctx, "pay_1")
    assert.False(t, ok)

    cache.Set(ctx, "pay_1", []byte(`{"status":"pending"}`))
    data, ok := cache.Get(ctx, "pay_1")
    assert.True(t, ok)
    assert.JSONEq(t, `{"status":"pending"}`, string(data))
}

func TestDetailsCacheInvalidate(t *testing.T) {
    cache, _ := newCache(t)
    ctx := context.Background()

    cache.Set(ctx, "pay_1", []byte(`{"status":"pending"}`))
    cache.Invalidate(ctx, "pay_1")

    _, ok := cache.Get(ctx, "pay_1")
    assert.False(t, ok)
}

func TestDetailsCacheExpiry(t *testing.T) {
    cache, mr := newCache(t)
    ctx := context.Background()

    cache.Set(ctx, "pay_1", []byte(`{}`))
    mr.FastForward(2 * time.Minute)

    _, ok := cache.Get(ctx, "pay_1")
    assert.False(t, ok)
}

func TestDetailsCacheNilClientDegrades(t *testing.T) {
    cache := NewDetailsCache(nil, time.Minute)
    ctx := context.Background()

    // redis 未配置时所有操作都静默退化
    cache.Set(ctx, "pay_1", []byte(`{}`))
    cache.Invalidate(ctx, "pay_1")
    _, ok := cache.Get(ctx, "pay_1")
    assert.False(t, ok)
}
